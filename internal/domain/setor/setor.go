// Package setor define a sequência linear de setores da fábrica:
//
//	Gabarito ──► Impressao ──► Batida ──► Costura ──► Embalagem ──► Finalizado
//
// A sequência é configuração externa; os nomes abaixo são os padrões da
// fábrica e também as chaves das regras de transição por setor.
package setor

// Nomes dos setores padrão.
const (
	Gabarito   = "Gabarito"
	Impressao  = "Impressao"
	Batida     = "Batida"
	Costura    = "Costura"
	Embalagem  = "Embalagem"
	Finalizado = "Finalizado"
)

// Padrao devolve a sequência padrão da fábrica.
func Padrao() []string {
	return []string{Gabarito, Impressao, Batida, Costura, Embalagem, Finalizado}
}

// Sequencia é a lista ordenada de setores. O primeiro é o setor de entrada
// e o último é o terminal.
type Sequencia struct {
	setores []string
}

// Nova cria uma sequência a partir da lista configurada.
// Lista vazia cai na sequência padrão.
func Nova(setores []string) Sequencia {
	if len(setores) == 0 {
		setores = Padrao()
	}
	s := make([]string, len(setores))
	copy(s, setores)
	return Sequencia{setores: s}
}

// Setores devolve uma cópia da sequência ordenada.
func (s Sequencia) Setores() []string {
	out := make([]string, len(s.setores))
	copy(out, s.setores)
	return out
}

// Inicial devolve o setor de entrada.
func (s Sequencia) Inicial() string { return s.setores[0] }

// Final devolve o setor terminal.
func (s Sequencia) Final() string { return s.setores[len(s.setores)-1] }

// Contem informa se o nome pertence à sequência.
func (s Sequencia) Contem(nome string) bool { return s.indice(nome) >= 0 }

// Proximo devolve o setor seguinte. No setor terminal, ou para um nome
// desconhecido, devolve o próprio argumento — nunca falha; a rejeição
// "já finalizado" é política da aplicação, não deste pacote.
func (s Sequencia) Proximo(nome string) string {
	i := s.indice(nome)
	if i < 0 || i == len(s.setores)-1 {
		return nome
	}
	return s.setores[i+1]
}

// Anterior devolve o setor precedente. No setor de entrada, ou para um nome
// desconhecido, devolve o próprio argumento.
func (s Sequencia) Anterior(nome string) string {
	i := s.indice(nome)
	if i <= 0 {
		return nome
	}
	return s.setores[i-1]
}

func (s Sequencia) indice(nome string) int {
	for i, v := range s.setores {
		if v == nome {
			return i
		}
	}
	return -1
}
