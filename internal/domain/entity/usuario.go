package entity

import "time"

// SetorAdmin é o "setor" do usuário administrador (vê tudo, cadastra pedidos).
const SetorAdmin = "admin"

// Usuario é um login de setor: cada setor da fábrica tem uma conta
// compartilhada, mais a conta admin.
type Usuario struct {
	ID        string
	Email     string
	SenhaHash string
	Nome      string
	Setor     string // admin | Gabarito | Impressao | ...
	Ativo     bool
	CreatedAt time.Time
}
