package repository

import "github.com/iurijampa/sistemanovofabrica/internal/domain/entity"

// UsuarioRepository define o porto de persistência de usuários.
type UsuarioRepository interface {
	Criar(u *entity.Usuario) error
	// BuscarPorEmail devolve (nil, nil) quando o email não existe.
	BuscarPorEmail(email string) (*entity.Usuario, error)
}
