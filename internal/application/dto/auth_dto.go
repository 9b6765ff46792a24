package dto

// LoginRequest credenciais de login.
type LoginRequest struct {
	Email string `json:"email" validate:"required,email"`
	Senha string `json:"senha" validate:"required"`
}

// LoginResponse token mais os dados do usuário logado.
type LoginResponse struct {
	Token   string          `json:"token"`
	Usuario UsuarioResponse `json:"usuario"`
}

// CriarUsuarioRequest cadastro de uma conta de setor.
type CriarUsuarioRequest struct {
	Email string `json:"email" validate:"required,email"`
	Senha string `json:"senha" validate:"required,min=6"`
	Nome  string `json:"nome" validate:"required"`
	Setor string `json:"setor" validate:"required"`
}

// UsuarioResponse dados públicos de um usuário.
type UsuarioResponse struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Nome  string `json:"nome"`
	Setor string `json:"setor"`
}
