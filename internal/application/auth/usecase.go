package auth

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/iurijampa/sistemanovofabrica/internal/application/dto"
	"github.com/iurijampa/sistemanovofabrica/internal/domain"
	"github.com/iurijampa/sistemanovofabrica/internal/domain/entity"
	"github.com/iurijampa/sistemanovofabrica/internal/domain/repository"
	"github.com/iurijampa/sistemanovofabrica/internal/domain/setor"
	"github.com/iurijampa/sistemanovofabrica/pkg/jwt"
)

// JWTConfig configuração para geração de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// UseCase autenticação das contas de setor: login e cadastro.
type UseCase struct {
	usuarioRepo repository.UsuarioRepository
	sequencia   setor.Sequencia
	jwtCfg      JWTConfig
}

// NewUseCase constrói o caso de uso de auth.
func NewUseCase(usuarioRepo repository.UsuarioRepository, sequencia setor.Sequencia, jwtCfg JWTConfig) *UseCase {
	return &UseCase{usuarioRepo: usuarioRepo, sequencia: sequencia, jwtCfg: jwtCfg}
}

// Login verifica email/senha, gera o JWT com o setor do usuário e devolve
// token + usuário.
func (uc *UseCase) Login(in dto.LoginRequest) (*dto.LoginResponse, error) {
	u, err := uc.usuarioRepo.BuscarPorEmail(strings.ToLower(strings.TrimSpace(in.Email)))
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, domain.ErrUsuarioNaoEncontrado
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.SenhaHash), []byte(in.Senha)); err != nil {
		return nil, domain.ErrNaoAutorizado
	}
	if !u.Ativo {
		return nil, domain.ErrAcessoNegado
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, u.ID, u.Setor, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		Token:   token,
		Usuario: *paraUsuarioResponse(u),
	}, nil
}

// CriarUsuario cadastra uma conta: hasheia a senha com bcrypt e persiste.
// O setor precisa ser "admin" ou um setor da sequência.
func (uc *UseCase) CriarUsuario(in dto.CriarUsuarioRequest) (*dto.UsuarioResponse, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if email == "" || len(in.Senha) < 6 {
		return nil, domain.ErrEntradaInvalida
	}
	if in.Setor != entity.SetorAdmin && !uc.sequencia.Contem(in.Setor) {
		return nil, domain.ErrSetorInvalido
	}
	existente, err := uc.usuarioRepo.BuscarPorEmail(email)
	if err != nil {
		return nil, err
	}
	if existente != nil {
		return nil, domain.ErrDuplicado
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Senha), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	nome := in.Nome
	if nome == "" {
		nome = email
	}
	u := &entity.Usuario{
		ID:        uuid.New().String(),
		Email:     email,
		SenhaHash: string(hash),
		Nome:      nome,
		Setor:     in.Setor,
		Ativo:     true,
		CreatedAt: time.Now(),
	}
	if err := uc.usuarioRepo.Criar(u); err != nil {
		return nil, err
	}
	return paraUsuarioResponse(u), nil
}

func paraUsuarioResponse(u *entity.Usuario) *dto.UsuarioResponse {
	if u == nil {
		return nil
	}
	return &dto.UsuarioResponse{
		ID:    u.ID,
		Email: u.Email,
		Nome:  u.Nome,
		Setor: u.Setor,
	}
}
