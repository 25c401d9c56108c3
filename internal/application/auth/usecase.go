package auth

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/control-stock/internal/domain"
	"github.com/jhoicas/control-stock/internal/domain/entity"
	"github.com/jhoicas/control-stock/internal/domain/repository"
	"github.com/jhoicas/control-stock/pkg/logger"
	"github.com/jhoicas/control-stock/pkg/token"
	"golang.org/x/crypto/bcrypt"
)

// SessionConfig configuración para la firma de tokens de sesión.
type SessionConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// Session es la identidad autenticada que el caller conserva durante el uso
// interactivo y pasa explícitamente a cada llamada de servicio (no hay estado
// global de "usuario actual"). Token es la credencial firmada que los
// servicios verifican por su cuenta para las operaciones restringidas.
type Session struct {
	Username string
	Role     string
	Token    string
}

// IsAdmin indica si la sesión pertenece a un administrador.
func (s *Session) IsAdmin() bool {
	return s != nil && s.Role == entity.RoleAdmin
}

// AuthUseCase casos de uso de cuentas: siembra del admin, login y registro.
type AuthUseCase struct {
	userRepo repository.UserRepository
	cfg      SessionConfig
	log      *logger.Logger
}

// NewAuthUseCase construye el caso de uso de cuentas.
func NewAuthUseCase(userRepo repository.UserRepository, cfg SessionConfig, log *logger.Logger) *AuthUseCase {
	return &AuthUseCase{userRepo: userRepo, cfg: cfg, log: log}
}

// EnsureDefaultAdmin siembra la cuenta de administrador por defecto si y solo
// si todavía no existe una cuenta con ese username. Idempotente: nunca
// sobreescribe una cuenta existente (insert-if-absent, no upsert).
func (uc *AuthUseCase) EnsureDefaultAdmin(username, password string) error {
	if username == "" || password == "" {
		return domain.ErrInvalidInput
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	inserted, err := uc.userRepo.CreateIfAbsent(&entity.User{
		ID:           uuid.New().String(),
		Username:     username,
		PasswordHash: string(hash),
		Role:         entity.RoleAdmin,
		CreatedAt:    time.Now(),
	})
	if err != nil {
		return err
	}
	if inserted {
		uc.log.Info().Str("username", username).Msg("administrador por defecto creado")
	}
	return nil
}

// Authenticate verifica username/password y devuelve la sesión con su token
// firmado. Usuario inexistente y password incorrecta producen el mismo
// domain.ErrUnauthorized: el caller no puede enumerar usernames.
func (uc *AuthUseCase) Authenticate(username, password string) (*Session, error) {
	user, err := uc.userRepo.FindByUsername(username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	tok, err := token.Generate(uc.cfg.Secret, user.Username, user.Role, uc.cfg.Issuer, uc.cfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("username", user.Username).Str("role", user.Role).Msg("login correcto")
	return &Session{Username: user.Username, Role: user.Role, Token: tok}, nil
}

// RegisterUser crea un usuario nuevo. Operación restringida a administradores:
// el rol se verifica contra el token firmado de la sesión, no contra lo que
// diga la capa de presentación, así el chequeo no se puede saltar.
// La password se hashea con bcrypt con salt fresca en cada llamada, por lo que
// dos passwords iguales nunca producen el mismo hash almacenado.
func (uc *AuthUseCase) RegisterUser(session *Session, username, password, role string) error {
	if err := uc.requireAdmin(session); err != nil {
		return err
	}
	username = strings.TrimSpace(username)
	if username == "" || password == "" || !entity.ValidRole(role) {
		return domain.ErrInvalidInput
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	user := &entity.User{
		ID:           uuid.New().String(),
		Username:     username,
		PasswordHash: string(hash),
		Role:         role,
		CreatedAt:    time.Now(),
	}
	if err := uc.userRepo.Create(user); err != nil {
		return err
	}
	uc.log.Info().Str("username", username).Str("role", role).Msg("usuario registrado")
	return nil
}

// requireAdmin valida el token de la sesión y exige rol Administrador.
func (uc *AuthUseCase) requireAdmin(session *Session) error {
	if session == nil {
		return domain.ErrUnauthorized
	}
	_, role, err := token.Parse(uc.cfg.Secret, session.Token)
	if err != nil {
		return domain.ErrUnauthorized
	}
	if role != entity.RoleAdmin {
		return domain.ErrForbidden
	}
	return nil
}
