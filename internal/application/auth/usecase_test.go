package auth_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/control-stock/internal/application/auth"
	"github.com/jhoicas/control-stock/internal/domain"
	"github.com/jhoicas/control-stock/internal/domain/entity"
	"github.com/jhoicas/control-stock/internal/infrastructure/memory"
	"github.com/jhoicas/control-stock/pkg/logger"
	"github.com/jhoicas/control-stock/pkg/token"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const (
	testSecret = "test-secret-key-for-unit-tests"
	testIssuer = "control-stock-test"
)

func newAuthUseCase() (*auth.AuthUseCase, *memory.Store) {
	store := memory.NewStore()
	uc := auth.NewAuthUseCase(memory.NewUserRepository(store), auth.SessionConfig{
		Secret:     testSecret,
		ExpMinutes: 60,
		Issuer:     testIssuer,
	}, logger.Nop())
	return uc, store
}

// adminSession siembra el admin por defecto y abre su sesión.
func adminSession(t *testing.T, uc *auth.AuthUseCase) *auth.Session {
	t.Helper()
	require.NoError(t, uc.EnsureDefaultAdmin("admin", "admin123"))
	session, err := uc.Authenticate("admin", "admin123")
	require.NoError(t, err)
	return session
}

// ──────────────────────────────────────────────────────────────────────────────
// EnsureDefaultAdmin
// ──────────────────────────────────────────────────────────────────────────────

func TestEnsureDefaultAdmin_Idempotente(t *testing.T) {
	uc, store := newAuthUseCase()

	require.NoError(t, uc.EnsureDefaultAdmin("admin", "admin123"))
	first, err := memory.NewUserRepository(store).FindByUsername("admin")
	require.NoError(t, err)
	require.NotNil(t, first)
	assert.Equal(t, entity.RoleAdmin, first.Role)

	// La segunda siembra no debe sobreescribir la cuenta existente.
	require.NoError(t, uc.EnsureDefaultAdmin("admin", "otra-password"))
	second, err := memory.NewUserRepository(store).FindByUsername("admin")
	require.NoError(t, err)
	assert.Equal(t, first.PasswordHash, second.PasswordHash, "insert-if-absent, no upsert")

	// La password original sigue funcionando.
	_, err = uc.Authenticate("admin", "admin123")
	assert.NoError(t, err)
}

func TestEnsureDefaultAdmin_CamposVacios(t *testing.T) {
	uc, _ := newAuthUseCase()
	assert.ErrorIs(t, uc.EnsureDefaultAdmin("", "admin123"), domain.ErrInvalidInput)
	assert.ErrorIs(t, uc.EnsureDefaultAdmin("admin", ""), domain.ErrInvalidInput)
}

// ──────────────────────────────────────────────────────────────────────────────
// Authenticate
// ──────────────────────────────────────────────────────────────────────────────

func TestAuthenticate_DevuelveSesionConTokenFirmado(t *testing.T) {
	uc, _ := newAuthUseCase()
	session := adminSession(t, uc)

	assert.Equal(t, "admin", session.Username)
	assert.Equal(t, entity.RoleAdmin, session.Role)
	assert.True(t, session.IsAdmin())

	// El token es verificable y lleva username y role.
	username, role, err := token.Parse(testSecret, session.Token)
	require.NoError(t, err)
	assert.Equal(t, "admin", username)
	assert.Equal(t, entity.RoleAdmin, role)
}

// Password incorrecta y usuario inexistente deben ser indistinguibles
// para el caller: mismo error, sin pista de cuál de los dos falló.
func TestAuthenticate_FallaGenericaSinEnumeracion(t *testing.T) {
	uc, _ := newAuthUseCase()
	require.NoError(t, uc.EnsureDefaultAdmin("admin", "admin123"))

	_, errWrongPass := uc.Authenticate("admin", "incorrecta")
	_, errNoUser := uc.Authenticate("fantasma", "incorrecta")

	require.ErrorIs(t, errWrongPass, domain.ErrUnauthorized)
	require.ErrorIs(t, errNoUser, domain.ErrUnauthorized)
	assert.Equal(t, errWrongPass.Error(), errNoUser.Error())
}

// ──────────────────────────────────────────────────────────────────────────────
// RegisterUser
// ──────────────────────────────────────────────────────────────────────────────

func TestRegisterUser_CreaUsuarioYPermiteLogin(t *testing.T) {
	uc, _ := newAuthUseCase()
	admin := adminSession(t, uc)

	require.NoError(t, uc.RegisterUser(admin, "bob", "secreta", entity.RoleRegular))

	session, err := uc.Authenticate("bob", "secreta")
	require.NoError(t, err)
	assert.Equal(t, entity.RoleRegular, session.Role)
	assert.False(t, session.IsAdmin())
}

func TestRegisterUser_SoloAdministradores(t *testing.T) {
	uc, _ := newAuthUseCase()
	admin := adminSession(t, uc)
	require.NoError(t, uc.RegisterUser(admin, "bob", "secreta", entity.RoleRegular))

	bob, err := uc.Authenticate("bob", "secreta")
	require.NoError(t, err)

	err = uc.RegisterUser(bob, "carol", "secreta", entity.RoleRegular)
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

// Una sesión forjada por la capa de presentación (rol Administrador sin token
// válido) no debe pasar: el servicio verifica el token, no el campo Role.
func TestRegisterUser_SesionForjadaRechazada(t *testing.T) {
	uc, _ := newAuthUseCase()

	forged := &auth.Session{Username: "intruso", Role: entity.RoleAdmin, Token: "no-es-un-token"}
	err := uc.RegisterUser(forged, "carol", "secreta", entity.RoleRegular)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	err = uc.RegisterUser(nil, "carol", "secreta", entity.RoleRegular)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestRegisterUser_EntradaInvalida(t *testing.T) {
	uc, _ := newAuthUseCase()
	admin := adminSession(t, uc)

	assert.ErrorIs(t, uc.RegisterUser(admin, "", "secreta", entity.RoleRegular), domain.ErrInvalidInput)
	assert.ErrorIs(t, uc.RegisterUser(admin, "bob", "", entity.RoleRegular), domain.ErrInvalidInput)
	assert.ErrorIs(t, uc.RegisterUser(admin, "bob", "secreta", "Superusuario"), domain.ErrInvalidInput)
}

func TestRegisterUser_UsernameDuplicado(t *testing.T) {
	uc, _ := newAuthUseCase()
	admin := adminSession(t, uc)

	require.NoError(t, uc.RegisterUser(admin, "bob", "secreta", entity.RoleRegular))
	err := uc.RegisterUser(admin, "bob", "otra", entity.RoleRegular)
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

// Misma password, usuarios distintos: el salt fresco de bcrypt debe producir
// hashes almacenados distintos (y nunca la password en claro).
func TestRegisterUser_HashesDistintosPorSalt(t *testing.T) {
	uc, store := newAuthUseCase()
	admin := adminSession(t, uc)

	require.NoError(t, uc.RegisterUser(admin, "bob", "misma-password", entity.RoleRegular))
	require.NoError(t, uc.RegisterUser(admin, "carol", "misma-password", entity.RoleRegular))

	users := memory.NewUserRepository(store)
	bob, err := users.FindByUsername("bob")
	require.NoError(t, err)
	carol, err := users.FindByUsername("carol")
	require.NoError(t, err)

	assert.NotEqual(t, bob.PasswordHash, carol.PasswordHash)
	assert.NotEqual(t, "misma-password", bob.PasswordHash)
}
