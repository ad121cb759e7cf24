package service

import (
	"context"
	"testing"

	"crmgas/internal/apierror"
	"crmgas/internal/config"
	"crmgas/internal/dto"
	"crmgas/internal/model"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const testJWTSecret = "unit-test-secret"

func buildAuthSvc() (AuthService, *stubUsuarioRepo) {
	repo := newStubUsuarioRepo()
	cfg := &config.Config{
		JWTSecret:          testJWTSecret,
		JWTExpirationHours: 1,
		JWTRefreshHours:    24,
	}
	return NewAuthService(repo, cfg), repo
}

func seedUsuario(r *stubUsuarioRepo, username, password, rol string) *model.Usuario {
	hash, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	u := &model.Usuario{
		ID:           uuid.New(),
		Username:     username,
		Nome:         "Usuário Teste",
		PasswordHash: string(hash),
		Rol:          rol,
		Ativo:        true,
	}
	r.usuarios[u.ID] = u
	return u
}

func TestLogin(t *testing.T) {
	svc, repo := buildAuthSvc()
	user := seedUsuario(repo, "admin", "senha-forte", "admin")

	resp, err := svc.Login(context.Background(), dto.LoginRequest{Username: "admin", Password: "senha-forte"})
	require.NoError(t, err)
	assert.Equal(t, "bearer", resp.TokenType)
	assert.Equal(t, 3600, resp.ExpiresIn)
	assert.Equal(t, user.ID.String(), resp.User.ID)

	// Access token carries user_id and rol claims
	token, err := jwt.Parse(resp.AccessToken, func(t *jwt.Token) (interface{}, error) {
		return []byte(testJWTSecret), nil
	})
	require.NoError(t, err)
	claims := token.Claims.(jwt.MapClaims)
	assert.Equal(t, user.ID.String(), claims["user_id"])
	assert.Equal(t, "admin", claims["rol"])
}

func TestLogin_SenhaIncorreta(t *testing.T) {
	svc, repo := buildAuthSvc()
	seedUsuario(repo, "admin", "senha-forte", "admin")

	_, err := svc.Login(context.Background(), dto.LoginRequest{Username: "admin", Password: "errada"})
	require.Error(t, err)
	assert.ErrorContains(t, err, "Credenciais inválidas")
}

func TestLogin_UsuarioInexistente(t *testing.T) {
	svc, _ := buildAuthSvc()

	// Same message as the wrong-password case — no username probing
	_, err := svc.Login(context.Background(), dto.LoginRequest{Username: "ninguem", Password: "qualquer"})
	require.Error(t, err)
	assert.ErrorContains(t, err, "Credenciais inválidas")
}

func TestRefresh(t *testing.T) {
	svc, repo := buildAuthSvc()
	seedUsuario(repo, "operador1", "senha-forte", "operador")

	login, err := svc.Login(context.Background(), dto.LoginRequest{Username: "operador1", Password: "senha-forte"})
	require.NoError(t, err)

	renewed, err := svc.Refresh(context.Background(), login.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, renewed.AccessToken)
	assert.Equal(t, login.User.ID, renewed.User.ID)
}

func TestRefresh_TokenInvalido(t *testing.T) {
	svc, _ := buildAuthSvc()

	_, err := svc.Refresh(context.Background(), "nao-e-um-jwt")
	require.Error(t, err)
	assert.Equal(t, apierror.KindValidacao, apierror.KindOf(err))
}

func TestRefresh_UsuarioDesativado(t *testing.T) {
	svc, repo := buildAuthSvc()
	user := seedUsuario(repo, "operador1", "senha-forte", "operador")

	login, err := svc.Login(context.Background(), dto.LoginRequest{Username: "operador1", Password: "senha-forte"})
	require.NoError(t, err)

	require.NoError(t, repo.SoftDelete(context.Background(), user.ID))

	_, err = svc.Refresh(context.Background(), login.RefreshToken)
	require.Error(t, err)
	assert.ErrorContains(t, err, "inativo")
}

func TestCriarUsuario_HashBcrypt(t *testing.T) {
	svc, repo := buildAuthSvc()

	resp, err := svc.CriarUsuario(context.Background(), dto.CriarUsuarioRequest{
		Username: "operador2",
		Nome:     "Novo Operador",
		Password: "senha-com-oito",
		Rol:      "operador",
	})
	require.NoError(t, err)

	stored, err := repo.FindByID(context.Background(), uuid.MustParse(resp.ID))
	require.NoError(t, err)
	assert.NotEqual(t, "senha-com-oito", stored.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("senha-com-oito")))
}

func TestListarUsuarios_IncluirInativos(t *testing.T) {
	svc, repo := buildAuthSvc()
	seedUsuario(repo, "ativo", "senha-forte", "operador")
	inativo := seedUsuario(repo, "inativo", "senha-forte", "operador")
	inativo.Ativo = false

	ativos, err := svc.ListarUsuarios(context.Background(), false)
	require.NoError(t, err)
	assert.Len(t, ativos, 1)

	todos, err := svc.ListarUsuarios(context.Background(), true)
	require.NoError(t, err)
	assert.Len(t, todos, 2)
}
