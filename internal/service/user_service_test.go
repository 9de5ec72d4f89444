package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/CrisBM7/TianguiStore-Tienda-en--Linea/internal/auth"
	"github.com/CrisBM7/TianguiStore-Tienda-en--Linea/internal/config"
	"github.com/CrisBM7/TianguiStore-Tienda-en--Linea/internal/datamodels/user"
)

type userRepoMock struct {
	users  map[int64]*user.User
	nextID int64
}

func newUserRepoMock() *userRepoMock {
	return &userRepoMock{users: make(map[int64]*user.User), nextID: 1}
}

func (m *userRepoMock) GetByID(ctx context.Context, id int64) (*user.User, error) {
	u, ok := m.users[id]
	if !ok {
		return nil, errors.New("no encontrado")
	}
	return u, nil
}

func (m *userRepoMock) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, errors.New("no encontrado")
}

func (m *userRepoMock) Create(ctx context.Context, u *user.User) error {
	u.ID = m.nextID
	m.nextID++
	m.users[u.ID] = u
	return nil
}

func testJWTConfig() *config.JWTConfig {
	return &config.JWTConfig{Secret: "secreto-de-prueba", TTLMinutes: 30}
}

func TestRegisterAndLogin(t *testing.T) {
	svc := NewUserService(newUserRepoMock(), testJWTConfig())
	ctx := context.Background()

	u, err := svc.Register(ctx, "ana@example.mx", "s3creta", "Ana", "García")
	require.NoError(t, err)
	assert.Equal(t, "cliente", u.Role)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("s3creta")))

	token, logged, err := svc.Login(ctx, "ana@example.mx", "s3creta")
	require.NoError(t, err)
	assert.Equal(t, u.ID, logged.ID)

	claims, err := auth.ParseToken(testJWTConfig(), token)
	require.NoError(t, err)
	assert.Equal(t, u.ID, claims.UserID)
	assert.Equal(t, "cliente", claims.Role)
}

func TestRegisterValidation(t *testing.T) {
	svc := NewUserService(newUserRepoMock(), testJWTConfig())

	_, err := svc.Register(context.Background(), "", "", "", "")
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.ElementsMatch(t, []string{"correo_electronico", "contrasena", "nombre"}, verr.Fields)
}

func TestLoginBadPassword(t *testing.T) {
	repo := newUserRepoMock()
	svc := NewUserService(repo, testJWTConfig())
	ctx := context.Background()

	_, err := svc.Register(ctx, "ana@example.mx", "s3creta", "Ana", "")
	require.NoError(t, err)

	_, _, err = svc.Login(ctx, "ana@example.mx", "otra")
	assert.ErrorIs(t, err, ErrBadCredentials)

	_, _, err = svc.Login(ctx, "nadie@example.mx", "s3creta")
	assert.ErrorIs(t, err, ErrBadCredentials)
}

func TestRenewReissuesToken(t *testing.T) {
	repo := newUserRepoMock()
	svc := NewUserService(repo, testJWTConfig())
	ctx := context.Background()

	u, err := svc.Register(ctx, "ana@example.mx", "s3creta", "Ana", "")
	require.NoError(t, err)

	token, renewed, err := svc.Renew(ctx, &auth.Claims{UserID: u.ID})
	require.NoError(t, err)
	assert.Equal(t, u.ID, renewed.ID)
	assert.NotEmpty(t, token)
}
