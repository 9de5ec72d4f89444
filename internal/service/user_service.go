package service

import (
	"context"
	"errors"

	"golang.org/x/crypto/bcrypt"

	"github.com/CrisBM7/TianguiStore-Tienda-en--Linea/internal/auth"
	"github.com/CrisBM7/TianguiStore-Tienda-en--Linea/internal/config"
	"github.com/CrisBM7/TianguiStore-Tienda-en--Linea/internal/datamodels/user"
)

// ErrBadCredentials hides whether the email or the password was wrong.
var ErrBadCredentials = errors.New("credenciales inválidas")

// UserService handles registration, login and token renewal.
type UserService struct {
	repo user.Repository
	jwt  *config.JWTConfig
}

// NewUserService creates the user service.
func NewUserService(repo user.Repository, jwt *config.JWTConfig) *UserService {
	return &UserService{repo: repo, jwt: jwt}
}

// Register creates a customer account with a bcrypt-hashed password.
func (s *UserService) Register(ctx context.Context, email, password, firstName, lastName string) (*user.User, error) {
	var missing []string
	if email == "" {
		missing = append(missing, "correo_electronico")
	}
	if password == "" {
		missing = append(missing, "contrasena")
	}
	if firstName == "" {
		missing = append(missing, "nombre")
	}
	if len(missing) > 0 {
		return nil, &ValidationError{Fields: missing}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	u := &user.User{
		Email:        email,
		PasswordHash: string(hash),
		FirstName:    firstName,
		LastName:     lastName,
		Role:         "cliente",
	}
	if err := s.repo.Create(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

// Login verifies the password and returns a signed token plus the profile
// the browser stores locally.
func (s *UserService) Login(ctx context.Context, email, password string) (string, *user.User, error) {
	u, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		return "", nil, ErrBadCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
		return "", nil, ErrBadCredentials
	}
	token, err := auth.GenerateToken(s.jwt, u.ID, u.Email, u.Role)
	if err != nil {
		return "", nil, err
	}
	return token, u, nil
}

// Renew re-issues a token for a still-valid session. The auth guard in the
// browser calls this one minute before expiry.
func (s *UserService) Renew(ctx context.Context, claims *auth.Claims) (string, *user.User, error) {
	u, err := s.repo.GetByID(ctx, claims.UserID)
	if err != nil {
		return "", nil, ErrBadCredentials
	}
	token, err := auth.GenerateToken(s.jwt, u.ID, u.Email, u.Role)
	if err != nil {
		return "", nil, err
	}
	return token, u, nil
}
