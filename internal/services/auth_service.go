package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/MattStellino/JnRGamesWebsite-sub000/internal/domain"
	"github.com/MattStellino/JnRGamesWebsite-sub000/internal/repos"
	"github.com/MattStellino/JnRGamesWebsite-sub000/internal/validate"
)

var (
	ErrBadCreds     = errors.New("invalid username or password")
	ErrInvalidToken = errors.New("invalid session")
)

const SessionTTL = 12 * time.Hour

type AuthService struct {
	Admins *repos.AdminRepo
	Secret []byte
	TTL    time.Duration
}

func NewAuthService(admins *repos.AdminRepo, secret string) *AuthService {
	return &AuthService{Admins: admins, Secret: []byte(secret), TTL: SessionTTL}
}

type sessionClaims struct {
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// Login checks the password and returns a signed session token.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, *domain.Admin, error) {
	a, err := s.Admins.ByUsername(ctx, username)
	if err != nil {
		return "", nil, ErrBadCreds
	}
	if bcrypt.CompareHashAndPassword([]byte(a.Hash), []byte(password)) != nil {
		return "", nil, ErrBadCreds
	}
	tok, err := s.Issue(a)
	if err != nil {
		return "", nil, err
	}
	return tok, a, nil
}

func (s *AuthService) Issue(a *domain.Admin) (string, error) {
	now := time.Now()
	ttl := s.TTL
	if ttl <= 0 {
		ttl = SessionTTL
	}
	claims := sessionClaims{
		Username: a.Username,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(a.ID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			ID:        uuid.NewString(),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.Secret)
}

// CurrentAdmin validates the token and loads the admin it names.
func (s *AuthService) CurrentAdmin(ctx context.Context, token string) (*domain.Admin, error) {
	claims := &sessionClaims{}
	_, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		return s.Secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	if err != nil {
		return nil, ErrInvalidToken
	}
	id, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil {
		return nil, ErrInvalidToken
	}
	a, err := s.Admins.ByID(ctx, id)
	if errors.Is(err, ErrNotFound) {
		return nil, ErrInvalidToken
	}
	return a, err
}

func HashPassword(password string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// CreateAdmin adds an admin, or resets the password of an existing one.
func (s *AuthService) CreateAdmin(ctx context.Context, username, password string) (*domain.Admin, error) {
	username, ok := validate.Username(username)
	if !ok {
		return nil, invalid("username", "3-32 letters, digits, dot, dash or underscore")
	}
	if !validate.Password(password) {
		return nil, invalid("password", "8-72 characters with upper, lower case and a digit")
	}
	hash, err := HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	a, err := s.Admins.ByUsername(ctx, username)
	switch {
	case err == nil:
		if err := s.Admins.SetPassword(ctx, a.ID, hash); err != nil {
			return nil, err
		}
		a.Hash = hash
		return a, nil
	case errors.Is(err, ErrNotFound):
		return s.Admins.Create(ctx, username, hash)
	default:
		return nil, err
	}
}

// EnsureAdmin creates the bootstrap admin if it does not exist yet. An
// existing admin keeps its password. Reports whether one was created.
func (s *AuthService) EnsureAdmin(ctx context.Context, username, password string) (bool, error) {
	if _, err := s.Admins.ByUsername(ctx, username); err == nil {
		return false, nil
	} else if !errors.Is(err, ErrNotFound) {
		return false, err
	}
	if _, err := s.CreateAdmin(ctx, username, password); err != nil {
		return false, err
	}
	return true, nil
}
