package auth

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Service authenticates the single configured operator account.
type Service struct {
	email        string
	passwordHash string
	role         string
	secret       string
	ttl          time.Duration
	now          func() time.Time
}

func NewService(email, passwordHash, role, secret string, ttl time.Duration) *Service {
	if !KnownRole(role) {
		role = RoleOperator
	}
	return &Service{
		email:        strings.ToLower(strings.TrimSpace(email)),
		passwordHash: passwordHash,
		role:         role,
		secret:       secret,
		ttl:          ttl,
		now:          time.Now,
	}
}

func (s *Service) Enabled() bool {
	return s.email != "" && s.passwordHash != "" && s.secret != ""
}

func OperatorID(email string) string {
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte("mailto:"+strings.ToLower(strings.TrimSpace(email)))).String()
}

func (s *Service) Login(_ context.Context, email, password string) (Session, error) {
	if !s.Enabled() {
		return Session{}, ErrLoginDisabled
	}
	if strings.ToLower(strings.TrimSpace(email)) != s.email {
		return Session{}, ErrInvalidCredentials
	}
	if err := CheckPassword(s.passwordHash, password); err != nil {
		return Session{}, ErrInvalidCredentials
	}

	now := s.now()
	claims := Claims{OperatorID: OperatorID(s.email), Email: s.email, Role: s.role}
	token, err := GenerateToken(s.secret, claims, now, s.ttl)
	if err != nil {
		return Session{}, err
	}
	return Session{
		Token:     token,
		TokenType: "Bearer",
		ExpiresAt: now.Add(s.ttl),
		Role:      s.role,
	}, nil
}

// Authenticate only accepts tokens issued for the configured operator. With no
// operator configured every token is rejected.
func (s *Service) Authenticate(tokenString string) (UserContext, error) {
	if !s.Enabled() {
		return UserContext{}, ErrInvalidToken
	}
	claims, err := ParseToken(s.secret, tokenString)
	if err != nil {
		return UserContext{}, err
	}
	if claims.OperatorID != OperatorID(s.email) || !KnownRole(claims.Role) {
		return UserContext{}, ErrInvalidToken
	}
	return UserContext{OperatorID: claims.OperatorID, Email: claims.Email, Role: claims.Role}, nil
}
