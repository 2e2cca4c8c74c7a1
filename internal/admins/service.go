// Package admins signs the dashboard admin in. There is a single bootstrap
// account configured through the environment; its password is hashed with
// argon2id when the service starts.
package admins

import (
	"context"
	"crypto/subtle"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Muhammad-Ubaid-uddin-sheikh/aura-wave/pkg/auth"
	"github.com/Muhammad-Ubaid-uddin-sheikh/aura-wave/pkg/config"
	"github.com/Muhammad-Ubaid-uddin-sheikh/aura-wave/pkg/enums"
	pkgerrors "github.com/Muhammad-Ubaid-uddin-sheikh/aura-wave/pkg/errors"
	"github.com/Muhammad-Ubaid-uddin-sheikh/aura-wave/pkg/logger"
	"github.com/Muhammad-Ubaid-uddin-sheikh/aura-wave/pkg/validation"
)

const MsgInvalidCredentials = "Invalid email or password"

type passwordHasher interface {
	Hash(password string) (string, error)
	Verify(password, encoded string) (bool, error)
}

// LoginInput is the admin login body.
type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Session is returned after a successful login.
type Session struct {
	AccessToken string          `json:"accessToken"`
	ExpiresAt   time.Time       `json:"expiresAt"`
	AdminID     uuid.UUID       `json:"adminId"`
	Email       string          `json:"email"`
	Role        enums.AdminRole `json:"role"`
}

type Service interface {
	Login(ctx context.Context, input LoginInput) (*Session, error)
}

type service struct {
	email   string
	hash    string
	adminID uuid.UUID
	jwt     config.JWTConfig
	hasher  passwordHasher
	logg    *logger.Logger
	now     func() time.Time
}

// NewService hashes the configured admin password and keeps only the hash.
func NewService(admin config.AdminConfig, jwtCfg config.JWTConfig, hasher passwordHasher, logg *logger.Logger) (Service, error) {
	if hasher == nil {
		return nil, fmt.Errorf("password hasher required")
	}
	email := normalizeEmail(admin.Email)
	if email == "" || admin.Password == "" {
		return nil, fmt.Errorf("admin email and password required")
	}
	hash, err := hasher.Hash(admin.Password)
	if err != nil {
		return nil, fmt.Errorf("hash admin password: %w", err)
	}
	return &service{
		email:   email,
		hash:    hash,
		adminID: AdminID(email),
		jwt:     jwtCfg,
		hasher:  hasher,
		logg:    logg,
		now:     time.Now,
	}, nil
}

// AdminID derives a stable id from the admin email so tokens survive restarts.
func AdminID(email string) uuid.UUID {
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte("aura-wave:admin:"+normalizeEmail(email)))
}

func (s *service) Login(ctx context.Context, input LoginInput) (*Session, error) {
	input.Email = strings.TrimSpace(input.Email)
	if err := validation.Struct(input); err != nil {
		return nil, err
	}

	emailMatch := subtle.ConstantTimeCompare([]byte(normalizeEmail(input.Email)), []byte(s.email)) == 1
	// The hash is always verified so a wrong email costs as much as a wrong password.
	ok, err := s.hasher.Verify(input.Password, s.hash)
	if err != nil {
		return nil, pkgerrors.Internal(err, "Failed to sign in")
	}
	if !emailMatch || !ok {
		if s.logg != nil {
			s.logg.Warn(s.logg.WithField(ctx, "email", input.Email), "admin.login_rejected")
		}
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, MsgInvalidCredentials)
	}

	token, expiresAt, err := auth.MintAccessToken(s.jwt, s.now(), auth.AccessTokenPayload{
		AdminID: s.adminID,
		Email:   s.email,
		Role:    enums.AdminRoleAdmin,
	})
	if err != nil {
		return nil, pkgerrors.Internal(err, "Failed to sign in")
	}
	if s.logg != nil {
		s.logg.Info(s.logg.WithAdminID(ctx, s.adminID.String()), "admin.login")
	}
	return &Session{
		AccessToken: token,
		ExpiresAt:   expiresAt,
		AdminID:     s.adminID,
		Email:       s.email,
		Role:        enums.AdminRoleAdmin,
	}, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
