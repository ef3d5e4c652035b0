// Package services contains server-side business logic. This file implements
// UserService, which handles registration, login, and issuing JWTs.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/shareling/internal/common"
	"github.com/dmitrijs2005/shareling/internal/cryptox"
	"github.com/dmitrijs2005/shareling/internal/server/auth"
	"github.com/dmitrijs2005/shareling/internal/server/config"
	"github.com/dmitrijs2005/shareling/internal/server/models"
	"github.com/dmitrijs2005/shareling/internal/server/repositories/repomanager"
)

// UserService provides authentication-related operations:
// - Register: create accounts
// - Login: verify credentials and mint an access token
type UserService struct {
	db                          *sql.DB
	repomanager                 repomanager.RepositoryManager
	jwtSecret                   []byte
	accessTokenValidityDuration time.Duration
}

// NewUserService constructs a UserService using repositories and server config.
func NewUserService(db *sql.DB, m repomanager.RepositoryManager, cfg *config.Config) *UserService {
	return &UserService{
		db:                          db,
		repomanager:                 m,
		jwtSecret:                   []byte(cfg.SecretKey),
		accessTokenValidityDuration: cfg.AccessTokenValidityDuration,
	}
}

// Register creates a new account with an argon2id password hash.
func (s *UserService) Register(ctx context.Context, username string, password string) (*models.User, error) {
	if username == "" || password == "" {
		return nil, fmt.Errorf("%w: username and password are required", common.ErrorValidation)
	}

	hash, err := cryptox.HashPassword([]byte(password))
	if err != nil {
		return nil, common.ErrorInternal
	}

	user := &models.User{UserName: username, PasswordHash: hash}
	repo := s.repomanager.Users(s.db)
	u, err := repo.Create(ctx, user)
	if err != nil {
		return nil, fmt.Errorf("error creating user: %v", err)
	}
	return u, nil
}

// Login verifies the password against the stored hash and, on success,
// returns a signed access token. Unknown accounts and wrong passwords are
// indistinguishable to the caller.
func (s *UserService) Login(ctx context.Context, userName string, password string) (string, error) {
	repo := s.repomanager.Users(s.db)
	user, err := repo.GetUserByLogin(ctx, userName)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return "", common.ErrorUnauthorized
		}
		return "", common.ErrorInternal
	}
	ok, err := cryptox.VerifyPassword(user.PasswordHash, []byte(password))
	if err != nil || !ok {
		return "", common.ErrorUnauthorized
	}
	token, err := auth.GenerateToken(user.ID, s.jwtSecret, s.accessTokenValidityDuration)
	if err != nil {
		return "", common.ErrorInternal
	}
	return token, nil
}
