package auth

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	userRepo "stayhub/database/repository/user"
	"stayhub/models"
	"stayhub/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// Authenticate verifies a login identifier and password pair and mints a
// bearer token. The identifier is a username or an email address.
func (s *DefaultAuthService) Authenticate(ctx context.Context, username, password string) (*models.Credentials, error) {
	if username == "" || password == "" {
		return nil, &Error{Status: http.StatusBadRequest, Message: "username and password are required"}
	}

	userRec, err := s.lookupAccount(ctx, username)
	if err != nil {
		if errors.Is(err, userRepo.ErrNotFound) {
			return nil, &Error{Status: http.StatusUnauthorized, Message: "invalid username or password"}
		}
		utils.GetLogger().Error("Authenticate: failed to fetch user", zap.Error(err))
		return nil, &Error{Status: http.StatusInternalServerError, Message: "authentication failed, please try again"}
	}

	if err := bcrypt.CompareHashAndPassword([]byte(userRec.PasswordHash), []byte(password)); err != nil {
		return nil, &Error{Status: http.StatusUnauthorized, Message: "invalid username or password"}
	}

	token, err := utils.GenerateToken(userRec.ID, userRec.Username, userRec.IsAdmin)
	if err != nil {
		utils.GetLogger().Error("Authenticate: failed to generate token", zap.Error(err))
		return nil, &Error{Status: http.StatusInternalServerError, Message: "authentication failed, please try again"}
	}

	return &models.Credentials{
		UserID:   userRec.ID,
		Username: userRec.Username,
		Token:    token,
		IsAdmin:  userRec.IsAdmin,
	}, nil
}

// lookupAccount resolves a login identifier against the username first,
// then against the normalized email when the identifier looks like one.
func (s *DefaultAuthService) lookupAccount(ctx context.Context, identifier string) (*models.User, error) {
	userRec, err := s.Repo.GetByUsername(ctx, identifier)
	if errors.Is(err, userRepo.ErrNotFound) && strings.Contains(identifier, "@") {
		return s.Repo.GetByEmail(ctx, strings.TrimSpace(strings.ToLower(identifier)))
	}
	return userRec, err
}

// CreateAccount registers a new user and signs them in.
func (s *DefaultAuthService) CreateAccount(ctx context.Context, email, username, password string) (*models.Credentials, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	username = strings.TrimSpace(username)

	if email == "" || !strings.Contains(email, "@") {
		return nil, &Error{Status: http.StatusBadRequest, Message: "a valid email is required"}
	}
	if username == "" {
		return nil, &Error{Status: http.StatusBadRequest, Message: "username is required"}
	}
	if len(password) < 6 {
		return nil, &Error{Status: http.StatusBadRequest, Message: "password must be at least 6 characters"}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		utils.GetLogger().Error("CreateAccount: failed to hash password", zap.Error(err))
		return nil, &Error{Status: http.StatusInternalServerError, Message: "registration failed, please try again"}
	}

	userRec := &models.User{
		ID:           uuid.New().String(),
		Email:        email,
		Username:     username,
		PasswordHash: string(hash),
		CreatedAt:    time.Now(),
	}
	if err := s.Repo.Create(ctx, userRec); err != nil {
		if errors.Is(err, userRepo.ErrDuplicate) {
			return nil, &Error{Status: http.StatusConflict, Message: "username or email already registered"}
		}
		utils.GetLogger().Error("CreateAccount: failed to insert user", zap.Error(err))
		return nil, &Error{Status: http.StatusInternalServerError, Message: "registration failed, please try again"}
	}

	token, err := utils.GenerateToken(userRec.ID, userRec.Username, userRec.IsAdmin)
	if err != nil {
		utils.GetLogger().Error("CreateAccount: failed to generate token", zap.Error(err))
		return nil, &Error{Status: http.StatusInternalServerError, Message: "registration failed, please try again"}
	}

	return &models.Credentials{
		UserID:   userRec.ID,
		Username: userRec.Username,
		Token:    token,
		IsAdmin:  userRec.IsAdmin,
	}, nil
}
