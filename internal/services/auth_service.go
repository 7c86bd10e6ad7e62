package services

import (
	"context"
	"strings"
	"time"

	"gallery_backend/internal/auth"
	"gallery_backend/internal/logger"
	"gallery_backend/internal/models"
	"gallery_backend/internal/repositories"
	"gallery_backend/internal/services/dto"
	"gallery_backend/pkg/apperrors"

	"gorm.io/gorm"
)

type AuthService interface {
	SignUp(ctx context.Context, db *gorm.DB, req *dto.SignUpRequest) (*dto.AuthResponse, error)
	SignIn(ctx context.Context, db *gorm.DB, req *dto.SignInRequest) (*dto.AuthResponse, error)
	// SignOut ends the session. Ending an unknown session is not an error.
	SignOut(ctx context.Context, db *gorm.DB, sessionID string) error
	CurrentUser(ctx context.Context, db *gorm.DB, userID string) (*dto.UserResponse, error)
	// Authenticate verifies the token and that its session is still live.
	Authenticate(ctx context.Context, db *gorm.DB, token string) (*auth.Claims, error)
}

type authService struct {
	userRepo    repositories.UserRepository
	sessionRepo repositories.SessionRepository
	tokens      *auth.TokenManager
}

func NewAuthService(
	userRepo repositories.UserRepository,
	sessionRepo repositories.SessionRepository,
	tokens *auth.TokenManager,
) AuthService {
	return &authService{
		userRepo:    userRepo,
		sessionRepo: sessionRepo,
		tokens:      tokens,
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *authService) SignUp(ctx context.Context, db *gorm.DB, req *dto.SignUpRequest) (*dto.AuthResponse, error) {
	email := normalizeEmail(req.Email)

	if err := auth.ValidatePassword(req.Password); err != nil {
		return nil, apperrors.NewValidationError("auth", err.Error())
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	tx := db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return nil, apperrors.InternalError(tx.Error)
	}
	defer tx.Rollback()

	exists, err := s.userRepo.ExistsByEmail(tx, email)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	if exists {
		return nil, apperrors.ErrEmailAlreadyExists
	}

	user := &models.User{
		Email:        email,
		Name:         strings.TrimSpace(req.Name),
		PasswordHash: hash,
	}
	if err := s.userRepo.Create(tx, user); err != nil {
		return nil, handleAuthError(err)
	}

	resp, err := s.openSession(tx, user)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		return nil, handleAuthError(err)
	}

	logger.CtxInfo(ctx, "User signed up", "user_id", user.ID)
	return resp, nil
}

func (s *authService) SignIn(ctx context.Context, db *gorm.DB, req *dto.SignInRequest) (*dto.AuthResponse, error) {
	db = db.WithContext(ctx)

	user, err := s.userRepo.FindByEmail(db, normalizeEmail(req.Email))
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, apperrors.InternalError(err)
	}

	if !auth.CheckPasswordHash(req.Password, user.PasswordHash) {
		return nil, apperrors.ErrInvalidCredentials
	}

	resp, err := s.openSession(db, user)
	if err != nil {
		return nil, err
	}

	logger.CtxInfo(ctx, "User signed in", "user_id", user.ID)
	return resp, nil
}

func (s *authService) SignOut(ctx context.Context, db *gorm.DB, sessionID string) error {
	if err := s.sessionRepo.Delete(db.WithContext(ctx), sessionID); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

func (s *authService) CurrentUser(ctx context.Context, db *gorm.DB, userID string) (*dto.UserResponse, error) {
	user, err := s.userRepo.FindByID(db.WithContext(ctx), userID)
	if err != nil {
		return nil, handleAuthError(err)
	}
	return buildUserResponse(user), nil
}

func (s *authService) Authenticate(ctx context.Context, db *gorm.DB, token string) (*auth.Claims, error) {
	claims, err := s.tokens.Parse(token)
	if err != nil {
		return nil, apperrors.ErrInvalidToken
	}

	session, err := s.sessionRepo.FindActive(db.WithContext(ctx), claims.SessionID(), time.Now())
	if err != nil {
		return nil, handleAuthError(err)
	}
	if session.UserID != claims.UserID {
		return nil, apperrors.ErrInvalidToken
	}
	return claims, nil
}

func (s *authService) openSession(db *gorm.DB, user *models.User) (*dto.AuthResponse, error) {
	now := time.Now()
	session := &models.Session{
		UserID:    user.ID,
		ExpiresAt: now.Add(s.tokens.TTL()),
	}
	if err := s.sessionRepo.Create(db, session); err != nil {
		return nil, apperrors.InternalError(err)
	}

	token, err := s.tokens.Generate(user.ID, session.ID, now, session.ExpiresAt)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	return &dto.AuthResponse{
		User:      buildUserResponse(user),
		Token:     token,
		ExpiresAt: session.ExpiresAt,
	}, nil
}
