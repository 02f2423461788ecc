//go:generate mockery --name AuthService --output ./mocks --outpkg mocks --case=underscore
package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"go_climb_keep/internal/config"
	"go_climb_keep/internal/middleware"
	"go_climb_keep/internal/model"
	"go_climb_keep/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// VerificationTokenTTL はメール確認リンクの有効期間です
const VerificationTokenTTL = 24 * time.Hour

const (
	MsgInvalidCredentials = "Invalid login credentials"
	MsgEmailNotConfirmed  = "Email not confirmed"
	MsgFailedCreateUser   = "Failed to create user"
)

type AuthService interface {
	SignUp(ctx context.Context, req *model.SignUpRequest) (*model.User, error)
	VerifyEmail(ctx context.Context, token string) error
	Login(ctx context.Context, req *model.LoginRequest) (*model.User, error)
	GetUser(ctx context.Context, userID uuid.UUID) (*model.User, error)
	SeedUser(ctx context.Context, email, name, password string) (*model.User, error)
}

type authService struct {
	db        *gorm.DB
	userRepo  repository.UserRepository
	tokenRepo repository.TokenRepository
	identity  IdentityProvider
	mailer    Mailer
	cfg       *config.Config
	now       func() time.Time
}

// NewAuthService は AuthService の新しいインスタンスを生成します
func NewAuthService(db *gorm.DB, userRepo repository.UserRepository, tokenRepo repository.TokenRepository, identity IdentityProvider, mailer Mailer, cfg *config.Config) AuthService {
	return &authService{
		db:        db,
		userRepo:  userRepo,
		tokenRepo: tokenRepo,
		identity:  identity,
		mailer:    mailer,
		cfg:       cfg,
		now:       time.Now,
	}
}

// SignUp はユーザーと資格情報を作成し、確認メールを送信します。
// メール送信に失敗した場合はトランザクションごと取り消します。
func (s *authService) SignUp(ctx context.Context, req *model.SignUpRequest) (*model.User, error) {
	logger := middleware.GetLogger(ctx)
	var newUser *model.User

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		_, err := s.userRepo.FindByEmail(ctx, tx, req.Email)
		if err == nil {
			logger.Warn("Email already exists", "email", req.Email)
			return model.NewAppError("DUPLICATE_EMAIL", "User already registered", "email", model.ErrConflict)
		}
		if !errors.Is(err, model.ErrNotFound) {
			return model.NewAppError("INTERNAL_SERVER_ERROR", MsgFailedCreateUser, "", err)
		}

		user := &model.User{
			ID:    uuid.New(),
			Name:  req.Name,
			Email: req.Email,
		}
		if err := s.userRepo.Create(ctx, tx, user); err != nil {
			if errors.Is(err, model.ErrConflict) {
				logger.Warn("Conflict during user creation (race condition)", "error", err)
				return model.NewAppError("DUPLICATE_EMAIL", "User already registered", "email", model.ErrConflict)
			}
			return model.NewAppError("INTERNAL_SERVER_ERROR", MsgFailedCreateUser, "", err)
		}

		if err := s.identity.SignUp(ctx, tx, user.ID, user.Email, req.Password); err != nil {
			if errors.Is(err, model.ErrConflict) {
				return model.NewAppError("DUPLICATE_EMAIL", "User already registered", "email", model.ErrConflict)
			}
			logger.Error("Failed to register identity", "error", err)
			return model.NewAppError("INTERNAL_SERVER_ERROR", MsgFailedCreateUser, "", err)
		}
		newUser = user

		tokenString, err := s.generateAndSaveVerificationToken(ctx, tx, user.ID)
		if err != nil {
			return err
		}

		if err := s.sendVerificationEmail(ctx, user.Email, tokenString); err != nil {
			return model.NewAppError("EMAIL_SEND_FAILED", "Failed to send confirmation email", "", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info("User signed up and verification email sent", "user_id", newUser.ID, "email", newUser.Email)
	return newUser, nil
}

// VerifyEmail はトークンを検証し、メールアドレスを確認済みにします
func (s *authService) VerifyEmail(ctx context.Context, tokenString string) error {
	logger := middleware.GetLogger(ctx)
	if tokenString == "" {
		return model.NewAppError("INVALID_TOKEN", "No token provided", "token", model.ErrInvalidInput)
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		token, err := s.tokenRepo.FindVerificationToken(ctx, tx, tokenString)
		if err != nil {
			if errors.Is(err, model.ErrNotFound) {
				logger.Warn("Verification token not found")
				return model.NewAppError("INVALID_TOKEN", "This link is invalid or has already been used", "token", model.ErrInvalidInput)
			}
			return model.NewAppError("INTERNAL_SERVER_ERROR", "Failed to verify email", "", err)
		}

		if s.now().After(token.ExpiresAt) {
			logger.Warn("Verification token expired", "expires_at", token.ExpiresAt)
			_ = s.tokenRepo.DeleteVerificationToken(ctx, tx, tokenString)
			return model.NewAppError("INVALID_TOKEN", "This link has expired", "token", model.ErrInvalidInput)
		}

		if err := s.userRepo.MarkEmailVerified(ctx, tx, token.UserID); err != nil {
			if errors.Is(err, model.ErrNotFound) {
				return model.NewAppError("NOT_FOUND", "Account not found", "", model.ErrNotFound)
			}
			return model.NewAppError("INTERNAL_SERVER_ERROR", "Failed to verify email", "", err)
		}

		if err := s.tokenRepo.DeleteVerificationToken(ctx, tx, tokenString); err != nil {
			// 使用済みトークンの削除失敗は致命的ではない
			logger.Error("Failed to delete used verification token", "error", err)
		}

		logger.Info("Email verified", "user_id", token.UserID)
		return nil
	})
}

// Login は資格情報を照合してユーザーを返します。Cookieの発行はハンドラ側の責務です。
func (s *authService) Login(ctx context.Context, req *model.LoginRequest) (*model.User, error) {
	logger := middleware.GetLogger(ctx).With("email", req.Email)

	userID, err := s.identity.SignIn(ctx, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			logger.Warn("Login failed: invalid credentials")
			return nil, model.NewAppError("AUTHENTICATION_FAILED", MsgInvalidCredentials, "", model.ErrInvalidInput)
		}
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "Failed to sign in", "", err)
	}

	user, err := s.userRepo.FindByID(ctx, s.db, userID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			// 資格情報だけが残っている状態
			logger.Warn("Login failed: identity without user", "user_id", userID)
			return nil, model.NewAppError("AUTHENTICATION_FAILED", MsgInvalidCredentials, "", model.ErrInvalidInput)
		}
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "Failed to sign in", "", err)
	}

	if s.cfg.Auth.RequireVerification && !user.EmailVerified {
		logger.Warn("Login failed: email not confirmed", "user_id", user.ID)
		return nil, model.NewAppError("EMAIL_NOT_CONFIRMED", MsgEmailNotConfirmed, "email", model.ErrForbidden)
	}

	logger.Info("Login successful", "user_id", user.ID)
	return user, nil
}

// GetUser は指定されたIDのユーザーを取得します
func (s *authService) GetUser(ctx context.Context, userID uuid.UUID) (*model.User, error) {
	user, err := s.userRepo.FindByID(ctx, s.db, userID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil, model.NewAppError("USER_NOT_FOUND", "User not found", "", model.ErrNotFound)
		}
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "Failed to load user", "", err)
	}
	return user, nil
}

// SeedUser は確認済みユーザーを作成または更新します (seed コマンド用)
func (s *authService) SeedUser(ctx context.Context, email, name, password string) (*model.User, error) {
	logger := middleware.GetLogger(ctx)
	var seeded *model.User

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		user, err := s.userRepo.FindByEmail(ctx, tx, email)
		switch {
		case errors.Is(err, model.ErrNotFound):
			user = &model.User{ID: uuid.New(), Email: email, Name: name, EmailVerified: true}
			if err := s.userRepo.Create(ctx, tx, user); err != nil {
				return fmt.Errorf("authService.SeedUser: %w", err)
			}
		case err != nil:
			return fmt.Errorf("authService.SeedUser: %w", err)
		default:
			if err := tx.Model(user).Updates(map[string]interface{}{"name": name, "email_verified": true}).Error; err != nil {
				return fmt.Errorf("authService.SeedUser: update: %w", err)
			}
			user.Name = name
			user.EmailVerified = true
		}

		if err := s.identity.SetPassword(ctx, tx, user.ID, email, password); err != nil {
			return fmt.Errorf("authService.SeedUser: %w", err)
		}
		seeded = user
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info("Seeded user", "user_id", seeded.ID, "email", seeded.Email)
	return seeded, nil
}

// --- ヘルパー関数 ---

func (s *authService) generateAndSaveVerificationToken(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (string, error) {
	logger := middleware.GetLogger(ctx)
	tokenBytes := make([]byte, 32)
	if _, err := rand.Read(tokenBytes); err != nil {
		logger.Error("Failed to generate random bytes for token", "error", err)
		return "", model.NewAppError("INTERNAL_SERVER_ERROR", MsgFailedCreateUser, "", err)
	}
	tokenString := hex.EncodeToString(tokenBytes)

	verificationToken := &model.UserVerificationToken{
		Token:     tokenString,
		UserID:    userID,
		ExpiresAt: s.now().Add(VerificationTokenTTL),
	}
	if err := s.tokenRepo.CreateVerificationToken(ctx, tx, verificationToken); err != nil {
		return "", model.NewAppError("INTERNAL_SERVER_ERROR", MsgFailedCreateUser, "", err)
	}
	return tokenString, nil
}

func (s *authService) sendVerificationEmail(ctx context.Context, email, token string) error {
	logger := middleware.GetLogger(ctx)
	verifyURL := fmt.Sprintf("%s/verify-email?token=%s", s.cfg.App.FrontendURL, token)
	subject := fmt.Sprintf("[%s] Confirm your email address", s.cfg.App.Name)
	body := fmt.Sprintf("Thanks for signing up to %s.\n\nConfirm your email address by opening the link below:\n%s\n\nThis link expires in 24 hours.", s.cfg.App.Name, verifyURL)

	logger.Info("Sending verification email", "to", email)
	return s.mailer.Send(ctx, email, subject, body)
}
