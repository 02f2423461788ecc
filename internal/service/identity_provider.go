//go:generate mockery --name IdentityProvider --output ./mocks --outpkg mocks --case=underscore
package service

import (
	"context"
	"errors"
	"fmt"

	"go_climb_keep/internal/middleware"
	"go_climb_keep/internal/model"
	"go_climb_keep/internal/repository"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// ErrInvalidCredentials はメールアドレスかパスワードが一致しないことを表します
var ErrInvalidCredentials = errors.New("invalid credentials")

// IdentityProvider は資格情報の登録と照合を行う認証プロバイダです
type IdentityProvider interface {
	// SignUp は userID に紐づく資格情報を tx 内で登録します
	SignUp(ctx context.Context, tx *gorm.DB, userID uuid.UUID, email, password string) error
	// SignIn は資格情報を照合し、一致したユーザーのIDを返します
	SignIn(ctx context.Context, email, password string) (uuid.UUID, error)
	// SetPassword は既存の資格情報のパスワードを置き換えます。なければ作成します。
	SetPassword(ctx context.Context, tx *gorm.DB, userID uuid.UUID, email, password string) error
}

// localIdentityProvider は bcrypt ハッシュを identities テーブルに保存する実装です
type localIdentityProvider struct {
	db           *gorm.DB
	identityRepo repository.IdentityRepository
	cost         int
}

func NewLocalIdentityProvider(db *gorm.DB, identityRepo repository.IdentityRepository) IdentityProvider {
	return &localIdentityProvider{
		db:           db,
		identityRepo: identityRepo,
		cost:         bcrypt.DefaultCost,
	}
}

func (p *localIdentityProvider) SignUp(ctx context.Context, tx *gorm.DB, userID uuid.UUID, email, password string) error {
	hash, err := p.hash(password)
	if err != nil {
		return err
	}

	identity := &model.Identity{
		UserID:       userID,
		AuthProvider: model.AuthProviderLocal,
		ProviderID:   email,
		PasswordHash: &hash,
	}
	if err := p.identityRepo.Create(ctx, tx, identity); err != nil {
		return fmt.Errorf("localIdentityProvider.SignUp: %w", err)
	}
	return nil
}

func (p *localIdentityProvider) SignIn(ctx context.Context, email, password string) (uuid.UUID, error) {
	logger := middleware.GetLogger(ctx)

	identity, err := p.identityRepo.FindByProvider(ctx, p.db, model.AuthProviderLocal, email)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return uuid.Nil, ErrInvalidCredentials
		}
		return uuid.Nil, fmt.Errorf("localIdentityProvider.SignIn: %w", err)
	}
	if identity.PasswordHash == nil {
		logger.Warn("Local identity has no password hash", "identity_id", identity.ID)
		return uuid.Nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(*identity.PasswordHash), []byte(password)); err != nil {
		return uuid.Nil, ErrInvalidCredentials
	}
	return identity.UserID, nil
}

func (p *localIdentityProvider) SetPassword(ctx context.Context, tx *gorm.DB, userID uuid.UUID, email, password string) error {
	identity, err := p.identityRepo.FindByProvider(ctx, tx, model.AuthProviderLocal, email)
	if errors.Is(err, model.ErrNotFound) {
		return p.SignUp(ctx, tx, userID, email, password)
	}
	if err != nil {
		return fmt.Errorf("localIdentityProvider.SetPassword: %w", err)
	}

	hash, err := p.hash(password)
	if err != nil {
		return err
	}
	if err := p.identityRepo.UpdatePasswordHash(ctx, tx, identity.ID, hash); err != nil {
		return fmt.Errorf("localIdentityProvider.SetPassword: %w", err)
	}
	return nil
}

func (p *localIdentityProvider) hash(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), p.cost)
	if err != nil {
		return "", fmt.Errorf("localIdentityProvider.hash: %w", err)
	}
	return string(hashed), nil
}
