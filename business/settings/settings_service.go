package settings

import (
	"context"
	"errors"
	"fmt"

	"cartBoost/domain"
	"cartBoost/pkg/logger"

	"github.com/pobyzaarif/goshortcute"
)

// SettingsRepository contract interface
type SettingsRepository interface {
	FindByShop(ctx context.Context, shop string) (domain.ShopSettings, error)
	Upsert(ctx context.Context, settings *domain.ShopSettings) error
}

type settingsService struct {
	settingsRepo  SettingsRepository
	encryptionKey string
}

func NewSettingsService(settingsRepo SettingsRepository, encryptionKey string) *settingsService {
	return &settingsService{
		settingsRepo:  settingsRepo,
		encryptionKey: encryptionKey,
	}
}

func (s *settingsService) GetSettings(ctx context.Context, shop string) (*domain.ShopSettings, error) {
	if shop == "" {
		return nil, errors.New("shop is required")
	}

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	settings, err := s.settingsRepo.FindByShop(ctx, shop)
	if err != nil {
		return nil, err
	}

	return &settings, nil
}

// UpsertSettings stores the shop's settings. A non-empty accessToken is
// encrypted before it touches the database; an empty one leaves the stored
// token untouched.
func (s *settingsService) UpsertSettings(ctx context.Context, settings *domain.ShopSettings, accessToken string) (*domain.ShopSettings, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	if settings.Shop == "" {
		logger.Error("invalid settings: shop is required")
		return nil, errors.New("shop is required")
	}

	if settings.DefaultDiscount < 0 || settings.DefaultDiscount > 100 {
		logger.Error("invalid settings: discount out of range")
		return nil, errors.New("default discount must be between 0 and 100")
	}

	if existing, err := s.settingsRepo.FindByShop(ctx, settings.Shop); err == nil {
		settings.ID = existing.ID
		settings.AccessToken = existing.AccessToken
	}

	if accessToken != "" {
		encrypted, err := goshortcute.AESCBCEncrypt([]byte(accessToken), []byte(s.encryptionKey))
		if err != nil {
			logger.Error("failed to encrypt access token", err)
			return nil, fmt.Errorf("failed to encrypt access token: %w", err)
		}
		settings.AccessToken = goshortcute.StringtoBase64Encode(encrypted)
	}

	if err := s.settingsRepo.Upsert(ctx, settings); err != nil {
		logger.Error("failed to save settings", err)
		return nil, fmt.Errorf("failed to save settings: %w", err)
	}

	logger.Info("shop settings saved", "shop", settings.Shop)

	return settings, nil
}

// AccessToken decrypts the shop's stored platform token. Used by the
// catalog client as its per-shop token source.
func (s *settingsService) AccessToken(ctx context.Context, shop string) (string, error) {
	settings, err := s.GetSettings(ctx, shop)
	if err != nil {
		return "", err
	}

	if settings.AccessToken == "" {
		return "", errors.New("shop has no access token configured")
	}

	decoded := goshortcute.StringtoBase64Decode(settings.AccessToken)
	token, err := goshortcute.AESCBCDecrypt([]byte(decoded), []byte(s.encryptionKey))
	if err != nil {
		return "", fmt.Errorf("failed to decrypt access token: %w", err)
	}

	return string(token), nil
}
