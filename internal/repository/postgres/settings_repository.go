package postgres

import (
	"context"
	"errors"
	"fmt"

	"cartBoost/domain"

	"gorm.io/gorm"
)

type SettingsRepository struct {
	DB *gorm.DB
}

func NewSettingsRepository(db *gorm.DB) *SettingsRepository {
	return &SettingsRepository{
		DB: db,
	}
}

func (r *SettingsRepository) FindByShop(ctx context.Context, shop string) (domain.ShopSettings, error) {
	if err := ctx.Err(); err != nil {
		return domain.ShopSettings{}, fmt.Errorf("context error: %w", err)
	}

	var settings domain.ShopSettings

	err := r.DB.WithContext(ctx).First(&settings, "shop = ?", shop).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ShopSettings{}, errors.New("settings not found")
		}
		return domain.ShopSettings{}, fmt.Errorf("failed to find settings: %w", err)
	}

	return settings, nil
}

func (r *SettingsRepository) Upsert(ctx context.Context, settings *domain.ShopSettings) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	if settings.ID == 0 {
		if err := r.DB.WithContext(ctx).Create(settings).Error; err != nil {
			return fmt.Errorf("failed to create settings: %w", err)
		}
		return nil
	}

	updateData := map[string]interface{}{
		"drawer_enabled":   settings.DrawerEnabled,
		"default_discount": settings.DefaultDiscount,
		"bundle_title":     settings.BundleTitle,
		"access_token":     settings.AccessToken,
	}

	result := r.DB.WithContext(ctx).Model(&domain.ShopSettings{}).Where("id = ?", settings.ID).Updates(updateData)
	if result.Error != nil {
		return fmt.Errorf("failed to update settings: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return errors.New("settings not found")
	}

	return nil
}
