package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"cartBoost/domain"

	"gorm.io/gorm"
)

type ManualBundleRepository struct {
	DB *gorm.DB
}

func NewManualBundleRepository(db *gorm.DB) *ManualBundleRepository {
	return &ManualBundleRepository{
		DB: db,
	}
}

func (r *ManualBundleRepository) Create(ctx context.Context, bundle *domain.ManualBundle) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	if err := r.DB.WithContext(ctx).Create(bundle).Error; err != nil {
		return fmt.Errorf("failed to create manual bundle: %w", err)
	}

	return nil
}

func (r *ManualBundleRepository) FindByID(ctx context.Context, id string) (domain.ManualBundle, error) {
	if err := ctx.Err(); err != nil {
		return domain.ManualBundle{}, fmt.Errorf("context error: %w", err)
	}

	var bundle domain.ManualBundle

	err := r.DB.WithContext(ctx).First(&bundle, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ManualBundle{}, errors.New("manual bundle not found")
		}
		return domain.ManualBundle{}, fmt.Errorf("failed to find manual bundle: %w", err)
	}

	return bundle, nil
}

func (r *ManualBundleRepository) FindByShop(ctx context.Context, shop string) ([]domain.ManualBundle, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	var bundles []domain.ManualBundle
	err := r.DB.WithContext(ctx).
		Where("shop = ?", shop).
		Order("created_at DESC").
		Find(&bundles).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find manual bundles: %w", err)
	}

	return bundles, nil
}

// FindActiveByProduct returns active definitions for the shop whose jsonb
// product list contains the given product id, capped at limit.
func (r *ManualBundleRepository) FindActiveByProduct(ctx context.Context, shop, productID string, limit int) ([]domain.ManualBundle, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	containing, err := json.Marshal([]string{productID})
	if err != nil {
		return nil, fmt.Errorf("failed to build containment query: %w", err)
	}

	var bundles []domain.ManualBundle
	err = r.DB.WithContext(ctx).
		Where("shop = ? AND is_active = ?", shop, true).
		Where("product_ids @> ?", string(containing)).
		Order("updated_at DESC").
		Limit(limit).
		Find(&bundles).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find active manual bundles: %w", err)
	}

	return bundles, nil
}

func (r *ManualBundleRepository) Update(ctx context.Context, bundle *domain.ManualBundle) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	updateData := map[string]interface{}{
		"name":             bundle.Name,
		"discount_percent": bundle.DiscountPercent,
		"product_ids":      bundle.ProductIDs,
		"is_active":        bundle.IsActive,
	}

	result := r.DB.WithContext(ctx).Model(&domain.ManualBundle{}).Where("id = ?", bundle.ID).Updates(updateData)
	if result.Error != nil {
		return fmt.Errorf("failed to update manual bundle: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return errors.New("manual bundle not found or already deleted")
	}

	return nil
}

func (r *ManualBundleRepository) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	result := r.DB.WithContext(ctx).Delete(&domain.ManualBundle{}, "id = ?", id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete manual bundle: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return errors.New("manual bundle not found or already deleted")
	}

	return nil
}
