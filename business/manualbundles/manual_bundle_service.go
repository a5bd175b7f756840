package manualbundles

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"cartBoost/domain"
	"cartBoost/pkg/logger"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// ManualBundleRepository contract interface
type ManualBundleRepository interface {
	Create(ctx context.Context, bundle *domain.ManualBundle) error
	FindByID(ctx context.Context, id string) (domain.ManualBundle, error)
	FindByShop(ctx context.Context, shop string) ([]domain.ManualBundle, error)
	Update(ctx context.Context, bundle *domain.ManualBundle) error
	Delete(ctx context.Context, id string) error
}

type manualBundleService struct {
	bundleRepo ManualBundleRepository
}

func NewManualBundleService(bundleRepo ManualBundleRepository) *manualBundleService {
	return &manualBundleService{
		bundleRepo: bundleRepo,
	}
}

func (s *manualBundleService) GetBundlesByShop(ctx context.Context, shop string) ([]domain.ManualBundle, error) {
	if shop == "" {
		return nil, errors.New("shop is required")
	}

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	bundles, err := s.bundleRepo.FindByShop(ctx, shop)
	if err != nil {
		logger.Error("failed to find manual bundles", err)
		return nil, err
	}

	return bundles, nil
}

func (s *manualBundleService) GetBundleByID(ctx context.Context, id string) (*domain.ManualBundle, error) {
	if id == "" {
		return nil, errors.New("invalid bundle id")
	}

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	bundle, err := s.bundleRepo.FindByID(ctx, id)
	if err != nil {
		logger.Error("failed to find manual bundle by id", err)
		return nil, err
	}

	return &bundle, nil
}

func (s *manualBundleService) CreateBundle(ctx context.Context, bundle *domain.ManualBundle, productIDs []string) (*domain.ManualBundle, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	if err := validateBundle(bundle, productIDs); err != nil {
		logger.Error("invalid manual bundle", err)
		return nil, err
	}

	encoded, err := json.Marshal(productIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to encode product ids: %w", err)
	}

	bundle.ID = uuid.NewString()
	bundle.ProductIDs = datatypes.JSON(encoded)

	if err := s.bundleRepo.Create(ctx, bundle); err != nil {
		logger.Error("failed to create manual bundle", err)
		return nil, fmt.Errorf("failed to create manual bundle: %w", err)
	}

	logger.Info("manual bundle created", "shop", bundle.Shop, "bundle_id", bundle.ID)

	return bundle, nil
}

func (s *manualBundleService) UpdateBundle(ctx context.Context, bundle *domain.ManualBundle, productIDs []string) (*domain.ManualBundle, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	if bundle.ID == "" {
		return nil, errors.New("bundle id is required")
	}

	if err := validateBundle(bundle, productIDs); err != nil {
		logger.Error("invalid manual bundle", err)
		return nil, err
	}

	if _, err := s.bundleRepo.FindByID(ctx, bundle.ID); err != nil {
		logger.Error("manual bundle not found", err)
		return nil, errors.New("manual bundle not found")
	}

	encoded, err := json.Marshal(productIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to encode product ids: %w", err)
	}
	bundle.ProductIDs = datatypes.JSON(encoded)

	if err := s.bundleRepo.Update(ctx, bundle); err != nil {
		logger.Error("failed to update manual bundle", err)
		return nil, fmt.Errorf("failed to update manual bundle: %w", err)
	}

	updated, err := s.bundleRepo.FindByID(ctx, bundle.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch updated bundle: %w", err)
	}

	logger.Info("manual bundle updated", "bundle_id", bundle.ID)

	return &updated, nil
}

func (s *manualBundleService) DeleteBundle(ctx context.Context, id string) error {
	if id == "" {
		return errors.New("invalid bundle id")
	}

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	if _, err := s.bundleRepo.FindByID(ctx, id); err != nil {
		logger.Error("manual bundle not found", err)
		return errors.New("manual bundle not found")
	}

	if err := s.bundleRepo.Delete(ctx, id); err != nil {
		logger.Error("failed to delete manual bundle", err)
		return fmt.Errorf("failed to delete manual bundle: %w", err)
	}

	logger.Info("manual bundle deleted", "bundle_id", id)

	return nil
}

func validateBundle(bundle *domain.ManualBundle, productIDs []string) error {
	if bundle.Shop == "" {
		return errors.New("shop is required")
	}

	if bundle.Name == "" {
		return errors.New("bundle name is required")
	}

	if len(productIDs) < 2 {
		return errors.New("a bundle needs at least 2 products")
	}

	if bundle.DiscountPercent != nil && (*bundle.DiscountPercent < 0 || *bundle.DiscountPercent > 100) {
		return errors.New("discount must be between 0 and 100")
	}

	return nil
}
