package bundles

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"cartBoost/domain"

	"gorm.io/datatypes"
)

// fakeCatalog is an in-memory CatalogRepository with call counters.
type fakeCatalog struct {
	anchor      domain.CatalogProduct
	byID        map[string]domain.CatalogProduct
	recs        []domain.CatalogProduct
	bestSelling []domain.CatalogProduct
	err         error

	getCalls   int
	batchCalls int
	recCalls   int
	listCalls  int
}

func (f *fakeCatalog) GetProduct(ctx context.Context, shop, productID string) (domain.CatalogProduct, error) {
	f.getCalls++
	if f.err != nil {
		return domain.CatalogProduct{}, f.err
	}
	if f.anchor.ID == productID {
		return f.anchor, nil
	}
	if p, ok := f.byID[productID]; ok {
		return p, nil
	}
	return domain.CatalogProduct{}, errors.New("product not found")
}

func (f *fakeCatalog) GetProductsByIDs(ctx context.Context, shop string, productIDs []string) ([]domain.CatalogProduct, error) {
	f.batchCalls++
	if f.err != nil {
		return nil, f.err
	}
	out := make([]domain.CatalogProduct, 0, len(productIDs))
	for _, id := range productIDs {
		if p, ok := f.byID[id]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeCatalog) GetRecommendations(ctx context.Context, shop, productID string) ([]domain.CatalogProduct, error) {
	f.recCalls++
	if f.err != nil {
		return nil, f.err
	}
	return f.recs, nil
}

func (f *fakeCatalog) ListBestSelling(ctx context.Context, shop string, first int) ([]domain.CatalogProduct, error) {
	f.listCalls++
	if f.err != nil {
		return nil, f.err
	}
	if len(f.bestSelling) > first {
		return f.bestSelling[:first], nil
	}
	return f.bestSelling, nil
}

type fakeManualRepo struct {
	defs  []domain.ManualBundle
	err   error
	calls int
}

func (f *fakeManualRepo) FindActiveByProduct(ctx context.Context, shop, productID string, limit int) ([]domain.ManualBundle, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	if len(f.defs) > limit {
		return f.defs[:limit], nil
	}
	return f.defs, nil
}

// stubResolver returns a fixed result and counts invocations.
type stubResolver struct {
	out   []domain.GeneratedBundle
	calls int
}

func (s *stubResolver) Resolve(ctx context.Context, p ResolveParams) []domain.GeneratedBundle {
	s.calls++
	return s.out
}

func productIDsJSON(t *testing.T, ids ...string) datatypes.JSON {
	t.Helper()
	encoded, err := json.Marshal(ids)
	if err != nil {
		t.Fatalf("marshal product ids: %v", err)
	}
	return datatypes.JSON(encoded)
}

func floatPtr(v float64) *float64 {
	return &v
}
