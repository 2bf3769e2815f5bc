package importer

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andreyp/catalog-importer/internal/entities"
)

func TestReconcile_CreatesNewProduct(t *testing.T) {
	catalog := newMockCatalogStore()
	reconciler := NewReconciler(catalog, "/products")

	product, warnings, err := reconciler.Reconcile(ImportRecord{
		Name:    "widget a",
		GTIN:    100,
		GTINRaw: "100",
	}, nil)

	require.NoError(t, err)
	assert.Empty(t, warnings)
	assert.NotZero(t, product.ID)
	assert.Equal(t, int64(100), product.GTIN)
	assert.Equal(t, "100", product.Key)
	assert.Equal(t, "/products", product.FolderPath)
	assert.True(t, product.Published)
	assert.Equal(t, "WIDGET A", product.Name)
	assert.Nil(t, product.Date)
	assert.Nil(t, product.Image)
}

func TestReconcile_ReimportMutatesSameProduct(t *testing.T) {
	catalog := newMockCatalogStore()
	reconciler := NewReconciler(catalog, "/products")

	first, _, err := reconciler.Reconcile(ImportRecord{Name: "widget", GTIN: 100, GTINRaw: "100"}, nil)
	require.NoError(t, err)

	second, _, err := reconciler.Reconcile(ImportRecord{Name: "renamed widget", GTIN: 100, GTINRaw: "100"}, nil)
	require.NoError(t, err)

	// Same entity, not a duplicate
	assert.Equal(t, first.ID, second.ID)
	assert.Len(t, catalog.products, 1)
	assert.Equal(t, "RENAMED WIDGET", catalog.products[100].Name)
}

func TestReconcile_ParsesDate(t *testing.T) {
	catalog := newMockCatalogStore()
	reconciler := NewReconciler(catalog, "/products")

	product, warnings, err := reconciler.Reconcile(ImportRecord{
		Name:    "Widget",
		GTIN:    100,
		GTINRaw: "100",
		Date:    "2024-01-05",
	}, nil)

	require.NoError(t, err)
	assert.Empty(t, warnings)
	require.NotNil(t, product.Date)
	assert.Equal(t, 2024, product.Date.Year())
	assert.Equal(t, time.January, product.Date.Month())
	assert.Equal(t, 5, product.Date.Day())
}

func TestReconcile_InvalidDateWarnsAndSaves(t *testing.T) {
	catalog := newMockCatalogStore()
	reconciler := NewReconciler(catalog, "/products")

	product, warnings, err := reconciler.Reconcile(ImportRecord{
		Name:    "Widget",
		GTIN:    100,
		GTINRaw: "100",
		Date:    "not-a-date",
	}, nil)

	require.NoError(t, err)
	require.Len(t, warnings, 1)
	assert.Contains(t, warnings[0], "invalid date 'not-a-date'")
	assert.Nil(t, product.Date)
	// The record is still saved
	assert.Len(t, catalog.products, 1)
}

func TestReconcile_InvalidDateKeepsExistingDate(t *testing.T) {
	catalog := newMockCatalogStore()
	existing := time.Date(2023, 6, 1, 0, 0, 0, 0, time.UTC)
	catalog.products[100] = &entities.Product{ID: 1, GTIN: 100, Name: "WIDGET", Date: &existing}

	reconciler := NewReconciler(catalog, "/products")

	product, warnings, err := reconciler.Reconcile(ImportRecord{
		Name:    "Widget",
		GTIN:    100,
		GTINRaw: "100",
		Date:    "garbage",
	}, nil)

	require.NoError(t, err)
	assert.Len(t, warnings, 1)
	require.NotNil(t, product.Date)
	assert.Equal(t, existing, *product.Date)
}

func TestReconcile_AttachesAsset(t *testing.T) {
	catalog := newMockCatalogStore()
	reconciler := NewReconciler(catalog, "/products")

	asset := &entities.ImageAsset{ID: 9, Path: "/product-images/w.png", MimeType: "image/png"}

	product, _, err := reconciler.Reconcile(ImportRecord{Name: "Widget", GTIN: 100, GTINRaw: "100"}, asset)

	require.NoError(t, err)
	assert.Same(t, asset, product.Image)
	require.NotNil(t, product.ImageID)
	assert.Equal(t, uint(9), *product.ImageID)
}

func TestReconcile_NilAssetLeavesImageUntouched(t *testing.T) {
	catalog := newMockCatalogStore()
	imageID := uint(4)
	catalog.products[100] = &entities.Product{ID: 1, GTIN: 100, ImageID: &imageID}

	reconciler := NewReconciler(catalog, "/products")

	product, _, err := reconciler.Reconcile(ImportRecord{Name: "Widget", GTIN: 100, GTINRaw: "100"}, nil)

	require.NoError(t, err)
	require.NotNil(t, product.ImageID)
	assert.Equal(t, uint(4), *product.ImageID)
}

func TestReconcile_GTINReapply(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		gtin int64
		want int64
	}{
		{name: "purely numeric token set directly", raw: "00012345", gtin: 12345, want: 12345},
		{name: "decorated token reduced to digits", raw: "GTIN:00012345", gtin: 12345, want: 12345},
		{name: "token without digits leaves field alone", raw: "???", gtin: 77, want: 77},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			catalog := newMockCatalogStore()
			reconciler := NewReconciler(catalog, "/products")

			product, _, err := reconciler.Reconcile(ImportRecord{
				Name:    "Widget",
				GTIN:    tt.gtin,
				GTINRaw: tt.raw,
			}, nil)

			require.NoError(t, err)
			assert.Equal(t, tt.want, product.GTIN)
		})
	}
}

func TestReconcile_InitFailure(t *testing.T) {
	catalog := newMockCatalogStore()
	catalog.findErr = errors.New("store unavailable")

	reconciler := NewReconciler(catalog, "/products")

	_, _, err := reconciler.Reconcile(ImportRecord{Name: "Widget", GTIN: 100, GTINRaw: "100"}, nil)
	assert.ErrorIs(t, err, ErrInitFailed)
}

func TestReconcile_SaveFailure(t *testing.T) {
	catalog := newMockCatalogStore()
	catalog.saveErr = errors.New("disk full")

	reconciler := NewReconciler(catalog, "/products")

	_, _, err := reconciler.Reconcile(ImportRecord{Name: "Widget", GTIN: 100, GTINRaw: "100"}, nil)
	assert.ErrorIs(t, err, ErrSaveFailed)
}
