package importer

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andreyp/catalog-importer/internal/database"
	"github.com/andreyp/catalog-importer/internal/database/assets"
	"github.com/andreyp/catalog-importer/internal/database/products"
	"github.com/andreyp/catalog-importer/internal/fetcher"
)

// TestImport_EndToEnd runs a full batch against a real sqlite database and a
// real HTTP server for both the JSON document and the image download.
func TestImport_EndToEnd(t *testing.T) {
	imageRequests := 0
	mux := http.NewServeMux()
	mux.HandleFunc("/img/w.png", func(w http.ResponseWriter, r *http.Request) {
		imageRequests++
		w.Header().Set("Content-Type", "image/png")
		w.Write(pngBytes)
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	mux.HandleFunc("/products.json", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, `{"products":[{"name":"Widget","gtin":100,"image":"%s/img/w.png","date":"2024-01-05"}]}`, server.URL)
	})

	db, err := database.NewDatabase(filepath.Join(t.TempDir(), "catalog.db"))
	require.NoError(t, err)
	defer db.Close()

	productRepo := products.NewRepository(db.DB)
	assetRepo := assets.NewRepository(db.DB)

	client := fetcher.NewClient(5 * time.Second)
	pipeline := NewPipeline(
		client,
		NewResolver(assetRepo, client, "/product-images"),
		NewReconciler(productRepo, "/products"),
	)

	result, err := pipeline.ImportFromSource(server.URL + "/products.json")
	require.NoError(t, err)

	assert.Equal(t, 1, result.SuccessCount)
	require.Len(t, result.Messages, 1)

	product, err := productRepo.FindByGTIN(100)
	require.NoError(t, err)
	require.NotNil(t, product)
	assert.Equal(t, "WIDGET", product.Name)
	assert.True(t, product.Published)
	assert.Equal(t, "/products", product.FolderPath)
	require.NotNil(t, product.Date)
	assert.Equal(t, "2024-01-05", product.Date.Format("2006-01-02"))
	require.NotNil(t, product.Image)
	assert.Equal(t, "/product-images/w.png", product.Image.Path)

	// Re-import: same product, same asset, no second download
	result, err = pipeline.ImportFromSource(server.URL + "/products.json")
	require.NoError(t, err)
	assert.Equal(t, 1, result.SuccessCount)

	productCount, err := productRepo.Count()
	require.NoError(t, err)
	assert.Equal(t, int64(1), productCount)

	assetCount, err := assetRepo.Count()
	require.NoError(t, err)
	assert.Equal(t, int64(1), assetCount)

	assert.Equal(t, 1, imageRequests)
}

// TestImport_EndToEnd_LocalFile imports from a filesystem path instead of a URL.
func TestImport_EndToEnd_LocalFile(t *testing.T) {
	dir := t.TempDir()
	jsonPath := filepath.Join(dir, "products.json")
	require.NoError(t, os.WriteFile(jsonPath, []byte(`{"products":[{"name":"widget b","gtin":"0042"}]}`), 0644))

	db, err := database.NewDatabase(filepath.Join(dir, "catalog.db"))
	require.NoError(t, err)
	defer db.Close()

	productRepo := products.NewRepository(db.DB)
	client := fetcher.NewClient(time.Second)
	pipeline := NewPipeline(
		client,
		NewResolver(assets.NewRepository(db.DB), client, "/product-images"),
		NewReconciler(productRepo, "/products"),
	)

	result, err := pipeline.ImportFromSource(jsonPath)
	require.NoError(t, err)
	assert.Equal(t, 1, result.SuccessCount)

	product, err := productRepo.FindByGTIN(42)
	require.NoError(t, err)
	require.NotNil(t, product)
	assert.Equal(t, "WIDGET B", product.Name)
}
