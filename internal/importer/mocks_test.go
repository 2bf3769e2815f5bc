package importer

import (
	"fmt"

	"github.com/andreyp/catalog-importer/internal/entities"
)

// mockAssetStore is an in-memory AssetStore keyed by path.
type mockAssetStore struct {
	assets      map[string]*entities.ImageAsset
	nextID      uint
	findErr     error
	createErr   error
	createCalls int
}

func newMockAssetStore() *mockAssetStore {
	return &mockAssetStore{assets: map[string]*entities.ImageAsset{}}
}

func (m *mockAssetStore) FindByPath(path string) (*entities.ImageAsset, error) {
	if m.findErr != nil {
		return nil, m.findErr
	}
	return m.assets[path], nil
}

func (m *mockAssetStore) Create(asset *entities.ImageAsset) error {
	m.createCalls++
	if m.createErr != nil {
		return m.createErr
	}
	if asset.Path == "" {
		asset.Path = asset.FolderPath + "/" + asset.Filename
	}
	if _, exists := m.assets[asset.Path]; exists {
		return fmt.Errorf("UNIQUE constraint failed: image_assets.path")
	}
	m.nextID++
	asset.ID = m.nextID
	m.assets[asset.Path] = asset
	return nil
}

// mockCatalogStore is an in-memory CatalogStore keyed by GTIN.
type mockCatalogStore struct {
	products map[int64]*entities.Product
	nextID   uint
	findErr  error
	saveErr  error
}

func newMockCatalogStore() *mockCatalogStore {
	return &mockCatalogStore{products: map[int64]*entities.Product{}}
}

func (m *mockCatalogStore) FindByGTIN(gtin int64) (*entities.Product, error) {
	if m.findErr != nil {
		return nil, m.findErr
	}
	return m.products[gtin], nil
}

func (m *mockCatalogStore) Save(product *entities.Product) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	if product.ID == 0 {
		m.nextID++
		product.ID = m.nextID
	}
	m.products[product.GTIN] = product
	return nil
}

// mockDownloader serves canned byte payloads per source.
type mockDownloader struct {
	payloads map[string][]byte
	errs     map[string]error
	calls    []string
}

func newMockDownloader() *mockDownloader {
	return &mockDownloader{payloads: map[string][]byte{}, errs: map[string]error{}}
}

func (m *mockDownloader) Fetch(source string) ([]byte, error) {
	m.calls = append(m.calls, source)
	if err, ok := m.errs[source]; ok {
		return nil, err
	}
	data, ok := m.payloads[source]
	if !ok {
		return nil, fmt.Errorf("no payload for %s", source)
	}
	return data, nil
}
