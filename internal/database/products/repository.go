// Package products provides database operations for the product catalog.
//
// This package implements the CatalogStore interface defined in
// internal/services/interfaces.go.
//
//	var _ services.CatalogStore = (*Repository)(nil)
package products

import (
	"errors"

	"gorm.io/gorm"

	"github.com/andreyp/catalog-importer/internal/entities"
)

// Repository handles all product database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new product repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// FindByGTIN returns the product with the given GTIN, or (nil, nil) when
// no such product exists.
func (r *Repository) FindByGTIN(gtin int64) (*entities.Product, error) {
	var product entities.Product
	err := r.db.Preload("Image").Where("gtin = ?", gtin).First(&product).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &product, nil
}

// Save upserts a product. New products (ID == 0) are created and receive a
// store-assigned ID; existing ones are updated in place.
func (r *Repository) Save(product *entities.Product) error {
	if product.ID == 0 {
		return r.db.Create(product).Error
	}
	return r.db.Save(product).Error
}

// FindByID returns a product by its surrogate key.
func (r *Repository) FindByID(id uint) (*entities.Product, error) {
	var product entities.Product
	err := r.db.Preload("Image").First(&product, id).Error
	if err != nil {
		return nil, err
	}
	return &product, nil
}

// GetAll returns every product in the catalog.
func (r *Repository) GetAll() ([]entities.Product, error) {
	var products []entities.Product
	err := r.db.Preload("Image").Order("gtin ASC").Find(&products).Error
	return products, err
}

// Count returns the number of products in the catalog.
func (r *Repository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&entities.Product{}).Count(&count).Error
	return count, err
}
