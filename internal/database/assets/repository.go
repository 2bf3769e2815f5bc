// Package assets provides database operations for binary image assets.
//
// This package implements the AssetStore interface defined in
// internal/services/interfaces.go.
//
//	var _ services.AssetStore = (*Repository)(nil)
package assets

import (
	"errors"

	"gorm.io/gorm"

	"github.com/andreyp/catalog-importer/internal/entities"
)

// Repository handles all asset database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new asset repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// FindByPath returns the asset stored at the given folder-based path, or
// (nil, nil) when no asset exists there.
func (r *Repository) FindByPath(path string) (*entities.ImageAsset, error) {
	var asset entities.ImageAsset
	err := r.db.Where("path = ?", path).First(&asset).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &asset, nil
}

// Create persists a new asset. The path column carries a unique index, so
// concurrent creates for the same folder + filename cannot produce duplicates.
func (r *Repository) Create(asset *entities.ImageAsset) error {
	if asset.Path == "" {
		asset.Path = asset.FolderPath + "/" + asset.Filename
	}
	return r.db.Create(asset).Error
}

// Count returns the number of stored assets.
func (r *Repository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&entities.ImageAsset{}).Count(&count).Error
	return count, err
}
