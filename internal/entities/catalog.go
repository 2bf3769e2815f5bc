package entities

import (
	"strings"
	"time"

	"gorm.io/gorm"
)

// Product is a catalog entry keyed by its GTIN.
// The GTIN is the business key shared across imports; ID is assigned by the store.
type Product struct {
	ID         uint       `gorm:"primaryKey" json:"id"`
	GTIN       int64      `gorm:"uniqueIndex;column:gtin" json:"gtin"`
	Key        string     `gorm:"size:64" json:"key"`          // slug, derived from the GTIN token
	Name       string     `gorm:"size:512" json:"name"`        // always stored upper-cased
	Date       *time.Time `json:"date,omitempty"`
	Published  bool       `gorm:"default:false" json:"published"`
	FolderPath string     `gorm:"size:512" json:"folder_path"` // container path, e.g. /products

	ImageID *uint       `gorm:"index" json:"image_id,omitempty"`
	Image   *ImageAsset `gorm:"foreignKey:ImageID" json:"image,omitempty"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

// SetName stores the name upper-cased. All import code paths go through here.
func (p *Product) SetName(name string) {
	p.Name = strings.ToUpper(name)
}

// BeforeSave re-normalizes the name so that a Product mutated outside of
// SetName still cannot persist a non-upper-case name.
func (p *Product) BeforeSave(tx *gorm.DB) error {
	p.Name = strings.ToUpper(p.Name)
	return nil
}

// ImageAsset is a binary asset addressed by its folder + filename path.
type ImageAsset struct {
	ID         uint   `gorm:"primaryKey" json:"id"`
	FolderPath string `gorm:"size:512" json:"folder_path"`
	Filename   string `gorm:"size:255" json:"filename"`
	Path       string `gorm:"uniqueIndex;size:768" json:"path"` // FolderPath + "/" + Filename
	MimeType   string `gorm:"size:100" json:"mime_type"`
	Data       []byte `gorm:"type:blob" json:"-"`
	OwnerID    uint   `json:"owner_id"` // ownership stamp for system-created assets

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

// IsImage reports whether the asset holds image content.
func (a *ImageAsset) IsImage() bool {
	return strings.HasPrefix(a.MimeType, "image/")
}

func (Product) TableName() string {
	return "products"
}

func (ImageAsset) TableName() string {
	return "image_assets"
}
