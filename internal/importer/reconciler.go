package importer

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/araddon/dateparse"

	"github.com/andreyp/catalog-importer/internal/config"
	"github.com/andreyp/catalog-importer/internal/entities"
	"github.com/andreyp/catalog-importer/internal/services"
)

var (
	// ErrInitFailed means the target product could not be found or created.
	ErrInitFailed = errors.New("failed to init product")

	// ErrSaveFailed means the product could not be persisted.
	ErrSaveFailed = errors.New("failed to save product")
)

// Reconciler applies one normalized record onto the catalog: it finds or
// creates the product for the record's GTIN and upserts its fields.
type Reconciler struct {
	catalog       services.CatalogStore
	productFolder string
}

// NewReconciler creates a reconciler placing new products under productFolder.
func NewReconciler(catalog services.CatalogStore, productFolder string) *Reconciler {
	if productFolder == "" {
		productFolder = config.DefaultProductFolder
	}
	return &Reconciler{
		catalog:       catalog,
		productFolder: productFolder,
	}
}

// Reconcile upserts the product for the record. Field-level problems that
// should not fail the record (an unparseable date) come back as warnings;
// only init and save failures are errors.
func (r *Reconciler) Reconcile(record ImportRecord, asset *entities.ImageAsset) (*entities.Product, []string, error) {
	product, err := r.getOrCreateByGTIN(record)
	if err != nil {
		return nil, nil, fmt.Errorf("%w with GTIN %d: %v", ErrInitFailed, record.GTIN, err)
	}

	var warnings []string

	// Name is normalized to upper case unconditionally.
	product.SetName(record.Name)

	if record.Date != "" {
		parsed, err := dateparse.ParseAny(record.Date)
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("GTIN %d: invalid date '%s' - %v", record.GTIN, record.Date, err))
		} else {
			product.Date = &parsed
		}
	}

	if asset != nil {
		product.Image = asset
		product.ImageID = &asset.ID
	}

	// Re-apply the GTIN from the original token. A decorated token is
	// reduced to its digits; a token with none leaves the field alone.
	if isDigits(record.GTINRaw) {
		if n, err := strconv.ParseInt(record.GTINRaw, 10, 64); err == nil {
			product.GTIN = n
		}
	} else if digits := stripNonDigits(record.GTINRaw); digits != "" {
		if n, err := strconv.ParseInt(digits, 10, 64); err == nil {
			product.GTIN = n
		}
	}

	if err := r.catalog.Save(product); err != nil {
		return nil, warnings, fmt.Errorf("%w GTIN %d: %v", ErrSaveFailed, record.GTIN, err)
	}

	return product, warnings, nil
}

// getOrCreateByGTIN loads the existing product for the GTIN or constructs a
// fresh one under the product folder. New products stay unpersisted until
// Reconcile saves them.
func (r *Reconciler) getOrCreateByGTIN(record ImportRecord) (*entities.Product, error) {
	existing, err := r.catalog.FindByGTIN(record.GTIN)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}

	return &entities.Product{
		GTIN:       record.GTIN,
		Key:        strconv.FormatInt(record.GTIN, 10),
		Published:  true,
		FolderPath: r.productFolder,
	}, nil
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
