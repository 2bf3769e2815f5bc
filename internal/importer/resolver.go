package importer

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"path"
	"strings"

	"github.com/andreyp/catalog-importer/internal/config"
	"github.com/andreyp/catalog-importer/internal/entities"
	"github.com/andreyp/catalog-importer/internal/fetcher"
	"github.com/andreyp/catalog-importer/internal/services"
)

var (
	// ErrAssetNotFound means an internally-referenced asset is absent or
	// not an image. Internal references are never materialized.
	ErrAssetNotFound = errors.New("asset not found")

	// ErrDownload means an external image could not be retrieved.
	ErrDownload = errors.New("failed to download image")
)

// Resolver turns an image reference into a stored image asset.
//
// External URLs are downloaded once per distinct filename and reused from
// the asset store afterwards; internal paths are looked up only.
type Resolver struct {
	assets      services.AssetStore
	downloader  services.Downloader
	imageFolder string
}

// NewResolver creates an asset resolver creating assets under imageFolder.
func NewResolver(assets services.AssetStore, downloader services.Downloader, imageFolder string) *Resolver {
	if imageFolder == "" {
		imageFolder = config.DefaultImageFolder
	}
	return &Resolver{
		assets:      assets,
		downloader:  downloader,
		imageFolder: imageFolder,
	}
}

// Resolve returns an existing or newly materialized image asset for the
// given reference. gtinToken is used to synthesize a filename when the URL
// path has none.
func (r *Resolver) Resolve(imageRef, gtinToken string) (*entities.ImageAsset, error) {
	if fetcher.IsURL(imageRef) {
		return r.resolveExternal(imageRef, gtinToken)
	}
	return r.lookupInternal(imageRef)
}

// resolveExternal reuses an asset already stored under the image folder with
// the URL's filename, downloading and creating it only on first sight.
func (r *Resolver) resolveExternal(imageRef, gtinToken string) (*entities.ImageAsset, error) {
	filename := filenameFromURL(imageRef)
	if filename == "" {
		filename = "product-" + gtinToken + ".jpg"
	}

	assetPath := r.imageFolder + "/" + filename
	existing, err := r.assets.FindByPath(assetPath)
	if err != nil {
		return nil, fmt.Errorf("lookup %s: %w", assetPath, err)
	}
	if existing != nil && existing.IsImage() {
		return existing, nil
	}

	binary, err := r.downloader.Fetch(imageRef)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrDownload, imageRef)
	}

	asset := &entities.ImageAsset{
		FolderPath: r.imageFolder,
		Filename:   filename,
		Path:       assetPath,
		MimeType:   http.DetectContentType(binary),
		Data:       binary,
		OwnerID:    config.SystemOwnerID,
	}
	if err := r.assets.Create(asset); err != nil {
		return nil, fmt.Errorf("create asset %s: %w", assetPath, err)
	}

	return asset, nil
}

// lookupInternal resolves a reference to an already stored asset. Absent or
// non-image assets report ErrAssetNotFound; nothing is ever created.
func (r *Resolver) lookupInternal(imageRef string) (*entities.ImageAsset, error) {
	if !strings.HasPrefix(imageRef, "/") {
		imageRef = "/" + imageRef
	}

	asset, err := r.assets.FindByPath(imageRef)
	if err != nil {
		return nil, fmt.Errorf("lookup %s: %w", imageRef, err)
	}
	if asset == nil || !asset.IsImage() {
		return nil, ErrAssetNotFound
	}
	return asset, nil
}

// filenameFromURL derives a filename from the URL's path component.
func filenameFromURL(imageRef string) string {
	parsed, err := url.Parse(imageRef)
	if err != nil || parsed.Path == "" {
		return ""
	}
	base := path.Base(parsed.Path)
	if base == "." || base == "/" {
		return ""
	}
	return base
}
