package config

import "time"

const (
	// DefaultDatabasePath is the default path for the catalog database
	DefaultDatabasePath = "./catalog.db"

	// DefaultProductFolder is the container path products are created under
	DefaultProductFolder = "/products"

	// DefaultImageFolder is the container path downloaded image assets are created under
	DefaultImageFolder = "/product-images"

	// DefaultFetchTimeout bounds JSON and image retrieval
	DefaultFetchTimeout = 30 * time.Second

	// SystemOwnerID stamps assets created by the importer itself
	SystemOwnerID = uint(1)
)
