// Package database provides the gorm-backed persistence layer.
//
// The top-level package owns connection setup and schema migration.
// Per-aggregate repositories live in subpackages:
//
//   - products: catalog store (find by GTIN, upsert)
//   - assets: image asset store (find by path, create)
package database
