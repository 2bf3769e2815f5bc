package services

import "github.com/andreyp/catalog-importer/internal/entities"

// CatalogStore persists Product entities.
// FindByGTIN returns (nil, nil) when no product with that GTIN exists.
type CatalogStore interface {
	FindByGTIN(gtin int64) (*entities.Product, error)
	Save(product *entities.Product) error
}

// AssetStore persists binary assets addressed by folder-based paths.
// FindByPath returns (nil, nil) when no asset exists at the path.
type AssetStore interface {
	FindByPath(path string) (*entities.ImageAsset, error)
	Create(asset *entities.ImageAsset) error
}

// Downloader retrieves raw bytes from a URL or local file path.
type Downloader interface {
	Fetch(source string) ([]byte, error)
}

// BatchImporter runs a full import batch from a JSON source.
// Implemented by importer.Pipeline; consumed by the HTTP and task layers.
type BatchImporter interface {
	ImportFromSource(source string) (BatchResult, error)
}

// Level classifies a per-record diagnostic message.
type Level string

const (
	LevelSuccess Level = "success"
	LevelWarning Level = "warning"
	LevelError   Level = "error"
)

// Message is a single per-record diagnostic, in record order.
type Message struct {
	Level Level  `json:"level"`
	Text  string `json:"text"`
}

// BatchResult contains the outcome of one import batch.
type BatchResult struct {
	SuccessCount int       `json:"success_count"`
	Messages     []Message `json:"messages"`
}

// Warning appends a warning message.
func (r *BatchResult) Warning(text string) {
	r.Messages = append(r.Messages, Message{Level: LevelWarning, Text: text})
}

// Error appends an error message.
func (r *BatchResult) Error(text string) {
	r.Messages = append(r.Messages, Message{Level: LevelError, Text: text})
}

// Success appends a success message.
func (r *BatchResult) Success(text string) {
	r.Messages = append(r.Messages, Message{Level: LevelSuccess, Text: text})
}
