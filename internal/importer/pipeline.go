package importer

import (
	"errors"
	"fmt"

	"github.com/andreyp/catalog-importer/internal/entities"
	"github.com/andreyp/catalog-importer/internal/fetcher"
	"github.com/andreyp/catalog-importer/internal/services"
)

// ErrSchema means the decoded document does not carry a "products" array.
// Like fetch and parse failures, it aborts the whole batch.
var ErrSchema = errors.New(`invalid JSON structure: expected key "products" with an array value`)

// Pipeline drives one import batch: fetch, decode, then an ordered pass
// over the records with per-record failure isolation.
type Pipeline struct {
	downloader services.Downloader
	resolver   *Resolver
	reconciler *Reconciler
}

// NewPipeline creates an import pipeline.
func NewPipeline(downloader services.Downloader, resolver *Resolver, reconciler *Reconciler) *Pipeline {
	return &Pipeline{
		downloader: downloader,
		resolver:   resolver,
		reconciler: reconciler,
	}
}

var _ services.BatchImporter = (*Pipeline)(nil)

// ImportFromSource fetches a JSON document from a URL or file path and
// upserts every product record in it.
//
// Fetch, parse and schema failures abort the batch and are returned as the
// error, with no partial result. Everything per-record is converted into a
// diagnostic message and the pass continues to the next record.
func (p *Pipeline) ImportFromSource(source string) (services.BatchResult, error) {
	data, err := p.downloader.Fetch(source)
	if err != nil {
		return services.BatchResult{}, err
	}

	decoded, err := fetcher.DecodeJSON(data)
	if err != nil {
		return services.BatchResult{}, err
	}

	records, err := productRecords(decoded)
	if err != nil {
		return services.BatchResult{}, err
	}

	var result services.BatchResult

	for idx, raw := range records {
		p.importRecord(idx, raw, &result)
	}

	return result, nil
}

// importRecord processes one record end to end. Nothing it does may abort
// the batch; every failure ends up in the result as a warning or error.
func (p *Pipeline) importRecord(idx int, raw any, result *services.BatchResult) {
	record, err := Normalize(raw, idx)
	if err != nil {
		result.Warning(fmt.Sprintf("Skip item #%d: %v", idx, err))
		return
	}

	var asset *entities.ImageAsset
	if record.Image != "" {
		asset, err = p.resolver.Resolve(record.Image, record.GTINRaw)
		if err != nil {
			// Asset trouble degrades to a warning; the product is
			// still saved with its image untouched.
			result.Warning(fmt.Sprintf("GTIN %d: image not found/created for '%s': %v", record.GTIN, record.Image, err))
			asset = nil
		}
	}

	product, warnings, err := p.reconciler.Reconcile(record, asset)
	for _, w := range warnings {
		result.Warning(w)
	}
	if err != nil {
		result.Error(err.Error())
		return
	}

	result.SuccessCount++
	result.Success(fmt.Sprintf("Upserted product GTIN %d (ID: %d)", record.GTIN, product.ID))
}

// productRecords requires the decoded document to be an object whose
// "products" key holds an ordered sequence.
func productRecords(decoded any) ([]any, error) {
	doc, ok := decoded.(map[string]any)
	if !ok {
		return nil, ErrSchema
	}
	records, ok := doc["products"].([]any)
	if !ok {
		return nil, ErrSchema
	}
	return records, nil
}
