package tasks

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/mikestefanello/backlite"

	"github.com/andreyp/catalog-importer/internal/services"
)

// ImportBatchTask imports all product records from a JSON source.
type ImportBatchTask struct {
	Source string `json:"source"`
}

// importQueueConfig holds the import queue tuning. backlite reads queue
// configuration from the task type, so NewImportBatchQueue applies the
// configured values here once at registration.
var importQueueConfig = backlite.QueueConfig{
	Name:        "import_batch",
	MaxAttempts: 3,
	Backoff:     30 * time.Second,
	Timeout:     5 * time.Minute,
	Retention: &backlite.Retention{
		Duration:   24 * time.Hour,
		OnlyFailed: false,
		Data:       &backlite.RetainData{OnlyFailed: true},
	},
}

// Config returns the queue configuration for batch import tasks.
func (t ImportBatchTask) Config() backlite.QueueConfig {
	return importQueueConfig
}

// ImportBatchProcessor creates a processor function for ImportBatchTask.
func ImportBatchProcessor(batchImporter services.BatchImporter) backlite.QueueProcessor[ImportBatchTask] {
	return func(ctx context.Context, task ImportBatchTask) error {
		if batchImporter == nil {
			return fmt.Errorf("importer not configured")
		}

		result, err := batchImporter.ImportFromSource(task.Source)
		if err != nil {
			return fmt.Errorf("import from %s: %w", task.Source, err)
		}

		for _, msg := range result.Messages {
			log.Printf("[TASK] [%s] %s", msg.Level, msg.Text)
		}
		log.Printf("[TASK] Imported/updated %d product(s) from %s", result.SuccessCount, task.Source)

		return nil
	}
}

// NewImportBatchQueue creates a backlite queue for batch import tasks,
// applying the configured retry and timeout tuning.
func NewImportBatchQueue(batchImporter services.BatchImporter, cfg Config) backlite.Queue {
	if cfg.MaxAttempts > 0 {
		importQueueConfig.MaxAttempts = cfg.MaxAttempts
	}
	if cfg.Backoff > 0 {
		importQueueConfig.Backoff = cfg.Backoff
	}
	if cfg.TaskTimeout > 0 {
		importQueueConfig.Timeout = cfg.TaskTimeout
	}
	return backlite.NewQueue(ImportBatchProcessor(batchImporter))
}
