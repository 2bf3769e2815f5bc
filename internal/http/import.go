package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/andreyp/catalog-importer/internal/fetcher"
	"github.com/andreyp/catalog-importer/internal/importer"
	"github.com/andreyp/catalog-importer/internal/services"
	"github.com/andreyp/catalog-importer/internal/tasks"
)

// ImportRequest asks for a batch import from a JSON source.
type ImportRequest struct {
	Source string `json:"source" binding:"required"`
}

// ImportResponse carries the batch outcome back to the client.
type ImportResponse struct {
	SuccessCount int                `json:"success_count"`
	Messages     []services.Message `json:"messages"`
}

// TaskEnqueuer enqueues background import tasks.
// Implemented by tasks.Client.
type TaskEnqueuer interface {
	EnqueueImport(task tasks.ImportBatchTask) error
}

// ImportController runs product import batches, synchronously or via the
// task queue.
type ImportController struct {
	Importer services.BatchImporter
	Tasks    TaskEnqueuer
}

func NewImportController(batchImporter services.BatchImporter, enqueuer TaskEnqueuer) ImportController {
	return ImportController{
		Importer: batchImporter,
		Tasks:    enqueuer,
	}
}

// Import runs a batch synchronously and returns its result. Fetch and
// schema failures map to 400/502-style client errors, store trouble to 500.
func (controller ImportController) Import(c *gin.Context) {
	var req ImportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err.Error())
		return
	}

	result, err := controller.Importer.ImportFromSource(req.Source)
	if err != nil {
		switch {
		case errors.Is(err, fetcher.ErrFetch):
			c.JSON(http.StatusBadGateway, ErrorResponse{Error: err.Error()})
		case errors.Is(err, fetcher.ErrParse), errors.Is(err, importer.ErrSchema):
			respondBadRequest(c, err.Error())
		default:
			respondInternalError(c, err, "import")
		}
		return
	}

	c.JSON(http.StatusOK, ImportResponse{
		SuccessCount: result.SuccessCount,
		Messages:     result.Messages,
	})
}

// ImportAsync enqueues the batch on the task queue and returns immediately.
func (controller ImportController) ImportAsync(c *gin.Context) {
	if controller.Tasks == nil {
		c.JSON(http.StatusServiceUnavailable, ErrorResponse{Error: "task queue is disabled"})
		return
	}

	var req ImportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err.Error())
		return
	}

	if err := controller.Tasks.EnqueueImport(tasks.ImportBatchTask{Source: req.Source}); err != nil {
		respondInternalError(c, err, "enqueue import")
		return
	}

	c.JSON(http.StatusAccepted, gin.H{"message": "import enqueued", "source": req.Source})
}
