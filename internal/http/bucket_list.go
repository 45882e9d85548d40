package http

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// BucketListController manages the "want to read" list.
type BucketListController struct {
	books    BookGetter
	store    BucketListStore
	enqueuer CleanupEnqueuer
}

// NewBucketListController creates a controller. enqueuer may be nil, in
// which case cleanup requests run synchronously.
func NewBucketListController(books BookGetter, store BucketListStore, enqueuer CleanupEnqueuer) *BucketListController {
	return &BucketListController{books: books, store: store, enqueuer: enqueuer}
}

// BucketListStatus reports whether one book is listed.
type BucketListStatus struct {
	BookID       uint `json:"book_id"`
	InBucketList bool `json:"in_bucket_list"`
}

// ListBucketList handles GET /api/bucket-list
func (bc *BucketListController) ListBucketList(c *gin.Context) {
	list, err := bc.store.GetBucketList(c.Request.Context())
	if err != nil {
		respondStorageError(c, err, "get bucket list")
		return
	}
	respondList(c, toBookResponses(list))
}

// GetMembership handles GET /api/bucket-list/:id
func (bc *BucketListController) GetMembership(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	listed, err := bc.store.IsBookInBucketList(c.Request.Context(), id)
	if err != nil {
		respondStorageError(c, err, "check bucket list")
		return
	}

	c.JSON(http.StatusOK, BucketListStatus{BookID: id, InBucketList: listed})
}

// AddToBucketList handles POST /api/bucket-list/:id
// Adding a book that is already listed answers 409 with a warning.
func (bc *BucketListController) AddToBucketList(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	ctx := c.Request.Context()
	book, err := bc.books.GetBookByID(ctx, id)
	if err != nil {
		respondStorageError(c, err, "add to bucket list")
		return
	}

	added, err := bc.store.AddToBucketList(ctx, id)
	if err != nil {
		respondStorageError(c, err, "add to bucket list")
		return
	}
	if !added {
		c.JSON(http.StatusConflict, ErrorResponse{
			Error: fmt.Sprintf("'%s' is already in your Book Bucket List!", book.Title),
			Code:  "already_in_bucket_list",
		})
		return
	}

	respondCreated(c, SuccessResponse{
		Message: fmt.Sprintf("'%s' added to your Book Bucket List!", book.Title),
		Data:    toBookResponse(*book),
	})
}

// RemoveFromBucketList handles DELETE /api/bucket-list/:id
func (bc *BucketListController) RemoveFromBucketList(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := bc.store.RemoveFromBucketList(c.Request.Context(), id); err != nil {
		respondStorageError(c, err, "remove from bucket list")
		return
	}

	respondSuccess(c, "removed from bucket list")
}

// Cleanup handles POST /api/bucket-list/cleanup
// Removes entries whose book was deleted, on the task queue when one is configured.
func (bc *BucketListController) Cleanup(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	if bc.enqueuer != nil {
		taskID, err := bc.enqueuer.EnqueueBucketListCleanup(ctx)
		if err != nil {
			respondInternalError(c, err, "enqueue bucket list cleanup")
			return
		}
		respondAccepted(c, "cleanup enqueued", gin.H{"task_id": taskID})
		return
	}

	removed, err := bc.store.DeleteOrphanEntries(ctx)
	if err != nil {
		respondStorageError(c, err, "bucket list cleanup")
		return
	}
	c.JSON(http.StatusOK, SuccessResponse{
		Message: fmt.Sprintf("removed %d orphaned entries", removed),
		Data:    gin.H{"removed": removed},
	})
}
