package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/novelnest/internal/entities"
)

// StatsController serves the library insights: totals, genre distribution
// and reading progress.
type StatsController struct {
	books  BookStatsStore
	bucket BucketListCounter
}

func NewStatsController(books BookStatsStore, bucket BucketListCounter) *StatsController {
	return &StatsController{books: books, bucket: bucket}
}

// GetStats handles GET /api/stats
func (sc *StatsController) GetStats(c *gin.Context) {
	ctx := c.Request.Context()

	total, err := sc.books.CountBooks(ctx)
	if err != nil {
		respondStorageError(c, err, "count books")
		return
	}

	genres, err := sc.books.GetGenreDistribution(ctx)
	if err != nil {
		respondStorageError(c, err, "genre distribution")
		return
	}

	statuses, err := sc.books.GetStatusBreakdown(ctx)
	if err != nil {
		respondStorageError(c, err, "status breakdown")
		return
	}

	stats := entities.LibraryStats{
		TotalBooks:        total,
		GenreDistribution: nonNil(genres),
		StatusBreakdown:   fillStatuses(statuses),
	}

	if sc.bucket != nil {
		stats.BucketListSize, err = sc.bucket.CountEntries(ctx)
		if err != nil {
			respondStorageError(c, err, "count bucket list")
			return
		}
	}

	c.JSON(http.StatusOK, stats)
}

// fillStatuses puts the canonical statuses first, with zero counts where
// no book has them, followed by any other stored values.
func fillStatuses(counts []entities.GroupCount) []entities.GroupCount {
	byLabel := make(map[string]int64, len(counts))
	for _, gc := range counts {
		byLabel[gc.Label] = gc.Count
	}

	out := make([]entities.GroupCount, 0, len(counts)+len(entities.ReadingStatuses))
	for _, s := range entities.ReadingStatuses {
		out = append(out, entities.GroupCount{Label: string(s), Count: byLabel[string(s)]})
		delete(byLabel, string(s))
	}
	for _, gc := range counts {
		if _, extra := byLabel[gc.Label]; extra {
			out = append(out, gc)
		}
	}
	return out
}

func nonNil(counts []entities.GroupCount) []entities.GroupCount {
	if counts == nil {
		return []entities.GroupCount{}
	}
	return counts
}
