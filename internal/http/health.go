package http

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/novelnest/internal/database"
	"github.com/mrlokans/novelnest/internal/scheduler"
)

type HealthResponse struct {
	Status  string            `json:"status"`
	Time    string            `json:"time"`
	Version string            `json:"version,omitempty"`
	Checks  map[string]string `json:"checks"`
}

type HealthController struct {
	db      *database.Database
	version string
	cleanup CleanupStatusReporter
}

// NewHealthController creates the health handler. cleanup may be nil when
// the scheduled sweep is disabled.
func NewHealthController(db *database.Database, version string, cleanup CleanupStatusReporter) *HealthController {
	return &HealthController{
		db:      db,
		version: version,
		cleanup: cleanup,
	}
}

func (h *HealthController) Status(c *gin.Context) {
	checks := make(map[string]string)
	status := "healthy"

	if h.db != nil {
		if err := h.ping(c); err != nil {
			checks["database"] = "error: " + err.Error()
			status = "unhealthy"
		} else {
			checks["database"] = "ok"
			// The access layer reports a missing table as storage unavailable
			if h.db.DB.Migrator().HasTable("books") && h.db.DB.Migrator().HasTable("book_bucket_list") {
				checks["schema"] = "ok"
			} else {
				checks["schema"] = "missing"
				status = "unhealthy"
			}
		}
	} else {
		checks["database"] = "not configured"
		status = "unhealthy"
	}

	// A failed sweep leaves orphans behind but does not make the library unusable
	if h.cleanup != nil {
		checks["bucket_list_cleanup"] = describeCleanup(h.cleanup.LastResult())
	}

	health := HealthResponse{
		Status:  status,
		Time:    time.Now().Format(time.RFC3339),
		Version: h.version,
		Checks:  checks,
	}

	statusCode := http.StatusOK
	if status != "healthy" {
		statusCode = http.StatusServiceUnavailable
	}

	c.IndentedJSON(statusCode, health)
}

func (h *HealthController) ping(c *gin.Context) error {
	sqlDB, err := h.db.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(c.Request.Context())
}

func describeCleanup(r *scheduler.CleanupResult) string {
	switch {
	case r == nil:
		return "pending"
	case r.Err != nil:
		return fmt.Sprintf("error at %s: %v", r.At.Format(time.RFC3339), r.Err)
	case r.TaskID != "":
		return fmt.Sprintf("queued task %s at %s", r.TaskID, r.At.Format(time.RFC3339))
	default:
		return fmt.Sprintf("removed %d at %s", r.Removed, r.At.Format(time.RFC3339))
	}
}
