package entrypoint

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/novelnest/internal/config"
	"github.com/mrlokans/novelnest/internal/tasks"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := config.NewConfigFromEnvFile("")
	cfg.Database.Path = filepath.Join(t.TempDir(), "library.db")
	return cfg
}

func shutdown(t *testing.T, app *App) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	app.Shutdown(ctx)
	app.Close()
}

func TestNewApp_WithoutBackgroundWork(t *testing.T) {
	cfg := testConfig(t)
	cfg.Tasks.Enabled = false
	cfg.BucketListCleanup.Enabled = false

	app, err := NewApp(cfg, "test")
	require.NoError(t, err)
	defer shutdown(t, app)

	assert.Nil(t, app.Tasks)
	assert.Nil(t, app.Scheduler)

	w := httptest.NewRecorder()
	app.Router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotContains(t, w.Body.String(), "bucket_list_cleanup")

	// Inline cleanup when no queue is configured
	w = httptest.NewRecorder()
	app.Router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/bucket-list/cleanup", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestNewApp_WithTasksAndScheduler(t *testing.T) {
	cfg := testConfig(t)
	cfg.Tasks.Enabled = true
	cfg.BucketListCleanup.Enabled = true
	cfg.BucketListCleanup.Schedule = "0 3 * * *"

	app, err := NewApp(cfg, "test")
	require.NoError(t, err)
	defer shutdown(t, app)

	require.NotNil(t, app.Tasks)
	require.NotNil(t, app.Scheduler)
	assert.True(t, app.Scheduler.IsRunning())

	_, err = os.Stat(tasks.TasksDBPath(cfg.Database.Path))
	assert.NoError(t, err, "task queue database should sit next to the library")

	w := httptest.NewRecorder()
	app.Router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"bucket_list_cleanup": "pending"`)

	w = httptest.NewRecorder()
	app.Router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/bucket-list/cleanup", nil))
	assert.Equal(t, http.StatusAccepted, w.Code)
	assert.True(t, strings.Contains(w.Body.String(), "task_id"))
}

func TestNewApp_InvalidSchedule(t *testing.T) {
	cfg := testConfig(t)
	cfg.Tasks.Enabled = false
	cfg.BucketListCleanup.Enabled = true
	cfg.BucketListCleanup.Schedule = "not a schedule"

	app, err := NewApp(cfg, "test")
	assert.Nil(t, app)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cleanup scheduler")
}
