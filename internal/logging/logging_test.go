package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/ahmetcoskunkizilkaya/order-tracker/internal/config"
	"github.com/ahmetcoskunkizilkaya/order-tracker/internal/database"
	"github.com/ahmetcoskunkizilkaya/order-tracker/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.Open(&config.Config{DBDriver: "sqlite", SQLitePath: ":memory:"})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	return db
}

func TestMultiHandler_FansOutByLevel(t *testing.T) {
	var info, errs bytes.Buffer
	logger := slog.New(NewMultiHandler(
		slog.NewJSONHandler(&info, &slog.HandlerOptions{Level: slog.LevelInfo}),
		slog.NewJSONHandler(&errs, &slog.HandlerOptions{Level: slog.LevelError}),
	))

	logger.Info("hello")
	logger.With("component", "test").Error("boom")

	assert.Contains(t, info.String(), "hello")
	assert.Contains(t, info.String(), "boom")
	assert.NotContains(t, errs.String(), "hello")
	assert.Contains(t, errs.String(), `"component":"test"`)
	assert.False(t, logger.Enabled(context.Background(), slog.LevelDebug))
}

type failingHandler struct{}

func (failingHandler) Enabled(context.Context, slog.Level) bool  { return true }
func (failingHandler) Handle(context.Context, slog.Record) error { return errors.New("sink down") }
func (h failingHandler) WithAttrs([]slog.Attr) slog.Handler      { return h }
func (h failingHandler) WithGroup(string) slog.Handler           { return h }

func TestMultiHandler_FailingHandlerDoesNotBlockOthers(t *testing.T) {
	db := setupTestDB(t)
	dbHandler := newDBHandler(db, time.Hour)
	multi := NewMultiHandler(failingHandler{}, dbHandler)

	record := slog.NewRecord(time.Now(), slog.LevelError, "import failed", 0)
	err := multi.Handle(context.Background(), record)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "sink down")

	slog.New(multi).Error("import failed again")
	dbHandler.Stop()

	var n int64
	require.NoError(t, db.Model(&models.SystemLog{}).Count(&n).Error)
	assert.Equal(t, int64(2), n)
}

func TestDBHandler_PersistsErrors(t *testing.T) {
	db := setupTestDB(t)
	h := newDBHandler(db, time.Hour)
	logger := slog.New(h).With("component", "importer")

	logger.Info("ignored")
	logger.Error("import failed", "error", "bad row", "request_id", "req-1", "path", "/api/orders/O1", "line", 7)
	h.Stop()
	h.Stop()

	var logs []models.SystemLog
	require.NoError(t, db.Find(&logs).Error)
	require.Len(t, logs, 1)
	got := logs[0]
	assert.Equal(t, "ERROR", got.Level)
	assert.Equal(t, "import failed", got.Message)
	assert.Equal(t, "importer", got.Component)
	assert.Equal(t, "req-1", got.RequestID)
	assert.Equal(t, "/api/orders/O1", got.Path)
	assert.Equal(t, "bad row", got.Error)

	var extra map[string]interface{}
	require.NoError(t, json.Unmarshal(got.Extra, &extra))
	assert.Equal(t, float64(7), extra["line"])
}

func TestPurgeOlderThan(t *testing.T) {
	db := setupTestDB(t)
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	require.NoError(t, db.Create(&[]models.SystemLog{
		{Timestamp: now.AddDate(0, 0, -40), Level: "ERROR", Message: "old"},
		{Timestamp: now.AddDate(0, 0, -2), Level: "ERROR", Message: "recent"},
	}).Error)

	deleted, err := PurgeOlderThan(db, 30, now)
	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted)

	var remaining []models.SystemLog
	require.NoError(t, db.Find(&remaining).Error)
	require.Len(t, remaining, 1)
	assert.Equal(t, "recent", remaining[0].Message)
}

func TestStartCleanup(t *testing.T) {
	c, err := StartCleanup(setupTestDB(t), 30)
	require.NoError(t, err)
	assert.Len(t, c.Entries(), 1)
	<-c.Stop().Done()
}

func TestSetup_AttachReusesLogFile(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	path := filepath.Join(t.TempDir(), "server.log")
	sinks := Setup(&config.Config{LogFile: path, LogRetentionDays: 30})

	var extra bytes.Buffer
	sinks.Attach(slog.NewJSONHandler(&extra, nil))
	slog.Info("server starting")
	require.NoError(t, sinks.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 1, strings.Count(string(data), "server starting"))
	assert.Contains(t, extra.String(), "server starting")
}

func TestSetup_WithoutFile(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	sinks := Setup(&config.Config{})
	assert.Nil(t, sinks.file)
	assert.NoError(t, sinks.Close())
}
