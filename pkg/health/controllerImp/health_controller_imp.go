package controllerImp

import (
	"context"
	"errors"
	"net/http"
	"sort"
	"time"

	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"gorm.io/gorm"
)

const livenessText = "UrbanRoots watering service is running"

var appStart = time.Now()

// Check reports whether one dependency is reachable.
type Check func(ctx context.Context) error

func GormCheck(db *gorm.DB) Check {
	return func(ctx context.Context) error {
		if db == nil {
			return errors.New("gorm db is nil")
		}
		sqlDB, err := db.DB()
		if err != nil {
			return err
		}
		return sqlDB.PingContext(ctx)
	}
}

func MongoCheck(client *mongo.Client) Check {
	return func(ctx context.Context) error {
		if client == nil {
			return errors.New("mongo client is nil")
		}
		return client.Ping(ctx, readpref.Primary())
	}
}

type HealthCtrl struct {
	checks map[string]Check
}

func NewHealthCtrl(checks map[string]Check) *HealthCtrl { return &HealthCtrl{checks: checks} }

func (h *HealthCtrl) Live(c echo.Context) error {
	return c.String(http.StatusOK, livenessText)
}

func (h *HealthCtrl) Health(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 800*time.Millisecond)
	defer cancel()

	type sub struct {
		OK  bool   `json:"ok"`
		Err string `json:"err,omitempty"`
	}

	names := make([]string, 0, len(h.checks))
	for name := range h.checks {
		names = append(names, name)
	}
	sort.Strings(names)

	allOK := true
	results := map[string]sub{}
	for _, name := range names {
		if err := h.checks[name](ctx); err != nil {
			allOK = false
			results[name] = sub{Err: err.Error()}
			continue
		}
		results[name] = sub{OK: true}
	}

	status := http.StatusOK
	if !allOK {
		status = http.StatusServiceUnavailable
	}
	return c.JSON(status, map[string]any{
		"status":     map[string]any{"ok": allOK},
		"uptime_sec": int(time.Since(appStart).Seconds()),
		"checks":     results,
		"time":       time.Now().UTC().Format(time.RFC3339),
	})
}
