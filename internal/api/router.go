// Package api exposes an optional, read-only inspection surface: a
// snapshot dump and a Prometheus scrape endpoint. It is built the way
// the teacher bank-api composes its own router (internal/api/routes +
// internal/api/middleware): request-scoped context middleware first,
// then routes. It never mutates engine state; the CLI driver owns the
// single-threaded Submit path.
package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"ledger-engine/internal/domain/engine"
)

const requestIDKey = "request_id"

// SnapshotProvider is satisfied by *engine.Engine; it is an interface
// here so handlers can be tested against a fake.
type SnapshotProvider interface {
	Snapshots() ([]engine.Snapshot, map[uint16]error)
}

// RequestContext attaches a correlation id to every request, mirroring
// the teacher's request-scoped context middleware.
func RequestContext() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(requestIDKey, uuid.New().String())
		c.Next()
	}
}

// NewRouter builds the inspection router over a finished (or
// in-progress) engine run.
func NewRouter(provider SnapshotProvider) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(RequestContext())

	r.GET("/snapshots", snapshotsHandler(provider))
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return r
}

type accountDTO struct {
	Client    uint16 `json:"client"`
	Available string `json:"available"`
	Held      string `json:"held"`
	Total     string `json:"total"`
	Locked    bool   `json:"locked"`
}

func snapshotsHandler(provider SnapshotProvider) gin.HandlerFunc {
	return func(c *gin.Context) {
		snapshots, errs := provider.Snapshots()

		accounts := make([]accountDTO, 0, len(snapshots))
		for _, s := range snapshots {
			accounts = append(accounts, accountDTO{
				Client:    s.ClientID,
				Available: s.Available.String(),
				Held:      s.Held.String(),
				Total:     s.Total.String(),
				Locked:    s.Frozen,
			})
		}

		errStrings := make([]string, 0, len(errs))
		for client, err := range errs {
			errStrings = append(errStrings, fmtAccountError(client, err))
		}

		c.JSON(http.StatusOK, gin.H{
			"request_id": c.GetString(requestIDKey),
			"accounts":   accounts,
			"errors":     errStrings,
		})
	}
}

func fmtAccountError(client uint16, err error) string {
	return "client " + strconv.FormatUint(uint64(client), 10) + ": " + err.Error()
}
