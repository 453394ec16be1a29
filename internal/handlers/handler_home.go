package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
)

// registerHealthRoutes wires the liveness and readiness probes. The database
// ping is optional so the probe stays cheap unless explicitly enabled.
func registerHealthRoutes(r *gin.Engine, pool *pgxpool.Pool, enableDBCheck bool) {
	r.GET("/health", func(c *gin.Context) {
		if enableDBCheck && pool != nil {
			if err := pool.Ping(c.Request.Context()); err != nil {
				c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded", "database": "unreachable"})
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
}
