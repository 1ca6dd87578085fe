package controllers

import (
	"net/http"
	"runtime"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Version is reported by the health and info endpoints. Overridden at build
// time with -ldflags "-X .../controllers.Version=...".
var Version = "1.0.0"

type SystemController struct {
	DB      *gorm.DB
	AppName string
	Env     string
	Started time.Time
	Responder
}

// Health reports liveness and whether the database answers a ping.
func (sc *SystemController) Health(c *gin.Context) {
	sqlDB, err := sc.DB.DB()
	if err == nil {
		err = sqlDB.PingContext(c.Request.Context())
	}
	if err != nil {
		sc.Logger.Warn("health check failed", "error", err)
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"success":   false,
			"message":   "API is degraded",
			"version":   Version,
			"status":    "degraded",
			"database":  "unavailable",
			"timestamp": time.Now().Format(time.RFC3339),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"message":   "API is running",
		"version":   Version,
		"status":    "ok",
		"database":  "ok",
		"timestamp": time.Now().Format(time.RFC3339),
	})
}

func (sc *SystemController) Info(c *gin.Context) {
	sc.ok(c, http.StatusOK, "", gin.H{
		"name":           sc.AppName,
		"version":        Version,
		"environment":    sc.Env,
		"timezone":       time.Local.String(),
		"database":       sc.DB.Dialector.Name(),
		"go_version":     runtime.Version(),
		"uptime_seconds": int64(time.Since(sc.Started).Seconds()),
		"debug":          sc.Debug,
	})
}
