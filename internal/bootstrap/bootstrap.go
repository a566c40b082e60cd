package bootstrap

import (
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/nagoyameshi/go-api-server/internal/config"
	sharedError "github.com/nagoyameshi/go-api-server/internal/shared/error"
	"github.com/nagoyameshi/go-api-server/internal/shared/logger"
	"github.com/nagoyameshi/go-api-server/internal/shared/metrics"
	"github.com/nagoyameshi/go-api-server/internal/shared/middleware"
)

// Bootstrap builds the gin engine and the middleware every route shares.
type Bootstrap struct {
	cfg     *config.Config
	metrics *metrics.Metrics
}

func NewBootstrap(cfg *config.Config, m *metrics.Metrics) *Bootstrap {
	return &Bootstrap{
		cfg:     cfg,
		metrics: m,
	}
}

// SetupEngine returns an engine with recovery, request id, CORS, request
// deadline, access log and HTTP metrics installed, in that order.
// Authentication is per route group and is added by the router.
func (b *Bootstrap) SetupEngine() *gin.Engine {
	if b.cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(gin.DebugMode)
	}

	// access lines come from LoggerMiddleware
	gin.DefaultWriter = io.Discard
	gin.DefaultErrorWriter = io.Discard

	engine := gin.New()
	if limit := b.cfg.Storage.MaxUploadBytes; limit > 0 {
		engine.MaxMultipartMemory = limit
	}

	engine.Use(
		gin.CustomRecovery(b.recoveryHandler),
		middleware.RequestID(),
		middleware.CORS(b.cfg),
		middleware.Timeout(b.cfg.Server.RequestTimeout),
		middleware.LoggerMiddleware(),
		middleware.Metrics(b.metrics),
	)

	return engine
}

func (b *Bootstrap) recoveryHandler(c *gin.Context, recovered interface{}) {
	logger.FromContext(c.Request.Context()).Error("패닉 복구",
		"panic", fmt.Sprint(recovered),
		"route", c.FullPath(),
		"method", c.Request.Method,
		"request_id", middleware.GetRequestID(c),
	)
	c.AbortWithStatusJSON(http.StatusInternalServerError, sharedError.InternalServerError)
}
