package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"coreselect/internal/parts"
	"coreselect/internal/recommend"
	"coreselect/internal/services/home"
	"coreselect/internal/shared/config"
	"coreselect/internal/shared/metrics"
	"coreselect/internal/shared/server/middleware"
	"coreselect/internal/users"
)

const recommendRateGroup = "RECOMMEND"

// RouterDeps carries the handlers NewRouter mounts.
type RouterDeps struct {
	Config           config.Config
	Home             *home.Service
	UserHandler      *users.Handler
	PartsHandler     *parts.Handler
	RecommendHandler *recommend.Handler
	Limiter          *middleware.RateLimiter
}

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	if deps.Config.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(deps.Config.CORSAllowOrigin),
		middleware.RateLimit(middleware.RateLimitConfig{
			Limiter: deps.Limiter,
			GroupFor: func(c *gin.Context) string {
				if c.Request.Method == http.MethodPost && c.FullPath() == "/recommend" {
					return recommendRateGroup
				}
				return ""
			},
			Rules: map[string]middleware.RateLimitRule{
				recommendRateGroup: {Rate: deps.Config.RecommendRate, Burst: deps.Config.RecommendBurst},
			},
		}),
	)

	if deps.Home != nil {
		deps.Home.RegisterRoutes(r)
	}
	if deps.UserHandler != nil {
		deps.UserHandler.RegisterRoutes(r)
	}
	if deps.PartsHandler != nil {
		deps.PartsHandler.RegisterRoutes(r)
	}
	if deps.RecommendHandler != nil {
		deps.RecommendHandler.RegisterRoutes(r)
	}
	r.GET("/metrics", metrics.Handler())

	return r
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":5000"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}
