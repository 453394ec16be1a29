package handlers

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"

	"github.com/rupeebook/rupeebook_backend/cmd/docs"
	portssvc "github.com/rupeebook/rupeebook_backend/internal/core/ports/services"
	"github.com/rupeebook/rupeebook_backend/internal/middleware"
	"github.com/rupeebook/rupeebook_backend/pkg/config"
)

// loginRateLimit caps auth attempts per client IP so the 4-digit PIN space
// cannot be brute-forced through the login endpoint.
var loginRateLimit = limiter.Rate{Period: time.Minute, Limit: 10}

// RegisterRoutes sets up all application routes, injecting dependencies using
// interfaces.
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	pool *pgxpool.Pool,
	services *portssvc.ServiceContainer,
) {
	registerCustomValidators()
	registerHealthRoutes(r, pool, cfg.EnableDBCheck)

	// Public auth routes, rate limited by client IP.
	rateLimiter := limiter.New(memory.NewStore(), loginRateLimit)
	public := r.Group("/api/v1", middleware.RateLimit(rateLimiter))
	registerAuthRoutes(public, services.AuthSvc)

	setupAPIV1Routes(r, cfg, services)
	setupSwaggerRoutes(r, cfg)
}

// setupAPIV1Routes configures the authenticated /api/v1 group and delegates
// to the entity route registrations.
func setupAPIV1Routes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) {
	v1 := r.Group("/api/v1", middleware.AuthMiddleware(cfg.JWTSecret))

	registerMemberRoutes(v1, services.MemberSvc)
	registerBusinessRoutes(v1, services.BusinessSvc, services.BookSvc)
	registerBookRoutes(v1, services)
}

// setupSwaggerRoutes configures the swagger documentation routes.
func setupSwaggerRoutes(r *gin.Engine, cfg *config.Config) {
	if cfg.IsProduction {
		// No swagger in prod.
		return
	}
	docs.SwaggerInfo.BasePath = "/api/v1"
	swagger := r.Group("/swagger")
	swagger.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}
