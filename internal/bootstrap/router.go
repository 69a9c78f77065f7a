package bootstrap

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	httpapi "github.com/GoSim-25-26J-441/projects-miniapp/internal/api/http"
	"github.com/GoSim-25-26J-441/projects-miniapp/internal/api/http/middleware"
	"github.com/GoSim-25-26J-441/projects-miniapp/internal/logging"
	projecthttp "github.com/GoSim-25-26J-441/projects-miniapp/internal/projects/http"
	"github.com/GoSim-25-26J-441/projects-miniapp/internal/projects/service"
)

type RouterDeps struct {
	ServiceName    string
	Version        string
	CORSOrigins    []string
	BotToken       string
	InitDataMaxAge time.Duration
	DB             httpapi.Pinger
	Cache          httpapi.Pinger
	Projects       *service.ProjectService
	Metrics        *httpapi.Metrics
	Logger         *logging.Logger
}

func BuildRouter(dep RouterDeps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestIDMiddleware(dep.Logger))
	r.Use(cors.New(corsConfig(dep.CORSOrigins)))

	if dep.Metrics != nil {
		r.Use(dep.Metrics.Middleware())
		dep.Metrics.RegisterRoutes(r)
	}

	healthHandler := httpapi.NewHealthHandler(dep.ServiceName, dep.Version, dep.DB, dep.Cache)
	healthHandler.RegisterRoutes(r)

	api := r.Group("/api/v1")
	if dep.BotToken != "" {
		api.Use(middleware.TelegramAuthMiddleware(dep.BotToken, dep.InitDataMaxAge, nil))
	}

	projecthttp.New(dep.Projects).Register(api.Group("/projects"))

	return r
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Authorization", middleware.HeaderRequestID, middleware.HeaderInitData},
		ExposeHeaders: []string{middleware.HeaderRequestID},
		MaxAge:        12 * time.Hour,
	}
	for _, o := range origins {
		if o == "*" {
			cfg.AllowAllOrigins = true
			return cfg
		}
	}
	cfg.AllowOrigins = origins
	return cfg
}
