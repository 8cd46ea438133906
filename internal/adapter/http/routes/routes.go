package routes

import (
	"context"
	"errors"
	"net/http"

	_ "proassignment/docs" // registers the swagger spec
	"proassignment/internal/adapter/http/handlers"
	"proassignment/internal/adapter/http/middleware"
	"proassignment/internal/config"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Handlers groups every HTTP handler mounted under /v1.
type Handlers struct {
	Auth          *handlers.AuthHandler
	Assignments   *handlers.AssignmentHandler
	Paysheets     *handlers.PaysheetHandler
	Payments      *handlers.PaymentHandler
	Notifications *handlers.NotificationHandler
	Chat          *handlers.ChatHandler
	WS            *handlers.WSHandler
}

const maxMultipartMemory = 8 << 20

// NewRouter builds the gin engine with middlewares, swagger and the /v1 routes.
func NewRouter(cfg *config.Config, h Handlers, auth *middleware.AuthMiddleware) *gin.Engine {
	if cfg.Server.GinMode != "" {
		gin.SetMode(cfg.Server.GinMode)
	}
	router := gin.New()
	router.MaxMultipartMemory = maxMultipartMemory
	setMiddlewares(router, cfg.CORS)

	// Swagger documentation endpoint
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	v1 := router.Group("/v1")
	addPingRoutes(v1)
	addAccountRoutes(v1, h, auth)
	addAssignmentRoutes(v1, h, auth)
	addLedgerRoutes(v1, h, auth)
	return router
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func Run(ctx context.Context, cfg config.ServerConfig, handler http.Handler) error {
	srv := &http.Server{
		Addr:         cfg.Address,
		Handler:      handler,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("[http] listening addr=%s", cfg.Address)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	log.Printf("[http] shutting down")
	return srv.Shutdown(shutdownCtx)
}

func setMiddlewares(router *gin.Engine, cfg config.CORSConfig) {
	router.Use(middleware.AccessLog())
	router.Use(middleware.Recovery())
	router.Use(cors.New(corsConfig(cfg)))
}

func corsConfig(cfg config.CORSConfig) cors.Config {
	c := cors.Config{
		AllowMethods:     cfg.AllowedMethods,
		AllowHeaders:     cfg.AllowedHeaders,
		AllowCredentials: cfg.AllowCredentials,
		MaxAge:           cfg.MaxAge,
	}
	if len(cfg.AllowedOrigins) == 0 {
		c.AllowAllOrigins = true
		return c
	}
	for _, o := range cfg.AllowedOrigins {
		if o == "*" {
			c.AllowAllOrigins = true
			return c
		}
	}
	c.AllowOrigins = cfg.AllowedOrigins
	return c
}

func addPingRoutes(rg *gin.RouterGroup) {
	rg.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})
}
