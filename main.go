package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"healthagentapi/bootstrap"
	"healthagentapi/config"
	"healthagentapi/controllers"
	_ "healthagentapi/docs"
	"healthagentapi/pkg/logger"
	"healthagentapi/pkg/metrics"
	"healthagentapi/services"
	"healthagentapi/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// @title           healthagentapi
// @version         1.0
// @description     Health Agent Policy API

// @BasePath  /api

func main() {
	// 1) Load config
	if err := config.LoadConfig(); err != nil {
		log.Fatalf("LoadConfig error: %v", err)
	}

	// 2) Init structured logger with config
	logger.InitWithConfig(
		config.Cfg.LogFile,
		logger.ParseLogLevel(config.Cfg.LogLevel),
		logger.RotationConfig{
			MaxSize:    config.Cfg.LogMaxSize,
			MaxBackups: config.Cfg.LogMaxBackups,
			MaxAge:     config.Cfg.LogMaxAge,
			Compress:   config.Cfg.LogCompress,
		},
	)
	logger.Infof("Starting Health Agent API with log level: %s", config.Cfg.LogLevel)

	// 3) Connect DB (GORM) and create the schema
	if err := config.ConnectDB(); err != nil {
		logger.Fatalf("ConnectDB error: %v", err)
	}
	if config.DB == nil {
		logger.Fatalf("Database is nil after ConnectDB")
	}
	if err := bootstrap.Migrate(config.DB); err != nil {
		logger.Fatalf("Migrate error: %v", err)
	}

	controllers.SetPolicyService(services.NewPolicyService(metrics.New(prometheus.DefaultRegisterer)))

	// 4) Setup Gin
	if config.Cfg.GinMode != "" {
		gin.SetMode(config.Cfg.GinMode)
	}
	router := setupRouter(config.Cfg)

	srv := &http.Server{
		Addr:              "0.0.0.0:" + config.Cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// 5) Run until SIGINT/SIGTERM
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Infof("Starting server at port %s", config.Cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("Server error: %v", err)
		}
	}()

	<-ctx.Done()
	logger.Infof("Received shutdown signal, draining requests...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Errorf("Server shutdown error: %v", err)
	}
	if err := config.CloseDB(); err != nil {
		logger.Errorf("Database close error: %v", err)
	}
	logger.Infof("Application shutdown complete")
}

// setupRouter wires middleware and routes. The policy service must already be set.
func setupRouter(cfg config.AppConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(cors.New(cors.Config{
		AllowOrigins:  cfg.CORSAllowedOrigins,
		AllowMethods:  []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", utils.RequestIDHeader},
		ExposeHeaders: []string{utils.RequestIDHeader},
		MaxAge:        12 * time.Hour,
	}))
	router.Use(utils.LoggerMiddleware())

	api := router.Group("/api")
	{
		controllers.RegisterPolicyRoutes(api)
	}
	controllers.RegisterHealthRoutes(router)

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return router
}
