package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/hugohenrick/la-tostadora/docs"
	"github.com/hugohenrick/la-tostadora/internal/adapter/api/controller"
	"github.com/hugohenrick/la-tostadora/internal/adapter/api/route"
	"github.com/hugohenrick/la-tostadora/internal/adapter/repository"
	"github.com/hugohenrick/la-tostadora/internal/domain/state"
	"github.com/hugohenrick/la-tostadora/internal/infrastructure/config"
	"github.com/hugohenrick/la-tostadora/internal/infrastructure/database"
	"github.com/hugohenrick/la-tostadora/internal/infrastructure/monitoring"
	"github.com/hugohenrick/la-tostadora/internal/store"
	"github.com/hugohenrick/la-tostadora/pkg/advisor"
	"github.com/hugohenrick/la-tostadora/pkg/auth"
	"github.com/hugohenrick/la-tostadora/pkg/logger"
	"github.com/jackc/pgx/v5/pgxpool"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// shutdownTimeout limita o encerramento do servidor e dos envios pendentes
const shutdownTimeout = 20 * time.Second

// App representa a aplicação e suas dependências
type App struct {
	config *config.Config
	logger logger.Logger
	router *gin.Engine
	db     *pgxpool.Pool
	store  *store.Store

	jwtService *auth.JWTService
	pins       *auth.PINVerifier
}

// NewApp cria uma nova instância do aplicativo
func NewApp(ctx context.Context) (*App, error) {
	cfg := config.NewConfigFromEnv()
	log := logger.NewLogger()
	gin.SetMode(cfg.GinMode)

	local, err := repository.NewFileRepository(cfg.DataDir)
	if err != nil {
		return nil, err
	}

	app := &App{config: cfg, logger: log}

	// Sincronização remota é opcional; sem ela o Store trabalha só com o arquivo local
	var remote state.SyncRepository
	if cfg.SyncEnabled {
		if cfg.RunMigrations {
			if err := database.RunMigrations(database.DatabaseURL(), cfg.MigrationsPath); err != nil {
				return nil, err
			}
		}

		db, err := database.NewPostgresDB(ctx)
		if err != nil {
			return nil, err
		}
		app.db = db
		remote = repository.NewPostgresSyncRepository(db)
		log.Info("sincronização remota habilitada")
	}

	app.store = store.New(ctx, local, remote, log, store.Config{PushTimeout: cfg.PushTimeout})

	// Login do operador só é exigido quando segredo e PIN estão configurados
	if jwtService, err := auth.NewJWTService(); err == nil {
		if pins, err := auth.NewPINVerifierFromEnv(); err == nil {
			app.jwtService = jwtService
			app.pins = pins
		}
	}
	if app.jwtService == nil {
		log.Warn("autenticação desabilitada: defina JWT_SECRET_KEY e OPERATOR_PIN_HASH para exigir login")
	}

	app.router = app.setupRouter()
	return app, nil
}

func (a *App) setupRouter() *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	corsConfig := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders: []string{"Content-Length", "Content-Disposition"},
		MaxAge:        12 * time.Hour,
	}
	if a.config.AllowAllOrigins() {
		corsConfig.AllowAllOrigins = true
	} else {
		corsConfig.AllowOrigins = a.config.CORSAllowedOrigins
		corsConfig.AllowCredentials = true
	}
	router.Use(cors.New(corsConfig))

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"version": docs.SwaggerInfo.Version,
			"sync":    a.store.SyncInfo().Enabled,
		})
	})

	if a.config.PrometheusEnabled {
		router.GET("/metrics", gin.WrapH(monitoring.Handler()))
	}

	docs.SwaggerInfo.BasePath = a.config.BasePath
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := router.Group(a.config.BasePath)

	protected := api.Group("")
	if a.jwtService != nil {
		route.SetupAuthRoutes(api, controller.NewAuthController(a.jwtService, a.pins, a.logger))
		protected.Use(auth.JWTAuthMiddleware(a.jwtService))
	}

	route.RegisterProductRoutes(protected, controller.NewProductController(a.store, a.logger))
	route.RegisterClientRoutes(protected, controller.NewClientController(a.store, a.logger))
	route.RegisterSaleRoutes(protected, controller.NewSaleController(a.store, a.logger))
	route.RegisterLedgerRoutes(protected, controller.NewLedgerController(a.store, a.logger))
	route.RegisterDataRoutes(protected, controller.NewDataController(a.store, a.logger))
	route.RegisterSyncRoutes(protected, controller.NewSyncController(a.store, a.logger))
	route.RegisterSettingsRoutes(protected, controller.NewSettingsController(a.store, a.logger))
	route.RegisterReportRoutes(protected, controller.NewReportController(a.store, a.logger))

	advisorClient := advisor.NewClient(advisor.NewConfigFromEnv(), a.logger)
	if !advisorClient.Enabled() {
		a.logger.Warn("assessor de IA sem ANTHROPIC_API_KEY; as perguntas receberão a mensagem padrão")
	}
	route.RegisterAdvisorRoutes(protected, controller.NewAdvisorController(a.store, advisorClient, a.logger))

	return router
}

// Start inicia o servidor HTTP e aguarda SIGINT/SIGTERM para encerrar
func (a *App) Start() error {
	srv := &http.Server{
		Addr:              ":" + a.config.ServerPort,
		Handler:           a.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("servidor iniciado", "port", a.config.ServerPort, "base_path", a.config.BasePath)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("erro ao iniciar servidor: %w", err)
		}
	case sig := <-quit:
		a.logger.Info("encerrando servidor", "signal", sig.String())
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		a.logger.Error("erro ao encerrar servidor", "error", err)
	}
	return nil
}

// Close aguarda os envios pendentes e libera os recursos da aplicação
func (a *App) Close() {
	if a.store != nil {
		a.store.Wait()
	}
	if a.db != nil {
		a.db.Close()
	}
}
