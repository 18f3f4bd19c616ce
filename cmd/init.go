package cmd

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	awsConfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shanedonnelly/devops/internal/application"
	authCmd "github.com/shanedonnelly/devops/internal/application/commands/auth"
	"github.com/shanedonnelly/devops/internal/application/commands/catalogue"
	"github.com/shanedonnelly/devops/internal/application/commands/site"
	"github.com/shanedonnelly/devops/internal/application/interfaces"
	"github.com/shanedonnelly/devops/internal/application/query"
	"github.com/shanedonnelly/devops/internal/infra/auth"
	"github.com/shanedonnelly/devops/internal/infra/config"
	"github.com/shanedonnelly/devops/internal/infra/db/postgres"
	"github.com/shanedonnelly/devops/internal/infra/db/sqlite"
	"github.com/shanedonnelly/devops/internal/infra/storage"
	"github.com/shanedonnelly/devops/internal/presentation/rest"
	dbs "github.com/shanedonnelly/devops/pkg/db"
)

func Init() {
	ctx := context.Background()
	serverCfg := config.NewServerConfig()

	// Relational store, either backend satisfies the same interfaces
	var store interfaces.Store
	var pool *pgxpool.Pool
	switch serverCfg.DBBackend {
	case config.BackendSQLite:
		sqliteStore, err := sqlite.New(serverCfg.SQLitePath)
		if err != nil {
			log.Panicf("failed to open sqlite store: %v", err)
		}
		if err := sqliteStore.Migrate(ctx); err != nil {
			log.Panicf("failed to migrate sqlite store: %v", err)
		}
		store = sqliteStore
	default:
		dbConfig := dbs.NewConfig()
		var err error
		pool, err = pgxpool.New(ctx, dbConfig.GetDSN())
		if err != nil {
			log.Panicf("failed to create pool: %v", err)
		}
		if err := pool.Ping(ctx); err != nil {
			log.Panicf("failed to connect to db: %v", err)
		}
		pgStore := postgres.NewStore(dbs.NewUoWFactory(pool))
		if err := pgStore.Migrate(ctx); err != nil {
			log.Panicf("failed to migrate postgres store: %v", err)
		}
		store = pgStore
	}

	// Object store for config blobs
	awsCfg, err := awsConfig.LoadDefaultConfig(ctx)
	if err != nil {
		log.Panic("can't load aws config", err)
	}
	configs := storage.NewConfigStorage(awsCfg, storage.NewConfig())
	if err := configs.EnsureBucket(ctx); err != nil {
		slog.Error("error ensuring config bucket", "err", err)
	}

	tokens := auth.NewTokenProvider(auth.NewConfig())
	hasher := auth.NewPasswordHasher()

	handlers := &application.Collection{
		Auth:             authCmd.NewAuth(store, configs, tokens, hasher),
		CreateSite:       site.NewCreateSite(store, configs),
		UpdateSite:       site.NewUpdateSite(store),
		DeleteSite:       site.NewDeleteSite(store, configs),
		UpdateSiteConfig: site.NewUpdateSiteConfig(store, configs),
		ReplaceCatalogue: catalogue.NewReplaceCatalogue(store),
		ListSites:        query.NewListSites(store),
		GetCatalogue:     query.NewGetCatalogue(store),
		GetSiteConfig:    query.NewGetSiteConfig(configs),
	}
	server := rest.NewServer(handlers, tokens)

	app := fiber.New(fiber.Config{
		IdleTimeout: 5 * time.Second,
	})
	app.Use(cors.New(cors.Config{
		AllowOrigins:     serverCfg.CORSOrigins,
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowCredentials: true,
	}))
	rest.RegisterHandlers(app, server)

	go func() {
		if err := app.Listen(serverCfg.Addr); err != nil {
			log.Panic(err)
		}
	}()

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	<-c
	fmt.Println("Gracefully shutting down...")
	_ = app.Shutdown()

	if pool != nil {
		pool.Close()
	}
	fmt.Println("Fiber was successfully shutdown.")
}
