package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	httpctx "github.com/dtroode/eventopia-server/internal/api/http/context"
	"github.com/dtroode/eventopia-server/internal/api/http/router"
	"github.com/dtroode/eventopia-server/internal/config"
	"github.com/dtroode/eventopia-server/internal/logger"
	"github.com/dtroode/eventopia-server/internal/metrics"
	"github.com/dtroode/eventopia-server/internal/model"
	"github.com/dtroode/eventopia-server/internal/policy"
	"github.com/dtroode/eventopia-server/internal/repository/memory"
	"github.com/dtroode/eventopia-server/internal/repository/mongodb"
	"github.com/dtroode/eventopia-server/internal/repository/postgres"
	"github.com/dtroode/eventopia-server/internal/server"
	"github.com/dtroode/eventopia-server/internal/service"
	storage "github.com/dtroode/eventopia-server/internal/storage/minio"
	"github.com/dtroode/eventopia-server/internal/token"
)

var (
	buildVersion = "N/A" // set by ldflags
	buildDate    = "N/A" // set by ldflags
	buildCommit  = "N/A" // set by ldflags
)

const shutdownTimeout = 10 * time.Second

// stores bundles the persistence handles chosen by STORE_DRIVER.
type stores struct {
	events model.EventStore
	users  model.UserStore
	pinger model.Pinger
	close  func(ctx context.Context) error
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT, os.Interrupt)
	defer stop()

	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}
	logger := logger.New(cfg.LogLevel, cfg.LogFormat)

	st, err := openStores(ctx, cfg)
	if err != nil {
		logger.Fatal("failed to initialize store", "driver", cfg.Store.Driver, "error", err)
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := st.close(closeCtx); err != nil {
			logger.Error("failed to close store", "error", err)
		}
	}()

	tokenManager, err := token.NewJWT(cfg.Token.Secret, cfg.Token.TTL)
	if err != nil {
		logger.Fatal("failed to initialize token manager", "error", err)
	}
	accessPolicy, err := policy.ByName(cfg.Policy.Mode)
	if err != nil {
		logger.Fatal("failed to select access policy", "error", err)
	}

	pingers := map[string]model.Pinger{"store": st.pinger}

	var imageStorage model.Storage
	if cfg.Storage.Enabled {
		storageClient, err := storage.Connect(ctx, storage.Options{
			Endpoint:  cfg.Storage.Endpoint,
			AccessKey: cfg.Storage.AccessKey,
			SecretKey: cfg.Storage.SecretKey,
			Bucket:    cfg.Storage.Bucket,
			UseSSL:    cfg.Storage.UseSSL,
		})
		if err != nil {
			logger.Fatal("failed to initialize storage client", "error", err)
		}
		imageStorage = storageClient
		pingers["storage"] = storageClient
	}

	tokenService := service.NewTokenService(tokenManager, logger)
	userService := service.NewUser(st.users, logger)
	eventService := service.NewEvent(st.events, imageStorage, logger)

	r := router.New(router.Dependencies{
		TokenService:   tokenService,
		UserService:    userService,
		EventService:   eventService,
		Policy:         accessPolicy,
		ContextManager: httpctx.NewManager(),
		Metrics:        metrics.New(),
		Pingers:        pingers,
		CORSOrigins:    cfg.HTTP.CORSOrigins,
		Logger:         logger,
	})
	httpServer := server.NewHTTPServer(r.Register(), fmt.Sprintf(":%s", cfg.HTTP.Port))

	var sl model.SecurityLayer
	if cfg.HTTP.EnableHTTPS {
		sl = server.NewTLSListener(cfg.HTTP.CertFileName, cfg.HTTP.PrivateKeyFileName)
	} else {
		sl = server.NewPlainListener()
	}

	var wg sync.WaitGroup
	wg.Add(1)
	go func(s model.Server) {
		defer wg.Done()
		logger.Info("Starting server on",
			"address", s.Address(),
			"store", cfg.Store.Driver,
			"policy", accessPolicy.Name(),
			"images", cfg.Storage.Enabled)
		if err := s.Start(sl); err != nil {
			logger.Error("failed to start server", "error", err)
			stop()
		}
	}(httpServer)

	logAppVersion()

	<-ctx.Done()
	logger.Info("received interruption signal, shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()

	if err := httpServer.Stop(shutdownCtx); err != nil {
		logger.Error("error during server shutdown", "error", err, "address", httpServer.Address())
	}

	wg.Wait()
	logger.Info("shutdown complete")
}

func openStores(ctx context.Context, cfg *config.Config) (*stores, error) {
	switch cfg.Store.Driver {
	case config.StoreDriverPostgres:
		db, err := postgres.NewConnection(ctx, cfg.Database.DSN)
		if err != nil {
			return nil, err
		}
		return &stores{
			events: postgres.NewEventRepository(db),
			users:  postgres.NewUserRepository(db),
			pinger: db,
			close:  func(context.Context) error { return db.Close() },
		}, nil
	case config.StoreDriverMongo:
		conn, err := mongodb.NewConnection(ctx, cfg.Mongo.URI, cfg.Mongo.Database)
		if err != nil {
			return nil, err
		}
		return &stores{
			events: mongodb.NewEventRepository(conn.Database()),
			users:  mongodb.NewUserRepository(conn.Database()),
			pinger: conn,
			close:  conn.Close,
		}, nil
	case config.StoreDriverMemory:
		events := memory.NewEventRepository()
		return &stores{
			events: events,
			users:  memory.NewUserRepository(),
			pinger: events,
			close:  func(context.Context) error { return nil },
		}, nil
	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.Store.Driver)
	}
}

func logAppVersion() {
	tmpl := `
Build version: %s
Build date: %s
Build commit: %s
`

	fmt.Printf(tmpl, buildVersion, buildDate, buildCommit)
}
