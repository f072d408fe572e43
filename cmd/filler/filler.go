package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/flowHater/menu-seeder/pkg/config"
	"github.com/flowHater/menu-seeder/pkg/firebase"
	"github.com/flowHater/menu-seeder/pkg/logger"
	"github.com/flowHater/menu-seeder/pkg/memory"
	"github.com/flowHater/menu-seeder/pkg/postgres"
	"github.com/flowHater/menu-seeder/pkg/record"
	"github.com/flowHater/menu-seeder/pkg/repository"
	"github.com/flowHater/menu-seeder/pkg/seeder"
	"github.com/flowHater/menu-seeder/pkg/source"
	"github.com/google/uuid"
)

type store interface {
	seeder.Store
	Close(ctx context.Context) error
}

func main() {
	cfg, err := config.Load(os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.LogLevel).With("run_id", uuid.NewString())
	slog.SetDefault(log)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Error("error uploading data", "error", err)
		stop()
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, log *slog.Logger) error {
	opener := source.New(source.WithRegion(cfg.AWSRegion))

	categories, err := load(ctx, opener, cfg.CategoriesFile, seeder.CategoriesCollection)
	if err != nil {
		return err
	}
	foodItems, err := load(ctx, opener, cfg.FoodItemsFile, seeder.FoodItemsCollection)
	if err != nil {
		return err
	}

	st, err := connect(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := st.Close(context.Background()); err != nil {
			log.Warn("closing store", "backend", cfg.Backend, "error", err)
		}
	}()

	log.Info("connected", "backend", cfg.Backend)

	s := seeder.New(seeder.WithStore(st), seeder.WithLogger(log))
	if _, err := s.Seed(ctx, categories, foodItems); err != nil {
		return err
	}

	if cfg.Verify {
		return s.Verify(ctx, categories, foodItems)
	}

	return nil
}

func load(ctx context.Context, opener *source.Opener, location, field string) ([]record.Record, error) {
	rc, err := opener.Open(ctx, location)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	rs, err := record.Load(rc, field)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", location, err)
	}

	return rs, nil
}

func connect(ctx context.Context, cfg *config.Config) (store, error) {
	switch cfg.Backend {
	case config.BackendFirestore:
		return firebase.Connect(ctx, cfg.Firestore.ProjectID, cfg.Firestore.CredentialsFile)
	case config.BackendMongo:
		return repository.Connect(ctx, cfg.Mongo.URI, cfg.Mongo.Database)
	case config.BackendPostgres:
		return postgres.Connect(ctx, cfg.Postgres.DSN)
	case config.BackendMemory:
		return memory.New(), nil
	}

	return nil, fmt.Errorf("unknown backend %q", cfg.Backend)
}
