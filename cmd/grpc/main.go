package main

import (
	"context"
	"net"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/fekuna/omnipos-catalog-service/config"
	"github.com/fekuna/omnipos-catalog-service/migrations"
	"github.com/fekuna/omnipos-catalog-service/pkg/broker"
	"github.com/fekuna/omnipos-catalog-service/pkg/cache"
	"github.com/fekuna/omnipos-catalog-service/pkg/i18n"
	"github.com/fekuna/omnipos-catalog-service/pkg/logger"
	"github.com/fekuna/omnipos-catalog-service/pkg/postgres"
	"github.com/fekuna/omnipos-catalog-service/pkg/search"
	"github.com/fekuna/omnipos-catalog-service/pkg/storage"

	"github.com/fekuna/omnipos-catalog-service/internal/catalog/treecache"
	"github.com/fekuna/omnipos-catalog-service/internal/event"
	"github.com/fekuna/omnipos-catalog-service/internal/grpcutil"
	"github.com/fekuna/omnipos-catalog-service/internal/mapper"
	"github.com/fekuna/omnipos-catalog-service/internal/product"
	"github.com/fekuna/omnipos-catalog-service/internal/server"
	"github.com/fekuna/omnipos-catalog-service/internal/validate"

	catalogH "github.com/fekuna/omnipos-catalog-service/internal/catalog/handler"
	catalogUCPkg "github.com/fekuna/omnipos-catalog-service/internal/catalog/usecase"

	catH "github.com/fekuna/omnipos-catalog-service/internal/category/handler"
	catRepoPkg "github.com/fekuna/omnipos-catalog-service/internal/category/repository"
	catUCPkg "github.com/fekuna/omnipos-catalog-service/internal/category/usecase"

	modH "github.com/fekuna/omnipos-catalog-service/internal/modifier/handler"
	modRepoPkg "github.com/fekuna/omnipos-catalog-service/internal/modifier/repository"
	modUCPkg "github.com/fekuna/omnipos-catalog-service/internal/modifier/usecase"

	prodH "github.com/fekuna/omnipos-catalog-service/internal/product/handler"
	prodIndexerPkg "github.com/fekuna/omnipos-catalog-service/internal/product/indexer"
	prodListenerPkg "github.com/fekuna/omnipos-catalog-service/internal/product/listener"
	prodRepoPkg "github.com/fekuna/omnipos-catalog-service/internal/product/repository"
	prodUCPkg "github.com/fekuna/omnipos-catalog-service/internal/product/usecase"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	// 1. Load Configuration
	_ = godotenv.Load()
	cfg := config.LoadEnv()

	// 2. Initialize Logger
	logConfig := &logger.ZapLoggerConfig{
		IsDevelopment:     cfg.Server.AppEnv == "development",
		Encoding:          cfg.Logger.Encoding,
		Level:             cfg.Logger.Level,
		DisableCaller:     cfg.Logger.DisableCaller,
		DisableStacktrace: cfg.Logger.DisableStacktrace,
	}
	appLogger := logger.NewZapLogger(logConfig)
	defer appLogger.Sync()

	// 3. Initialize i18n
	translator, err := i18n.NewTranslator(cfg.Catalog.PrimaryLanguage)
	if err != nil {
		appLogger.Fatal("Could not load message catalogs", zap.Error(err))
	}

	// 4. Connect to Database
	db, err := postgres.NewPostgres(&postgres.Config{
		Host:            cfg.Postgres.Host,
		Port:            cfg.Postgres.Port,
		User:            cfg.Postgres.User,
		Password:        cfg.Postgres.Password,
		DBName:          cfg.Postgres.DBName,
		SSLMode:         cfg.Postgres.SSLMode,
		MaxOpenConns:    cfg.Postgres.MaxOpenConns,
		MaxIdleConns:    cfg.Postgres.MaxIdleConns,
		ConnMaxLifetime: time.Duration(cfg.Postgres.ConnMaxLifetime) * time.Second,
		ConnMaxIdleTime: time.Duration(cfg.Postgres.ConnMaxIdleTime) * time.Second,
	})
	if err != nil {
		appLogger.Fatal("Could not connect to database", zap.Error(err))
	}
	defer db.Close()
	appLogger.Info("Connected to PostgreSQL database", zap.String("db_name", cfg.Postgres.DBName))

	if cfg.Postgres.AutoMigrate {
		if err := postgres.Migrate(db, migrations.FS); err != nil {
			appLogger.Fatal("Could not migrate database", zap.Error(err))
		}
		appLogger.Info("Database schema is up to date")
	}

	// 5. Initialize Repositories
	catRepo := catRepoPkg.NewPGRepository(db)
	prodRepo := prodRepoPkg.NewPGRepository(db)
	modRepo := modRepoPkg.NewPGRepository(db)

	// 6. Initialize Redis (tree cache and reorder locks)
	var treeCache *treecache.Cache
	redisClient, err := cache.NewRedisClient(&cache.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		appLogger.Warn("Could not connect to Redis, running without tree cache", zap.Error(err))
	} else {
		defer redisClient.Close()
		treeCache = treecache.New(redisClient, time.Duration(cfg.Redis.TreeTTL)*time.Second, appLogger)
		appLogger.Info("Connected to Redis", zap.String("addr", cfg.Redis.Addr))
	}

	// 7. Initialize Kafka
	var publishers event.Fanout
	kafkaProducer := broker.NewProducer(&broker.Config{
		Brokers: cfg.Kafka.Brokers,
		Topic:   cfg.Kafka.CatalogTopic,
	})
	defer kafkaProducer.Close()
	publishers = append(publishers, event.NewKafkaPublisher(kafkaProducer))

	kafkaConsumer := broker.NewConsumer(&broker.Config{
		Brokers: cfg.Kafka.Brokers,
		Topic:   cfg.Kafka.InventoryTopic,
		GroupID: cfg.Kafka.GroupID,
	})
	defer kafkaConsumer.Close()
	appLogger.Info("Connected to Kafka",
		zap.Strings("brokers", cfg.Kafka.Brokers),
		zap.String("catalog_topic", cfg.Kafka.CatalogTopic),
		zap.String("inventory_topic", cfg.Kafka.InventoryTopic),
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// 8. Initialize Elasticsearch
	var searcher product.Searcher
	esClient, err := search.NewClient(&search.Config{
		Addresses: cfg.Elastic.Addresses,
		Username:  cfg.Elastic.Username,
		Password:  cfg.Elastic.Password,
	})
	if err != nil {
		appLogger.Warn("Could not connect to Elasticsearch, product search uses the catalog tree", zap.Error(err))
	} else {
		indexer := prodIndexerPkg.New(esClient, cfg.Elastic.Index, appLogger)
		if err := indexer.EnsureIndex(ctx); err != nil {
			appLogger.Warn("Could not create product index", zap.String("index", cfg.Elastic.Index), zap.Error(err))
		}
		searcher = indexer
		publishers = append(publishers, indexer)
		appLogger.Info("Connected to Elasticsearch", zap.Strings("addresses", cfg.Elastic.Addresses))
	}

	// 9. Initialize asset store
	var assets storage.Verifier
	var imageURL mapper.URLFunc
	if cfg.Minio.Endpoint != "" {
		store, err := storage.NewMinioStore(&storage.Config{
			Endpoint:  cfg.Minio.Endpoint,
			AccessKey: cfg.Minio.AccessKey,
			SecretKey: cfg.Minio.SecretKey,
			Bucket:    cfg.Minio.Bucket,
			UseSSL:    cfg.Minio.UseSSL,
			PublicURL: cfg.Minio.PublicURL,
		})
		if err != nil {
			appLogger.Fatal("Could not initialize asset store", zap.Error(err))
		}
		assets = store
		imageURL = store.URL
		appLogger.Info("Asset references checked against MinIO", zap.String("bucket", cfg.Minio.Bucket))
	}

	// 10. Initialize UseCases
	langs := validate.Languages{
		Primary:   cfg.Catalog.PrimaryLanguage,
		Supported: cfg.Catalog.SupportedLanguages,
	}
	catalogUC := catalogUCPkg.NewCatalogUseCase(catRepo, prodRepo, modRepo, treeCache, langs.Primary, appLogger)
	catUC := catUCPkg.NewCategoryUseCase(catRepo, treeCache, publishers, assets, langs, appLogger)
	prodUC := prodUCPkg.NewProductUseCase(prodRepo, catRepo, modRepo, treeCache, publishers, assets, searcher, catalogUC, langs, appLogger)
	modUC := modUCPkg.NewModifierUseCase(modRepo, treeCache, publishers, langs, appLogger)

	// 11. Start Listeners
	stockListener := prodListenerPkg.NewStockListener(kafkaConsumer, prodUC, appLogger)
	go stockListener.Start(ctx)

	// 12. Initialize Handlers
	errs := grpcutil.NewErrors(translator, appLogger)
	handlers := server.Handlers{
		Category: catH.NewCategoryHandler(catUC, errs, appLogger),
		Product:  prodH.NewProductHandler(prodUC, errs, imageURL, appLogger),
		Modifier: modH.NewModifierGroupHandler(modUC, errs, appLogger),
		Catalog:  catalogH.NewCatalogHandler(catalogUC, errs, imageURL, appLogger),
	}

	// 13. Start gRPC Server
	port := cfg.Server.GRPCPort
	if !strings.HasPrefix(port, ":") {
		port = ":" + port
	}

	lis, err := net.Listen("tcp", port)
	if err != nil {
		appLogger.Fatal("failed to listen", zap.String("port", port), zap.Error(err))
	}

	grpcServer := server.New(handlers, langs.Primary, appLogger)

	appLogger.Info("Starting gRPC server", zap.String("port", port))

	go func() {
		if err := grpcServer.Serve(lis); err != nil {
			appLogger.Fatal("failed to serve", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server...")
	cancel()
	grpcServer.GracefulStop()
	appLogger.Info("Server stopped")
}
