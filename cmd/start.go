package cmd

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"scene-manager/core/config"
	"scene-manager/core/database"
	"scene-manager/core/loader"
	"scene-manager/core/logger"
	"scene-manager/core/middleware/auth"
	"scene-manager/core/middleware/rayid"
	"scene-manager/core/registry"
	"scene-manager/core/storage"
	"scene-manager/format"

	"scene-manager/feature/assets"
	"scene-manager/feature/catalog"
	"scene-manager/feature/formats"

	"github.com/gofiber/fiber/v2"
	"github.com/minio/minio-go/v7"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// startCmd represents the start command
var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the scene manager server",
	Long:  `Starts the HTTP server and initializes all enabled features.`,
	Run: func(cmd *cobra.Command, args []string) {
		// 1. Load Configuration
		cfg, err := config.LoadConfig(".")
		if err != nil {
			log.Fatalf("Failed to load configuration: %v", err)
		}

		// 2. Initialize Logger
		logg, err := logger.New(&cfg.Log)
		if err != nil {
			log.Fatalf("Failed to initialize logger: %v", err)
		}
		defer logg.Sync()
		zap.ReplaceGlobals(logg)

		// 3. Loader Registry with the built-in formats
		reg := registry.New()
		if err := format.RegisterBuiltins(reg); err != nil {
			logg.Fatal("Failed to register builtin loaders", zap.Error(err))
		}

		// 4. Connect to Catalog Database (Optional)
		var db *gorm.DB
		if conn, err := database.Connect(cfg.Database); err != nil {
			logg.Warn("Optional catalog database connection failed", zap.Error(err))
		} else {
			db = conn
			logg.Info("Connected to catalog database")
		}

		// 5. Initialize Fiber App
		app := fiber.New(fiber.Config{
			DisableStartupMessage: true, // We will log our own startup message
		})

		// 6. Initialize Storage
		store, err := storage.NewClient(cfg.Storage)
		if err != nil {
			logg.Fatal("Failed to create storage client", zap.Error(err))
		}
		exists, err := store.BucketExists(cmd.Context(), cfg.Storage.Bucket)
		if err != nil {
			logg.Fatal("Failed to check bucket", zap.String("bucket", cfg.Storage.Bucket), zap.Error(err))
		}
		if !exists {
			if err := store.MakeBucket(cmd.Context(), cfg.Storage.Bucket, minio.MakeBucketOptions{Region: cfg.Storage.Region}); err != nil {
				logg.Fatal("Failed to create bucket", zap.String("bucket", cfg.Storage.Bucket), zap.Error(err))
			}
			logg.Info("Created bucket", zap.String("bucket", cfg.Storage.Bucket))
		}

		// 7. Initialize Feature Loader
		mgr := loader.NewManager(logg)

		// Register Features
		assetsFeature := assets.NewFeature(store, cfg.Storage.Bucket, reg, logg)
		catalogFeature := catalog.NewFeature(db, store, cfg.Storage.Bucket, logg)
		if catalogFeature.IsEnabled() {
			// Inspections keep the catalog current.
			assetsFeature.Service().SetRecorder(catalogFeature.Service())
		}
		mgr.Register(formats.NewFeature(reg, logg))
		mgr.Register(assetsFeature)
		mgr.Register(catalogFeature)

		// Middleware Registration
		// 1. RayID (Must be first to trace everything)
		app.Use(rayid.New())

		// 2. Logging Middleware (Zap + RayID)
		app.Use(func(c *fiber.Ctx) error {
			l := logger.WithRayID(logg, c)
			l.Info("Request started",
				zap.String("method", c.Method()),
				zap.String("path", c.Path()),
				zap.String("ip", c.IP()),
			)
			err := c.Next()
			if err != nil {
				l.Error("Request error", zap.Error(err))
			}
			return err
		})

		// 3. Auth (Protect API)
		app.Use(auth.New(auth.Config{ApiKey: cfg.Server.ApiKey}))

		// 8. Load Features
		if err := mgr.LoadAll(app); err != nil {
			logg.Fatal("Failed to load features", zap.Error(err))
		}

		// 9. Start Server
		go func() {
			logg.Info("Starting server", zap.String("port", cfg.Server.Port))
			if err := app.Listen(":" + cfg.Server.Port); err != nil {
				logg.Fatal("Server failed to start", zap.Error(err))
			}
		}()

		// 10. Graceful Shutdown
		c := make(chan os.Signal, 1)
		signal.Notify(c, os.Interrupt, syscall.SIGTERM)
		<-c
		logg.Info("Shutting down server...")
		_ = app.Shutdown()
	},
}

func init() {
	RootCmd.AddCommand(startCmd)
}
