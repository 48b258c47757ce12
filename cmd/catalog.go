package cmd

import (
	"context"
	"fmt"
	"os"

	"scene-manager/core/config"
	"scene-manager/core/database"
	"scene-manager/core/logger"
	"scene-manager/core/storage"
	"scene-manager/feature/catalog"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var reconcileFix bool

// catalogCmd groups the catalog maintenance commands
var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Catalog maintenance commands",
}

// reconcileCmd represents the catalog reconcile command
var reconcileCmd = &cobra.Command{
	Use:   "reconcile",
	Short: "Reconcile the catalog against storage",
	Long: `Compares the storage bucket's objects against the catalog records and
reports the drift. With --fix, unrecorded objects are indexed and stale
records pruned.`,
	Run: func(cmd *cobra.Command, args []string) {
		runCatalogReconcile(cmd.Context(), reconcileFix)
	},
}

func init() {
	reconcileCmd.Flags().BoolVar(&reconcileFix, "fix", false, "apply repairs instead of only reporting")
	catalogCmd.AddCommand(reconcileCmd)
	RootCmd.AddCommand(catalogCmd)
}

func runCatalogReconcile(ctx context.Context, fix bool) {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	logg, err := logger.New(&cfg.Log)
	if err != nil {
		fmt.Printf("Failed to create logger: %v\n", err)
		os.Exit(1)
	}

	store, err := storage.NewClient(cfg.Storage)
	if err != nil {
		logg.Fatal("Failed to create storage client", zap.Error(err))
	}

	db, err := database.Connect(cfg.Database)
	if err != nil {
		logg.Fatal("Catalog database connection failed", zap.Error(err))
	}

	svc := catalog.NewService(db, store, cfg.Storage.Bucket, logg)

	logg.Info("Reconciling catalog...", zap.Bool("fix", fix))
	report, err := svc.Reconcile(ctx, fix)
	if err != nil {
		logg.Fatal("Reconciliation failed", zap.Error(err))
	}

	// Pretty Console Output
	fmt.Println("\n--- Catalog Reconciliation ---")
	fmt.Printf("Objects in storage:   %d\n", report.Objects)
	fmt.Printf("Catalog records:      %d\n", report.Records)
	fmt.Printf("Missing in catalog:   %d\n", len(report.MissingInCatalog))
	fmt.Printf("Missing in storage:   %d\n", len(report.MissingInStorage))
	fmt.Println("------------------------------")

	if len(report.MissingInCatalog) > 0 {
		fmt.Println("\nNot cataloged:")
		for _, key := range report.MissingInCatalog {
			fmt.Printf("- %s\n", key)
		}
	}
	if len(report.MissingInStorage) > 0 {
		fmt.Println("\nStale records:")
		for _, key := range report.MissingInStorage {
			fmt.Printf("- %s\n", key)
		}
	}

	if fix {
		fmt.Printf("\nIndexed: %d, Pruned: %d\n", report.Indexed, report.Pruned)
	} else if len(report.MissingInCatalog)+len(report.MissingInStorage) > 0 {
		fmt.Println("\nRun with --fix to repair.")
	}
	fmt.Println("------------------------------")
}
