package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/fadilmartias/pathfinder/internal/config"
	"github.com/fadilmartias/pathfinder/internal/repository"
	"github.com/fadilmartias/pathfinder/internal/service"
	"github.com/fadilmartias/pathfinder/internal/usecase"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "seed",
	Short: "Import questions and institutions into the catalog",
	Long: `seed validates a catalog document and upserts its questions and
institutions. The source may be a file path or an http(s) URL.`,
	SilenceUsage: true,
	RunE:         runSeed,
}

func init() {
	rootCmd.Flags().String("source", "", "Catalog file path or URL (defaults to CATALOG_SOURCE_URL)")
	rootCmd.Flags().Bool("dry-run", false, "Validate the catalog without writing to the database")
}

func runSeed(cmd *cobra.Command, args []string) error {
	source, _ := cmd.Flags().GetString("source")
	dryRun, _ := cmd.Flags().GetBool("dry-run")

	catalogConfig := config.LoadCatalogConfig()
	if source == "" {
		source = catalogConfig.SourceURL
	}
	if source == "" {
		return fmt.Errorf("--source is required when CATALOG_SOURCE_URL is unset")
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	importer := service.NewCatalogImportService(catalogConfig)

	var uc *usecase.CatalogUsecase
	if dryRun {
		uc = usecase.NewCatalogUsecase(nil, nil, importer)
	} else {
		db, err := repository.ConnectDB(config.LoadDBConfig(), config.LoadAppConfig())
		if err != nil {
			return fmt.Errorf("connect database: %w", err)
		}
		if err := repository.Migrate(db); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
		uc = usecase.NewCatalogUsecase(repository.NewQuestionRepository(db), repository.NewInstitutionRepository(db), importer)
	}

	report, err := uc.Import(ctx, source, dryRun)
	if err != nil {
		return err
	}

	mode := "imported"
	if report.DryRun {
		mode = "validated"
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s %d questions and %d institutions\n", mode, report.Questions, report.Institutions)
	return nil
}

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Could not load .env file")
	}
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}
