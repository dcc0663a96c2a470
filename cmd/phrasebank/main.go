package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"breathcoach-be/internal/config"
	"breathcoach-be/pkg/catalog"
	"breathcoach-be/pkg/coach"
	"breathcoach-be/pkg/database"

	"github.com/fatih/color"
)

// phrasebank maintains the coaching phrase catalog offline: import a
// CSV sheet into Postgres, clean banned vocabulary out of it, export
// it back to CSV, or render a markdown review document. The running
// engine only ever reads the catalog at boot.
func usage() {
	fmt.Fprintf(os.Stderr, `Usage: phrasebank <command> [flags]

Commands:
  import  -csv <file>   load a phase,intent,text sheet into the catalog
  export  -csv <file>   write the catalog back to a CSV sheet
  clean                 strip banned vocabulary from every template
  review  -out <file>   export a markdown review document
`)
	os.Exit(2)
}

func main() {
	if len(os.Args) < 2 {
		usage()
	}

	cfg := config.Load()
	if cfg.Database.Connection == "" {
		color.Red("DB_CONNECTION_STRING is required for catalog maintenance")
		os.Exit(1)
	}

	db, err := database.NewGormDBFromDSN(cfg.Database.Connection)
	if err != nil {
		color.Red("Failed to connect to catalog DB: %v", err)
		os.Exit(1)
	}

	repo := catalog.NewCatalogRepository(db)
	if err := repo.Migrate(); err != nil {
		color.Red("Failed to migrate catalog table: %v", err)
		os.Exit(1)
	}

	ctx := context.Background()

	switch os.Args[1] {
	case "import":
		fs := flag.NewFlagSet("import", flag.ExitOnError)
		csvPath := fs.String("csv", "", "CSV sheet to import")
		fs.Parse(os.Args[2:])
		if *csvPath == "" {
			usage()
		}
		runImport(ctx, repo, *csvPath)

	case "export":
		fs := flag.NewFlagSet("export", flag.ExitOnError)
		csvPath := fs.String("csv", "", "CSV file to write")
		fs.Parse(os.Args[2:])
		if *csvPath == "" {
			usage()
		}
		runExport(ctx, repo, *csvPath)

	case "clean":
		runClean(ctx, repo)

	case "review":
		fs := flag.NewFlagSet("review", flag.ExitOnError)
		outPath := fs.String("out", "phrase_review.md", "markdown file to write")
		fs.Parse(os.Args[2:])
		runReview(ctx, repo, *outPath)

	default:
		usage()
	}
}

func runImport(ctx context.Context, repo *catalog.CatalogRepository, csvPath string) {
	color.Cyan("📥 Importing phrase catalog from %s", csvPath)

	file, err := os.Open(csvPath)
	if err != nil {
		color.Red("Failed: %v", err)
		os.Exit(1)
	}
	defer file.Close()

	records, err := catalog.ReadCSV(file)
	if err != nil {
		color.Red("Failed: %v", err)
		os.Exit(1)
	}

	// Imported sheets get the same cleanup as the clean command, so
	// templates stay valid by construction.
	banned := coach.DefaultValidationRules().BannedWords
	records = catalog.CleanRecords(records, banned)

	if err := repo.ReplaceAll(ctx, records); err != nil {
		color.Red("Failed: %v", err)
		os.Exit(1)
	}
	color.Green("Imported %d templates", len(records))
}

func runExport(ctx context.Context, repo *catalog.CatalogRepository, csvPath string) {
	color.Cyan("📤 Exporting phrase catalog to %s", csvPath)

	records, err := repo.ListAll(ctx)
	if err != nil {
		color.Red("Failed: %v", err)
		os.Exit(1)
	}

	file, err := os.Create(csvPath)
	if err != nil {
		color.Red("Failed: %v", err)
		os.Exit(1)
	}
	defer file.Close()

	if err := catalog.WriteCSV(file, records); err != nil {
		color.Red("Failed: %v", err)
		os.Exit(1)
	}
	color.Green("Exported %d templates", len(records))
}

func runClean(ctx context.Context, repo *catalog.CatalogRepository) {
	color.Cyan("🧹 Cleaning banned vocabulary from the catalog")

	records, err := repo.ListAll(ctx)
	if err != nil {
		color.Red("Failed: %v", err)
		os.Exit(1)
	}

	banned := coach.DefaultValidationRules().BannedWords
	cleaned := catalog.CleanRecords(records, banned)

	if err := repo.ReplaceAll(ctx, cleaned); err != nil {
		color.Red("Failed: %v", err)
		os.Exit(1)
	}
	color.Green("Kept %d of %d templates", len(cleaned), len(records))
}

func runReview(ctx context.Context, repo *catalog.CatalogRepository, outPath string) {
	color.Cyan("📝 Writing review document to %s", outPath)

	records, err := repo.ListAll(ctx)
	if err != nil {
		color.Red("Failed: %v", err)
		os.Exit(1)
	}

	file, err := os.Create(outPath)
	if err != nil {
		color.Red("Failed: %v", err)
		os.Exit(1)
	}
	defer file.Close()

	if err := catalog.WriteReviewMarkdown(file, records); err != nil {
		color.Red("Failed: %v", err)
		os.Exit(1)
	}
	color.Green("Review document written (%d templates)", len(records))
}
