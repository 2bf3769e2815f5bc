package cli

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/andreyp/catalog-importer/internal/config"
	"github.com/andreyp/catalog-importer/internal/database"
	"github.com/andreyp/catalog-importer/internal/database/assets"
	"github.com/andreyp/catalog-importer/internal/database/products"
	"github.com/andreyp/catalog-importer/internal/fetcher"
	"github.com/andreyp/catalog-importer/internal/importer"
	"github.com/andreyp/catalog-importer/internal/services"
)

// ProductsImportCommand imports products from a JSON URL or file.
type ProductsImportCommand struct {
	Source        string
	DatabasePath  string
	ProductFolder string
	ImageFolder   string
	Verbose       bool
}

func NewProductsImportCommand() *ProductsImportCommand {
	return &ProductsImportCommand{}
}

func (cmd *ProductsImportCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("products-import", flag.ExitOnError)

	fs.StringVar(&cmd.Source, "source", "", "URL or local file path to JSON with products (required)")
	fs.StringVar(&cmd.DatabasePath, "db", config.DefaultDatabasePath, "Path to the catalog database file")
	fs.StringVar(&cmd.ProductFolder, "product-folder", config.DefaultProductFolder, "Container path new products are created under")
	fs.StringVar(&cmd.ImageFolder, "image-folder", config.DefaultImageFolder, "Container path downloaded image assets are created under")
	fs.BoolVar(&cmd.Verbose, "verbose", false, "Also print success lines for every upserted product")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s products-import -source <url-or-path> [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Import products from a JSON document into the catalog.\n\n")
		fmt.Fprintf(os.Stderr, "The document must have the shape:\n")
		fmt.Fprintf(os.Stderr, "  {\"products\": [{\"name\": \"Widget\", \"gtin\": 100, \"image\": \"...\", \"date\": \"...\"}, ...]}\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  # Import from a URL:\n")
		fmt.Fprintf(os.Stderr, "  %s products-import -source https://example.com/products.json\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  # Import from a local file into a specific database:\n")
		fmt.Fprintf(os.Stderr, "  %s products-import -source ./products.json -db ./catalog.db\n", os.Args[0])
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	if cmd.Source == "" {
		return fmt.Errorf("required flag -source not provided")
	}

	return nil
}

func (cmd *ProductsImportCommand) Run() error {
	fmt.Println("Products Import")
	fmt.Println("===============")
	fmt.Printf("Source: %s\n", cmd.Source)

	absDBPath, err := filepath.Abs(cmd.DatabasePath)
	if err != nil {
		return fmt.Errorf("failed to get absolute path for database: %w", err)
	}
	cmd.DatabasePath = absDBPath

	fmt.Printf("Database: %s\n\n", cmd.DatabasePath)

	db, err := database.NewDatabase(cmd.DatabasePath)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer db.Close()

	client := fetcher.NewClient(config.DefaultFetchTimeout)
	resolver := importer.NewResolver(assets.NewRepository(db.DB), client, cmd.ImageFolder)
	reconciler := importer.NewReconciler(products.NewRepository(db.DB), cmd.ProductFolder)
	pipeline := importer.NewPipeline(client, resolver, reconciler)

	result, err := pipeline.ImportFromSource(cmd.Source)
	if err != nil {
		return err
	}

	for _, msg := range result.Messages {
		switch msg.Level {
		case services.LevelWarning:
			fmt.Printf("  [WARNING] %s\n", msg.Text)
		case services.LevelError:
			fmt.Printf("  [ERROR] %s\n", msg.Text)
		case services.LevelSuccess:
			if cmd.Verbose {
				fmt.Printf("  [OK] %s\n", msg.Text)
			}
		}
	}

	fmt.Printf("\nImported/updated %d product(s).\n", result.SuccessCount)
	return nil
}
