package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/ikkim/marketplace-api/config"
	"github.com/ikkim/marketplace-api/internal/app/repository"
	"github.com/ikkim/marketplace-api/internal/app/service"
	"github.com/ikkim/marketplace-api/internal/catalogio"
	"github.com/ikkim/marketplace-api/internal/db"
	"github.com/ikkim/marketplace-api/pkg/logger"
)

func main() {
	yes := flag.Bool("yes", false, "import without asking for confirmation")
	flag.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: go run ./cmd/seed [-yes] <catalog.xlsx>")
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() < 1 {
		flag.Usage()
		os.Exit(2)
	}
	filePath := flag.Arg(0)

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}
	logger.Initialize(logger.Config{
		Level:       cfg.LogLevel(),
		Format:      cfg.Log.Format,
		EnableColor: true,
	})

	// Read the workbook before touching the database
	fmt.Printf("Reading XLSX file: %s\n", filePath)
	f, err := os.Open(filePath)
	if err != nil {
		log.Fatal("Failed to open XLSX:", err)
	}
	cat, err := catalogio.Read(f)
	f.Close()
	if err != nil {
		log.Fatal("Failed to read XLSX:", err)
	}

	fmt.Printf("Stores: %d, Products: %d, Tags: %d, StoreProducts: %d, ProductTags: %d\n",
		len(cat.Stores), len(cat.Products), len(cat.Tags), len(cat.StoreProducts), len(cat.ProductTags))

	if !*yes {
		fmt.Print("Do you want to proceed with the import? (yes/no): ")
		var confirm string
		fmt.Scanln(&confirm)
		confirm = strings.ToLower(strings.TrimSpace(confirm))
		if confirm != "yes" && confirm != "y" {
			fmt.Println("Import cancelled.")
			return
		}
	}

	database, err := db.Open(&cfg.Database)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	defer db.Close(database)

	if err := db.Migrate(database); err != nil {
		log.Fatal("Failed to run migrations:", err)
	}

	productRepo := repository.NewProductRepository(database)
	storeRepo := repository.NewStoreRepository(database)
	tagRepo := repository.NewTagRepository(database)
	relationRepo := repository.NewRelationRepository(database)

	svc := catalogio.Services{
		Products: service.NewProductService(productRepo),
		Stores:   service.NewStoreService(storeRepo, cfg.Catalog.DefaultCurrency),
		Tags:     service.NewTagService(tagRepo),
		Relations: service.NewRelationService(productRepo, storeRepo, tagRepo, relationRepo, service.RelationOptions{
			UpsertStoreProducts: cfg.Catalog.UpsertAssociations,
		}),
	}

	result, err := catalogio.Import(svc, cat)
	if err != nil {
		log.Fatal("Import failed:", err)
	}

	fmt.Println("Import completed successfully!")
	fmt.Printf("Created %d stores, %d products, %d tags, %d store products, %d product tags (%d rows skipped)\n",
		result.Stores, result.Products, result.Tags, result.StoreProducts, result.ProductTags, result.Skipped)
}
