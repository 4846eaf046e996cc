package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"

	"pehlione.com/storefront/internal/modules/products"
	"pehlione.com/storefront/internal/storage"
)

func main() {
	_ = godotenv.Load()

	file := flag.String("file", "catalog.yaml", "Catalog YAML file")
	dryRun := flag.Bool("dry-run", false, "Validate the file and print integrity issues, don't write")
	flag.Parse()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	cat, err := loadCatalogFile(*file)
	if err != nil {
		log.Fatalf("catalog: %v", err)
	}

	issues := 0
	for _, p := range cat.Products {
		_, errs := p.preview()
		for _, e := range errs {
			issues++
			logger.Warn("catalog_integrity", slog.String("slug", p.Slug), slog.Any("err", e))
		}
	}
	if *dryRun {
		fmt.Printf("%d products, %d integrity issues\n", len(cat.Products), issues)
		return
	}

	dsn := os.Getenv("DB_DSN")
	if dsn == "" {
		log.Fatal("DB_DSN environment variable is required")
	}
	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	ctx := context.Background()
	st, err := storage.FromEnv(ctx)
	if err != nil {
		log.Fatalf("storage: %v", err)
	}

	s := &seeder{repo: products.NewRepo(db), store: st.Storage, baseDir: filepath.Dir(*file), log: logger}
	created, skipped := 0, 0
	for _, p := range cat.Products {
		ok, err := s.seedProduct(ctx, p)
		if err != nil {
			log.Fatalf("seed %s: %v", p.Slug, err)
		}
		if ok {
			created++
		} else {
			skipped++
		}
	}
	fmt.Printf("✓ %d products created, %d already present\n", created, skipped)
}
