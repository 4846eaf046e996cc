package main

import (
	"context"
	"fmt"
	"log/slog"
	"mime"
	"os"
	"path/filepath"

	"pehlione.com/storefront/internal/modules/products"
	"pehlione.com/storefront/internal/storage"
)

type seeder struct {
	repo    *products.Repo
	store   storage.Storage
	baseDir string
	log     *slog.Logger
}

// seedProduct uploads the images and writes one product in a single
// transaction. An existing slug is reported as skipped, not as an error.
func (s *seeder) seedProduct(ctx context.Context, p productSeed) (bool, error) {
	uploaded := map[string]string{}
	upload := func(file string) (string, error) {
		if key, ok := uploaded[file]; ok {
			return key, nil
		}
		key, err := s.upload(ctx, file)
		if err != nil {
			return "", err
		}
		uploaded[file] = key
		return key, nil
	}

	err := s.repo.Transaction(ctx, func(tx *products.Repo) error {
		row, err := tx.CreateProduct(ctx, products.NewProduct{
			Name:           p.Name,
			Slug:           p.Slug,
			Description:    p.Description,
			Status:         p.Status,
			Featured:       p.Featured,
			PriceCents:     p.PriceCents,
			CompareAtCents: p.CompareAtCents,
			Currency:       p.Currency,
		})
		if err != nil {
			return err
		}

		for i, o := range p.Options {
			if _, err := tx.AddOption(ctx, row.ID, o.Name, i, o.Values, o.Swatches); err != nil {
				return fmt.Errorf("option %s: %w", o.Name, err)
			}
		}

		for _, v := range p.Variants {
			var imageKey string
			if v.Image != "" {
				if imageKey, err = upload(v.Image); err != nil {
					return err
				}
			}
			if _, err := tx.AddVariant(ctx, row.ID, products.NewVariant{
				SKU:            v.SKU,
				Options:        v.Options,
				PriceCents:     v.PriceCents,
				CompareAtCents: v.CompareAtCents,
				Stock:          v.Stock,
				ImageKey:       imageKey,
			}); err != nil {
				return fmt.Errorf("variant %s: %w", v.SKU, err)
			}
		}

		for i, im := range p.Images {
			var key string
			if im.File != "" {
				if key, err = upload(im.File); err != nil {
					return err
				}
			}
			if _, err := tx.AddImageWithKey(ctx, row.ID, key, im.URL, i); err != nil {
				return err
			}
		}
		return nil
	})
	if products.IsDuplicateKey(err) {
		s.log.Info("product_exists", slog.String("slug", p.Slug))
		return false, nil
	}
	if err != nil {
		return false, err
	}
	s.log.Info("product_created", slog.String("slug", p.Slug), slog.Int("variants", len(p.Variants)))
	return true, nil
}

func (s *seeder) upload(ctx context.Context, file string) (string, error) {
	path := file
	if !filepath.IsAbs(path) {
		path = filepath.Join(s.baseDir, file)
	}
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("image %s: %w", file, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return "", err
	}
	res, err := s.store.Put(ctx, f, storage.PutInput{
		Filename:    filepath.Base(path),
		ContentType: mime.TypeByExtension(filepath.Ext(path)),
		Size:        info.Size(),
	})
	if err != nil {
		return "", fmt.Errorf("upload %s: %w", file, err)
	}
	return res.Key, nil
}
