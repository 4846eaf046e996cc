package handlers

import (
	"context"
	"errors"
	"log/slog"

	"pehlione.com/storefront/internal/modules/products"
	"pehlione.com/storefront/internal/modules/variants"
	"pehlione.com/storefront/internal/observability"
	"pehlione.com/storefront/internal/shared/apperr"
	"pehlione.com/storefront/internal/storage"
)

// Catalog loads products through the repository and hands the resolver
// validated data. Integrity problems are logged and counted, never
// returned to the shopper.
type Catalog struct {
	repo  products.Repository
	store storage.Storage
	log   *slog.Logger
}

func NewCatalog(repo products.Repository, store storage.Storage, l *slog.Logger) *Catalog {
	return &Catalog{repo: repo, store: store, log: l}
}

func (c *Catalog) Product(ctx context.Context, slug string) (*variants.Product, error) {
	row, err := c.repo.GetBySlug(ctx, slug)
	if errors.Is(err, products.ErrNotFound) {
		return nil, apperr.NotFoundErr("Product not found.")
	}
	if err != nil {
		return nil, storeErr(err)
	}
	p := c.convert(ctx, row)
	return &p, nil
}

func (c *Catalog) List(ctx context.Context, limit, offset int) ([]variants.Product, error) {
	rows, err := c.repo.ListActive(ctx, limit, offset)
	if err != nil {
		return nil, storeErr(err)
	}
	out := make([]variants.Product, 0, len(rows))
	for _, row := range rows {
		out = append(out, c.convert(ctx, row))
	}
	return out, nil
}

func (c *Catalog) convert(ctx context.Context, row products.Product) variants.Product {
	p, issues := products.ToCatalog(row, c.imageURL(ctx))
	for _, issue := range issues {
		kind := issueKind(issue)
		observability.RecordCatalogIssue(kind)
		c.log.LogAttrs(ctx, slog.LevelWarn, "catalog_integrity",
			slog.String("product_id", row.ID),
			slog.String("slug", row.Slug),
			slog.String("kind", kind),
			slog.Any("err", issue),
		)
	}
	return p
}

func (c *Catalog) imageURL(ctx context.Context) products.ImageURLFunc {
	if c.store == nil {
		return nil
	}
	return func(key string) string {
		u, err := c.store.URL(ctx, key)
		if err != nil {
			c.log.LogAttrs(ctx, slog.LevelWarn, "image_url_failed",
				slog.String("key", key),
				slog.Any("err", err),
			)
			return ""
		}
		return u
	}
}
