package products

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

var ErrNotFound = errors.New("product not found")

type Repository interface {
	ListActive(ctx context.Context, limit, offset int) ([]Product, error)
	GetBySlug(ctx context.Context, slug string) (Product, error)
}

type GormRepo struct {
	db *gorm.DB
}

func NewGormRepo(db *gorm.DB) *GormRepo {
	return &GormRepo{db: db}
}

func (r *GormRepo) ListActive(ctx context.Context, limit, offset int) ([]Product, error) {
	limit, offset = ClampPage(limit, offset)
	var items []Product
	err := r.withCatalog(ctx).
		Where("status = ?", StatusActive).
		Order("id desc").
		Limit(limit).
		Offset(offset).
		Find(&items).Error
	return items, err
}

func (r *GormRepo) GetBySlug(ctx context.Context, slug string) (Product, error) {
	var p Product
	err := r.withCatalog(ctx).
		Where("slug = ? AND status = ?", slug, StatusActive).
		First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return Product{}, ErrNotFound
	}
	return p, err
}

func (r *GormRepo) withCatalog(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Model(&Product{}).
		Preload("Options", func(db *gorm.DB) *gorm.DB {
			return db.Order("position asc, id asc")
		}).
		Preload("Images", func(db *gorm.DB) *gorm.DB {
			return db.Order("position asc, id asc")
		}).
		Preload("Variants", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at asc, id asc")
		})
}

const StatusActive = "active"

// ClampPage keeps listing queries bounded: limit 1..100 (default 24).
func ClampPage(limit, offset int) (int, int) {
	if limit <= 0 || limit > 100 {
		limit = 24
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}
