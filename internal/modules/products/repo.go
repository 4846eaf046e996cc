package products

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Repo writes catalog rows. The storefront itself only reads; Repo is
// used by the catalog tooling.
type Repo struct{ db *gorm.DB }

func NewRepo(db *gorm.DB) *Repo { return &Repo{db: db} }

// Transaction runs fn with a Repo bound to a single transaction.
func (r *Repo) Transaction(ctx context.Context, fn func(tx *Repo) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&Repo{db: tx})
	})
}

type NewProduct struct {
	Name           string
	Slug           string
	Description    string
	Status         string
	Featured       bool
	PriceCents     int
	CompareAtCents int
	Currency       string
}

func (r *Repo) CreateProduct(ctx context.Context, in NewProduct) (Product, error) {
	if in.Status == "" {
		in.Status = StatusActive
	}
	now := time.Now()
	p := Product{
		ID:             uuid.NewString(),
		Name:           in.Name,
		Slug:           in.Slug,
		Description:    in.Description,
		Status:         in.Status,
		Featured:       in.Featured,
		PriceCents:     in.PriceCents,
		CompareAtCents: in.CompareAtCents,
		Currency:       in.Currency,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := r.db.WithContext(ctx).Create(&p).Error; err != nil {
		return Product{}, err
	}
	return p, nil
}

func (r *Repo) AddOption(ctx context.Context, productID, name string, position int, values []string, swatches map[string]string) (ProductOption, error) {
	valuesJSON, err := json.Marshal(values)
	if err != nil {
		return ProductOption{}, err
	}
	o := ProductOption{
		ID:        uuid.NewString(),
		ProductID: productID,
		Name:      name,
		Position:  position,
		Values:    datatypes.JSON(valuesJSON),
		CreatedAt: time.Now(),
	}
	if len(swatches) > 0 {
		sw, err := json.Marshal(swatches)
		if err != nil {
			return ProductOption{}, err
		}
		o.Swatches = datatypes.JSON(sw)
	}
	if err := r.db.WithContext(ctx).Create(&o).Error; err != nil {
		return ProductOption{}, err
	}
	return o, nil
}

type NewVariant struct {
	SKU            string
	Options        map[string]string
	PriceCents     int
	CompareAtCents int
	Currency       string
	Stock          int
	ImageKey       string
}

func (r *Repo) AddVariant(ctx context.Context, productID string, in NewVariant) (Variant, error) {
	optionsJSON, err := json.Marshal(in.Options)
	if err != nil {
		return Variant{}, err
	}
	now := time.Now()
	v := Variant{
		ID:             uuid.NewString(),
		ProductID:      productID,
		SKU:            in.SKU,
		Options:        datatypes.JSON(optionsJSON),
		PriceCents:     in.PriceCents,
		CompareAtCents: in.CompareAtCents,
		Currency:       in.Currency,
		Stock:          in.Stock,
		ImageKey:       in.ImageKey,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := r.db.WithContext(ctx).Create(&v).Error; err != nil {
		return Variant{}, err
	}
	return v, nil
}

func (r *Repo) AddImageWithKey(ctx context.Context, productID, storageKey, url string, position int) (Image, error) {
	im := Image{
		ID:         uuid.NewString(),
		ProductID:  productID,
		StorageKey: storageKey,
		URL:        url,
		Position:   position,
		CreatedAt:  time.Now(),
	}
	if err := r.db.WithContext(ctx).Create(&im).Error; err != nil {
		return Image{}, err
	}
	return im, nil
}

func IsDuplicateKey(err error) bool {
	var me *mysql.MySQLError
	if errors.As(err, &me) {
		return me.Number == 1062
	}
	return false
}
