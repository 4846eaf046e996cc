package cart

import (
	"context"
	"errors"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Repo struct{ db *gorm.DB }

func NewRepo(db *gorm.DB) *Repo { return &Repo{db: db} }

// CreateGuestCart opens a cart that is only reachable through the
// signed cart cookie.
func (r *Repo) CreateGuestCart(ctx context.Context) (string, error) {
	c := Cart{ID: uuid.NewString(), Status: StatusOpen}
	if err := r.db.WithContext(ctx).Create(&c).Error; err != nil {
		return "", err
	}
	return c.ID, nil
}

func (r *Repo) IsOpen(ctx context.Context, cartID string) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&Cart{}).
		Where("id = ? AND status = ?", cartID, StatusOpen).
		Count(&n).Error
	return n > 0, err
}

// AddLineItem inserts the line or adds qty to an existing one.
func (r *Repo) AddLineItem(ctx context.Context, cartID, productID, variantID string, qty int) error {
	return withRetry(ctx, 3, func() error {
		now := time.Now()
		item := CartItem{
			ID:        uuid.NewString(),
			CartID:    cartID,
			ProductID: productID,
			VariantID: variantID,
			Quantity:  qty,
			CreatedAt: now,
			UpdatedAt: now,
		}
		return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			if err := tx.Clauses(clause.OnConflict{
				Columns: []clause.Column{{Name: "cart_id"}, {Name: "variant_id"}},
				DoUpdates: clause.Assignments(map[string]any{
					"quantity":   gorm.Expr("quantity + ?", qty),
					"updated_at": now,
				}),
			}).Create(&item).Error; err != nil {
				return err
			}
			return tx.Model(&Cart{}).Where("id = ?", cartID).Update("updated_at", now).Error
		})
	})
}

// LineQuantity is the quantity already on the cart line, 0 if none.
func (r *Repo) LineQuantity(ctx context.Context, cartID, variantID string) (int, error) {
	var qty int
	err := r.db.WithContext(ctx).Model(&CartItem{}).
		Select("COALESCE(SUM(quantity), 0)").
		Where("cart_id = ? AND variant_id = ?", cartID, variantID).
		Scan(&qty).Error
	return qty, err
}

type LineRow struct {
	VariantID   string `gorm:"column:variant_id"`
	SKU         string `gorm:"column:sku"`
	Qty         int    `gorm:"column:qty"`
	PriceCents  int    `gorm:"column:price_cents"`
	Currency    string `gorm:"column:currency"`
	ProductName string `gorm:"column:product_name"`
	ProductSlug string `gorm:"column:product_slug"`
}

func (r *Repo) Lines(ctx context.Context, cartID string) ([]LineRow, error) {
	const q = `
SELECT
  ci.variant_id AS variant_id,
  v.sku         AS sku,
  ci.quantity   AS qty,
  v.price_cents AS price_cents,
  COALESCE(NULLIF(v.currency, ''), p.currency) AS currency,
  p.name        AS product_name,
  p.slug        AS product_slug
FROM cart_items ci
JOIN product_variants v ON v.id = ci.variant_id
JOIN products p ON p.id = v.product_id
WHERE ci.cart_id = ?
ORDER BY ci.created_at ASC;
`
	var rows []LineRow
	err := r.db.WithContext(ctx).Raw(q, cartID).Scan(&rows).Error
	return rows, err
}

func withRetry(ctx context.Context, attempts int, fn func() error) error {
	if attempts < 1 {
		attempts = 1
	}
	var lastErr error
	for i := 0; i < attempts; i++ {
		err := fn()
		if err == nil {
			return nil
		}
		lastErr = err
		if !isRetryableMySQLError(err) || i == attempts-1 {
			return err
		}
		// küçük backoff
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(time.Duration(50*(i+1)) * time.Millisecond):
		}
	}
	return lastErr
}

func isRetryableMySQLError(err error) bool {
	var me *mysql.MySQLError
	if errors.As(err, &me) {
		// 1213: Deadlock found; 1205: Lock wait timeout
		return me.Number == 1213 || me.Number == 1205
	}
	return false
}
