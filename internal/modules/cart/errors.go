package cart

import (
	"errors"
	"fmt"
)

var (
	ErrMixedCurrency   = errors.New("cart contains multiple currencies")
	ErrNotPurchasable  = errors.New("selection cannot be added to cart")
	ErrInvalidQuantity = errors.New("quantity must be at least 1")
)

// OutOfStockError: Available is what can still be added on top of the
// InCart quantity already on the cart line.
type OutOfStockError struct {
	VariantID string
	Requested int
	Available int
	InCart    int
}

func (e *OutOfStockError) Error() string {
	return fmt.Sprintf("out of stock: variant=%s requested=%d available=%d in_cart=%d", e.VariantID, e.Requested, e.Available, e.InCart)
}
