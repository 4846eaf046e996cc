package cart

import (
	"context"
	"strings"

	"pehlione.com/storefront/internal/modules/variants"
	"pehlione.com/storefront/pkg/view"
)

// Store is the cart persistence the service writes through. *Repo
// implements it.
type Store interface {
	CreateGuestCart(ctx context.Context) (string, error)
	IsOpen(ctx context.Context, cartID string) (bool, error)
	LineQuantity(ctx context.Context, cartID, variantID string) (int, error)
	AddLineItem(ctx context.Context, cartID, productID, variantID string, qty int) error
	Lines(ctx context.Context, cartID string) ([]LineRow, error)
}

type Service struct {
	store           Store
	defaultCurrency string
}

func NewService(store Store, defaultCurrency string) *Service {
	return &Service{store: store, defaultCurrency: strings.ToUpper(defaultCurrency)}
}

// EnsureCart returns cartID when it still names an open cart, otherwise
// a freshly created guest cart. created reports which one it was.
func (s *Service) EnsureCart(ctx context.Context, cartID string) (id string, created bool, err error) {
	if cartID != "" {
		ok, err := s.store.IsOpen(ctx, cartID)
		if err != nil {
			return "", false, err
		}
		if ok {
			return cartID, false, nil
		}
	}
	id, err = s.store.CreateGuestCart(ctx)
	return id, err == nil, err
}

// AddToCart adds qty of the variant matching sel. The store is only
// written when the selection is purchasable and the cart line, including
// what it already holds, stays within stock.
func (s *Service) AddToCart(ctx context.Context, cartID string, p *variants.Product, sel variants.Selection, qty int) (*variants.Variant, error) {
	if qty < 1 {
		return nil, ErrInvalidQuantity
	}
	if !variants.CanAddToCart(p, sel) {
		return nil, ErrNotPurchasable
	}
	v := variants.ResolveMatchingVariant(p, sel)
	inCart, err := s.store.LineQuantity(ctx, cartID, v.ID)
	if err != nil {
		return nil, err
	}
	if inCart+qty > v.InventoryQuantity {
		return nil, &OutOfStockError{
			VariantID: v.ID,
			Requested: qty,
			Available: max(v.InventoryQuantity-inCart, 0),
			InCart:    inCart,
		}
	}
	if err := s.store.AddLineItem(ctx, cartID, p.ID, v.ID, qty); err != nil {
		return nil, err
	}
	return v, nil
}

func (s *Service) BuildCartPage(ctx context.Context, cartID string) (view.CartPage, error) {
	if cartID == "" {
		return view.CartPage{Items: []view.CartItem{}, Currency: s.defaultCurrency}, nil
	}
	rows, err := s.store.Lines(ctx, cartID)
	if err != nil {
		return view.CartPage{}, err
	}
	return s.buildCartVMFromRows(rows)
}

func (s *Service) buildCartVMFromRows(rows []LineRow) (view.CartPage, error) {
	vm := view.CartPage{Items: make([]view.CartItem, 0, len(rows))}

	currency := ""
	for _, r := range rows {
		if r.Qty <= 0 {
			continue
		}
		rc := strings.ToUpper(strings.TrimSpace(r.Currency))
		switch {
		case rc == "":
		case currency == "":
			currency = rc
		case rc != currency:
			return view.CartPage{}, ErrMixedCurrency
		}
	}
	if currency == "" {
		currency = s.defaultCurrency
	}

	subtotal := 0
	count := 0
	for _, r := range rows {
		if r.Qty <= 0 {
			continue
		}
		line := r.PriceCents * r.Qty
		subtotal += line
		count += r.Qty

		vm.Items = append(vm.Items, view.CartItem{
			ProductName:    r.ProductName,
			ProductSlug:    r.ProductSlug,
			VariantID:      r.VariantID,
			SKU:            r.SKU,
			Qty:            r.Qty,
			UnitPriceCents: r.PriceCents,
			LineTotalCents: line,
			UnitPrice:      view.MoneyFromCents(r.PriceCents, currency),
			LineTotal:      view.MoneyFromCents(line, currency),
		})
	}

	vm.Currency = currency
	vm.Count = count
	vm.SubtotalCents = subtotal
	vm.Subtotal = view.MoneyFromCents(subtotal, currency)
	return vm, nil
}
