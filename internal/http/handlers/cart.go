package handlers

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"pehlione.com/storefront/internal/http/cartcookie"
	"pehlione.com/storefront/internal/http/middleware"
	"pehlione.com/storefront/internal/http/validation"
	"pehlione.com/storefront/internal/modules/cart"
	"pehlione.com/storefront/internal/modules/variants"
	"pehlione.com/storefront/internal/observability"
	"pehlione.com/storefront/internal/shared/apperr"
)

// CartHandler handles the guest cart (GET /api/cart, POST /api/cart/items).
type CartHandler struct {
	catalog *Catalog
	svc     *cart.Service
	ck      *cartcookie.Codec
	log     *slog.Logger
}

func NewCartHandler(catalog *Catalog, svc *cart.Service, ck *cartcookie.Codec, l *slog.Logger) *CartHandler {
	return &CartHandler{catalog: catalog, svc: svc, ck: ck, log: l}
}

type addItemRequest struct {
	ProductSlug string            `json:"product_slug" binding:"required"`
	Selection   map[string]string `json:"selection"`
	Quantity    int               `json:"quantity" binding:"omitempty,min=1,max=99"`
}

// Add handles POST /api/cart/items.
func (h *CartHandler) Add(c *gin.Context) {
	ctx := c.Request.Context()

	var req addItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.Fail(c, apperr.InvalidErr("Invalid cart request.", validation.FromBindError(err, &req)))
		return
	}
	if req.Quantity == 0 {
		req.Quantity = 1
	}

	p, err := h.catalog.Product(ctx, req.ProductSlug)
	if err != nil {
		middleware.Fail(c, err)
		return
	}

	// Only axes the product declares count; anything else is ignored.
	r := variants.New(p)
	r.Apply(req.Selection)
	if !r.CanAddToCart() {
		observability.RecordAddToCart(observability.OutcomeRejected)
		middleware.Fail(c, apperr.ConflictErr(notPurchasableMessage(r)))
		return
	}

	cookieID, _ := h.ck.GetCartID(c)
	cartID, created, err := h.svc.EnsureCart(ctx, cookieID)
	if err != nil {
		observability.RecordAddToCart(observability.OutcomeError)
		middleware.Fail(c, storeErr(err))
		return
	}
	if created {
		h.ck.Set(c, cartID)
	}

	v, err := h.svc.AddToCart(ctx, cartID, p, r.Selection(), req.Quantity)
	var oos *cart.OutOfStockError
	switch {
	case err == nil:
	case errors.As(err, &oos):
		observability.RecordAddToCart(observability.OutcomeOutOfStock)
		middleware.Fail(c, apperr.ConflictErr(outOfStockMessage(oos)).WithErr(err))
		return
	case errors.Is(err, cart.ErrNotPurchasable):
		observability.RecordAddToCart(observability.OutcomeRejected)
		middleware.Fail(c, apperr.ConflictErr(notPurchasableMessage(r)).WithErr(err))
		return
	default:
		observability.RecordAddToCart(observability.OutcomeError)
		middleware.Fail(c, storeErr(err))
		return
	}

	observability.RecordAddToCart(observability.OutcomeAdded)
	h.log.LogAttrs(ctx, slog.LevelInfo, "cart_item_added",
		slog.String("request_id", middleware.GetRequestID(c)),
		slog.String("cart_id", cartID),
		slog.String("product_id", p.ID),
		slog.String("variant_id", v.ID),
		slog.Int("qty", req.Quantity),
	)
	c.JSON(http.StatusCreated, gin.H{
		"cart_id":    cartID,
		"product_id": p.ID,
		"variant_id": v.ID,
		"quantity":   req.Quantity,
	})
}

// Get handles GET /api/cart.
func (h *CartHandler) Get(c *gin.Context) {
	cartID, _ := h.ck.GetCartID(c)
	page, err := h.svc.BuildCartPage(c.Request.Context(), cartID)
	if err != nil {
		if errors.Is(err, cart.ErrMixedCurrency) {
			middleware.Fail(c, apperr.ConflictErr("Your cart contains items in different currencies.").WithErr(err))
			return
		}
		middleware.Fail(c, storeErr(err))
		return
	}
	c.JSON(http.StatusOK, page)
}

func notPurchasableMessage(r *variants.Resolver) string {
	if len(r.Product().Options) > 0 && r.State() != variants.Complete {
		return "Please choose all options first."
	}
	if r.MatchingVariant() == nil {
		return "This combination is not available."
	}
	return "This item is sold out."
}

func outOfStockMessage(e *cart.OutOfStockError) string {
	if e.InCart > 0 {
		return fmt.Sprintf("Only %d more can be added, %d already in your cart.", e.Available, e.InCart)
	}
	return fmt.Sprintf("Only %d left in stock.", e.Available)
}
