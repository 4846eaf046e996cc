package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"pehlione.com/storefront/internal/http/middleware"
	"pehlione.com/storefront/internal/http/validation"
	"pehlione.com/storefront/internal/modules/variants"
	"pehlione.com/storefront/internal/shared/apperr"
	"pehlione.com/storefront/pkg/view"
)

// ProductsHandler serves product cards and the product page read model.
// The selection lives in the client and is sent with every request.
type ProductsHandler struct {
	catalog  *Catalog
	currency string
}

func NewProductsHandler(catalog *Catalog, defaultCurrency string) *ProductsHandler {
	return &ProductsHandler{catalog: catalog, currency: defaultCurrency}
}

// List handles GET /api/products: cards resolved with an empty selection.
func (h *ProductsHandler) List(c *gin.Context) {
	prods, err := h.catalog.List(c.Request.Context(), queryInt(c, "limit"), queryInt(c, "offset"))
	if err != nil {
		middleware.Fail(c, err)
		return
	}

	cards := make([]view.ProductCard, 0, len(prods))
	for i := range prods {
		cards = append(cards, view.NewProductCard(variants.New(&prods[i]).View(), h.currency))
	}
	c.JSON(http.StatusOK, gin.H{"products": cards})
}

// Show handles GET /api/products/:slug?Color=Red&Size=M.
func (h *ProductsHandler) Show(c *gin.Context) {
	p, err := h.catalog.Product(c.Request.Context(), c.Param("slug"))
	if err != nil {
		middleware.Fail(c, err)
		return
	}

	r := variants.New(p)
	r.Apply(selectionFromQuery(c, p))
	c.JSON(http.StatusOK, view.NewProductPage(r.View(), h.currency))
}

type optionChangeRequest struct {
	Selection map[string]string `json:"selection"`
	Option    string            `json:"option" binding:"required"`
	Value     string            `json:"value" binding:"required"`
}

// ChangeOption handles POST /api/products/:slug/options: one click on an
// option value, answered with the recomputed page.
func (h *ProductsHandler) ChangeOption(c *gin.Context) {
	var req optionChangeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.Fail(c, apperr.InvalidErr("Invalid option change.", validation.FromBindError(err, &req)))
		return
	}

	p, err := h.catalog.Product(c.Request.Context(), c.Param("slug"))
	if err != nil {
		middleware.Fail(c, err)
		return
	}

	opt, ok := p.Option(req.Option)
	if !ok {
		middleware.Fail(c, apperr.InvalidErr("Unknown option.", map[string]string{"option": "Unknown option."}))
		return
	}
	if !containsValue(opt.Values, req.Value) {
		middleware.Fail(c, apperr.InvalidErr("Unknown option value.", map[string]string{"value": "Unknown value for " + opt.Name + "."}))
		return
	}

	r := variants.New(p)
	r.Apply(req.Selection)
	r.HandleOptionChange(req.Option, req.Value)
	c.JSON(http.StatusOK, view.NewProductPage(r.View(), h.currency))
}

func selectionFromQuery(c *gin.Context, p *variants.Product) variants.Selection {
	sel := variants.Selection{}
	for _, o := range p.Options {
		if v, ok := c.GetQuery(o.Name); ok {
			sel[o.Name] = v
		}
	}
	return sel
}

func containsValue(values []string, v string) bool {
	for _, x := range values {
		if x == v {
			return true
		}
	}
	return false
}
