package http

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	nethttp "net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/datatypes"

	"pehlione.com/storefront/internal/config"
	"pehlione.com/storefront/internal/modules/cart"
	"pehlione.com/storefront/internal/modules/products"
)

type fakeProducts struct {
	items []products.Product
}

func (f *fakeProducts) ListActive(ctx context.Context, limit, offset int) ([]products.Product, error) {
	return f.items, nil
}

func (f *fakeProducts) GetBySlug(ctx context.Context, slug string) (products.Product, error) {
	for _, p := range f.items {
		if p.Slug == slug {
			return p, nil
		}
	}
	return products.Product{}, products.ErrNotFound
}

type lineAdd struct {
	cartID, variantID string
	qty               int
}

type fakeCarts struct {
	open  map[string]bool
	adds  []lineAdd
	lines []cart.LineRow
}

func (f *fakeCarts) CreateGuestCart(ctx context.Context) (string, error) {
	id := uuid.NewString()
	f.open[id] = true
	return id, nil
}

func (f *fakeCarts) IsOpen(ctx context.Context, cartID string) (bool, error) {
	return f.open[cartID], nil
}

func (f *fakeCarts) LineQuantity(ctx context.Context, cartID, variantID string) (int, error) {
	n := 0
	for _, a := range f.adds {
		if a.cartID == cartID && a.variantID == variantID {
			n += a.qty
		}
	}
	return n, nil
}

func (f *fakeCarts) AddLineItem(ctx context.Context, cartID, productID, variantID string, qty int) error {
	f.adds = append(f.adds, lineAdd{cartID, variantID, qty})
	return nil
}

func (f *fakeCarts) Lines(ctx context.Context, cartID string) ([]cart.LineRow, error) {
	return f.lines, nil
}

func tshirt() products.Product {
	return products.Product{
		ID:          "p-tee",
		Name:        "T-Shirt",
		Slug:        "tshirt",
		Description: "Organic cotton.",
		Status:      products.StatusActive,
		Currency:    "EUR",
		Options: []products.ProductOption{
			{ID: "o1", Name: "Color", Position: 0, Values: datatypes.JSON(`["Red","Blue"]`)},
			{ID: "o2", Name: "Size", Position: 1, Values: datatypes.JSON(`["S","M"]`)},
		},
		Variants: []products.Variant{
			{ID: "v-rs", SKU: "T-R-S", Options: datatypes.JSON(`{"Color":"Red","Size":"S"}`), PriceCents: 2000, CompareAtCents: 2500, Stock: 3},
			{ID: "v-rm", SKU: "T-R-M", Options: datatypes.JSON(`{"Color":"Red","Size":"M"}`), PriceCents: 2000, Stock: 0},
			{ID: "v-bs", SKU: "T-B-S", Options: datatypes.JSON(`{"Color":"Blue","Size":"S"}`), PriceCents: 2200, Stock: 2},
			{ID: "v-bad", SKU: "T-X", Options: datatypes.JSON(`{"Color":"Green","Size":"S"}`), PriceCents: 2200, Stock: 9},
		},
	}
}

func newTestRouter(t *testing.T) (*gin.Engine, *fakeCarts) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	carts := &fakeCarts{open: map[string]bool{}}
	r := NewRouter(Deps{
		Config: config.Config{
			CartCookieSecret: []byte("0123456789abcdef"),
			CartCookieName:   "cart",
			DefaultCurrency:  "EUR",
		},
		Logger:    slog.New(slog.NewJSONHandler(io.Discard, nil)),
		Products:  &fakeProducts{items: []products.Product{tshirt()}},
		CartStore: carts,
	})
	return r, carts
}

func do(r *gin.Engine, method, path string, body any, cookies ...*nethttp.Cookie) *httptest.ResponseRecorder {
	var rd io.Reader
	if body != nil {
		b, _ := json.Marshal(body)
		rd = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, rd)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("invalid json %q: %v", w.Body.String(), err)
	}
	return out
}

func TestShowProductWithQuerySelection(t *testing.T) {
	r, _ := newTestRouter(t)

	w := do(r, nethttp.MethodGet, "/api/products/tshirt?Color=Red&Size=S&Fit=Slim", nil)
	if w.Code != nethttp.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	body := decodeBody(t, w)
	if body["selection_state"] != "complete" || body["can_add_to_cart"] != true {
		t.Fatalf("unexpected page %v", body)
	}
	mv, _ := body["matching_variant"].(map[string]any)
	if mv["id"] != "v-rs" {
		t.Fatalf("expected v-rs, got %v", body["matching_variant"])
	}
	sel, _ := body["selection"].(map[string]any)
	if _, ok := sel["Fit"]; ok {
		t.Fatalf("undeclared query params must not reach the selection: %v", sel)
	}
	price, _ := body["price"].(map[string]any)
	if price["formatted"] != "€20.00" || price["discount_percentage"] != float64(20) {
		t.Fatalf("unexpected price %v", price)
	}
}

func TestShowUnknownProduct(t *testing.T) {
	r, _ := newTestRouter(t)

	w := do(r, nethttp.MethodGet, "/api/products/nope", nil)
	if w.Code != nethttp.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
	if body := decodeBody(t, w); body["error"] != "Product not found." {
		t.Fatalf("unexpected body %v", body)
	}
}

func TestChangeOption(t *testing.T) {
	r, _ := newTestRouter(t)

	w := do(r, nethttp.MethodPost, "/api/products/tshirt/options", gin.H{
		"selection": gin.H{"Color": "Red"},
		"option":    "Size",
		"value":     "M",
	})
	if w.Code != nethttp.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	body := decodeBody(t, w)
	mv, _ := body["matching_variant"].(map[string]any)
	if mv["id"] != "v-rm" || body["in_stock"] != false || body["can_add_to_cart"] != false {
		t.Fatalf("expected sold out Red/M, got %v", body)
	}
}

func TestChangeOptionRejectsUnknownValues(t *testing.T) {
	r, _ := newTestRouter(t)

	cases := []struct {
		name string
		body gin.H
	}{
		{"unknown option", gin.H{"option": "Fit", "value": "Slim"}},
		{"unknown value", gin.H{"option": "Color", "value": "Green"}},
		{"missing value", gin.H{"option": "Color"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := do(r, nethttp.MethodPost, "/api/products/tshirt/options", tc.body)
			if w.Code != nethttp.StatusBadRequest {
				t.Fatalf("expected 400, got %d: %s", w.Code, w.Body.String())
			}
		})
	}
}

func TestListProducts(t *testing.T) {
	r, _ := newTestRouter(t)

	w := do(r, nethttp.MethodGet, "/api/products?limit=abc", nil)
	if w.Code != nethttp.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	list, _ := decodeBody(t, w)["products"].([]any)
	if len(list) != 1 {
		t.Fatalf("expected one card, got %v", list)
	}
	card, _ := list[0].(map[string]any)
	if card["slug"] != "tshirt" || card["in_stock"] != true || card["has_variants"] != true {
		t.Fatalf("unexpected card %v", card)
	}
	if card["description"] != "Organic cotton." {
		t.Fatalf("expected description on card, got %v", card["description"])
	}
	opts, _ := card["options"].([]any)
	if len(opts) != 2 {
		t.Fatalf("expected two option axes, got %v", card["options"])
	}
	size, _ := opts[1].(map[string]any)
	values, _ := size["values"].([]any)
	if len(values) != 1 {
		t.Fatalf("expected only size S to be offered, got %v", values)
	}
	if v, _ := values[0].(map[string]any); v["value"] != "S" {
		t.Fatalf("expected size S, got %v", values[0])
	}
}

func TestAddToCartRejectsIncompleteSelection(t *testing.T) {
	r, carts := newTestRouter(t)

	w := do(r, nethttp.MethodPost, "/api/cart/items", gin.H{
		"product_slug": "tshirt",
		"selection":    gin.H{"Color": "Red"},
	})
	if w.Code != nethttp.StatusConflict {
		t.Fatalf("expected 409, got %d: %s", w.Code, w.Body.String())
	}
	if body := decodeBody(t, w); body["error"] != "Please choose all options first." {
		t.Fatalf("unexpected body %v", body)
	}
	if len(carts.adds) != 0 || len(carts.open) != 0 {
		t.Fatalf("expected no cart writes, got adds=%v carts=%v", carts.adds, carts.open)
	}
}

func TestAddToCartSetsCookieAndReadsCart(t *testing.T) {
	r, carts := newTestRouter(t)

	w := do(r, nethttp.MethodPost, "/api/cart/items", gin.H{
		"product_slug": "tshirt",
		"selection":    gin.H{"Color": "Blue", "Size": "S"},
		"quantity":     2,
	})
	if w.Code != nethttp.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}
	if len(carts.adds) != 1 || carts.adds[0].variantID != "v-bs" || carts.adds[0].qty != 2 {
		t.Fatalf("unexpected adds %v", carts.adds)
	}

	res := w.Result()
	var cookie *nethttp.Cookie
	for _, c := range res.Cookies() {
		if c.Name == "cart" {
			cookie = c
		}
	}
	if cookie == nil || !strings.HasPrefix(cookie.Value, carts.adds[0].cartID+".") {
		t.Fatalf("expected signed cart cookie, got %v", res.Cookies())
	}

	carts.lines = []cart.LineRow{{VariantID: "v-bs", Qty: 2, PriceCents: 2200, Currency: "EUR", ProductName: "T-Shirt", ProductSlug: "tshirt"}}
	w = do(r, nethttp.MethodGet, "/api/cart", nil, cookie)
	if w.Code != nethttp.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if body := decodeBody(t, w); body["count"] != float64(2) || body["subtotal"] != "€44.00" {
		t.Fatalf("unexpected cart %v", body)
	}

	// second add reuses the cart from the cookie
	w = do(r, nethttp.MethodPost, "/api/cart/items", gin.H{
		"product_slug": "tshirt",
		"selection":    gin.H{"Color": "Red", "Size": "S"},
	}, cookie)
	if w.Code != nethttp.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}
	if len(carts.open) != 1 || carts.adds[1].cartID != carts.adds[0].cartID || carts.adds[1].qty != 1 {
		t.Fatalf("expected same cart with default quantity, got %v", carts.adds)
	}
}

func TestAddToCartQuantityChecks(t *testing.T) {
	r, carts := newTestRouter(t)

	w := do(r, nethttp.MethodPost, "/api/cart/items", gin.H{
		"product_slug": "tshirt",
		"selection":    gin.H{"Color": "Red", "Size": "S"},
		"quantity":     5,
	})
	if w.Code != nethttp.StatusConflict {
		t.Fatalf("expected 409, got %d", w.Code)
	}
	if body := decodeBody(t, w); body["error"] != "Only 3 left in stock." {
		t.Fatalf("unexpected body %v", body)
	}

	w = do(r, nethttp.MethodPost, "/api/cart/items", gin.H{
		"product_slug": "tshirt",
		"selection":    gin.H{"Color": "Red", "Size": "S"},
		"quantity":     100,
	})
	if w.Code != nethttp.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
	fields, _ := decodeBody(t, w)["fields"].(map[string]any)
	if _, ok := fields["quantity"]; !ok {
		t.Fatalf("expected quantity field error, got %v", fields)
	}
	if len(carts.adds) != 0 {
		t.Fatalf("expected no adds, got %v", carts.adds)
	}
}

func TestAddToCartRespectsQuantityInCart(t *testing.T) {
	r, carts := newTestRouter(t)
	body := gin.H{
		"product_slug": "tshirt",
		"selection":    gin.H{"Color": "Red", "Size": "S"},
		"quantity":     2,
	}

	w := do(r, nethttp.MethodPost, "/api/cart/items", body)
	if w.Code != nethttp.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}
	var cookie *nethttp.Cookie
	for _, c := range w.Result().Cookies() {
		if c.Name == "cart" {
			cookie = c
		}
	}
	if cookie == nil {
		t.Fatalf("expected cart cookie")
	}

	w = do(r, nethttp.MethodPost, "/api/cart/items", body, cookie)
	if w.Code != nethttp.StatusConflict {
		t.Fatalf("expected 409, got %d: %s", w.Code, w.Body.String())
	}
	if got := decodeBody(t, w)["error"]; got != "Only 1 more can be added, 2 already in your cart." {
		t.Fatalf("unexpected error %v", got)
	}
	if len(carts.adds) != 1 {
		t.Fatalf("expected one stored add, got %v", carts.adds)
	}
}

func TestHealthAndMetrics(t *testing.T) {
	r, _ := newTestRouter(t)

	if w := do(r, nethttp.MethodGet, "/health", nil); w.Code != nethttp.StatusOK {
		t.Fatalf("health: %d", w.Code)
	}
	_ = do(r, nethttp.MethodGet, "/api/products/tshirt", nil)

	w := do(r, nethttp.MethodGet, "/metrics", nil)
	if w.Code != nethttp.StatusOK {
		t.Fatalf("metrics: %d", w.Code)
	}
	for _, name := range []string{"storefront_http_requests_total", "storefront_catalog_integrity_issues_total"} {
		if !strings.Contains(w.Body.String(), name) {
			t.Fatalf("expected %s in metrics output", name)
		}
	}
}
