package shopify

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"storefront-backend/internal/domain"
)

func testClient(ts *httptest.Server) *Client {
	return New(Config{
		StoreDomain:     ts.URL,
		StorefrontToken: "sf-token",
		AdminToken:      "admin-token",
		APIVersion:      "2024-07",
	}, nil)
}

func graphQLHandler(t *testing.T, respond func(query string) string) http.HandlerFunc {
	t.Helper()
	return func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/2024-07/graphql.json" {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		if r.Header.Get("X-Shopify-Storefront-Access-Token") != "sf-token" {
			t.Fatalf("missing storefront token header")
		}
		var req graphQLRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		if _, err := w.Write([]byte(respond(req.Query))); err != nil {
			t.Fatalf("write response: %v", err)
		}
	}
}

const cartJSON = `{
  "id": "gid://shopify/Cart/abc",
  "checkoutUrl": "https://shop.example/checkout/abc",
  "totalQuantity": 2,
  "cost": {
    "subtotalAmount": {"amount": "20.0", "currencyCode": "USD"},
    "totalAmount": {"amount": "20.0", "currencyCode": "USD"},
    "totalTaxAmount": null
  },
  "lines": {
    "edges": [
      {
        "node": {
          "id": "gid://shopify/CartLine/1",
          "quantity": 2,
          "cost": {
            "totalAmount": {"amount": "20.0", "currencyCode": "USD"},
            "amountPerQuantity": {"amount": "10.0", "currencyCode": "USD"}
          },
          "merchandise": {
            "id": "gid://shopify/ProductVariant/11",
            "title": "Default",
            "selectedOptions": [{"name": "Size", "value": "M"}],
            "product": {
              "id": "gid://shopify/Product/5",
              "handle": "test-product",
              "title": "Test Product",
              "featuredImage": {"url": "https://cdn.example/p.png", "altText": "p", "width": 100, "height": 100}
            }
          }
        }
      }
    ]
  }
}`

func TestGetCartMapsToDomain(t *testing.T) {
	ts := httptest.NewServer(graphQLHandler(t, func(string) string {
		return `{"data": {"cart": ` + cartJSON + `}}`
	}))
	defer ts.Close()

	cart, err := testClient(ts).GetCart(context.Background(), "gid://shopify/Cart/abc")
	if err != nil {
		t.Fatalf("GetCart: %v", err)
	}
	if cart.ID != "gid://shopify/Cart/abc" || cart.CheckoutURL != "https://shop.example/checkout/abc" {
		t.Fatalf("unexpected cart identity %+v", cart)
	}
	if cart.TotalQuantity != 2 || len(cart.Lines) != 1 {
		t.Fatalf("unexpected cart shape %+v", cart)
	}
	line := cart.Lines[0]
	if line.Merchandise.ID != "gid://shopify/ProductVariant/11" || line.Cost.AmountPerQuantity.Amount != "10.0" {
		t.Fatalf("unexpected line %+v", line)
	}
	// Null tax comes back zeroed in the cart currency.
	if cart.Cost.TotalTaxAmount.Amount != "0" || cart.Cost.TotalTaxAmount.CurrencyCode != "USD" {
		t.Fatalf("unexpected tax %+v", cart.Cost.TotalTaxAmount)
	}
}

func TestGetCartMissingMapsToNotFound(t *testing.T) {
	ts := httptest.NewServer(graphQLHandler(t, func(string) string {
		return `{"data": {"cart": null}}`
	}))
	defer ts.Close()

	_, err := testClient(ts).GetCart(context.Background(), "gone")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestAddCartLinesUserError(t *testing.T) {
	ts := httptest.NewServer(graphQLHandler(t, func(query string) string {
		if !strings.Contains(query, "cartLinesAdd") {
			t.Fatalf("unexpected query %s", query)
		}
		return `{"data": {"cartLinesAdd": {"cart": null, "userErrors": [{"field": ["lines"], "message": "variant is sold out"}]}}}`
	}))
	defer ts.Close()

	_, err := testClient(ts).AddCartLines(context.Background(), "c1", []CartLineInput{{MerchandiseID: "v1", Quantity: 1}})
	if err == nil || !strings.Contains(err.Error(), "variant is sold out") {
		t.Fatalf("expected user error surfaced, got %v", err)
	}
}

func TestExecuteGraphQLErrors(t *testing.T) {
	ts := httptest.NewServer(graphQLHandler(t, func(string) string {
		return `{"data": null, "errors": [{"message": "throttled"}]}`
	}))
	defer ts.Close()

	_, err := testClient(ts).CreateCart(context.Background())
	if err == nil || !strings.Contains(err.Error(), "throttled") {
		t.Fatalf("expected envelope error, got %v", err)
	}
}

func TestExecuteNon200(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer ts.Close()

	_, err := testClient(ts).GetCart(context.Background(), "c1")
	if err == nil || !strings.Contains(err.Error(), "502") {
		t.Fatalf("expected status error, got %v", err)
	}
}

func TestGetProductMapsMetafields(t *testing.T) {
	ts := httptest.NewServer(graphQLHandler(t, func(string) string {
		return `{"data": {"product": {
  "id": "gid://shopify/Product/5",
  "handle": "test-product",
  "title": "Test Product",
  "availableForSale": true,
  "priceRange": {"minVariantPrice": {"amount": "10.0", "currencyCode": "USD"}, "maxVariantPrice": {"amount": "12.0", "currencyCode": "USD"}},
  "variants": {"edges": [{"node": {"id": "v1", "title": "Default", "availableForSale": true, "price": {"amount": "10.0", "currencyCode": "USD"}}}]},
  "images": {"edges": []},
  "metafields": [
    {"namespace": "custom", "key": "case_color", "value": "#aabbcc", "type": "single_line_text_field"},
    null
  ],
  "seo": {"title": "Test", "description": ""}
}}}`
	}))
	defer ts.Close()

	p, err := testClient(ts).GetProduct(context.Background(), "test-product")
	if err != nil {
		t.Fatalf("GetProduct: %v", err)
	}
	if len(p.Metafields) != 1 || p.Metafields[0].Key != "case_color" {
		t.Fatalf("null metafields must be dropped, got %+v", p.Metafields)
	}
	if len(p.Variants) != 1 || p.Variants[0].Price.Amount != "10.0" {
		t.Fatalf("unexpected variants %+v", p.Variants)
	}
}

func TestUpsertCustomerCreates(t *testing.T) {
	var createdBody []byte
	mux := http.NewServeMux()
	mux.HandleFunc("/admin/api/2024-07/customers/search.json", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("X-Shopify-Access-Token") != "admin-token" {
			t.Fatalf("missing admin token header")
		}
		w.Write([]byte(`{"customers": []}`))
	})
	mux.HandleFunc("/admin/api/2024-07/customers.json", func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		createdBody = body
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"customer": {"id": 42, "email": "jamie@example.com"}}`))
	})
	ts := httptest.NewServer(mux)
	defer ts.Close()

	id, err := testClient(ts).UpsertCustomer(context.Background(), CustomerUpsert{
		FirstName: "Jamie",
		Email:     "jamie@example.com",
		Phone:     "+15551234567",
		Note:      "Inquiry: hello",
		Tags:      []string{"contact-form"},
	})
	if err != nil {
		t.Fatalf("UpsertCustomer: %v", err)
	}
	if id != 42 {
		t.Fatalf("expected id 42, got %d", id)
	}
	if !strings.Contains(string(createdBody), `"phone":"+15551234567"`) {
		t.Fatalf("phone not sent: %s", createdBody)
	}
}

func TestUpsertCustomerUpdatesAndAppendsNote(t *testing.T) {
	var updateBody []byte
	mux := http.NewServeMux()
	mux.HandleFunc("/admin/api/2024-07/customers/search.json", func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"customers": [{"id": 7, "email": "jamie@example.com", "note": "old note", "tags": "newsletter"}]}`))
	})
	mux.HandleFunc("/admin/api/2024-07/customers/7.json", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPut {
			t.Fatalf("expected PUT, got %s", r.Method)
		}
		body, _ := io.ReadAll(r.Body)
		updateBody = body
		w.Write([]byte(`{"customer": {"id": 7}}`))
	})
	ts := httptest.NewServer(mux)
	defer ts.Close()

	id, err := testClient(ts).UpsertCustomer(context.Background(), CustomerUpsert{
		Email: "jamie@example.com",
		Note:  "Inquiry: new question",
		Tags:  []string{"contact-form"},
	})
	if err != nil {
		t.Fatalf("UpsertCustomer: %v", err)
	}
	if id != 7 {
		t.Fatalf("expected id 7, got %d", id)
	}
	var payload customerPayload
	if err := json.Unmarshal(updateBody, &payload); err != nil {
		t.Fatalf("decode update body: %v", err)
	}
	if !strings.HasPrefix(payload.Customer.Note, "old note") || !strings.Contains(payload.Customer.Note, "Inquiry: new question") {
		t.Fatalf("note not appended: %q", payload.Customer.Note)
	}
	if payload.Customer.Tags != "newsletter, contact-form" {
		t.Fatalf("tags not merged: %q", payload.Customer.Tags)
	}
}

func TestAdminErrorMapping(t *testing.T) {
	cases := []struct {
		name string
		body string
		want string
	}{
		{"phone invalid", `{"errors": {"phone": ["is invalid"]}}`, "phone number is invalid"},
		{"email taken", `{"errors": {"email": ["has already been taken"]}}`, "already exists"},
		{"email invalid", `{"errors": {"email": ["is invalid"]}}`, "email address is invalid"},
	}
	for _, tc := range cases {
		mux := http.NewServeMux()
		mux.HandleFunc("/admin/api/2024-07/customers/search.json", func(w http.ResponseWriter, _ *http.Request) {
			w.Write([]byte(`{"customers": []}`))
		})
		mux.HandleFunc("/admin/api/2024-07/customers.json", func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusUnprocessableEntity)
			w.Write([]byte(tc.body))
		})
		ts := httptest.NewServer(mux)

		_, err := testClient(ts).UpsertCustomer(context.Background(), CustomerUpsert{Email: "x@example.com"})
		ts.Close()
		if err == nil || !strings.Contains(err.Error(), tc.want) {
			t.Fatalf("%s: expected %q in error, got %v", tc.name, tc.want, err)
		}
	}
}

func TestGetMetaobject(t *testing.T) {
	ts := httptest.NewServer(graphQLHandler(t, func(string) string {
		return `{"data": {"metaobject": {"handle": "header-banner", "type": "header_content", "fields": [{"key": "message", "value": "Free shipping"}]}}}`
	}))
	defer ts.Close()

	obj, err := testClient(ts).GetMetaobject(context.Background(), "header-banner", "header_content")
	if err != nil {
		t.Fatalf("GetMetaobject: %v", err)
	}
	if obj.Fields["message"] != "Free shipping" {
		t.Fatalf("unexpected fields %v", obj.Fields)
	}

	tsMissing := httptest.NewServer(graphQLHandler(t, func(string) string {
		return `{"data": {"metaobject": null}}`
	}))
	defer tsMissing.Close()
	if _, err := testClient(tsMissing).GetMetaobject(context.Background(), "nope", "header_content"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
