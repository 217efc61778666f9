package openfoodfacts

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	types "github.com/yungbote/foodyou-backend/internal/domain"
	"github.com/yungbote/foodyou-backend/internal/platform/logger"
)

func newTestClient(t *testing.T, h http.HandlerFunc) Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	log, err := logger.New("test")
	if err != nil {
		t.Fatalf("logger.New: %v", err)
	}
	c, err := NewClient(Config{BaseURL: srv.URL, UserAgent: "test-agent", Country: "PL", Timeout: 2 * time.Second, Retries: 1}, log)
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	return c
}

const productJSON = `{
  "code": "5900259000002",
  "status": 1,
  "product": {
    "product_name": "Milk 2%",
    "code": "5900259000002",
    "brands": "Dairy Co, Other",
    "serving_quantity": "250",
    "serving_quantity_unit": "ml",
    "product_quantity": 1000,
    "product_quantity_unit": "ml",
    "nutriments": {
      "energy-kcal_100g": 50,
      "proteins_100g": 3.4,
      "carbohydrates_100g": "4.8",
      "fat_100g": 2,
      "sugars_100g": 4.8,
      "salt_100g": 0.1
    }
  }
}`

func TestGetProduct(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v2/product/5900259000002" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if got := r.URL.Query().Get("countries"); got != "pl" {
			t.Errorf("countries: want=pl got=%s", got)
		}
		if got := r.URL.Query().Get("fields"); got != Fields {
			t.Errorf("fields: got=%s", got)
		}
		if ua := r.Header.Get("User-Agent"); ua != "test-agent" {
			t.Errorf("user agent: got=%s", ua)
		}
		_, _ = w.Write([]byte(productJSON))
	})

	p, err := c.GetProduct(context.Background(), "5900259000002")
	if err != nil {
		t.Fatalf("GetProduct: %v", err)
	}
	d, ok := ToDomain(*p)
	if !ok {
		t.Fatalf("ToDomain rejected product %+v", p)
	}
	if d.Name != "Milk 2%" || *d.Barcode != "5900259000002" || *d.Brand != "Dairy Co" {
		t.Fatalf("unexpected identity fields: %+v", d)
	}
	if d.Carbohydrates != 4.8 || *d.ServingWeight != 250 || *d.PackageWeight != 1000 {
		t.Fatalf("unexpected numeric fields: %+v", d)
	}
	if d.WeightUnit != types.WeightUnitMillilitre || d.Source != types.ProductSourceOpenFoodFacts {
		t.Fatalf("unexpected unit/source: %s %s", d.WeightUnit, d.Source)
	}
	if !d.HasIncompleteNutrition() {
		t.Fatalf("fiber is missing; nutrition should be incomplete")
	}
}

func TestGetProductNotFound(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"status":0}`))
	})
	p, err := c.GetProduct(context.Background(), "000")
	if err != nil || p != nil {
		t.Fatalf("GetProduct(404): p=%+v err=%v", p, err)
	}
}

func TestSearchRetriesAndParses(t *testing.T) {
	var calls int32
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		q := r.URL.Query()
		if r.URL.Path != "/cgi/search.pl" || q.Get("search_simple") != "1" || q.Get("json") != "1" {
			t.Errorf("unexpected request %s", r.URL.String())
		}
		if q.Get("search_terms") != "milk" || q.Get("page") != "2" || q.Get("page_size") != "30" {
			t.Errorf("unexpected query %s", r.URL.RawQuery)
		}
		_, _ = w.Write([]byte(`{"count": 31, "page": "2", "page_size": 30, "products": [
			{"product_name": "Milk", "code": "1", "nutriments": {"energy-kcal_100g": 60, "proteins_100g": 3, "carbohydrates_100g": 5, "fat_100g": 3}},
			{"product_name": "", "code": "2", "nutriments": {"energy-kcal_100g": 1, "proteins_100g": 1, "carbohydrates_100g": 1, "fat_100g": 1}},
			{"product_name": "No macros", "code": "3", "nutriments": {}}
		]}`))
	})

	page, err := c.Search(context.Background(), "milk", 2, 30)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if atomic.LoadInt32(&calls) != 2 {
		t.Fatalf("expected one retry, got %d calls", calls)
	}
	if page.Count != 31 || page.Page != 2 || len(page.Products) != 3 {
		t.Fatalf("unexpected page %+v", page)
	}
	mapped := ToDomainList(page.Products)
	if len(mapped) != 1 || mapped[0].Name != "Milk" {
		t.Fatalf("ToDomainList: unexpected %+v", mapped)
	}
}

func TestSearchSurfacesClientErrors(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	})
	_, err := c.Search(context.Background(), "x", 1, 10)
	if err == nil || !strings.Contains(err.Error(), "400") {
		t.Fatalf("expected status error, got %v", err)
	}
}

func TestToDomainTreatsBlankNutrimentsAsAbsent(t *testing.T) {
	cases := []struct {
		name       string
		nutriments string
		wantOK     bool
	}{
		{"blank calories", `{"energy-kcal_100g":"","proteins_100g":1,"carbohydrates_100g":2,"fat_100g":3}`, false},
		{"free-text protein", `{"energy-kcal_100g":10,"proteins_100g":"n/a","carbohydrates_100g":2,"fat_100g":3}`, false},
		{"blank optionals", `{"energy-kcal_100g":"10","proteins_100g":1,"carbohydrates_100g":2,"fat_100g":3,"sugars_100g":"","fiber_100g":"n/a"}`, true},
	}
	for _, tc := range cases {
		var p Product
		raw := `{"product_name":"Bread","code":"123","serving_quantity":"1 slice","nutriments":` + tc.nutriments + `}`
		if err := json.Unmarshal([]byte(raw), &p); err != nil {
			t.Fatalf("%s: unmarshal: %v", tc.name, err)
		}
		d, ok := ToDomain(p)
		if ok != tc.wantOK {
			t.Fatalf("%s: ok want=%v got=%v", tc.name, tc.wantOK, ok)
		}
		if !ok {
			continue
		}
		if d.Calories != 10 || d.Sugars != nil || d.Fiber != nil || d.ServingWeight != nil {
			t.Fatalf("%s: blank values leaked: %+v", tc.name, d)
		}
		if !d.HasIncompleteNutrition() {
			t.Fatalf("%s: nutrition should be incomplete", tc.name)
		}
	}
}
