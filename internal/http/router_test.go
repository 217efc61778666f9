package http

import (
	"bytes"
	"context"
	"encoding/json"
	nethttp "net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/foodyou-backend/internal/data/prefs"
	"github.com/yungbote/foodyou-backend/internal/data/repos"
	"github.com/yungbote/foodyou-backend/internal/data/repos/testutil"
	httpH "github.com/yungbote/foodyou-backend/internal/http/handlers"
	"github.com/yungbote/foodyou-backend/internal/realtime"
	"github.com/yungbote/foodyou-backend/internal/services"
)

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	log := testutil.Logger(t)
	gdb := testutil.DB(t)
	hub := realtime.NewHub(log)
	diary := services.NewDiaryService(
		gdb, log, services.DiaryConfig{PageSize: 10},
		repos.NewMealRepo(gdb, log),
		repos.NewProductRepo(gdb, log),
		repos.NewMeasurementRepo(gdb, log),
		repos.NewProductQueryRepo(gdb, log),
		repos.NewRemoteKeyRepo(gdb, log),
		prefs.NewDBStore(gdb, hub, log),
		nil,
		hub,
	)
	t.Cleanup(func() { _ = diary.Close(context.Background()) })
	return NewRouter(RouterConfig{
		Log:                log,
		GoalsHandler:       httpH.NewGoalsHandler(log, diary),
		DiaryHandler:       httpH.NewDiaryHandler(log, diary),
		MealHandler:        httpH.NewMealHandler(log, diary),
		ProductHandler:     httpH.NewProductHandler(log, diary),
		MeasurementHandler: httpH.NewMeasurementHandler(log, diary),
		SettingsHandler:    httpH.NewSettingsHandler(log, diary),
		RealtimeHandler:    httpH.NewRealtimeHandler(log, hub),
		HealthHandler:      httpH.NewHealthHandler(gdb),
	})
}

func do(t *testing.T, r *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode %q: %v", rec.Body.String(), err)
	}
	return out
}

func TestHealthcheck(t *testing.T) {
	r := newTestRouter(t)
	rec := do(t, r, nethttp.MethodGet, "/healthcheck", nil)
	if rec.Code != nethttp.StatusOK || rec.Body.String() != "ok" {
		t.Fatalf("healthcheck: %d %q", rec.Code, rec.Body.String())
	}
}

func TestDiaryFlowOverHTTP(t *testing.T) {
	r := newTestRouter(t)

	rec := do(t, r, nethttp.MethodPost, "/api/meals", map[string]string{"name": "Breakfast", "from": "06:00", "to": "10:00"})
	if rec.Code != nethttp.StatusCreated {
		t.Fatalf("create meal: %d %s", rec.Code, rec.Body.String())
	}
	meal := decode[struct {
		Meal struct {
			ID int64 `json:"id"`
		} `json:"meal"`
	}](t, rec).Meal

	rec = do(t, r, nethttp.MethodPost, "/api/products", map[string]any{
		"name": "Oats", "calories": 155, "proteins": 13, "carbohydrates": 68, "fats": 7,
	})
	if rec.Code != nethttp.StatusCreated {
		t.Fatalf("create product: %d %s", rec.Code, rec.Body.String())
	}
	product := decode[struct {
		Product struct {
			ID int64 `json:"id"`
		} `json:"product"`
	}](t, rec).Product

	rec = do(t, r, nethttp.MethodPost, "/api/measurements", map[string]any{
		"date": "2024-12-08", "meal_id": meal.ID, "product_id": product.ID, "kind": "weight_unit", "quantity": 60,
	})
	if rec.Code != nethttp.StatusCreated {
		t.Fatalf("add measurement: %d %s", rec.Code, rec.Body.String())
	}

	rec = do(t, r, nethttp.MethodGet, "/api/diary/2024-12-08", nil)
	if rec.Code != nethttp.StatusOK {
		t.Fatalf("diary day: %d %s", rec.Code, rec.Body.String())
	}
	day := decode[struct {
		Day struct {
			Totals struct {
				Calories float64 `json:"calories"`
			} `json:"totals"`
		} `json:"day"`
	}](t, rec).Day
	if day.Totals.Calories < 92.999 || day.Totals.Calories > 93.001 {
		t.Fatalf("calories: want=93 got=%v", day.Totals.Calories)
	}

	// Package measurement on a product without a package weight is rejected.
	rec = do(t, r, nethttp.MethodPost, "/api/measurements", map[string]any{
		"date": "2024-12-08", "meal_id": meal.ID, "product_id": product.ID, "kind": "package", "quantity": 1,
	})
	if rec.Code != nethttp.StatusBadRequest {
		t.Fatalf("package without weight: want=400 got=%d", rec.Code)
	}
}

func TestNotFoundAndBadInput(t *testing.T) {
	r := newTestRouter(t)

	cases := []struct {
		method, path string
		body         any
		want         int
	}{
		{nethttp.MethodGet, "/api/meals/42", nil, nethttp.StatusNotFound},
		{nethttp.MethodGet, "/api/meals/abc", nil, nethttp.StatusBadRequest},
		{nethttp.MethodGet, "/api/products/7/quantity-suggestion", nil, nethttp.StatusNotFound},
		{nethttp.MethodGet, "/api/measurements/9", nil, nethttp.StatusNotFound},
		{nethttp.MethodGet, "/api/diary/08-12-2024", nil, nethttp.StatusBadRequest},
		{nethttp.MethodPut, "/api/goals", map[string]any{"calories": -5}, nethttp.StatusBadRequest},
		{nethttp.MethodGet, "/api/products/search", nil, nethttp.StatusBadRequest},
		{nethttp.MethodGet, "/api/sse/stream?channels=nope", nil, nethttp.StatusBadRequest},
		// Removing a missing measurement is a logged no-op.
		{nethttp.MethodPost, "/api/measurements/99/remove", nil, nethttp.StatusNoContent},
	}
	for _, tc := range cases {
		rec := do(t, r, tc.method, tc.path, tc.body)
		if rec.Code != tc.want {
			t.Fatalf("%s %s: want=%d got=%d body=%s", tc.method, tc.path, tc.want, rec.Code, rec.Body.String())
		}
	}
}

func TestGoalsAndSettingsOverHTTP(t *testing.T) {
	r := newTestRouter(t)

	rec := do(t, r, nethttp.MethodGet, "/api/goals", nil)
	goals := decode[struct {
		Goals struct {
			Calories float64 `json:"calories"`
		} `json:"goals"`
	}](t, rec).Goals
	if goals.Calories != 2000 {
		t.Fatalf("default calories: want=2000 got=%v", goals.Calories)
	}

	rec = do(t, r, nethttp.MethodPut, "/api/goals", map[string]any{"calories": 1800, "proteins": 120, "carbohydrates": 200, "fats": 60})
	if rec.Code != nethttp.StatusOK {
		t.Fatalf("set goals: %d %s", rec.Code, rec.Body.String())
	}

	rec = do(t, r, nethttp.MethodGet, "/api/settings/selected-date", nil)
	if body := rec.Body.String(); rec.Code != nethttp.StatusOK || body != `{"date":null}` {
		t.Fatalf("unset selected date: %d %s", rec.Code, body)
	}
	rec = do(t, r, nethttp.MethodPut, "/api/settings/selected-date", map[string]string{"date": "2024-02-29"})
	if rec.Code != nethttp.StatusOK {
		t.Fatalf("set selected date: %d %s", rec.Code, rec.Body.String())
	}
	rec = do(t, r, nethttp.MethodGet, "/api/settings/selected-date", nil)
	if got := decode[struct {
		Date string `json:"date"`
	}](t, rec).Date; got != "2024-02-29" {
		t.Fatalf("selected date: got=%q", got)
	}

	rec = do(t, r, nethttp.MethodPut, "/api/settings/meals-card", map[string]bool{"time_based_sorting": true})
	if rec.Code != nethttp.StatusOK {
		t.Fatalf("set meals card: %d %s", rec.Code, rec.Body.String())
	}
	rec = do(t, r, nethttp.MethodGet, "/api/settings/meals-card", nil)
	settings := decode[struct {
		Settings struct {
			TimeBasedSorting   bool `json:"time_based_sorting"`
			IncludeAllDayMeals bool `json:"include_all_day_meals"`
		} `json:"settings"`
	}](t, rec).Settings
	if !settings.TimeBasedSorting || settings.IncludeAllDayMeals {
		t.Fatalf("meals card settings: %+v", settings)
	}
}

func TestLocalProductSearchOverHTTP(t *testing.T) {
	r := newTestRouter(t)

	rec := do(t, r, nethttp.MethodPost, "/api/meals", map[string]string{"name": "Lunch", "from": "12:00", "to": "15:00"})
	meal := decode[struct {
		Meal struct {
			ID int64 `json:"id"`
		} `json:"meal"`
	}](t, rec).Meal
	for _, name := range []string{"Apple", "Apricot", "Banana"} {
		rec = do(t, r, nethttp.MethodPost, "/api/products", map[string]any{
			"name": name, "calories": 50, "proteins": 1, "carbohydrates": 12, "fats": 0,
		})
		if rec.Code != nethttp.StatusCreated {
			t.Fatalf("create %s: %d %s", name, rec.Code, rec.Body.String())
		}
	}

	rec = do(t, r, nethttp.MethodGet, "/api/products/search?meal_id="+itoa(meal.ID)+"&date=2024-01-01&q=ap", nil)
	if rec.Code != nethttp.StatusOK {
		t.Fatalf("search: %d %s", rec.Code, rec.Body.String())
	}
	res := decode[struct {
		Mode  string `json:"mode"`
		Items []struct {
			Kind string `json:"kind"`
		} `json:"items"`
		HasMore bool `json:"has_more"`
	}](t, rec)
	if res.Mode != "text" || len(res.Items) != 2 || res.HasMore {
		t.Fatalf("search result: %+v", res)
	}
	for _, it := range res.Items {
		if it.Kind != "suggestion" {
			t.Fatalf("kind: want suggestion got %q", it.Kind)
		}
	}
}

func itoa(v int64) string {
	b, _ := json.Marshal(v)
	return string(b)
}
