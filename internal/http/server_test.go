package http

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"kopilka/internal/core"
	"kopilka/internal/kv"
	"kopilka/internal/ledger"
	"kopilka/internal/settings"
)

// brokenKV fails every operation, simulating unavailable device storage.
type brokenKV struct{}

var errBroken = errors.New("storage broken")

func (brokenKV) Get(context.Context, string) (string, bool, error) { return "", false, errBroken }
func (brokenKV) Set(context.Context, string, string) error         { return errBroken }
func (brokenKV) Delete(context.Context, string) error              { return errBroken }

func newTestServer(t *testing.T) *http.Server {
	t.Helper()
	mem := kv.NewMemory()
	return NewServer(":0", ledger.New(mem), settings.New(mem), 0)
}

func do(t *testing.T, srv *http.Server, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	rr := httptest.NewRecorder()
	srv.Handler.ServeHTTP(rr, req)
	return rr
}

func TestHealth(t *testing.T) {
	srv := newTestServer(t)
	rr := do(t, srv, http.MethodGet, "/healthz", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("healthz status = %d", rr.Code)
	}
}

func TestTransactionLifecycle(t *testing.T) {
	srv := newTestServer(t)

	// Create an expense then an income, as in the home screen flow.
	rr := do(t, srv, http.MethodPost, "/api/transactions",
		`{"type":"expense","amount":"500","title":"Groceries","category":"food"}`)
	if rr.Code != http.StatusCreated {
		t.Fatalf("create expense status = %d body = %s", rr.Code, rr.Body.String())
	}
	rr = do(t, srv, http.MethodPost, "/api/transactions",
		`{"type":"income","amount":2000,"title":"Paycheck","category":"salary"}`)
	if rr.Code != http.StatusCreated {
		t.Fatalf("create income status = %d body = %s", rr.Code, rr.Body.String())
	}

	// List is newest-first.
	rr = do(t, srv, http.MethodGet, "/api/transactions", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("list status = %d", rr.Code)
	}
	body := rr.Body.String()
	if !strings.Contains(body, `"count":2`) {
		t.Fatalf("list should have 2 records: %s", body)
	}
	if strings.Index(body, "Paycheck") > strings.Index(body, "Groceries") {
		t.Fatalf("list should be newest-first: %s", body)
	}

	// Statistics over everything.
	rr = do(t, srv, http.MethodGet, "/api/statistics?period=all", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("statistics status = %d", rr.Code)
	}
	body = rr.Body.String()
	for _, want := range []string{`"totalIncome":2000.00`, `"totalExpense":500.00`, `"balance":1500.00`, `"currency":"RUB"`} {
		if !strings.Contains(body, want) {
			t.Errorf("statistics body missing %s: %s", want, body)
		}
	}

	// Delete the expense by id.
	rr = do(t, srv, http.MethodGet, "/api/transactions", "")
	listBody := rr.Body.String()
	idStart := strings.Index(listBody, `"id":"`) + len(`"id":"`)
	id := listBody[idStart : idStart+strings.Index(listBody[idStart:], `"`)]
	rr = do(t, srv, http.MethodDelete, "/api/transactions/"+id, "")
	if rr.Code != http.StatusNoContent {
		t.Fatalf("delete status = %d", rr.Code)
	}
	rr = do(t, srv, http.MethodGet, "/api/transactions", "")
	if !strings.Contains(rr.Body.String(), `"count":1`) {
		t.Fatalf("expected 1 record after delete: %s", rr.Body.String())
	}

	// Clear everything.
	rr = do(t, srv, http.MethodDelete, "/api/transactions", "")
	if rr.Code != http.StatusNoContent {
		t.Fatalf("clear status = %d", rr.Code)
	}
	rr = do(t, srv, http.MethodGet, "/api/transactions", "")
	if !strings.Contains(rr.Body.String(), `"count":0`) {
		t.Fatalf("expected empty ledger after clear: %s", rr.Body.String())
	}
}

func TestCreateTransactionValidation(t *testing.T) {
	srv := newTestServer(t)

	cases := []struct {
		name string
		body string
	}{
		{"bad type", `{"type":"transfer","amount":"10","title":"x","category":"food"}`},
		{"zero amount", `{"type":"expense","amount":"0","title":"x","category":"food"}`},
		{"negative amount", `{"type":"expense","amount":"-5","title":"x","category":"food"}`},
		{"empty title", `{"type":"expense","amount":"10","title":"  ","category":"food"}`},
		{"long title", `{"type":"expense","amount":"10","title":"` + strings.Repeat("x", 51) + `","category":"food"}`},
		{"category of other type", `{"type":"expense","amount":"10","title":"x","category":"salary"}`},
		{"unknown category", `{"type":"expense","amount":"10","title":"x","category":"crypto"}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rr := do(t, srv, http.MethodPost, "/api/transactions", tc.body)
			if rr.Code != http.StatusUnprocessableEntity {
				t.Fatalf("status = %d, want 422 (%s)", rr.Code, rr.Body.String())
			}
		})
	}

	t.Run("garbage body", func(t *testing.T) {
		rr := do(t, srv, http.MethodPost, "/api/transactions", "{nope")
		if rr.Code != http.StatusBadRequest {
			t.Fatalf("status = %d, want 400", rr.Code)
		}
	})
}

func TestMethodGuards(t *testing.T) {
	srv := newTestServer(t)
	cases := []struct {
		method, path string
	}{
		{http.MethodPut, "/api/transactions"},
		{http.MethodPost, "/api/transactions/123"},
		{http.MethodPost, "/api/statistics"},
		{http.MethodDelete, "/api/settings"},
		{http.MethodPost, "/api/export.csv"},
		{http.MethodPost, "/api/currencies"},
	}
	for _, tc := range cases {
		rr := do(t, srv, tc.method, tc.path, "")
		if rr.Code != http.StatusMethodNotAllowed {
			t.Errorf("%s %s status = %d, want 405", tc.method, tc.path, rr.Code)
		}
	}
}

func TestStatisticsPeriodFiltering(t *testing.T) {
	mem := kv.NewMemory()
	now := time.Now().UTC()
	old := now.AddDate(0, 0, -10)

	// Seed one old record via a backdated clock, one fresh via the real one.
	backdated := ledger.NewAtTime(mem, func() time.Time { return old })
	if _, err := backdated.Add(context.Background(), core.Expense, core.Money{Cents: 100_00}, "old", core.CategoryFood); err != nil {
		t.Fatalf("seed old: %v", err)
	}
	fresh := ledger.New(mem)
	if _, err := fresh.Add(context.Background(), core.Income, core.Money{Cents: 200_00}, "new", core.CategorySalary); err != nil {
		t.Fatalf("seed new: %v", err)
	}

	srv := NewServer(":0", fresh, settings.New(mem), 0)

	rr := do(t, srv, http.MethodGet, "/api/statistics?period=week", "")
	if !strings.Contains(rr.Body.String(), `"transactionCount":1`) {
		t.Fatalf("week window should exclude the 10-day-old record: %s", rr.Body.String())
	}

	rr = do(t, srv, http.MethodGet, "/api/statistics?period=all", "")
	if !strings.Contains(rr.Body.String(), `"transactionCount":2`) {
		t.Fatalf("all window should keep both: %s", rr.Body.String())
	}

	rr = do(t, srv, http.MethodGet, "/api/statistics?period=year", "")
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("unknown period status = %d, want 400", rr.Code)
	}
}

func TestSettingsRoundTripOverHTTP(t *testing.T) {
	srv := newTestServer(t)

	rr := do(t, srv, http.MethodGet, "/api/settings", "")
	if !strings.Contains(rr.Body.String(), `"currency":"RUB"`) {
		t.Fatalf("defaults expected: %s", rr.Body.String())
	}

	rr = do(t, srv, http.MethodPut, "/api/settings", `{"isDarkMode":true,"currency":"EUR"}`)
	if rr.Code != http.StatusOK {
		t.Fatalf("put settings status = %d: %s", rr.Code, rr.Body.String())
	}

	rr = do(t, srv, http.MethodGet, "/api/settings", "")
	body := rr.Body.String()
	if !strings.Contains(body, `"currency":"EUR"`) || !strings.Contains(body, `"isDarkMode":true`) {
		t.Fatalf("settings did not persist: %s", body)
	}
	// Partial update must not flip untouched fields.
	if !strings.Contains(body, `"notifications":true`) {
		t.Fatalf("notifications default lost: %s", body)
	}

	rr = do(t, srv, http.MethodPut, "/api/settings", `{"currency":"BTC"}`)
	if rr.Code != http.StatusUnprocessableEntity {
		t.Fatalf("unknown currency status = %d, want 422", rr.Code)
	}
}

func TestExportCSV(t *testing.T) {
	srv := newTestServer(t)
	do(t, srv, http.MethodPost, "/api/transactions",
		`{"type":"expense","amount":"500","title":"Groceries","category":"food"}`)

	rr := do(t, srv, http.MethodGet, "/api/export.csv", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("export status = %d", rr.Code)
	}
	if ct := rr.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/csv") {
		t.Fatalf("content type = %q", ct)
	}
	body := rr.Body.String()
	if !strings.Contains(body, "Дата,Тип,Категория,Название,Сумма") {
		t.Fatalf("missing header: %s", body)
	}
	if !strings.Contains(body, "Расход,Еда,Groceries,500.00") {
		t.Fatalf("missing row: %s", body)
	}
}

func TestStorageFailureSurfacesAsServerError(t *testing.T) {
	srv := NewServer(":0", ledger.New(brokenKV{}), settings.New(brokenKV{}), 0)

	rr := do(t, srv, http.MethodPost, "/api/transactions",
		`{"type":"expense","amount":"10","title":"x","category":"food"}`)
	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("create on broken storage status = %d, want 500", rr.Code)
	}

	// Listing fails soft: empty collection, not an error.
	rr = do(t, srv, http.MethodGet, "/api/transactions", "")
	if rr.Code != http.StatusOK || !strings.Contains(rr.Body.String(), `"count":0`) {
		t.Fatalf("list on broken storage = %d %s, want 200 with empty ledger", rr.Code, rr.Body.String())
	}
}

func TestStatsCacheInvalidation(t *testing.T) {
	mem := kv.NewMemory()
	srv := NewServer(":0", ledger.New(mem), settings.New(mem), time.Minute)

	rr := do(t, srv, http.MethodGet, "/api/statistics?period=all", "")
	if !strings.Contains(rr.Body.String(), `"transactionCount":0`) {
		t.Fatalf("expected empty stats: %s", rr.Body.String())
	}

	do(t, srv, http.MethodPost, "/api/transactions",
		`{"type":"income","amount":"100","title":"x","category":"salary"}`)

	rr = do(t, srv, http.MethodGet, "/api/statistics?period=all", "")
	if !strings.Contains(rr.Body.String(), `"transactionCount":1`) {
		t.Fatalf("mutation must invalidate the cache: %s", rr.Body.String())
	}
}
