package order

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func newTestServer(t *testing.T) (*httptest.Server, *fakeStore) {
	t.Helper()

	store := newFakeStore()
	svc := newTestService(store)
	handler := NewHandler(svc, svc.logger)

	mux := http.NewServeMux()
	handler.RegisterRoutes(mux)

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server, store
}

func doRequest(t *testing.T, method, url, body string) *http.Response {
	t.Helper()

	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}

	req, err := http.NewRequest(method, url, reader)
	if err != nil {
		t.Fatalf("failed to build request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func TestCreateOrderEndpoint(t *testing.T) {
	server, _ := newTestServer(t)

	resp := doRequest(t, http.MethodPost, server.URL+"/orders/create", "")
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("status = %d, want %d", resp.StatusCode, http.StatusCreated)
	}

	var body struct {
		OrderID int `json:"orderId"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode body: %v", err)
	}
	if body.OrderID != 1 {
		t.Errorf("orderId = %d, want 1", body.OrderID)
	}
}

func TestCompleteOrderEndpoint_InvalidID(t *testing.T) {
	server, _ := newTestServer(t)

	resp := doRequest(t, http.MethodPut, server.URL+"/orders/abc/complete", "")
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", resp.StatusCode, http.StatusBadRequest)
	}
}

func TestCompleteOrderEndpoint_NotFound(t *testing.T) {
	server, _ := newTestServer(t)

	resp := doRequest(t, http.MethodPut, server.URL+"/orders/42/complete", "")
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("status = %d, want %d", resp.StatusCode, http.StatusNotFound)
	}
}

func TestUpdateTotalEndpoint(t *testing.T) {
	server, _ := newTestServer(t)
	doRequest(t, http.MethodPost, server.URL+"/orders/create", "")

	tests := []struct {
		name string
		body string
		want int
	}{
		{"valid total", `{"total_price": 37.51}`, http.StatusOK},
		{"zero total", `{"total_price": 0}`, http.StatusOK},
		{"negative total", `{"total_price": -5}`, http.StatusBadRequest},
		{"non-numeric total", `{"total_price": true}`, http.StatusBadRequest},
		{"missing total", `{}`, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := doRequest(t, http.MethodPut, server.URL+"/orders/1/update-total", tt.body)
			if resp.StatusCode != tt.want {
				t.Errorf("status = %d, want %d", resp.StatusCode, tt.want)
			}
		})
	}
}

func TestAddItemsEndpoint(t *testing.T) {
	server, _ := newTestServer(t)
	doRequest(t, http.MethodPost, server.URL+"/orders/create", "")

	resp := doRequest(t, http.MethodPost, server.URL+"/orders/1/items/add",
		`[{"dish_id": 1, "quantity": 2, "ordered_name": "Paella", "ordered_unit_price": 12.50}]`)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("status = %d, want %d", resp.StatusCode, http.StatusCreated)
	}

	resp = doRequest(t, http.MethodGet, server.URL+"/orders/1/items", "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("items status = %d, want %d", resp.StatusCode, http.StatusOK)
	}

	var items []lineItemView
	if err := json.NewDecoder(resp.Body).Decode(&items); err != nil {
		t.Fatalf("failed to decode items: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("got %d items, want 1", len(items))
	}
	if items[0].OrderedName != "Paella" || items[0].Quantity != 2 {
		t.Errorf("unexpected line: %+v", items[0])
	}
}

func TestAddItemsEndpoint_BadBody(t *testing.T) {
	server, _ := newTestServer(t)
	doRequest(t, http.MethodPost, server.URL+"/orders/create", "")

	tests := []struct {
		name string
		body string
	}{
		{"object instead of array", `{"dish_id": 1}`},
		{"empty array", `[]`},
		{"missing ordered_name", `[{"dish_id": 1, "ordered_unit_price": 12.50}]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := doRequest(t, http.MethodPost, server.URL+"/orders/1/items/add", tt.body)
			if resp.StatusCode != http.StatusBadRequest {
				t.Errorf("status = %d, want %d", resp.StatusCode, http.StatusBadRequest)
			}
		})
	}
}

func TestRemoveItemEndpoint(t *testing.T) {
	server, _ := newTestServer(t)
	doRequest(t, http.MethodPost, server.URL+"/orders/create", "")
	doRequest(t, http.MethodPost, server.URL+"/orders/1/items/add",
		`[{"dish_id": 1, "quantity": 1, "ordered_name": "Paella", "ordered_unit_price": 12.50}]`)

	resp := doRequest(t, http.MethodDelete, server.URL+"/orders/1/items/1/delete", "")
	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d, want %d", resp.StatusCode, http.StatusOK)
	}

	resp = doRequest(t, http.MethodDelete, server.URL+"/orders/1/items/1/delete", "")
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("repeat delete status = %d, want %d", resp.StatusCode, http.StatusNotFound)
	}
}

func TestTotalsEndpoint(t *testing.T) {
	server, _ := newTestServer(t)
	doRequest(t, http.MethodPost, server.URL+"/orders/create", "")
	doRequest(t, http.MethodPost, server.URL+"/orders/1/items/add",
		`[{"dish_id": 1, "quantity": 2, "ordered_name": "Paella", "ordered_unit_price": 12.50}]`)
	doRequest(t, http.MethodPost, server.URL+"/orders/1/items/add",
		`[{"dish_id": 2, "quantity": 1, "ordered_name": "Tortilla", "ordered_unit_price": 6.00}]`)

	resp := doRequest(t, http.MethodGet, server.URL+"/orders/1/totals", "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want %d", resp.StatusCode, http.StatusOK)
	}

	var totals struct {
		Subtotal float64 `json:"subtotal"`
		Tax      float64 `json:"tax"`
		Tip      float64 `json:"tip"`
		Total    float64 `json:"total"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&totals); err != nil {
		t.Fatalf("failed to decode totals: %v", err)
	}
	if totals.Subtotal != 31.00 || totals.Tax != 6.51 || totals.Total != 37.51 {
		t.Errorf("totals = %+v, want subtotal 31.00 tax 6.51 total 37.51", totals)
	}

	resp = doRequest(t, http.MethodGet, server.URL+"/orders/1/totals?tip=bad", "")
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("bad tip status = %d, want %d", resp.StatusCode, http.StatusBadRequest)
	}
}
