package catalog

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

const mockListEnvelope = `{"items":[{"id":1,"name":"Mouse","sku":"M-1","price":10,"active":true},{"id":2,"name":"Keyboard","sku":"K-1","price":20,"active":false}],"total":2,"skip":0,"limit":1000}`

const mockListArray = `[{"id":1,"name":"Mouse","sku":"M-1","price":10,"active":true}]`

func TestNewClient(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty uses default", "", DefaultBaseURL},
		{"trailing slash trimmed", "http://10.0.0.5:5000/products/", "http://10.0.0.5:5000/products"},
		{"kept as is", "http://api.local/products", "http://api.local/products"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := NewClient(tt.in)
			if client.BaseURL != tt.want {
				t.Errorf("BaseURL = %s, want %s", client.BaseURL, tt.want)
			}
			if client.HTTPClient == nil {
				t.Fatal("HTTPClient should not be nil")
			}
			if client.HTTPClient.Timeout != 0 {
				t.Errorf("default timeout = %v, want none", client.HTTPClient.Timeout)
			}
		})
	}
}

func TestSetTimeout(t *testing.T) {
	client := NewClient("")
	client.SetTimeout(5 * time.Second)

	if client.HTTPClient.Timeout != 5*time.Second {
		t.Errorf("Timeout = %v, want 5s", client.HTTPClient.Timeout)
	}
}

func TestList(t *testing.T) {
	var gotQuery string
	var gotRequestID string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			t.Errorf("method = %s, want GET", r.Method)
		}
		gotQuery = r.URL.RawQuery
		gotRequestID = r.Header.Get(RequestIDHeader)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(mockListEnvelope))
	}))
	defer server.Close()

	client := NewClient(server.URL + "/products")
	page, err := client.List(context.Background(), 0, BulkFetchLimit, 0)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}

	if gotQuery != "limit=1000&skip=0" {
		t.Errorf("query = %q, want limit=1000&skip=0", gotQuery)
	}
	if gotRequestID == "" {
		t.Error("request id header not sent")
	}
	if len(page.Items) != 2 || page.Total != 2 {
		t.Fatalf("got %d items (total %d), want 2", len(page.Items), page.Total)
	}
	if page.Items[1].Name != "Keyboard" || page.Items[1].Active {
		t.Errorf("unexpected second item: %+v", page.Items[1])
	}
}

func TestRequestIDFromContext(t *testing.T) {
	var got string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Get(RequestIDHeader)
		_, _ = w.Write([]byte(mockListArray))
	}))
	defer server.Close()

	client := NewClient(server.URL + "/products")
	ctx := WithRequestID(context.Background(), "req-123")
	if _, err := client.List(ctx, 0, 10, 0); err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if got != "req-123" {
		t.Errorf("request id = %q, want req-123", got)
	}
	if RequestIDFrom(context.Background()) != "" {
		t.Error("empty context should carry no id")
	}
}

func TestListMinPrice(t *testing.T) {
	tests := []struct {
		name     string
		minPrice float64
		want     string
	}{
		{"omitted when zero", 0, ""},
		{"omitted when negative", -1, ""},
		{"sent when positive", 12.5, "12.5"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got string
			var present bool
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				got = r.URL.Query().Get("min_price")
				_, present = r.URL.Query()["min_price"]
				_, _ = w.Write([]byte(`[]`))
			}))
			defer server.Close()

			client := NewClient(server.URL)
			if _, err := client.List(context.Background(), 0, 10, tt.minPrice); err != nil {
				t.Fatalf("List() error = %v", err)
			}
			if present != (tt.want != "") || got != tt.want {
				t.Errorf("min_price = %q (present %v), want %q", got, present, tt.want)
			}
		})
	}
}

func TestListBareArray(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(mockListArray))
	}))
	defer server.Close()

	page, err := NewClient(server.URL).List(context.Background(), 0, 50, 0)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if page.Total != 1 || page.Limit != 50 || page.Items[0].SKU != "M-1" {
		t.Errorf("unexpected page: %+v", page)
	}
}

func TestListHTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"detail":"database down"}`))
	}))
	defer server.Close()

	_, err := NewClient(server.URL).List(context.Background(), 0, 10, 0)
	if !IsHTTPError(err) {
		t.Fatalf("expected HTTP error, got %v", err)
	}
	if ShortMessage(err) != "failed to fetch products" {
		t.Errorf("ShortMessage = %q, want generic fetch message", ShortMessage(err))
	}
}

func TestListParseError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html>`))
	}))
	defer server.Close()

	_, err := NewClient(server.URL).List(context.Background(), 0, 10, 0)
	if !IsParseError(err) {
		t.Errorf("expected parse error, got %v", err)
	}
}

func TestGet(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/products/1":
			_, _ = w.Write([]byte(`{"id":1,"name":"Mouse","sku":"M-1","price":10.5,"active":true}`))
		default:
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"detail":"Product not found"}`))
		}
	}))
	defer server.Close()

	client := NewClient(server.URL + "/products")

	product, err := client.Get(context.Background(), 1)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if product.ID != 1 || product.Price != 10.5 {
		t.Errorf("unexpected product: %+v", product)
	}

	_, err = client.Get(context.Background(), 99)
	if !IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}
	if ShortMessage(err) != "failed to fetch product: Not Found" {
		t.Errorf("ShortMessage = %q", ShortMessage(err))
	}
}

func TestCreate(t *testing.T) {
	var got ProductInput
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s, want POST", r.Method)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("Content-Type = %s", ct)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode body: %v", err)
		}
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"id":7,"name":"Cable","sku":"C-1","price":3.99,"active":true}`))
	}))
	defer server.Close()

	input := ProductInput{Name: "Cable", SKU: "C-1", Price: 3.99, Active: true}
	product, err := NewClient(server.URL).Create(context.Background(), input)
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if got != input {
		t.Errorf("body = %+v, want %+v", got, input)
	}
	if product.ID != 7 {
		t.Errorf("ID = %d, want 7", product.ID)
	}
}

func TestMutationErrorMessages(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		want   string
	}{
		{"detail string", http.StatusBadRequest, `{"detail":"SKU already exists"}`, "SKU already exists"},
		{"detail list", http.StatusUnprocessableEntity, `{"detail":[{"loc":["body","price"],"msg":"Input should be greater than 0"}]}`, "body.price: Input should be greater than 0"},
		{"unparseable body", http.StatusBadGateway, `<html>bad gateway</html>`, "502: Bad Gateway"},
		{"empty body", http.StatusInternalServerError, ``, "500: Internal Server Error"},
		{"empty detail", http.StatusBadRequest, `{"detail":""}`, "400: Bad Request"},
	}

	operations := map[string]func(c *Client) error{
		"create": func(c *Client) error {
			_, err := c.Create(context.Background(), ProductInput{Name: "a", SKU: "b", Price: 1})
			return err
		},
		"update": func(c *Client) error {
			_, err := c.Update(context.Background(), 1, ProductInput{Name: "a", SKU: "b", Price: 1})
			return err
		},
		"delete": func(c *Client) error {
			_, err := c.Delete(context.Background(), 1)
			return err
		},
	}

	for _, tt := range tests {
		for opName, op := range operations {
			t.Run(tt.name+"/"+opName, func(t *testing.T) {
				server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
					w.WriteHeader(tt.status)
					_, _ = io.WriteString(w, tt.body)
				}))
				defer server.Close()

				err := op(NewClient(server.URL))
				if !IsHTTPError(err) {
					t.Fatalf("expected HTTP error, got %v", err)
				}
				if got := ShortMessage(err); got != tt.want {
					t.Errorf("message = %q, want %q", got, tt.want)
				}
			})
		}
	}
}

func TestUpdate(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPut || r.URL.Path != "/products/3" {
			t.Errorf("got %s %s, want PUT /products/3", r.Method, r.URL.Path)
		}
		body, _ := io.ReadAll(r.Body)
		if !strings.Contains(string(body), `"active":false`) {
			t.Errorf("body missing active=false: %s", body)
		}
		_, _ = w.Write([]byte(`{"id":3,"name":"Desk","sku":"D-1","price":100,"active":false}`))
	}))
	defer server.Close()

	product, err := NewClient(server.URL+"/products").Update(context.Background(), 3, ProductInput{Name: "Desk", SKU: "D-1", Price: 100})
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if product.Active {
		t.Error("expected inactive product")
	}
}

func TestDelete(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		want   string
	}{
		{"detail body", http.StatusOK, `{"detail":"Product deleted"}`, "Product deleted"},
		{"no content", http.StatusNoContent, ``, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.Method != http.MethodDelete {
					t.Errorf("method = %s, want DELETE", r.Method)
				}
				w.WriteHeader(tt.status)
				_, _ = io.WriteString(w, tt.body)
			}))
			defer server.Close()

			result, err := NewClient(server.URL).Delete(context.Background(), 2)
			if err != nil {
				t.Fatalf("Delete() error = %v", err)
			}
			if result.Detail != tt.want {
				t.Errorf("Detail = %q, want %q", result.Detail, tt.want)
			}
		})
	}
}

func TestConnectionRefused(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	err := NewClient(url).Ping(context.Background())
	if !IsNetworkError(err) {
		t.Fatalf("expected network error, got %v", err)
	}
}

func TestContextCancelled(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewClient(server.URL).Get(ctx, 1)
	if !IsNetworkError(err) {
		t.Errorf("expected network error for cancelled context, got %v", err)
	}
}
