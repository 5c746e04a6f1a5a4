package backend

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/gogoggogosususus-sudo/stormanagement/internal/core/domain"
)

func newTestClient(handler http.HandlerFunc) (*Client, *httptest.Server) {
	srv := httptest.NewServer(handler)
	return New(srv.URL, time.Second, zerolog.Nop()), srv
}

func TestClient_Login_CapturesCookie(t *testing.T) {
	client, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/sales/login" || r.Method != http.MethodPost {
			t.Fatalf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		http.SetCookie(w, &http.Cookie{Name: "session", Value: "abc123"})
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"user":{"username":"ramesh","role":"Sales"}}`))
	})
	defer srv.Close()

	user, credential, err := client.Login(context.Background(), "ramesh", "pw")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if user.Username != "ramesh" || user.Role != "Sales" {
		t.Fatalf("unexpected user: %+v", user)
	}
	if credential != "session=abc123" {
		t.Fatalf("unexpected credential: %q", credential)
	}
}

func TestClient_Login_ServerMessage(t *testing.T) {
	client, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":"Invalid username or password"}`))
	})
	defer srv.Close()

	_, _, err := client.Login(context.Background(), "ramesh", "bad")
	var ue *domain.UpstreamError
	if !errors.As(err, &ue) {
		t.Fatalf("expected UpstreamError, got %v", err)
	}
	if ue.Status != http.StatusUnauthorized || ue.Message != "Invalid username or password" {
		t.Fatalf("unexpected error: %+v", ue)
	}
}

func TestClient_Login_TransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close() // refuse connections
	client := New(srv.URL, time.Second, zerolog.Nop())

	_, _, err := client.Login(context.Background(), "ramesh", "pw")
	if !errors.Is(err, domain.ErrBackendUnavailable) {
		t.Fatalf("expected ErrBackendUnavailable, got %v", err)
	}
}

func TestClient_ListOrders_FilterOmission(t *testing.T) {
	client, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if _, present := q["status"]; present {
			t.Fatalf("status set to the all sentinel must be omitted, got %q", q.Get("status"))
		}
		if _, present := q["availability"]; present {
			t.Fatalf("empty availability must be omitted")
		}
		if q.Get("customer") != "Sita" {
			t.Fatalf("customer filter missing: %v", q)
		}
		if r.Header.Get("Cookie") != "session=abc123" {
			t.Fatalf("credential not forwarded: %q", r.Header.Get("Cookie"))
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"orders":[{"id":1,"customer_name":"Sita","total_value":12000}]}`))
	})
	defer srv.Close()

	orders, err := client.ListOrders(context.Background(), "session=abc123", domain.OrderFilter{
		Status:   domain.FilterAll,
		Customer: "Sita",
	})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(orders) != 1 || orders[0].TotalValue != 12000 {
		t.Fatalf("unexpected orders: %+v", orders)
	}
}

func TestClient_ListHistory_LimitAlwaysSent(t *testing.T) {
	client, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if _, present := q["type"]; present {
			t.Fatalf("type set to the all sentinel must be omitted")
		}
		if q.Get("limit") != "50" {
			t.Fatalf("limit must always be sent, got %v", q)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"history":[]}`))
	})
	defer srv.Close()

	if _, err := client.ListHistory(context.Background(), "c", domain.HistoryFilter{Type: domain.FilterAll}); err != nil {
		t.Fatalf("history failed: %v", err)
	}
}

func TestClient_ProbeSession_NoUser(t *testing.T) {
	client, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/auth/status" {
			t.Fatalf("unexpected path: %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{}`))
	})
	defer srv.Close()

	if _, err := client.ProbeSession(context.Background(), "c"); !errors.Is(err, domain.ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound, got %v", err)
	}
}

func TestClient_GetOrder_NotFound(t *testing.T) {
	client, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error":"order not found"}`))
	})
	defer srv.Close()

	if _, err := client.GetOrder(context.Background(), "c", 99); !errors.Is(err, domain.ErrRecordNotFound) {
		t.Fatalf("expected ErrRecordNotFound, got %v", err)
	}
}

func TestClient_UpdateOrder(t *testing.T) {
	client, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPut || r.URL.Path != "/api/orders/7" {
			t.Fatalf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"success":true}`))
	})
	defer srv.Close()

	err := client.UpdateOrder(context.Background(), "c", 7, domain.OrderUpdate{Status: "Delivered"})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
}
