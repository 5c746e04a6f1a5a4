// Package backend implements the HTTP client for the upstream sales API. The
// upstream is an opaque collaborator: this package owns nothing beyond the
// wire shapes it consumes.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/gogoggogosususus-sudo/stormanagement/internal/api/metrics"
	"github.com/gogoggogosususus-sudo/stormanagement/internal/core/domain"
)

const defaultTimeout = 15 * time.Second
const defaultHistoryLimit = 50

// Client talks to the upstream backend. The credential passed to each call is
// the raw Cookie header value captured at login and replayed verbatim; the
// portal never inspects the upstream session cookie.
type Client struct {
	baseURL string
	http    *http.Client
	log     zerolog.Logger
}

// New creates a Client for the given base URL. A default timeout is applied
// when none is provided.
func New(baseURL string, timeout time.Duration, log zerolog.Logger) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		log:     log,
	}
}

// ProbeSession asks the backend who the credential belongs to.
func (c *Client) ProbeSession(ctx context.Context, credential string) (*domain.User, error) {
	var out struct {
		User *domain.User `json:"user"`
	}
	if err := c.do(ctx, "auth_status", http.MethodGet, "/api/auth/status", credential, nil, nil, &out); err != nil {
		return nil, err
	}
	if out.User == nil {
		return nil, domain.ErrSessionNotFound
	}
	return out.User, nil
}

// Login submits credentials and captures the upstream session cookie from the
// response. The returned string is the Cookie header value for later calls.
func (c *Client) Login(ctx context.Context, username, password string) (*domain.User, string, error) {
	body := map[string]string{"username": username, "password": password}
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, "", fmt.Errorf("encode login payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/sales/login", bytes.NewReader(payload))
	if err != nil {
		return nil, "", fmt.Errorf("build login request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := c.http.Do(req)
	metrics.UpstreamRequestDuration.WithLabelValues("login").Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.UpstreamRequestsTotal.WithLabelValues("login", "transport_error").Inc()
		return nil, "", fmt.Errorf("%w: %v", domain.ErrBackendUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		metrics.UpstreamRequestsTotal.WithLabelValues("login", "upstream_error").Inc()
		return nil, "", upstreamError(resp)
	}
	metrics.UpstreamRequestsTotal.WithLabelValues("login", "ok").Inc()

	var out struct {
		User *domain.User `json:"user"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil || out.User == nil {
		return nil, "", fmt.Errorf("decode login response: %w", domain.ErrBackendUnavailable)
	}

	return out.User, cookieHeader(resp.Cookies()), nil
}

// Reachable checks whether the upstream answers at all. Any HTTP response
// counts; only a transport failure marks the backend unreachable.
func (c *Client) Reachable(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/auth/status", nil)
	if err != nil {
		return fmt.Errorf("build reachability request: %w", err)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrBackendUnavailable, err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}

// Logout invalidates the upstream session. The response body is ignored.
func (c *Client) Logout(ctx context.Context, credential string) error {
	return c.do(ctx, "logout", http.MethodPost, "/api/auth/logout", credential, nil, nil, nil)
}

func (c *Client) FetchStats(ctx context.Context, credential string) (*domain.DashboardStats, error) {
	var out domain.DashboardStats
	if err := c.do(ctx, "stats", http.MethodGet, "/api/sales/stats", credential, nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) ListOrders(ctx context.Context, credential string, filter domain.OrderFilter) ([]domain.Order, error) {
	q := url.Values{}
	addFilter(q, "status", filter.Status)
	addFilter(q, "availability", filter.Availability)
	addFilter(q, "customer", filter.Customer)

	var out struct {
		Orders []domain.Order `json:"orders"`
	}
	if err := c.do(ctx, "orders", http.MethodGet, "/api/sales/orders", credential, q, nil, &out); err != nil {
		return nil, err
	}
	return out.Orders, nil
}

func (c *Client) ListMaintenance(ctx context.Context, credential string, filter domain.MaintenanceFilter) ([]domain.MaintenanceRequest, error) {
	q := url.Values{}
	addFilter(q, "status", filter.Status)
	addFilter(q, "priority", filter.Priority)
	addFilter(q, "customer", filter.Customer)

	var out struct {
		MaintenanceRequests []domain.MaintenanceRequest `json:"maintenance_requests"`
	}
	if err := c.do(ctx, "maintenance", http.MethodGet, "/api/sales/maintenance", credential, q, nil, &out); err != nil {
		return nil, err
	}
	return out.MaintenanceRequests, nil
}

func (c *Client) ListHistory(ctx context.Context, credential string, filter domain.HistoryFilter) ([]domain.HistoryEntry, error) {
	q := url.Values{}
	addFilter(q, "type", filter.Type)
	// limit has no "all" sentinel and is always sent.
	limit := filter.Limit
	if limit <= 0 {
		limit = defaultHistoryLimit
	}
	q.Set("limit", strconv.Itoa(limit))

	var out struct {
		History []domain.HistoryEntry `json:"history"`
	}
	if err := c.do(ctx, "history", http.MethodGet, "/api/sales/history", credential, q, nil, &out); err != nil {
		return nil, err
	}
	return out.History, nil
}

func (c *Client) GetOrder(ctx context.Context, credential string, id int64) (*domain.Order, error) {
	var out struct {
		Order *domain.Order `json:"order"`
	}
	path := fmt.Sprintf("/api/orders/%d", id)
	if err := c.do(ctx, "order", http.MethodGet, path, credential, nil, nil, &out); err != nil {
		return nil, err
	}
	if out.Order == nil {
		return nil, domain.ErrRecordNotFound
	}
	return out.Order, nil
}

func (c *Client) UpdateOrder(ctx context.Context, credential string, id int64, update domain.OrderUpdate) error {
	path := fmt.Sprintf("/api/orders/%d", id)
	return c.do(ctx, "order_update", http.MethodPut, path, credential, nil, update, nil)
}

func (c *Client) GetMaintenance(ctx context.Context, credential string, id int64) (*domain.MaintenanceRequest, error) {
	var out struct {
		MaintenanceRequest *domain.MaintenanceRequest `json:"maintenance_request"`
	}
	path := fmt.Sprintf("/api/maintenance/%d", id)
	if err := c.do(ctx, "maintenance_record", http.MethodGet, path, credential, nil, nil, &out); err != nil {
		return nil, err
	}
	if out.MaintenanceRequest == nil {
		return nil, domain.ErrRecordNotFound
	}
	return out.MaintenanceRequest, nil
}

func (c *Client) UpdateMaintenance(ctx context.Context, credential string, id int64, update domain.MaintenanceUpdate) error {
	path := fmt.Sprintf("/api/maintenance/%d", id)
	return c.do(ctx, "maintenance_update", http.MethodPut, path, credential, nil, update, nil)
}

// do issues one request and decodes a 2xx JSON body into out (when non-nil).
// Non-2xx responses become *domain.UpstreamError carrying the server-supplied
// message; transport failures wrap domain.ErrBackendUnavailable.
func (c *Client) do(ctx context.Context, endpoint, method, path, credential string, query url.Values, body, out any) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode %s payload: %w", endpoint, err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return fmt.Errorf("build %s request: %w", endpoint, err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if credential != "" {
		req.Header.Set("Cookie", credential)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	metrics.UpstreamRequestDuration.WithLabelValues(endpoint).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.UpstreamRequestsTotal.WithLabelValues(endpoint, "transport_error").Inc()
		return fmt.Errorf("%w: %v", domain.ErrBackendUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		metrics.UpstreamRequestsTotal.WithLabelValues(endpoint, "upstream_error").Inc()
		if resp.StatusCode == http.StatusNotFound {
			return domain.ErrRecordNotFound
		}
		return upstreamError(resp)
	}
	metrics.UpstreamRequestsTotal.WithLabelValues(endpoint, "ok").Inc()

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s response: %w", endpoint, domain.ErrBackendUnavailable)
	}
	return nil
}

// addFilter appends a query parameter unless the filter is unset or holds the
// "all" sentinel. Omission is deliberate: an explicit "all" may mean something
// different to the backend than an absent parameter.
func addFilter(q url.Values, name, value string) {
	if value == "" || value == domain.FilterAll {
		return
	}
	q.Set(name, value)
}

// upstreamError extracts the {"error": ...} envelope when present.
func upstreamError(resp *http.Response) error {
	var envelope struct {
		Error string `json:"error"`
	}
	_ = json.NewDecoder(resp.Body).Decode(&envelope)
	return &domain.UpstreamError{Status: resp.StatusCode, Message: envelope.Error}
}

// cookieHeader serialises response cookies into a Cookie header value.
func cookieHeader(cookies []*http.Cookie) string {
	pairs := make([]string, 0, len(cookies))
	for _, c := range cookies {
		pairs = append(pairs, c.Name+"="+c.Value)
	}
	return strings.Join(pairs, "; ")
}
