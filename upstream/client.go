// Package upstream is the typed client for the remote sagra backend API.
// Every call is a single request: no retry, no refresh, no cancellation
// policy beyond the caller's context.
package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"sagra/models"
)

// ErrNotFound marks a lookup the backend answered with an empty body or
// empty object.
var ErrNotFound = errors.New("upstream: not found")

// StatusError is any non-success HTTP response from the backend.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("upstream: unexpected status %d: %s", e.Code, e.Body)
}

// TokenSource supplies the bearer token attached to admin calls.
type TokenSource interface {
	Token() string
}

type Client struct {
	baseURL string
	http    *http.Client
	tokens  TokenSource
}

// New builds a client for the API at baseURL. tokens may be nil for a
// storefront-only client that never calls authenticated endpoints.
func New(baseURL string, tokens TokenSource) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    http.DefaultClient,
		tokens:  tokens,
	}
}

func (c *Client) do(ctx context.Context, method, path string, body any, out any, auth bool) error {
	var payload io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		payload = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, payload)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if auth && c.tokens != nil {
		if token := c.tokens.Token(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &StatusError{Code: resp.StatusCode, Body: strings.TrimSpace(string(raw))}
	}
	if out == nil || len(raw) == 0 {
		return nil
	}
	return json.Unmarshal(raw, out)
}

func (c *Client) ListDishes(ctx context.Context) ([]models.Dish, error) {
	var dishes []models.Dish
	if err := c.do(ctx, http.MethodGet, "/dishes", nil, &dishes, false); err != nil {
		return nil, err
	}
	return dishes, nil
}

func (c *Client) CreateDish(ctx context.Context, dish models.Dish) (models.Dish, error) {
	var created models.Dish
	if err := c.do(ctx, http.MethodPost, "/dishes", dish, &created, true); err != nil {
		return models.Dish{}, err
	}
	return created, nil
}

func (c *Client) UpdateDish(ctx context.Context, dish models.Dish) (models.Dish, error) {
	var updated models.Dish
	if err := c.do(ctx, http.MethodPut, "/dishes/"+dish.ID, dish, &updated, true); err != nil {
		return models.Dish{}, err
	}
	return updated, nil
}

func (c *Client) DeleteDish(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/dishes/"+id, nil, nil, true)
}

func (c *Client) ListOrders(ctx context.Context) ([]models.Order, error) {
	var orders []models.Order
	if err := c.do(ctx, http.MethodGet, "/orders", nil, &orders, true); err != nil {
		return nil, err
	}
	return orders, nil
}

// GetOrder fetches one order. The backend answers unknown ids with an
// empty object rather than a 404; both map to ErrNotFound here.
func (c *Client) GetOrder(ctx context.Context, id string) (models.Order, error) {
	var raw json.RawMessage
	if err := c.do(ctx, http.MethodGet, "/orders/"+id, nil, &raw, false); err != nil {
		return models.Order{}, err
	}
	trimmed := strings.TrimSpace(string(raw))
	if trimmed == "" || trimmed == "{}" || trimmed == "null" {
		return models.Order{}, ErrNotFound
	}
	var order models.Order
	if err := json.Unmarshal(raw, &order); err != nil {
		return models.Order{}, err
	}
	if order.ID == "" {
		return models.Order{}, ErrNotFound
	}
	return order, nil
}

func (c *Client) CreateOrder(ctx context.Context, sub models.OrderSubmission) (models.Order, error) {
	var created models.Order
	if err := c.do(ctx, http.MethodPost, "/orders", sub, &created, false); err != nil {
		return models.Order{}, err
	}
	return created, nil
}

func (c *Client) UpdateOrderStatus(ctx context.Context, id string, status models.OrderStatus) error {
	body := map[string]models.OrderStatus{"status": status}
	return c.do(ctx, http.MethodPatch, "/orders/"+id+"/status", body, nil, true)
}

func (c *Client) PrintOrder(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodPost, "/orders/"+id+"/print", nil, nil, true)
}

// Login exchanges credentials for an access token.
func (c *Client) Login(ctx context.Context, username, password string) (string, error) {
	body := map[string]string{"username": username, "password": password}
	var out struct {
		AccessToken string `json:"access_token"`
	}
	if err := c.do(ctx, http.MethodPost, "/auth/login", body, &out, false); err != nil {
		return "", err
	}
	if out.AccessToken == "" {
		return "", errors.New("upstream: login response missing access_token")
	}
	return out.AccessToken, nil
}
