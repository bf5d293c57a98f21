package api

import (
	"Storefront/models"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

var ErrCheckoutFailed = errors.New("failed to clear the cart")

// StatusError is returned for any non-2xx backend response.
type StatusError struct {
	Method     string
	Path       string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s %s: unexpected status %d", e.Method, e.Path, e.StatusCode)
}

// Client talks to the inventory and cart resources of the backend.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger
}

func NewClient(baseURL string, httpClient *http.Client, logger *zap.Logger) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
		logger:     logger,
	}
}

func (c *Client) GetInventory(ctx context.Context) ([]models.InventoryItem, error) {
	var inventory []models.InventoryItem
	if err := c.do(ctx, http.MethodGet, "/inventory", nil, &inventory); err != nil {
		return nil, err
	}
	return inventory, nil
}

func (c *Client) GetCart(ctx context.Context) ([]models.CartItem, error) {
	var cart []models.CartItem
	if err := c.do(ctx, http.MethodGet, "/cart", nil, &cart); err != nil {
		return nil, err
	}
	return cart, nil
}

func (c *Client) AddToCart(ctx context.Context, item models.CartItem) (models.CartItem, error) {
	var saved models.CartItem
	err := c.do(ctx, http.MethodPost, "/cart", item, &saved)
	return saved, err
}

func (c *Client) UpdateCart(ctx context.Context, id, newAmount int) (models.CartItem, error) {
	var saved models.CartItem
	err := c.do(ctx, http.MethodPut, cartItemPath(id), models.QuantityUpdate{Quantity: newAmount}, &saved)
	return saved, err
}

func (c *Client) DeleteFromCart(ctx context.Context, id int) error {
	return c.do(ctx, http.MethodDelete, cartItemPath(id), nil, nil)
}

// Checkout clears the whole cart on the backend in one call.
func (c *Client) Checkout(ctx context.Context) error {
	err := c.do(ctx, http.MethodDelete, "/cart", nil, nil)
	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		return fmt.Errorf("%w: %w", ErrCheckoutFailed, err)
	}
	return err
}

func cartItemPath(id int) string {
	return "/cart/" + strconv.Itoa(id)
}

// do sends body as JSON when non-nil and decodes a non-empty response into
// out when out is non-nil.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("%s %s: encode body: %w", method, path, err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%s %s: read body: %w", method, path, err)
	}

	c.logger.Debug("backend call",
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", resp.StatusCode),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &StatusError{Method: method, Path: path, StatusCode: resp.StatusCode}
	}

	if out == nil || len(bytes.TrimSpace(payload)) == 0 {
		return nil
	}
	if err := json.Unmarshal(payload, out); err != nil {
		return fmt.Errorf("%s %s: decode body: %w", method, path, err)
	}
	return nil
}
