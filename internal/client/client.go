// Package client implements the application side of the pantry: a typed API
// client plus the local state machinery built on top of it (collection
// store, derived views, debounced barcode lookup, duplicate-aware saving).
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/SimplyTil/HeimInventar/internal/core/apperror"
	"github.com/SimplyTil/HeimInventar/internal/domain/history"
	"github.com/SimplyTil/HeimInventar/internal/domain/product"
	"github.com/SimplyTil/HeimInventar/internal/domain/scan"
	"github.com/SimplyTil/HeimInventar/internal/domain/shopping"
	"github.com/SimplyTil/HeimInventar/internal/domain/stats"
	"github.com/SimplyTil/HeimInventar/internal/infrastructure/http/v1/dto"
)

// requestTimeout bounds every API call.
const requestTimeout = 10 * time.Second

// Client talks to the pantry API.
type Client struct {
	baseURL string
	http    *http.Client
}

// New creates an API client for the given base URL.
func New(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: requestTimeout},
	}
}

// ListProducts fetches the full item collection.
func (c *Client) ListProducts(ctx context.Context) ([]product.Item, error) {
	var items []product.Item
	if err := c.do(ctx, http.MethodGet, "/api/products", nil, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// CreateProduct saves a new item and returns its ID.
func (c *Client) CreateProduct(ctx context.Context, item *product.Item) (int64, error) {
	var resp dto.CreatedResponse
	if err := c.do(ctx, http.MethodPost, "/api/products", item, &resp); err != nil {
		return 0, err
	}
	return resp.ID, nil
}

// UpdateProduct replaces an item in full.
func (c *Client) UpdateProduct(ctx context.Context, item *product.Item) error {
	path := fmt.Sprintf("/api/products/%d", item.ID)
	return c.do(ctx, http.MethodPut, path, item, nil)
}

// DeleteProduct removes an item.
func (c *Client) DeleteProduct(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/api/products/%d", id), nil, nil)
}

// BatchApply runs one operation over many items.
func (c *Client) BatchApply(ctx context.Context, operation string, ids []int64, location string) error {
	req := dto.BatchRequest{Operation: operation, ProductIDs: ids, Location: location}
	return c.do(ctx, http.MethodPost, "/api/products/batch", req, nil)
}

// CheckDuplicate asks the server for existing items matching the barcode or
// name.
func (c *Client) CheckDuplicate(ctx context.Context, barcode, name string) (*dto.DuplicateCheckResponse, error) {
	req := dto.DuplicateCheckRequest{Barcode: barcode, Name: name}
	var resp dto.DuplicateCheckResponse
	if err := c.do(ctx, http.MethodPost, "/api/products/check-duplicate", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Scan resolves a barcode via the server-side food database proxy. An
// unknown barcode returns a Result with Found false.
func (c *Client) Scan(ctx context.Context, ean string) (*scan.Result, error) {
	var result scan.Result
	err := c.do(ctx, http.MethodGet, "/api/scan/"+ean, nil, &result)
	if err != nil {
		// A 404 carries a regular result body with Found false.
		if ae, ok := apperror.AsAppError(err); ok && ae.HTTPStatus == http.StatusNotFound {
			return &scan.Result{Found: false, Message: "Produkt nicht in der Datenbank gefunden"}, nil
		}
		return nil, err
	}
	return &result, nil
}

// Statistics fetches the dashboard overview.
func (c *Client) Statistics(ctx context.Context) (*stats.Basic, error) {
	var b stats.Basic
	if err := c.do(ctx, http.MethodGet, "/api/statistics", nil, &b); err != nil {
		return nil, err
	}
	return &b, nil
}

// AdvancedStatistics fetches waste and consumption aggregates.
func (c *Client) AdvancedStatistics(ctx context.Context) (*stats.Advanced, error) {
	var a stats.Advanced
	if err := c.do(ctx, http.MethodGet, "/api/statistics/advanced", nil, &a); err != nil {
		return nil, err
	}
	return &a, nil
}

// ShoppingList fetches all shopping list entries.
func (c *Client) ShoppingList(ctx context.Context) ([]shopping.Entry, error) {
	var entries []shopping.Entry
	if err := c.do(ctx, http.MethodGet, "/api/shopping-list", nil, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// AddShoppingItem creates a shopping list entry.
func (c *Client) AddShoppingItem(ctx context.Context, entry *shopping.Entry) error {
	return c.do(ctx, http.MethodPost, "/api/shopping-list", entry, nil)
}

// UpdateShoppingItem updates an entry, typically its checked state.
func (c *Client) UpdateShoppingItem(ctx context.Context, entry *shopping.Entry) error {
	path := fmt.Sprintf("/api/shopping-list/%d", entry.ID)
	return c.do(ctx, http.MethodPut, path, entry, nil)
}

// DeleteShoppingItem removes an entry.
func (c *Client) DeleteShoppingItem(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/api/shopping-list/%d", id), nil, nil)
}

// ClearCheckedShoppingItems removes every checked entry.
func (c *Client) ClearCheckedShoppingItems(ctx context.Context) error {
	return c.do(ctx, http.MethodDelete, "/api/shopping-list/clear-checked", nil, nil)
}

// GenerateShoppingList asks the server to add expired and low-stock items.
func (c *Client) GenerateShoppingList(ctx context.Context) (int, error) {
	var resp dto.GenerateResponse
	if err := c.do(ctx, http.MethodPost, "/api/shopping-list/generate", nil, &resp); err != nil {
		return 0, err
	}
	return resp.Count, nil
}

// BarcodeHistory fetches the most recently scanned barcodes.
func (c *Client) BarcodeHistory(ctx context.Context, limit int) ([]history.Entry, error) {
	path := fmt.Sprintf("/api/barcode-history?limit=%d", limit)
	var entries []history.Entry
	if err := c.do(ctx, http.MethodGet, path, nil, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encoding request: %w", err)
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return apperror.NewTransport("building request failed", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return apperror.NewTransport("Server nicht erreichbar", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		return c.asError(resp)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return apperror.NewTransport("decoding response failed", err)
		}
	}
	return nil
}

// asError rebuilds the structured error the server emitted, so callers can
// switch on the same codes on both sides of the wire.
func (c *Client) asError(resp *http.Response) error {
	var payload struct {
		Code    string         `json:"code"`
		Message string         `json:"message"`
		Details map[string]any `json:"details"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil || payload.Code == "" {
		return apperror.NewTransportStatus(
			fmt.Sprintf("Server antwortete mit Status %d", resp.StatusCode),
			resp.StatusCode,
		)
	}
	return &apperror.AppError{
		Code:       payload.Code,
		Message:    payload.Message,
		Details:    payload.Details,
		HTTPStatus: resp.StatusCode,
	}
}
