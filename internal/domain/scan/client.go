// Package scan resolves barcodes against the Open Food Facts database and
// records every successful lookup in the barcode history.
package scan

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"regexp"
	"strings"
	"time"

	"github.com/SimplyTil/HeimInventar/internal/core/apperror"
)

// DefaultBaseURL is the public Open Food Facts endpoint.
const DefaultBaseURL = "https://world.openfoodfacts.org"

// lookupTimeout bounds every upstream request. A slow food database must
// never stall the scanner UI.
const lookupTimeout = 5 * time.Second

const userAgent = "HeimInventar/1.0"

// eanPattern accepts EAN-8 through EAN-13, digits only.
var eanPattern = regexp.MustCompile(`^\d{8,13}$`)

// Result is the outcome of a barcode lookup.
type Result struct {
	Found        bool   `json:"found"`
	Name         string `json:"name,omitempty"`
	ImageURL     string `json:"image_url,omitempty"`
	Quantity     string `json:"quantity,omitempty"`
	Brands       string `json:"brands,omitempty"`
	Category     string `json:"category,omitempty"`
	IsVegetarian bool   `json:"is_vegetarian,omitempty"`
	IsVegan      bool   `json:"is_vegan,omitempty"`
	Message      string `json:"message,omitempty"`
}

// offResponse is the subset of the Open Food Facts payload we consume.
type offResponse struct {
	Status  int `json:"status"`
	Product struct {
		ProductName string `json:"product_name"`
		ImageURL    string `json:"image_url"`
		Quantity    string `json:"quantity"`
		Brands      string `json:"brands"`
		Categories  string `json:"categories"`
	} `json:"product"`
}

// Client queries the Open Food Facts product API.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient creates a lookup client. An empty baseURL selects the public
// endpoint.
func NewClient(baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: lookupTimeout},
	}
}

// ValidateEAN reports whether the barcode has a plausible EAN shape.
func ValidateEAN(ean string) error {
	if !eanPattern.MatchString(ean) {
		return apperror.NewValidation("Invalid EAN format").
			WithDetail("ean", ean)
	}
	return nil
}

// Lookup fetches product metadata for the barcode. A barcode unknown to the
// database yields a Result with Found false and a user-facing message,
// not an error.
func (c *Client) Lookup(ctx context.Context, ean string) (*Result, error) {
	if err := ValidateEAN(ean); err != nil {
		return nil, err
	}

	url := fmt.Sprintf("%s/api/v0/product/%s.json", c.baseURL, ean)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, apperror.NewTransport("Fehler bei der Verbindung zur externen API", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		if isTimeout(err) {
			return nil, apperror.NewTransportStatus("API-Anfrage hat zu lange gedauert", http.StatusGatewayTimeout)
		}
		return nil, apperror.NewTransport("Fehler bei der Verbindung zur externen API", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		return nil, apperror.NewTransportStatus(
			fmt.Sprintf("Externe API antwortete mit Status %d", resp.StatusCode),
			http.StatusBadGateway,
		)
	}

	var payload offResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, apperror.NewTransport("Fehler bei der Verbindung zur externen API", err)
	}

	if payload.Status != 1 {
		return &Result{Found: false, Message: "Produkt nicht in der Datenbank gefunden"}, nil
	}

	p := payload.Product
	name := truncate(p.ProductName, 200)
	if name == "" {
		name = "Unbekanntes Produkt"
	}

	categories := strings.ToLower(p.Categories)
	return &Result{
		Found:        true,
		Name:         name,
		ImageURL:     truncate(p.ImageURL, 500),
		Quantity:     truncate(p.Quantity, 50),
		Brands:       truncate(p.Brands, 200),
		Category:     firstCategory(p.Categories),
		IsVegetarian: strings.Contains(categories, "vegetarian"),
		IsVegan:      strings.Contains(categories, "vegan"),
	}, nil
}

func firstCategory(categories string) string {
	if categories == "" {
		return ""
	}
	first, _, _ := strings.Cut(categories, ",")
	return strings.TrimSpace(first)
}

func truncate(s string, maxLen int) string {
	if len(s) > maxLen {
		return s[:maxLen]
	}
	return s
}

func isTimeout(err error) bool {
	var timeout interface{ Timeout() bool }
	if errors.As(err, &timeout) && timeout.Timeout() {
		return true
	}
	return errors.Is(err, os.ErrDeadlineExceeded) || errors.Is(err, context.DeadlineExceeded)
}
