package client

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/SimplyTil/HeimInventar/internal/domain/product"
	"github.com/SimplyTil/HeimInventar/internal/domain/scan"
	"github.com/SimplyTil/HeimInventar/internal/infrastructure/http/v1/dto"
)

// formValidate reads the same binding tags gin enforces server-side, so
// the form rejects exactly what the API would reject.
var formValidate = newFormValidator()

func newFormValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.SetTagName("binding")
	return v
}

// fieldMessages maps validation failures to the messages shown on the form.
var fieldMessages = map[string]string{
	"Name.required":         "Name ist erforderlich",
	"Name.max":              "Name ist zu lang",
	"Quantity.min":          "Menge muss mindestens 1 sein",
	"Quantity.max":          "Menge darf höchstens 9999 sein",
	"ExpiryDate.datetime":   "Ungültiges Ablaufdatum",
	"PurchaseDate.datetime": "Ungültiges Kaufdatum",
}

// FormSession is the state of the product entry form: the request being
// edited, the barcode lookup gate behind the EAN field, and an optional
// live scanner session. Closing the session tears down both.
type FormSession struct {
	Request dto.ProductRequest

	gate    *Gate
	scanner *ScanSession
}

// NewFormSession creates a form whose barcode field triggers lookups
// through the gate.
func NewFormSession(gate *Gate) *FormSession {
	return &FormSession{gate: gate}
}

// SetBarcode updates the EAN field and arms the lookup gate. Each keystroke
// resets the pending lookup so only the final value reaches the network.
func (f *FormSession) SetBarcode(ean string) {
	f.Request.Barcode = strings.TrimSpace(ean)
	if f.gate != nil {
		f.gate.Trigger(f.Request.Barcode)
	}
}

// AttachScanner registers a running scan session so Close can release the
// camera. Any previously attached session is closed first.
func (f *FormSession) AttachScanner(s *ScanSession) {
	if f.scanner != nil {
		f.scanner.Close()
	}
	f.scanner = s
}

// ApplyScanResult prefills the form from a barcode lookup. Fields the user
// already filled in are kept.
func (f *FormSession) ApplyScanResult(r *scan.Result) {
	if r == nil || !r.Found {
		return
	}
	if f.Request.Name == "" {
		f.Request.Name = r.Name
	}
	if f.Request.ImageURL == "" {
		f.Request.ImageURL = r.ImageURL
	}
	if f.Request.WeightVolume == "" {
		f.Request.WeightVolume = r.Quantity
	}
	if f.Request.Category == "" {
		f.Request.Category = r.Category
	}
	if f.Request.Tags == "" {
		f.Request.Tags = r.Brands
	}
	f.Request.IsVegetarian = f.Request.IsVegetarian || r.IsVegetarian
	f.Request.IsVegan = f.Request.IsVegan || r.IsVegan
}

// Validate checks the form against the same rules the server enforces and
// returns per-field messages, keyed by JSON field name. An empty map means
// the form can be submitted.
func (f *FormSession) Validate() map[string]string {
	problems := make(map[string]string)

	err := formValidate.Struct(f.Request)
	if err == nil {
		return problems
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		problems["form"] = "Ungültige Eingabe"
		return problems
	}
	for _, fe := range verrs {
		key := fe.StructField() + "." + fe.Tag()
		msg, ok := fieldMessages[key]
		if !ok {
			msg = "Ungültiger Wert"
		}
		problems[jsonFieldName(fe.StructField())] = msg
	}
	return problems
}

// ToItem converts the validated form into a domain item.
func (f *FormSession) ToItem() *product.Item {
	return f.Request.ToItem()
}

// Close cancels any pending barcode lookup and releases an attached
// scanner. Safe to call more than once.
func (f *FormSession) Close() {
	if f.gate != nil {
		f.gate.Cancel()
	}
	if f.scanner != nil {
		f.scanner.Close()
		f.scanner = nil
	}
}

func jsonFieldName(structField string) string {
	switch structField {
	case "Barcode":
		return "ean"
	case "Name":
		return "name"
	case "ExpiryDate":
		return "expiry_date"
	case "PurchaseDate":
		return "purchase_date"
	case "Location":
		return "location"
	case "Quantity":
		return "quantity"
	case "WeightVolume":
		return "weight_volume"
	case "Notes":
		return "notes"
	case "Category":
		return "category"
	case "Tags":
		return "tags"
	default:
		return strings.ToLower(structField)
	}
}
