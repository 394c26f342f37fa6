package client

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SimplyTil/HeimInventar/internal/domain/scan"
)

func TestFormSession_ValidateRequiresName(t *testing.T) {
	f := NewFormSession(nil)

	problems := f.Validate()

	require.Contains(t, problems, "name")
	assert.Equal(t, "Name ist erforderlich", problems["name"])
}

func TestFormSession_ValidateQuantityRange(t *testing.T) {
	f := NewFormSession(nil)
	f.Request.Name = "Milch"
	quantity := 10000
	f.Request.Quantity = &quantity

	problems := f.Validate()

	require.Contains(t, problems, "quantity")
	assert.Equal(t, "Menge darf höchstens 9999 sein", problems["quantity"])
}

func TestFormSession_ValidateDates(t *testing.T) {
	f := NewFormSession(nil)
	f.Request.Name = "Milch"
	f.Request.ExpiryDate = "31.12.2026"

	problems := f.Validate()

	assert.Contains(t, problems, "expiry_date")
}

func TestFormSession_ValidateAcceptsCompleteForm(t *testing.T) {
	f := NewFormSession(nil)
	f.Request.Name = "Milch"
	f.Request.Barcode = "4008477040"
	f.Request.ExpiryDate = "2026-12-31"
	quantity := 2
	f.Request.Quantity = &quantity

	assert.Empty(t, f.Validate())
}

func TestFormSession_ApplyScanResultPrefills(t *testing.T) {
	f := NewFormSession(nil)

	f.ApplyScanResult(&scan.Result{
		Found:        true,
		Name:         "Bio Vollmilch",
		Category:     "Milchprodukte",
		Quantity:     "1L",
		Brands:       "Hofmolkerei",
		IsVegetarian: true,
	})

	assert.Equal(t, "Bio Vollmilch", f.Request.Name)
	assert.Equal(t, "Milchprodukte", f.Request.Category)
	assert.Equal(t, "1L", f.Request.WeightVolume)
	assert.Equal(t, "Hofmolkerei", f.Request.Tags)
	assert.True(t, f.Request.IsVegetarian)
	assert.False(t, f.Request.IsVegan)
}

func TestFormSession_ApplyScanResultKeepsUserInput(t *testing.T) {
	f := NewFormSession(nil)
	f.Request.Name = "Meine Milch"

	f.ApplyScanResult(&scan.Result{Found: true, Name: "Bio Vollmilch", Category: "Milchprodukte"})

	assert.Equal(t, "Meine Milch", f.Request.Name)
	assert.Equal(t, "Milchprodukte", f.Request.Category)
}

func TestFormSession_ApplyScanResultIgnoresMiss(t *testing.T) {
	f := NewFormSession(nil)

	f.ApplyScanResult(&scan.Result{Found: false, Name: "sollte nicht erscheinen"})
	f.ApplyScanResult(nil)

	assert.Empty(t, f.Request.Name)
}

func TestFormSession_SetBarcodeArmsGate(t *testing.T) {
	rec := &gateRecorder{}
	gate := NewGate(20*time.Millisecond, 8, rec.record)
	f := NewFormSession(gate)

	f.SetBarcode(" 4008477040 ")

	assert.Equal(t, "4008477040", f.Request.Barcode)
	waitFor(t, func() bool { return len(rec.all()) == 1 })
	assert.Equal(t, "4008477040", rec.all()[0])
}

func TestFormSession_CloseCancelsPendingLookup(t *testing.T) {
	rec := &gateRecorder{}
	gate := NewGate(30*time.Millisecond, 8, rec.record)
	f := NewFormSession(gate)

	f.SetBarcode("4008477040")
	f.Close()

	time.Sleep(80 * time.Millisecond)
	assert.Empty(t, rec.all())
}

func TestFormSession_CloseReleasesScanner(t *testing.T) {
	device := &deviceMock{}
	f := NewFormSession(nil)
	f.AttachScanner(NewScanSession(device, &detectorMock{}, testLogger(t), func(string) {}))

	f.Close()
	f.Close()

	assert.Equal(t, int32(1), device.stops.Load())
}

func TestFormSession_ToItemDefaultsQuantity(t *testing.T) {
	f := NewFormSession(nil)
	f.Request.Name = "Milch"

	item := f.ToItem()

	assert.Equal(t, 1, item.Quantity)
}
