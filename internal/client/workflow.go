package client

import (
	"context"
	"sync"

	"github.com/SimplyTil/HeimInventar/internal/core/apperror"
	"github.com/SimplyTil/HeimInventar/internal/domain/product"
	"github.com/SimplyTil/HeimInventar/internal/infrastructure/http/v1/dto"
)

// SaveState is the phase of the save workflow.
type SaveState int

const (
	// StateIdle accepts a new save.
	StateIdle SaveState = iota

	// StateChecking runs the duplicate check; further saves are rejected.
	StateChecking

	// StateAwaitingChoice holds the pending item until the user decides
	// between merging and inserting.
	StateAwaitingChoice
)

// ErrSaveInProgress rejects a save while another one is still running.
var ErrSaveInProgress = apperror.NewValidation("Ein Speichervorgang läuft bereits")

// SaveAPI is the slice of the API the workflow needs.
type SaveAPI interface {
	CheckDuplicate(ctx context.Context, barcode, name string) (*dto.DuplicateCheckResponse, error)
	CreateProduct(ctx context.Context, item *product.Item) (int64, error)
	UpdateProduct(ctx context.Context, item *product.Item) error
}

// Outcome is the result of a save attempt.
type Outcome struct {
	// Saved is true once the item was persisted. When false, Candidates
	// holds the potential duplicates awaiting a user decision.
	Saved      bool
	ID         int64
	Candidates []product.Item
}

// SaveWorkflow drives a duplicate-aware save. New items are checked against
// the existing stock first; when candidates exist, the save parks until the
// user chooses to merge into one of them or insert anyway. Exactly one
// persistence call results from any completed path.
type SaveWorkflow struct {
	api SaveAPI

	mu         sync.Mutex
	state      SaveState
	pending    *product.Item
	candidates []product.Item
}

// NewSaveWorkflow creates an idle workflow.
func NewSaveWorkflow(api SaveAPI) *SaveWorkflow {
	return &SaveWorkflow{api: api}
}

// State returns the current phase.
func (w *SaveWorkflow) State() SaveState {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.state
}

// Begin starts a save. Edits of an existing item skip the duplicate check
// and update directly. A second Begin while one is in flight returns
// ErrSaveInProgress without touching the running save.
func (w *SaveWorkflow) Begin(ctx context.Context, item *product.Item, isEdit bool) (*Outcome, error) {
	w.mu.Lock()
	if w.state != StateIdle {
		w.mu.Unlock()
		return nil, ErrSaveInProgress
	}
	w.state = StateChecking
	w.mu.Unlock()

	if isEdit {
		if err := w.api.UpdateProduct(ctx, item); err != nil {
			w.reset()
			return nil, err
		}
		w.reset()
		return &Outcome{Saved: true, ID: item.ID}, nil
	}

	check, err := w.api.CheckDuplicate(ctx, item.Barcode, item.Name)
	if err != nil {
		w.reset()
		return nil, err
	}

	// A Found flag without candidates cannot be resolved; save directly.
	if check.Found && len(check.Duplicates) > 0 {
		w.mu.Lock()
		w.state = StateAwaitingChoice
		w.pending = item
		w.candidates = check.Duplicates
		w.mu.Unlock()
		return &Outcome{Saved: false, Candidates: check.Duplicates}, nil
	}

	id, err := w.api.CreateProduct(ctx, item)
	if err != nil {
		w.reset()
		return nil, err
	}
	w.reset()
	return &Outcome{Saved: true, ID: id}, nil
}

// Merge resolves a parked save by adding the pending quantity onto the
// first candidate and updating that record in full. The pending item itself
// is never inserted.
func (w *SaveWorkflow) Merge(ctx context.Context) (*Outcome, error) {
	w.mu.Lock()
	if w.state != StateAwaitingChoice {
		w.mu.Unlock()
		return nil, apperror.NewValidation("Keine Duplikat-Entscheidung offen")
	}
	target := w.candidates[0]
	target.Quantity += w.pending.Quantity
	w.state = StateChecking
	w.mu.Unlock()

	if err := w.api.UpdateProduct(ctx, &target); err != nil {
		w.reset()
		return nil, err
	}
	w.reset()
	return &Outcome{Saved: true, ID: target.ID}, nil
}

// InsertNew resolves a parked save by inserting the pending item as its own
// record. The duplicate check is not repeated.
func (w *SaveWorkflow) InsertNew(ctx context.Context) (*Outcome, error) {
	w.mu.Lock()
	if w.state != StateAwaitingChoice {
		w.mu.Unlock()
		return nil, apperror.NewValidation("Keine Duplikat-Entscheidung offen")
	}
	pending := w.pending
	w.state = StateChecking
	w.mu.Unlock()

	id, err := w.api.CreateProduct(ctx, pending)
	if err != nil {
		w.reset()
		return nil, err
	}
	w.reset()
	return &Outcome{Saved: true, ID: id}, nil
}

// Cancel discards a parked save without persisting anything.
func (w *SaveWorkflow) Cancel() {
	w.reset()
}

func (w *SaveWorkflow) reset() {
	w.mu.Lock()
	w.state = StateIdle
	w.pending = nil
	w.candidates = nil
	w.mu.Unlock()
}
