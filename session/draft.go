// Package session holds the per-user draft invoice: the working set of line
// items, the selected buyer and the invoice options. Drafts live only in
// memory and are never persisted; generating a PDF does not clear them.
package session

import (
	"errors"
	"sync"
	"time"

	"taxinvoice-backend/billing"
	"taxinvoice-backend/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrLineNotFound    = errors.New("line item not found in draft")
	ErrStockLimit      = errors.New("quantity exceeds available stock")
	ErrInvalidQuantity = errors.New("quantity must be positive")
	ErrInvalidDiscount = errors.New("discount must be between 0 and 100")
)

// Options are pass-through invoice settings with no computed invariants.
type Options struct {
	PaymentTerms  string    `json:"paymentTerms"`
	DueDate       time.Time `json:"dueDate"`
	Notes         string    `json:"notes"`
	TransportMode string    `json:"transportMode"`
	VehicleNo     string    `json:"vehicleNo"`
}

// DefaultOptions mirrors the form defaults: 30-day terms, road transport.
func DefaultOptions() Options {
	return Options{
		PaymentTerms:  "30days",
		DueDate:       time.Now().AddDate(0, 0, 30),
		TransportMode: "road",
	}
}

// DraftLine is a read-only snapshot of an inventory item taken when it was
// added, plus the mutable quantity and discount. Stock is the ceiling for
// quantity updates, frozen at add time.
type DraftLine struct {
	ID       uuid.UUID `json:"id"`
	ItemID   uuid.UUID `json:"itemId"`
	Name     string    `json:"name"`
	HSN      string    `json:"hsn"`
	Unit     string    `json:"unit"`
	Rate     float64   `json:"rate"`
	GSTRate  float64   `json:"gstRate"`
	Stock    int       `json:"stock"`
	Quantity int       `json:"quantity"`
	Discount float64   `json:"discount"` // percentage
}

// Draft is one user's in-progress invoice.
type Draft struct {
	Lines     []DraftLine `json:"lines"`
	CompanyID *uuid.UUID  `json:"companyId"`
	Options   Options     `json:"options"`
	UpdatedAt time.Time   `json:"updatedAt"`
}

// Store keeps one draft per user. A mutex guards the map because gin serves
// requests concurrently even though each user drives a single form.
type Store struct {
	mu     sync.Mutex
	drafts map[uuid.UUID]*Draft
}

func NewStore() *Store {
	return &Store{drafts: make(map[uuid.UUID]*Draft)}
}

func (s *Store) draft(userID uuid.UUID) *Draft {
	d, ok := s.drafts[userID]
	if !ok {
		d = &Draft{Options: DefaultOptions()}
		s.drafts[userID] = d
	}
	d.UpdatedAt = time.Now()
	return d
}

// Get returns a copy of the user's draft.
func (s *Store) Get(userID uuid.UUID) Draft {
	s.mu.Lock()
	defer s.mu.Unlock()

	d := s.draft(userID)
	out := *d
	out.Lines = append([]DraftLine(nil), d.Lines...)
	return out
}

// AddItem adds an inventory item to the draft. Adding an item that is already
// on the draft increments its quantity instead of creating a second line;
// the increment is refused once quantity reaches the stock ceiling.
func (s *Store) AddItem(userID uuid.UUID, item models.InventoryItem) (DraftLine, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	d := s.draft(userID)
	for i := range d.Lines {
		if d.Lines[i].ItemID == item.ID {
			if d.Lines[i].Quantity >= d.Lines[i].Stock {
				return d.Lines[i], ErrStockLimit
			}
			d.Lines[i].Quantity++
			return d.Lines[i], nil
		}
	}

	line := DraftLine{
		ID:       uuid.New(),
		ItemID:   item.ID,
		Name:     item.Name,
		HSN:      item.HSN,
		Unit:     item.Unit,
		Rate:     item.Rate,
		GSTRate:  item.GSTRate,
		Stock:    item.Stock,
		Quantity: 1,
	}
	d.Lines = append(d.Lines, line)
	return line, nil
}

// UpdateLine applies quantity and/or discount changes to one line. Every
// value is validated before anything is written, so a rejected update leaves
// the line exactly as it was. Exceeding the stock ceiling counts as a
// rejection too.
func (s *Store) UpdateLine(userID, lineID uuid.UUID, quantity *int, discount *float64) error {
	if quantity != nil && *quantity <= 0 {
		return ErrInvalidQuantity
	}
	if discount != nil && (*discount < 0 || *discount > 100) {
		return ErrInvalidDiscount
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	d := s.draft(userID)
	for i := range d.Lines {
		if d.Lines[i].ID == lineID {
			if quantity != nil && *quantity > d.Lines[i].Stock {
				return ErrStockLimit
			}
			if quantity != nil {
				d.Lines[i].Quantity = *quantity
			}
			if discount != nil {
				d.Lines[i].Discount = *discount
			}
			return nil
		}
	}
	return ErrLineNotFound
}

// UpdateQuantity sets a line's quantity.
func (s *Store) UpdateQuantity(userID, lineID uuid.UUID, quantity int) error {
	return s.UpdateLine(userID, lineID, &quantity, nil)
}

// UpdateDiscount sets a line's discount percentage.
func (s *Store) UpdateDiscount(userID, lineID uuid.UUID, discount float64) error {
	return s.UpdateLine(userID, lineID, nil, &discount)
}

// RemoveLine deletes one line from the draft.
func (s *Store) RemoveLine(userID, lineID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	d := s.draft(userID)
	for i := range d.Lines {
		if d.Lines[i].ID == lineID {
			d.Lines = append(d.Lines[:i], d.Lines[i+1:]...)
			return nil
		}
	}
	return ErrLineNotFound
}

// SelectCompany sets the buyer for the draft.
func (s *Store) SelectCompany(userID, companyID uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.draft(userID).CompanyID = &companyID
}

// SetOptions replaces the draft's invoice options.
func (s *Store) SetOptions(userID uuid.UUID, opts Options) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.draft(userID).Options = opts
}

// Clear resets the draft to empty: no lines, no company, default options.
func (s *Store) Clear(userID uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.drafts[userID] = &Draft{Options: DefaultOptions(), UpdatedAt: time.Now()}
}

// BillingLines converts the draft's lines into aggregator input.
func (d Draft) BillingLines() []billing.Line {
	lines := make([]billing.Line, 0, len(d.Lines))
	for _, l := range d.Lines {
		rate := decimal.NewFromFloat(l.GSTRate)
		lines = append(lines, billing.Line{
			Name:     l.Name,
			HSN:      l.HSN,
			Quantity: l.Quantity,
			Unit:     l.Unit,
			Rate:     decimal.NewFromFloat(l.Rate),
			Discount: decimal.NewFromFloat(l.Discount),
			GSTRate:  &rate,
		})
	}
	return lines
}

// ExpireIdle drops drafts untouched for longer than maxIdle and reports how
// many were evicted. Called from the scheduler; drafts are memory-only, so
// abandoned sessions would otherwise accumulate forever.
func (s *Store) ExpireIdle(maxIdle time.Duration) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := time.Now().Add(-maxIdle)
	evicted := 0
	for userID, d := range s.drafts {
		if d.UpdatedAt.Before(cutoff) {
			delete(s.drafts, userID)
			evicted++
		}
	}
	return evicted
}
