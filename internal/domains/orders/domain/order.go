package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Status enumerates order progression. Orders are created in progress and
// never transition.
type Status string

const StatusInProgress Status = "EN_COURS"

// MoneyPlaces is the scale line prices and totals are stored with.
const MoneyPlaces = 2

var (
	ErrEmptyOwner        = errors.New("order owner is required")
	ErrInvalidProductID  = errors.New("product id must be greater than zero")
	ErrInvalidQuantity   = errors.New("quantity must be greater than zero")
	ErrNegativeLinePrice = errors.New("line price must not be negative")
	ErrTotalMismatch     = errors.New("order total does not match its lines")
)

// RequestedLine is a line as submitted by a client, before pricing.
type RequestedLine struct {
	ProductID int64
	Quantity  int32
}

// Validate checks the line in isolation.
func (l RequestedLine) Validate() error {
	if l.ProductID <= 0 {
		return ErrInvalidProductID
	}
	if l.Quantity <= 0 {
		return ErrInvalidQuantity
	}
	return nil
}

// LineError ties a line validation failure to its position in the request.
type LineError struct {
	Index int
	Err   error
}

func (e *LineError) Error() string {
	return fmt.Sprintf("line %d: %s", e.Index, e.Err)
}

func (e *LineError) Unwrap() error { return e.Err }

// ValidateRequest checks every requested line and reports the first offender.
func ValidateRequest(lines []RequestedLine) error {
	for i, line := range lines {
		if err := line.Validate(); err != nil {
			return &LineError{Index: i, Err: err}
		}
	}
	return nil
}

// Line is a priced order line. Price is the product price captured when the
// order was created.
type Line struct {
	ID        int64
	ProductID int64
	Quantity  int32
	Price     decimal.Decimal
}

// Subtotal is price times quantity.
func (l Line) Subtotal() decimal.Decimal {
	return l.Price.Mul(decimal.NewFromInt32(l.Quantity))
}

// Order models a client purchase with its lines.
type Order struct {
	ID        int64
	CreatedAt time.Time
	Status    Status
	Total     decimal.Decimal
	Owner     string
	Lines     []Line
}

// NewOrder prices a new order for the owner. The total is computed once from
// the lines.
func NewOrder(owner string, lines []Line, createdAt time.Time) (*Order, error) {
	order := &Order{
		CreatedAt: createdAt,
		Status:    StatusInProgress,
		Owner:     strings.TrimSpace(owner),
		Lines:     append([]Line(nil), lines...),
		Total:     SumLines(lines),
	}
	if err := order.Validate(); err != nil {
		return nil, err
	}
	return order, nil
}

// SumLines adds up line subtotals.
func SumLines(lines []Line) decimal.Decimal {
	total := decimal.Zero
	for _, line := range lines {
		total = total.Add(line.Subtotal())
	}
	return total
}

// Validate enforces invariants on the aggregate.
func (o *Order) Validate() error {
	if strings.TrimSpace(o.Owner) == "" {
		return ErrEmptyOwner
	}
	for i, line := range o.Lines {
		if err := (RequestedLine{ProductID: line.ProductID, Quantity: line.Quantity}).Validate(); err != nil {
			return &LineError{Index: i, Err: err}
		}
		if line.Price.IsNegative() {
			return &LineError{Index: i, Err: ErrNegativeLinePrice}
		}
	}
	if !o.Total.Equal(SumLines(o.Lines)) {
		return ErrTotalMismatch
	}
	return nil
}

// Clone returns a deep copy so stores never share line slices with callers.
func (o *Order) Clone() *Order {
	if o == nil {
		return nil
	}
	clone := *o
	clone.Lines = append([]Line(nil), o.Lines...)
	return &clone
}
