package application

import (
	"context"
	"errors"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/Apurer/go-gin-shop/internal/domains/orders/domain"
	"github.com/Apurer/go-gin-shop/internal/domains/orders/ports"
)

const (
	DefaultLookupTimeout     = 3 * time.Second
	DefaultLookupConcurrency = 4
)

// Service orchestrates order use cases. CreateOrder is the only place where
// the catalog is consulted.
type Service struct {
	repo          ports.Repository
	lookup        ports.ProductLookup
	now           func() time.Time
	lookupTimeout time.Duration
	concurrency   int
}

// Option configures optional Service behavior.
type Option func(*Service)

// WithClock overrides the creation timestamp source.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// WithLookupTimeout bounds each individual catalog lookup.
func WithLookupTimeout(timeout time.Duration) Option {
	return func(s *Service) {
		if timeout > 0 {
			s.lookupTimeout = timeout
		}
	}
}

// WithLookupConcurrency bounds how many catalog lookups run at once for one order.
func WithLookupConcurrency(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.concurrency = n
		}
	}
}

func NewService(repo ports.Repository, lookup ports.ProductLookup, opts ...Option) *Service {
	s := &Service{
		repo:          repo,
		lookup:        lookup,
		now:           time.Now,
		lookupTimeout: DefaultLookupTimeout,
		concurrency:   DefaultLookupConcurrency,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// CreateOrder validates every line against the catalog, snapshots prices,
// and persists the order with its lines. Nothing is persisted on failure.
// Lines are evaluated in request order and the first failing line decides
// the returned error.
func (s *Service) CreateOrder(ctx context.Context, owner string, lines []domain.RequestedLine) (*domain.Order, error) {
	owner = strings.TrimSpace(owner)
	if owner == "" {
		return nil, mapError(domain.ErrEmptyOwner)
	}
	if err := domain.ValidateRequest(lines); err != nil {
		return nil, mapError(err)
	}
	if s.lookup == nil {
		return nil, errors.New("product lookup not configured")
	}

	snapshots := s.lookupProducts(ctx, lines)
	priced := make([]domain.Line, 0, len(lines))
	for _, line := range lines {
		res := snapshots[line.ProductID]
		if res.err != nil {
			if errors.Is(res.err, ports.ErrProductNotFound) {
				return nil, &OrderCreationError{Reason: ErrProductNotFound, ProductID: line.ProductID}
			}
			return nil, &OrderCreationError{Reason: ErrUpstreamUnavailable, ProductID: line.ProductID, Cause: res.err}
		}
		if line.Quantity > res.snapshot.StockQuantity {
			return nil, &OrderCreationError{
				Reason:    ErrInsufficientStock,
				ProductID: line.ProductID,
				Requested: line.Quantity,
				Available: res.snapshot.StockQuantity,
			}
		}
		// rounded before the total so stored lines always add up to it
		priced = append(priced, domain.Line{
			ProductID: line.ProductID,
			Quantity:  line.Quantity,
			Price:     res.snapshot.Price.Round(domain.MoneyPlaces),
		})
	}

	order, err := domain.NewOrder(owner, priced, s.now())
	if err != nil {
		return nil, mapError(err)
	}
	return s.repo.Save(ctx, order)
}

func (s *Service) ListOwnOrders(ctx context.Context, owner string) ([]*domain.Order, error) {
	owner = strings.TrimSpace(owner)
	if owner == "" {
		return nil, mapError(domain.ErrEmptyOwner)
	}
	return s.repo.ListByOwner(ctx, owner)
}

func (s *Service) ListAllOrders(ctx context.Context) ([]*domain.Order, error) {
	return s.repo.List(ctx)
}

func (s *Service) GetOrderByID(ctx context.Context, id int64) (*domain.Order, error) {
	return s.repo.GetByID(ctx, id)
}

type lookupResult struct {
	snapshot *ports.ProductSnapshot
	err      error
}

// lookupProducts fetches each distinct product once. Lookups do not cancel
// each other so that every line gets its own answer.
func (s *Service) lookupProducts(ctx context.Context, lines []domain.RequestedLine) map[int64]lookupResult {
	ids := make([]int64, 0, len(lines))
	seen := make(map[int64]struct{}, len(lines))
	for _, line := range lines {
		if _, ok := seen[line.ProductID]; ok {
			continue
		}
		seen[line.ProductID] = struct{}{}
		ids = append(ids, line.ProductID)
	}

	results := make([]lookupResult, len(ids))
	var group errgroup.Group
	group.SetLimit(s.concurrency)
	for i, id := range ids {
		group.Go(func() error {
			lookupCtx, cancel := context.WithTimeout(ctx, s.lookupTimeout)
			defer cancel()
			snapshot, err := s.lookup.Lookup(lookupCtx, id)
			if err == nil && snapshot == nil {
				err = ports.ErrLookupFailed
			}
			results[i] = lookupResult{snapshot: snapshot, err: err}
			return nil
		})
	}
	// lookup failures are kept per id in results and every goroutine
	// returns nil, so Wait has no error to report
	_ = group.Wait()

	byID := make(map[int64]lookupResult, len(ids))
	for i, id := range ids {
		byID[id] = results[i]
	}
	return byID
}

var _ ports.Service = (*Service)(nil)
