package observability

import (
	"context"
	"errors"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	nooptrace "go.opentelemetry.io/otel/trace/noop"

	ordersapp "github.com/Apurer/go-gin-shop/internal/domains/orders/application"
	"github.com/Apurer/go-gin-shop/internal/domains/orders/domain"
	"github.com/Apurer/go-gin-shop/internal/domains/orders/ports"
)

const tracerName = "github.com/Apurer/go-gin-shop/internal/domains/orders/adapters/observability/service"

// Service decorates the order service with tracing, logging, and metrics.
type Service struct {
	inner   ports.Service
	tracer  trace.Tracer
	logger  *slog.Logger
	metrics serviceMetrics
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithTracer(tr trace.Tracer) Option {
	return func(s *Service) {
		s.tracer = tr
	}
}

func WithMeter(m metric.Meter) Option {
	return func(s *Service) {
		s.metrics = newServiceMetrics(m)
	}
}

// New wraps the core order service.
func New(inner ports.Service, opts ...Option) ports.Service {
	s := &Service{
		inner:   inner,
		tracer:  nooptrace.NewTracerProvider().Tracer(tracerName),
		metrics: newServiceMetrics(nil),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	if s.tracer == nil {
		s.tracer = nooptrace.NewTracerProvider().Tracer(tracerName)
	}
	return s
}

func (s *Service) CreateOrder(ctx context.Context, owner string, lines []domain.RequestedLine) (*domain.Order, error) {
	ctx, span := s.tracer.Start(ctx, "OrderService.CreateOrder",
		trace.WithAttributes(attribute.String("order.owner", owner), attribute.Int("order.lines", len(lines))))
	defer span.End()

	s.logInfo(ctx, "creating order", slog.String("order.owner", owner), slog.Int("order.lines", len(lines)))
	result, err := s.inner.CreateOrder(ctx, owner, lines)
	if err != nil {
		s.metrics.recordRejected(ctx, rejectionReason(err))
		return nil, s.handleError(ctx, span, err, "failed to create order", append(creationErrorAttrs(err), slog.String("order.owner", owner))...)
	}
	span.SetAttributes(attribute.Int64("order.id", result.ID), attribute.String("order.total", result.Total.StringFixed(2)))
	s.metrics.recordPlaced(ctx, result)
	s.logInfo(ctx, "order created",
		slog.Int64("order.id", result.ID),
		slog.String("order.owner", result.Owner),
		slog.String("order.total", result.Total.StringFixed(2)))
	return result, nil
}

func (s *Service) ListOwnOrders(ctx context.Context, owner string) ([]*domain.Order, error) {
	ctx, span := s.tracer.Start(ctx, "OrderService.ListOwnOrders", trace.WithAttributes(attribute.String("order.owner", owner)))
	defer span.End()

	result, err := s.inner.ListOwnOrders(ctx, owner)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to list own orders", slog.String("order.owner", owner))
	}
	span.SetAttributes(attribute.Int("orders.count", len(result)))
	return result, nil
}

func (s *Service) ListAllOrders(ctx context.Context) ([]*domain.Order, error) {
	ctx, span := s.tracer.Start(ctx, "OrderService.ListAllOrders")
	defer span.End()

	result, err := s.inner.ListAllOrders(ctx)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to list orders")
	}
	span.SetAttributes(attribute.Int("orders.count", len(result)))
	return result, nil
}

func (s *Service) GetOrderByID(ctx context.Context, id int64) (*domain.Order, error) {
	ctx, span := s.tracer.Start(ctx, "OrderService.GetOrderByID", trace.WithAttributes(attribute.Int64("order.id", id)))
	defer span.End()

	result, err := s.inner.GetOrderByID(ctx, id)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to load order", slog.Int64("order.id", id))
	}
	return result, nil
}

func (s *Service) logInfo(ctx context.Context, msg string, attrs ...slog.Attr) {
	if s.logger == nil {
		return
	}
	s.logger.LogAttrs(ctx, slog.LevelInfo, msg, attrs...)
}

// handleError records the failure on the span. Rejections caused by the
// request are logged at warn, everything else at error.
func (s *Service) handleError(ctx context.Context, span trace.Span, err error, msg string, attrs ...slog.Attr) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	if s.logger == nil {
		return err
	}
	level := slog.LevelError
	if errors.Is(err, ports.ErrNotFound) || errors.Is(err, ordersapp.ErrInvalidInput) ||
		errors.Is(err, ordersapp.ErrProductNotFound) || errors.Is(err, ordersapp.ErrInsufficientStock) {
		level = slog.LevelWarn
	}
	attrs = append(attrs, slog.String("error", err.Error()))
	s.logger.LogAttrs(ctx, level, msg, attrs...)
	return err
}

func creationErrorAttrs(err error) []slog.Attr {
	var creationErr *ordersapp.OrderCreationError
	if !errors.As(err, &creationErr) {
		return nil
	}
	attrs := []slog.Attr{slog.Int64("product.id", creationErr.ProductID)}
	if errors.Is(err, ordersapp.ErrInsufficientStock) {
		attrs = append(attrs,
			slog.Int("stock.requested", int(creationErr.Requested)),
			slog.Int("stock.available", int(creationErr.Available)))
	}
	return attrs
}

func rejectionReason(err error) string {
	switch {
	case errors.Is(err, ordersapp.ErrInvalidInput):
		return "invalid_input"
	case errors.Is(err, ordersapp.ErrProductNotFound):
		return "product_not_found"
	case errors.Is(err, ordersapp.ErrInsufficientStock):
		return "insufficient_stock"
	case errors.Is(err, ordersapp.ErrUpstreamUnavailable):
		return "upstream_unavailable"
	default:
		return "internal"
	}
}

type serviceMetrics struct {
	ordersPlaced   metric.Int64Counter
	ordersRejected metric.Int64Counter
	orderTotal     metric.Float64Histogram
}

func newServiceMetrics(m metric.Meter) serviceMetrics {
	if m == nil {
		return serviceMetrics{}
	}
	placed, _ := m.Int64Counter("orders.service.orders_placed", metric.WithDescription("Number of orders persisted"))
	rejected, _ := m.Int64Counter("orders.service.order_rejections", metric.WithDescription("Number of order creations rejected, by reason"))
	total, _ := m.Float64Histogram("orders.service.order_total", metric.WithDescription("Order totals at creation"))
	return serviceMetrics{ordersPlaced: placed, ordersRejected: rejected, orderTotal: total}
}

func (m serviceMetrics) recordPlaced(ctx context.Context, order *domain.Order) {
	if m.ordersPlaced != nil {
		m.ordersPlaced.Add(ctx, 1, metric.WithAttributes(attribute.String("order.status", string(order.Status))))
	}
	if m.orderTotal != nil {
		m.orderTotal.Record(ctx, order.Total.InexactFloat64())
	}
}

func (m serviceMetrics) recordRejected(ctx context.Context, reason string) {
	if m.ordersRejected != nil {
		m.ordersRejected.Add(ctx, 1, metric.WithAttributes(attribute.String("reason", reason)))
	}
}

var _ ports.Service = (*Service)(nil)
