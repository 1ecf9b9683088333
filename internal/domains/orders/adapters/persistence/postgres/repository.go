package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Apurer/go-gin-shop/internal/domains/orders/domain"
	"github.com/Apurer/go-gin-shop/internal/domains/orders/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository persists orders and their lines in PostgreSQL using GORM.
// Schema is owned by the migrations package.
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Models lists the tables this adapter reads and writes, parents first.
func Models() []any {
	return []any{&orderRecord{}, &orderLineRecord{}}
}

type orderRecord struct {
	ID             int64             `gorm:"primaryKey;column:id"`
	CreatedAt      time.Time         `gorm:"column:date_commande;not null"`
	Status         string            `gorm:"column:statut;type:varchar(32);not null"`
	Total          decimal.Decimal   `gorm:"column:montant_total;type:numeric(12,2);not null"`
	ClientUsername string            `gorm:"column:client_username;not null;index"`
	Lines          []orderLineRecord `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

func (orderRecord) TableName() string { return "commandes" }

type orderLineRecord struct {
	ID        int64           `gorm:"primaryKey;column:id"`
	OrderID   int64           `gorm:"column:commande_id;not null;index"`
	Position  int             `gorm:"column:position;not null"`
	ProductID int64           `gorm:"column:produit_id;not null"`
	Quantity  int32           `gorm:"column:quantite;not null"`
	Price     decimal.Decimal `gorm:"column:prix;type:numeric(12,2);not null"`
}

func (orderLineRecord) TableName() string { return "lignes_commande" }

// Save inserts the order and all of its lines in one transaction.
func (r *Repository) Save(ctx context.Context, order *domain.Order) (*domain.Order, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if order == nil {
		return nil, errors.New("order is nil")
	}
	record := toRecord(order)
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(&record).Error; err != nil {
			return err
		}
		if len(record.Lines) == 0 {
			return nil
		}
		for i := range record.Lines {
			record.Lines[i].OrderID = record.ID
		}
		return tx.Create(&record.Lines).Error
	})
	if err != nil {
		return nil, err
	}
	return record.toDomain(), nil
}

func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Order, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var record orderRecord
	err := r.db.WithContext(ctx).
		Preload("Lines", func(db *gorm.DB) *gorm.DB { return db.Order("position") }).
		First(&record, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrNotFound
		}
		return nil, err
	}
	return record.toDomain(), nil
}

func (r *Repository) ListByOwner(ctx context.Context, owner string) ([]*domain.Order, error) {
	return r.list(ctx, func(db *gorm.DB) *gorm.DB { return db.Where("client_username = ?", owner) })
}

func (r *Repository) List(ctx context.Context) ([]*domain.Order, error) {
	return r.list(ctx, func(db *gorm.DB) *gorm.DB { return db })
}

// list loads the matching orders, then all of their lines in a single
// query keyed by the order ids.
func (r *Repository) list(ctx context.Context, scope func(*gorm.DB) *gorm.DB) ([]*domain.Order, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var records []orderRecord
	if err := r.db.WithContext(ctx).Scopes(scope).Order("id").Find(&records).Error; err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return []*domain.Order{}, nil
	}
	ids := make(pq.Int64Array, 0, len(records))
	for _, rec := range records {
		ids = append(ids, rec.ID)
	}
	var lines []orderLineRecord
	if err := r.db.WithContext(ctx).
		Where("commande_id = ANY(?)", ids).
		Order("commande_id, position").
		Find(&lines).Error; err != nil {
		return nil, err
	}
	byOrder := make(map[int64][]orderLineRecord, len(records))
	for _, line := range lines {
		byOrder[line.OrderID] = append(byOrder[line.OrderID], line)
	}
	orders := make([]*domain.Order, 0, len(records))
	for i := range records {
		records[i].Lines = byOrder[records[i].ID]
		orders = append(orders, records[i].toDomain())
	}
	return orders, nil
}

func (r *Repository) ensureDB() error {
	if r == nil || r.db == nil {
		return errors.New("postgres order repository not configured")
	}
	return nil
}

func toRecord(order *domain.Order) orderRecord {
	rec := orderRecord{
		ID:             order.ID,
		CreatedAt:      order.CreatedAt,
		Status:         string(order.Status),
		Total:          order.Total,
		ClientUsername: order.Owner,
	}
	for i, line := range order.Lines {
		rec.Lines = append(rec.Lines, orderLineRecord{
			ID:        line.ID,
			Position:  i,
			ProductID: line.ProductID,
			Quantity:  line.Quantity,
			Price:     line.Price,
		})
	}
	return rec
}

func (r orderRecord) toDomain() *domain.Order {
	order := &domain.Order{
		ID:        r.ID,
		CreatedAt: r.CreatedAt,
		Status:    domain.Status(r.Status),
		Total:     r.Total,
		Owner:     r.ClientUsername,
		Lines:     make([]domain.Line, 0, len(r.Lines)),
	}
	for _, line := range r.Lines {
		order.Lines = append(order.Lines, domain.Line{
			ID:        line.ID,
			ProductID: line.ProductID,
			Quantity:  line.Quantity,
			Price:     line.Price,
		})
	}
	return order
}
