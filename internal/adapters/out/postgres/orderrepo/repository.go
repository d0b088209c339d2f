package orderrepo

import (
	"context"
	"errors"
	"time"

	"agromarket/internal/core/domain/model/kernel"
	"agromarket/internal/core/domain/model/order"
	"agromarket/internal/core/ports"
	"agromarket/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormOrderRepository implements OrderRepository using GORM.
type GormOrderRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormOrderRepository creates a new GORM order repository.
func NewGormOrderRepository(db *gorm.DB, tracker aggregateTracker) *GormOrderRepository {
	return &GormOrderRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new order to the database.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves an existing order to the database, guarded by the status the
// caller read before mutating the aggregate. The WHERE clause makes the
// write a compare-and-swap: when a concurrent request already moved the
// order, zero rows match and ErrOrderConcurrentlyModified is returned.
func (r *GormOrderRepository) Update(ctx context.Context, aggregate *order.Order, expectedStatus order.Status) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}
	if err := expectedStatus.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).
		Model(&OrderDTO{}).
		Where("id = ? AND status = ?", dto.ID, int(expectedStatus)).
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		var count int64
		if err := r.db.WithContext(ctx).Model(&OrderDTO{}).Where("id = ?", dto.ID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return errs.NewObjectNotFoundError("order", aggregate.ID().String())
		}
		return ports.ErrOrderConcurrentlyModified
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves an order by ID.
func (r *GormOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto OrderDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetPendingOlderThan retrieves all pending orders placed before the cutoff.
func (r *GormOrderRepository) GetPendingOlderThan(ctx context.Context, cutoff time.Time) ([]*order.Order, error) {
	var dtos []OrderDTO
	err := r.db.WithContext(ctx).
		Order("order_date").
		Find(&dtos, "status = ? AND order_date < ?", int(order.Pending), cutoff).Error
	if err != nil {
		return nil, err
	}

	orders := make([]*order.Order, 0, len(dtos))
	for _, dto := range dtos {
		o, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}

	return orders, nil
}
