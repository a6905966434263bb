package persistence

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/ayush-nalawade/CRM-backend/internal/domain/shared"
	"github.com/ayush-nalawade/CRM-backend/internal/domain/trade"
)

// GormPurchaseRepository implements PurchaseRepository using GORM
type GormPurchaseRepository struct {
	db *gorm.DB
}

// NewGormPurchaseRepository creates a new GormPurchaseRepository
func NewGormPurchaseRepository(db *gorm.DB) *GormPurchaseRepository {
	return &GormPurchaseRepository{db: db}
}

// FindByID finds a purchase by its ID, items included
func (r *GormPurchaseRepository) FindByID(ctx context.Context, id uuid.UUID) (*trade.Purchase, error) {
	var purchase trade.Purchase
	if err := r.db.WithContext(ctx).
		Preload("Items").
		First(&purchase, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &purchase, nil
}

// FindByIDForUpdate loads the purchase row with SELECT ... FOR UPDATE so that
// concurrent total re-aggregations on the same purchase serialize. The items
// are preloaded in a second query; they are only ever written while holding
// the parent row lock, so locking the parent is sufficient.
func (r *GormPurchaseRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*trade.Purchase, error) {
	var purchase trade.Purchase
	if err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&purchase, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	if err := r.db.WithContext(ctx).
		Where("purchase_id = ?", id).
		Order("created_at ASC").
		Find(&purchase.Items).Error; err != nil {
		return nil, err
	}
	return &purchase, nil
}

// FindPurchaseIDByItem resolves the purchase owning the given item
func (r *GormPurchaseRepository) FindPurchaseIDByItem(ctx context.Context, itemID uuid.UUID) (uuid.UUID, error) {
	var item trade.PurchaseItem
	if err := r.db.WithContext(ctx).
		Select("purchase_id").
		First(&item, "id = ?", itemID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return uuid.Nil, shared.ErrNotFound
		}
		return uuid.Nil, err
	}
	return item.PurchaseID, nil
}

// FindByPurchaseNumber finds a purchase by its number, items included
func (r *GormPurchaseRepository) FindByPurchaseNumber(ctx context.Context, purchaseNumber string) (*trade.Purchase, error) {
	var purchase trade.Purchase
	if err := r.db.WithContext(ctx).
		Preload("Items").
		Where("purchase_number = ?", purchaseNumber).
		First(&purchase).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &purchase, nil
}

// FindAll finds purchases with filtering
func (r *GormPurchaseRepository) FindAll(ctx context.Context, filter shared.Filter) ([]trade.Purchase, error) {
	var purchases []trade.Purchase
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&trade.Purchase{}).Preload("Items"),
		filter,
	)

	if err := query.Find(&purchases).Error; err != nil {
		return nil, err
	}
	return purchases, nil
}

// FindByCustomer finds purchases for a customer
func (r *GormPurchaseRepository) FindByCustomer(ctx context.Context, customerID uuid.UUID, filter shared.Filter) ([]trade.Purchase, error) {
	var purchases []trade.Purchase
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&trade.Purchase{}).Preload("Items").
			Where("customer_id = ?", customerID),
		filter,
	)

	if err := query.Find(&purchases).Error; err != nil {
		return nil, err
	}
	return purchases, nil
}

// Count counts purchases matching the filter
func (r *GormPurchaseRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilterWithoutPagination(r.db.WithContext(ctx).Model(&trade.Purchase{}), filter)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Save creates or updates a purchase together with its items. Items removed
// from the aggregate are deleted so the stored set always mirrors it.
func (r *GormPurchaseRepository) Save(ctx context.Context, purchase *trade.Purchase) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Items").Save(purchase).Error; err != nil {
			return err
		}

		currentItemIDs := make([]uuid.UUID, len(purchase.Items))
		for i, item := range purchase.Items {
			currentItemIDs[i] = item.ID
		}

		if len(currentItemIDs) > 0 {
			if err := tx.Where("purchase_id = ? AND id NOT IN ?", purchase.ID, currentItemIDs).
				Delete(&trade.PurchaseItem{}).Error; err != nil {
				return err
			}
		} else {
			if err := tx.Where("purchase_id = ?", purchase.ID).
				Delete(&trade.PurchaseItem{}).Error; err != nil {
				return err
			}
		}

		for i := range purchase.Items {
			purchase.Items[i].PurchaseID = purchase.ID
			if err := tx.Save(&purchase.Items[i]).Error; err != nil {
				return err
			}
		}

		return nil
	})
}

// Delete removes a purchase and its items
func (r *GormPurchaseRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("purchase_id = ?", id).Delete(&trade.PurchaseItem{}).Error; err != nil {
			return err
		}

		result := tx.Delete(&trade.Purchase{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return nil
	})
}

// ExistsByPurchaseNumber checks if a purchase number is already taken
func (r *GormPurchaseRepository) ExistsByPurchaseNumber(ctx context.Context, purchaseNumber string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&trade.Purchase{}).
		Where("purchase_number = ?", purchaseNumber).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *GormPurchaseRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	if filter.OrderBy != "" {
		orderDir := "ASC"
		if strings.ToLower(filter.OrderDir) == "desc" {
			orderDir = "DESC"
		}
		query = query.Order(filter.OrderBy + " " + orderDir)
	} else {
		query = query.Order("purchase_date DESC")
	}

	return query
}

func (r *GormPurchaseRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		query = query.Where("purchase_number ILIKE ?", "%"+filter.Search+"%")
	}

	for key, value := range filter.Filters {
		switch key {
		case "customer_id":
			query = query.Where("customer_id = ?", value)
		case "status":
			query = query.Where("status = ?", value)
		case "start_date":
			if t, ok := value.(time.Time); ok {
				query = query.Where("purchase_date >= ?", t)
			}
		case "end_date":
			if t, ok := value.(time.Time); ok {
				query = query.Where("purchase_date <= ?", t)
			}
		}
	}

	return query
}

var _ trade.PurchaseRepository = (*GormPurchaseRepository)(nil)
