package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/servex-platform/servex-backend/internal/models"
)

// ServiceDetail is the joined row the hire flow works with: the service, its
// category (for the pricing type) and the owning user's id, with named fields
// instead of dotted join aliases.
type ServiceDetail struct {
	ID           uuid.UUID          `json:"id"`
	OwnerID      uuid.UUID          `gorm:"column:owner_id" json:"owner_id"`
	Title        string             `json:"title"`
	Description  string             `json:"description"`
	BasePrice    float64            `json:"base_price"`
	CategoryID   uuid.UUID          `gorm:"column:category_id" json:"category_id"`
	CategoryName string             `gorm:"column:category_name" json:"category_name"`
	PricingType  models.PricingType `json:"pricing_type"`
}

const serviceDetailTTL = 5 * time.Minute

func serviceDetailKey(id uuid.UUID) string {
	return "service:detail:" + id.String()
}

// findServiceDetail resolves a service id to its joined detail row. A missing
// or malformed id yields (nil, nil); only infrastructure failures return an
// error. When a Redis client is configured the detail is served read-through.
func findServiceDetail(ctx context.Context, db *gorm.DB, rdb *redis.Client, rawID string) (*ServiceDetail, error) {
	id, err := uuid.Parse(rawID)
	if err != nil {
		return nil, nil
	}

	if rdb != nil {
		if cached, err := rdb.Get(ctx, serviceDetailKey(id)).Bytes(); err == nil {
			var detail ServiceDetail
			if err := json.Unmarshal(cached, &detail); err == nil {
				return &detail, nil
			}
		}
	}

	var detail ServiceDetail
	err = db.Table("services").
		Select(`services.id,
			services.user_id AS owner_id,
			services.title,
			services.description,
			services.base_price,
			service_categories.id AS category_id,
			service_categories.name AS category_name,
			service_categories.pricing_type`).
		Joins("INNER JOIN service_categories ON service_categories.id = services.service_category_id").
		Where("services.id = ?", id).
		Take(&detail).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	if rdb != nil {
		if payload, err := json.Marshal(detail); err == nil {
			if err := rdb.Set(ctx, serviceDetailKey(id), payload, serviceDetailTTL).Err(); err != nil {
				log.Println("service detail cache write failed:", err)
			}
		}
	}

	return &detail, nil
}
