// Package products stores listing snapshots and serves the freshest
// metrics per product to the analysis engine.
package products

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"compete-radar/competitive"
	"compete-radar/database"
)

// Repository handles database operations for products and snapshots
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new products repository
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// SaveSnapshot appends a scrape snapshot and upserts the product row so
// the catalog always carries the latest title.
func (r *Repository) SaveSnapshot(ctx context.Context, snapshot *database.ProductSnapshot) error {
	if strings.TrimSpace(snapshot.ProductID) == "" {
		return &database.ValidationError{Field: "product_id", Reason: "must not be empty"}
	}
	if snapshot.Rating != nil && (*snapshot.Rating < 0 || *snapshot.Rating > 5) {
		return &database.ValidationError{Field: "rating", Reason: "must be between 0 and 5", Value: *snapshot.Rating}
	}
	if snapshot.ScrapedAt.IsZero() {
		snapshot.ScrapedAt = time.Now().UTC()
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		product := database.Product{
			ProductID: snapshot.ProductID,
			Title:     snapshot.Title,
		}
		err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "product_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"title", "updated_at"}),
		}).Create(&product).Error
		if err != nil {
			return database.WrapDBError("SaveSnapshot", err)
		}

		if err := tx.Create(snapshot).Error; err != nil {
			return database.WrapDBError("SaveSnapshot", err)
		}
		return nil
	})
}

// LatestSnapshot returns the newest snapshot for a product id
func (r *Repository) LatestSnapshot(ctx context.Context, productID string) (*database.ProductSnapshot, error) {
	var snapshot database.ProductSnapshot
	err := r.db.WithContext(ctx).
		Where("product_id = ?", productID).
		Order("scraped_at DESC").
		First(&snapshot).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, &database.NotFoundError{Resource: "product snapshot", ID: productID}
	}
	if err != nil {
		return nil, database.WrapDBError("LatestSnapshot", err)
	}
	return &snapshot, nil
}

// ListProducts returns the tracked product catalog
func (r *Repository) ListProducts(ctx context.Context) ([]database.Product, error) {
	var products []database.Product
	err := r.db.WithContext(ctx).Order("product_id").Find(&products).Error
	if err != nil {
		return nil, database.WrapDBError("ListProducts", err)
	}
	return products, nil
}

// HasSnapshot reports whether any snapshot exists for a product id
func (r *Repository) HasSnapshot(ctx context.Context, productID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&database.ProductSnapshot{}).
		Where("product_id = ?", productID).
		Count(&count).Error
	if err != nil {
		return false, database.WrapDBError("HasSnapshot", err)
	}
	return count > 0, nil
}

// LatestMetrics adapts the newest snapshot to the analyzer's metrics
// contract.
func (r *Repository) LatestMetrics(ctx context.Context, productID string) (*competitive.ProductMetrics, error) {
	snapshot, err := r.LatestSnapshot(ctx, productID)
	if err != nil {
		var notFound *database.NotFoundError
		if errors.As(err, &notFound) {
			return nil, fmt.Errorf("%w: %s", competitive.ErrMetricsNotFound, productID)
		}
		return nil, err
	}
	return snapshotToMetrics(snapshot), nil
}

// snapshotToMetrics prefers the buybox price when both prices are present.
func snapshotToMetrics(snapshot *database.ProductSnapshot) *competitive.ProductMetrics {
	price := snapshot.Price
	if snapshot.BuyboxPrice != nil {
		price = snapshot.BuyboxPrice
	}

	return &competitive.ProductMetrics{
		ProductID:     snapshot.ProductID,
		Title:         snapshot.Title,
		Price:         price,
		Rating:        snapshot.Rating,
		ReviewCount:   snapshot.ReviewCount,
		CategoryRanks: snapshot.CategoryRanks,
		Features:      snapshot.KeyFeatures,
		Availability:  snapshot.Availability,
	}
}
