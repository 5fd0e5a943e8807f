// Package groups manages competitive group membership: the main product,
// its competitor roster, and soft-delete lifecycle for both.
package groups

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"gorm.io/gorm"

	"compete-radar/competitive"
	"compete-radar/database"
)

// Repository handles database operations for competitive groups
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new groups repository
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// CreateGroupParams carries the fields for a new group.
type CreateGroupParams struct {
	Name          string
	Description   string
	MainProductID string
}

// CreateGroup persists a new competitive group
func (r *Repository) CreateGroup(ctx context.Context, params CreateGroupParams) (*database.CompetitiveGroup, error) {
	if strings.TrimSpace(params.Name) == "" {
		return nil, &database.ValidationError{Field: "name", Reason: "must not be empty"}
	}
	if strings.TrimSpace(params.MainProductID) == "" {
		return nil, &database.ValidationError{Field: "main_product_id", Reason: "must not be empty"}
	}

	group := &database.CompetitiveGroup{
		Name:          strings.TrimSpace(params.Name),
		Description:   params.Description,
		MainProductID: strings.TrimSpace(params.MainProductID),
		IsActive:      true,
	}
	if err := r.db.WithContext(ctx).Create(group).Error; err != nil {
		return nil, database.WrapDBError("CreateGroup", err)
	}
	group.Competitors = []database.Competitor{}

	log.Printf("✅ Created competitive group %q with main product %s", group.Name, group.MainProductID)
	return group, nil
}

// GetGroup retrieves an active group with its active competitors loaded,
// ordered by (priority, product_id)
func (r *Repository) GetGroup(ctx context.Context, groupID int64) (*database.CompetitiveGroup, error) {
	var group database.CompetitiveGroup
	err := r.db.WithContext(ctx).
		Where("id = ? AND is_active = ?", groupID, true).
		First(&group).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, &database.NotFoundError{Resource: "competitive group", ID: groupID}
	}
	if err != nil {
		return nil, database.WrapDBError("GetGroup", err)
	}

	competitors, err := r.activeCompetitors(ctx, groupID)
	if err != nil {
		return nil, err
	}
	group.Competitors = competitors
	return &group, nil
}

// ListGroups retrieves all active groups with competitors loaded, most
// recently updated first
func (r *Repository) ListGroups(ctx context.Context) ([]database.CompetitiveGroup, error) {
	var groups []database.CompetitiveGroup
	err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("updated_at DESC").
		Find(&groups).Error
	if err != nil {
		return nil, database.WrapDBError("ListGroups", err)
	}

	for i := range groups {
		competitors, err := r.activeCompetitors(ctx, groups[i].ID)
		if err != nil {
			return nil, err
		}
		groups[i].Competitors = competitors
	}
	return groups, nil
}

// UpdateGroupParams carries the mutable group fields. Nil means unchanged.
type UpdateGroupParams struct {
	Name          *string
	Description   *string
	MainProductID *string
}

// UpdateGroup applies the non-nil fields to an active group
func (r *Repository) UpdateGroup(ctx context.Context, groupID int64, params UpdateGroupParams) (*database.CompetitiveGroup, error) {
	updates := map[string]interface{}{}
	if params.Name != nil {
		if strings.TrimSpace(*params.Name) == "" {
			return nil, &database.ValidationError{Field: "name", Reason: "must not be empty"}
		}
		updates["name"] = strings.TrimSpace(*params.Name)
	}
	if params.Description != nil {
		updates["description"] = *params.Description
	}
	if params.MainProductID != nil {
		if strings.TrimSpace(*params.MainProductID) == "" {
			return nil, &database.ValidationError{Field: "main_product_id", Reason: "must not be empty"}
		}
		updates["main_product_id"] = strings.TrimSpace(*params.MainProductID)
	}

	if len(updates) > 0 {
		result := r.db.WithContext(ctx).
			Model(&database.CompetitiveGroup{}).
			Where("id = ? AND is_active = ?", groupID, true).
			Updates(updates)
		if result.Error != nil {
			return nil, database.WrapDBError("UpdateGroup", result.Error)
		}
		if result.RowsAffected == 0 {
			return nil, &database.NotFoundError{Resource: "competitive group", ID: groupID}
		}
	}

	return r.GetGroup(ctx, groupID)
}

// DeleteGroup soft-deletes a group and deactivates its competitors
func (r *Repository) DeleteGroup(ctx context.Context, groupID int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&database.CompetitiveGroup{}).
			Where("id = ? AND is_active = ?", groupID, true).
			Update("is_active", false)
		if result.Error != nil {
			return database.WrapDBError("DeleteGroup", result.Error)
		}
		if result.RowsAffected == 0 {
			return &database.NotFoundError{Resource: "competitive group", ID: groupID}
		}

		err := tx.Model(&database.Competitor{}).
			Where("group_id = ?", groupID).
			Update("is_active", false).Error
		if err != nil {
			return database.WrapDBError("DeleteGroup", err)
		}

		log.Printf("✅ Deleted competitive group %d", groupID)
		return nil
	})
}

// AddCompetitor adds a product to a group's roster. An already-active
// membership is returned as-is; a soft-deleted one is reactivated with the
// new name and priority, so the one-active-row-per-(group, product)
// invariant holds.
func (r *Repository) AddCompetitor(ctx context.Context, groupID int64, productID, name string, priority int) (*database.Competitor, error) {
	productID = strings.TrimSpace(productID)
	if productID == "" {
		return nil, &database.ValidationError{Field: "product_id", Reason: "must not be empty"}
	}
	if priority < 1 {
		priority = 1
	}
	if name == "" {
		name = fmt.Sprintf("Competitor %s", productID)
	}

	// Group must exist and be active.
	if _, err := r.GetGroup(ctx, groupID); err != nil {
		return nil, err
	}

	var existing database.Competitor
	err := r.db.WithContext(ctx).
		Where("group_id = ? AND product_id = ?", groupID, productID).
		First(&existing).Error
	switch {
	case err == nil && existing.IsActive:
		log.Printf("⚠️ Competitor %s already exists in group %d", productID, groupID)
		return &existing, nil
	case err == nil:
		updates := map[string]interface{}{"is_active": true, "name": name, "priority": priority}
		if err := r.db.WithContext(ctx).Model(&existing).Updates(updates).Error; err != nil {
			return nil, database.WrapDBError("AddCompetitor", err)
		}
		existing.IsActive = true
		existing.Name = name
		existing.Priority = priority
		log.Printf("✅ Reactivated competitor %s in group %d", productID, groupID)
		return &existing, nil
	case !errors.Is(err, gorm.ErrRecordNotFound):
		return nil, database.WrapDBError("AddCompetitor", err)
	}

	competitor := &database.Competitor{
		GroupID:   groupID,
		ProductID: productID,
		Name:      name,
		Priority:  priority,
		IsActive:  true,
	}
	if err := r.db.WithContext(ctx).Create(competitor).Error; err != nil {
		return nil, database.WrapDBError("AddCompetitor", err)
	}

	log.Printf("✅ Added competitor %s to group %d", productID, groupID)
	return competitor, nil
}

// RemoveCompetitor soft-deletes a group membership
func (r *Repository) RemoveCompetitor(ctx context.Context, groupID int64, productID string) error {
	result := r.db.WithContext(ctx).
		Model(&database.Competitor{}).
		Where("group_id = ? AND product_id = ? AND is_active = ?", groupID, productID, true).
		Update("is_active", false)
	if result.Error != nil {
		return database.WrapDBError("RemoveCompetitor", result.Error)
	}
	if result.RowsAffected == 0 {
		return &database.NotFoundError{Resource: "competitor", ID: productID}
	}

	log.Printf("✅ Removed competitor %s from group %d", productID, groupID)
	return nil
}

// GroupProductIDs lists the product ids a group touches: the main product
// plus every active competitor.
type GroupProductIDs struct {
	Main        string   `json:"main"`
	Competitors []string `json:"competitors"`
	All         []string `json:"all"`
}

// ProductIDs returns the product ids for a group
func (r *Repository) ProductIDs(ctx context.Context, groupID int64) (*GroupProductIDs, error) {
	group, err := r.GetGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}

	ids := &GroupProductIDs{Main: group.MainProductID, Competitors: []string{}}
	for _, c := range group.Competitors {
		ids.Competitors = append(ids.Competitors, c.ProductID)
	}
	ids.All = append([]string{ids.Main}, ids.Competitors...)
	return ids, nil
}

func (r *Repository) activeCompetitors(ctx context.Context, groupID int64) ([]database.Competitor, error) {
	var competitors []database.Competitor
	err := r.db.WithContext(ctx).
		Where("group_id = ? AND is_active = ?", groupID, true).
		Order("priority, product_id").
		Find(&competitors).Error
	if err != nil {
		return nil, database.WrapDBError("activeCompetitors", err)
	}
	return competitors, nil
}

// Group adapts GetGroup to the analyzer's group source contract.
func (r *Repository) Group(ctx context.Context, groupID int64) (*competitive.Group, error) {
	group, err := r.GetGroup(ctx, groupID)
	if err != nil {
		var notFound *database.NotFoundError
		if errors.As(err, &notFound) {
			return nil, fmt.Errorf("%w: %d", competitive.ErrGroupNotFound, groupID)
		}
		return nil, err
	}
	return &competitive.Group{
		ID:            group.ID,
		Name:          group.Name,
		Description:   group.Description,
		MainProductID: group.MainProductID,
	}, nil
}

// ActiveCompetitors adapts the roster query to the analyzer's group source
// contract.
func (r *Repository) ActiveCompetitors(ctx context.Context, groupID int64) ([]competitive.GroupCompetitor, error) {
	competitors, err := r.activeCompetitors(ctx, groupID)
	if err != nil {
		return nil, err
	}

	roster := make([]competitive.GroupCompetitor, 0, len(competitors))
	for _, c := range competitors {
		roster = append(roster, competitive.GroupCompetitor{
			ProductID: c.ProductID,
			Name:      c.Name,
			Priority:  c.Priority,
		})
	}
	return roster, nil
}
