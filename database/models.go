package database

import "time"

// Product represents a tracked e-commerce listing. One row per product
// identifier; snapshots reference products by identifier, not foreign key,
// so a snapshot can arrive before the product row exists.
type Product struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	ProductID string    `gorm:"size:20;uniqueIndex;not null" json:"product_id"`
	Title     string    `gorm:"type:text" json:"title"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName specifies the table name for Product
func (Product) TableName() string {
	return "products"
}

// ProductSnapshot captures one scrape of a listing's metrics.
// Snapshots are append-only; the newest scraped_at per product id is the
// metrics source for competitive analysis.
//
// Key Fields:
//   - Price/BuyboxPrice: both nullable, a listing can be temporarily unpriced
//   - Rating: 0-5 scale, nullable
//   - ReviewCount: nullable; zero is a present value, not missing data
//   - CategoryRanks: marketplace rank per category, lower is better
//   - KeyFeatures: feature-category name → feature tags
type ProductSnapshot struct {
	ID            int64      `gorm:"primaryKey;autoIncrement" json:"id"`
	ProductID     string     `gorm:"size:20;index;not null" json:"product_id"`
	ScrapedAt     time.Time  `gorm:"index;not null" json:"scraped_at"`
	Title         string     `gorm:"type:text" json:"title"`
	Price         *float64   `json:"price"`
	BuyboxPrice   *float64   `json:"buybox_price"`
	Rating        *float64   `json:"rating"`
	ReviewCount   *int       `json:"review_count"`
	CategoryRanks RankMap    `gorm:"type:jsonb" json:"category_ranks"`
	KeyFeatures   FeatureMap `gorm:"type:jsonb" json:"key_features"`
	Availability  string     `gorm:"size:100" json:"availability"`
	CreatedAt     time.Time  `json:"created_at"`
}

// TableName specifies the table name for ProductSnapshot
func (ProductSnapshot) TableName() string {
	return "product_snapshots"
}

// CompetitiveGroup defines one main product and the set of competitor
// listings it is compared against. The main product id does not have to be
// tracked yet; an untracked main product is surfaced, not rejected.
type CompetitiveGroup struct {
	ID            int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Name          string    `gorm:"size:200;not null" json:"name"`
	Description   string    `gorm:"type:text" json:"description"`
	MainProductID string    `gorm:"size:20;index;not null" json:"main_product_id"`
	IsActive      bool      `gorm:"default:true" json:"is_active"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`

	// Active competitors, loaded by the repository, ordered by
	// (priority, product_id). Not a GORM association.
	Competitors []Competitor `gorm:"-" json:"competitors"`
}

// TableName specifies the table name for CompetitiveGroup
func (CompetitiveGroup) TableName() string {
	return "competitive_groups"
}

// Competitor is a membership row linking a product to a competitive group.
// Priority is a stable sort key only (1=high, 2=medium, 3=low); it never
// influences scoring. Soft-deleted via IsActive.
type Competitor struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	GroupID   int64     `gorm:"index;not null" json:"group_id"`
	ProductID string    `gorm:"size:20;index;not null" json:"product_id"`
	Name      string    `gorm:"size:200" json:"name"`
	Priority  int       `gorm:"default:1" json:"priority"`
	IsActive  bool      `gorm:"default:true" json:"is_active"`
	AddedAt   time.Time `gorm:"autoCreateTime" json:"added_at"`
}

// TableName specifies the table name for Competitor
func (Competitor) TableName() string {
	return "competitors"
}

// AnalysisReportRecord archives one synthesized positioning report together
// with the analysis it was built from. Rows are append-only; the cache
// serves hot reads while this table keeps the per-group history.
type AnalysisReportRecord struct {
	ID          int64        `gorm:"primaryKey;autoIncrement" json:"id"`
	GroupID     int64        `gorm:"index;not null" json:"group_id"`
	AnalysisID  string       `gorm:"size:36;index" json:"analysis_id"`
	Analysis    JSONDocument `gorm:"type:jsonb" json:"analysis"`
	Report      JSONDocument `gorm:"type:jsonb" json:"report"`
	Mode        string       `gorm:"size:30" json:"generation_mode"`
	GeneratedAt time.Time    `gorm:"index" json:"generated_at"`
	CreatedAt   time.Time    `json:"created_at"`
}

// TableName specifies the table name for AnalysisReportRecord
func (AnalysisReportRecord) TableName() string {
	return "competitive_analysis_reports"
}
