package domain

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"
)

const (
	BundleSourceManual = "manual"
	BundleSourceRules  = "rules"
	BundleSourceML     = "ml"

	BundleStatusActive   = "active"
	BundleStatusInactive = "inactive"
)

// BundleProductRef is one catalog item's pricing snapshot taken at
// generation time. It carries no persisted identity and is rebuilt on
// every generation call.
type BundleProductRef struct {
	ProductID string  `json:"product_id"`
	VariantID string  `json:"variant_id"`
	Title     string  `json:"title"`
	Price     float64 `json:"price"`
}

// GeneratedBundle is the pipeline's output shape. The id is derived from
// the source and the constituent product ids, so generating twice for the
// same inputs yields the same id.
type GeneratedBundle struct {
	ID              string             `json:"id"`
	Name            string             `json:"name"`
	Products        []BundleProductRef `json:"products"`
	RegularTotal    float64            `json:"regular_total"`
	BundlePrice     float64            `json:"bundle_price"`
	SavingsAmount   float64            `json:"savings_amount"`
	DiscountPercent float64            `json:"discount_percent"`
	Status          string             `json:"status"`
	Source          string             `json:"source"`
}

// CREATE TABLE public.manual_bundles (
//     id               UUID PRIMARY KEY,
//     shop             TEXT NOT NULL,
//     name             TEXT,
//     discount_percent NUMERIC,
//     product_ids      JSONB,
//     is_active        BOOLEAN DEFAULT TRUE,
//     created_at       TIMESTAMPTZ DEFAULT NOW(),
//     updated_at       TIMESTAMPTZ
// );

type ManualBundle struct {
	ID              string         `gorm:"primaryKey;type:uuid" json:"id"`
	Shop            string         `gorm:"column:shop;index;not null" json:"shop"`
	Name            string         `gorm:"column:name;type:text" json:"name"`
	DiscountPercent *float64       `gorm:"column:discount_percent;type:numeric" json:"discount_percent,omitempty"`
	ProductIDs      datatypes.JSON `gorm:"column:product_ids;type:jsonb" json:"product_ids"`
	IsActive        bool           `gorm:"column:is_active;default:true" json:"is_active"`
	CreatedAt       time.Time      `gorm:"column:created_at" json:"created_at"`
	UpdatedAt       time.Time      `gorm:"column:updated_at" json:"updated_at"`
}

func (ManualBundle) TableName() string {
	return "manual_bundles"
}

// ProductIDList decodes the jsonb product id column. A malformed column
// reads as an empty list, which downstream treats as a too-small bundle.
func (m ManualBundle) ProductIDList() []string {
	var ids []string
	_ = json.Unmarshal(m.ProductIDs, &ids)
	return ids
}
