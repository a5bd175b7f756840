package domain

import (
	"time"
)

// CREATE TABLE public.shop_settings (
//     id               BIGINT GENERATED ALWAYS AS IDENTITY PRIMARY KEY,
//     shop             TEXT NOT NULL UNIQUE,
//     drawer_enabled   BOOLEAN DEFAULT TRUE,
//     default_discount NUMERIC,
//     bundle_title     TEXT,
//     access_token     TEXT,
//     created_at       TIMESTAMPTZ DEFAULT NOW(),
//     updated_at       TIMESTAMPTZ
// );

type ShopSettings struct {
	ID              uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	Shop            string    `gorm:"column:shop;uniqueIndex;not null" json:"shop"`
	DrawerEnabled   bool      `gorm:"column:drawer_enabled;default:true" json:"drawer_enabled"`
	DefaultDiscount float64   `gorm:"column:default_discount;type:numeric" json:"default_discount"`
	BundleTitle     string    `gorm:"column:bundle_title;type:text" json:"bundle_title"`
	AccessToken     string    `gorm:"column:access_token;type:text" json:"-"` // AES encrypted at rest
	CreatedAt       time.Time `gorm:"column:created_at" json:"created_at"`
	UpdatedAt       time.Time `gorm:"column:updated_at" json:"updated_at"`
}

func (ShopSettings) TableName() string {
	return "shop_settings"
}
