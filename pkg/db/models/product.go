package models

import "time"

// Product is the single persisted catalog entity. The picture column holds the
// public path of the converted image; the file on disk and this reference must
// exist (or be absent) together.
type Product struct {
	ID          int64     `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Name        string    `gorm:"column:name;not null" json:"name"`
	Description *string   `gorm:"column:description" json:"description,omitempty"`
	VendorCode  string    `gorm:"column:vendor_code;not null" json:"vendorCode"`
	Picture     *string   `gorm:"column:picture" json:"picture,omitempty"`
	Price       float64   `gorm:"column:price;not null" json:"price"`
	Sale        *float64  `gorm:"column:sale" json:"sale,omitempty"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
	UpdatedAt   time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt"`
}

// TableName pins the table so the model survives naming-strategy changes.
func (Product) TableName() string {
	return "products"
}
