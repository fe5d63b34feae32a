package models

import "time"

const VendorTable = "eqt_vendors"

type Vendor struct {
	ID        string    `gorm:"type:uuid;primaryKey" json:"id"`
	Name      string    `gorm:"size:64;not null" json:"name"` // 厂商名称
	Phone     string    `gorm:"size:32" json:"phone,omitempty"`
	Memo      string    `json:"memo,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (Vendor) TableName() string { return VendorTable }
