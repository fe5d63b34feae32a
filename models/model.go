package models

import "time"

const ModelTable = "eqt_models"

// 型号生命周期
const (
	ModelActive   = "active"   // 列帐
	ModelDisposed = "disposed" // 报废除帐
)

// 设备类别
const (
	CategoryNB      = "nb"
	CategoryPC      = "pc"
	CategoryCamera  = "camera"
	CategoryNetwork = "network"
	CategoryAV      = "av"
	CategoryOther   = "other"
)

type Model struct {
	ID            string    `gorm:"type:uuid;primaryKey" json:"id"`
	Name          string    `gorm:"size:64;not null" json:"name"` // 型号
	DateBuy       time.Time `gorm:"not null" json:"dateBuy"`      // 购置日期
	Category      string    `gorm:"size:20;not null" json:"category"`
	Status        string    `gorm:"size:20;not null;default:'active'" json:"status"`
	Specification string    `json:"specification,omitempty"` // 详细规格
	VendorID      *string   `gorm:"type:uuid;index" json:"vendorId,omitempty"`
	Pic           string    `gorm:"size:255" json:"pic,omitempty"` // 图片路径，存储在外部
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

func (Model) TableName() string { return ModelTable }
