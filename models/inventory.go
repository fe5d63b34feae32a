package models

import (
	"time"

	"gorm.io/datatypes"
)

const (
	SnapshotTable = "eqt_inventory_snapshots"
	CheckTable    = "eqt_inventory_checks"
)

// InventorySnapshot 年度盘点清册，每年一份；重复导入整份替换
type InventorySnapshot struct {
	ID        string                        `gorm:"type:uuid;primaryKey" json:"id"`
	Year      int                           `gorm:"uniqueIndex;not null" json:"year"`
	Manifest  datatypes.JSONType[Manifest]  `json:"manifest"`
	CreatedAt time.Time                     `json:"createdAt"`
	UpdatedAt time.Time                     `json:"updatedAt"`
}

func (InventorySnapshot) TableName() string { return SnapshotTable }

// InventoryCheck 盘点到一台设备的凭证；同一设备同一年重复扫描
// 只刷新登录人和时间，不另起一条（唯一索引兜底）
type InventoryCheck struct {
	ID          string    `gorm:"type:uuid;primaryKey" json:"id"`
	EquipmentID string    `gorm:"type:uuid;index;not null;uniqueIndex:uidx_eqt_check_equip_year" json:"equipmentId"`
	Year        int       `gorm:"not null;uniqueIndex:uidx_eqt_check_equip_year" json:"year"`
	CheckedAt   time.Time `gorm:"index;not null" json:"checkedAt"`
	RecordedBy  string    `gorm:"size:64;not null" json:"recordedBy"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func (InventoryCheck) TableName() string { return CheckTable }
