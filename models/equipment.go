package models

import "time"

const EquipmentTable = "eqt_equipment"

// 设备状态
const (
	EquipOK              = "ok"
	EquipPendingRepair   = "broken-pending-repair"
	EquipSentOut         = "broken-sent-out"
	EquipPendingDisposal = "broken-pending-disposal"
	EquipDisposed        = "disposed"
)

type Equipment struct {
	ID         string    `gorm:"type:uuid;primaryKey" json:"id"`
	ModelID    string    `gorm:"type:uuid;index;not null" json:"modelId"`
	Name       string    `gorm:"size:32;not null" json:"name"`            // 设备编号
	PropertyNo string    `gorm:"size:32;index" json:"propertyNo,omitempty"` // 财产编号，空串表示未掛牌
	Barcode    string    `gorm:"size:16;index" json:"barcode,omitempty"`  // 条码序号
	Status     string    `gorm:"size:30;not null;default:'ok'" json:"status"`
	Memo       string    `json:"memo,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

func (Equipment) TableName() string { return EquipmentTable }
