package models

import "time"

const LoanTable = "eqt_loan_logs"

// LoanLog 借还台账。DateIn 为空表示尚未归还；
// 同一设备最多一条未归还记录，由部分唯一索引保证（见 db.Migrate）。
type LoanLog struct {
	ID          string     `gorm:"type:uuid;primaryKey" json:"id"`
	EquipmentID string     `gorm:"type:uuid;index;not null" json:"equipmentId"`
	ApplicantID string     `gorm:"type:uuid;index;not null" json:"applicantId"`
	DateOut     time.Time  `gorm:"index;not null" json:"dateOut"` // 借出日期
	DateIn      *time.Time `gorm:"index" json:"dateIn,omitempty"` // 归还日期
	RecordedBy  string     `gorm:"size:64;not null" json:"recordedBy"` // 登录人（外部认证给的 actor id）
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

func (LoanLog) TableName() string { return LoanTable }

func (l *LoanLog) Open() bool { return l.DateIn == nil }
