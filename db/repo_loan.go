package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"equiptrack/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// lockForUpdate 给事务里的读加行锁。SQLite 写入本来就单线程串行，
// 也不认 FOR UPDATE 语法，跳过。
func lockForUpdate(tx *gorm.DB) *gorm.DB {
	if tx.Dialector.Name() == "sqlite" {
		return tx
	}
	return tx.Clauses(clause.Locking{Strength: "UPDATE"})
}

// Holder 设备当前借用人（未归还台账 + 借用人姓名）
type Holder struct {
	LoanID        string    `json:"loanId"`
	ApplicantID   string    `json:"applicantId"`
	ApplicantName string    `json:"applicantName"`
	DateOut       time.Time `json:"dateOut"`
}

// Lend 借出。报废型号拒借；已有未归还台账拒借。
// 并发下靠 date_in IS NULL 的部分唯一索引兜底，不止应用层检查。
func (r *Repo) Lend(ctx context.Context, equipmentID, applicantID string, dateOut time.Time, actorID string) (*models.LoanLog, error) {
	var loan *models.LoanLog
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var eq models.Equipment
		if err := lockForUpdate(tx).First(&eq, "id = ?", equipmentID).Error; err != nil {
			return err
		}
		var m models.Model
		if err := tx.First(&m, "id = ?", eq.ModelID).Error; err != nil {
			return err
		}
		if m.Status == models.ModelDisposed {
			return ErrModelDisposed
		}
		if err := tx.First(&models.Applicant{}, "id = ?", applicantID).Error; err != nil {
			return err
		}

		var n int64
		if err := tx.Model(&models.LoanLog{}).
			Where("equipment_id = ? AND date_in IS NULL", equipmentID).
			Count(&n).Error; err != nil {
			return err
		}
		if n > 0 {
			return ErrAlreadyOnLoan
		}

		l := &models.LoanLog{
			ID:          uuid.NewString(),
			EquipmentID: eq.ID,
			ApplicantID: applicantID,
			DateOut:     dateOut,
			RecordedBy:  actorID,
		}
		if err := tx.Create(l).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrAlreadyOnLoan
			}
			return err
		}
		loan = l
		return nil
	})
	return loan, err
}

// Return 归还。已归还的台账不许再归还，避免覆盖原归还日期。
// 锁着台账行做检查，两个并发归还只有先到的生效。
func (r *Repo) Return(ctx context.Context, loanID, actorID string) (*models.LoanLog, error) {
	var l models.LoanLog
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := lockForUpdate(tx).First(&l, "id = ?", loanID).Error; err != nil {
			return err
		}
		if l.DateIn != nil {
			return ErrAlreadyClosed
		}
		now := time.Now().UTC()
		l.DateIn = &now
		l.RecordedBy = actorID
		return tx.Save(&l).Error
	})
	if err != nil {
		return nil, err
	}
	return &l, nil
}

// CurrentHolder 设备当前在谁手上；没人借返回 nil
func (r *Repo) CurrentHolder(ctx context.Context, equipmentID string) (*Holder, error) {
	var h Holder
	res := r.DB.WithContext(ctx).
		Table(models.LoanTable+" l").
		Select("l.id AS loan_id, l.applicant_id, a.name AS applicant_name, l.date_out").
		Joins(fmt.Sprintf("JOIN %s a ON a.id = l.applicant_id", models.ApplicantTable)).
		Where("l.equipment_id = ? AND l.date_in IS NULL", equipmentID).
		Limit(1).
		Scan(&h)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, nil
	}
	return &h, nil
}

// OutstandingRow 借用人手上未归还的设备
type OutstandingRow struct {
	LoanID        string    `json:"loanId"`
	EquipmentID   string    `json:"equipmentId"`
	EquipmentName string    `json:"equipmentName"`
	DateOut       time.Time `json:"dateOut"`
}

func (r *Repo) OutstandingFor(ctx context.Context, applicantID string) ([]OutstandingRow, error) {
	var rows []OutstandingRow
	err := r.DB.WithContext(ctx).
		Table(models.LoanTable+" l").
		Select("l.id AS loan_id, l.equipment_id, e.name AS equipment_name, l.date_out").
		Joins(fmt.Sprintf("JOIN %s e ON e.id = l.equipment_id", models.EquipmentTable)).
		Where("l.applicant_id = ? AND l.date_in IS NULL", applicantID).
		Order("l.date_out DESC").
		Scan(&rows).Error
	return rows, err
}

// AvailableEquipment 借用单选择器用：指定型号状态下、当前无人借用的设备
func (r *Repo) AvailableEquipment(ctx context.Context, modelStatus string) ([]models.Equipment, error) {
	if modelStatus == "" {
		modelStatus = models.ModelActive
	}
	var eqs []models.Equipment
	err := r.DB.WithContext(ctx).
		Model(&models.Equipment{}).
		Select(models.EquipmentTable+".*").
		Joins(fmt.Sprintf("JOIN %s m ON m.id = %s.model_id", models.ModelTable, models.EquipmentTable)).
		Where("m.status = ?", modelStatus).
		Where(fmt.Sprintf(
			"NOT EXISTS (SELECT 1 FROM %s l WHERE l.equipment_id = %s.id AND l.date_in IS NULL)",
			models.LoanTable, models.EquipmentTable)).
		Order(fmt.Sprintf("%s.model_id DESC, %s.name", models.EquipmentTable, models.EquipmentTable)).
		Find(&eqs).Error
	return eqs, err
}

// UpdateLoanInput 管理员改台账；DateIn 传 nil 表示改成未归还
type UpdateLoanInput struct {
	EquipmentID string
	ApplicantID string
	DateOut     time.Time
	DateIn      *time.Time
}

// UpdateLoan 管理员修正。被改的这条不算，但改完若是未归还状态，
// 目标设备上别的未归还台账会触发 ErrAlreadyOnLoan。
func (r *Repo) UpdateLoan(ctx context.Context, loanID string, in UpdateLoanInput, actorID string) (*models.LoanLog, error) {
	var l models.LoanLog
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := lockForUpdate(tx).First(&l, "id = ?", loanID).Error; err != nil {
			return err
		}
		if err := tx.First(&models.Equipment{}, "id = ?", in.EquipmentID).Error; err != nil {
			return err
		}
		if err := tx.First(&models.Applicant{}, "id = ?", in.ApplicantID).Error; err != nil {
			return err
		}

		if in.DateIn == nil {
			var n int64
			if err := tx.Model(&models.LoanLog{}).
				Where("equipment_id = ? AND date_in IS NULL AND id <> ?", in.EquipmentID, loanID).
				Count(&n).Error; err != nil {
				return err
			}
			if n > 0 {
				return ErrAlreadyOnLoan
			}
		}

		l.EquipmentID = in.EquipmentID
		l.ApplicantID = in.ApplicantID
		l.DateOut = in.DateOut
		l.DateIn = in.DateIn
		l.RecordedBy = actorID
		if err := tx.Save(&l).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrAlreadyOnLoan
			}
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &l, nil
}

// DeleteLoan 管理员显式删除，台账平时不删
func (r *Repo) DeleteLoan(ctx context.Context, loanID string) error {
	res := r.DB.WithContext(ctx).Delete(&models.LoanLog{}, "id = ?", loanID)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// ListLoans 台账查询，按借出日期倒序
func (r *Repo) ListLoans(ctx context.Context, applicantID, equipmentID, status string) ([]models.LoanLog, error) {
	q := r.DB.WithContext(ctx).Model(&models.LoanLog{}).Order("date_out DESC")
	if applicantID != "" {
		q = q.Where("applicant_id = ?", applicantID)
	}
	if equipmentID != "" {
		q = q.Where("equipment_id = ?", equipmentID)
	}
	switch status {
	case "open":
		q = q.Where("date_in IS NULL")
	case "returned":
		q = q.Where("date_in IS NOT NULL")
	}
	var ls []models.LoanLog
	if err := q.Find(&ls).Error; err != nil {
		return nil, err
	}
	return ls, nil
}
