package db

import (
	"context"
	"fmt"
	"time"

	"equiptrack/models"

	"gorm.io/gorm"
)

func (r *Repo) CreateEquipment(ctx context.Context, e *models.Equipment) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&models.Model{}, "id = ?", e.ModelID).Error; err != nil {
			return err
		}
		return tx.Create(e).Error
	})
}

func (r *Repo) FindEquipmentByID(ctx context.Context, id string) (*models.Equipment, error) {
	var e models.Equipment
	if err := r.DB.WithContext(ctx).First(&e, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *Repo) UpdateEquipment(ctx context.Context, id string, fields map[string]interface{}) (*models.Equipment, error) {
	var e models.Equipment
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&e, "id = ?", id).Error; err != nil {
			return err
		}
		if err := tx.Model(&e).Updates(fields).Error; err != nil {
			return err
		}
		return tx.First(&e, "id = ?", id).Error
	})
	if err != nil {
		return nil, err
	}
	return &e, nil
}

// LoanHistoryRow 设备详情里的借还历史行
type LoanHistoryRow struct {
	LoanID        string     `json:"loanId"`
	ApplicantID   string     `json:"applicantId"`
	ApplicantName string     `json:"applicantName"`
	DateOut       time.Time  `json:"dateOut"`
	DateIn        *time.Time `json:"dateIn,omitempty"`
}

// EquipmentDetail 设备 + 当前借用人 + 全部借还历史
type EquipmentDetail struct {
	Equipment models.Equipment `json:"equipment"`
	Holder    *Holder          `json:"holder,omitempty"`
	History   []LoanHistoryRow `json:"history"`
}

func (r *Repo) GetEquipmentDetail(ctx context.Context, id string) (*EquipmentDetail, error) {
	e, err := r.FindEquipmentByID(ctx, id)
	if err != nil {
		return nil, err
	}
	holder, err := r.CurrentHolder(ctx, id)
	if err != nil {
		return nil, err
	}
	var history []LoanHistoryRow
	if err := r.DB.WithContext(ctx).
		Table(models.LoanTable+" l").
		Select("l.id AS loan_id, l.applicant_id, a.name AS applicant_name, l.date_out, l.date_in").
		Joins(fmt.Sprintf("JOIN %s a ON a.id = l.applicant_id", models.ApplicantTable)).
		Where("l.equipment_id = ?", id).
		Order("l.date_out DESC").
		Scan(&history).Error; err != nil {
		return nil, err
	}
	return &EquipmentDetail{Equipment: *e, Holder: holder, History: history}, nil
}
