package db

import (
	"context"
	"fmt"
	"time"

	"equiptrack/models"

	"gorm.io/gorm"
)

func (r *Repo) CreateApplicant(ctx context.Context, a *models.Applicant) error {
	return r.DB.WithContext(ctx).Create(a).Error
}

func (r *Repo) FindApplicantByID(ctx context.Context, id string) (*models.Applicant, error) {
	var a models.Applicant
	if err := r.DB.WithContext(ctx).First(&a, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *Repo) ListApplicants(ctx context.Context) ([]models.Applicant, error) {
	var as []models.Applicant
	// 选择器用的排序：在职优先，再按身份、姓名
	err := r.DB.WithContext(ctx).Order("status, role, name").Find(&as).Error
	return as, err
}

func (r *Repo) UpdateApplicant(ctx context.Context, id string, fields map[string]interface{}) (*models.Applicant, error) {
	var a models.Applicant
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&a, "id = ?", id).Error; err != nil {
			return err
		}
		if err := tx.Model(&a).Updates(fields).Error; err != nil {
			return err
		}
		return tx.First(&a, "id = ?", id).Error
	})
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// ApplicantHistoryRow 借用人详情里的历史行
type ApplicantHistoryRow struct {
	LoanID        string     `json:"loanId"`
	EquipmentID   string     `json:"equipmentId"`
	EquipmentName string     `json:"equipmentName"`
	DateOut       time.Time  `json:"dateOut"`
	DateIn        *time.Time `json:"dateIn,omitempty"`
}

// ApplicantDetail 借用人 + 手上未归还 + 全部历史
type ApplicantDetail struct {
	Applicant   models.Applicant      `json:"applicant"`
	Outstanding []OutstandingRow      `json:"outstanding"`
	History     []ApplicantHistoryRow `json:"history"`
}

func (r *Repo) GetApplicantDetail(ctx context.Context, id string) (*ApplicantDetail, error) {
	a, err := r.FindApplicantByID(ctx, id)
	if err != nil {
		return nil, err
	}
	outstanding, err := r.OutstandingFor(ctx, id)
	if err != nil {
		return nil, err
	}
	var history []ApplicantHistoryRow
	if err := r.DB.WithContext(ctx).
		Table(models.LoanTable+" l").
		Select("l.id AS loan_id, l.equipment_id, e.name AS equipment_name, l.date_out, l.date_in").
		Joins(fmt.Sprintf("JOIN %s e ON e.id = l.equipment_id", models.EquipmentTable)).
		Where("l.applicant_id = ?", id).
		Order("l.date_out DESC").
		Scan(&history).Error; err != nil {
		return nil, err
	}
	return &ApplicantDetail{Applicant: *a, Outstanding: outstanding, History: history}, nil
}
