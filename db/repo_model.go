package db

import (
	"context"
	"fmt"
	"time"

	"equiptrack/models"

	"gorm.io/gorm"
)

func (r *Repo) CreateModel(ctx context.Context, m *models.Model) error {
	return r.DB.WithContext(ctx).Create(m).Error
}

func (r *Repo) FindModelByID(ctx context.Context, id string) (*models.Model, error) {
	var m models.Model
	if err := r.DB.WithContext(ctx).First(&m, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *Repo) UpdateModel(ctx context.Context, id string, fields map[string]interface{}) (*models.Model, error) {
	var m models.Model
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&m, "id = ?", id).Error; err != nil {
			return err
		}
		if err := tx.Model(&m).Updates(fields).Error; err != nil {
			return err
		}
		return tx.First(&m, "id = ?", id).Error
	})
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// ModelRow 型号列表行，带名下设备数
type ModelRow struct {
	models.Model
	EquipCount int64 `json:"equipCount"`
}

func (r *Repo) ListModels(ctx context.Context, category string) ([]ModelRow, error) {
	q := r.DB.WithContext(ctx).
		Table(models.ModelTable + " m").
		Select(fmt.Sprintf(
			"m.*, (SELECT COUNT(*) FROM %s e WHERE e.model_id = m.id) AS equip_count",
			models.EquipmentTable)).
		Order("m.date_buy DESC")
	if category != "" {
		q = q.Where("m.category = ?", category)
	}
	var rows []ModelRow
	err := q.Scan(&rows).Error
	return rows, err
}

// ModelEquipRow 型号详情里的设备行，带当前借用标注
type ModelEquipRow struct {
	ID            string     `json:"id"`
	Name          string     `json:"name"`
	PropertyNo    string     `json:"propertyNo,omitempty"`
	Barcode       string     `json:"barcode,omitempty"`
	Status        string     `json:"status"`
	Memo          string     `json:"memo,omitempty"`
	LendDate      *time.Time `json:"lendDate,omitempty"` // 空 = 在库
	ApplicantID   *string    `json:"applicantId,omitempty"`
	ApplicantName *string    `json:"applicantName,omitempty"`
}

// ModelDetail 型号 + 名下设备，借出/在库分开列
type ModelDetail struct {
	Model   models.Model    `json:"model"`
	Lent    []ModelEquipRow `json:"lent"`
	InHouse []ModelEquipRow `json:"inHouse"`
}

func (r *Repo) GetModelDetail(ctx context.Context, id string) (*ModelDetail, error) {
	m, err := r.FindModelByID(ctx, id)
	if err != nil {
		return nil, err
	}

	// 未归还台账每台最多一条（部分唯一索引保证），LEFT JOIN 不会放大行数
	var rows []ModelEquipRow
	if err := r.DB.WithContext(ctx).
		Table(models.EquipmentTable+" e").
		Select(`e.id, e.name, e.property_no, e.barcode, e.status, e.memo,
			l.date_out AS lend_date, l.applicant_id, a.name AS applicant_name`).
		Joins(fmt.Sprintf("LEFT JOIN %s l ON l.equipment_id = e.id AND l.date_in IS NULL", models.LoanTable)).
		Joins(fmt.Sprintf("LEFT JOIN %s a ON a.id = l.applicant_id", models.ApplicantTable)).
		Where("e.model_id = ?", id).
		Order("e.name").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	d := &ModelDetail{Model: *m, Lent: []ModelEquipRow{}, InHouse: []ModelEquipRow{}}
	for _, row := range rows {
		if row.LendDate != nil {
			d.Lent = append(d.Lent, row)
		} else {
			d.InHouse = append(d.InHouse, row)
		}
	}
	return d, nil
}
