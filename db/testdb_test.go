package db

import (
	"testing"

	"equiptrack/models"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestRepo(t *testing.T) *Repo {
	t.Helper()
	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := Migrate(gdb); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return NewRepo(gdb)
}

func seedModel(t *testing.T, r *Repo, status string) *models.Model {
	t.Helper()
	m := &models.Model{
		ID:       uuid.NewString(),
		Name:     "ThinkPad X1",
		Category: models.CategoryNB,
		Status:   status,
	}
	if err := r.DB.Create(m).Error; err != nil {
		t.Fatalf("seed model: %v", err)
	}
	return m
}

func seedEquipment(t *testing.T, r *Repo, modelID, name, propNo, barcode string) *models.Equipment {
	t.Helper()
	e := &models.Equipment{
		ID:         uuid.NewString(),
		ModelID:    modelID,
		Name:       name,
		PropertyNo: propNo,
		Barcode:    barcode,
		Status:     models.EquipOK,
	}
	if err := r.DB.Create(e).Error; err != nil {
		t.Fatalf("seed equipment: %v", err)
	}
	return e
}

func seedApplicant(t *testing.T, r *Repo, name string) *models.Applicant {
	t.Helper()
	a := &models.Applicant{
		ID:     uuid.NewString(),
		Name:   name,
		Role:   models.RoleAdminStaff,
		Status: models.ApplicantActive,
	}
	if err := r.DB.Create(a).Error; err != nil {
		t.Fatalf("seed applicant: %v", err)
	}
	return a
}

func openLoanCount(t *testing.T, r *Repo, equipmentID string) int64 {
	t.Helper()
	var n int64
	if err := r.DB.Model(&models.LoanLog{}).
		Where("equipment_id = ? AND date_in IS NULL", equipmentID).
		Count(&n).Error; err != nil {
		t.Fatalf("count open loans: %v", err)
	}
	return n
}
