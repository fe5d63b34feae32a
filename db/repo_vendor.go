package db

import (
	"context"

	"equiptrack/models"

	"gorm.io/gorm"
)

func (r *Repo) CreateVendor(ctx context.Context, v *models.Vendor) error {
	return r.DB.WithContext(ctx).Create(v).Error
}

func (r *Repo) FindVendorByID(ctx context.Context, id string) (*models.Vendor, error) {
	var v models.Vendor
	if err := r.DB.WithContext(ctx).First(&v, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &v, nil
}

func (r *Repo) ListVendors(ctx context.Context) ([]models.Vendor, error) {
	var vs []models.Vendor
	err := r.DB.WithContext(ctx).Order("name").Find(&vs).Error
	return vs, err
}

func (r *Repo) UpdateVendor(ctx context.Context, id string, fields map[string]interface{}) (*models.Vendor, error) {
	var v models.Vendor
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&v, "id = ?", id).Error; err != nil {
			return err
		}
		if err := tx.Model(&v).Updates(fields).Error; err != nil {
			return err
		}
		return tx.First(&v, "id = ?", id).Error
	})
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func (r *Repo) DeleteVendor(ctx context.Context, id string) error {
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// 型号还挂着的厂商只解绑不连带删
		if err := tx.Model(&models.Model{}).
			Where("vendor_id = ?", id).
			Update("vendor_id", nil).Error; err != nil {
			return err
		}
		res := tx.Delete(&models.Vendor{}, "id = ?", id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
	return err
}

// VendorDetail 厂商 + 它供应的型号
type VendorDetail struct {
	Vendor models.Vendor  `json:"vendor"`
	Models []models.Model `json:"models"`
}

func (r *Repo) GetVendorDetail(ctx context.Context, id string) (*VendorDetail, error) {
	v, err := r.FindVendorByID(ctx, id)
	if err != nil {
		return nil, err
	}
	var ms []models.Model
	if err := r.DB.WithContext(ctx).
		Where("vendor_id = ?", id).
		Order("date_buy DESC").
		Find(&ms).Error; err != nil {
		return nil, err
	}
	return &VendorDetail{Vendor: *v, Models: ms}, nil
}
