package db

import (
	"context"
	"errors"
	"strings"
	"time"

	"equiptrack/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// ImportResult 导入结果。Unmatched 是纸面上有、系统里对不上的行，
// 属于预期情况（还没贴条码的财产），不算失败。
type ImportResult struct {
	Snapshot  *models.InventorySnapshot `json:"snapshot"`
	Matched   int                       `json:"matched"`
	Unmatched []models.ManifestRecord   `json:"unmatched"`
}

// matchesPendingTag 判断设备登记的编号是否对应清册行的组合编号。
// 待掛牌设备常只登记编号尾段加分号（如 "103-7" 对 "314010103-7"），
// 所以除了完整编号相等，也认尾缀吻合且分号一致的。
func matchesPendingTag(stored, tag string, rec models.ManifestRecord) bool {
	if stored == tag {
		return true
	}
	i := strings.LastIndex(stored, "-")
	if i <= 0 {
		return false
	}
	return stored[i+1:] == rec.SubNo && strings.HasSuffix(rec.PropertyNo, stored[:i])
}

// ImportSnapshot 导入年度盘点清册。
// 规则照财产科的流程：
//  1. 只认 prefix 这个财产编号前缀，别的资产类别直接跳过；
//  2. 候选设备 = 财产编号非空且还不是 9 位正式编号的（待掛牌）；
//  3. 行的组合编号（编号-分号）和候选设备编号吻合，就把正式编号、
//     条码序号写回设备，并收进清册映射；
//  4. 同一年重复导入整份替换，以后导入的为准。
//
// 整个导入跑在一个事务里；对不上的行只记下来，不会中断。
func (r *Repo) ImportSnapshot(ctx context.Context, year int, rows []models.ManifestRecord, prefix string) (*ImportResult, error) {
	res := &ImportResult{Unmatched: []models.ManifestRecord{}}
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var tagged []models.Equipment
		if err := tx.Where("property_no <> ''").Find(&tagged).Error; err != nil {
			return err
		}
		var pending []*models.Equipment
		for i := range tagged {
			if !models.IsCanonicalPropNo(tagged[i].PropertyNo) {
				pending = append(pending, &tagged[i])
			}
		}

		manifest := models.Manifest{}
		for _, rec := range rows {
			if rec.PropertyNo != prefix {
				continue
			}
			tag := rec.Tag()
			var eq *models.Equipment
			for _, cand := range pending {
				if matchesPendingTag(cand.PropertyNo, tag, rec) {
					eq = cand
					break
				}
			}
			if eq == nil {
				zap.L().Warn("manifest row has no matching equipment",
					zap.Int("year", year),
					zap.String("tag", tag),
					zap.String("name", rec.Name),
					zap.String("alias", rec.Alias),
				)
				res.Unmatched = append(res.Unmatched, rec)
				continue
			}
			if err := tx.Model(&models.Equipment{}).
				Where("id = ?", eq.ID).
				Updates(map[string]interface{}{
					"property_no": tag,
					"barcode":     rec.BarcodeSerial,
				}).Error; err != nil {
				return err
			}
			// 同一次导入里的重复行走完整编号相等那条路
			eq.PropertyNo = tag
			manifest[tag] = rec
			res.Matched++
		}

		var snap models.InventorySnapshot
		err := tx.Where("year = ?", year).First(&snap).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			snap = models.InventorySnapshot{
				ID:       uuid.NewString(),
				Year:     year,
				Manifest: datatypes.NewJSONType(manifest),
			}
			if err := tx.Create(&snap).Error; err != nil {
				return err
			}
		case err != nil:
			return err
		default:
			// 重复导入：整份替换
			snap.Manifest = datatypes.NewJSONType(manifest)
			if err := tx.Save(&snap).Error; err != nil {
				return err
			}
		}
		res.Snapshot = &snap
		return nil
	})
	if err != nil {
		return nil, err
	}
	zap.L().Info("inventory snapshot imported",
		zap.Int("year", year),
		zap.Int("matched", res.Matched),
		zap.Int("unmatched", len(res.Unmatched)),
	)
	return res, nil
}

// CheckResult 扫码确认后回给现场的确认卡片内容
type CheckResult struct {
	Record    models.ManifestRecord `json:"record"`
	Equipment models.Equipment      `json:"equipment"`
	Holder    *Holder               `json:"holder,omitempty"`
	Check     models.InventoryCheck `json:"check"`
}

// RecordCheck 盘点走查时扫条码确认一台设备。
// 设备在不在清册里由财产编号说了算；当前借用人只做展示，不挡盘点。
func (r *Repo) RecordCheck(ctx context.Context, barcode string, year int, actorID string) (*CheckResult, error) {
	var eq models.Equipment
	if err := r.DB.WithContext(ctx).
		First(&eq, "barcode = ? AND barcode <> ''", barcode).Error; err != nil {
		return nil, err
	}

	var snap models.InventorySnapshot
	if err := r.DB.WithContext(ctx).Where("year = ?", year).First(&snap).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNoSnapshot
		}
		return nil, err
	}

	rec, ok := snap.Manifest.Data()[eq.PropertyNo]
	if !ok {
		return nil, ErrNotInManifest
	}

	holder, err := r.CurrentHolder(ctx, eq.ID)
	if err != nil {
		return nil, err
	}

	check, err := r.upsertCheck(ctx, eq.ID, year, actorID)
	if err != nil {
		return nil, err
	}

	return &CheckResult{Record: rec, Equipment: eq, Holder: holder, Check: *check}, nil
}

// ManualCheck 条码磨损扫不出来时，人工指定设备补盘点
func (r *Repo) ManualCheck(ctx context.Context, equipmentID string, year int, actorID string) (*models.InventoryCheck, error) {
	if err := r.DB.WithContext(ctx).
		First(&models.Equipment{}, "id = ?", equipmentID).Error; err != nil {
		return nil, err
	}
	return r.upsertCheck(ctx, equipmentID, year, actorID)
}

// 同一设备同一年只留一条盘点凭证，重扫刷新登录人和时间。
// (equipment_id, year) 唯一索引兜底并发重扫。
func (r *Repo) upsertCheck(ctx context.Context, equipmentID string, year int, actorID string) (*models.InventoryCheck, error) {
	var check models.InventoryCheck
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Where("equipment_id = ? AND year = ?", equipmentID, year).First(&check).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			check = models.InventoryCheck{
				ID:          uuid.NewString(),
				EquipmentID: equipmentID,
				Year:        year,
				CheckedAt:   time.Now().UTC(),
				RecordedBy:  actorID,
			}
			return tx.Create(&check).Error
		case err != nil:
			return err
		default:
			check.CheckedAt = time.Now().UTC()
			check.RecordedBy = actorID
			return tx.Save(&check).Error
		}
	})
	if err != nil {
		return nil, err
	}
	return &check, nil
}

// DeleteCheck 删除一条盘点凭证（误扫修正）
func (r *Repo) DeleteCheck(ctx context.Context, checkID string) error {
	res := r.DB.WithContext(ctx).Delete(&models.InventoryCheck{}, "id = ?", checkID)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// ReconEntry 对账视图里一行：清册记录 + 对上的设备 + 当前借用人 + 今年盘点凭证。
// Equipment 为空 = 纸面财产从没对上实物；Check 为空 = 今年还没盘到。
type ReconEntry struct {
	Record    models.ManifestRecord  `json:"record"`
	Equipment *models.Equipment      `json:"equipment,omitempty"`
	Holder    *Holder                `json:"holder,omitempty"`
	Check     *models.InventoryCheck `json:"check,omitempty"`
}

// ReconciliationStatus 某年度的对账视图，按组合财产编号索引
func (r *Repo) ReconciliationStatus(ctx context.Context, year int) (map[string]ReconEntry, error) {
	var snap models.InventorySnapshot
	if err := r.DB.WithContext(ctx).Where("year = ?", year).First(&snap).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNoSnapshot
		}
		return nil, err
	}

	out := make(map[string]ReconEntry)
	for tag, rec := range snap.Manifest.Data() {
		out[tag] = ReconEntry{Record: rec}
	}

	var eqs []models.Equipment
	if err := r.DB.WithContext(ctx).Where("barcode <> ''").Find(&eqs).Error; err != nil {
		return nil, err
	}
	equipByID := make(map[string]*models.Equipment)
	for i := range eqs {
		eq := &eqs[i]
		entry, ok := out[eq.PropertyNo]
		if !ok {
			continue
		}
		entry.Equipment = eq
		out[eq.PropertyNo] = entry
		equipByID[eq.ID] = eq
	}

	// 当前借用人，一次查完
	type holderRow struct {
		Holder
		EquipmentID string
	}
	var holders []holderRow
	if err := r.DB.WithContext(ctx).
		Table(models.LoanTable+" l").
		Select("l.id AS loan_id, l.equipment_id, l.applicant_id, a.name AS applicant_name, l.date_out").
		Joins("JOIN "+models.ApplicantTable+" a ON a.id = l.applicant_id").
		Where("l.date_in IS NULL").
		Scan(&holders).Error; err != nil {
		return nil, err
	}
	for i := range holders {
		eq, ok := equipByID[holders[i].EquipmentID]
		if !ok {
			continue
		}
		entry := out[eq.PropertyNo]
		h := holders[i].Holder
		entry.Holder = &h
		out[eq.PropertyNo] = entry
	}

	var checks []models.InventoryCheck
	if err := r.DB.WithContext(ctx).
		Where("year = ?", year).
		Find(&checks).Error; err != nil {
		return nil, err
	}
	for i := range checks {
		eq, ok := equipByID[checks[i].EquipmentID]
		if !ok {
			continue
		}
		entry, ok := out[eq.PropertyNo]
		if !ok {
			continue
		}
		c := checks[i]
		entry.Check = &c
		out[eq.PropertyNo] = entry
	}

	return out, nil
}

// ListSnapshots 历年清册（不带映射内容，列表页用）
type SnapshotRow struct {
	ID   string `json:"id"`
	Year int    `json:"year"`
}

func (r *Repo) ListSnapshots(ctx context.Context) ([]SnapshotRow, error) {
	var rows []SnapshotRow
	err := r.DB.WithContext(ctx).
		Model(&models.InventorySnapshot{}).
		Select("id, year").
		Order("year DESC").
		Scan(&rows).Error
	return rows, err
}
