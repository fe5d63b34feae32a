package models

import "regexp"

// 正式财产编号：9 位数字。组合形态（带分号，如 "314010103-7"）和
// 临时编号都不匹配，视作尚未掛牌。
var canonicalPropNo = regexp.MustCompile(`^[0-9]{9}$`)

func IsCanonicalPropNo(s string) bool { return canonicalPropNo.MatchString(s) }

// ManifestRecord 盘点清册里的一行财产记录，
// 由外部表格解析器解析后以 JSON 送进来。
type ManifestRecord struct {
	PropertyNo    string `json:"propertyNo" binding:"required"` // 财产编号
	SubNo         string `json:"subNo" binding:"required"`      // 财产分号
	Name          string `json:"name"`                          // 财产名称
	Alias         string `json:"alias,omitempty"`               // 财产别名
	Brand         string `json:"brand,omitempty"`               // 厂牌
	Designation   string `json:"designation,omitempty"`         // 型式
	Page          int    `json:"page,omitempty"`                // 盘点页数
	BarcodeSerial string `json:"barcodeSerial,omitempty"`       // 条码序号
	DateBuy       string `json:"dateBuy,omitempty"`             // 购置日期（照抄清册原文）
}

// Tag 组合完整财产编号，如 "314010103-7"
func (m ManifestRecord) Tag() string { return m.PropertyNo + "-" + m.SubNo }

// Manifest 以组合财产编号为键
type Manifest map[string]ManifestRecord
