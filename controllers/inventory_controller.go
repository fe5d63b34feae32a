package controllers

import (
	"net/http"
	"strconv"
	"time"

	"equiptrack/app"
	"equiptrack/models"

	"github.com/gin-gonic/gin"
)

type InventoryController struct{ *Srv }

func NewInventoryController(s *Srv) *InventoryController { return &InventoryController{Srv: s} }

func yearParam(c *gin.Context) (int, bool) {
	y, err := strconv.Atoi(c.Param("year"))
	if err != nil || y < 1990 || y > 2100 {
		c.JSON(http.StatusBadRequest, app.H{"error": "invalid year"})
		return 0, false
	}
	return y, true
}

func (ic *InventoryController) ListYears(c *gin.Context) {
	rows, err := ic.Repo.ListSnapshots(c.Request.Context())
	if err != nil {
		writeRepoError(c, err)
		return
	}
	c.JSON(http.StatusOK, app.H{"snapshots": rows})
}

// Import 导入年度盘点清册。行由外部表格解析器解析好送进来；
// 对不上的行照常返回，由现场决定怎么处理。
func (ic *InventoryController) Import(c *gin.Context) {
	year, ok := yearParam(c)
	if !ok {
		return
	}
	var in struct {
		Rows []models.ManifestRecord `json:"rows" binding:"required"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, app.H{"error": err.Error()})
		return
	}

	res, err := ic.Repo.ImportSnapshot(c.Request.Context(), year, in.Rows, ic.Cfg.PropertyPrefix)
	if err != nil {
		writeRepoError(c, err)
		return
	}
	c.JSON(http.StatusOK, app.H{
		"year":      year,
		"matched":   res.Matched,
		"unmatched": res.Unmatched,
	})
}

// RecordCheck 扫条码确认一台设备，回确认卡片
func (ic *InventoryController) RecordCheck(c *gin.Context) {
	var in struct {
		Barcode string `json:"barcode" binding:"required"`
		Year    int    `json:"year"` // 不传就算当年
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, app.H{"error": err.Error()})
		return
	}
	year := in.Year
	if year == 0 {
		year = time.Now().UTC().Year()
	}

	res, err := ic.Repo.RecordCheck(c.Request.Context(), in.Barcode, year, app.ActorID(c))
	if err != nil {
		writeRepoError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// ManualCheck 条码读不出来时按设备 id 补盘点
func (ic *InventoryController) ManualCheck(c *gin.Context) {
	var in struct {
		Year int `json:"year"`
	}
	_ = c.ShouldBindJSON(&in)
	year := in.Year
	if year == 0 {
		year = time.Now().UTC().Year()
	}

	check, err := ic.Repo.ManualCheck(c.Request.Context(), c.Param("id"), year, app.ActorID(c))
	if err != nil {
		writeRepoError(c, err)
		return
	}
	c.JSON(http.StatusCreated, check)
}

func (ic *InventoryController) DeleteCheck(c *gin.Context) {
	if err := ic.Repo.DeleteCheck(c.Request.Context(), c.Param("id")); err != nil {
		writeRepoError(c, err)
		return
	}
	c.JSON(http.StatusOK, app.H{"ok": true})
}

// Status 年度对账视图：每条清册记录对上的设备、借用人、盘点凭证
func (ic *InventoryController) Status(c *gin.Context) {
	year, ok := yearParam(c)
	if !ok {
		return
	}
	status, err := ic.Repo.ReconciliationStatus(c.Request.Context(), year)
	if err != nil {
		writeRepoError(c, err)
		return
	}
	c.JSON(http.StatusOK, app.H{"year": year, "entries": status})
}
