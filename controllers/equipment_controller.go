package controllers

import (
	"net/http"

	"equiptrack/app"
	"equiptrack/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type EquipmentController struct{ *Srv }

func NewEquipmentController(s *Srv) *EquipmentController { return &EquipmentController{Srv: s} }

type equipmentInput struct {
	Name       string `json:"name" binding:"required"`
	PropertyNo string `json:"propertyNo"`
	Barcode    string `json:"barcode"`
	Status     string `json:"status" binding:"omitempty,oneof=ok broken-pending-repair broken-sent-out broken-pending-disposal disposed"`
	Memo       string `json:"memo"`
}

// CreateUnderModel 在型号下新增一台设备
func (ec *EquipmentController) CreateUnderModel(c *gin.Context) {
	var in equipmentInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, app.H{"error": err.Error()})
		return
	}
	status := in.Status
	if status == "" {
		status = models.EquipOK
	}
	e := &models.Equipment{
		ID:         uuid.NewString(),
		ModelID:    c.Param("id"),
		Name:       in.Name,
		PropertyNo: in.PropertyNo,
		Barcode:    in.Barcode,
		Status:     status,
		Memo:       in.Memo,
	}
	if err := ec.Repo.CreateEquipment(c.Request.Context(), e); err != nil {
		writeRepoError(c, err)
		return
	}
	c.JSON(http.StatusCreated, e)
}

func (ec *EquipmentController) Get(c *gin.Context) {
	d, err := ec.Repo.GetEquipmentDetail(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeRepoError(c, err)
		return
	}
	c.JSON(http.StatusOK, d)
}

func (ec *EquipmentController) Update(c *gin.Context) {
	var in equipmentInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, app.H{"error": err.Error()})
		return
	}
	fields := map[string]interface{}{
		"name":        in.Name,
		"property_no": in.PropertyNo,
		"barcode":     in.Barcode,
		"memo":        in.Memo,
	}
	if in.Status != "" {
		fields["status"] = in.Status
	}
	e, err := ec.Repo.UpdateEquipment(c.Request.Context(), c.Param("id"), fields)
	if err != nil {
		writeRepoError(c, err)
		return
	}
	c.JSON(http.StatusOK, e)
}

// Available 借用单选择器：无人借用的设备，默认只看列帐型号
func (ec *EquipmentController) Available(c *gin.Context) {
	eqs, err := ec.Repo.AvailableEquipment(c.Request.Context(), c.Query("modelStatus"))
	if err != nil {
		writeRepoError(c, err)
		return
	}
	c.JSON(http.StatusOK, app.H{"equipment": eqs})
}
