package controllers

import (
	"net/http"
	"time"

	"equiptrack/app"
	"equiptrack/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ModelController struct{ *Srv }

func NewModelController(s *Srv) *ModelController { return &ModelController{Srv: s} }

func (mc *ModelController) List(c *gin.Context) {
	rows, err := mc.Repo.ListModels(c.Request.Context(), c.Query("category"))
	if err != nil {
		writeRepoError(c, err)
		return
	}
	c.JSON(http.StatusOK, app.H{"models": rows})
}

func (mc *ModelController) Get(c *gin.Context) {
	d, err := mc.Repo.GetModelDetail(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeRepoError(c, err)
		return
	}
	c.JSON(http.StatusOK, d)
}

type modelInput struct {
	Name          string  `json:"name" binding:"required"`
	DateBuy       string  `json:"dateBuy" binding:"required"` // YYYY-MM-DD
	Category      string  `json:"category" binding:"required,oneof=nb pc camera network av other"`
	Status        string  `json:"status" binding:"omitempty,oneof=active disposed"`
	Specification string  `json:"specification"`
	VendorID      *string `json:"vendorId"`
	Pic           string  `json:"pic"`
}

func (mc *ModelController) Create(c *gin.Context) {
	var in modelInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, app.H{"error": err.Error()})
		return
	}
	dateBuy, err := time.Parse("2006-01-02", in.DateBuy)
	if err != nil {
		c.JSON(http.StatusBadRequest, app.H{"error": "dateBuy must be YYYY-MM-DD"})
		return
	}
	status := in.Status
	if status == "" {
		status = models.ModelActive
	}
	m := &models.Model{
		ID:            uuid.NewString(),
		Name:          in.Name,
		DateBuy:       dateBuy,
		Category:      in.Category,
		Status:        status,
		Specification: in.Specification,
		VendorID:      in.VendorID,
		Pic:           in.Pic,
	}
	if err := mc.Repo.CreateModel(c.Request.Context(), m); err != nil {
		writeRepoError(c, err)
		return
	}
	c.JSON(http.StatusCreated, m)
}

func (mc *ModelController) Update(c *gin.Context) {
	var in modelInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, app.H{"error": err.Error()})
		return
	}
	dateBuy, err := time.Parse("2006-01-02", in.DateBuy)
	if err != nil {
		c.JSON(http.StatusBadRequest, app.H{"error": "dateBuy must be YYYY-MM-DD"})
		return
	}
	fields := map[string]interface{}{
		"name":          in.Name,
		"date_buy":      dateBuy,
		"category":      in.Category,
		"specification": in.Specification,
		"vendor_id":     in.VendorID,
		"pic":           in.Pic,
	}
	if in.Status != "" {
		fields["status"] = in.Status
	}
	m, err := mc.Repo.UpdateModel(c.Request.Context(), c.Param("id"), fields)
	if err != nil {
		writeRepoError(c, err)
		return
	}
	c.JSON(http.StatusOK, m)
}
