package controllers

import (
	"net/http"

	"equiptrack/app"
	"equiptrack/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type VendorController struct{ *Srv }

func NewVendorController(s *Srv) *VendorController { return &VendorController{Srv: s} }

func (vc *VendorController) List(c *gin.Context) {
	vs, err := vc.Repo.ListVendors(c.Request.Context())
	if err != nil {
		writeRepoError(c, err)
		return
	}
	c.JSON(http.StatusOK, app.H{"vendors": vs})
}

func (vc *VendorController) Get(c *gin.Context) {
	d, err := vc.Repo.GetVendorDetail(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeRepoError(c, err)
		return
	}
	c.JSON(http.StatusOK, d)
}

func (vc *VendorController) Create(c *gin.Context) {
	var in struct {
		Name  string `json:"name" binding:"required"`
		Phone string `json:"phone"`
		Memo  string `json:"memo"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, app.H{"error": err.Error()})
		return
	}
	v := &models.Vendor{ID: uuid.NewString(), Name: in.Name, Phone: in.Phone, Memo: in.Memo}
	if err := vc.Repo.CreateVendor(c.Request.Context(), v); err != nil {
		writeRepoError(c, err)
		return
	}
	c.JSON(http.StatusCreated, v)
}

func (vc *VendorController) Update(c *gin.Context) {
	var in struct {
		Name  string `json:"name" binding:"required"`
		Phone string `json:"phone"`
		Memo  string `json:"memo"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, app.H{"error": err.Error()})
		return
	}
	v, err := vc.Repo.UpdateVendor(c.Request.Context(), c.Param("id"), map[string]interface{}{
		"name": in.Name, "phone": in.Phone, "memo": in.Memo,
	})
	if err != nil {
		writeRepoError(c, err)
		return
	}
	c.JSON(http.StatusOK, v)
}

func (vc *VendorController) Delete(c *gin.Context) {
	if err := vc.Repo.DeleteVendor(c.Request.Context(), c.Param("id")); err != nil {
		writeRepoError(c, err)
		return
	}
	c.JSON(http.StatusOK, app.H{"ok": true})
}
