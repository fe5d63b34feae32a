package controllers

import (
	"net/http"

	"equiptrack/app"
	"equiptrack/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ApplicantController struct{ *Srv }

func NewApplicantController(s *Srv) *ApplicantController { return &ApplicantController{Srv: s} }

type applicantInput struct {
	Name   string `json:"name" binding:"required"`
	Role   string `json:"role" binding:"required,oneof=admin-staff senior-teacher junior-teacher"`
	Status string `json:"status" binding:"omitempty,oneof=active resigned leave-of-absence"`
	Email  string `json:"email" binding:"omitempty,email"`
	Phone  string `json:"phone"`
}

func (ac *ApplicantController) List(c *gin.Context) {
	as, err := ac.Repo.ListApplicants(c.Request.Context())
	if err != nil {
		writeRepoError(c, err)
		return
	}
	c.JSON(http.StatusOK, app.H{"applicants": as})
}

func (ac *ApplicantController) Get(c *gin.Context) {
	d, err := ac.Repo.GetApplicantDetail(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeRepoError(c, err)
		return
	}
	c.JSON(http.StatusOK, d)
}

func (ac *ApplicantController) Create(c *gin.Context) {
	var in applicantInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, app.H{"error": err.Error()})
		return
	}
	status := in.Status
	if status == "" {
		status = models.ApplicantActive
	}
	a := &models.Applicant{
		ID:     uuid.NewString(),
		Name:   in.Name,
		Role:   in.Role,
		Status: status,
		Email:  in.Email,
		Phone:  in.Phone,
	}
	if err := ac.Repo.CreateApplicant(c.Request.Context(), a); err != nil {
		writeRepoError(c, err)
		return
	}
	c.JSON(http.StatusCreated, a)
}

func (ac *ApplicantController) Update(c *gin.Context) {
	var in applicantInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, app.H{"error": err.Error()})
		return
	}
	fields := map[string]interface{}{
		"name":  in.Name,
		"role":  in.Role,
		"email": in.Email,
		"phone": in.Phone,
	}
	if in.Status != "" {
		fields["status"] = in.Status
	}
	a, err := ac.Repo.UpdateApplicant(c.Request.Context(), c.Param("id"), fields)
	if err != nil {
		writeRepoError(c, err)
		return
	}
	c.JSON(http.StatusOK, a)
}
