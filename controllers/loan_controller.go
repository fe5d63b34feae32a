package controllers

import (
	"net/http"
	"time"

	"equiptrack/app"
	"equiptrack/db"

	"github.com/gin-gonic/gin"
)

type LoanController struct{ *Srv }

func NewLoanController(s *Srv) *LoanController { return &LoanController{Srv: s} }

// Lend 借出。dateOut 不传就用今天。
func (lc *LoanController) Lend(c *gin.Context) {
	var in struct {
		EquipmentID string `json:"equipmentId" binding:"required"`
		ApplicantID string `json:"applicantId" binding:"required"`
		DateOut     string `json:"dateOut"` // YYYY-MM-DD
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, app.H{"error": err.Error()})
		return
	}
	dateOut := time.Now().UTC().Truncate(24 * time.Hour)
	if in.DateOut != "" {
		d, err := time.Parse("2006-01-02", in.DateOut)
		if err != nil {
			c.JSON(http.StatusBadRequest, app.H{"error": "dateOut must be YYYY-MM-DD"})
			return
		}
		dateOut = d
	}

	loan, err := lc.Repo.Lend(c.Request.Context(), in.EquipmentID, in.ApplicantID, dateOut, app.ActorID(c))
	if err != nil {
		writeRepoError(c, err)
		return
	}
	c.JSON(http.StatusCreated, loan)
}

func (lc *LoanController) Return(c *gin.Context) {
	loan, err := lc.Repo.Return(c.Request.Context(), c.Param("id"), app.ActorID(c))
	if err != nil {
		writeRepoError(c, err)
		return
	}
	c.JSON(http.StatusOK, loan)
}

// Update 管理员修正台账，归还日期可以改回空（重新算未归还）
func (lc *LoanController) Update(c *gin.Context) {
	var in struct {
		EquipmentID string  `json:"equipmentId" binding:"required"`
		ApplicantID string  `json:"applicantId" binding:"required"`
		DateOut     string  `json:"dateOut" binding:"required"`
		DateIn      *string `json:"dateIn"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, app.H{"error": err.Error()})
		return
	}
	dateOut, err := time.Parse("2006-01-02", in.DateOut)
	if err != nil {
		c.JSON(http.StatusBadRequest, app.H{"error": "dateOut must be YYYY-MM-DD"})
		return
	}
	var dateIn *time.Time
	if in.DateIn != nil {
		d, err := time.Parse("2006-01-02", *in.DateIn)
		if err != nil {
			c.JSON(http.StatusBadRequest, app.H{"error": "dateIn must be YYYY-MM-DD"})
			return
		}
		dateIn = &d
	}

	loan, err := lc.Repo.UpdateLoan(c.Request.Context(), c.Param("id"), db.UpdateLoanInput{
		EquipmentID: in.EquipmentID,
		ApplicantID: in.ApplicantID,
		DateOut:     dateOut,
		DateIn:      dateIn,
	}, app.ActorID(c))
	if err != nil {
		writeRepoError(c, err)
		return
	}
	c.JSON(http.StatusOK, loan)
}

func (lc *LoanController) Delete(c *gin.Context) {
	if err := lc.Repo.DeleteLoan(c.Request.Context(), c.Param("id")); err != nil {
		writeRepoError(c, err)
		return
	}
	c.JSON(http.StatusOK, app.H{"ok": true})
}

func (lc *LoanController) List(c *gin.Context) {
	ls, err := lc.Repo.ListLoans(c.Request.Context(),
		c.Query("applicantId"), c.Query("equipmentId"), c.Query("status"))
	if err != nil {
		writeRepoError(c, err)
		return
	}
	c.JSON(http.StatusOK, app.H{"loans": ls})
}
