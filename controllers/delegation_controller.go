package controllers

import (
	"net/http"
	"time"

	"github.com/Ne-x-tr-on/toolport-v1/app"
	"github.com/Ne-x-tr-on/toolport-v1/db"
	"github.com/Ne-x-tr-on/toolport-v1/models"

	"github.com/gin-gonic/gin"
)

type DelegationController struct{ *Srv }

func NewDelegationController(s *Srv) *DelegationController { return &DelegationController{Srv: s} }

// 列表：?status=&studentId=&lecturerId=&search=&interDept=true
func (dc *DelegationController) List(c *gin.Context) {
	f := db.DelegationFilters{
		Status:     c.Query("status"),
		StudentID:  c.Query("studentId"),
		LecturerID: c.Query("lecturerId"),
		Search:     c.Query("search"),
		InterDept:  c.Query("interDept") == "true",
	}
	rows, err := dc.Repo.ListDelegations(c.Request.Context(), f)
	if err != nil {
		writeErr(c, err)
		return
	}
	c.JSON(http.StatusOK, app.H{"data": rows})
}

func (dc *DelegationController) GetOne(c *gin.Context) {
	row, err := dc.Repo.FindDelegationByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeErr(c, err)
		return
	}
	c.JSON(http.StatusOK, row)
}

// 发放
func (dc *DelegationController) Issue(c *gin.Context) {
	var in struct {
		ToolID              string  `json:"toolId" binding:"required"`
		StudentID           string  `json:"studentId" binding:"required"`
		LecturerID          string  `json:"lecturerId" binding:"required"`
		Quantity            int     `json:"quantity"`
		ExpectedReturn      string  `json:"expectedReturn" binding:"required"` // YYYY-MM-DD
		ConditionBefore     string  `json:"conditionBefore" binding:"required"`
		IsInterDepartmental bool    `json:"isInterDepartmental"`
		GuestDepartment     *string `json:"guestDepartment"`
		GuestLabProject     *string `json:"guestLabProject"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, app.H{"error": "BAD_REQUEST", "message": err.Error()})
		return
	}

	grade, ok := models.ParseConditionGrade(in.ConditionBefore)
	if !ok {
		c.JSON(http.StatusUnprocessableEntity, app.H{"error": "VALIDATION_ERROR", "message": "invalid condition grade"})
		return
	}
	due, err := time.ParseInLocation("2006-01-02", in.ExpectedReturn, time.UTC)
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, app.H{"error": "VALIDATION_ERROR", "message": "expectedReturn must be YYYY-MM-DD"})
		return
	}

	res, err := dc.Repo.IssueDelegation(c.Request.Context(), db.IssueDelegationInput{
		ToolID:              in.ToolID,
		StudentID:           in.StudentID,
		LecturerID:          in.LecturerID,
		Quantity:            in.Quantity,
		ConditionBefore:     grade,
		ExpectedReturn:      due,
		IsInterDepartmental: in.IsInterDepartmental,
		GuestDepartment:     in.GuestDepartment,
		GuestLabProject:     in.GuestLabProject,
	})
	countLedgerOp("issue", err)
	if err != nil {
		writeErr(c, err)
		return
	}

	c.JSON(http.StatusCreated, app.H{
		"id":               res.DelegationID,
		"status":           res.Status,
		"checkedOutAt":     res.CheckedOutAt,
		"toolRemainingQty": res.ToolRemaining,
	})
}

// 归还；markAsLost=true 时走挂失
func (dc *DelegationController) Return(c *gin.Context) {
	id := c.Param("id")

	var in struct {
		ConditionAfter string `json:"conditionAfter" binding:"required"`
		MarkAsLost     bool   `json:"markAsLost"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, app.H{"error": "BAD_REQUEST", "message": err.Error()})
		return
	}
	grade, ok := models.ParseConditionGrade(in.ConditionAfter)
	if !ok {
		c.JSON(http.StatusUnprocessableEntity, app.H{"error": "VALIDATION_ERROR", "message": "invalid condition grade"})
		return
	}

	if in.MarkAsLost {
		res, err := dc.Repo.MarkDelegationLost(c.Request.Context(), id, grade)
		countLedgerOp("lost", err)
		if err != nil {
			writeErr(c, err)
			return
		}
		msg := "Delegation marked as lost"
		if res.JustBanned {
			msg = "Student has been automatically banned (5+ lost tools)"
		}
		c.JSON(http.StatusOK, app.H{
			"id":                   res.DelegationID,
			"status":               res.Status,
			"studentLostToolCount": res.LostToolCount,
			"studentAccountStatus": res.AccountStatus,
			"message":              msg,
		})
		return
	}

	res, err := dc.Repo.ReturnDelegation(c.Request.Context(), id, grade)
	countLedgerOp("return", err)
	if err != nil {
		writeErr(c, err)
		return
	}
	c.JSON(http.StatusOK, app.H{
		"id":              res.DelegationID,
		"status":          res.Status,
		"returnedAt":      res.ReturnedAt,
		"toolRestoredQty": res.ToolAvailable,
	})
}
