package controllers

import (
	"net/http"
	"strings"

	"github.com/Ne-x-tr-on/toolport-v1/app"
	"github.com/Ne-x-tr-on/toolport-v1/db"
	"github.com/Ne-x-tr-on/toolport-v1/models"

	"github.com/gin-gonic/gin"
)

type StudentController struct{ *Srv }

func NewStudentController(s *Srv) *StudentController { return &StudentController{Srv: s} }

func (sc *StudentController) List(c *gin.Context) {
	ss, err := sc.Repo.ListStudents(c.Request.Context(), db.StudentFilters{
		Status: c.Query("status"),
		Search: c.Query("search"),
	})
	if err != nil {
		writeErr(c, err)
		return
	}
	c.JSON(http.StatusOK, app.H{"data": ss})
}

// 档案：学生 + 在借 + 历史 + 丢失记录
func (sc *StudentController) Profile(c *gin.Context) {
	p, err := sc.Repo.GetStudentProfile(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeErr(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (sc *StudentController) Create(c *gin.Context) {
	var in struct {
		StudentID  string   `json:"studentId" binding:"required"`
		Name       string   `json:"name" binding:"required"`
		ClassName  *string  `json:"className"`
		Department string   `json:"department" binding:"required"`
		Email      string   `json:"email" binding:"required"`
		Units      []string `json:"units"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, app.H{"error": "BAD_REQUEST", "message": err.Error()})
		return
	}
	if strings.TrimSpace(in.StudentID) == "" || strings.TrimSpace(in.Name) == "" {
		c.JSON(http.StatusUnprocessableEntity, app.H{"error": "VALIDATION_ERROR", "message": "studentId and name required"})
		return
	}
	if !strings.Contains(in.Email, "@") {
		c.JSON(http.StatusUnprocessableEntity, app.H{"error": "VALIDATION_ERROR", "message": "Invalid email"})
		return
	}

	s := &models.Student{
		StudentID:  in.StudentID,
		Name:       strings.TrimSpace(in.Name),
		ClassName:  in.ClassName,
		Department: strings.TrimSpace(in.Department),
		Email:      in.Email,
		Units:      in.Units,
	}
	if err := sc.Repo.CreateStudent(c.Request.Context(), s); err != nil {
		writeErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, s)
}

func (sc *StudentController) Update(c *gin.Context) {
	var in struct {
		Name       *string   `json:"name"`
		ClassName  *string   `json:"className"`
		Department *string   `json:"department"`
		Email      *string   `json:"email"`
		Units      *[]string `json:"units"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, app.H{"error": "BAD_REQUEST", "message": err.Error()})
		return
	}

	s, err := sc.Repo.UpdateStudent(c.Request.Context(), c.Param("id"), db.StudentPatch{
		Name:       in.Name,
		ClassName:  in.ClassName,
		Department: in.Department,
		Email:      in.Email,
		Units:      in.Units,
	})
	if err != nil {
		writeErr(c, err)
		return
	}
	c.JSON(http.StatusOK, s)
}

func (sc *StudentController) Delete(c *gin.Context) {
	if err := sc.Repo.DeleteStudent(c.Request.Context(), c.Param("id")); err != nil {
		writeErr(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// 失物找回：库存放回，计数 -1，降回阈值下自动解禁
func (sc *StudentController) Recover(c *gin.Context) {
	res, err := sc.Repo.RecoverLostTool(c.Request.Context(),
		strings.ToUpper(c.Param("id")), c.Param("delegationId"))
	countLedgerOp("recover", err)
	if err != nil {
		writeErr(c, err)
		return
	}
	c.JSON(http.StatusOK, app.H{
		"message":       "Tool marked as recovered",
		"newLostCount":  res.LostToolCount,
		"accountStatus": res.AccountStatus,
	})
}

// 赔付了结：不回库存，其余同 Recover
func (sc *StudentController) Paid(c *gin.Context) {
	var in struct {
		ReceiptUploaded *bool `json:"receiptUploaded"`
	}
	_ = c.ShouldBindJSON(&in) // body 可选

	res, err := sc.Repo.PayLostTool(c.Request.Context(),
		strings.ToUpper(c.Param("id")), c.Param("delegationId"))
	countLedgerOp("paid", err)
	if err != nil {
		writeErr(c, err)
		return
	}

	receipt := in.ReceiptUploaded != nil && *in.ReceiptUploaded
	c.JSON(http.StatusOK, app.H{
		"message":         "Tool marked as paid",
		"resolution":      res.Resolution,
		"receiptUploaded": receipt,
		"newLostCount":    res.LostToolCount,
		"accountStatus":   res.AccountStatus,
	})
}
