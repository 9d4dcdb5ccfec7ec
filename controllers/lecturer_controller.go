package controllers

import (
	"net/http"
	"strings"

	"github.com/Ne-x-tr-on/toolport-v1/app"
	"github.com/Ne-x-tr-on/toolport-v1/db"
	"github.com/Ne-x-tr-on/toolport-v1/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type LecturerController struct{ *Srv }

func NewLecturerController(s *Srv) *LecturerController { return &LecturerController{Srv: s} }

func (lc *LecturerController) List(c *gin.Context) {
	ls, err := lc.Repo.ListLecturers(c.Request.Context())
	if err != nil {
		writeErr(c, err)
		return
	}
	c.JSON(http.StatusOK, app.H{"data": ls})
}

func (lc *LecturerController) GetOne(c *gin.Context) {
	l, err := lc.Repo.FindLecturerByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeErr(c, err)
		return
	}
	c.JSON(http.StatusOK, l)
}

func (lc *LecturerController) Create(c *gin.Context) {
	var in struct {
		Name       string `json:"name" binding:"required"`
		Department string `json:"department" binding:"required"`
		Email      string `json:"email" binding:"required"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, app.H{"error": "BAD_REQUEST", "message": err.Error()})
		return
	}
	if !strings.Contains(in.Email, "@") {
		c.JSON(http.StatusUnprocessableEntity, app.H{"error": "VALIDATION_ERROR", "message": "Invalid email"})
		return
	}

	l := &models.Lecturer{
		ID:         uuid.NewString(),
		Name:       strings.TrimSpace(in.Name),
		Department: in.Department,
		Email:      in.Email,
	}
	if err := lc.Repo.CreateLecturer(c.Request.Context(), l); err != nil {
		writeErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, l)
}

func (lc *LecturerController) Update(c *gin.Context) {
	var in struct {
		Name       *string `json:"name"`
		Department *string `json:"department"`
		Email      *string `json:"email"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, app.H{"error": "BAD_REQUEST", "message": err.Error()})
		return
	}

	l, err := lc.Repo.UpdateLecturer(c.Request.Context(), c.Param("id"), db.LecturerPatch{
		Name:       in.Name,
		Department: in.Department,
		Email:      in.Email,
	})
	if err != nil {
		writeErr(c, err)
		return
	}
	c.JSON(http.StatusOK, l)
}

func (lc *LecturerController) Delete(c *gin.Context) {
	if err := lc.Repo.DeleteLecturer(c.Request.Context(), c.Param("id")); err != nil {
		writeErr(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
