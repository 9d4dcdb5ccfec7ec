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

type LabController struct{ *Srv }

func NewLabController(s *Srv) *LabController { return &LabController{Srv: s} }

func (lc *LabController) List(c *gin.Context) {
	rows, err := lc.Repo.ListLabs(c.Request.Context())
	if err != nil {
		writeErr(c, err)
		return
	}
	c.JSON(http.StatusOK, app.H{"data": rows})
}

func (lc *LabController) GetOne(c *gin.Context) {
	row, err := lc.Repo.FindLabByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeErr(c, err)
		return
	}
	c.JSON(http.StatusOK, row)
}

func (lc *LabController) Create(c *gin.Context) {
	var in struct {
		Name        string  `json:"name" binding:"required"`
		Location    *string `json:"location"`
		Department  string  `json:"department" binding:"required"`
		Description *string `json:"description"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, app.H{"error": "BAD_REQUEST", "message": err.Error()})
		return
	}
	if strings.TrimSpace(in.Name) == "" {
		c.JSON(http.StatusUnprocessableEntity, app.H{"error": "VALIDATION_ERROR", "message": "Lab name required"})
		return
	}

	l := &models.Lab{
		ID:          uuid.NewString(),
		Name:        strings.TrimSpace(in.Name),
		Location:    in.Location,
		Department:  in.Department,
		Description: in.Description,
	}
	if err := lc.Repo.CreateLab(c.Request.Context(), l); err != nil {
		writeErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, l)
}

func (lc *LabController) Update(c *gin.Context) {
	var in struct {
		Name        *string `json:"name"`
		Location    *string `json:"location"`
		Department  *string `json:"department"`
		Description *string `json:"description"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, app.H{"error": "BAD_REQUEST", "message": err.Error()})
		return
	}

	l, err := lc.Repo.UpdateLab(c.Request.Context(), c.Param("id"), db.LabPatch{
		Name:        in.Name,
		Location:    in.Location,
		Department:  in.Department,
		Description: in.Description,
	})
	if err != nil {
		writeErr(c, err)
		return
	}
	c.JSON(http.StatusOK, l)
}

func (lc *LabController) Delete(c *gin.Context) {
	if err := lc.Repo.DeleteLab(c.Request.Context(), c.Param("id")); err != nil {
		writeErr(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
