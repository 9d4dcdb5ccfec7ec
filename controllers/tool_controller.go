package controllers

import (
	"net/http"
	"strings"
	"time"

	"github.com/Ne-x-tr-on/toolport-v1/app"
	"github.com/Ne-x-tr-on/toolport-v1/db"
	"github.com/Ne-x-tr-on/toolport-v1/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ToolController struct{ *Srv }

func NewToolController(s *Srv) *ToolController { return &ToolController{Srv: s} }

func (tc *ToolController) List(c *gin.Context) {
	tools, err := tc.Repo.ListTools(c.Request.Context(), db.ToolFilters{
		Category: c.Query("category"),
		Search:   c.Query("search"),
	})
	if err != nil {
		writeErr(c, err)
		return
	}
	c.JSON(http.StatusOK, app.H{"data": tools, "total": len(tools)})
}

func (tc *ToolController) GetOne(c *gin.Context) {
	t, err := tc.Repo.FindToolByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeErr(c, err)
		return
	}
	c.JSON(http.StatusOK, t)
}

func (tc *ToolController) Create(c *gin.Context) {
	var in struct {
		Name              string  `json:"name" binding:"required"`
		Category          string  `json:"category" binding:"required"`
		Subcategory       *string `json:"subcategory"`
		Quantity          int     `json:"quantity"`
		Unit              *string `json:"unit"`
		LabID             *string `json:"labId"`
		Description       *string `json:"description"`
		IsConsumable      bool    `json:"isConsumable"`
		ConsumableType    *string `json:"consumableType"`
		LowStockThreshold *int    `json:"lowStockThreshold"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, app.H{"error": "BAD_REQUEST", "message": err.Error()})
		return
	}

	if strings.TrimSpace(in.Name) == "" {
		c.JSON(http.StatusUnprocessableEntity, app.H{"error": "VALIDATION_ERROR", "message": "Tool name required"})
		return
	}
	if in.Quantity < 0 {
		c.JSON(http.StatusUnprocessableEntity, app.H{"error": "VALIDATION_ERROR", "message": "Quantity cannot be negative"})
		return
	}
	cat, ok := models.ParseToolCategory(in.Category)
	if !ok {
		c.JSON(http.StatusUnprocessableEntity, app.H{"error": "VALIDATION_ERROR", "message": "invalid tool category"})
		return
	}

	unit := "pcs"
	if in.Unit != nil && *in.Unit != "" {
		unit = *in.Unit
	}
	threshold := 5
	if in.LowStockThreshold != nil {
		threshold = *in.LowStockThreshold
	}

	t := &models.Tool{
		ID:                uuid.NewString(),
		Name:              strings.TrimSpace(in.Name),
		Category:          cat,
		Subcategory:       in.Subcategory,
		Quantity:          in.Quantity,
		Unit:              unit,
		LabID:             in.LabID,
		Description:       in.Description,
		IsConsumable:      in.IsConsumable,
		ConsumableType:    in.ConsumableType,
		LowStockThreshold: threshold,
		DateAdded:         time.Now().UTC(),
	}
	if err := tc.Repo.CreateTool(c.Request.Context(), t); err != nil {
		writeErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, app.H{
		"id":        t.ID,
		"status":    t.Status,
		"createdAt": t.CreatedAt,
	})
}

func (tc *ToolController) Update(c *gin.Context) {
	var in struct {
		Name              *string `json:"name"`
		Category          *string `json:"category"`
		Subcategory       *string `json:"subcategory"`
		Quantity          *int    `json:"quantity"`
		Unit              *string `json:"unit"`
		LabID             *string `json:"labId"`
		Description       *string `json:"description"`
		IsConsumable      *bool   `json:"isConsumable"`
		ConsumableType    *string `json:"consumableType"`
		LowStockThreshold *int    `json:"lowStockThreshold"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, app.H{"error": "BAD_REQUEST", "message": err.Error()})
		return
	}

	p := db.ToolPatch{
		Name:              in.Name,
		Subcategory:       in.Subcategory,
		Quantity:          in.Quantity,
		Unit:              in.Unit,
		LabID:             in.LabID,
		Description:       in.Description,
		IsConsumable:      in.IsConsumable,
		ConsumableType:    in.ConsumableType,
		LowStockThreshold: in.LowStockThreshold,
	}
	if in.Category != nil {
		cat, ok := models.ParseToolCategory(*in.Category)
		if !ok {
			c.JSON(http.StatusUnprocessableEntity, app.H{"error": "VALIDATION_ERROR", "message": "invalid tool category"})
			return
		}
		p.Category = &cat
	}

	t, err := tc.Repo.UpdateTool(c.Request.Context(), c.Param("id"), p)
	if err != nil {
		writeErr(c, err)
		return
	}
	c.JSON(http.StatusOK, app.H{
		"id":        t.ID,
		"name":      t.Name,
		"quantity":  t.Quantity,
		"issuedQty": t.IssuedQty,
		"status":    t.Status,
		"updatedAt": t.UpdatedAt,
	})
}

func (tc *ToolController) Delete(c *gin.Context) {
	if err := tc.Repo.DeleteTool(c.Request.Context(), c.Param("id")); err != nil {
		writeErr(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
