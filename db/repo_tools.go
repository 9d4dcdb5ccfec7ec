package db

import (
	"context"
	"strings"

	"github.com/Ne-x-tr-on/toolport-v1/models"

	"gorm.io/gorm"
)

// 工具 CRUD：台账之外的单行读写。改数量/阈值时同样锁行重算状态，
// 避免和并发的 Issue/Return 打架。

func (r *Repo) CreateTool(ctx context.Context, t *models.Tool) error {
	t.Status = models.ComputeStatus(t.Quantity, t.IssuedQty, t.LowStockThreshold)
	return r.DB.WithContext(ctx).Create(t).Error
}

func (r *Repo) FindToolByID(ctx context.Context, id string) (*models.Tool, error) {
	var t models.Tool
	if err := r.DB.WithContext(ctx).First(&t, "id = ?", id).Error; err != nil {
		return nil, asNotFound(err)
	}
	return &t, nil
}

type ToolFilters struct {
	Category string
	Search   string
}

func (r *Repo) ListTools(ctx context.Context, f ToolFilters) ([]models.Tool, error) {
	q := r.DB.WithContext(ctx).Model(&models.Tool{}).Order("name")
	if f.Category != "" {
		q = q.Where("category = ?", f.Category)
	}
	if f.Search != "" {
		like := "%" + strings.ToLower(f.Search) + "%"
		q = q.Where("LOWER(name) LIKE ? OR LOWER(COALESCE(description, '')) LIKE ?", like, like)
	}
	var tools []models.Tool
	if err := q.Find(&tools).Error; err != nil {
		return nil, err
	}
	return tools, nil
}

// ToolPatch 只更新非 nil 字段
type ToolPatch struct {
	Name              *string
	Category          *models.ToolCategory
	Subcategory       *string
	Quantity          *int
	Unit              *string
	LabID             *string
	Description       *string
	IsConsumable      *bool
	ConsumableType    *string
	LowStockThreshold *int
}

func (r *Repo) UpdateTool(ctx context.Context, id string, p ToolPatch) (*models.Tool, error) {
	if p.Quantity != nil && *p.Quantity < 0 {
		return nil, validationErr("quantity cannot be negative")
	}
	if p.Category != nil && !p.Category.Valid() {
		return nil, validationErr("invalid tool category")
	}

	var t models.Tool
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := lockForUpdate(tx).First(&t, "id = ?", id).Error; err != nil {
			return asNotFound(err)
		}

		if p.Name != nil {
			t.Name = *p.Name
		}
		if p.Category != nil {
			t.Category = *p.Category
		}
		if p.Subcategory != nil {
			t.Subcategory = p.Subcategory
		}
		if p.Quantity != nil {
			t.Quantity = *p.Quantity
		}
		if p.Unit != nil {
			t.Unit = *p.Unit
		}
		if p.LabID != nil {
			t.LabID = p.LabID
		}
		if p.Description != nil {
			t.Description = p.Description
		}
		if p.IsConsumable != nil {
			t.IsConsumable = *p.IsConsumable
		}
		if p.ConsumableType != nil {
			t.ConsumableType = p.ConsumableType
		}
		if p.LowStockThreshold != nil {
			t.LowStockThreshold = *p.LowStockThreshold
		}

		t.Status = models.ComputeStatus(t.Quantity, t.IssuedQty, t.LowStockThreshold)
		return tx.Save(&t).Error
	})
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *Repo) DeleteTool(ctx context.Context, id string) error {
	res := r.DB.WithContext(ctx).Delete(&models.Tool{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
