package db

import (
	"context"
	"time"

	"github.com/Ne-x-tr-on/toolport-v1/models"
)

// LabRow 列表用：实验室 + 名下工具数
type LabRow struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Location    *string   `json:"location,omitempty"`
	Department  string    `json:"department"`
	Description *string   `json:"description,omitempty"`
	ToolCount   int64     `json:"toolCount"`
	CreatedAt   time.Time `json:"createdAt"`
}

func (r *Repo) CreateLab(ctx context.Context, l *models.Lab) error {
	return r.DB.WithContext(ctx).Create(l).Error
}

func (r *Repo) ListLabs(ctx context.Context) ([]LabRow, error) {
	var rows []LabRow
	err := r.DB.WithContext(ctx).Table(models.LabTable+" AS l").
		Select(`l.id, l.name, l.location, l.department, l.description,
			l.created_at, COUNT(t.id) AS tool_count`).
		Joins("LEFT JOIN " + models.ToolTable + " t ON t.lab_id = l.id").
		Group("l.id, l.name, l.location, l.department, l.description, l.created_at").
		Order("l.name").
		Scan(&rows).Error
	return rows, err
}

func (r *Repo) FindLabByID(ctx context.Context, id string) (*LabRow, error) {
	var rows []LabRow
	err := r.DB.WithContext(ctx).Table(models.LabTable+" AS l").
		Select(`l.id, l.name, l.location, l.department, l.description,
			l.created_at, COUNT(t.id) AS tool_count`).
		Joins("LEFT JOIN "+models.ToolTable+" t ON t.lab_id = l.id").
		Where("l.id = ?", id).
		Group("l.id, l.name, l.location, l.department, l.description, l.created_at").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, ErrNotFound
	}
	return &rows[0], nil
}

type LabPatch struct {
	Name        *string
	Location    *string
	Department  *string
	Description *string
}

func (r *Repo) UpdateLab(ctx context.Context, id string, p LabPatch) (*models.Lab, error) {
	var l models.Lab
	if err := r.DB.WithContext(ctx).First(&l, "id = ?", id).Error; err != nil {
		return nil, asNotFound(err)
	}
	if p.Name != nil {
		l.Name = *p.Name
	}
	if p.Location != nil {
		l.Location = p.Location
	}
	if p.Department != nil {
		l.Department = *p.Department
	}
	if p.Description != nil {
		l.Description = p.Description
	}
	if err := r.DB.WithContext(ctx).Save(&l).Error; err != nil {
		return nil, err
	}
	return &l, nil
}

func (r *Repo) DeleteLab(ctx context.Context, id string) error {
	res := r.DB.WithContext(ctx).Delete(&models.Lab{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
