package db

import (
	"context"
	"strings"

	"github.com/Ne-x-tr-on/toolport-v1/models"
)

func (r *Repo) CreateLecturer(ctx context.Context, l *models.Lecturer) error {
	l.Email = strings.ToLower(strings.TrimSpace(l.Email))
	return r.DB.WithContext(ctx).Create(l).Error
}

func (r *Repo) FindLecturerByID(ctx context.Context, id string) (*models.Lecturer, error) {
	var l models.Lecturer
	if err := r.DB.WithContext(ctx).First(&l, "id = ?", id).Error; err != nil {
		return nil, asNotFound(err)
	}
	return &l, nil
}

func (r *Repo) ListLecturers(ctx context.Context) ([]models.Lecturer, error) {
	var ls []models.Lecturer
	err := r.DB.WithContext(ctx).Order("name").Find(&ls).Error
	return ls, err
}

type LecturerPatch struct {
	Name       *string
	Department *string
	Email      *string
}

func (r *Repo) UpdateLecturer(ctx context.Context, id string, p LecturerPatch) (*models.Lecturer, error) {
	l, err := r.FindLecturerByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p.Name != nil {
		l.Name = *p.Name
	}
	if p.Department != nil {
		l.Department = *p.Department
	}
	if p.Email != nil {
		l.Email = strings.ToLower(strings.TrimSpace(*p.Email))
	}
	if err := r.DB.WithContext(ctx).Save(l).Error; err != nil {
		return nil, err
	}
	return l, nil
}

func (r *Repo) DeleteLecturer(ctx context.Context, id string) error {
	res := r.DB.WithContext(ctx).Delete(&models.Lecturer{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
