package db

import (
	"context"
	"strings"
	"time"

	"github.com/Ne-x-tr-on/toolport-v1/models"

	"gorm.io/gorm"
)

// DelegationRow 列表/详情用的联表行（带工具、讲师、学生名字）
type DelegationRow struct {
	ID           string `json:"id"`
	ToolID       string `json:"toolId"`
	ToolName     string `json:"toolName"`
	Quantity     int    `json:"quantity"`
	LecturerID   string `json:"lecturerId"`
	LecturerName string `json:"lecturerName"`
	StudentID    string  `json:"studentId"`
	StudentName  string  `json:"studentName"`
	ClassName    *string `json:"className,omitempty"`

	CheckedOutAt   time.Time  `json:"checkedOutAt"`
	ExpectedReturn time.Time  `json:"expectedReturn"`
	ReturnedAt     *time.Time `json:"returnedAt,omitempty"`

	Status          models.DelegationStatus `json:"status"`
	ConditionBefore models.ConditionGrade   `json:"conditionBefore"`
	ConditionAfter  *models.ConditionGrade  `json:"conditionAfter,omitempty"`

	IsInterDepartmental bool    `json:"isInterDepartmental"`
	GuestDepartment     *string `json:"guestDepartment,omitempty"`
	GuestLabProject     *string `json:"guestLabProject,omitempty"`

	Resolution *models.Resolution `json:"resolution,omitempty"`
	CreatedAt  time.Time          `json:"createdAt"`
}

type DelegationFilters struct {
	Status     string
	StudentID  string
	LecturerID string
	Search     string
	InterDept  bool
}

func (r *Repo) delegationRows(ctx context.Context) *gorm.DB {
	return r.DB.WithContext(ctx).
		Table(models.DelegationTable + " AS d").
		Select(`d.id, d.tool_id, t.name AS tool_name, d.quantity,
			d.lecturer_id, l.name AS lecturer_name,
			d.student_id, s.name AS student_name, s.class_name,
			d.checked_out_at, d.expected_return, d.returned_at,
			d.status, d.condition_before, d.condition_after,
			d.is_inter_departmental, d.guest_department, d.guest_lab_project,
			d.resolution, d.created_at`).
		Joins("JOIN " + models.ToolTable + " t ON t.id = d.tool_id").
		Joins("JOIN " + models.LecturerTable + " l ON l.id = d.lecturer_id").
		Joins("JOIN " + models.StudentTable + " s ON s.student_id = d.student_id")
}

func (r *Repo) ListDelegations(ctx context.Context, f DelegationFilters) ([]DelegationRow, error) {
	q := r.delegationRows(ctx).Order("d.created_at DESC")

	if f.Status != "" {
		q = q.Where("d.status = ?", f.Status)
	}
	if f.StudentID != "" {
		q = q.Where("UPPER(d.student_id) = ?", strings.ToUpper(f.StudentID))
	}
	if f.LecturerID != "" {
		q = q.Where("d.lecturer_id = ?", f.LecturerID)
	}
	if f.Search != "" {
		like := "%" + strings.ToLower(f.Search) + "%"
		q = q.Where("LOWER(s.name) LIKE ? OR LOWER(t.name) LIKE ? OR LOWER(d.student_id) LIKE ?",
			like, like, like)
	}
	if f.InterDept {
		q = q.Where("d.is_inter_departmental = ?", true)
	}

	var rows []DelegationRow
	if err := q.Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *Repo) FindDelegationByID(ctx context.Context, id string) (*DelegationRow, error) {
	var rows []DelegationRow
	if err := r.delegationRows(ctx).Where("d.id = ?", id).Limit(1).Scan(&rows).Error; err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, ErrNotFound
	}
	return &rows[0], nil
}
