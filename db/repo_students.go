package db

import (
	"context"
	"strings"
	"time"

	"github.com/Ne-x-tr-on/toolport-v1/models"
)

func (r *Repo) CreateStudent(ctx context.Context, s *models.Student) error {
	s.StudentID = strings.ToUpper(strings.TrimSpace(s.StudentID))
	s.Email = strings.ToLower(strings.TrimSpace(s.Email))
	return r.DB.WithContext(ctx).Create(s).Error
}

func (r *Repo) FindStudentByID(ctx context.Context, studentID string) (*models.Student, error) {
	var s models.Student
	if err := r.DB.WithContext(ctx).First(&s, "student_id = ?", strings.ToUpper(studentID)).Error; err != nil {
		return nil, asNotFound(err)
	}
	return &s, nil
}

type StudentFilters struct {
	Status string
	Search string
}

func (r *Repo) ListStudents(ctx context.Context, f StudentFilters) ([]models.Student, error) {
	q := r.DB.WithContext(ctx).Model(&models.Student{}).Order("name")
	if f.Status != "" {
		q = q.Where("account_status = ?", f.Status)
	}
	if f.Search != "" {
		like := "%" + strings.ToLower(f.Search) + "%"
		q = q.Where("LOWER(name) LIKE ? OR LOWER(student_id) LIKE ?", like, like)
	}
	var ss []models.Student
	if err := q.Find(&ss).Error; err != nil {
		return nil, err
	}
	return ss, nil
}

type StudentPatch struct {
	Name       *string
	ClassName  *string
	Department *string
	Email      *string
	Units      *[]string
}

func (r *Repo) UpdateStudent(ctx context.Context, studentID string, p StudentPatch) (*models.Student, error) {
	s, err := r.FindStudentByID(ctx, studentID)
	if err != nil {
		return nil, err
	}

	if p.Name != nil {
		s.Name = *p.Name
	}
	if p.ClassName != nil {
		s.ClassName = p.ClassName
	}
	if p.Department != nil {
		s.Department = *p.Department
	}
	if p.Email != nil {
		s.Email = strings.ToLower(strings.TrimSpace(*p.Email))
	}
	if p.Units != nil {
		s.Units = *p.Units
	}

	if err := r.DB.WithContext(ctx).Save(s).Error; err != nil {
		return nil, err
	}
	return s, nil
}

func (r *Repo) DeleteStudent(ctx context.Context, studentID string) error {
	res := r.DB.WithContext(ctx).Delete(&models.Student{}, "student_id = ?", strings.ToUpper(studentID))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// --- 学生档案页 ---

type DelegationSummary struct {
	ID             string     `json:"id"`
	ToolName       string     `json:"toolName"`
	Quantity       int        `json:"quantity"`
	CheckedOutAt   time.Time  `json:"checkedOutAt"`
	ExpectedReturn time.Time  `json:"expectedReturn"`
	ReturnedAt     *time.Time `json:"returnedAt,omitempty"`
	Status         string     `json:"status"`
}

type LostToolRecord struct {
	DelegationID string    `json:"delegationId"`
	ToolName     string    `json:"toolName"`
	Quantity     int       `json:"quantity"`
	CheckedOutAt time.Time `json:"checkedOutAt"`
	Resolved     bool      `json:"resolved"`
	Resolution   *string   `json:"resolution,omitempty"`
}

type StudentProfile struct {
	Student         models.Student      `json:"student"`
	CurrentHoldings []DelegationSummary `json:"currentHoldings"`
	History         []DelegationSummary `json:"history"`
	LostTools       []LostToolRecord    `json:"lostTools"`
}

// GetStudentProfile 档案 = 学生 + 在借 + 已还历史 + 丢失记录
func (r *Repo) GetStudentProfile(ctx context.Context, studentID string) (*StudentProfile, error) {
	s, err := r.FindStudentByID(ctx, studentID)
	if err != nil {
		return nil, err
	}

	sel := `d.id, t.name AS tool_name, d.quantity, d.checked_out_at,
		d.expected_return, d.returned_at, d.status`
	join := "JOIN " + models.ToolTable + " t ON t.id = d.tool_id"

	var holdings []DelegationSummary
	if err := r.DB.WithContext(ctx).Table(models.DelegationTable+" AS d").
		Select(sel).Joins(join).
		Where("d.student_id = ? AND d.status IN ?", s.StudentID,
			[]models.DelegationStatus{models.DelegationIssued, models.DelegationOverdue}).
		Order("d.checked_out_at DESC").
		Scan(&holdings).Error; err != nil {
		return nil, err
	}

	var history []DelegationSummary
	if err := r.DB.WithContext(ctx).Table(models.DelegationTable+" AS d").
		Select(sel).Joins(join).
		Where("d.student_id = ? AND d.status = ?", s.StudentID, models.DelegationReturned).
		Order("d.checked_out_at DESC").
		Scan(&history).Error; err != nil {
		return nil, err
	}

	var lost []struct {
		DelegationID string
		ToolName     string
		Quantity     int
		CheckedOutAt time.Time
		Resolution   *string
	}
	if err := r.DB.WithContext(ctx).Table(models.DelegationTable+" AS d").
		Select(`d.id AS delegation_id, t.name AS tool_name, d.quantity,
			d.checked_out_at, d.resolution`).
		Joins(join).
		Where("d.student_id = ? AND d.status = ?", s.StudentID, models.DelegationLost).
		Order("d.checked_out_at DESC").
		Scan(&lost).Error; err != nil {
		return nil, err
	}

	records := make([]LostToolRecord, 0, len(lost))
	for _, l := range lost {
		records = append(records, LostToolRecord{
			DelegationID: l.DelegationID,
			ToolName:     l.ToolName,
			Quantity:     l.Quantity,
			CheckedOutAt: l.CheckedOutAt,
			Resolved:     l.Resolution != nil,
			Resolution:   l.Resolution,
		})
	}

	return &StudentProfile{
		Student:         *s,
		CurrentHoldings: holdings,
		History:         history,
		LostTools:       records,
	}, nil
}
