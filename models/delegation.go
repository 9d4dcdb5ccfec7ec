package models

import "time"

const DelegationTable = "tp_delegations"

type DelegationStatus string

const (
	DelegationIssued   DelegationStatus = "Issued"
	DelegationReturned DelegationStatus = "Returned"
	DelegationOverdue  DelegationStatus = "Overdue"
	DelegationLost     DelegationStatus = "Lost"
)

func (s DelegationStatus) Valid() bool {
	switch s {
	case DelegationIssued, DelegationReturned, DelegationOverdue, DelegationLost:
		return true
	}
	return false
}

func ParseDelegationStatus(s string) (DelegationStatus, bool) {
	v := DelegationStatus(s)
	return v, v.Valid()
}

type ConditionGrade string

const (
	ConditionExcellent ConditionGrade = "Excellent"
	ConditionGood      ConditionGrade = "Good"
	ConditionFair      ConditionGrade = "Fair"
	ConditionDamaged   ConditionGrade = "Damaged"
)

func (g ConditionGrade) Valid() bool {
	switch g {
	case ConditionExcellent, ConditionGood, ConditionFair, ConditionDamaged:
		return true
	}
	return false
}

func ParseConditionGrade(s string) (ConditionGrade, bool) {
	v := ConditionGrade(s)
	return v, v.Valid()
}

// Resolution 只在 status=Lost 之后写一次（Recovered 或 Paid），状态本身保持 Lost
type Resolution string

const (
	ResolutionRecovered Resolution = "Recovered"
	ResolutionPaid      Resolution = "Paid"
)

func (r Resolution) Valid() bool {
	return r == ResolutionRecovered || r == ResolutionPaid
}

// Delegation 一条借出记录：某学生经某讲师授权借走某工具若干件
type Delegation struct {
	ID         string `gorm:"type:uuid;primaryKey" json:"id"`
	ToolID     string `gorm:"type:uuid;index;not null" json:"toolId"`
	LecturerID string `gorm:"type:uuid;not null" json:"lecturerId"`
	StudentID  string `gorm:"size:40;index;not null" json:"studentId"`
	Quantity   int    `gorm:"not null" json:"quantity"`

	CheckedOutAt   time.Time  `gorm:"not null" json:"checkedOutAt"`
	ExpectedReturn time.Time  `gorm:"not null" json:"expectedReturn"`
	ReturnedAt     *time.Time `json:"returnedAt,omitempty"`

	Status          DelegationStatus `gorm:"size:10;not null;index" json:"status"`
	ConditionBefore ConditionGrade   `gorm:"size:10;not null" json:"conditionBefore"`
	ConditionAfter  *ConditionGrade  `gorm:"size:10" json:"conditionAfter,omitempty"`

	IsInterDepartmental bool    `gorm:"not null;default:false" json:"isInterDepartmental"`
	GuestDepartment     *string `gorm:"size:120" json:"guestDepartment,omitempty"`
	GuestLabProject     *string `gorm:"size:120" json:"guestLabProject,omitempty"`

	Resolution *Resolution `gorm:"size:10" json:"resolution,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (Delegation) TableName() string { return DelegationTable }
