package models

import "time"

const StudentTable = "tp_students"

type AccountStatus string

const (
	AccountActive AccountStatus = "Active"
	AccountBanned AccountStatus = "Banned"
)

func (s AccountStatus) Valid() bool {
	return s == AccountActive || s == AccountBanned
}

func ParseAccountStatus(s string) (AccountStatus, bool) {
	v := AccountStatus(s)
	return v, v.Valid()
}

// BanThreshold 累计丢失 5 件即自动封禁
const BanThreshold = 5

type Student struct {
	StudentID string  `gorm:"size:40;primaryKey" json:"studentId"`
	Name      string  `gorm:"size:200;not null" json:"name"`
	ClassName *string `gorm:"size:120" json:"className,omitempty"`

	Department string `gorm:"size:120;not null" json:"department"`
	Email      string `gorm:"size:200;not null" json:"email"`

	AccountStatus AccountStatus `gorm:"size:10;not null;default:'Active'" json:"accountStatus"`
	LostToolCount int           `gorm:"not null;default:0;check:lost_tool_count >= 0" json:"lostToolCount"`

	Units []string `gorm:"serializer:json" json:"units,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (Student) TableName() string { return StudentTable }

// StandingChange AdjustStanding 的结果
type StandingChange struct {
	NewCount  int
	NewStatus AccountStatus

	// JustBanned / Reactivated 只在状态真的翻转时为 true
	JustBanned  bool
	Reactivated bool

	// Clamped 表示减到负数被钳到 0：说明之前的账已经错了，调用方应记日志
	Clamped bool
}

// AdjustStanding 封禁规则唯一出处：计数上/下调，下限 0；
// 过阈值 Active→Banned，降回阈值以下 Banned→Active，其余不动。
func AdjustStanding(count int, status AccountStatus, delta int) StandingChange {
	n := count + delta
	clamped := false
	if n < 0 {
		n = 0
		clamped = true
	}

	next := AccountActive
	if n >= BanThreshold {
		next = AccountBanned
	}

	return StandingChange{
		NewCount:    n,
		NewStatus:   next,
		JustBanned:  next == AccountBanned && status == AccountActive,
		Reactivated: next == AccountActive && status == AccountBanned,
		Clamped:     clamped,
	}
}
