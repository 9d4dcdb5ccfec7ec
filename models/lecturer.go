package models

import "time"

const LecturerTable = "tp_lecturers"

type Lecturer struct {
	ID         string `gorm:"type:uuid;primaryKey" json:"id"`
	Name       string `gorm:"size:200;not null" json:"name"`
	Department string `gorm:"size:120;not null" json:"department"`
	Email      string `gorm:"size:200;uniqueIndex;not null" json:"email"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (Lecturer) TableName() string { return LecturerTable }
