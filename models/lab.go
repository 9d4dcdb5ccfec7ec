package models

import "time"

const LabTable = "tp_labs"

type Lab struct {
	ID          string  `gorm:"type:uuid;primaryKey" json:"id"`
	Name        string  `gorm:"size:200;uniqueIndex;not null" json:"name"`
	Location    *string `gorm:"size:200" json:"location,omitempty"`
	Department  string  `gorm:"size:120;not null" json:"department"`
	Description *string `gorm:"size:500" json:"description,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (Lab) TableName() string { return LabTable }
