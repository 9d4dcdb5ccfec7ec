package models

import "time"

const ToolTable = "tp_tools"

// ToolStatus / ToolCategory 存字符串（与前端展示一致），集合封闭，入库前必须过 Parse
type ToolStatus string

const (
	ToolAvailable       ToolStatus = "Available"
	ToolPartiallyIssued ToolStatus = "Partially Issued"
	ToolLowStock        ToolStatus = "Low Stock"
	ToolOutOfStock      ToolStatus = "Out of Stock"
)

func (s ToolStatus) Valid() bool {
	switch s {
	case ToolAvailable, ToolPartiallyIssued, ToolLowStock, ToolOutOfStock:
		return true
	}
	return false
}

func ParseToolStatus(s string) (ToolStatus, bool) {
	v := ToolStatus(s)
	return v, v.Valid()
}

type ToolCategory string

const (
	CategoryHandTool            ToolCategory = "Hand Tool"
	CategoryElectricalTool      ToolCategory = "Electrical Tool"
	CategoryElectronicComponent ToolCategory = "Electronic Component"
	CategoryMechatronics        ToolCategory = "Mechatronics"
	CategoryConsumable          ToolCategory = "Consumable"
)

func (c ToolCategory) Valid() bool {
	switch c {
	case CategoryHandTool, CategoryElectricalTool, CategoryElectronicComponent,
		CategoryMechatronics, CategoryConsumable:
		return true
	}
	return false
}

func ParseToolCategory(s string) (ToolCategory, bool) {
	v := ToolCategory(s)
	return v, v.Valid()
}

// ComputeStatus 由计数器推导展示状态，纯函数，每次计数器变更后重算。
// available < 0 属于账目坏掉的防御分支，归入 Out of Stock。
func ComputeStatus(quantity, issuedQty, threshold int) ToolStatus {
	available := quantity - issuedQty
	switch {
	case available <= 0:
		return ToolOutOfStock
	case available <= threshold:
		return ToolLowStock
	case issuedQty > 0:
		return ToolPartiallyIssued
	default:
		return ToolAvailable
	}
}

type Tool struct {
	ID          string       `gorm:"type:uuid;primaryKey" json:"id"`
	Name        string       `gorm:"size:200;not null" json:"name"`
	Category    ToolCategory `gorm:"size:40;not null" json:"category"`
	Subcategory *string      `gorm:"size:120" json:"subcategory,omitempty"`

	// 不变式：0 <= issued_qty <= quantity；available = quantity - issued_qty
	Quantity  int `gorm:"not null;check:quantity >= 0" json:"quantity"`
	IssuedQty int `gorm:"not null;default:0;check:issued_qty >= 0" json:"issuedQty"`

	Unit        string  `gorm:"size:20;not null;default:'pcs'" json:"unit"`
	LabID       *string `gorm:"type:uuid;index" json:"labId,omitempty"`
	Description *string `gorm:"size:500" json:"description,omitempty"`

	IsConsumable   bool    `gorm:"not null;default:false" json:"isConsumable"`
	ConsumableType *string `gorm:"size:60" json:"consumableType,omitempty"`

	LowStockThreshold int        `gorm:"not null;default:5" json:"lowStockThreshold"`
	Status            ToolStatus `gorm:"size:20;not null" json:"status"`

	DateAdded time.Time `gorm:"not null" json:"dateAdded"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (Tool) TableName() string { return ToolTable }

func (t *Tool) Available() int { return t.Quantity - t.IssuedQty }
