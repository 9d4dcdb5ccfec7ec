package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComputeStatus(t *testing.T) {
	cases := []struct {
		name      string
		quantity  int
		issued    int
		threshold int
		want      ToolStatus
	}{
		{"untouched stock", 10, 0, 5, ToolAvailable},
		{"some issued, plenty left", 20, 3, 5, ToolPartiallyIssued},
		{"exactly at threshold", 10, 5, 5, ToolLowStock},
		{"one below threshold", 10, 6, 5, ToolLowStock},
		{"everything issued", 10, 10, 5, ToolOutOfStock},
		{"quantity zero", 0, 0, 5, ToolOutOfStock},
		{"negative available clamps to out of stock", 3, 5, 5, ToolOutOfStock},
		{"threshold zero never reports low", 10, 9, 0, ToolPartiallyIssued},
		{"threshold covers full stock", 4, 0, 5, ToolLowStock},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ComputeStatus(tc.quantity, tc.issued, tc.threshold))
		})
	}
}

func TestComputeStatusProgression(t *testing.T) {
	// 10 件、阈值 2：逐步借出时状态按序退化
	assert.Equal(t, ToolAvailable, ComputeStatus(10, 0, 2))
	assert.Equal(t, ToolPartiallyIssued, ComputeStatus(10, 4, 2))
	assert.Equal(t, ToolLowStock, ComputeStatus(10, 8, 2))
	assert.Equal(t, ToolLowStock, ComputeStatus(10, 9, 2))
	assert.Equal(t, ToolOutOfStock, ComputeStatus(10, 10, 2))
}

func TestParseToolCategory(t *testing.T) {
	for _, s := range []string{"Hand Tool", "Electrical Tool", "Electronic Component", "Mechatronics", "Consumable"} {
		c, ok := ParseToolCategory(s)
		assert.True(t, ok, s)
		assert.Equal(t, ToolCategory(s), c)
	}

	_, ok := ParseToolCategory("Power Tool")
	assert.False(t, ok)
	_, ok = ParseToolCategory("hand tool") // 大小写敏感
	assert.False(t, ok)
	_, ok = ParseToolCategory("")
	assert.False(t, ok)
}

func TestParseToolStatus(t *testing.T) {
	s, ok := ParseToolStatus("Partially Issued")
	assert.True(t, ok)
	assert.Equal(t, ToolPartiallyIssued, s)

	_, ok = ParseToolStatus("Broken")
	assert.False(t, ok)
}

func TestToolAvailable(t *testing.T) {
	tool := Tool{Quantity: 7, IssuedQty: 2}
	assert.Equal(t, 5, tool.Available())
}
