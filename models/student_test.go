package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAdjustStandingBanAtThreshold(t *testing.T) {
	chg := AdjustStanding(4, AccountActive, +1)
	assert.Equal(t, 5, chg.NewCount)
	assert.Equal(t, AccountBanned, chg.NewStatus)
	assert.True(t, chg.JustBanned)
	assert.False(t, chg.Reactivated)
}

func TestAdjustStandingBelowThresholdStaysActive(t *testing.T) {
	chg := AdjustStanding(3, AccountActive, +1)
	assert.Equal(t, 4, chg.NewCount)
	assert.Equal(t, AccountActive, chg.NewStatus)
	assert.False(t, chg.JustBanned)
}

func TestAdjustStandingReactivate(t *testing.T) {
	chg := AdjustStanding(5, AccountBanned, -1)
	assert.Equal(t, 4, chg.NewCount)
	assert.Equal(t, AccountActive, chg.NewStatus)
	assert.True(t, chg.Reactivated)
	assert.False(t, chg.JustBanned)
}

func TestAdjustStandingStaysBannedAboveThreshold(t *testing.T) {
	// 6 → 5 仍在阈值上，不解禁
	chg := AdjustStanding(6, AccountBanned, -1)
	assert.Equal(t, 5, chg.NewCount)
	assert.Equal(t, AccountBanned, chg.NewStatus)
	assert.False(t, chg.Reactivated)
	assert.False(t, chg.JustBanned)
}

func TestAdjustStandingAlreadyBannedIncrement(t *testing.T) {
	chg := AdjustStanding(5, AccountBanned, +1)
	assert.Equal(t, 6, chg.NewCount)
	assert.Equal(t, AccountBanned, chg.NewStatus)
	assert.False(t, chg.JustBanned) // 状态没翻转
}

func TestAdjustStandingClampsAtZero(t *testing.T) {
	chg := AdjustStanding(0, AccountActive, -1)
	assert.Equal(t, 0, chg.NewCount)
	assert.Equal(t, AccountActive, chg.NewStatus)
	assert.True(t, chg.Clamped)
}

func TestParseAccountStatus(t *testing.T) {
	s, ok := ParseAccountStatus("Banned")
	assert.True(t, ok)
	assert.Equal(t, AccountBanned, s)

	_, ok = ParseAccountStatus("Suspended")
	assert.False(t, ok)
}
