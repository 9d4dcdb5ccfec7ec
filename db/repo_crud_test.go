package db

import (
	"context"
	"testing"
	"time"

	"github.com/Ne-x-tr-on/toolport-v1/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestCreateToolComputesInitialStatus(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()

	tool := &models.Tool{
		ID:                uuid.NewString(),
		Name:              "Soldering Iron",
		Category:          models.CategoryElectronicComponent,
		Quantity:          3,
		Unit:              "pcs",
		LowStockThreshold: 5,
		DateAdded:         time.Now().UTC(),
	}
	require.NoError(t, r.CreateTool(ctx, tool))
	assert.Equal(t, models.ToolLowStock, tool.Status)

	got, err := r.FindToolByID(ctx, tool.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ToolLowStock, got.Status)

	_, err = r.FindToolByID(ctx, uuid.NewString())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUpdateToolRecomputesStatus(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()
	tool := seedTool(t, r, 10, 2, false)

	qty := 2
	got, err := r.UpdateTool(ctx, tool.ID, ToolPatch{Quantity: &qty})
	require.NoError(t, err)
	assert.Equal(t, 2, got.Quantity)
	assert.Equal(t, models.ToolLowStock, got.Status)

	bad := -1
	_, err = r.UpdateTool(ctx, tool.ID, ToolPatch{Quantity: &bad})
	var ve *ValidationError
	assert.ErrorAs(t, err, &ve)

	name := "Bench Vice"
	_, err = r.UpdateTool(ctx, uuid.NewString(), ToolPatch{Name: &name})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteTool(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()
	tool := seedTool(t, r, 1, 0, false)

	require.NoError(t, r.DeleteTool(ctx, tool.ID))
	assert.ErrorIs(t, r.DeleteTool(ctx, tool.ID), ErrNotFound)
}

func TestListToolsFilters(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()

	hammer := seedTool(t, r, 5, 1, false)
	require.NoError(t, r.DB.Model(hammer).Updates(map[string]any{
		"name": "Claw Hammer", "category": models.CategoryHandTool,
	}).Error)
	seedTool(t, r, 5, 1, false) // Digital Multimeter, Electrical Tool

	byCat, err := r.ListTools(ctx, ToolFilters{Category: string(models.CategoryHandTool)})
	require.NoError(t, err)
	require.Len(t, byCat, 1)
	assert.Equal(t, "Claw Hammer", byCat[0].Name)

	bySearch, err := r.ListTools(ctx, ToolFilters{Search: "multimeter"})
	require.NoError(t, err)
	require.Len(t, bySearch, 1)
	assert.Equal(t, "Digital Multimeter", bySearch[0].Name)
}

func TestStudentIDNormalization(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()

	s := &models.Student{
		StudentID:  " enm221-0200-2023 ",
		Name:       "Brian Kiprop",
		Department: "Mechatronics",
		Email:      "Brian.Kiprop@Students.Example.ac.ke",
	}
	require.NoError(t, r.CreateStudent(ctx, s))
	assert.Equal(t, "ENM221-0200-2023", s.StudentID)
	assert.Equal(t, "brian.kiprop@students.example.ac.ke", s.Email)

	// 查找同样不区分大小写
	got, err := r.FindStudentByID(ctx, "enm221-0200-2023")
	require.NoError(t, err)
	assert.Equal(t, s.StudentID, got.StudentID)
}

func TestDuplicateLabNameConflicts(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()

	require.NoError(t, r.CreateLab(ctx, &models.Lab{ID: uuid.NewString(), Name: "Mechatronics Lab 1"}))
	err := r.CreateLab(ctx, &models.Lab{ID: uuid.NewString(), Name: "Mechatronics Lab 1"})
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)
}

func TestListDelegationsFilters(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()
	tool := seedTool(t, r, 10, 2, false)
	alice := seedStudent(t, r, "ENM221-0301-2023", 0, models.AccountActive)
	bob := seedStudent(t, r, "ENM221-0302-2023", 0, models.AccountActive)
	require.NoError(t, r.DB.Model(bob).Update("name", "Bob Mwangi").Error)
	lec := seedLecturer(t, r)

	a, err := r.IssueDelegation(ctx, issueInput(tool, alice, lec, 1))
	require.NoError(t, err)
	in := issueInput(tool, bob, lec, 2)
	dept, proj := "Civil Engineering", "Survey rig"
	in.IsInterDepartmental = true
	in.GuestDepartment, in.GuestLabProject = &dept, &proj
	b, err := r.IssueDelegation(ctx, in)
	require.NoError(t, err)
	_, err = r.ReturnDelegation(ctx, a.DelegationID, models.ConditionGood)
	require.NoError(t, err)

	rows, err := r.ListDelegations(ctx, DelegationFilters{Status: string(models.DelegationIssued)})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, b.DelegationID, rows[0].ID)
	assert.Equal(t, "Digital Multimeter", rows[0].ToolName)

	rows, err = r.ListDelegations(ctx, DelegationFilters{StudentID: "enm221-0301-2023"})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, a.DelegationID, rows[0].ID)

	rows, err = r.ListDelegations(ctx, DelegationFilters{Search: "mwangi"})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, b.DelegationID, rows[0].ID)

	rows, err = r.ListDelegations(ctx, DelegationFilters{InterDept: true})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	require.NotNil(t, rows[0].GuestDepartment)
	assert.Equal(t, "Civil Engineering", *rows[0].GuestDepartment)

	got, err := r.FindDelegationByID(ctx, a.DelegationID)
	require.NoError(t, err)
	assert.Equal(t, models.DelegationReturned, got.Status)

	_, err = r.FindDelegationByID(ctx, uuid.NewString())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGetStudentProfile(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()
	tool := seedTool(t, r, 10, 2, false)
	stu := seedStudent(t, r, "ENM221-0400-2023", 0, models.AccountActive)
	lec := seedLecturer(t, r)

	holding, err := r.IssueDelegation(ctx, issueInput(tool, stu, lec, 1))
	require.NoError(t, err)
	returned, err := r.IssueDelegation(ctx, issueInput(tool, stu, lec, 1))
	require.NoError(t, err)
	_, err = r.ReturnDelegation(ctx, returned.DelegationID, models.ConditionGood)
	require.NoError(t, err)
	lost, err := r.IssueDelegation(ctx, issueInput(tool, stu, lec, 1))
	require.NoError(t, err)
	_, err = r.MarkDelegationLost(ctx, lost.DelegationID, models.ConditionDamaged)
	require.NoError(t, err)
	_, err = r.PayLostTool(ctx, stu.StudentID, lost.DelegationID)
	require.NoError(t, err)

	p, err := r.GetStudentProfile(ctx, stu.StudentID)
	require.NoError(t, err)
	require.Len(t, p.CurrentHoldings, 1)
	assert.Equal(t, holding.DelegationID, p.CurrentHoldings[0].ID)
	require.Len(t, p.History, 1)
	assert.Equal(t, returned.DelegationID, p.History[0].ID)
	require.Len(t, p.LostTools, 1)
	assert.True(t, p.LostTools[0].Resolved)
	require.NotNil(t, p.LostTools[0].Resolution)
	assert.Equal(t, string(models.ResolutionPaid), *p.LostTools[0].Resolution)

	_, err = r.GetStudentProfile(ctx, "ENM221-9999-2023")
	assert.ErrorIs(t, err, ErrNotFound)
}
