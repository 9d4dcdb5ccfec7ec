package db

import (
	"context"
	"log"
	"time"

	"github.com/Ne-x-tr-on/toolport-v1/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// 台账核心：Issue / Return / MarkLost / Recover / Paid / MarkOverdue。
//
// 每个操作 = 一个事务；所有受影响的行先 FOR UPDATE 再读计数器，
// 守卫（id + 当前状态）不命中返回 ErrNotFound，事务内任一步失败全部回滚。
// 锁顺序固定：delegation → tool → student，避免交叉死锁。

type IssueDelegationInput struct {
	ToolID          string
	StudentID       string
	LecturerID      string
	Quantity        int
	ConditionBefore models.ConditionGrade
	ExpectedReturn  time.Time

	IsInterDepartmental bool
	GuestDepartment     *string
	GuestLabProject     *string
}

type IssueResult struct {
	DelegationID string
	Status       models.DelegationStatus
	CheckedOutAt time.Time
	// 发出后工具剩余可用数
	ToolRemaining int
}

func (in *IssueDelegationInput) validate() error {
	if in.Quantity < 1 {
		return validationErr("quantity must be >= 1")
	}
	if !in.ConditionBefore.Valid() {
		return validationErr("invalid condition grade")
	}
	if in.ExpectedReturn.IsZero() {
		return validationErr("expected_return required")
	}
	if in.IsInterDepartmental {
		if in.GuestDepartment == nil || *in.GuestDepartment == "" ||
			in.GuestLabProject == nil || *in.GuestLabProject == "" {
			return validationErr("guest_department and guest_lab_project required for inter-departmental borrows")
		}
	}
	return nil
}

// IssueDelegation 原子操作 = 锁 tool → 锁 student、验未封禁 → 扣库存 → 建 delegation
func (r *Repo) IssueDelegation(ctx context.Context, in IssueDelegationInput) (*IssueResult, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	var res IssueResult
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var tool models.Tool
		if err := lockForUpdate(tx).First(&tool, "id = ?", in.ToolID).Error; err != nil {
			return asNotFound(err)
		}

		var stu models.Student
		if err := lockForUpdate(tx).First(&stu, "student_id = ?", in.StudentID).Error; err != nil {
			return asNotFound(err)
		}
		if stu.AccountStatus == models.AccountBanned {
			return ErrStudentBanned
		}

		var lec models.Lecturer
		if err := tx.Select("id").First(&lec, "id = ?", in.LecturerID).Error; err != nil {
			return asNotFound(err)
		}

		if err := reserveStock(tx, &tool, in.Quantity); err != nil {
			return err
		}

		now := time.Now().UTC()
		d := &models.Delegation{
			ID:                  uuid.NewString(),
			ToolID:              tool.ID,
			LecturerID:          in.LecturerID,
			StudentID:           stu.StudentID,
			Quantity:            in.Quantity,
			CheckedOutAt:        now,
			ExpectedReturn:      in.ExpectedReturn,
			Status:              models.DelegationIssued,
			ConditionBefore:     in.ConditionBefore,
			IsInterDepartmental: in.IsInterDepartmental,
			GuestDepartment:     in.GuestDepartment,
			GuestLabProject:     in.GuestLabProject,
		}
		if err := tx.Create(d).Error; err != nil {
			return err
		}

		res = IssueResult{
			DelegationID: d.ID,
			Status:       d.Status,
			CheckedOutAt: now,
			ToolRemaining: tool.Available(),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &res, nil
}

type ReturnResult struct {
	DelegationID string
	Status       models.DelegationStatus
	ReturnedAt   time.Time
	// 归还后工具可用数
	ToolAvailable int
}

// ReturnDelegation 守卫：当前必须是 Issued 或 Overdue
func (r *Repo) ReturnDelegation(ctx context.Context, delegationID string, conditionAfter models.ConditionGrade) (*ReturnResult, error) {
	if !conditionAfter.Valid() {
		return nil, validationErr("invalid condition grade")
	}

	var res ReturnResult
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var d models.Delegation
		if err := lockForUpdate(tx).
			Where("id = ? AND status IN ?", delegationID,
				[]models.DelegationStatus{models.DelegationIssued, models.DelegationOverdue}).
			First(&d).Error; err != nil {
			return asNotFound(err)
		}

		var tool models.Tool
		if err := lockForUpdate(tx).First(&tool, "id = ?", d.ToolID).Error; err != nil {
			return asNotFound(err)
		}
		if err := releaseStock(tx, &tool, d.Quantity); err != nil {
			return err
		}

		now := time.Now().UTC()
		if err := tx.Model(&models.Delegation{}).Where("id = ?", d.ID).
			Updates(map[string]any{
				"status":          models.DelegationReturned,
				"condition_after": conditionAfter,
				"returned_at":     now,
			}).Error; err != nil {
			return err
		}

		res = ReturnResult{
			DelegationID:  d.ID,
			Status:        models.DelegationReturned,
			ReturnedAt:    now,
			ToolAvailable: tool.Available(),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &res, nil
}

type LostResult struct {
	DelegationID  string
	Status        models.DelegationStatus
	LostToolCount int
	AccountStatus models.AccountStatus
	JustBanned    bool
}

// MarkDelegationLost 不放库存：东西还在外面，直到 Recover/Paid 了结；
// 学生丢失计数 +1，过阈值自动封禁
func (r *Repo) MarkDelegationLost(ctx context.Context, delegationID string, conditionAfter models.ConditionGrade) (*LostResult, error) {
	if !conditionAfter.Valid() {
		return nil, validationErr("invalid condition grade")
	}

	var res LostResult
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var d models.Delegation
		if err := lockForUpdate(tx).
			Where("id = ? AND status IN ?", delegationID,
				[]models.DelegationStatus{models.DelegationIssued, models.DelegationOverdue}).
			First(&d).Error; err != nil {
			return asNotFound(err)
		}

		var stu models.Student
		if err := lockForUpdate(tx).First(&stu, "student_id = ?", d.StudentID).Error; err != nil {
			return asNotFound(err)
		}

		if err := tx.Model(&models.Delegation{}).Where("id = ?", d.ID).
			Updates(map[string]any{
				"status":          models.DelegationLost,
				"condition_after": conditionAfter,
			}).Error; err != nil {
			return err
		}

		chg := models.AdjustStanding(stu.LostToolCount, stu.AccountStatus, +1)
		if err := tx.Model(&models.Student{}).Where("student_id = ?", stu.StudentID).
			Updates(map[string]any{
				"lost_tool_count": chg.NewCount,
				"account_status":  chg.NewStatus,
			}).Error; err != nil {
			return err
		}

		res = LostResult{
			DelegationID:  d.ID,
			Status:        models.DelegationLost,
			LostToolCount: chg.NewCount,
			AccountStatus: chg.NewStatus,
			JustBanned:    chg.JustBanned,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &res, nil
}

type ResolveResult struct {
	DelegationID  string
	Resolution    models.Resolution
	LostToolCount int
	AccountStatus models.AccountStatus
	Reactivated   bool
}

// RecoverLostTool 失物找回：resolution=Recovered，库存放回，丢失计数 -1（降回阈值下自动解禁）
func (r *Repo) RecoverLostTool(ctx context.Context, studentID, delegationID string) (*ResolveResult, error) {
	return r.resolveLostTool(ctx, studentID, delegationID, models.ResolutionRecovered)
}

// PayLostTool 赔付了结：resolution=Paid，工具核销、库存不回来，计数处理同 Recover
func (r *Repo) PayLostTool(ctx context.Context, studentID, delegationID string) (*ResolveResult, error) {
	return r.resolveLostTool(ctx, studentID, delegationID, models.ResolutionPaid)
}

func (r *Repo) resolveLostTool(ctx context.Context, studentID, delegationID string, resolution models.Resolution) (*ResolveResult, error) {
	var res ResolveResult
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// 守卫含 resolution IS NULL：第二次 Recover/Paid 落到 ErrNotFound
		var d models.Delegation
		if err := lockForUpdate(tx).
			Where("id = ? AND student_id = ? AND status = ? AND resolution IS NULL",
				delegationID, studentID, models.DelegationLost).
			First(&d).Error; err != nil {
			return asNotFound(err)
		}

		if resolution == models.ResolutionRecovered {
			var tool models.Tool
			if err := lockForUpdate(tx).First(&tool, "id = ?", d.ToolID).Error; err != nil {
				return asNotFound(err)
			}
			if err := releaseStock(tx, &tool, d.Quantity); err != nil {
				return err
			}
		}

		var stu models.Student
		if err := lockForUpdate(tx).First(&stu, "student_id = ?", studentID).Error; err != nil {
			return asNotFound(err)
		}

		if err := tx.Model(&models.Delegation{}).Where("id = ?", d.ID).
			Update("resolution", resolution).Error; err != nil {
			return err
		}

		chg := models.AdjustStanding(stu.LostToolCount, stu.AccountStatus, -1)
		if chg.Clamped {
			log.Printf("standing clamp: student %s lost_tool_count already 0 on %s", stu.StudentID, resolution)
		}
		if err := tx.Model(&models.Student{}).Where("student_id = ?", stu.StudentID).
			Updates(map[string]any{
				"lost_tool_count": chg.NewCount,
				"account_status":  chg.NewStatus,
			}).Error; err != nil {
			return err
		}

		res = ResolveResult{
			DelegationID:  d.ID,
			Resolution:    resolution,
			LostToolCount: chg.NewCount,
			AccountStatus: chg.NewStatus,
			Reactivated:   chg.Reactivated,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &res, nil
}

// MarkOverdue 定时任务批量把过期未还的 Issued 改成 Overdue，不动库存和学生计数
func (r *Repo) MarkOverdue(ctx context.Context) (int64, error) {
	today := time.Now().UTC().Truncate(24 * time.Hour)
	result := r.DB.WithContext(ctx).Model(&models.Delegation{}).
		Where("status = ? AND expected_return < ?", models.DelegationIssued, today).
		Update("status", models.DelegationOverdue)
	return result.RowsAffected, result.Error
}

// --- 库存帐 ---

// reserveStock 从已被本事务锁住的 tool 行上扣 qty 件：
// 消耗品直接减 quantity（用掉不追踪），非消耗品加 issued_qty
func reserveStock(tx *gorm.DB, tool *models.Tool, qty int) error {
	if tool.Quantity-tool.IssuedQty < qty {
		return ErrInsufficientStock
	}
	if tool.IsConsumable {
		tool.Quantity -= qty
	} else {
		tool.IssuedQty += qty
	}
	return writeCounters(tx, tool)
}

// releaseStock 归还 qty 件。消耗品永不回库；
// issued_qty 减到负数钳到 0 并记日志（说明之前记错账了）
func releaseStock(tx *gorm.DB, tool *models.Tool, qty int) error {
	if tool.IsConsumable {
		return nil
	}
	next := tool.IssuedQty - qty
	if next < 0 {
		log.Printf("stock clamp: tool %s issued_qty %d - %d would go negative", tool.ID, tool.IssuedQty, qty)
		next = 0
	}
	tool.IssuedQty = next
	return writeCounters(tx, tool)
}

// 任何计数器变更后立即重算展示状态
func writeCounters(tx *gorm.DB, tool *models.Tool) error {
	tool.Status = models.ComputeStatus(tool.Quantity, tool.IssuedQty, tool.LowStockThreshold)
	return tx.Model(&models.Tool{}).Where("id = ?", tool.ID).
		Updates(map[string]any{
			"quantity":   tool.Quantity,
			"issued_qty": tool.IssuedQty,
			"status":     tool.Status,
		}).Error
}
