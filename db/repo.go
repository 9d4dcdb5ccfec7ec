package db

import (
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// 领域错误：守卫不命中（不存在或状态不对）一律 ErrNotFound，
// 其它数据库错误原样向上抛，由 controller 层转成 500
var (
	ErrNotFound          = errors.New("resource not found")
	ErrInsufficientStock = errors.New("insufficient stock available")
	ErrStudentBanned     = errors.New("student is banned (5+ lost tools), cannot issue tools")
)

// ValidationError 带消息的入参错误（数量非法、缺 guest 字段等）
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return "validation error: " + e.Msg }

func validationErr(msg string) error { return &ValidationError{Msg: msg} }

type Repo struct{ DB *gorm.DB }

func NewRepo(db *gorm.DB) *Repo { return &Repo{DB: db} }

// lockForUpdate 给后续的 First/Find 挂行级排他锁。
// sqlite（测试库）没有 FOR UPDATE，靠单连接串行化写事务，效果等价。
func lockForUpdate(tx *gorm.DB) *gorm.DB {
	if tx.Dialector.Name() == "postgres" {
		return tx.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	return tx
}

// asNotFound 把 gorm 的 record-not-found 折叠成领域层 ErrNotFound
func asNotFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}
