// controllers/srv.go
package controllers

import (
	"errors"
	"log"
	"net/http"

	"github.com/Ne-x-tr-on/toolport-v1/app"
	"github.com/Ne-x-tr-on/toolport-v1/config"
	"github.com/Ne-x-tr-on/toolport-v1/db"
	"github.com/Ne-x-tr-on/toolport-v1/session"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type Srv struct {
	Repo    *db.Repo
	AppSess *session.AppSessionStore
	Cfg     config.Config
}

func GetSrv(a *app.App) *Srv {
	return &Srv{
		Repo:    db.NewRepo(a.DB),
		AppSess: a.AppSessions(),
		Cfg:     a.Config,
	}
}

// writeErr 领域错误 → HTTP。守卫/校验失败原样透出，
// 存储错误只记服务端日志，对外给 opaque 的 DB_ERROR
func writeErr(c *gin.Context, err error) {
	var ve *db.ValidationError
	switch {
	case errors.Is(err, db.ErrNotFound):
		c.JSON(http.StatusNotFound, app.H{"error": "NOT_FOUND", "message": "Resource not found"})
	case errors.As(err, &ve):
		c.JSON(http.StatusUnprocessableEntity, app.H{"error": "VALIDATION_ERROR", "message": ve.Msg})
	case errors.Is(err, db.ErrStudentBanned):
		c.JSON(http.StatusBadRequest, app.H{"error": "STUDENT_BANNED", "message": err.Error()})
	case errors.Is(err, db.ErrInsufficientStock):
		c.JSON(http.StatusBadRequest, app.H{"error": "INSUFFICIENT_STOCK", "message": err.Error()})
	case errors.Is(err, gorm.ErrDuplicatedKey):
		c.JSON(http.StatusConflict, app.H{"error": "CONFLICT", "message": "A record with that value already exists"})
	default:
		log.Printf("db error: %v", err)
		c.JSON(http.StatusInternalServerError, app.H{"error": "DB_ERROR", "message": "A database error occurred"})
	}
}

// countLedgerOp 按结果打点
func countLedgerOp(op string, err error) {
	outcome := "ok"
	var ve *db.ValidationError
	switch {
	case err == nil:
	case errors.Is(err, db.ErrNotFound), errors.Is(err, db.ErrStudentBanned),
		errors.Is(err, db.ErrInsufficientStock), errors.As(err, &ve):
		outcome = "domain_error"
	default:
		outcome = "error"
	}
	app.LedgerOps.WithLabelValues(op, outcome).Inc()
}
