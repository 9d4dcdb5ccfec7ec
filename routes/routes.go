package routes

import (
	"net/http"
	"strings"
	"time"

	"github.com/Ne-x-tr-on/toolport-v1/app"
	"github.com/Ne-x-tr-on/toolport-v1/controllers"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.Engine, a *app.App) {
	// 控制器与依赖
	s := controllers.GetSrv(a)
	delCtl := controllers.NewDelegationController(s)
	toolCtl := controllers.NewToolController(s)
	stuCtl := controllers.NewStudentController(s)
	labCtl := controllers.NewLabController(s)
	lecCtl := controllers.NewLecturerController(s)
	userCtl := controllers.NewUserController(s)

	// 复用的中间件
	authMW := app.AuthRequired(s.AppSess, s.Repo, a.Config.AdminEmails)
	adminMW := app.AdminOnly()
	seenMW := app.TouchLastSeen(s.Repo, a.RDB, 5*time.Minute)
	secureCookie := strings.HasPrefix(a.Config.WebOrigin, "https://")

	// ------------------------------
	// 会话（校验/登出；发会话在外部认证服务）
	// ------------------------------
	v1 := r.Group("/v1", authMW, seenMW)
	{
		v1.GET("/auth/whoami", func(c *app.Ctx) {
			uid, _ := c.Get("userID")
			username, _ := c.Get("username")
			isAdmin, _ := c.Get("isAdmin")
			c.JSON(http.StatusOK, app.H{
				"userID":   uid,
				"username": username,
				"isAdmin":  isAdmin,
			})
		})

		v1.POST("/auth/logout", func(c *app.Ctx) {
			if ck, err := c.Request.Cookie(app.AppSessionCookie); err == nil && ck.Value != "" {
				_ = s.AppSess.Delete(c.Request.Context(), ck.Value)
			}
			http.SetCookie(c.Writer, &http.Cookie{
				Name:     app.AppSessionCookie,
				Value:    "",
				Path:     "/",
				MaxAge:   -1,
				HttpOnly: true,
				SameSite: http.SameSiteLaxMode,
				Secure:   secureCookie,
			})
			c.JSON(http.StatusOK, app.H{"ok": true})
		})

		// ------------------------------
		// 台账（发放/归还/挂失/了结）
		// ------------------------------
		v1.GET("/delegations", delCtl.List)
		v1.GET("/delegations/:id", delCtl.GetOne)
		v1.POST("/delegations", delCtl.Issue)
		v1.POST("/delegations/:id/return", delCtl.Return)

		v1.POST("/students/:id/lost-tools/:delegationId/recover", stuCtl.Recover)
		v1.POST("/students/:id/lost-tools/:delegationId/paid", stuCtl.Paid)

		// ------------------------------
		// 只读目录
		// ------------------------------
		v1.GET("/tools", toolCtl.List)
		v1.GET("/tools/:id", toolCtl.GetOne)
		v1.GET("/students", stuCtl.List)
		v1.GET("/students/:id", stuCtl.Profile)
		v1.GET("/labs", labCtl.List)
		v1.GET("/labs/:id", labCtl.GetOne)
		v1.GET("/lecturers", lecCtl.List)
		v1.GET("/lecturers/:id", lecCtl.GetOne)
	}

	// ------------------------------
	// 管理面（元数据增删改 + 工作人员账号）
	// ------------------------------
	admin := r.Group("/v1", authMW, adminMW)
	{
		admin.POST("/tools", toolCtl.Create)
		admin.PUT("/tools/:id", toolCtl.Update)
		admin.DELETE("/tools/:id", toolCtl.Delete)

		admin.POST("/students", stuCtl.Create)
		admin.PUT("/students/:id", stuCtl.Update)
		admin.DELETE("/students/:id", stuCtl.Delete)

		admin.POST("/labs", labCtl.Create)
		admin.PUT("/labs/:id", labCtl.Update)
		admin.DELETE("/labs/:id", labCtl.Delete)

		admin.POST("/lecturers", lecCtl.Create)
		admin.PUT("/lecturers/:id", lecCtl.Update)
		admin.DELETE("/lecturers/:id", lecCtl.Delete)

		admin.GET("/users", userCtl.List) // ?q=&page=&size=
		admin.GET("/users/:id", userCtl.GetOne)
		admin.DELETE("/users/:id", userCtl.Delete)
	}
}
