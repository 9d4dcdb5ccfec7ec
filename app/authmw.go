package app

import (
	"net/http"
	"strings"

	"github.com/Ne-x-tr-on/toolport-v1/db"
	"github.com/Ne-x-tr-on/toolport-v1/session"

	"github.com/gin-gonic/gin"
)

const AppSessionCookie = "app_session"

// AuthRequired 只消费"已认证"这一事实：会话由外部认证服务写入 Redis，
// 这里解析 Cookie → 会话 → 用户仍存在，然后把 userID/isAdmin 放进 Context。
// adminEmails 是 ADMIN_EMAILS 兜底名单，命中则视同管理员
func AuthRequired(appSess *session.AppSessionStore, repo *db.Repo, adminEmails []string) gin.HandlerFunc {
	return func(c *gin.Context) {
		ck, err := c.Request.Cookie(AppSessionCookie)
		if err != nil || ck.Value == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, H{"error": "UNAUTHORIZED"})
			return
		}
		as, err := appSess.Get(c.Request.Context(), ck.Value)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, H{"error": "UNAUTHORIZED"})
			return
		}

		// 确认用户仍存在（被删号的会话立即作废）
		u, err := repo.FindUserByID(c.Request.Context(), as.UserID)
		if err != nil {
			_ = appSess.Delete(c.Request.Context(), ck.Value)
			c.AbortWithStatusJSON(http.StatusUnauthorized, H{"error": "UNAUTHORIZED"})
			return
		}

		isAdmin := u.IsAdmin
		if !isAdmin {
			for _, e := range adminEmails {
				if strings.EqualFold(u.Username, e) {
					isAdmin = true
					break
				}
			}
		}

		c.Set("userID", u.ID)
		c.Set("username", u.Username)
		c.Set("isAdmin", isAdmin)
		c.Next()
	}
}

func AdminOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		v, ok := c.Get("isAdmin")
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, H{"error": "UNAUTHORIZED"})
			return
		}
		if isAdmin, _ := v.(bool); !isAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, H{"error": "FORBIDDEN"})
			return
		}
		c.Next()
	}
}
