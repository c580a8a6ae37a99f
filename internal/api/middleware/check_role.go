package middleware

import (
	"Campaigner/internal/pkg/response"
	"slices"

	"github.com/gin-gonic/gin"
)

// CheckRoles 调用方需至少拥有一个指定角色，依赖 AuthMiddleware 写入的 roles
func CheckRoles(allowed ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		roles := c.GetStringSlice("roles")
		if !slices.ContainsFunc(roles, func(role string) bool {
			return slices.Contains(allowed, role)
		}) {
			response.Fail(c, response.Forbidden, "权限不足：无权访问该资源")
			c.Abort()
			return
		}
		c.Next()
	}
}
