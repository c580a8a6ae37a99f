package handler

import (
	"Campaigner/internal/service"

	"github.com/gin-gonic/gin"
)

// actorFrom 读取鉴权中间件注入的调用方身份
func actorFrom(c *gin.Context) service.Actor {
	return service.Actor{
		UserID: c.GetUint64("user_id"),
		Roles:  c.GetStringSlice("roles"),
	}
}
