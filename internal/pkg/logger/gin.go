package logger

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/goccy/go-json"
)

type accessLog struct {
	Time    string `json:"time"`
	Level   string `json:"level"`
	Msg     string `json:"msg"`
	TraceID string `json:"trace_id"`
	Method  string `json:"method"`
	Path    string `json:"path"`
	Status  int    `json:"status"`
	Latency string `json:"latency"`
	IP      string `json:"client_ip"`
}

// SetupGin 注册 JSON 访问日志与 panic 恢复
func SetupGin(r *gin.Engine) {
	r.Use(gin.LoggerWithConfig(gin.LoggerConfig{
		Output: LogWriter,
		Formatter: func(p gin.LogFormatterParams) string {
			var traceID string
			if id, ok := p.Keys[TraceIDKey].(string); ok {
				traceID = id
			}
			if traceID == "" && p.Request != nil {
				traceID = TraceID(p.Request.Context())
			}

			line, _ := json.Marshal(accessLog{
				Time:    p.TimeStamp.Format(time.RFC3339),
				Level:   "INFO",
				Msg:     "GIN_ACCESS",
				TraceID: traceID,
				Method:  p.Method,
				Path:    p.Path,
				Status:  p.StatusCode,
				Latency: p.Latency.String(),
				IP:      p.ClientIP,
			})
			return string(line) + "\n"
		},
	}))

	r.Use(gin.Recovery())
}
