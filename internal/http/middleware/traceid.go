// README: Trace id middleware; propagates or assigns X-Request-ID.
package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	TraceHeader = "X-Request-ID"
	traceKey    = "trace_id"
)

func TraceID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(TraceHeader)
		if id == "" || len(id) > 128 {
			id = uuid.NewString()
		}
		c.Set(traceKey, id)
		c.Header(TraceHeader, id)
		c.Next()
	}
}

// TraceIDFrom returns the id assigned by TraceID, or "".
func TraceIDFrom(c *gin.Context) string {
	return c.GetString(traceKey)
}
