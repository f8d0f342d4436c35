package server

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// Response is the envelope every endpoint returns. Exactly one of Data and
// Error is meaningful; Metadata always carries at least a timestamp.
type Response struct {
	Success  bool           `json:"success"`
	Data     any            `json:"data,omitempty"`
	Error    string         `json:"error,omitempty"`
	Metadata map[string]any `json:"metadata,omitempty"`
}

func metadata(extra map[string]any) map[string]any {
	meta := map[string]any{"timestamp": time.Now().Format(time.RFC3339)}
	for k, v := range extra {
		meta[k] = v
	}
	return meta
}

func respondOK(c *gin.Context, data any, extra map[string]any) {
	c.JSON(http.StatusOK, Response{
		Success:  true,
		Data:     data,
		Metadata: metadata(extra),
	})
}

func respondError(c *gin.Context, status int, err error) {
	msg := "unknown error"
	if err != nil {
		msg = err.Error()
	}
	c.JSON(status, Response{
		Success:  false,
		Error:    msg,
		Metadata: metadata(nil),
	})
}

// respondFailure reports an unsuccessful generation in the envelope while
// keeping HTTP 200: the request itself was handled.
func respondFailure(c *gin.Context, err error) {
	respondError(c, http.StatusOK, err)
}
