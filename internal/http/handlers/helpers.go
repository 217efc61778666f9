package handlers

import (
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/datatypes"

	types "github.com/yungbote/foodyou-backend/internal/domain"
	"github.com/yungbote/foodyou-backend/internal/http/response"
	domainerr "github.com/yungbote/foodyou-backend/internal/pkg/errors"
)

func pathID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		response.RespondError(c, http.StatusBadRequest, "invalid_"+name, fmt.Errorf("invalid %s %q", name, c.Param(name)))
		return 0, false
	}
	return id, true
}

// queryInt64 returns nil when the parameter is absent.
func queryInt64(c *gin.Context, name string) (*int64, error) {
	raw, ok := c.GetQuery(name)
	if !ok || strings.TrimSpace(raw) == "" {
		return nil, nil
	}
	v, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid %s %q", domainerr.ErrInvalidArgument, name, raw)
	}
	return &v, nil
}

func queryInt(c *gin.Context, name string, def int) int {
	v, err := strconv.Atoi(strings.TrimSpace(c.Query(name)))
	if err != nil || v < 0 {
		return def
	}
	return v
}

// dateOrToday parses YYYY-MM-DD, or returns today when raw is empty.
func dateOrToday(raw string) (time.Time, error) {
	if strings.TrimSpace(raw) == "" {
		now := time.Now()
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC), nil
	}
	return types.ParseDate(raw)
}

// parseClock accepts HH:MM or HH:MM:SS.
func parseClock(raw string) (datatypes.Time, error) {
	raw = strings.TrimSpace(raw)
	for _, layout := range []string{"15:04", "15:04:05"} {
		if t, err := time.Parse(layout, raw); err == nil {
			return datatypes.NewTime(t.Hour(), t.Minute(), t.Second(), 0), nil
		}
	}
	return 0, fmt.Errorf("%w: invalid time of day %q", domainerr.ErrInvalidArgument, raw)
}

func bindJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return false
	}
	return true
}

// streamSnapshots writes every value from ch as an SSE event until the client
// goes away or ch closes.
func streamSnapshots[T any](c *gin.Context, event string, ch <-chan T) {
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")
	ctx := c.Request.Context()
	c.Stream(func(_ io.Writer) bool {
		select {
		case v, ok := <-ch:
			if !ok {
				return false
			}
			c.SSEvent(event, v)
			return true
		case <-ctx.Done():
			return false
		}
	})
}
