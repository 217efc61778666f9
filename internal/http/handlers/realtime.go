package handlers

import (
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/foodyou-backend/internal/http/response"
	"github.com/yungbote/foodyou-backend/internal/platform/logger"
	"github.com/yungbote/foodyou-backend/internal/realtime"
)

var knownChannels = map[string]bool{
	realtime.ChannelMeals:          true,
	realtime.ChannelProducts:       true,
	realtime.ChannelMeasurements:   true,
	realtime.ChannelProductQueries: true,
	realtime.ChannelRemoteKeys:     true,
	realtime.ChannelPreferences:    true,
}

// RealtimeHandler streams raw change notifications for clients that keep
// their own caches.
type RealtimeHandler struct {
	log *logger.Logger
	hub *realtime.Hub
}

func NewRealtimeHandler(log *logger.Logger, hub *realtime.Hub) *RealtimeHandler {
	return &RealtimeHandler{log: log.With("handler", "RealtimeHandler"), hub: hub}
}

// GET /api/sse/stream?channels=meal,product
//
// All channels are streamed when none are named.
func (h *RealtimeHandler) SSEStream(c *gin.Context) {
	var channels []string
	for _, ch := range strings.Split(c.Query("channels"), ",") {
		ch = strings.TrimSpace(ch)
		if ch == "" {
			continue
		}
		if !knownChannels[ch] {
			response.RespondError(c, http.StatusBadRequest, "invalid_channel", fmt.Errorf("unknown channel %q", ch))
			return
		}
		channels = append(channels, ch)
	}
	if len(channels) == 0 {
		for ch := range knownChannels {
			channels = append(channels, ch)
		}
	}

	client := h.hub.Subscribe(64, channels...)
	defer h.hub.CloseClient(client)
	h.log.Debug("SSE stream open", "clientID", client.ID, "channels", channels)

	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")
	ctx := c.Request.Context()
	c.Stream(func(_ io.Writer) bool {
		select {
		case msg, ok := <-client.Outbound:
			if !ok {
				return false
			}
			c.SSEvent(string(msg.Event), msg)
			return true
		case <-ctx.Done():
			return false
		}
	})
	h.log.Debug("SSE stream closed", "clientID", client.ID)
}
