package handlers

import (
	"github.com/gin-gonic/gin"

	types "github.com/yungbote/foodyou-backend/internal/domain"
	"github.com/yungbote/foodyou-backend/internal/http/response"
	"github.com/yungbote/foodyou-backend/internal/platform/logger"
	"github.com/yungbote/foodyou-backend/internal/services"
)

type GoalsHandler struct {
	log   *logger.Logger
	diary services.DiaryService
}

func NewGoalsHandler(log *logger.Logger, diary services.DiaryService) *GoalsHandler {
	return &GoalsHandler{log: log.With("handler", "GoalsHandler"), diary: diary}
}

// GET /api/goals
func (h *GoalsHandler) GetGoals(c *gin.Context) {
	g, err := h.diary.GetDailyGoals(c.Request.Context())
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"goals": g})
}

// PUT /api/goals
func (h *GoalsHandler) SetGoals(c *gin.Context) {
	var req types.DailyGoals
	if !bindJSON(c, &req) {
		return
	}
	if err := h.diary.SetDailyGoals(c.Request.Context(), req); err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"goals": req})
}

// GET /api/goals/stream
func (h *GoalsHandler) StreamGoals(c *gin.Context) {
	streamSnapshots(c, "goals", h.diary.ObserveDailyGoals(c.Request.Context()))
}
