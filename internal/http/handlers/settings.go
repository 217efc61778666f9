package handlers

import (
	"github.com/gin-gonic/gin"

	types "github.com/yungbote/foodyou-backend/internal/domain"
	"github.com/yungbote/foodyou-backend/internal/http/response"
	"github.com/yungbote/foodyou-backend/internal/platform/logger"
	"github.com/yungbote/foodyou-backend/internal/services"
)

type SettingsHandler struct {
	log   *logger.Logger
	diary services.DiaryService
}

func NewSettingsHandler(log *logger.Logger, diary services.DiaryService) *SettingsHandler {
	return &SettingsHandler{log: log.With("handler", "SettingsHandler"), diary: diary}
}

// GET /api/settings/meals-card
func (h *SettingsHandler) GetMealsCard(c *gin.Context) {
	s, err := h.diary.GetMealsCardSettings(c.Request.Context())
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"settings": s})
}

// PUT /api/settings/meals-card
func (h *SettingsHandler) SetMealsCard(c *gin.Context) {
	var req types.MealsCardSettings
	if !bindJSON(c, &req) {
		return
	}
	if err := h.diary.SetMealsCardSettings(c.Request.Context(), req); err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"settings": req})
}

// GET /api/settings/selected-date
func (h *SettingsHandler) GetSelectedDate(c *gin.Context) {
	d, ok, err := h.diary.GetSelectedDate(c.Request.Context())
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	if !ok {
		response.RespondOK(c, gin.H{"date": nil})
		return
	}
	response.RespondOK(c, gin.H{"date": types.FormatDate(d)})
}

// PUT /api/settings/selected-date
func (h *SettingsHandler) SetSelectedDate(c *gin.Context) {
	var req struct {
		Date string `json:"date" binding:"required"`
	}
	if !bindJSON(c, &req) {
		return
	}
	d, err := types.ParseDate(req.Date)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	if err := h.diary.SetSelectedDate(c.Request.Context(), d); err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"date": types.FormatDate(d)})
}
