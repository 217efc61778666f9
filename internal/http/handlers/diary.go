package handlers

import (
	"github.com/gin-gonic/gin"

	types "github.com/yungbote/foodyou-backend/internal/domain"
	"github.com/yungbote/foodyou-backend/internal/http/response"
	"github.com/yungbote/foodyou-backend/internal/platform/logger"
	"github.com/yungbote/foodyou-backend/internal/services"
)

type DiaryHandler struct {
	log   *logger.Logger
	diary services.DiaryService
}

func NewDiaryHandler(log *logger.Logger, diary services.DiaryService) *DiaryHandler {
	return &DiaryHandler{log: log.With("handler", "DiaryHandler"), diary: diary}
}

type diaryDayResponse struct {
	*types.DiaryDay
	Totals types.NutritionFacts `json:"totals"`
}

func newDiaryDayResponse(d *types.DiaryDay) diaryDayResponse {
	return diaryDayResponse{DiaryDay: d, Totals: d.Totals()}
}

// GET /api/diary/:date
func (h *DiaryHandler) GetDay(c *gin.Context) {
	date, err := types.ParseDate(c.Param("date"))
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	d, err := h.diary.GetDiaryDay(c.Request.Context(), date)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"day": newDiaryDayResponse(d)})
}

// GET /api/diary/:date/stream
func (h *DiaryHandler) StreamDay(c *gin.Context) {
	date, err := types.ParseDate(c.Param("date"))
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	ctx := c.Request.Context()
	src := h.diary.ObserveDiaryDay(ctx, date)
	out := make(chan diaryDayResponse)
	go func() {
		defer close(out)
		for d := range src {
			select {
			case out <- newDiaryDayResponse(d):
			case <-ctx.Done():
				return
			}
		}
	}()
	streamSnapshots(c, "diary_day", out)
}
