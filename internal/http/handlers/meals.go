package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/foodyou-backend/internal/http/response"
	domainerr "github.com/yungbote/foodyou-backend/internal/pkg/errors"
	"github.com/yungbote/foodyou-backend/internal/platform/dbctx"
	"github.com/yungbote/foodyou-backend/internal/platform/logger"
	"github.com/yungbote/foodyou-backend/internal/services"
)

type MealHandler struct {
	log   *logger.Logger
	diary services.DiaryService
	now   func() time.Time
}

func NewMealHandler(log *logger.Logger, diary services.DiaryService) *MealHandler {
	return &MealHandler{log: log.With("handler", "MealHandler"), diary: diary, now: time.Now}
}

type mealRequest struct {
	Name string `json:"name" binding:"required"`
	From string `json:"from" binding:"required"`
	To   string `json:"to" binding:"required"`
}

// GET /api/meals?sorted=true
//
// sorted applies the meals card settings at the current time of day.
func (h *MealHandler) ListMeals(c *gin.Context) {
	ctx := c.Request.Context()
	meals, err := h.diary.ListMeals(dbctx.New(ctx))
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	if c.Query("sorted") == "true" {
		settings, err := h.diary.GetMealsCardSettings(ctx)
		if err != nil {
			response.RespondAPIError(c, err)
			return
		}
		meals = services.SortMealsByTime(meals, h.now(), settings)
	}
	response.RespondOK(c, gin.H{"meals": meals})
}

// GET /api/meals/:id
func (h *MealHandler) GetMeal(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	m, err := h.diary.GetMeal(dbctx.New(c.Request.Context()), id)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"meal": m})
}

// POST /api/meals
func (h *MealHandler) CreateMeal(c *gin.Context) {
	var req mealRequest
	if !bindJSON(c, &req) {
		return
	}
	from, err := parseClock(req.From)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	to, err := parseClock(req.To)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	m, err := h.diary.CreateMeal(dbctx.New(c.Request.Context()), req.Name, from, to)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondCreated(c, gin.H{"meal": m})
}

// PUT /api/meals/:id
func (h *MealHandler) UpdateMeal(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req mealRequest
	if !bindJSON(c, &req) {
		return
	}
	from, err := parseClock(req.From)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	to, err := parseClock(req.To)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	dbc := dbctx.New(c.Request.Context())
	current, err := h.diary.GetMeal(dbc, id)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	current.Name, current.From, current.To = req.Name, from, to
	if err := h.diary.UpdateMeal(dbc, current); err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"meal": current})
}

// DELETE /api/meals/:id
func (h *MealHandler) DeleteMeal(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.diary.DeleteMeal(dbctx.New(c.Request.Context()), id); err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondNoContent(c)
}

// PUT /api/meals/ranks
func (h *MealHandler) UpdateRanks(c *gin.Context) {
	var req struct {
		Ranks []struct {
			ID   int64 `json:"id"`
			Rank int   `json:"rank"`
		} `json:"ranks" binding:"required"`
	}
	if !bindJSON(c, &req) {
		return
	}
	ranks := make(map[int64]int, len(req.Ranks))
	for _, r := range req.Ranks {
		if _, dup := ranks[r.ID]; dup {
			response.RespondError(c, http.StatusBadRequest, "invalid_argument", domainerr.ErrInvalidArgument)
			return
		}
		ranks[r.ID] = r.Rank
	}
	if err := h.diary.UpdateMealsRanks(dbctx.New(c.Request.Context()), ranks); err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondNoContent(c)
}
