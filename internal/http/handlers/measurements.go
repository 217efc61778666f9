package handlers

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"

	types "github.com/yungbote/foodyou-backend/internal/domain"
	"github.com/yungbote/foodyou-backend/internal/http/response"
	domainerr "github.com/yungbote/foodyou-backend/internal/pkg/errors"
	"github.com/yungbote/foodyou-backend/internal/platform/dbctx"
	"github.com/yungbote/foodyou-backend/internal/platform/logger"
	"github.com/yungbote/foodyou-backend/internal/services"
)

type MeasurementHandler struct {
	log   *logger.Logger
	diary services.DiaryService
}

func NewMeasurementHandler(log *logger.Logger, diary services.DiaryService) *MeasurementHandler {
	return &MeasurementHandler{log: log.With("handler", "MeasurementHandler"), diary: diary}
}

type quantityRequest struct {
	Kind     types.MeasurementKind `json:"kind" binding:"required"`
	Quantity float64               `json:"quantity"`
}

// measurement carries only kind and amount; the service resolves weights
// against the stored product.
func (r quantityRequest) measurement() (types.Measurement, error) {
	switch r.Kind {
	case types.KindWeightUnit:
		return types.WeightUnitMeasurement{Weight: r.Quantity}, nil
	case types.KindPackage:
		return types.Package{Quantity: r.Quantity}, nil
	case types.KindServing:
		return types.Serving{Quantity: r.Quantity}, nil
	}
	return nil, fmt.Errorf("%w: unknown measurement kind %q", domainerr.ErrInvalidArgument, r.Kind)
}

// GET /api/measurements?date=&meal_id=
func (h *MeasurementHandler) ListMeasurements(c *gin.Context) {
	date, err := dateOrToday(c.Query("date"))
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	mealID, err := queryInt64(c, "meal_id")
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	list, err := h.diary.ListMeasurements(c.Request.Context(), mealID, date)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"measurements": list})
}

// GET /api/measurements/:id
func (h *MeasurementHandler) GetMeasurement(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	mp, err := h.diary.GetMeasurement(c.Request.Context(), id)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	if mp == nil {
		response.RespondAPIError(c, fmt.Errorf("measurement %d: %w", id, domainerr.ErrNotFound))
		return
	}
	response.RespondOK(c, gin.H{"measurement": mp})
}

// POST /api/measurements
func (h *MeasurementHandler) AddMeasurement(c *gin.Context) {
	var req struct {
		quantityRequest
		Date      string `json:"date"`
		MealID    int64  `json:"meal_id" binding:"required"`
		ProductID int64  `json:"product_id" binding:"required"`
	}
	if !bindJSON(c, &req) {
		return
	}
	date, err := dateOrToday(req.Date)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	m, err := req.measurement()
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	wm, err := h.diary.AddMeasurement(dbctx.New(c.Request.Context()), date, req.MealID, req.ProductID, m)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondCreated(c, gin.H{"measurement": wm})
}

// PUT /api/measurements/:id
func (h *MeasurementHandler) UpdateMeasurement(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req quantityRequest
	if !bindJSON(c, &req) {
		return
	}
	m, err := req.measurement()
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	if err := h.diary.UpdateMeasurement(dbctx.New(c.Request.Context()), id, m); err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondNoContent(c)
}

// POST /api/measurements/:id/remove
func (h *MeasurementHandler) RemoveMeasurement(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.diary.RemoveMeasurement(dbctx.New(c.Request.Context()), id); err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondNoContent(c)
}

// POST /api/measurements/:id/restore
func (h *MeasurementHandler) RestoreMeasurement(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.diary.RestoreMeasurement(dbctx.New(c.Request.Context()), id); err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondNoContent(c)
}

// POST /api/measurements/purge
func (h *MeasurementHandler) PurgeDeleted(c *gin.Context) {
	var req struct {
		Before time.Time `json:"before" binding:"required"`
	}
	if !bindJSON(c, &req) {
		return
	}
	n, err := h.diary.PurgeDeletedMeasurements(dbctx.New(c.Request.Context()), req.Before)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"purged": n})
}

// GET /api/measurements/:id/stream
func (h *MeasurementHandler) StreamMeasurement(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	streamSnapshots(c, "measurement", h.diary.ObserveProductByMeasurementID(c.Request.Context(), id))
}
