package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	types "github.com/yungbote/foodyou-backend/internal/domain"
	"github.com/yungbote/foodyou-backend/internal/http/response"
	domainerr "github.com/yungbote/foodyou-backend/internal/pkg/errors"
	"github.com/yungbote/foodyou-backend/internal/platform/dbctx"
	"github.com/yungbote/foodyou-backend/internal/platform/logger"
	"github.com/yungbote/foodyou-backend/internal/services"
)

type ProductHandler struct {
	log   *logger.Logger
	diary services.DiaryService
}

func NewProductHandler(log *logger.Logger, diary services.DiaryService) *ProductHandler {
	return &ProductHandler{log: log.With("handler", "ProductHandler"), diary: diary}
}

// POST /api/products
func (h *ProductHandler) CreateProduct(c *gin.Context) {
	var req types.Product
	if !bindJSON(c, &req) {
		return
	}
	p, err := h.diary.CreateProduct(dbctx.New(c.Request.Context()), &req)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondCreated(c, gin.H{"product": p})
}

// GET /api/products/:id
func (h *ProductHandler) GetProduct(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	p, err := h.diary.GetProduct(dbctx.New(c.Request.Context()), id)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"product": p})
}

// PUT /api/products/:id
func (h *ProductHandler) UpdateProduct(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req types.Product
	if !bindJSON(c, &req) {
		return
	}
	req.ID = id
	if err := h.diary.UpdateProduct(dbctx.New(c.Request.Context()), &req); err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"product": req})
}

// DELETE /api/products/:id
func (h *ProductHandler) DeleteProduct(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.diary.DeleteProduct(dbctx.New(c.Request.Context()), id); err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondNoContent(c)
}

// GET /api/products/:id/quantity-suggestion
func (h *ProductHandler) GetQuantitySuggestion(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	qs, err := h.diary.GetQuantitySuggestion(c.Request.Context(), id)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	if qs == nil {
		response.RespondAPIError(c, fmt.Errorf("product %d: %w", id, domainerr.ErrNotFound))
		return
	}
	response.RespondOK(c, gin.H{"suggestion": qs})
}

// GET /api/products/search?meal_id=&date=&q=&page=
//
// Without q only local products are listed. A q made of digits is looked up
// as a barcode.
func (h *ProductHandler) Search(c *gin.Context) {
	mealID, err := queryInt64(c, "meal_id")
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	if mealID == nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_argument", fmt.Errorf("meal_id is required"))
		return
	}
	date, err := dateOrToday(c.Query("date"))
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	var query *string
	if q, ok := c.GetQuery("q"); ok {
		query = &q
	}

	ctx := c.Request.Context()
	search := h.diary.QueryProducts(dbctx.New(ctx), *mealID, date, query)
	page, err := search.Load(ctx, queryInt(c, "page", 0))
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	body := gin.H{
		"mode":      search.Mode,
		"query":     search.Query,
		"page":      page.Index,
		"page_size": search.PageSize(),
		"items":     page.Items,
		"has_more":  page.HasMore,
	}
	if page.RemoteErr != nil {
		h.log.Warn("remote product search failed", "query", search.Query, "error", page.RemoteErr)
		body["remote_error"] = page.RemoteErr.Error()
	}
	response.RespondOK(c, body)
}

// GET /api/product-queries?limit=
func (h *ProductHandler) ListQueries(c *gin.Context) {
	qs, err := h.diary.ListProductQueries(dbctx.New(c.Request.Context()), queryInt(c, "limit", 20))
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"queries": qs})
}
