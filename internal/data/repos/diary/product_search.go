package diary

import (
	"strings"

	types "github.com/yungbote/foodyou-backend/internal/domain"
	"github.com/yungbote/foodyou-backend/internal/platform/dbctx"
)

// Every product is joined with one active measurement: the one logged for the
// filter's meal and day if any, else the most recent.
const productSearchSQL = `
SELECT p.*,
  wm.id         AS m_id,
  wm.meal_id    AS m_meal_id,
  wm.epoch_day  AS m_epoch_day,
  wm.kind       AS m_kind,
  wm.quantity   AS m_quantity,
  wm.created_at AS m_created_at,
  wm.status     AS m_status,
  CASE WHEN wm.meal_id = @meal AND wm.epoch_day = @day THEN 1 ELSE 0 END AS todays
FROM product p
LEFT JOIN weight_measurement wm ON wm.id = (
  SELECT w.id FROM weight_measurement w
  WHERE w.product_id = p.id AND w.status = @active
  ORDER BY CASE WHEN w.meal_id = @meal AND w.epoch_day = @day THEN 0 ELSE 1 END,
    w.created_at DESC, w.id DESC
  LIMIT 1
)
WHERE %s
ORDER BY todays DESC, p.name ASC, p.id ASC
LIMIT @limit OFFSET @offset`

type productSearchRow struct {
	types.Product `gorm:"embedded"`

	MID        *int64   `gorm:"column:m_id"`
	MMealID    *int64   `gorm:"column:m_meal_id"`
	MEpochDay  *int64   `gorm:"column:m_epoch_day"`
	MKind      *string  `gorm:"column:m_kind"`
	MQuantity  *float64 `gorm:"column:m_quantity"`
	MCreatedAt *int64   `gorm:"column:m_created_at"`
	MStatus    *string  `gorm:"column:m_status"`
	Todays     int      `gorm:"column:todays"`
}

func (r *productRepo) Search(dbc dbctx.Context, f ProductFilter, limit, offset int) ([]*types.ProductWithMeasurement, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	if limit <= 0 {
		limit = 30
	}
	if offset < 0 {
		offset = 0
	}

	args := map[string]any{
		"meal":   f.MealID,
		"day":    f.EpochDay,
		"active": string(types.MeasurementActive),
		"limit":  limit,
		"offset": offset,
	}
	where := "1 = 1"
	switch {
	case strings.TrimSpace(f.Barcode) != "":
		where = "p.barcode = @barcode"
		args["barcode"] = strings.TrimSpace(f.Barcode)
	case strings.TrimSpace(f.Query) != "":
		where = "(LOWER(p.name) LIKE @like ESCAPE '\\' OR LOWER(COALESCE(p.brand, '')) LIKE @like ESCAPE '\\')"
		args["like"] = "%" + escapeLike(strings.ToLower(strings.TrimSpace(f.Query))) + "%"
	}

	var rows []productSearchRow
	if err := t.WithContext(dbc.Ctx).
		Raw(strings.Replace(productSearchSQL, "%s", where, 1), args).
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	out := make([]*types.ProductWithMeasurement, 0, len(rows))
	for i := range rows {
		row := rows[i]
		item := &types.ProductWithMeasurement{
			Product:           row.Product,
			TodaysMeasurement: row.Todays == 1,
		}
		if row.MID != nil {
			item.Measurement = &types.WeightMeasurement{
				ID:        *row.MID,
				MealID:    derefInt64(row.MMealID),
				EpochDay:  derefInt64(row.MEpochDay),
				ProductID: row.Product.ID,
				Kind:      types.MeasurementKind(derefString(row.MKind)),
				Quantity:  derefFloat(row.MQuantity),
				CreatedAt: derefInt64(row.MCreatedAt),
				Status:    types.MeasurementStatus(derefString(row.MStatus)),
			}
		}
		out = append(out, item)
	}
	return out, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string { return likeEscaper.Replace(s) }

func derefInt64(v *int64) int64 {
	if v == nil {
		return 0
	}
	return *v
}

func derefFloat(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}

func derefString(v *string) string {
	if v == nil {
		return ""
	}
	return *v
}
