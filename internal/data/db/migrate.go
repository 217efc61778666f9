package db

import (
	"fmt"

	types "github.com/yungbote/foodyou-backend/internal/domain"
	"gorm.io/gorm"
)

func AutoMigrateAll(db *gorm.DB) error {
	return db.AutoMigrate(
		&types.Meal{},
		&types.Product{},
		&types.WeightMeasurement{},
		&types.ProductQuery{},
		&types.RemoteKey{},
		&types.Preference{},
	)
}

// EnsureSearchIndexes adds the indexes the product search join relies on.
// Statements are portable between sqlite and postgres.
func EnsureSearchIndexes(db *gorm.DB) error {
	stmts := []struct{ name, sql string }{
		{"idx_weight_measurement_product_status", `CREATE INDEX IF NOT EXISTS idx_weight_measurement_product_status ON weight_measurement(product_id, status, created_at);`},
		{"idx_product_name", `CREATE INDEX IF NOT EXISTS idx_product_name ON product(name);`},
	}
	for _, s := range stmts {
		if err := db.Exec(s.sql).Error; err != nil {
			return fmt.Errorf("create %s: %w", s.name, err)
		}
	}
	return nil
}
