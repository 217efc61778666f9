package db

import (
	_ "embed"
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
	"gorm.io/gorm"

	types "github.com/yungbote/foodyou-backend/internal/domain"
	"github.com/yungbote/foodyou-backend/internal/platform/logger"
)

const defaultMealsEnv = "DEFAULT_MEALS_YAML"

//go:embed default_meals.yaml
var defaultMealsYAML []byte

type mealSeedFile struct {
	Meals []mealSeed `yaml:"meals"`
}

type mealSeed struct {
	Name string `yaml:"name"`
	From string `yaml:"from"`
	To   string `yaml:"to"`
}

// LoadDefaultMeals reads the seed list, preferring the file named by
// DEFAULT_MEALS_YAML over the embedded copy.
func LoadDefaultMeals(log *logger.Logger) ([]*types.Meal, error) {
	raw := defaultMealsYAML
	if path := strings.TrimSpace(os.Getenv(defaultMealsEnv)); path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			if log != nil {
				log.Warn("default meals override unreadable; using embedded list", "path", path, "error", err)
			}
		} else {
			raw = b
		}
	}
	return parseMealSeeds(raw)
}

func parseMealSeeds(raw []byte) ([]*types.Meal, error) {
	var f mealSeedFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parse default meals: %w", err)
	}
	out := make([]*types.Meal, 0, len(f.Meals))
	for i, m := range f.Meals {
		name := strings.TrimSpace(m.Name)
		if name == "" {
			return nil, fmt.Errorf("default meal %d: name is required", i)
		}
		from, err := parseClock(m.From)
		if err != nil {
			return nil, fmt.Errorf("default meal %q: %w", name, err)
		}
		to, err := parseClock(m.To)
		if err != nil {
			return nil, fmt.Errorf("default meal %q: %w", name, err)
		}
		out = append(out, &types.Meal{
			Name: name,
			From: types.ClockTime(from.Hour(), from.Minute()),
			To:   types.ClockTime(to.Hour(), to.Minute()),
			Rank: i,
		})
	}
	return out, nil
}

func parseClock(s string) (time.Time, error) {
	t, err := time.Parse("15:04", strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid time %q", s)
	}
	return t, nil
}

// SeedDefaultMeals inserts the default meals when the meal table is empty.
func SeedDefaultMeals(db *gorm.DB, log *logger.Logger) error {
	var count int64
	if err := db.Model(&types.Meal{}).Count(&count).Error; err != nil {
		return fmt.Errorf("count meals: %w", err)
	}
	if count > 0 {
		return nil
	}
	meals, err := LoadDefaultMeals(log)
	if err != nil {
		return err
	}
	if len(meals) == 0 {
		return nil
	}
	if err := db.Create(&meals).Error; err != nil {
		return fmt.Errorf("seed meals: %w", err)
	}
	if log != nil {
		log.Info("seeded default meals", "count", len(meals))
	}
	return nil
}
