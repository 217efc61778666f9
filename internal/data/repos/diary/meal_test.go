package diary

import (
	"context"
	"testing"
	"time"

	"github.com/yungbote/foodyou-backend/internal/data/repos/testutil"
	types "github.com/yungbote/foodyou-backend/internal/domain"
	"github.com/yungbote/foodyou-backend/internal/platform/dbctx"
)

func TestMealRepo(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()
	dbc := dbctx.WithTx(ctx, tx)

	repo := NewMealRepo(db, testutil.Logger(t))

	first, err := repo.Create(dbc, &types.Meal{Name: "Breakfast", From: types.ClockTime(6, 0), To: types.ClockTime(10, 0)})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	second, err := repo.Create(dbc, &types.Meal{Name: "Dinner", From: types.ClockTime(17, 0), To: types.ClockTime(20, 0)})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if first.Rank != 0 || second.Rank != 1 {
		t.Fatalf("ranks: want=0,1 got=%d,%d", first.Rank, second.Rank)
	}

	if err := repo.UpdateRanks(dbc, map[int64]int{first.ID: 1, second.ID: 0}); err != nil {
		t.Fatalf("UpdateRanks: %v", err)
	}
	list, err := repo.List(dbc)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(list) != 2 || list[0].ID != second.ID {
		t.Fatalf("List: unexpected order %+v", list)
	}

	first.Name = "Early breakfast"
	ok, err := repo.Update(dbc, first)
	if err != nil || !ok {
		t.Fatalf("Update: ok=%v err=%v", ok, err)
	}
	got, err := repo.GetByID(dbc, first.ID)
	if err != nil || got == nil || got.Name != "Early breakfast" || got.From != types.ClockTime(6, 0) {
		t.Fatalf("GetByID: got=%+v err=%v", got, err)
	}

	missing, err := repo.GetByID(dbc, 9999)
	if err != nil || missing != nil {
		t.Fatalf("GetByID(missing): got=%+v err=%v", missing, err)
	}
}

func TestMealRepoDeleteRemovesMeasurements(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()
	dbc := dbctx.WithTx(ctx, tx)

	meal := testutil.SeedMeal(t, ctx, tx, "Lunch", 0)
	product := testutil.SeedProduct(t, ctx, tx, "Rice", 130)
	wm := testutil.SeedMeasurement(t, ctx, tx, meal.ID, product.ID, time.Now(), types.KindWeightUnit, 150)

	repo := NewMealRepo(db, testutil.Logger(t))
	found, err := repo.Delete(dbc, meal.ID)
	if err != nil || !found {
		t.Fatalf("Delete: found=%v err=%v", found, err)
	}

	mrepo := NewMeasurementRepo(db, testutil.Logger(t))
	got, err := mrepo.GetByID(dbc, wm.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got != nil {
		t.Fatalf("measurement should be gone with its meal")
	}

	found, err = repo.Delete(dbc, meal.ID)
	if err != nil || found {
		t.Fatalf("Delete(again): found=%v err=%v", found, err)
	}
}
