package diary

import (
	"context"
	"testing"
	"time"

	"github.com/yungbote/foodyou-backend/internal/data/repos/testutil"
	types "github.com/yungbote/foodyou-backend/internal/domain"
	"github.com/yungbote/foodyou-backend/internal/platform/dbctx"
)

func TestMeasurementRepoLifecycle(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()
	dbc := dbctx.WithTx(ctx, tx)

	meal := testutil.SeedMeal(t, ctx, tx, "Breakfast", 0)
	product := testutil.SeedProduct(t, ctx, tx, "Egg", 155)
	day := time.Date(2024, 12, 8, 0, 0, 0, 0, time.UTC)

	repo := NewMeasurementRepo(db, testutil.Logger(t))
	wm, err := repo.Create(dbc, &types.WeightMeasurement{
		MealID:    meal.ID,
		ProductID: product.ID,
		EpochDay:  types.EpochDay(day),
		Kind:      types.KindWeightUnit,
		Quantity:  60,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if wm.Status != types.MeasurementActive || wm.CreatedAt == 0 {
		t.Fatalf("Create: unexpected row %+v", wm)
	}

	ok, err := repo.Transition(dbc, wm.ID, types.MeasurementActive, types.MeasurementDeleted, time.Now().Unix())
	if err != nil || !ok {
		t.Fatalf("Transition(remove): ok=%v err=%v", ok, err)
	}
	// Update is only allowed from active.
	ok, err = repo.UpdateActive(dbc, wm.ID, types.KindWeightUnit, 80)
	if err != nil || ok {
		t.Fatalf("UpdateActive(deleted): ok=%v err=%v", ok, err)
	}
	active, err := repo.ListByDay(dbc, types.EpochDay(day), nil, types.MeasurementActive)
	if err != nil || len(active) != 0 {
		t.Fatalf("ListByDay(active): len=%d err=%v", len(active), err)
	}

	ok, err = repo.Transition(dbc, wm.ID, types.MeasurementDeleted, types.MeasurementActive, time.Now().Unix())
	if err != nil || !ok {
		t.Fatalf("Transition(restore): ok=%v err=%v", ok, err)
	}
	ok, err = repo.Transition(dbc, wm.ID, types.MeasurementDeleted, types.MeasurementActive, time.Now().Unix())
	if err != nil || ok {
		t.Fatalf("Transition(restore twice): ok=%v err=%v", ok, err)
	}

	ok, err = repo.UpdateActive(dbc, wm.ID, types.KindWeightUnit, 80)
	if err != nil || !ok {
		t.Fatalf("UpdateActive: ok=%v err=%v", ok, err)
	}
	got, err := repo.GetByID(dbc, wm.ID)
	if err != nil || got == nil || got.Quantity != 80 || got.MealID != meal.ID {
		t.Fatalf("GetByID: got=%+v err=%v", got, err)
	}

	mealID := meal.ID
	byMeal, err := repo.ListByDay(dbc, types.EpochDay(day), &mealID, "")
	if err != nil || len(byMeal) != 1 {
		t.Fatalf("ListByDay(meal): len=%d err=%v", len(byMeal), err)
	}
}

func TestMeasurementRepoLatestByKindAndPurge(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()
	dbc := dbctx.WithTx(ctx, tx)

	meal := testutil.SeedMeal(t, ctx, tx, "Lunch", 0)
	product := testutil.SeedProduct(t, ctx, tx, "Bread", 250)
	now := time.Now()

	old := testutil.SeedMeasurement(t, ctx, tx, meal.ID, product.ID, now, types.KindWeightUnit, 40)
	newer := testutil.SeedMeasurement(t, ctx, tx, meal.ID, product.ID, now, types.KindWeightUnit, 70)
	gone := testutil.SeedMeasurement(t, ctx, tx, meal.ID, product.ID, now, types.KindServing, 3)

	repo := NewMeasurementRepo(db, testutil.Logger(t))
	if ok, err := repo.Transition(dbc, gone.ID, types.MeasurementActive, types.MeasurementDeleted, time.Now().Unix()); err != nil || !ok {
		t.Fatalf("Transition: ok=%v err=%v", ok, err)
	}

	latest, err := repo.LatestByKind(dbc, product.ID)
	if err != nil {
		t.Fatalf("LatestByKind: %v", err)
	}
	if len(latest) != 1 {
		t.Fatalf("LatestByKind: want only weight_unit, got %v", latest)
	}
	if got := latest[types.KindWeightUnit]; got == nil || got.ID != newer.ID {
		t.Fatalf("LatestByKind: want id=%d got=%+v (old=%d)", newer.ID, got, old.ID)
	}

	n, err := repo.PurgeDeleted(dbc, now.Add(time.Hour).Unix())
	if err != nil || n != 1 {
		t.Fatalf("PurgeDeleted: n=%d err=%v", n, err)
	}
	if got, _ := repo.GetByID(dbc, gone.ID); got != nil {
		t.Fatalf("purged row still present")
	}
	if got, _ := repo.GetByID(dbc, old.ID); got == nil {
		t.Fatalf("active row must survive purge")
	}
}

func TestMeasurementRepoPurgeUsesRemovalTime(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()
	dbc := dbctx.WithTx(ctx, tx)

	meal := testutil.SeedMeal(t, ctx, tx, "Dinner", 0)
	product := testutil.SeedProduct(t, ctx, tx, "Rice", 130)
	now := time.Now()
	cutoff := now.Add(-30 * 24 * time.Hour).Unix()

	repo := NewMeasurementRepo(db, testutil.Logger(t))
	// Logged long ago, removed just now: must stay restorable.
	recent, err := repo.Create(dbc, &types.WeightMeasurement{
		MealID: meal.ID, ProductID: product.ID, EpochDay: types.EpochDay(now),
		Kind: types.KindWeightUnit, Quantity: 100, CreatedAt: now.Add(-40 * 24 * time.Hour).Unix(),
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if ok, err := repo.Transition(dbc, recent.ID, types.MeasurementActive, types.MeasurementDeleted, now.Unix()); err != nil || !ok {
		t.Fatalf("Transition(recent): ok=%v err=%v", ok, err)
	}
	stale := testutil.SeedMeasurement(t, ctx, tx, meal.ID, product.ID, now, types.KindWeightUnit, 50)
	if ok, err := repo.Transition(dbc, stale.ID, types.MeasurementActive, types.MeasurementDeleted, now.Add(-31*24*time.Hour).Unix()); err != nil || !ok {
		t.Fatalf("Transition(stale): ok=%v err=%v", ok, err)
	}

	if n, err := repo.CountPurgeable(dbc, cutoff); err != nil || n != 1 {
		t.Fatalf("CountPurgeable: n=%d err=%v", n, err)
	}
	n, err := repo.PurgeDeleted(dbc, cutoff)
	if err != nil || n != 1 {
		t.Fatalf("PurgeDeleted: n=%d err=%v", n, err)
	}
	if got, _ := repo.GetByID(dbc, stale.ID); got != nil {
		t.Fatalf("row removed before the cutoff must be purged")
	}

	if ok, err := repo.Transition(dbc, recent.ID, types.MeasurementDeleted, types.MeasurementActive, now.Unix()); err != nil || !ok {
		t.Fatalf("Transition(restore): ok=%v err=%v", ok, err)
	}
	got, err := repo.GetByID(dbc, recent.ID)
	if err != nil || got == nil || got.Status != types.MeasurementActive || got.RemovedAt != nil {
		t.Fatalf("restored row: got=%+v err=%v", got, err)
	}
}
