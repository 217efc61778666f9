package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/yungbote/foodyou-backend/internal/app"
	"github.com/yungbote/foodyou-backend/internal/platform/dbctx"
)

// purge_measurements hard-deletes soft-deleted measurements older than -older-than.
func main() {
	var olderThan time.Duration
	var dryRun bool
	flag.DurationVar(&olderThan, "older-than", 30*24*time.Hour, "purge measurements deleted before now minus this duration")
	flag.BoolVar(&dryRun, "dry-run", false, "count matching rows without deleting")
	flag.Parse()

	ctx := context.Background()
	application, err := app.New(ctx)
	if err != nil {
		fmt.Printf("init app: %v\n", err)
		os.Exit(1)
	}
	defer application.Close()

	before := time.Now().Add(-olderThan)
	if dryRun {
		n, err := application.Repos.Measurement.CountPurgeable(dbctx.New(ctx), before.Unix())
		if err != nil {
			fmt.Printf("count deleted measurements: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("[dry-run] %d measurements removed before %s\n", n, before.Format(time.RFC3339))
		return
	}

	n, err := application.Services.Diary.PurgeDeletedMeasurements(dbctx.New(ctx), before)
	if err != nil {
		fmt.Printf("purge failed: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("done; purged=%d\n", n)
}
