package queue_test

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"clipforge/internal/queue"
)

func openStore(t *testing.T) *queue.Store {
	t.Helper()
	store, err := queue.OpenPath(filepath.Join(t.TempDir(), "queue.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestNewJobAndLookup(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()

	job, err := store.NewJob(ctx, "https://youtu.be/vid1", "vid1", "প্রথম ভিডিও")
	if err != nil {
		t.Fatalf("NewJob failed: %v", err)
	}
	if job.ID == 0 || job.Status != queue.StatusPending {
		t.Fatalf("unexpected job: %+v", job)
	}
	if job.CreatedAt.IsZero() || job.UpdatedAt.IsZero() {
		t.Fatalf("timestamps not set: %+v", job)
	}

	found, err := store.FindByVideoID(ctx, "vid1")
	if err != nil {
		t.Fatalf("FindByVideoID failed: %v", err)
	}
	if found == nil || found.ID != job.ID || found.Title != "প্রথম ভিডিও" {
		t.Fatalf("unexpected lookup result: %+v", found)
	}

	missing, err := store.FindByVideoID(ctx, "nope")
	if err != nil {
		t.Fatalf("FindByVideoID failed: %v", err)
	}
	if missing != nil {
		t.Fatalf("expected nil for unknown video, got %+v", missing)
	}
}

func TestNewJobRejectsDuplicateVideo(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()

	if _, err := store.NewJob(ctx, "https://youtu.be/vid1", "vid1", ""); err != nil {
		t.Fatalf("NewJob failed: %v", err)
	}
	if _, err := store.NewJob(ctx, "https://youtu.be/vid1", "vid1", ""); err == nil {
		t.Fatal("expected unique constraint violation")
	}
}

func TestUpdatePersistsFields(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()

	job, err := store.NewJob(ctx, "https://youtu.be/vid1", "vid1", "")
	if err != nil {
		t.Fatalf("NewJob failed: %v", err)
	}

	job.Status = queue.StatusFetched
	job.AudioPath = "/data/raw/vid1.wav"
	job.SubtitlePath = "/data/raw/vid1.bn.json3"
	job.SubtitleLang = "bn"
	job.ClipCount = 17
	job.SetProgress("fetch", "download complete", 100)
	if err := store.Update(ctx, job); err != nil {
		t.Fatalf("Update failed: %v", err)
	}

	reloaded, err := store.GetByID(ctx, job.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if reloaded.Status != queue.StatusFetched || reloaded.ClipCount != 17 {
		t.Fatalf("fields not persisted: %+v", reloaded)
	}
	if reloaded.AudioPath != "/data/raw/vid1.wav" || reloaded.SubtitleLang != "bn" {
		t.Fatalf("artifact paths not persisted: %+v", reloaded)
	}
	if reloaded.ProgressStage != "fetch" || reloaded.ProgressPercent != 100 {
		t.Fatalf("progress not persisted: %+v", reloaded)
	}
}

func TestNextForStatusesOrdersByCreation(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()

	first, err := store.NewJob(ctx, "u1", "vid1", "")
	if err != nil {
		t.Fatalf("NewJob failed: %v", err)
	}
	if _, err := store.NewJob(ctx, "u2", "vid2", ""); err != nil {
		t.Fatalf("NewJob failed: %v", err)
	}

	next, err := store.NextForStatuses(ctx, queue.StatusPending)
	if err != nil {
		t.Fatalf("NextForStatuses failed: %v", err)
	}
	if next == nil || next.ID != first.ID {
		t.Fatalf("expected oldest pending job, got %+v", next)
	}

	none, err := store.NextForStatuses(ctx, queue.StatusCompleted)
	if err != nil {
		t.Fatalf("NextForStatuses failed: %v", err)
	}
	if none != nil {
		t.Fatalf("expected nil for empty status, got %+v", none)
	}
}

func TestRetryFailed(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()

	job, err := store.NewJob(ctx, "u1", "vid1", "")
	if err != nil {
		t.Fatalf("NewJob failed: %v", err)
	}
	job.SetFailed("yt-dlp exploded")
	if err := store.Update(ctx, job); err != nil {
		t.Fatalf("Update failed: %v", err)
	}

	count, err := store.RetryFailed(ctx)
	if err != nil {
		t.Fatalf("RetryFailed failed: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected 1 retried job, got %d", count)
	}

	reloaded, err := store.GetByID(ctx, job.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if reloaded.Status != queue.StatusPending || reloaded.ErrorMessage != "" {
		t.Fatalf("retry did not reset job: %+v", reloaded)
	}
}

func TestReclaimStaleProcessing(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()

	job, err := store.NewJob(ctx, "u1", "vid1", "")
	if err != nil {
		t.Fatalf("NewJob failed: %v", err)
	}
	stale := time.Now().UTC().Add(-time.Hour)
	job.Status = queue.StatusSegmenting
	job.LastHeartbeat = &stale
	if err := store.Update(ctx, job); err != nil {
		t.Fatalf("Update failed: %v", err)
	}

	count, err := store.ReclaimStaleProcessing(ctx, time.Now().UTC().Add(-time.Minute))
	if err != nil {
		t.Fatalf("ReclaimStaleProcessing failed: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected 1 reclaimed job, got %d", count)
	}

	reloaded, err := store.GetByID(ctx, job.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if reloaded.Status != queue.StatusFetched {
		t.Fatalf("expected rollback to fetched, got %q", reloaded.Status)
	}
	if reloaded.LastHeartbeat != nil {
		t.Fatalf("heartbeat not cleared: %+v", reloaded)
	}
}

func TestReclaimSkipsFreshHeartbeat(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()

	job, err := store.NewJob(ctx, "u1", "vid1", "")
	if err != nil {
		t.Fatalf("NewJob failed: %v", err)
	}
	job.Status = queue.StatusCleaning
	if err := store.Update(ctx, job); err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if err := store.UpdateHeartbeat(ctx, job.ID); err != nil {
		t.Fatalf("UpdateHeartbeat failed: %v", err)
	}

	count, err := store.ReclaimStaleProcessing(ctx, time.Now().UTC().Add(-time.Minute))
	if err != nil {
		t.Fatalf("ReclaimStaleProcessing failed: %v", err)
	}
	if count != 0 {
		t.Fatalf("fresh job was reclaimed")
	}
}

func TestStatsAndHealth(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()

	for i, status := range []queue.Status{queue.StatusPending, queue.StatusCompleted, queue.StatusFailed, queue.StatusSeparating} {
		job, err := store.NewJob(ctx, "u", fmt.Sprintf("vid%d", i), "")
		if err != nil {
			t.Fatalf("NewJob failed: %v", err)
		}
		job.Status = status
		if err := store.Update(ctx, job); err != nil {
			t.Fatalf("Update failed: %v", err)
		}
	}

	health, err := store.Health(ctx)
	if err != nil {
		t.Fatalf("Health failed: %v", err)
	}
	if health.Total != 4 || health.Pending != 1 || health.Completed != 1 || health.Failed != 1 || health.Processing != 1 {
		t.Fatalf("unexpected health summary: %+v", health)
	}

	dbHealth, err := store.CheckHealth(ctx)
	if err != nil {
		t.Fatalf("CheckHealth failed: %v", err)
	}
	if !dbHealth.DatabaseExists || !dbHealth.TableExists || !dbHealth.IntegrityCheck {
		t.Fatalf("unexpected db health: %+v", dbHealth)
	}
	if dbHealth.TotalJobs != 4 {
		t.Fatalf("unexpected job count: %+v", dbHealth)
	}
}

func TestClearVariants(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()

	for i, status := range []queue.Status{queue.StatusCompleted, queue.StatusFailed, queue.StatusPending} {
		job, err := store.NewJob(ctx, "u", fmt.Sprintf("vid%d", i), "")
		if err != nil {
			t.Fatalf("NewJob failed: %v", err)
		}
		job.Status = status
		if err := store.Update(ctx, job); err != nil {
			t.Fatalf("Update failed: %v", err)
		}
	}

	if n, err := store.ClearCompleted(ctx); err != nil || n != 1 {
		t.Fatalf("ClearCompleted = %d, %v", n, err)
	}
	if n, err := store.ClearFailed(ctx); err != nil || n != 1 {
		t.Fatalf("ClearFailed = %d, %v", n, err)
	}
	if n, err := store.Clear(ctx); err != nil || n != 1 {
		t.Fatalf("Clear = %d, %v", n, err)
	}
}

func TestParseStatus(t *testing.T) {
	if status, ok := queue.ParseStatus("  Segmented "); !ok || status != queue.StatusSegmented {
		t.Fatalf("ParseStatus failed: %q %v", status, ok)
	}
	if _, ok := queue.ParseStatus("bogus"); ok {
		t.Fatal("expected unknown status to fail")
	}
}
