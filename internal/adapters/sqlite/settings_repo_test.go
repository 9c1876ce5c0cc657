package sqlite_test

import (
	"context"
	"testing"

	"github.com/example/runcard/internal/adapters/sqlite"
)

func TestSettingsRepository_DefaultWhenUnset(t *testing.T) {
	repo := sqlite.NewSettingsRepository(setupTestDB(t))
	ctx := context.Background()

	got, err := repo.GetBool(ctx, "mutual_aid", false)
	if err != nil {
		t.Fatalf("GetBool failed: %v", err)
	}
	if got {
		t.Error("unset key should return the default (false)")
	}

	got, err = repo.GetBool(ctx, "mutual_aid", true)
	if err != nil {
		t.Fatalf("GetBool failed: %v", err)
	}
	if !got {
		t.Error("unset key should return the default (true)")
	}
}

func TestSettingsRepository_SetBoolRoundTrip(t *testing.T) {
	repo := sqlite.NewSettingsRepository(setupTestDB(t))
	ctx := context.Background()

	if err := repo.SetBool(ctx, "mutual_aid", true); err != nil {
		t.Fatalf("SetBool failed: %v", err)
	}
	got, err := repo.GetBool(ctx, "mutual_aid", false)
	if err != nil {
		t.Fatalf("GetBool failed: %v", err)
	}
	if !got {
		t.Error("stored true should read back true")
	}

	if err := repo.SetBool(ctx, "mutual_aid", false); err != nil {
		t.Fatalf("SetBool (overwrite) failed: %v", err)
	}
	got, err = repo.GetBool(ctx, "mutual_aid", true)
	if err != nil {
		t.Fatalf("GetBool failed: %v", err)
	}
	if got {
		t.Error("overwritten false should read back false")
	}
}

func TestEditLogWriter_LogEdit(t *testing.T) {
	database := setupTestDB(t)
	writer := sqlite.NewEditLogWriter(database)
	ctx := context.Background()

	if err := writer.LogEdit(ctx, "unit", "E905", "set_status", "AQ", "PA"); err != nil {
		t.Fatalf("LogEdit failed: %v", err)
	}

	var count int
	if err := database.QueryRow("SELECT COUNT(*) FROM edit_log WHERE entity_id = 'E905'").Scan(&count); err != nil {
		t.Fatalf("count query failed: %v", err)
	}
	if count != 1 {
		t.Errorf("edit_log rows = %d, want 1", count)
	}
}
