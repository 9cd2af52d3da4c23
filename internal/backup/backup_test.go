package backup

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"habitkit/internal/models"
	"habitkit/internal/storage"
)

func newStoreFile(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "habitkit.db")
	store := storage.NewSQLiteStore(path)
	if err := store.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}

	sched, err := models.NewSchedule(models.Monday)
	if err != nil {
		t.Fatalf("NewSchedule failed: %v", err)
	}
	h := models.Habit{
		ID:       "h-1",
		Name:     "Run",
		Kind:     models.KindGood,
		Schedule: sched,
		History:  map[string]models.Outcome{"2026-01-05": models.OutcomeCompleted},
	}
	if err := store.AddHabit(h); err != nil {
		t.Fatalf("AddHabit failed: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
	return path
}

func TestCreateBackup(t *testing.T) {
	path := newStoreFile(t)
	mgr := NewManager(path)

	backupPath, err := mgr.CreateBackup()
	if err != nil {
		t.Fatalf("CreateBackup failed: %v", err)
	}

	if !strings.HasPrefix(filepath.Base(backupPath), BackupFilePrefix) {
		t.Errorf("backup name missing prefix: %s", backupPath)
	}
	info, err := os.Stat(backupPath)
	if err != nil {
		t.Fatalf("backup file not created: %v", err)
	}
	if info.Size() == 0 {
		t.Error("backup file is empty")
	}
}

func TestCreateBackup_MissingStore(t *testing.T) {
	mgr := NewManager(filepath.Join(t.TempDir(), "nope.db"))
	if _, err := mgr.CreateBackup(); err == nil {
		t.Error("expected error when store file does not exist")
	}
}

func TestListBackups(t *testing.T) {
	path := newStoreFile(t)
	mgr := NewManager(path)

	// No backup dir yet
	backups, err := mgr.ListBackups()
	if err != nil {
		t.Fatalf("ListBackups failed: %v", err)
	}
	if len(backups) != 0 {
		t.Errorf("expected no backups yet, got %d", len(backups))
	}

	if _, err := mgr.CreateBackup(); err != nil {
		t.Fatalf("CreateBackup failed: %v", err)
	}

	backups, err = mgr.ListBackups()
	if err != nil {
		t.Fatalf("ListBackups failed: %v", err)
	}
	if len(backups) != 1 {
		t.Fatalf("expected 1 backup, got %d", len(backups))
	}
	if backups[0].Timestamp.IsZero() {
		t.Error("backup timestamp not parsed")
	}
}

func TestListBackups_IgnoresForeignFiles(t *testing.T) {
	path := newStoreFile(t)
	mgr := NewManager(path)
	if _, err := mgr.CreateBackup(); err != nil {
		t.Fatalf("CreateBackup failed: %v", err)
	}

	for _, name := range []string{"notes.txt", "habitkit-garbage.db", "other-20260105-1200.db"} {
		if err := os.WriteFile(filepath.Join(mgr.GetBackupDir(), name), []byte("x"), 0600); err != nil {
			t.Fatalf("write failed: %v", err)
		}
	}

	backups, err := mgr.ListBackups()
	if err != nil {
		t.Fatalf("ListBackups failed: %v", err)
	}
	if len(backups) != 1 {
		t.Errorf("foreign files counted as backups: %d", len(backups))
	}
}

func TestRestoreBackup(t *testing.T) {
	path := newStoreFile(t)
	mgr := NewManager(path)

	backupPath, err := mgr.CreateBackup()
	if err != nil {
		t.Fatalf("CreateBackup failed: %v", err)
	}

	// Drop the habit from the live store, then restore the snapshot
	live := storage.NewSQLiteStore(path)
	if err := live.Load(); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if err := live.PurgeHabit("h-1"); err != nil {
		t.Fatalf("PurgeHabit failed: %v", err)
	}
	if err := live.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	if err := mgr.RestoreBackup(backupPath); err != nil {
		t.Fatalf("RestoreBackup failed: %v", err)
	}

	store := storage.NewSQLiteStore(path)
	if err := store.Load(); err != nil {
		t.Fatalf("restored store does not load: %v", err)
	}
	defer store.Close()

	h, err := store.GetHabit("h-1")
	if err != nil {
		t.Fatalf("habit missing after restore: %v", err)
	}
	if h.History["2026-01-05"] != models.OutcomeCompleted {
		t.Error("history missing after restore")
	}
}

func TestRestoreBackup_RejectsCorrupted(t *testing.T) {
	path := newStoreFile(t)
	mgr := NewManager(path)

	bad := filepath.Join(t.TempDir(), "habitkit-20260101-0000.db")
	if err := os.WriteFile(bad, []byte("not a database"), 0600); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	if err := mgr.RestoreBackup(bad); err == nil {
		t.Error("expected error restoring a corrupted backup")
	}
}

func TestJSONBackupRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "habitkit.json")
	store := storage.NewJSONStore(path)
	if err := store.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}

	mgr := NewManager(path)
	backupPath, err := mgr.CreateBackup()
	if err != nil {
		t.Fatalf("CreateBackup failed: %v", err)
	}
	if filepath.Ext(backupPath) != ".json" {
		t.Errorf("backup should keep the store suffix, got %s", backupPath)
	}

	if err := mgr.RestoreBackup(backupPath); err != nil {
		t.Fatalf("RestoreBackup failed: %v", err)
	}
}
