package backup

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
)

func newTestManager(t *testing.T) (*Manager, string) {
	t.Helper()
	dir := t.TempDir()
	storePath := filepath.Join(dir, "events.json")
	if err := os.WriteFile(storePath, []byte(`{"version":1,"events":{}}`), 0600); err != nil {
		t.Fatal(err)
	}
	return NewManager(storePath), storePath
}

func TestCreateBackup_CopiesStore(t *testing.T) {
	mgr, storePath := newTestManager(t)

	backupPath, err := mgr.CreateBackup()
	if err != nil {
		t.Fatalf("CreateBackup failed: %v", err)
	}

	original, _ := os.ReadFile(storePath)
	copied, err := os.ReadFile(backupPath)
	if err != nil {
		t.Fatalf("Backup file unreadable: %v", err)
	}
	if string(original) != string(copied) {
		t.Error("Backup contents differ from the store")
	}
}

func TestCreateBackup_MissingStore(t *testing.T) {
	mgr := NewManager(filepath.Join(t.TempDir(), "events.json"))
	if _, err := mgr.CreateBackup(); err == nil {
		t.Error("Expected error backing up a nonexistent store")
	}
}

func TestCreateBackup_DisambiguatesSameSecond(t *testing.T) {
	mgr, _ := newTestManager(t)

	seen := make(map[string]bool)
	for i := 0; i < 3; i++ {
		path, err := mgr.CreateBackup()
		if err != nil {
			t.Fatalf("CreateBackup failed: %v", err)
		}
		if seen[path] {
			t.Errorf("Duplicate backup path: %s", path)
		}
		seen[path] = true
	}
}

func TestListBackups_EmptyDirectory(t *testing.T) {
	mgr, _ := newTestManager(t)

	backups, err := mgr.ListBackups()
	if err != nil {
		t.Fatalf("ListBackups failed: %v", err)
	}
	if len(backups) != 0 {
		t.Errorf("Expected no backups, got %d", len(backups))
	}
}

func TestListBackups_IgnoresForeignFiles(t *testing.T) {
	mgr, _ := newTestManager(t)
	if _, err := mgr.CreateBackup(); err != nil {
		t.Fatal(err)
	}

	// Unrelated files in the backup directory are not backups
	if err := os.WriteFile(filepath.Join(mgr.GetBackupDir(), "notes.txt"), []byte("x"), 0600); err != nil {
		t.Fatal(err)
	}

	backups, err := mgr.ListBackups()
	if err != nil {
		t.Fatalf("ListBackups failed: %v", err)
	}
	if len(backups) != 1 {
		t.Errorf("Expected 1 backup, got %d", len(backups))
	}
}

func TestRestoreBackup_ReplacesStore(t *testing.T) {
	mgr, storePath := newTestManager(t)

	backupPath, err := mgr.CreateBackup()
	if err != nil {
		t.Fatal(err)
	}

	// Store changes after the backup was taken
	if err := os.WriteFile(storePath, []byte(`{"version":1,"events":{"2026-08-15":[]}}`), 0600); err != nil {
		t.Fatal(err)
	}

	if err := mgr.RestoreBackup(backupPath); err != nil {
		t.Fatalf("RestoreBackup failed: %v", err)
	}

	restored, _ := os.ReadFile(storePath)
	if string(restored) != `{"version":1,"events":{}}` {
		t.Errorf("Store after restore = %s", restored)
	}

	// The pre-restore state was itself backed up
	backups, _ := mgr.ListBackups()
	if len(backups) < 2 {
		t.Errorf("Expected a safety backup before restore, got %d backups", len(backups))
	}
}

func TestRestoreBackup_MissingBackup(t *testing.T) {
	mgr, _ := newTestManager(t)
	if err := mgr.RestoreBackup(filepath.Join(mgr.GetBackupDir(), "nope.json")); err == nil {
		t.Error("Expected error restoring a nonexistent backup")
	}
}

func TestRotation_KeepsMostRecent(t *testing.T) {
	mgr, _ := newTestManager(t)

	// Seed more backups than the retention limit allows, with distinct
	// modification times so rotation order is deterministic
	if err := os.MkdirAll(mgr.GetBackupDir(), 0700); err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 20; i++ {
		name := fmt.Sprintf("timetabled-20260801-%06d.json", i)
		path := filepath.Join(mgr.GetBackupDir(), name)
		if err := os.WriteFile(path, []byte("{}"), 0600); err != nil {
			t.Fatal(err)
		}
	}

	if _, err := mgr.CreateBackup(); err != nil {
		t.Fatalf("CreateBackup failed: %v", err)
	}

	backups, err := mgr.ListBackups()
	if err != nil {
		t.Fatal(err)
	}
	if len(backups) > 14 {
		t.Errorf("Rotation kept %d backups, want at most 14", len(backups))
	}
}
