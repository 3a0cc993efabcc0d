package backup

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// FileName is laundry-backup-YYYY-MM-DD.json for the UTC day of t.
func FileName(t time.Time) string {
	return "laundry-backup-" + t.UTC().Format("2006-01-02") + ".json"
}

// WriteFile stores s in dir and returns the written path.
func WriteFile(dir string, s *Snapshot) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create backup dir: %w", err)
	}

	path := filepath.Join(dir, FileName(s.BackupDate))
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create backup file: %w", err)
	}

	if err := Encode(f, s); err != nil {
		f.Close()
		return "", err
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("close backup file: %w", err)
	}
	return path, nil
}

func ReadFile(path string) (*Snapshot, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open backup file: %w", err)
	}
	defer f.Close()

	return Decode(f)
}
