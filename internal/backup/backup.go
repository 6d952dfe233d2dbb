// Package backup manages timestamped snapshots of the data directory. A
// snapshot is a plain directory copy of every data file, so a restore never
// depends on the storage backend in use.
package backup

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/julianstephens/ritual/internal/constants"
)

// Info describes one backup snapshot.
type Info struct {
	Path      string
	Name      string
	Timestamp time.Time
	Files     int
}

// Manager handles backup operations for a data directory.
type Manager struct {
	dataDir   string
	backupDir string
}

// NewManager creates a backup manager for dataDir. Snapshots live in a
// backups subdirectory next to the data files.
func NewManager(dataDir string) *Manager {
	return &Manager{
		dataDir:   dataDir,
		backupDir: filepath.Join(dataDir, constants.BackupDirName),
	}
}

// BackupDir returns the directory snapshots are written to.
func (m *Manager) BackupDir() string {
	return m.backupDir
}

// Create copies every data file into a new timestamped snapshot and rotates
// old snapshots beyond the retention limit.
func (m *Manager) Create() (string, error) {
	if err := os.MkdirAll(m.backupDir, 0700); err != nil {
		return "", fmt.Errorf("failed to create backup directory: %w", err)
	}

	files, err := m.dataFiles()
	if err != nil {
		return "", err
	}
	if len(files) == 0 {
		return "", fmt.Errorf("nothing to back up in %s", m.dataDir)
	}

	name := constants.BackupFilePrefix + time.Now().Format("20060102-150405")
	dest := filepath.Join(m.backupDir, name)
	for counter := 1; ; counter++ {
		if _, err := os.Stat(dest); os.IsNotExist(err) {
			break
		}
		dest = filepath.Join(m.backupDir, fmt.Sprintf("%s-%d", name, counter))
		if counter > 100 {
			return "", fmt.Errorf("failed to generate unique backup name")
		}
	}

	if err := os.MkdirAll(dest, 0700); err != nil {
		return "", fmt.Errorf("failed to create snapshot directory: %w", err)
	}
	for _, file := range files {
		if err := copyFile(file, filepath.Join(dest, filepath.Base(file))); err != nil {
			return "", fmt.Errorf("failed to copy %s: %w", filepath.Base(file), err)
		}
	}

	if err := m.rotate(); err != nil {
		// Rotation failure should not fail the backup itself.
		fmt.Fprintf(os.Stderr, "Warning: failed to rotate old backups: %v\n", err)
	}

	return dest, nil
}

// List returns available snapshots, newest first.
func (m *Manager) List() ([]Info, error) {
	entries, err := os.ReadDir(m.backupDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read backup directory: %w", err)
	}

	var backups []Info
	for _, entry := range entries {
		if !entry.IsDir() || !strings.HasPrefix(entry.Name(), constants.BackupFilePrefix) {
			continue
		}
		ts, err := parseTimestamp(entry.Name())
		if err != nil {
			info, statErr := entry.Info()
			if statErr != nil {
				continue
			}
			ts = info.ModTime()
		}
		dir := filepath.Join(m.backupDir, entry.Name())
		files, _ := os.ReadDir(dir)
		backups = append(backups, Info{
			Path:      dir,
			Name:      entry.Name(),
			Timestamp: ts,
			Files:     len(files),
		})
	}

	sort.Slice(backups, func(i, j int) bool {
		return backups[i].Timestamp.After(backups[j].Timestamp)
	})
	return backups, nil
}

// Restore copies the files of the named snapshot back into the data
// directory, taking a safety snapshot of the current state first.
func (m *Manager) Restore(name string) error {
	src := filepath.Join(m.backupDir, name)
	if info, err := os.Stat(src); err != nil || !info.IsDir() {
		return fmt.Errorf("backup not found: %s", name)
	}

	// Preserve the pre-restore state so a bad restore is recoverable.
	if _, err := m.Create(); err != nil {
		return fmt.Errorf("failed to snapshot current state before restore: %w", err)
	}

	entries, err := os.ReadDir(src)
	if err != nil {
		return fmt.Errorf("failed to read backup: %w", err)
	}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if err := copyFile(filepath.Join(src, entry.Name()), filepath.Join(m.dataDir, entry.Name())); err != nil {
			return fmt.Errorf("failed to restore %s: %w", entry.Name(), err)
		}
	}
	return nil
}

// dataFiles returns the regular files directly inside the data directory,
// skipping the backups and logs subdirectories.
func (m *Manager) dataFiles() ([]string, error) {
	entries, err := os.ReadDir(m.dataDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read data directory: %w", err)
	}
	var files []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		files = append(files, filepath.Join(m.dataDir, entry.Name()))
	}
	return files, nil
}

func (m *Manager) rotate() error {
	backups, err := m.List()
	if err != nil {
		return err
	}
	for i := constants.MaxBackups; i < len(backups); i++ {
		if err := os.RemoveAll(backups[i].Path); err != nil {
			return err
		}
	}
	return nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return err
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		return err
	}
	return out.Sync()
}

// parseTimestamp extracts the creation time encoded in a snapshot name such
// as "ritual-20240105-120000" or "ritual-20240105-120000-2".
func parseTimestamp(name string) (time.Time, error) {
	parts := strings.Split(strings.TrimPrefix(name, constants.BackupFilePrefix), "-")
	if len(parts) < 2 {
		return time.Time{}, fmt.Errorf("malformed backup name: %s", name)
	}
	return time.ParseInLocation("20060102-150405", parts[0]+"-"+parts[1], time.Local)
}
