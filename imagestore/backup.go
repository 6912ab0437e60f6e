package imagestore

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/Jeevankiran1503/Prodigy-FS-03/logging"
)

// Backup copies the uploads directory into a timestamped folder once a day and
// prunes folders older than Retention.
type Backup struct {
	SrcDir    string
	BackupDir string
	Retention time.Duration
	Hour      int
	Minute    int

	now func() time.Time
}

func NewBackup(srcDir, backupDir string, retention time.Duration) *Backup {
	return &Backup{SrcDir: srcDir, BackupDir: backupDir, Retention: retention, Hour: 2, now: time.Now}
}

// NextRun returns the next scheduled backup time after now.
func (b *Backup) NextRun(now time.Time) time.Time {
	next := time.Date(now.Year(), now.Month(), now.Day(), b.Hour, b.Minute, 0, 0, now.Location())
	if !next.After(now) {
		next = next.Add(24 * time.Hour)
	}
	return next
}

// Run blocks until ctx is cancelled, backing up once per day.
func (b *Backup) Run(ctx context.Context) {
	for {
		next := b.NextRun(b.now())
		logging.Info().Str("at", next.Format("2006-01-02 15:04:05")).Msg("next image backup scheduled")

		timer := time.NewTimer(time.Until(next))
		select {
		case <-ctx.Done():
			timer.Stop()
			return
		case <-timer.C:
		}

		if _, err := b.RunOnce(); err != nil {
			logging.Error().Err(err).Msg("image backup failed")
		}
	}
}

// RunOnce performs a single backup followed by retention cleanup and returns
// the folder it wrote.
func (b *Backup) RunOnce() (string, error) {
	dest := filepath.Join(b.BackupDir, b.now().Format("2006-01-02_15-04-05"))
	if err := copyDir(b.SrcDir, dest); err != nil {
		return "", fmt.Errorf("back up %s: %w", b.SrcDir, err)
	}
	logging.Info().Str("dest", dest).Msg("images backed up")

	b.cleanup()
	return dest, nil
}

func copyDir(src, dest string) error {
	entries, err := os.ReadDir(src)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(dest, 0o755); err != nil {
		return err
	}
	for _, entry := range entries {
		srcPath := filepath.Join(src, entry.Name())
		destPath := filepath.Join(dest, entry.Name())

		if entry.IsDir() {
			err = copyDir(srcPath, destPath)
		} else {
			err = copyFile(srcPath, destPath)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func copyFile(src, dest string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dest)
	if err != nil {
		return err
	}
	defer out.Close()

	if _, err = io.Copy(out, in); err != nil {
		return err
	}
	return out.Sync()
}

// cleanup removes backup folders whose modification time is past retention.
func (b *Backup) cleanup() {
	entries, err := os.ReadDir(b.BackupDir)
	if err != nil {
		logging.Error().Err(err).Msg("failed to read backup directory")
		return
	}

	cutoff := b.now().Add(-b.Retention)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		if info.ModTime().Before(cutoff) {
			folder := filepath.Join(b.BackupDir, entry.Name())
			if err := os.RemoveAll(folder); err != nil {
				logging.Error().Err(err).Str("folder", folder).Msg("failed to remove old backup")
			} else {
				logging.Info().Str("folder", folder).Msg("removed old backup")
			}
		}
	}
}
