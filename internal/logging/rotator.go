package logging

import (
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"
)

// Rotator is an io.Writer that appends to a log file and rotates it by
// size, keeping a bounded number of timestamped backups.
type Rotator struct {
	mu       sync.Mutex
	dir      string
	name     string
	maxSize  int64
	maxAge   time.Duration
	backups  int
	compress bool
	file     *os.File
	size     int64
}

// NewRotator opens (or creates) the log file at path. Sizes are in MB,
// age in days.
func NewRotator(path string, maxSizeMB, maxBackups, maxAgeDays int, compress bool) (*Rotator, error) {
	r := &Rotator{
		dir:      filepath.Dir(path),
		name:     filepath.Base(path),
		maxSize:  int64(maxSizeMB) * 1024 * 1024,
		maxAge:   time.Duration(maxAgeDays) * 24 * time.Hour,
		backups:  maxBackups,
		compress: compress,
	}
	if err := os.MkdirAll(r.dir, 0o755); err != nil {
		return nil, fmt.Errorf("create log dir: %w", err)
	}
	if err := r.open(); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *Rotator) open() error {
	path := filepath.Join(r.dir, r.name)
	if info, err := os.Stat(path); err == nil {
		r.size = info.Size()
	} else {
		r.size = 0
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	r.file = file
	return nil
}

func (r *Rotator) Write(p []byte) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.file == nil {
		if err := r.open(); err != nil {
			return 0, err
		}
	}
	if r.size+int64(len(p)) > r.maxSize {
		if err := r.rotate(); err != nil {
			return 0, err
		}
	}
	n, err := r.file.Write(p)
	r.size += int64(n)
	return n, err
}

func (r *Rotator) rotate() error {
	if r.file != nil {
		_ = r.file.Close()
	}
	stamp := time.Now().Format("2006-01-02-15-04-05")
	current := filepath.Join(r.dir, r.name)
	backup := filepath.Join(r.dir, r.name+"."+stamp)
	if err := os.Rename(current, backup); err != nil {
		return fmt.Errorf("rotate log file: %w", err)
	}
	if r.compress {
		if err := compressFile(backup); err == nil {
			_ = os.Remove(backup)
		}
	}
	r.cleanup()
	return r.open()
}

func compressFile(path string) error {
	in, err := os.Open(path)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(path + ".gz")
	if err != nil {
		return err
	}
	defer out.Close()

	gz := gzip.NewWriter(out)
	if _, err := io.Copy(gz, in); err != nil {
		_ = gz.Close()
		return err
	}
	return gz.Close()
}

// cleanup drops backups past maxAge and over the backup count, oldest
// first.
func (r *Rotator) cleanup() {
	entries, err := os.ReadDir(r.dir)
	if err != nil {
		return
	}
	now := time.Now()
	var infos []os.FileInfo
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasPrefix(entry.Name(), r.name+".") {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		if r.maxAge > 0 && now.Sub(info.ModTime()) > r.maxAge {
			_ = os.Remove(filepath.Join(r.dir, info.Name()))
			continue
		}
		infos = append(infos, info)
	}
	if r.backups > 0 && len(infos) > r.backups {
		sort.Slice(infos, func(i, j int) bool {
			return infos[i].ModTime().Before(infos[j].ModTime())
		})
		for _, info := range infos[:len(infos)-r.backups] {
			_ = os.Remove(filepath.Join(r.dir, info.Name()))
		}
	}
}

// Close closes the current log file.
func (r *Rotator) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.file == nil {
		return nil
	}
	err := r.file.Close()
	r.file = nil
	return err
}
