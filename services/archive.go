package services

import (
	"archive/zip"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"journal-submission-api/models"
)

var (
	ErrArchiveNotFound = errors.New("zip file not found")
	ErrBadCategory     = errors.New("unknown file category")
	ErrBadFileName     = errors.New("invalid file name")
)

// DefaultArchiveGrace is how long an archive stays downloadable before the
// packager deletes it, downloaded or not.
const DefaultArchiveGrace = 60 * time.Second

// ArchiveEntry names one attachment to bundle. The category tag decides the
// source directory; the filename is never inspected for routing.
type ArchiveEntry struct {
	FileName string              `json:"file_name" binding:"required"`
	Category models.FileCategory `json:"category" binding:"required"`
}

// ArchiveService bundles stored attachments into ephemeral zip archives.
// Archives are written whole before their name is handed out, then live for
// one grace period unless a download consumes them first.
type ArchiveService struct {
	uploadRoot string
	archiveDir string
	grace      time.Duration

	mu     sync.Mutex
	timers map[string]*time.Timer
}

func NewArchiveService(uploadRoot string, grace time.Duration) *ArchiveService {
	return &ArchiveService{
		uploadRoot: uploadRoot,
		archiveDir: filepath.Join(uploadRoot, "zip-files"),
		grace:      grace,
		timers:     make(map[string]*time.Timer),
	}
}

// ArchiveDir is where generated archives land; the caller provisions it.
func (s *ArchiveService) ArchiveDir() string {
	return s.archiveDir
}

func (s *ArchiveService) sourcePath(entry ArchiveEntry) (string, error) {
	if !entry.Category.Valid() {
		return "", ErrBadCategory
	}
	name := entry.FileName
	if name == "" || name != filepath.Base(name) || name == "." || name == ".." {
		return "", ErrBadFileName
	}
	return filepath.Join(s.uploadRoot, entry.Category.Dir(), name), nil
}

// Create bundles the entries into a timestamp-named zip. Any unreadable
// source aborts the whole operation and no partial archive is left behind.
// Deletion is scheduled before the name is returned.
func (s *ArchiveService) Create(entries []ArchiveEntry) (string, error) {
	name := fmt.Sprintf("%d.zip", time.Now().UnixMilli())
	path := filepath.Join(s.archiveDir, name)

	if err := s.writeArchive(path, entries); err != nil {
		_ = os.Remove(path)
		return "", err
	}

	s.scheduleDelete(name)
	return name, nil
}

func (s *ArchiveService) writeArchive(path string, entries []ArchiveEntry) error {
	out, err := os.Create(path)
	if err != nil {
		return err
	}
	zw := zip.NewWriter(out)

	for _, entry := range entries {
		src, err := s.sourcePath(entry)
		if err == nil {
			err = copyIntoZip(zw, entry.FileName, src)
		}
		if err != nil {
			zw.Close()
			out.Close()
			return err
		}
	}

	if err := zw.Close(); err != nil {
		out.Close()
		return err
	}
	// The archive must be durable before the success signal goes out.
	if err := out.Sync(); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

func copyIntoZip(zw *zip.Writer, name, src string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	w, err := zw.Create(name)
	if err != nil {
		return err
	}
	_, err = io.Copy(w, in)
	return err
}

func (s *ArchiveService) scheduleDelete(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.timers[name] = time.AfterFunc(s.grace, func() {
		s.mu.Lock()
		delete(s.timers, name)
		s.mu.Unlock()
		// The download path may already have removed the file.
		_ = s.removeIfExists(name)
	})
}

func (s *ArchiveService) removeIfExists(name string) error {
	err := os.Remove(filepath.Join(s.archiveDir, name))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

// Path resolves a generated archive name for download. Names carrying path
// separators and expired archives both come back as ErrArchiveNotFound.
func (s *ArchiveService) Path(name string) (string, error) {
	if name == "" || name != filepath.Base(name) || name == "." || name == ".." {
		return "", ErrArchiveNotFound
	}
	path := filepath.Join(s.archiveDir, name)
	if _, err := os.Stat(path); err != nil {
		return "", ErrArchiveNotFound
	}
	return path, nil
}

// Consume deletes a downloaded archive and cancels its expiry timer. Safe to
// call more than once and after the timer already fired.
func (s *ArchiveService) Consume(name string) error {
	s.mu.Lock()
	if timer, ok := s.timers[name]; ok {
		timer.Stop()
		delete(s.timers, name)
	}
	s.mu.Unlock()
	return s.removeIfExists(name)
}
