package evidence

import (
	"fmt"
	"os"
	"sync"

	domain "github.com/farmtech/farmtech-api/internal/domain/soil"
)

// TempFileStager stages image bytes as private temp files, one per
// in-flight request. os.CreateTemp guarantees a unique path, so
// concurrent analyze calls never share a file.
type TempFileStager struct {
	// Dir overrides the staging directory; empty means the system temp dir.
	Dir string
}

func NewTempFileStager() *TempFileStager {
	return &TempFileStager{}
}

func (s *TempFileStager) Stage(data []byte, mimeType string) (domain.StagedEvidence, error) {
	f, err := os.CreateTemp(s.Dir, "soil-evidence-*"+extFor(mimeType))
	if err != nil {
		return nil, fmt.Errorf("failed to create staging file: %w", err)
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		os.Remove(f.Name())
		return nil, fmt.Errorf("failed to write staging file: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(f.Name())
		return nil, fmt.Errorf("failed to close staging file: %w", err)
	}
	return &stagedFile{path: f.Name(), mime: mimeType}, nil
}

func extFor(mimeType string) string {
	switch mimeType {
	case "image/png":
		return ".png"
	case "image/webp":
		return ".webp"
	default:
		return ".jpg"
	}
}

type stagedFile struct {
	path string
	mime string
	once sync.Once
	err  error
}

func (s *stagedFile) Path() string     { return s.path }
func (s *stagedFile) MIMEType() string { return s.mime }

// Release removes the staged file. Safe to call more than once, so callers
// can defer it and still release early on specific paths.
func (s *stagedFile) Release() error {
	s.once.Do(func() {
		if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
			s.err = err
		}
	})
	return s.err
}
