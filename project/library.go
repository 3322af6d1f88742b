package project

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/sirupsen/logrus"
)

// SampleFS holds the project shipped with the binary. A Library falls back
// to it when its file is missing on disk.
//
//go:embed sample/*.yaml
var SampleFS embed.FS

// Library is a project loaded from disk that can be reloaded in place.
// A failed reload keeps the previously loaded project.
type Library struct {
	mu       sync.RWMutex
	path     string
	project  *Project
	log      logrus.FieldLogger
	fallback fs.FS
}

// OpenLibrary loads the project at path. When the file does not exist and
// the sample project has a file of the same base name, that is used instead.
// The sample only stands in for the first load: once a project is loaded,
// a missing file is a reload error and the loaded project stays.
func OpenLibrary(path string, logger logrus.FieldLogger) (*Library, error) {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	l := &Library{
		path:     path,
		log:      logger.WithField("project", path),
		fallback: SampleFS,
	}
	if err := l.Reload(); err != nil {
		return nil, err
	}
	return l, nil
}

func (l *Library) Path() string {
	if l == nil {
		return ""
	}
	return l.path
}

// Project returns the currently loaded project.
func (l *Library) Project() *Project {
	if l == nil {
		return nil
	}
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.project
}

// Lookup returns the sequence data stored under name.
func (l *Library) Lookup(name string) (string, bool) {
	return l.Project().Lookup(name)
}

// Reload re-reads the project file.
func (l *Library) Reload() error {
	if l == nil {
		return nil
	}
	data, err := l.read()
	if err != nil {
		return err
	}
	p, err := Parse(data, FormatFor(l.path))
	if err != nil {
		l.log.WithError(err).Warn("project reload failed, keeping previous sequences")
		return fmt.Errorf("project: reload %s: %w", l.path, err)
	}
	if err := p.Validate(); err != nil {
		l.log.WithError(err).Warn("project has invalid sequences")
	}

	l.mu.Lock()
	l.project = p
	l.mu.Unlock()
	l.log.WithField("sequences", len(p.Sequences)).Info("project loaded")
	return nil
}

func (l *Library) read() ([]byte, error) {
	data, err := os.ReadFile(l.path)
	if err == nil {
		return data, nil
	}
	if !errors.Is(err, fs.ErrNotExist) || l.fallback == nil || l.Project() != nil {
		return nil, fmt.Errorf("project: read %s: %w", l.path, err)
	}
	embedded, ferr := fs.ReadFile(l.fallback, "sample/"+filepath.Base(l.path))
	if ferr != nil {
		return nil, fmt.Errorf("project: read %s: %w", l.path, err)
	}
	l.log.Debug("project file missing, using sample project")
	return embedded, nil
}
