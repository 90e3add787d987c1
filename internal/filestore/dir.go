// Package filestore keeps durable slots as one JSON file per key inside a
// directory and reports writes made by other processes.
package filestore

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
	"strings"
)

const (
	slotFileExt    = ".json"
	tempFilePrefix = ".tmp-"
)

type Dir struct {
	root string
}

func OpenDir(root string) (*Dir, error) {
	if strings.TrimSpace(root) == "" {
		return nil, errors.New("slot directory is required")
	}
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("create slot directory: %w", err)
	}
	return &Dir{root: root}, nil
}

func (dir *Dir) Root() string {
	return dir.root
}

func (dir *Dir) Get(key string) (string, bool, error) {
	content, err := os.ReadFile(dir.pathFor(key))
	if errors.Is(err, fs.ErrNotExist) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("read slot %s: %w", key, err)
	}
	return string(content), true, nil
}

// Set replaces the slot file atomically so readers never see a partial value.
func (dir *Dir) Set(key string, value string) error {
	temp, err := os.CreateTemp(dir.root, tempFilePrefix+"*")
	if err != nil {
		return fmt.Errorf("create temp slot file: %w", err)
	}
	tempPath := temp.Name()

	if _, err := temp.WriteString(value); err != nil {
		_ = temp.Close()
		_ = os.Remove(tempPath)
		return fmt.Errorf("write slot %s: %w", key, err)
	}
	if err := temp.Close(); err != nil {
		_ = os.Remove(tempPath)
		return fmt.Errorf("close slot %s: %w", key, err)
	}
	if err := os.Rename(tempPath, dir.pathFor(key)); err != nil {
		_ = os.Remove(tempPath)
		return fmt.Errorf("replace slot %s: %w", key, err)
	}
	return nil
}

func (dir *Dir) pathFor(key string) string {
	return filepath.Join(dir.root, url.PathEscape(key)+slotFileExt)
}

// KeyForPath maps a slot file path back to its key. Temporary files and
// foreign files are rejected.
func KeyForPath(path string) (string, bool) {
	name := filepath.Base(path)
	if strings.HasPrefix(name, tempFilePrefix) || filepath.Ext(name) != slotFileExt {
		return "", false
	}
	key, err := url.PathUnescape(strings.TrimSuffix(name, slotFileExt))
	if err != nil || key == "" {
		return "", false
	}
	return key, true
}
