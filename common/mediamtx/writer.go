package mediamtx

import (
	"fmt"
	"io/ioutil"
	"os"
	"path/filepath"

	"github.com/gookit/goutil/fsutil"
	"go.uber.org/zap"
	"gopkg.in/yaml.v2"
)

//Writer persists a rendered configuration to durable storage.
type Writer interface {
	Write(cfg *Config, path string) error
}

//FileWriter writes the document to a temporary file in the target directory
//and renames it into place, so a reader never observes a truncated document.
type FileWriter struct {
	Logger *zap.Logger
}

func NewFileWriter(logger *zap.Logger) *FileWriter {
	return &FileWriter{Logger: logger}
}

func (w *FileWriter) Write(cfg *Config, path string) error {
	raw, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, fsutil.DefaultDirPerm); err != nil {
		return fmt.Errorf("failed to create config folder %s: %w", dir, err)
	}
	tmp, err := ioutil.TempFile(dir, ".mediamtx-*.yml")
	if err != nil {
		return fmt.Errorf("failed to create temp config file in %s: %w", dir, err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write temp config file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to sync temp config file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmp.Name(), 0644); err != nil {
		return err
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("failed to move config into place: %w", err)
	}
	w.Logger.Info(fmt.Sprintf("configuration written to %s", path))
	return nil
}
