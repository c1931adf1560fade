package storage

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"delivery_api/internal/utils"
)

// Upload subdirectories, by media kind.
const (
	AvatarDir  = "avatars"
	VehicleDir = "vehicles"
)

// FileStorage is the side-channel for uploaded media. References returned by
// Save are stable relative paths suitable for persisting in the database.
// Delete exists for compensating cleanup after a rolled-back transaction.
type FileStorage interface {
	Save(file *multipart.FileHeader, subdir string) (string, error)
	Delete(path string) error
	FullPath(path string) string
}

// LocalStorage stores uploads on the local filesystem under a base directory
type LocalStorage struct {
	basePath string
}

// NewLocalStorage creates the base directory if needed
func NewLocalStorage(basePath string) (*LocalStorage, error) {
	if err := os.MkdirAll(basePath, 0755); err != nil {
		return nil, fmt.Errorf("failed to create storage directory: %w", err)
	}
	return &LocalStorage{basePath: basePath}, nil
}

// Save writes an uploaded file under subdir with a unique name and returns
// the relative reference path.
func (s *LocalStorage) Save(file *multipart.FileHeader, subdir string) (string, error) {
	src, err := file.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer src.Close()

	relPath := filepath.Join(subdir, uniqueFilename(subdir, file.Filename))
	fullPath := filepath.Join(s.basePath, relPath)
	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return "", fmt.Errorf("failed to create directory: %w", err)
	}

	dst, err := os.Create(fullPath)
	if err != nil {
		return "", fmt.Errorf("failed to create file: %w", err)
	}
	defer dst.Close()

	if _, err = io.Copy(dst, src); err != nil {
		return "", fmt.Errorf("failed to save file: %w", err)
	}

	utils.Logger.Info("file stored", zap.String("path", relPath))
	return relPath, nil
}

// Delete removes a previously saved file by its reference path
func (s *LocalStorage) Delete(path string) error {
	full := filepath.Join(s.basePath, filepath.Clean("/"+path))
	if err := os.Remove(full); err != nil {
		return fmt.Errorf("failed to delete file %s: %w", path, err)
	}
	return nil
}

// FullPath resolves a reference path to an absolute filesystem path,
// confined to the storage base directory.
func (s *LocalStorage) FullPath(path string) string {
	return filepath.Join(s.basePath, filepath.Clean("/"+path))
}

func uniqueFilename(subdir, originalFilename string) string {
	ext := filepath.Ext(originalFilename)
	base := strings.TrimSuffix(subdir, "s") // avatars -> avatar, vehicles -> vehicle
	return base + "_" + uuid.NewString() + ext
}
