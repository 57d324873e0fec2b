package service

import (
	"fmt"
	"os"
	"path/filepath"
)

// ============================================================
// Material Storage
// ============================================================

// MaterialStorage сопоставляет имена изображений материалов файлам внутри
// одного корня.
type MaterialStorage struct {
	root string
}

func NewMaterialStorage(root string) *MaterialStorage {
	return &MaterialStorage{root: root}
}

// ImagePath переводит имя изображения в путь к файлу. Имена, выходящие за
// корень, отклоняются.
func (s *MaterialStorage) ImagePath(image string) (string, error) {
	name := filepath.FromSlash(image)
	if image == "" || !filepath.IsLocal(name) {
		return "", fmt.Errorf("invalid material image %q", image)
	}
	return filepath.Join(s.root, name), nil
}

func (s *MaterialStorage) Exists(image string) bool {
	path, err := s.ImagePath(image)
	if err != nil {
		return false
	}
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

func (s *MaterialStorage) Open(image string) (*os.File, error) {
	path, err := s.ImagePath(image)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open material image: %w", err)
	}
	return f, nil
}

func (s *MaterialStorage) EnsureDir() error {
	if err := os.MkdirAll(s.root, 0o755); err != nil {
		return fmt.Errorf("mkdir materials dir: %w", err)
	}
	return nil
}

func (s *MaterialStorage) SaveFile(image string, data []byte) error {
	path, err := s.ImagePath(image)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir material dir: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}
