package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// ErrUnsupportedImage возвращается для файлов, не являющихся поддерживаемым изображением.
var ErrUnsupportedImage = fmt.Errorf("unsupported image type")

// Расширения для поддерживаемых MIME-типов изображений профиля.
var imageExtensions = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
	"image/gif":  ".gif",
}

// ImageStore описывает контракт хранилища изображений профиля.
type ImageStore interface {
	// Save сохраняет изображение и возвращает его публичный URL.
	// contentType должен быть определён по содержимому, а не по имени файла.
	// Возвращает ErrUnsupportedImage для неподдерживаемых типов.
	Save(ctx context.Context, contentType string, r io.Reader) (string, error)
}

// LocalImageStore сохраняет изображения на локальный диск и раздаёт их
// по статическому маршруту baseURL.
type LocalImageStore struct {
	dir     string
	baseURL string
}

var _ ImageStore = (*LocalImageStore)(nil)

// NewLocalImageStore создаёт локальное хранилище изображений.
// Каталог создаётся при инициализации, если его нет.
func NewLocalImageStore(dir, baseURL string) (*LocalImageStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload dir: %w", err)
	}
	return &LocalImageStore{
		dir:     dir,
		baseURL: strings.TrimSuffix(baseURL, "/"),
	}, nil
}

// Save записывает изображение под случайным именем с расширением по MIME-типу.
func (s *LocalImageStore) Save(ctx context.Context, contentType string, r io.Reader) (string, error) {
	ext, ok := imageExtensions[contentType]
	if !ok {
		return "", ErrUnsupportedImage
	}

	if err := ctx.Err(); err != nil {
		return "", err
	}

	name := uuid.New().String() + ext
	path := filepath.Join(s.dir, name)

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", fmt.Errorf("failed to create image file: %w", err)
	}

	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		os.Remove(path)
		return "", fmt.Errorf("failed to write image file: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(path)
		return "", err
	}

	return s.baseURL + "/" + name, nil
}
