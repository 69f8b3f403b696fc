package wizard

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"

	"athlete-app/internal/domain/profile"
)

// StorageKey — ключ снимка состояния мастера создания профиля. Состояние
// уведомлений хранится под собственным, независимым ключом и этим пакетом
// не затрагивается.
const StorageKey = "athlete-profile-creation"

// Snapshot — сохраняемая часть состояния мастера. Ошибки намеренно не входят
// в снимок: после перезагрузки они должны быть пустыми.
type Snapshot struct {
	FormData       profile.Draft `json:"formData"`
	CurrentStep    int           `json:"currentStep"`
	CompletedSteps []int         `json:"completedSteps"`
}

// SnapshotStorage — аналог клиентского локального хранилища: независимые
// ключи, каждая запись — полная замена снимка, без транзакций.
type SnapshotStorage interface {
	// Load возвращает снимок по ключу или (nil, nil), если снимка нет.
	Load(key string) (*Snapshot, error)

	// Save полностью замещает снимок по ключу.
	Save(key string, snap *Snapshot) error

	// Clear удаляет снимок по ключу. Отсутствие снимка не является ошибкой.
	Clear(key string) error
}

// FileStorage хранит снимки в JSON-файлах каталога dir (по файлу на ключ).
type FileStorage struct {
	dir string
}

var _ SnapshotStorage = (*FileStorage)(nil)

// NewFileStorage создаёт файловое хранилище снимков, при необходимости
// создавая каталог.
func NewFileStorage(dir string) (*FileStorage, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &FileStorage{dir: dir}, nil
}

func (s *FileStorage) path(key string) string {
	return filepath.Join(s.dir, key+".json")
}

// Load читает снимок из файла. Отсутствующий файл — не ошибка.
func (s *FileStorage) Load(key string) (*Snapshot, error) {
	data, err := os.ReadFile(s.path(key))
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, err
	}
	return &snap, nil
}

// Save записывает снимок целиком, замещая предыдущий.
func (s *FileStorage) Save(key string, snap *Snapshot) error {
	data, err := json.Marshal(snap)
	if err != nil {
		return err
	}
	return os.WriteFile(s.path(key), data, 0o644)
}

// Clear удаляет файл снимка.
func (s *FileStorage) Clear(key string) error {
	err := os.Remove(s.path(key))
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}

// MemoryStorage — снимки в памяти процесса. Используется в тестах и в
// сценариях, где продолжение сессии после перезапуска не требуется.
type MemoryStorage struct {
	snaps map[string]*Snapshot
}

var _ SnapshotStorage = (*MemoryStorage)(nil)

// NewMemoryStorage создаёт пустое хранилище в памяти.
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{snaps: make(map[string]*Snapshot)}
}

func (s *MemoryStorage) Load(key string) (*Snapshot, error) {
	snap, ok := s.snaps[key]
	if !ok {
		return nil, nil
	}
	cp := *snap
	return &cp, nil
}

func (s *MemoryStorage) Save(key string, snap *Snapshot) error {
	cp := *snap
	s.snaps[key] = &cp
	return nil
}

func (s *MemoryStorage) Clear(key string) error {
	delete(s.snaps, key)
	return nil
}
