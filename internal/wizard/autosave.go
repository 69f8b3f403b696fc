package wizard

import (
	"sync"
	"time"

	"athlete-app/internal/domain/profile"
)

// DefaultAutoSaveDelay — задержка отложенной записи ввода в хранилище.
const DefaultAutoSaveDelay = 300 * time.Millisecond

// AutoSaver откладывает запись ввода шага в Store: каждый новый ввод отменяет
// ранее запланированную запись и планирует новую (last-write-wins, без
// очереди). Запись выполняет только та задача, которую не успел вытеснить
// более свежий ввод.
type AutoSaver struct {
	mu      sync.Mutex
	store   *Store
	delay   time.Duration
	timer   *time.Timer
	pending profile.Draft
	has     bool
}

// NewAutoSaver создаёт планировщик автосохранения для store.
// При delay <= 0 используется DefaultAutoSaveDelay.
func NewAutoSaver(store *Store, delay time.Duration) *AutoSaver {
	if delay <= 0 {
		delay = DefaultAutoSaveDelay
	}
	return &AutoSaver{store: store, delay: delay}
}

// Queue запоминает последний снимок ввода и перезапускает таймер записи.
func (a *AutoSaver) Queue(patch profile.Draft) {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.pending = patch
	a.has = true

	if a.timer != nil {
		a.timer.Stop()
	}
	a.timer = time.AfterFunc(a.delay, a.fire)
}

// fire выполняет отложенную запись, если она не была вытеснена или отменена.
func (a *AutoSaver) fire() {
	a.mu.Lock()
	if !a.has {
		a.mu.Unlock()
		return
	}
	patch := a.pending
	a.has = false
	a.timer = nil
	a.mu.Unlock()

	a.store.UpdateFormData(patch)
}

// Flush немедленно записывает отложенный ввод, если он есть, и отменяет таймер.
// Используется при уходе с шага, чтобы не потерять последний ввод.
func (a *AutoSaver) Flush() {
	a.mu.Lock()
	if a.timer != nil {
		a.timer.Stop()
		a.timer = nil
	}
	if !a.has {
		a.mu.Unlock()
		return
	}
	patch := a.pending
	a.has = false
	a.mu.Unlock()

	a.store.UpdateFormData(patch)
}

// Stop отменяет отложенную запись без выполнения.
func (a *AutoSaver) Stop() {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.timer != nil {
		a.timer.Stop()
		a.timer = nil
	}
	a.has = false
}
