// Package wizard реализует ядро мастера создания профиля атлета: хранилище
// состояния формы, контроллер последовательности шагов и отложенное
// автосохранение ввода. Компоненты шагов (поля, виджеты) остаются внешними
// и взаимодействуют с ядром только через перечисленные здесь операции.
package wizard

import (
	"sync"

	"athlete-app/internal/domain/profile"
	"athlete-app/internal/wizard/schema"
	"athlete-app/pkg/logger"
)

// Store — единственный источник правды о состоянии сессии мастера:
// черновик профиля, навигационный прогресс и состояние ошибок.
//
// Все мутации синхронны и сразу видимы читателям. Черновик и прогресс
// сохраняются в SnapshotStorage на контрольных точках (завершение шага,
// явный переход, сброс); состояние ошибок не сохраняется никогда.
type Store struct {
	mu sync.Mutex

	draft          profile.Draft
	currentStep    int
	completedSteps map[int]struct{}
	dirty          bool
	submitting     bool

	errs errorState

	storage SnapshotStorage
	log     logger.Logger
}

// NewStore создаёт хранилище состояния мастера и восстанавливает черновик и
// прогресс из storage, если там есть снимок. Состояние ошибок всегда пустое.
func NewStore(storage SnapshotStorage, log logger.Logger) *Store {
	if log == nil {
		log = logger.Default()
	}

	s := &Store{
		completedSteps: make(map[int]struct{}),
		storage:        storage,
		log:            log,
	}

	if storage != nil {
		snap, err := storage.Load(StorageKey)
		if err != nil {
			log.Error("wizard: failed to load persisted snapshot", map[string]any{"error": err.Error()})
		} else if snap != nil {
			s.draft = snap.FormData
			if snap.CurrentStep >= 0 && snap.CurrentStep < profile.StepCount {
				s.currentStep = snap.CurrentStep
			}
			for _, step := range snap.CompletedSteps {
				if step >= 0 && step < profile.StepCount {
					s.completedSteps[step] = struct{}{}
				}
			}
		}
	}

	return s
}

// persistLocked записывает полный снимок текущего состояния.
// Вызывается только под мьютексом.
func (s *Store) persistLocked() {
	if s.storage == nil {
		return
	}

	snap := &Snapshot{
		FormData:       s.draft.Clone(),
		CurrentStep:    s.currentStep,
		CompletedSteps: s.completedStepsLocked(),
	}
	if err := s.storage.Save(StorageKey, snap); err != nil {
		s.log.Error("wizard: failed to persist snapshot", map[string]any{"error": err.Error()})
	}
}

func (s *Store) completedStepsLocked() []int {
	steps := make([]int, 0, len(s.completedSteps))
	for step := range s.completedSteps {
		steps = append(steps, step)
	}
	return steps
}

// CurrentStep возвращает индекс текущего шага (0..4).
func (s *Store) CurrentStep() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.currentStep
}

// SetCurrentStep выполняет безусловный переход на шаг index. Используется при
// клике по завершённому шагу и при принудительном возврате на шаг обзора
// после серверной ошибки валидации. Индексы вне диапазона игнорируются.
func (s *Store) SetCurrentStep(index int) {
	if index < 0 || index >= profile.StepCount {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.currentStep = index
	s.log.Info("wizard: set current step", map[string]any{"step": index})
	s.persistLocked()
}

// MarkStepCompleted добавляет шаг в множество завершённых (идемпотентно).
func (s *Store) MarkStepCompleted(index int) {
	if index < 0 || index >= profile.StepCount {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.completedSteps[index] = struct{}{}
	s.persistLocked()
}

// CompletedSteps возвращает завершённые шаги (порядок не значим).
func (s *Store) CompletedSteps() []int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.completedStepsLocked()
}

// IsStepCompleted сообщает, завершён ли шаг.
func (s *Store) IsStepCompleted(index int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.completedSteps[index]
	return ok
}

// UpdateFormData неглубоко сливает patch в черновик и помечает его «грязным».
// Валидация здесь не выполняется: это ответственность шага до вызова.
func (s *Store) UpdateFormData(patch profile.Draft) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.draft.Merge(patch)
	s.dirty = true
}

// Draft возвращает глубокую копию текущего черновика (read-only снимок).
func (s *Store) Draft() profile.Draft {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.draft.Clone()
}

// NextStep помечает текущий шаг завершённым и продвигается ровно на один шаг
// вперёд. На последнем шаге не делает ничего: отправку профиля вызывающая
// сторона инициирует явно.
func (s *Store) NextStep() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.currentStep >= profile.StepCount-1 {
		return
	}

	s.completedSteps[s.currentStep] = struct{}{}
	s.currentStep++
	s.log.Info("wizard: advanced to next step", map[string]any{"step": s.currentStep})
	s.persistLocked()
}

// PreviousStep возвращается на шаг назад, не опускаясь ниже нулевого.
func (s *Store) PreviousStep() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.currentStep > 0 {
		s.currentStep--
	}
}

// ResetForm сбрасывает черновик, прогресс и состояние ошибок к начальным
// значениям и очищает сохранённый снимок. Вызывается после успешной отправки.
func (s *Store) ResetForm() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.draft = profile.Draft{}
	s.currentStep = 0
	s.completedSteps = make(map[int]struct{})
	s.dirty = false
	s.submitting = false
	s.errs.reset()

	s.log.Info("wizard: form reset", nil)

	if s.storage != nil {
		if err := s.storage.Clear(StorageKey); err != nil {
			s.log.Error("wizard: failed to clear persisted snapshot", map[string]any{"error": err.Error()})
		}
	}
}

// SetSubmitting переключает флаг «отправка выполняется». UI обязан блокировать
// элемент отправки, пока флаг установлен, чтобы исключить повторную
// конкурентную отправку из той же сессии.
func (s *Store) SetSubmitting(submitting bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.submitting = submitting
}

// IsSubmitting возвращает флаг «отправка выполняется».
func (s *Store) IsSubmitting() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.submitting
}

// IsDirty возвращает true, если черновик менялся после создания/сброса.
func (s *Store) IsDirty() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dirty
}

// Save — явная контрольная точка сохранения текущего состояния.
func (s *Store) Save() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.persistLocked()
}

// IsStepValid — чистый предикат «обязательное подмножество полей шага
// заполнено» над текущим черновиком. Делегирует той же схеме, на которой
// построена живая валидация шага, поэтому два предиката не могут разойтись.
func (s *Store) IsStepValid(index int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return schema.StepComplete(index, &s.draft)
}

// CanProceedToStep возвращает true, если шаг target уже завершён либо каждый
// шаг ниже target завершён или независимо валиден. Позволяет «прыгать» вперёд
// без посещения промежуточных шагов, когда состояние уже их удовлетворяет.
func (s *Store) CanProceedToStep(target int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.completedSteps[target]; ok {
		return true
	}

	for i := 0; i < target; i++ {
		if _, ok := s.completedSteps[i]; ok {
			continue
		}
		if !schema.StepComplete(i, &s.draft) {
			return false
		}
	}
	return true
}

// ==== Операции над состоянием ошибок ====

// AddError добавляет ошибку уровня отправки и делает её последней.
func (s *Store) AddError(code, message, field string, retryable bool) ProfileError {
	s.mu.Lock()
	defer s.mu.Unlock()

	e := newProfileError(code, message, field, retryable)
	s.errs.errors = append(s.errs.errors, e)
	s.errs.lastError = &e

	s.log.Error("wizard: submission error", map[string]any{
		"code":      e.Code,
		"message":   e.Message,
		"retryable": e.Retryable,
	})
	return e
}

// ClearErrors очищает все ошибки, включая ошибки валидации.
func (s *Store) ClearErrors() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.errs.errors = nil
	s.errs.lastError = nil
	s.errs.validationErrors = nil
}

// ClearError удаляет одну ошибку по идентификатору.
func (s *Store) ClearError(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	filtered := s.errs.errors[:0]
	for _, e := range s.errs.errors {
		if e.ID != id {
			filtered = append(filtered, e)
		}
	}
	s.errs.errors = filtered

	if s.errs.lastError != nil && s.errs.lastError.ID == id {
		s.errs.lastError = nil
	}
}

// Errors возвращает копию списка ошибок в порядке добавления.
func (s *Store) Errors() []ProfileError {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]ProfileError(nil), s.errs.errors...)
}

// LastError возвращает последнюю добавленную ошибку или nil.
func (s *Store) LastError() *ProfileError {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.errs.lastError == nil {
		return nil
	}
	e := *s.errs.lastError
	return &e
}

// SetValidationErrors замещает список ошибок валидации полей.
func (s *Store) SetValidationErrors(errs []schema.FieldError) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.errs.validationErrors = append([]schema.FieldError(nil), errs...)
}

// ClearValidationErrors очищает ошибки валидации полей.
func (s *Store) ClearValidationErrors() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.errs.validationErrors = nil
}

// ValidationErrors возвращает копию списка ошибок валидации полей.
func (s *Store) ValidationErrors() []schema.FieldError {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]schema.FieldError(nil), s.errs.validationErrors...)
}

// IncrementRetryCount увеличивает счётчик повторных попыток.
func (s *Store) IncrementRetryCount() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.errs.retryCount++
}

// ResetRetryCount обнуляет счётчик повторных попыток.
func (s *Store) ResetRetryCount() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.errs.retryCount = 0
}

// RetryCount возвращает текущее значение счётчика повторных попыток.
func (s *Store) RetryCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.errs.retryCount
}

// CanRetry возвращает true, если лимит попыток не исчерпан и последняя ошибка
// помечена как допускающая повтор.
func (s *Store) CanRetry() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.errs.retryCount < MaxRetries &&
		s.errs.lastError != nil && s.errs.lastError.Retryable
}
