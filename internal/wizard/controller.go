package wizard

import (
	"context"
	"sync"

	"athlete-app/internal/domain/profile"
	"athlete-app/internal/wizard/schema"
	"athlete-app/pkg/logger"
)

// Phase описывает фазу сессии мастера поверх текущего шага.
type Phase string

const (
	// PhaseEditing — пользователь находится на одном из шагов (0..4).
	PhaseEditing Phase = "editing"
	// PhaseSubmitting — отправка профиля выполняется; элементы управления
	// должны быть заблокированы.
	PhaseSubmitting Phase = "submitting"
	// PhaseSuccess — профиль отправлен и подтверждён; состояние сброшено.
	PhaseSuccess Phase = "success"
	// PhaseRetryPrompt — отправка завершилась повторяемой ошибкой; ожидается
	// решение пользователя (повторить или отменить).
	PhaseRetryPrompt Phase = "retry_prompt"
	// PhaseFatal — ошибка аутентификации; сессия мастера завершена, требуется
	// повторный вход вне мастера.
	PhaseFatal Phase = "fatal"
)

// Outcome классифицирует результат прогона пайплайна отправки.
type Outcome int

const (
	// OutcomeSuccess — запись выполнена и подтверждена повторным чтением.
	OutcomeSuccess Outcome = iota
	// OutcomeValidationFailed — сервер отклонил данные; пользователь
	// принудительно возвращён на шаг обзора, повтор не предлагается.
	OutcomeValidationFailed
	// OutcomeAuthFailed — ошибка аутентификации; не повторяется.
	OutcomeAuthFailed
	// OutcomeRetryable — временная серверная/сетевая ошибка либо
	// неподтверждённая запись; допускается повтор по решению пользователя.
	OutcomeRetryable
)

// Submitter выполняет один полный прогон пайплайна отправки профиля.
type Submitter interface {
	Run(ctx context.Context) (Outcome, error)
}

// Controller управляет последовательностью шагов мастера: сопоставляет
// состояние хранилища отображаемому шагу, пропускает вперёд только валидные
// шаги и запускает пайплайн отправки на последнем шаге.
type Controller struct {
	mu        sync.Mutex
	phase     Phase
	store     *Store
	submitter Submitter
	log       logger.Logger
}

// NewController создаёт контроллер мастера. Начальная фаза — редактирование;
// начальный шаг определяется хранилищем (0 или восстановленный из снимка).
func NewController(store *Store, submitter Submitter, log logger.Logger) *Controller {
	if log == nil {
		log = logger.Default()
	}
	return &Controller{
		phase:     PhaseEditing,
		store:     store,
		submitter: submitter,
		log:       log,
	}
}

// Phase возвращает текущую фазу сессии.
func (c *Controller) Phase() Phase {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.phase
}

// CurrentStep возвращает индекс отображаемого шага.
func (c *Controller) CurrentStep() int {
	return c.store.CurrentStep()
}

// Store возвращает хранилище состояния сессии.
func (c *Controller) Store() *Store {
	return c.store
}

// Next обрабатывает отправку текущего шага. На шагах ввода данных (0..3)
// переход вперёд выполняется только после успешной валидации шага; ошибки
// валидации записываются в хранилище и блокируют переход. На шаге обзора (4)
// запускается отправка профиля.
func (c *Controller) Next(ctx context.Context) error {
	if c.Phase() != PhaseEditing {
		return nil
	}

	step := c.store.CurrentStep()
	if step >= profile.StepCount-1 {
		return c.Submit(ctx)
	}

	draft := c.store.Draft()
	if errs := schema.ValidateStep(step, &draft); len(errs) > 0 {
		c.store.SetValidationErrors(errs)
		c.log.Info("wizard: step blocked by validation", map[string]any{
			"step":   step,
			"errors": len(errs),
		})
		return nil
	}

	c.store.ClearValidationErrors()
	c.store.NextStep()
	return nil
}

// Back возвращается на предыдущий шаг; на нулевом шаге не делает ничего.
func (c *Controller) Back() {
	if c.Phase() != PhaseEditing {
		return
	}
	c.store.PreviousStep()
}

// StepClick обрабатывает клик по индикатору шага: переход выполняется только
// если все шаги ниже целевого завершены или независимо валидны.
func (c *Controller) StepClick(target int) {
	if c.Phase() != PhaseEditing {
		return
	}
	if c.store.CanProceedToStep(target) {
		c.store.SetCurrentStep(target)
	}
}

// Submit запускает полный прогон пайплайна отправки. Повторный вызов во время
// выполняющейся отправки игнорируется: отмена отправки «в полёте» не
// поддерживается, пользователь ждёт успеха или ошибки.
func (c *Controller) Submit(ctx context.Context) error {
	c.mu.Lock()
	if c.phase == PhaseSubmitting {
		c.mu.Unlock()
		return nil
	}
	c.phase = PhaseSubmitting
	c.mu.Unlock()

	outcome, err := c.submitter.Run(ctx)

	c.mu.Lock()
	switch outcome {
	case OutcomeSuccess:
		c.phase = PhaseSuccess
	case OutcomeValidationFailed:
		// Пайплайн уже вернул пользователя на шаг обзора.
		c.phase = PhaseEditing
	case OutcomeAuthFailed:
		c.phase = PhaseFatal
	case OutcomeRetryable:
		if c.store.CanRetry() {
			c.phase = PhaseRetryPrompt
		} else {
			c.phase = PhaseEditing
		}
	}
	c.mu.Unlock()

	return err
}

// Retry повторяет отправку по решению пользователя. Каждый повтор увеличивает
// счётчик попыток и прогоняет пайплайн заново целиком.
func (c *Controller) Retry(ctx context.Context) error {
	c.mu.Lock()
	if c.phase != PhaseRetryPrompt || !c.store.CanRetry() {
		c.mu.Unlock()
		return nil
	}
	c.phase = PhaseEditing
	c.mu.Unlock()

	c.store.IncrementRetryCount()
	return c.Submit(ctx)
}

// CancelRetry закрывает диалог повтора и оставляет пользователя на шаге обзора.
func (c *Controller) CancelRetry() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.phase == PhaseRetryPrompt {
		c.phase = PhaseEditing
		c.store.SetCurrentStep(profile.StepCount - 1)
	}
}

// Reset возвращает сессию в начальное состояние (используется после успеха,
// когда пользователь начинает новую сессию).
func (c *Controller) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.store.ResetForm()
	c.phase = PhaseEditing
}
