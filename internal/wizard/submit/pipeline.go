package submit

import (
	"context"
	"errors"
	"fmt"

	"athlete-app/internal/domain/profile"
	"athlete-app/internal/wizard"
	"athlete-app/internal/wizard/api"
	"athlete-app/pkg/logger"
)

// Client — операции внешнего API профиля, используемые пайплайном.
type Client interface {
	GetProfile(ctx context.Context) (*api.Profile, error)
	UpsertProfile(ctx context.Context, payload api.UpsertPayload) (*api.Profile, error)
}

// Pipeline выполняет один полный цикл отправки: преобразование снимка
// черновика, upsert, контрольное чтение для подтверждения долговечности
// записи и разнесение сбоев по таксономии ошибок хранилища.
//
// Пайплайн не хранит состояния между прогонами: всё, что должно пережить
// прогон, проходит через Store.
type Pipeline struct {
	client     Client
	store      *wizard.Store
	log        logger.Logger
	onComplete func(*api.Profile)
}

var _ wizard.Submitter = (*Pipeline)(nil)

// NewPipeline создаёт пайплайн отправки. onComplete вызывается с
// подтверждённой сущностью после успешной отправки и может быть nil.
func NewPipeline(client Client, store *wizard.Store, log logger.Logger, onComplete func(*api.Profile)) *Pipeline {
	if log == nil {
		log = logger.Default()
	}
	return &Pipeline{
		client:     client,
		store:      store,
		log:        log,
		onComplete: onComplete,
	}
}

// Run выполняет один прогон пайплайна. Контроллер обязан вызывать Run только
// когда шаги 0..3 валидны; сам пайплайн повторно этого не проверяет.
func (p *Pipeline) Run(ctx context.Context) (wizard.Outcome, error) {
	p.store.SetSubmitting(true)
	defer p.store.SetSubmitting(false)

	// Состояние ошибок очищается в начале каждой попытки.
	p.store.ClearErrors()

	snapshot := p.store.Draft()
	payload := BuildPayload(snapshot)

	p.log.Info("submit: upserting profile", map[string]any{
		"primarySport": payload.PrimarySport,
		"retryCount":   p.store.RetryCount(),
	})

	if _, err := p.client.UpsertProfile(ctx, payload); err != nil {
		return p.classify(err), err
	}

	// Запись номинально успешна — подтверждаем её контрольным чтением.
	verified, err := p.client.GetProfile(ctx)
	if err != nil || verified == nil {
		verr := p.verificationError(err)
		return p.classify(verr), verr
	}

	verified.Gender = DisplayGender(verified.Gender)

	p.store.ResetRetryCount()
	if p.onComplete != nil {
		p.onComplete(verified)
	}
	p.store.ResetForm()

	p.log.Info("submit: profile confirmed", map[string]any{"profileId": verified.ID})
	return wizard.OutcomeSuccess, nil
}

// verificationError нормализует неудачу контрольного чтения: пустой результат
// после номинально успешной записи считается сбоем подтверждения, который
// обрабатывается как обычный повторяемый сбой отправки.
func (p *Pipeline) verificationError(err error) error {
	var apiErr *api.APIError
	if errors.As(err, &apiErr) && !apiErr.IsNotFound() {
		// Чтение сорвалось само по себе (сеть, 5xx) — классифицируем как есть.
		return err
	}
	return &api.APIError{
		StatusCode: 500,
		Code:       wizard.CodeVerificationFailed,
		Message:    "profile write was not confirmed by read-back",
	}
}

// classify разносит сбой по таксономии ошибок и выполняет связанные с ним
// переходы: серверная валидация принудительно возвращает пользователя на шаг
// обзора, повторяемые сбои сопровождаются счётчиком оставшихся попыток.
func (p *Pipeline) classify(err error) wizard.Outcome {
	var apiErr *api.APIError
	if !errors.As(err, &apiErr) {
		apiErr = &api.APIError{StatusCode: 500, Code: api.CodeUnknownError, Message: err.Error()}
	}

	switch {
	case apiErr.IsValidationError():
		p.store.SetValidationErrors(apiErr.Details)
		p.store.SetCurrentStep(profile.StepCount - 1)
		p.store.AddError(wizard.CodeValidation,
			"The server rejected some of your profile data. Please review the highlighted fields.",
			"", false)
		return wizard.OutcomeValidationFailed

	case apiErr.IsAuthError():
		p.store.AddError(apiErr.Code,
			"Your session has expired. Please sign in again to continue.",
			"", false)
		return wizard.OutcomeAuthFailed

	default:
		// Серверные/сетевые сбои и всё неопознанное: повтор допускается,
		// пока не исчерпан лимит попыток.
		remaining := wizard.MaxRetries - p.store.RetryCount()
		if remaining < 0 {
			remaining = 0
		}
		retryable := remaining > 0

		code := apiErr.Code
		if code == "" {
			code = wizard.CodeUnknown
		}
		p.store.AddError(code,
			fmt.Sprintf("%s (%d attempts remaining)", apiErr.Message, remaining),
			"", retryable)
		return wizard.OutcomeRetryable
	}
}
