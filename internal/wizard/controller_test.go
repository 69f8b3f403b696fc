package wizard_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"athlete-app/internal/domain/profile"
	"athlete-app/internal/wizard"
	"athlete-app/pkg/logger"
)

// ==== Fake submitter ====

type fakeSubmitter struct {
	outcome wizard.Outcome
	err     error
	runs    int

	// beforeReturn выполняется внутри Run и позволяет тесту имитировать
	// побочные эффекты пайплайна (запись ошибок в хранилище).
	beforeReturn func()
}

func (f *fakeSubmitter) Run(context.Context) (wizard.Outcome, error) {
	f.runs++
	if f.beforeReturn != nil {
		f.beforeReturn()
	}
	return f.outcome, f.err
}

func newController(t *testing.T, sub *fakeSubmitter) (*wizard.Controller, *wizard.Store) {
	t.Helper()
	store := wizard.NewStore(wizard.NewMemoryStorage(), logger.Nop())
	return wizard.NewController(store, sub, logger.Nop()), store
}

// ==== Navigation ====

func TestControllerNext_BlockedByValidation(t *testing.T) {
	c, store := newController(t, &fakeSubmitter{})

	require.NoError(t, c.Next(context.Background()))

	// Пустой первый шаг не пройден: остаёмся на месте, ошибки записаны.
	require.Equal(t, 0, store.CurrentStep())
	require.NotEmpty(t, store.ValidationErrors())
}

func TestControllerNext_AdvancesWhenStepValid(t *testing.T) {
	c, store := newController(t, &fakeSubmitter{})
	store.UpdateFormData(completeDraft())

	require.NoError(t, c.Next(context.Background()))

	require.Equal(t, 1, store.CurrentStep())
	require.True(t, store.IsStepCompleted(0))
	require.Empty(t, store.ValidationErrors())
}

func TestControllerBack_NoopOnFirstStep(t *testing.T) {
	c, store := newController(t, &fakeSubmitter{})
	c.Back()
	require.Equal(t, 0, store.CurrentStep())
}

func TestControllerStepClick_OnlyReachableSteps(t *testing.T) {
	c, store := newController(t, &fakeSubmitter{})

	c.StepClick(3)
	require.Equal(t, 0, store.CurrentStep())

	store.UpdateFormData(completeDraft())
	c.StepClick(3)
	require.Equal(t, 3, store.CurrentStep())
}

// ==== Submission ====

func TestControllerNext_OnReviewStepSubmits(t *testing.T) {
	sub := &fakeSubmitter{outcome: wizard.OutcomeSuccess}
	c, store := newController(t, sub)
	store.UpdateFormData(completeDraft())
	store.SetCurrentStep(profile.StepCount - 1)

	require.NoError(t, c.Next(context.Background()))

	require.Equal(t, 1, sub.runs)
	require.Equal(t, wizard.PhaseSuccess, c.Phase())
}

func TestControllerSubmit_ValidationFailureReturnsToEditing(t *testing.T) {
	sub := &fakeSubmitter{outcome: wizard.OutcomeValidationFailed, err: errors.New("rejected")}
	c, _ := newController(t, sub)

	require.Error(t, c.Submit(context.Background()))
	require.Equal(t, wizard.PhaseEditing, c.Phase())
}

func TestControllerSubmit_AuthFailureIsFatal(t *testing.T) {
	sub := &fakeSubmitter{outcome: wizard.OutcomeAuthFailed, err: errors.New("unauthorized")}
	c, _ := newController(t, sub)

	require.Error(t, c.Submit(context.Background()))
	require.Equal(t, wizard.PhaseFatal, c.Phase())
}

func TestControllerSubmit_RetryableEntersRetryPrompt(t *testing.T) {
	sub := &fakeSubmitter{outcome: wizard.OutcomeRetryable, err: errors.New("boom")}
	var store *wizard.Store
	sub.beforeReturn = func() {
		store.AddError(wizard.CodeServer, "boom", "", true)
	}
	c, s := newController(t, sub)
	store = s

	require.Error(t, c.Submit(context.Background()))
	require.Equal(t, wizard.PhaseRetryPrompt, c.Phase())
}

func TestControllerRetry_IncrementsCounterAndResubmits(t *testing.T) {
	sub := &fakeSubmitter{outcome: wizard.OutcomeRetryable, err: errors.New("boom")}
	var store *wizard.Store
	sub.beforeReturn = func() {
		store.AddError(wizard.CodeServer, "boom", "", true)
	}
	c, s := newController(t, sub)
	store = s

	require.Error(t, c.Submit(context.Background()))

	// Каждый повтор прогоняет пайплайн заново.
	require.Error(t, c.Retry(context.Background()))
	require.Equal(t, 2, sub.runs)
	require.Equal(t, 1, store.RetryCount())
}

func TestControllerRetry_ExhaustedLimitStops(t *testing.T) {
	sub := &fakeSubmitter{outcome: wizard.OutcomeRetryable, err: errors.New("boom")}
	var store *wizard.Store
	sub.beforeReturn = func() {
		retryable := store.RetryCount() < wizard.MaxRetries
		store.AddError(wizard.CodeServer, "boom", "", retryable)
	}
	c, s := newController(t, sub)
	store = s

	require.Error(t, c.Submit(context.Background()))
	for c.Phase() == wizard.PhaseRetryPrompt {
		_ = c.Retry(context.Background())
	}

	// Первый прогон плюс не более MaxRetries повторов.
	require.LessOrEqual(t, sub.runs, wizard.MaxRetries+1)
	require.Equal(t, wizard.PhaseEditing, c.Phase())
}

func TestControllerCancelRetry_StaysOnReviewStep(t *testing.T) {
	sub := &fakeSubmitter{outcome: wizard.OutcomeRetryable, err: errors.New("boom")}
	var store *wizard.Store
	sub.beforeReturn = func() {
		store.AddError(wizard.CodeServer, "boom", "", true)
	}
	c, s := newController(t, sub)
	store = s

	require.Error(t, c.Submit(context.Background()))
	require.Equal(t, wizard.PhaseRetryPrompt, c.Phase())

	c.CancelRetry()

	require.Equal(t, wizard.PhaseEditing, c.Phase())
	require.Equal(t, profile.StepCount-1, store.CurrentStep())
}

func TestControllerReset_ReturnsToInitialState(t *testing.T) {
	sub := &fakeSubmitter{outcome: wizard.OutcomeSuccess}
	c, store := newController(t, sub)
	store.UpdateFormData(completeDraft())

	require.NoError(t, c.Submit(context.Background()))
	c.Reset()

	require.Equal(t, wizard.PhaseEditing, c.Phase())
	require.Equal(t, 0, store.CurrentStep())
	require.Nil(t, store.Draft().FullName)
}
