package wizard_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"athlete-app/internal/domain/profile"
	"athlete-app/internal/wizard"
	"athlete-app/pkg/logger"
)

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("condition not met before deadline")
}

func TestAutoSaver_WritesAfterDelay(t *testing.T) {
	store := wizard.NewStore(wizard.NewMemoryStorage(), logger.Nop())
	saver := wizard.NewAutoSaver(store, 20*time.Millisecond)
	defer saver.Stop()

	saver.Queue(profile.Draft{Bio: strPtr("first")})

	waitFor(t, func() bool { return store.Draft().Bio != nil })
	require.Equal(t, "first", *store.Draft().Bio)
}

func TestAutoSaver_LastWriteWins(t *testing.T) {
	store := wizard.NewStore(wizard.NewMemoryStorage(), logger.Nop())
	saver := wizard.NewAutoSaver(store, 30*time.Millisecond)
	defer saver.Stop()

	// Каждый новый ввод вытесняет предыдущий до истечения задержки.
	saver.Queue(profile.Draft{Bio: strPtr("first")})
	saver.Queue(profile.Draft{Bio: strPtr("second")})
	saver.Queue(profile.Draft{Bio: strPtr("third")})

	waitFor(t, func() bool { return store.Draft().Bio != nil })
	require.Equal(t, "third", *store.Draft().Bio)
}

func TestAutoSaver_FlushWritesImmediately(t *testing.T) {
	store := wizard.NewStore(wizard.NewMemoryStorage(), logger.Nop())
	saver := wizard.NewAutoSaver(store, time.Hour)
	defer saver.Stop()

	saver.Queue(profile.Draft{Bio: strPtr("pending")})
	saver.Flush()

	require.NotNil(t, store.Draft().Bio)
	require.Equal(t, "pending", *store.Draft().Bio)

	// Повторный Flush без нового ввода ничего не меняет.
	saver.Flush()
	require.Equal(t, "pending", *store.Draft().Bio)
}

func TestAutoSaver_StopCancelsPendingWrite(t *testing.T) {
	store := wizard.NewStore(wizard.NewMemoryStorage(), logger.Nop())
	saver := wizard.NewAutoSaver(store, 20*time.Millisecond)

	saver.Queue(profile.Draft{Bio: strPtr("cancelled")})
	saver.Stop()

	time.Sleep(60 * time.Millisecond)
	require.Nil(t, store.Draft().Bio)
}
