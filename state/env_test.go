package state

import (
	"context"
	"log"
	"testing"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"
)

func TestContextWithEnv(t *testing.T) {
	ctx := ContextWithEnv(context.Background())
	env := EnvFromContext(ctx)
	if env == nil {
		t.Fatal("EnvFromContext() returned nil")
	}
	if env.start.IsZero() {
		t.Error("Environment start time not set")
	}
	if env.RunID == uuid.Nil {
		t.Error("RunID not set")
	}
	if len(env.DefaultIllustrations) == 0 {
		t.Error("Default illustrations not set")
	}

	other := EnvFromContext(ContextWithEnv(context.Background()))
	if other.RunID == env.RunID {
		t.Error("every environment must get its own RunID")
	}
}

func TestEnvFromContext_Panics(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Error("Expected panic when env not in context")
		}
	}()
	EnvFromContext(context.Background())
}

func TestLocalEnv_Uptime(t *testing.T) {
	env := &LocalEnv{start: time.Now()}
	time.Sleep(10 * time.Millisecond)
	if uptime := env.Uptime(); uptime < 10*time.Millisecond {
		t.Errorf("Uptime() = %v, expected at least 10ms", uptime)
	}
}

func TestLocalEnv_RedirectStdLog(t *testing.T) {
	t.Run("with logger", func(t *testing.T) {
		env := &LocalEnv{
			Log: zaptest.NewLogger(t, zaptest.WrapOptions(zap.AddCaller(), zap.AddCallerSkip(1))),
		}
		for i := range 3 {
			env.RedirectStdLog()
			if env.restoreStdLog == nil {
				t.Errorf("Iteration %d: restoreStdLog not set", i)
			}
			log.Print("redirected")
			env.RestoreStdLog()
		}
	})

	t.Run("nil logger", func(t *testing.T) {
		env := &LocalEnv{}
		env.RedirectStdLog()
		if env.restoreStdLog != nil {
			t.Error("restoreStdLog must stay unset without logger")
		}
		env.RestoreStdLog()
	})
}
