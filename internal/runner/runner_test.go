package runner

import (
	"context"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/sirupsen/logrus"

	"macgate/internal/domain"
)

type recordingExecutor struct {
	supports domain.ActionType

	mu       sync.Mutex
	executed []string
	timeouts []time.Duration
}

func (e *recordingExecutor) Supports(a *domain.Action) bool {
	return a != nil && a.Type == e.supports
}

func (e *recordingExecutor) Run(ctx context.Context, a *domain.Action, params map[string]any, timeout time.Duration) (domain.ExecutionResult, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.executed = append(e.executed, a.Name)
	e.timeouts = append(e.timeouts, timeout)
	return domain.ExecutionResult{ActionName: a.Name, Status: domain.StatusOk}, nil
}

func discardEntry() *logrus.Entry {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return logrus.NewEntry(l)
}

func TestRunSelectsMatchingAdapter(t *testing.T) {
	shellExec := &recordingExecutor{supports: domain.Shell}
	jxaExec := &recordingExecutor{supports: domain.JXA}

	r := &Runner{
		Executors: []domain.ActionExecutor{jxaExec, shellExec},
		Log:       discardEntry(),
	}

	act := &domain.Action{Name: "list_unread", Type: domain.Shell, Path: "/bin/true", Timeout: 5 * time.Second}
	res, err := r.Run(context.Background(), act, nil)
	if err != nil {
		t.Fatal(err)
	}

	if res.Status != domain.StatusOk {
		t.Errorf("Status = %s", res.Status)
	}
	if len(shellExec.executed) != 1 || shellExec.executed[0] != "list_unread" {
		t.Errorf("shell executor saw %v", shellExec.executed)
	}
	if len(jxaExec.executed) != 0 {
		t.Errorf("jxa executor must not run shell actions: %v", jxaExec.executed)
	}
	if shellExec.timeouts[0] != 5*time.Second {
		t.Errorf("timeout = %s, want configured 5s", shellExec.timeouts[0])
	}
}

func TestRunNoAdapter(t *testing.T) {
	r := &Runner{
		Executors: []domain.ActionExecutor{&recordingExecutor{supports: domain.Shell}},
		Log:       discardEntry(),
	}

	act := &domain.Action{Name: "sc", Type: domain.Shortcut, ShortcutName: "Daily"}
	_, err := r.Run(context.Background(), act, nil)
	if err == nil {
		t.Fatal("expected error when no adapter supports the action type")
	}
}

func TestRunAppliesDefaultTimeout(t *testing.T) {
	exec := &recordingExecutor{supports: domain.Shell}
	r := &Runner{Executors: []domain.ActionExecutor{exec}, Log: discardEntry()}

	act := &domain.Action{Name: "list_unread", Type: domain.Shell, Path: "/bin/true"}
	if _, err := r.Run(context.Background(), act, nil); err != nil {
		t.Fatal(err)
	}

	if exec.timeouts[0] != domain.DefaultTimeout {
		t.Errorf("timeout = %s, want default %s", exec.timeouts[0], domain.DefaultTimeout)
	}
}
