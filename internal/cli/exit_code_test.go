package cli

import (
	"errors"
	"fmt"
	"testing"

	"github.com/benedict2310/anchorctl/pkg/anchor"
)

func TestExitCode(t *testing.T) {
	if got := ExitCode(nil); got != 0 {
		t.Fatalf("ExitCode(nil) = %d, want 0", got)
	}
	if got := ExitCode(errors.New("boom")); got != 1 {
		t.Fatalf("ExitCode(plain error) = %d, want 1", got)
	}
	if got := ExitCode(usageError(errors.New("boom"))); got != 2 {
		t.Fatalf("ExitCode(usageError) = %d, want 2", got)
	}
}

func TestExitCodeTargetError(t *testing.T) {
	err := fmt.Errorf("anchor page.html: %w", &anchor.TargetError{Msg: `compile selector "h2["`})
	if got := ExitCode(err); got != 2 {
		t.Fatalf("ExitCode(wrapped target error) = %d, want 2", got)
	}
}

func TestUsageErrorNil(t *testing.T) {
	if err := usageError(nil); err != nil {
		t.Fatalf("usageError(nil) = %v, want nil", err)
	}
}
