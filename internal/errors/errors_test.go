package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestCtlError_Error(t *testing.T) {
	tests := []struct {
		name    string
		err     *CtlError
		wantMsg string
	}{
		{
			name:    "without cause",
			err:     New(ExitGeneralError, "something went wrong"),
			wantMsg: "something went wrong",
		},
		{
			name:    "with cause",
			err:     Wrap(ExitGeneralError, "operation failed", fmt.Errorf("underlying error")),
			wantMsg: "operation failed: underlying error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.wantMsg {
				t.Errorf("Error() = %q, want %q", got, tt.wantMsg)
			}
		})
	}
}

func TestCtlError_Unwrap(t *testing.T) {
	cause := fmt.Errorf("root cause")
	err := Wrap(ExitGeneralError, "wrapped", cause)

	if unwrapped := err.Unwrap(); unwrapped != cause {
		t.Errorf("Unwrap() = %v, want %v", unwrapped, cause)
	}

	// Without cause
	errNoCause := New(ExitGeneralError, "no cause")
	if unwrapped := errNoCause.Unwrap(); unwrapped != nil {
		t.Errorf("Unwrap() = %v, want nil", unwrapped)
	}
}

func TestGetExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil-ish plain error", fmt.Errorf("plain"), ExitGeneralError},
		{"no address", NoAddress("web", nil), ExitNoAddress},
		{"run failed", RunFailed("web", fmt.Errorf("exit status 1")), ExitRunFailed},
		{"route failed", RouteFailed("10.0.1.0/24", fmt.Errorf("boom")), ExitRouteFailed},
		{"subnet exhausted", SubnetExhausted(nil), ExitSubnetExhausted},
		{"config", ConfigError("bad config", nil), ExitConfigError},
		{"not found", ContainerNotFound("web"), ExitContainerNotFound},
		{"wrapped deeper", fmt.Errorf("outer: %w", RunFailed("web", nil)), ExitRunFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GetExitCode(tt.err); got != tt.want {
				t.Errorf("GetExitCode() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestConstructorsPreserveCause(t *testing.T) {
	cause := errors.New("exit status 1")
	err := RunFailed("web", cause)

	if !errors.Is(err, cause) {
		t.Error("RunFailed should wrap its cause")
	}
}
