package sentinel

import (
	"errors"
	"fmt"
	"testing"
)

func TestError_Error(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		err  Error
		want string
	}{
		"tool message":  {err: Error("lsof not found"), want: "lsof not found"},
		"empty message": {err: Error(""), want: ""},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			if got := tc.err.Error(); got != tc.want {
				t.Errorf("Error() = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestError_ErrorsIs(t *testing.T) {
	t.Parallel()

	const errMalformed = Error("malformed output")

	tests := map[string]struct {
		err    error
		target error
		want   bool
	}{
		"direct match":       {err: errMalformed, target: errMalformed, want: true},
		"wrapped match":      {err: fmt.Errorf("decode: %w", errMalformed), target: errMalformed, want: true},
		"different constant": {err: errMalformed, target: Error("timeout"), want: false},
		"same text from errors.New": {
			err:    errMalformed,
			target: errors.New("malformed output"),
			want:   false,
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			if got := errors.Is(tc.err, tc.target); got != tc.want {
				t.Errorf("errors.Is() = %v, want %v", got, tc.want)
			}
		})
	}
}
