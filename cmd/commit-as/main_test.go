package main

import (
	"errors"
	"fmt"
	"testing"

	"commitas/internal/gitexec"
	"commitas/internal/identity"
)

func TestExitCodeFor(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{
			name: "GitExitCodeMirrored",
			err:  &gitexec.ExitError{Code: 128},
			want: 128,
		},
		{
			name: "WrappedGitExitCode",
			err:  fmt.Errorf("commit failed: %w", &gitexec.ExitError{Code: 1}),
			want: 1,
		},
		{
			name: "RawLiteralValidation",
			err:  &identity.ParseError{FieldCount: 4, Tokens: []string{"a", "b", "c", "d"}},
			want: 2,
		},
		{
			name: "UnknownKey",
			err:  &identity.NotFoundError{Key: "nobody"},
			want: 3,
		},
		{
			name: "StoreFailure",
			err:  errors.New("failed to open database"),
			want: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := exitCodeFor(tt.err); got != tt.want {
				t.Errorf("exitCodeFor(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}
