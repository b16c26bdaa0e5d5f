// internal/core/domain/errors_test.go
package domain

import (
	"errors"
	"fmt"
	"testing"

	"blackbird/internal/testutil"
)

func TestIsFatal(t *testing.T) {
	tests := []struct {
		name  string
		err   error
		fatal bool
	}{
		{"nil", nil, false},
		{"configuration", NewConfigurationError("username", ErrNoIdentifiers), true},
		{"verification", &VerificationError{Identifier: NewUsername("x"), Err: errors.New("bad filter")}, true},
		{"wrapped verification", fmt.Errorf("run: %w", &VerificationError{Err: errors.New("x")}), true},
		{"enricher init", fmt.Errorf("load: %w", ErrEnricherInit), true},
		{"catalog update", &CatalogUpdateError{Source: "wmn", Err: errors.New("timeout")}, false},
		{"export", &ExportError{Format: SinkCSV, Err: errors.New("denied")}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			testutil.AssertEqual(t, IsFatal(tt.err), tt.fatal, "fatal")
		})
	}
}

func TestConfigurationError_Unwrap(t *testing.T) {
	err := NewConfigurationError("username-file", ErrUnreadableFile)
	testutil.AssertErrorIs(t, err, ErrUnreadableFile, "unwrap")
	testutil.AssertContains(t, err.Error(), "username-file", "field in message")
}
