package errs

import (
	"fmt"
	"testing"
)

func TestTaxonomyHelpers(t *testing.T) {
	tests := []struct {
		name  string
		err   error
		check func(error) bool
	}{
		{"validation", Validation("bad field"), IsValidation},
		{"conflict", Conflict("duplicate"), IsConflict},
		{"not found", NotFound("missing"), IsNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !tt.check(tt.err) {
				t.Error("helper did not match its own error")
			}
			// Helpers must see through wrapping.
			if !tt.check(fmt.Errorf("context: %w", tt.err)) {
				t.Error("helper did not match wrapped error")
			}
		})
	}

	if IsValidation(NotFound("missing")) {
		t.Error("IsValidation matched a NotFoundError")
	}
}

func TestMessagesPassThrough(t *testing.T) {
	if got := Validation("Product field 'name' is required.").Error(); got != "Product field 'name' is required." {
		t.Errorf("unexpected message %q", got)
	}
}
