package sans

import (
	"errors"
	"testing"
)

func TestConfigErrorUnwrap(t *testing.T) {
	inner := errors.New("bad value")
	err := NewConfigError("N out of range", inner)
	if !errors.Is(err, inner) {
		t.Error("ConfigError should unwrap to its inner error")
	}
	if err.Error() == "" {
		t.Error("ConfigError.Error() should not be empty")
	}

	bare := NewConfigError("K must be positive", nil)
	if bare.Unwrap() != nil {
		t.Error("Unwrap() should be nil when no inner error was given")
	}
}

func TestInputErrorUnwrap(t *testing.T) {
	inner := errors.New("eof")
	err := NewInputError("splits.tsv", inner)
	if !errors.Is(err, inner) {
		t.Error("InputError should unwrap to its inner error")
	}
	if err.Error() == "" {
		t.Error("InputError.Error() should not be empty")
	}
}

func TestInvariantErrorMessage(t *testing.T) {
	err := NewInvariantError("refineTree", "split not compatible")
	if err.Where != "refineTree" || err.Msg != "split not compatible" {
		t.Errorf("unexpected fields: %+v", err)
	}
	if err.Error() == "" {
		t.Error("InvariantError.Error() should not be empty")
	}
}

func TestSentinelErrorsAreDistinct(t *testing.T) {
	sentinels := []error{ErrIllegalBase, ErrKOverflow, ErrNOverflow, ErrNotImplemented}
	for i := range sentinels {
		for j := range sentinels {
			if i != j && errors.Is(sentinels[i], sentinels[j]) {
				t.Errorf("sentinel errors %d and %d should be distinct", i, j)
			}
		}
	}
}
