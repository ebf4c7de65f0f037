package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestLawError_Error(t *testing.T) {
	err := NonAssociative(3, 2, 1)
	expected := "[CATEGORY:NON_ASSOCIATIVE] non-associative composition: (3, 2, 1)"
	if err.Error() != expected {
		t.Errorf("got %q, want %q", err.Error(), expected)
	}
}

func TestLawError_ErrorWithCause(t *testing.T) {
	cause := fmt.Errorf("yaml: line 3")
	err := Wrap(ErrCategoryConfig, CodeInvalidConfig, "bad config", cause)
	expected := "[CONFIG:INVALID_CONFIG] bad config: yaml: line 3"
	if err.Error() != expected {
		t.Errorf("got %q, want %q", err.Error(), expected)
	}
}

func TestLawError_Unwrap(t *testing.T) {
	cause := fmt.Errorf("root cause")
	err := NewInternalError("unexpected", cause)
	if !errors.Is(err, cause) {
		t.Error("Unwrap should allow errors.Is to find the cause")
	}
}

func TestLawError_Is(t *testing.T) {
	if !errors.Is(NonAssociative(1, 2, 3), ErrNonAssociative) {
		t.Error("errors with same category+code should match via Is")
	}
	if errors.Is(NonAssociative(1, 2, 3), ErrNotAnIdentity) {
		t.Error("errors with different codes should not match via Is")
	}
	if errors.Is(NotWellDefined(0, 1), ErrIncompatibleComposition) {
		t.Error("errors with different categories should not match via Is")
	}

	wrapped := fmt.Errorf("candidate 12: %w", IncompatibleComposition(4, 5))
	if !errors.Is(wrapped, ErrIncompatibleComposition) {
		t.Error("wrapped law errors should still match their sentinel")
	}
}

func TestWitnessOf(t *testing.T) {
	tests := []struct {
		err     error
		witness []int
	}{
		{IncompatibleComposition(4, 5), []int{4, 5}},
		{NonAssociative(1, 2, 3), []int{1, 2, 3}},
		{NotAnIdentity(7), []int{7}},
		{NotWellDefined(0, 2), []int{0, 2}},
		{NonFunctorial(1, 3, 2), []int{1, 3, 2}},
		{fmt.Errorf("plain error"), nil},
	}

	for _, tt := range tests {
		got := WitnessOf(tt.err)
		if fmt.Sprint(got) != fmt.Sprint(tt.witness) {
			t.Errorf("WitnessOf(%v) = %v, want %v", tt.err, got, tt.witness)
		}
	}
}

func TestGetCategory(t *testing.T) {
	err := NotWellDefined(1, 1)
	if GetCategory(err) != ErrCategoryPresheaf {
		t.Errorf("got %q, want %q", GetCategory(err), ErrCategoryPresheaf)
	}
	if GetCategory(fmt.Errorf("plain error")) != "" {
		t.Error("non-LawError should return empty category")
	}
}

func TestGetCode(t *testing.T) {
	err := NotAnIdentity(2)
	if GetCode(err) != CodeNotAnIdentity {
		t.Errorf("got %q, want %q", GetCode(err), CodeNotAnIdentity)
	}
	if GetCode(fmt.Errorf("plain error")) != "" {
		t.Error("non-LawError should return empty code")
	}
}

func TestConvenienceConstructors(t *testing.T) {
	c := NewConfigError("job.size must be positive")
	if c.Category != ErrCategoryConfig || c.Code != CodeInvalidConfig {
		t.Error("NewConfigError mismatch")
	}
	if !errors.Is(c, ErrInvalidConfig) {
		t.Error("NewConfigError should match ErrInvalidConfig")
	}

	f := NonFunctorial(0, 1, 2)
	if f.Category != ErrCategoryPresheaf || f.Code != CodeNonFunctorial {
		t.Error("NonFunctorial mismatch")
	}
}

func TestViolation_Err(t *testing.T) {
	if (Violation{}).Err() != nil {
		t.Error("zero violation should convert to nil")
	}
	if !(Violation{}).OK() {
		t.Error("zero violation should be OK")
	}

	v := Violation{Code: CodeNonAssociative, Witness: [3]int{3, 2, 1}}
	err := v.Err()
	if !errors.Is(err, ErrNonAssociative) {
		t.Errorf("got %v, want NON_ASSOCIATIVE", err)
	}
	if fmt.Sprint(WitnessOf(err)) != "[3 2 1]" {
		t.Errorf("witness = %v", WitnessOf(err))
	}

	v = Violation{Code: CodeNotWellDefined, Witness: [3]int{1, 4}}
	if fmt.Sprint(WitnessOf(v.Err())) != "[1 4]" {
		t.Errorf("witness = %v", WitnessOf(v.Err()))
	}

	bogus := Violation{Code: "BOGUS"}.Err()
	if GetCode(bogus) != CodeUnexpected || GetCategory(bogus) != ErrCategoryInternal {
		t.Errorf("unknown codes should surface as internal UNEXPECTED errors, got %v", bogus)
	}
	if errors.Unwrap(bogus) != nil {
		t.Error("unknown violation has no cause")
	}
}
