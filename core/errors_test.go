package core

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	goerrors "github.com/goliatone/go-errors"
)

func TestErrorConstructors_CarryTaxonomyCodes(t *testing.T) {
	cases := []struct {
		name     string
		err      error
		textCode string
		httpCode int
	}{
		{"validation", NewValidationError("email", "must contain @"), ErrorCodeValidation, http.StatusBadRequest},
		{"constraint", NewConstraintViolation(errors.New("UNIQUE constraint failed"), "store rejected row"), ErrorCodeConstraintViolation, http.StatusConflict},
		{"provider", NewProviderError("provider returned status 400", map[string]any{"body": `{"msg":"bad"}`}), ErrorCodeProviderFailure, http.StatusBadGateway},
		{"configuration", NewConfigurationError("identity.base_url is required"), ErrorCodeConfiguration, http.StatusInternalServerError},
	}
	for _, tc := range cases {
		var rich *goerrors.Error
		if !goerrors.As(tc.err, &rich) {
			t.Fatalf("%s: expected go-errors envelope, got %T", tc.name, tc.err)
		}
		if rich.TextCode != tc.textCode {
			t.Fatalf("%s: expected text code %q, got %q", tc.name, tc.textCode, rich.TextCode)
		}
		if rich.Code != tc.httpCode {
			t.Fatalf("%s: expected http code %d, got %d", tc.name, tc.httpCode, rich.Code)
		}
	}
}

func TestErrorPredicates(t *testing.T) {
	if !IsValidationError(NewValidationError("password", "too short")) {
		t.Fatalf("expected validation predicate to match")
	}
	if !IsProviderError(NewProviderError("provider unavailable", nil)) {
		t.Fatalf("expected provider predicate to match")
	}
	if !IsConstraintViolation(NewConstraintViolation(errors.New("fk"), "constraint")) {
		t.Fatalf("expected constraint predicate to match")
	}
	if !IsConfigurationError(NewConfigurationError("missing key")) {
		t.Fatalf("expected configuration predicate to match")
	}
	if IsProviderError(NewValidationError("email", "bad")) {
		t.Fatalf("predicates must not cross-match")
	}
	if IsValidationError(nil) {
		t.Fatalf("nil error must not match")
	}
}

func TestDefaultErrorMapper_ClassifiesRawErrors(t *testing.T) {
	cases := []struct {
		input    error
		textCode string
	}{
		{fmt.Errorf("UNIQUE constraint failed: job_applications.job_id"), ErrorCodeConstraintViolation},
		{fmt.Errorf("provider returned status 502"), ErrorCodeProviderFailure},
		{fmt.Errorf("core: job title is required"), ErrorCodeValidation},
	}
	for _, tc := range cases {
		mapped := defaultErrorMapper(tc.input)
		if mapped == nil {
			t.Fatalf("expected mapped error for %v", tc.input)
		}
		if mapped.TextCode != tc.textCode {
			t.Fatalf("mapping %v: expected %q, got %q", tc.input, tc.textCode, mapped.TextCode)
		}
	}
}

func TestDefaultErrorMapper_PreservesRichErrors(t *testing.T) {
	original := NewProviderError("login parse failure", map[string]any{"body": "{}"})
	mapped := defaultErrorMapper(original)
	if mapped.TextCode != ErrorCodeProviderFailure {
		t.Fatalf("expected provider text code preserved, got %q", mapped.TextCode)
	}
	if mapped.Code != http.StatusBadGateway {
		t.Fatalf("expected bad gateway code preserved, got %d", mapped.Code)
	}
}
