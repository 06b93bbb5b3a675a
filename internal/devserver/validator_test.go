package devserver

import (
	"strings"
	"testing"
)

func TestValidatorMessages(t *testing.T) {
	v := newValidator()

	err := v.Validate(&registerRequest{
		Username: "bob",
		Password: "abc", // below the minimum length
		FullName: "Bob Tan",
		Email:    "bob@example.edu",
	})
	if err == nil {
		t.Fatal("expected validation error")
	}
	if got := err.Error(); !strings.Contains(got, "password must be at least 4") {
		t.Errorf("message = %q, want the min-length wording", got)
	}

	err = v.Validate(&registerRequest{
		Username: "bob",
		Password: "pass1234",
		FullName: "Bob Tan",
		Email:    "not-an-email",
		Role:     "superuser",
	})
	if err == nil {
		t.Fatal("expected validation error")
	}
	got := err.Error()
	if !strings.Contains(got, "email must be a valid email") {
		t.Errorf("message = %q, want the email wording", got)
	}
	if !strings.Contains(got, "role must be one of") {
		t.Errorf("message = %q, want the oneof wording", got)
	}
}
