package httpx

import (
	"testing"
)

type sampleInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,password_strength"`
	Name     string `json:"name" validate:"required,min=3,max=10"`
}

func TestValidateStruct_Valid(t *testing.T) {
	input := sampleInput{
		Email:    "user@example.com",
		Password: "Password123",
		Name:     "alice",
	}

	if details := ValidateStruct(input); details != nil {
		t.Errorf("Expected no validation errors, got %v", details)
	}
}

func TestValidateStruct_CollectsAllFailures(t *testing.T) {
	input := sampleInput{
		Email:    "not-an-email",
		Password: "weak",
		Name:     "ab",
	}

	details := ValidateStruct(input)
	if len(details) != 3 {
		t.Fatalf("Expected 3 validation errors, got %d: %v", len(details), details)
	}

	byField := make(map[string]string)
	for _, d := range details {
		byField[d.Field] = d.Message
	}
	for _, field := range []string{"email", "password", "name"} {
		if byField[field] == "" {
			t.Errorf("Expected a validation error for field %q", field)
		}
	}
}

func TestValidateStruct_RequiredMessage(t *testing.T) {
	input := sampleInput{Password: "Password123", Name: "alice"}

	details := ValidateStruct(input)
	if len(details) != 1 {
		t.Fatalf("Expected 1 validation error, got %d", len(details))
	}
	if details[0].Field != "email" {
		t.Errorf("Expected field email, got %q", details[0].Field)
	}
	if details[0].Message != "Email is required" {
		t.Errorf("Unexpected message %q", details[0].Message)
	}
}

func TestValidateStruct_PasswordStrengthRule(t *testing.T) {
	tests := []struct {
		password string
		valid    bool
	}{
		{"Password123", true},
		{"alllowercase1", false},
		{"ALLUPPERCASE1", false},
		{"NoNumbersHere", false},
		{"Sh0rt", false},
	}

	for _, tt := range tests {
		input := sampleInput{
			Email:    "user@example.com",
			Password: tt.password,
			Name:     "alice",
		}
		details := ValidateStruct(input)
		if tt.valid && details != nil {
			t.Errorf("Expected %q to pass, got %v", tt.password, details)
		}
		if !tt.valid && details == nil {
			t.Errorf("Expected %q to fail password_strength", tt.password)
		}
	}
}
