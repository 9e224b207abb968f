package user

import (
	"testing"

	"bolso/internal/domain/fault"
)

func TestIsValidEmail(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"ana@example.com", true},
		{"a.b+c@sub.domain.org", true},
		{"missing-at.example.com", false},
		{"two@@example.com", false},
		{"spaces in@example.com", false},
		{"no-tld@example", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := IsValidEmail(tt.input); got != tt.want {
				t.Errorf("IsValidEmail(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestRegisterParamsValidate(t *testing.T) {
	valid := RegisterParams{
		Email:             "ana@example.com",
		Password:          "correct-horse",
		FirstName:         "Ana",
		LastName:          "Souza",
		PreferredCurrency: "BRL",
	}
	if err := valid.Validate(); err != nil {
		t.Fatalf("valid params rejected: %v", err)
	}

	tests := []struct {
		name   string
		mutate func(*RegisterParams)
	}{
		{"bad email", func(p *RegisterParams) { p.Email = "nope" }},
		{"short password", func(p *RegisterParams) { p.Password = "short" }},
		{"missing first name", func(p *RegisterParams) { p.FirstName = " " }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := valid
			tt.mutate(&p)
			err := p.Validate()
			if err == nil {
				t.Fatal("expected validation error, got nil")
			}
			if !fault.IsValidation(err) {
				t.Errorf("expected ValidationError, got %T", err)
			}
		})
	}
}

func TestSettingsParamsValidate(t *testing.T) {
	bad := "DOLLARS"
	if err := (SettingsParams{PreferredCurrency: &bad}).Validate(); err == nil {
		t.Error("long currency code accepted")
	}
	good := "USD"
	if err := (SettingsParams{PreferredCurrency: &good}).Validate(); err != nil {
		t.Errorf("valid currency rejected: %v", err)
	}
	if err := (SettingsParams{}).Validate(); err != nil {
		t.Errorf("empty settings rejected: %v", err)
	}
}

func TestFullName(t *testing.T) {
	u := User{FirstName: "Ana", LastName: "Souza"}
	if got := u.FullName(); got != "Ana Souza" {
		t.Errorf("FullName() = %q, want Ana Souza", got)
	}
	solo := User{FirstName: "Ana"}
	if got := solo.FullName(); got != "Ana" {
		t.Errorf("FullName() = %q, want Ana", got)
	}
}
