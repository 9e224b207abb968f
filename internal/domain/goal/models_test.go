package goal

import (
	"testing"
	"time"

	"bolso/internal/domain/fault"
)

var now = time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)

func validCreateParams() CreateParams {
	return CreateParams{
		Name:         "Emergency fund",
		Description:  "Six months of expenses",
		TargetAmount: 18000,
		TargetDate:   now.AddDate(1, 0, 0),
		Category:     "savings",
	}
}

func TestCreateParamsValidate(t *testing.T) {
	if err := validCreateParams().Validate(now); err != nil {
		t.Fatalf("valid params rejected: %v", err)
	}

	tests := []struct {
		name   string
		mutate func(*CreateParams)
	}{
		{"empty name", func(p *CreateParams) { p.Name = "" }},
		{"zero target", func(p *CreateParams) { p.TargetAmount = 0 }},
		{"negative target", func(p *CreateParams) { p.TargetAmount = -100 }},
		{"past target date", func(p *CreateParams) { p.TargetDate = now.AddDate(0, 0, -1) }},
		{"target date equals now", func(p *CreateParams) { p.TargetDate = now }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := validCreateParams()
			tt.mutate(&p)
			err := p.Validate(now)
			if err == nil {
				t.Fatal("expected validation error, got nil")
			}
			if !fault.IsValidation(err) {
				t.Errorf("expected ValidationError, got %T", err)
			}
		})
	}
}

func TestValidateProgress(t *testing.T) {
	if err := ValidateProgress(0); err != nil {
		t.Errorf("ValidateProgress(0) = %v, want nil", err)
	}
	if err := ValidateProgress(500); err != nil {
		t.Errorf("ValidateProgress(500) = %v, want nil", err)
	}
	err := ValidateProgress(-0.01)
	if err == nil {
		t.Fatal("ValidateProgress(-0.01) = nil, want error")
	}
	if !fault.IsValidation(err) {
		t.Errorf("expected ValidationError, got %T", err)
	}
}

func TestProgressPercentageClamping(t *testing.T) {
	g := Goal{TargetAmount: 1000, CurrentAmount: 250}
	if got := g.ProgressPercentage(); got != 25 {
		t.Errorf("ProgressPercentage() = %v, want 25", got)
	}

	g.CurrentAmount = 1500
	if got := g.ProgressPercentage(); got != 100 {
		t.Errorf("ProgressPercentage() = %v, want clamped 100", got)
	}
	// The raw ratio stays unclamped for completion logic.
	if got := g.ProgressRatio(); got != 1.5 {
		t.Errorf("ProgressRatio() = %v, want 1.5", got)
	}
}

func TestFormattedProgress(t *testing.T) {
	g := Goal{TargetAmount: 1000, CurrentAmount: 166.7}
	if got := g.FormattedProgress(); got != "16.7%" {
		t.Errorf("FormattedProgress() = %q, want 16.7%%", got)
	}
}

func TestFormattedTarget(t *testing.T) {
	g := Goal{TargetAmount: 18000}
	if got := g.FormattedTarget("BRL"); got != "R$18,000.00" {
		t.Errorf("FormattedTarget() = %q, want R$18,000.00", got)
	}
}
