package notification

import (
	"testing"

	"bolso/internal/domain/fault"
)

func TestPayloadValidate(t *testing.T) {
	valid := Payload{
		Type:     TypeBudgetAlert,
		Title:    "Budget exceeded",
		Message:  "Groceries is over its limit",
		Priority: PriorityHigh,
		Data:     Data{BudgetID: "b-1", Percentage: 104.2},
	}
	if err := valid.Validate(); err != nil {
		t.Fatalf("valid payload rejected: %v", err)
	}

	tests := []struct {
		name   string
		mutate func(*Payload)
	}{
		{"missing type", func(p *Payload) { p.Type = "" }},
		{"unknown type", func(p *Payload) { p.Type = "carrier_pigeon" }},
		{"blank title", func(p *Payload) { p.Title = "  " }},
		{"blank message", func(p *Payload) { p.Message = "" }},
		{"bad priority", func(p *Payload) { p.Priority = "urgent" }},
		{"empty priority", func(p *Payload) { p.Priority = "" }},
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
