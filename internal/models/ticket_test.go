package models

import (
	"errors"
	"testing"
)

func TestTicketStatusFromIcon(t *testing.T) {
	tests := []struct {
		src  string
		want TicketStatus
	}{
		{"images/ticket-waiting.svg", TicketStatusWaiting},
		{"images/ticket-valid.svg", TicketStatusValid},
		{"images/ticket-carnet.svg", TicketStatusCarnet},
		{"images/ticket-expired.svg", TicketStatusExpired},
		{"images/ticket-invalid.svg", TicketStatusExpired},
		{"", TicketStatusUnknown},
	}

	for _, tt := range tests {
		if got := TicketStatusFromIcon(tt.src); got != tt.want {
			t.Errorf("TicketStatusFromIcon(%q) = %q, want %q", tt.src, got, tt.want)
		}
	}
}

func TestTicket_Activated(t *testing.T) {
	summary := TicketSummary{Type: "7-dagersbillett", Zones: "Reise i 1 sone (Sone A)", Traveller: "1 Voksen"}
	waiting := Ticket{OrderID: "R72EMYQA", Status: TicketStatusWaiting, Header: "Gyldig om 1 minutt", Summary: summary}

	tests := []struct {
		name       string
		next       Ticket
		wantErr    error
		wantAnyErr bool
	}{
		{
			name: "waiting becomes valid",
			next: Ticket{OrderID: "R72EMYQA", Status: TicketStatusValid, Header: "7 dager igjen", Summary: summary},
		},
		{
			name:    "still waiting",
			next:    Ticket{OrderID: "R72EMYQA", Status: TicketStatusWaiting, Summary: summary},
			wantErr: ErrInvalidStateTransition,
		},
		{
			name: "traveller changed",
			next: Ticket{OrderID: "R72EMYQA", Status: TicketStatusValid, Summary: TicketSummary{
				Type: summary.Type, Zones: summary.Zones, Traveller: "1 Barn",
			}},
			wantAnyErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := waiting.Activated(tt.next)

			switch {
			case tt.wantAnyErr:
				if err == nil {
					t.Error("Expected error when summary changes")
				}
			case tt.wantErr != nil:
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("Activated() error = %v, want %v", err, tt.wantErr)
				}
			case err != nil:
				t.Errorf("Activated() unexpected error = %v", err)
			}
		})
	}
}

func TestTicket_ActivatedRequiresWaiting(t *testing.T) {
	valid := Ticket{OrderID: "A", Status: TicketStatusValid}
	if err := valid.Activated(valid); !errors.Is(err, ErrInvalidStateTransition) {
		t.Errorf("Activated() error = %v, want %v", err, ErrInvalidStateTransition)
	}
}

func TestTicketSummary_Contains(t *testing.T) {
	s := TicketSummary{Type: "Klippekort (10 billetter)", Zones: "Reise i 1 sone (Sone A)", Traveller: "1 Voksen"}

	if err := s.Contains("Klippekort (10 billetter), Reise i 1 sone (Sone A), 1 Voksen"); err != nil {
		t.Errorf("Contains() unexpected error = %v", err)
	}
	if err := s.Contains("Klippekort (10 billetter), 1 Voksen"); err == nil {
		t.Error("Expected error when zones are missing")
	}
}

func TestTicketDetails_Missing(t *testing.T) {
	d := TicketDetails{Visible: true, Text: "Gyldig fra 20.08.2021 - 11:50 Gyldig til 21.08.2022 - 11:50 Ordre-ID R72EMYQA"}

	missing := d.Missing("Gyldig fra", "Gyldig til", "Betalt med", "R72EMYQA")
	if len(missing) != 1 || missing[0] != "Betalt med" {
		t.Errorf("Missing() = %v, want [Betalt med]", missing)
	}
}
