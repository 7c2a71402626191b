package config

import (
	"fmt"
	"time"
)

const defaultTravelCardNo = "3445454533634718"

// FutureTicket describes a ticket bought ahead of time for the ticket detail scenarios
type FutureTicket struct {
	OrderID     string `env:"FUTURE_TICKET_ORDER_ID"`
	StartDateNO string `env:"FUTURE_TICKET_START_DATE_NO" validate:"omitempty,datetime=02.01.2006"`
	EndDateNO   string `env:"FUTURE_TICKET_END_DATE_NO" validate:"omitempty,datetime=02.01.2006"`
	StartDateEN string `env:"FUTURE_TICKET_START_DATE_EN" validate:"omitempty,datetime=2006-01-02"`
}

// Enabled reports whether a future ticket is configured
func (f FutureTicket) Enabled() bool {
	return f.OrderID != ""
}

// SuiteConfig holds the scenario parameters
type SuiteConfig struct {
	BuyTicketTimeout time.Duration `env:"BUY_TICKET_TIMEOUT" validate:"required"`
	WithBuyTicket    bool          `env:"WITH_BUY_TICKET"`
	TravelCardNo     string        `env:"TRAVEL_CARD_NO" validate:"required,numeric,len=16"`
	RunOnGitHub      bool          `env:"RUN_ON_GITHUB"`
	FutureTicket     FutureTicket
}

// LoadSuiteConfig loads scenario parameters from environment variables
func LoadSuiteConfig(getenv func(string) string) (*SuiteConfig, error) {
	var err error
	config := &SuiteConfig{
		TravelCardNo: stringVar(getenv, "TRAVEL_CARD_NO", defaultTravelCardNo),
		FutureTicket: FutureTicket{
			OrderID:     getenv("FUTURE_TICKET_ORDER_ID"),
			StartDateNO: getenv("FUTURE_TICKET_START_DATE_NO"),
			EndDateNO:   getenv("FUTURE_TICKET_END_DATE_NO"),
			StartDateEN: getenv("FUTURE_TICKET_START_DATE_EN"),
		},
	}

	if config.BuyTicketTimeout, err = durationVar(getenv, "BUY_TICKET_TIMEOUT", 10*time.Minute); err != nil {
		return nil, err
	}
	if config.WithBuyTicket, err = boolVar(getenv, "WITH_BUY_TICKET", false); err != nil {
		return nil, err
	}
	if config.RunOnGitHub, err = boolVar(getenv, "RUN_ON_GITHUB", false); err != nil {
		return nil, err
	}

	if err := check(config); err != nil {
		return nil, err
	}
	if f := config.FutureTicket; f.Enabled() && (f.StartDateNO == "" || f.EndDateNO == "") {
		return nil, configError("FUTURE_TICKET_START_DATE_NO", fmt.Errorf("start and end dates are required with FUTURE_TICKET_ORDER_ID"))
	}
	return config, nil
}
