package models

import "github.com/shopspring/decimal"

// SelectablePackage is a savings package the user may schedule contributions into.
// AmountPerDay and TotalCount are only meaningful for daily-savings packages.
type SelectablePackage struct {
	ID              string           `json:"id"`
	Type            ContributionType `json:"type"`
	Title           string           `json:"title"`
	CurrentBalance  decimal.Decimal  `json:"currentBalance"`
	ProgressPercent float64          `json:"progressPercent"`
	AmountPerDay    decimal.Decimal  `json:"amountPerDay"`
	TotalCount      int              `json:"totalCount,omitempty"`
}

func (p SelectablePackage) IsDailySavings() bool {
	return p.Type == ContributionDailySavings
}

// PaymentCard is a stored card that can fund a schedule.
type PaymentCard struct {
	ID        string `json:"id"`
	Bank      string `json:"bank"`
	Last4     string `json:"last4"`
	IsDefault bool   `json:"isDefault"`
}
