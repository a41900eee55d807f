package entity

import "github.com/shopspring/decimal"

// MindmapSnapshot is the consistent read-model the presentation layer
// consumes: recipients with their transactions plus the derived aggregates
// for the budget. It is produced by a read-only path and carries no partial
// state.
type MindmapSnapshot struct {
	BudgetID             string
	Recipients           []*RecipientWithTransactions
	TotalDistributed     decimal.Decimal
	InitialPaymentAmount decimal.Decimal
}

// AvailableBalance returns the funds not yet distributed from the budget.
func (s *MindmapSnapshot) AvailableBalance() decimal.Decimal {
	return s.InitialPaymentAmount.Sub(s.TotalDistributed)
}
