package model

import "github.com/shopspring/decimal"

// DebtRecord is one parsed "Debt to the Penny" snapshot. Records are
// built once by the extractor and never mutated afterwards.
type DebtRecord struct {
	// Date is the human date label from the item title (MM/DD/YYYY).
	Date string

	// The three figures carry the exact two-decimal scale published by
	// the source. TotalDebt is expected to equal the sum of the other
	// two but the extractor does not cross-check it.
	PublicDebt        decimal.Decimal
	Intragovernmental decimal.Decimal
	TotalDebt         decimal.Decimal

	// Published is the feed's timestamp label, carried through for
	// display only.
	Published string
}

// DebtDelta is the derived change between two snapshots (newer minus
// older). All amounts are signed; callers render the +/- indicator.
type DebtDelta struct {
	DaysElapsed       int
	PublicDebt        decimal.Decimal
	Intragovernmental decimal.Decimal
	TotalDebt         decimal.Decimal

	// HourlyRate is TotalDebt divided by elapsed hours.
	HourlyRate decimal.Decimal
}
