// Package delta derives the rate-of-change between two debt snapshots.
package delta

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/wallscreet/us-debt/internal/model"
)

// DateLayout is the fixed month/day/year format of record date labels.
const DateLayout = "01/02/2006"

const hoursPerDay = 24

// ErrZeroElapsed is returned when both records carry the same date; the
// hourly accumulation rate is undefined and the division is refused.
var ErrZeroElapsed = errors.New("records share the same date: hourly accumulation rate is undefined")

// DateParseError reports a record date label that does not conform to
// DateLayout.
type DateParseError struct {
	Value string
	Err   error
}

func (e *DateParseError) Error() string {
	return fmt.Sprintf("parse date label %q: %v", e.Value, e.Err)
}

func (e *DateParseError) Unwrap() error { return e.Err }

// Compute returns the signed field-wise differences and the hourly
// accumulation rate between two records, newer minus older. It performs
// no sorting and does not verify chronology: passing the arguments
// reversed silently inverts the sign of every delta and of the day
// count. Pure and safe for concurrent callers.
func Compute(newer, older model.DebtRecord) (model.DebtDelta, error) {
	newerDate, err := time.Parse(DateLayout, newer.Date)
	if err != nil {
		return model.DebtDelta{}, &DateParseError{Value: newer.Date, Err: err}
	}
	olderDate, err := time.Parse(DateLayout, older.Date)
	if err != nil {
		return model.DebtDelta{}, &DateParseError{Value: older.Date, Err: err}
	}

	// Snapshots are day-granularity; both times are midnight UTC so
	// the division is exact.
	days := int(newerDate.Sub(olderDate).Hours() / hoursPerDay)
	if days == 0 {
		return model.DebtDelta{}, ErrZeroElapsed
	}

	d := model.DebtDelta{
		DaysElapsed:       days,
		PublicDebt:        newer.PublicDebt.Sub(older.PublicDebt),
		Intragovernmental: newer.Intragovernmental.Sub(older.Intragovernmental),
		TotalDebt:         newer.TotalDebt.Sub(older.TotalDebt),
	}
	d.HourlyRate = d.TotalDebt.Div(decimal.NewFromInt(int64(days) * hoursPerDay))

	return d, nil
}
