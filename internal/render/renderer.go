// Package render writes the fixed-width console debt report.
package render

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/wallscreet/us-debt/internal/model"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// ANSI clear-screen sequence, used when the report runs as a clock.
const clearSequence = "\033[H\033[J"

// Renderer formats records and deltas for the console. Separator
// strings and the clear-screen toggle are static configuration fixed at
// construction; amounts arrive as exact decimals and are stringified
// only here.
type Renderer struct {
	printer     *message.Printer
	clearScreen bool
	sepDouble   string
	sepSingle   string
	localZone   *time.Location
	now         func() time.Time
}

// New creates a Renderer for the given output configuration.
func New(cfg model.OutputConfig) (*Renderer, error) {
	loc, err := time.LoadLocation(cfg.LocalZone)
	if err != nil {
		return nil, fmt.Errorf("load zone %q: %w", cfg.LocalZone, err)
	}

	return &Renderer{
		printer:     message.NewPrinter(language.English),
		clearScreen: cfg.ClearScreen,
		sepDouble:   strings.Repeat("=", 55),
		sepSingle:   strings.Repeat("-", 55),
		localZone:   loc,
		now:         time.Now,
	}, nil
}

// Currency formats an exact decimal amount as a dollar string with
// comma grouping, e.g. $34,567,890.12.
func (r *Renderer) Currency(d decimal.Decimal) string {
	s := d.Abs().StringFixed(2)
	whole, frac, _ := strings.Cut(s, ".")

	// Whole parts beyond int64 range (over $9.2 quintillion) render
	// ungrouped rather than failing.
	grouped := s
	if n, err := strconv.ParseInt(whole, 10, 64); err == nil {
		grouped = r.printer.Sprintf("%d", n) + "." + frac
	}

	if d.IsNegative() {
		return "-$" + grouped
	}
	return "$" + grouped
}

// Signed renders an explicit +/- indicator in front of the amount. The
// calculator hands over raw signed values; the indicator is the
// renderer's job.
func (r *Renderer) Signed(d decimal.Decimal) string {
	if d.IsNegative() {
		return r.Currency(d)
	}
	return "+" + r.Currency(d)
}

// RenderClock writes the banner, run timestamps and one block per
// snapshot record.
func (r *Renderer) RenderClock(w io.Writer, records []model.DebtRecord) {
	if r.clearScreen {
		fmt.Fprint(w, clearSequence)
	}

	now := r.now()

	fmt.Fprintln(w)
	fmt.Fprintln(w, "  TreasuryDirect - US Debt to the Penny")
	fmt.Fprintf(w, "  %s\n", r.sepDouble)
	fmt.Fprintf(w, "  Time Run: %s (GMT)\n", now.UTC().Format("2006-01-02 15:04:05"))
	fmt.Fprintf(w, "            %s (%s)\n", now.In(r.localZone).Format("2006-01-02 15:04:05"), r.localZone)
	fmt.Fprintf(w, "  %s\n", r.sepDouble)

	for _, rec := range records {
		fmt.Fprintf(w, "  Date: %s\n", rec.Date)
		fmt.Fprintf(w, "    Debt Held by the Public:       %s\n", r.Currency(rec.PublicDebt))
		fmt.Fprintf(w, "    Intragovernmental Holdings:    %s\n", r.Currency(rec.Intragovernmental))
		fmt.Fprintf(w, "    Total Debt Outstanding:        %s\n", r.Currency(rec.TotalDebt))
		fmt.Fprintf(w, "    Published:              %s\n", rec.Published)
		fmt.Fprintf(w, "  %s\n", r.sepSingle)
	}
}

// RenderDelta writes the accumulation section for the newest pair.
func (r *Renderer) RenderDelta(w io.Writer, d model.DebtDelta) {
	fmt.Fprintf(w, "  %s\n", r.sepSingle)
	fmt.Fprintln(w, "  Debt Accumulated")
	fmt.Fprintf(w, "  %s\n", r.sepSingle)
	fmt.Fprintf(w, "  Days Elapsed:                     %d\n", d.DaysElapsed)
	fmt.Fprintf(w, "  Debt Held by the Public:          %s\n", r.Signed(d.PublicDebt))
	fmt.Fprintf(w, "  Intragovernmental Holdings:       %s\n", r.Signed(d.Intragovernmental))
	fmt.Fprintf(w, "  Total Public Debt Outstanding:    %s\n", r.Signed(d.TotalDebt))
	fmt.Fprintf(w, "\n  Debt Accumulation Rate:           %s /hr\n", r.Signed(d.HourlyRate))
	fmt.Fprintf(w, "  %s\n", r.sepDouble)
	fmt.Fprintln(w)
}

// RenderNote writes the optional commentary block.
func (r *Renderer) RenderNote(w io.Writer, note string) {
	note = strings.TrimSpace(note)
	if note == "" {
		return
	}

	fmt.Fprintf(w, "  %s\n", r.sepSingle)
	fmt.Fprintln(w, "  Commentary")
	fmt.Fprintf(w, "  %s\n", r.sepSingle)
	for _, line := range strings.Split(note, "\n") {
		fmt.Fprintf(w, "  %s\n", line)
	}
	fmt.Fprintf(w, "  %s\n", r.sepDouble)
	fmt.Fprintln(w)
}
