package extract

import (
	"regexp"
	"sort"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/wallscreet/us-debt/internal/model"
	"golang.org/x/net/html"
)

// TitleSeparator is the token that precedes the date label in item
// titles, e.g. "Debt to the Penny for 01/02/2024". Everything after its
// last occurrence is taken as the date label, verbatim.
const TitleSeparator = "for "

// amountPattern is the value side of a labeled field: digits with
// optional comma grouping and exactly two decimal places.
const amountPattern = `:\s*([\d,]+\.\d{2})`

// FieldLabels maps the three record fields to the label text used in
// the published content. The labels are configuration so that label
// drift at the source never requires touching the matching logic.
type FieldLabels struct {
	PublicDebt        string
	Intragovernmental string
	TotalDebt         string
}

// DefaultFieldLabels returns the labels TreasuryDirect publishes today.
func DefaultFieldLabels() FieldLabels {
	return FieldLabels{
		PublicDebt:        "Debt Held by the Public",
		Intragovernmental: "Intragovernmental Holdings",
		TotalDebt:         "Total Public Debt Outstanding",
	}
}

// Extractor parses one snapshot's published markup into a DebtRecord.
// It is a pure function of its inputs and safe for concurrent use.
type Extractor struct {
	labels   FieldLabels
	patterns map[string]*regexp.Regexp
}

// NewExtractor compiles one pattern per configured label.
func NewExtractor(labels FieldLabels) *Extractor {
	patterns := make(map[string]*regexp.Regexp, 3)
	for _, label := range []string{labels.PublicDebt, labels.Intragovernmental, labels.TotalDebt} {
		patterns[label] = regexp.MustCompile(regexp.QuoteMeta(label) + amountPattern)
	}
	return &Extractor{labels: labels, patterns: patterns}
}

// Extract locates the three labeled monetary fields in rawContent and
// the date label in title. Matching is order-independent and
// all-or-nothing: if any label is absent the whole extraction fails
// with a *MissingFieldError and no partial record is returned.
func (e *Extractor) Extract(rawContent, title string) (model.DebtRecord, error) {
	text := visibleText(rawContent)

	rec := model.DebtRecord{Date: dateLabel(title)}

	fields := []struct {
		label string
		dst   *decimal.Decimal
	}{
		{e.labels.PublicDebt, &rec.PublicDebt},
		{e.labels.Intragovernmental, &rec.Intragovernmental},
		{e.labels.TotalDebt, &rec.TotalDebt},
	}

	var missing []string
	for _, f := range fields {
		m := e.patterns[f.label].FindStringSubmatch(text)
		if m == nil {
			missing = append(missing, f.label)
			continue
		}
		amount, err := decimal.NewFromString(strings.ReplaceAll(m[1], ",", ""))
		if err != nil {
			// The pattern guarantees a parseable amount; treat a
			// failure as the field not being present.
			missing = append(missing, f.label)
			continue
		}
		*f.dst = amount
	}

	if len(missing) > 0 {
		sort.Strings(missing)
		return model.DebtRecord{}, &MissingFieldError{Labels: missing}
	}

	return rec, nil
}

// dateLabel takes everything after the last "for " in the title,
// falling back to the whole title when the separator is absent.
func dateLabel(title string) string {
	if idx := strings.LastIndex(title, TitleSeparator); idx >= 0 {
		return title[idx+len(TitleSeparator):]
	}
	return title
}

// visibleText reduces markup to its visible text so stray tags between
// a label and its amount never break matching. Text nodes are trimmed
// and joined with single spaces; script/style subtrees are skipped.
func visibleText(markup string) string {
	doc, err := html.Parse(strings.NewReader(markup))
	if err != nil {
		return markup
	}

	var buf strings.Builder

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "script", "style", "noscript", "iframe":
				return
			}
		}

		if n.Type == html.TextNode {
			if text := strings.TrimSpace(n.Data); text != "" {
				buf.WriteString(text)
				buf.WriteString(" ")
			}
		}

		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}

	walk(doc)
	return buf.String()
}
