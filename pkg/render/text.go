package render

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/ncruces/go-strftime"
	"github.com/spf13/cast"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"github.com/goliatone/go-htmlform/pkg/form"
	"github.com/goliatone/go-htmlform/pkg/markup"
)

// maxDecimals is the largest precision supported by Number.
const maxDecimals = 9

// dateLayouts are tried after cast's own layouts fail. Slash dates without a
// leading year read as month/day/year.
var dateLayouts = []string{
	"2 January 2006",
	"2 January 2006 15:04",
	"2 Jan 2006",
	"January 2, 2006",
	"January 2 2006",
	"Jan 2, 2006",
	"2006/01/02",
	"2006/01/02 15:04",
	"2006/01/02 15:04:05",
	"01/02/2006",
	"2006.01.02",
}

// DateParseError reports a field value that could not be read as a date.
type DateParseError struct {
	Path  Path
	Value string
	Err   error
}

func (e *DateParseError) Error() string {
	return fmt.Sprintf("render: invalid date time string %q at %q: %v", e.Value, e.Path.String(), e.Err)
}

func (e *DateParseError) Unwrap() error {
	return e.Err
}

// Value returns the field value as escaped text. Empty values yield an empty
// node; list values are joined with ", ".
func (r *Renderer) Value(p Path) (*markup.Node, error) {
	field, err := r.Field(p)
	if err != nil {
		return nil, err
	}
	value := displayValue(field.Value())
	if form.IsEmpty(value) {
		return markup.New(), nil
	}
	return markup.Text(strings.Join(form.Strings(value), ", ")), nil
}

// Format applies a fmt verb string to the raw field value.
func (r *Renderer) Format(p Path, format string) (*markup.Node, error) {
	field, err := r.Field(p)
	if err != nil {
		return nil, err
	}
	value := displayValue(field.Value())
	if form.IsEmpty(value) {
		return markup.New(), nil
	}
	return markup.Text(fmt.Sprintf(format, value)), nil
}

// Number formats the value with a fixed number of decimals and the supplied
// separators. Values that do not parse as numbers are treated as zero and
// decimals are capped at 9.
func (r *Renderer) Number(p Path, decimals int, decPoint, thousandsSep string) (*markup.Node, error) {
	field, err := r.Field(p)
	if err != nil {
		return nil, err
	}
	value := displayValue(field.Value())
	if form.IsEmpty(value) {
		return markup.New(), nil
	}
	return markup.Text(FormatNumber(cast.ToFloat64(value), decimals, decPoint, thousandsSep)), nil
}

// FormatNumber renders n rounded to decimals places, grouping thousands.
// Precision is capped at maxDecimals. NaN and infinities render as zero and a
// result that rounds to zero carries no sign.
func FormatNumber(n float64, decimals int, decPoint, thousandsSep string) string {
	if decimals < 0 {
		decimals = 0
	}
	if decimals > maxDecimals {
		decimals = maxDecimals
	}
	if math.IsNaN(n) || math.IsInf(n, 0) {
		n = 0
	}

	var formatted string
	if math.Abs(n) < 1<<63 {
		layout := "#,###." + strings.Repeat("#", decimals)
		formatted = humanize.FormatFloat(layout, n)
	} else {
		// humanize goes through int64 for the integer part.
		formatted = groupThousands(strconv.FormatFloat(n, 'f', decimals, 64))
	}
	if strings.HasPrefix(formatted, "-") && strings.Trim(formatted, "-0.,") == "" {
		formatted = formatted[1:]
	}
	return strings.NewReplacer(",", thousandsSep, ".", decPoint).Replace(formatted)
}

func groupThousands(s string) string {
	var b strings.Builder
	if strings.HasPrefix(s, "-") {
		b.WriteByte('-')
		s = s[1:]
	}
	whole, frac, hasFrac := strings.Cut(s, ".")
	for i := 0; i < len(whole); i++ {
		if i > 0 && (len(whole)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteByte(whole[i])
	}
	if hasFrac {
		b.WriteByte('.')
		b.WriteString(frac)
	}
	return b.String()
}

// displayValue prints booleans the way checkbox values are submitted: true
// as "1" and false as nothing.
func displayValue(value any) any {
	if b, ok := value.(bool); ok {
		if b {
			return "1"
		}
		return nil
	}
	return value
}

// NumberLocale formats the value using the conventions of tag, for example
// "de" renders 1234.5 as "1.234,50" with two decimals.
func (r *Renderer) NumberLocale(p Path, tag language.Tag, decimals int) (*markup.Node, error) {
	field, err := r.Field(p)
	if err != nil {
		return nil, err
	}
	value := displayValue(field.Value())
	if form.IsEmpty(value) {
		return markup.New(), nil
	}
	if decimals < 0 {
		decimals = 0
	}
	printer := message.NewPrinter(tag)
	text := printer.Sprint(number.Decimal(cast.ToFloat64(value), number.Scale(decimals)))
	return markup.Text(text), nil
}

// Date parses the value and formats it with strftime directives such as
// "%B %d, %Y".
func (r *Renderer) Date(p Path, format string) (*markup.Node, error) {
	return r.date(p, func(t time.Time) string {
		return strftime.Format(format, t)
	})
}

// DateLayout parses the value and formats it with a Go reference layout.
func (r *Renderer) DateLayout(p Path, layout string) (*markup.Node, error) {
	return r.date(p, func(t time.Time) string {
		return t.Format(layout)
	})
}

func (r *Renderer) date(p Path, format func(time.Time) string) (*markup.Node, error) {
	field, err := r.Field(p)
	if err != nil {
		return nil, err
	}
	value := displayValue(field.Value())
	if form.IsEmpty(value) {
		return markup.New(), nil
	}
	t, err := r.parseTime(value)
	if err != nil {
		return nil, &DateParseError{Path: p, Value: cast.ToString(value), Err: err}
	}
	return markup.Text(format(t)), nil
}

func (r *Renderer) parseTime(value any) (time.Time, error) {
	switch v := value.(type) {
	case time.Time:
		return v.In(r.location), nil
	case string:
		v = strings.TrimSpace(v)
		t, err := cast.StringToDateInDefaultLocation(v, r.location)
		if err == nil {
			return t, nil
		}
		for _, layout := range dateLayouts {
			if parsed, perr := time.ParseInLocation(layout, v, r.location); perr == nil {
				return parsed, nil
			}
		}
		return time.Time{}, err
	default:
		return cast.ToTimeInDefaultLocationE(v, r.location)
	}
}

// Selected returns the labels of the selected options, one node per label.
// Scalar fields yield a single node that is empty when nothing is selected.
func (r *Renderer) Selected(p Path) ([]*markup.Node, error) {
	field, err := r.Field(p)
	if err != nil {
		return nil, err
	}
	var labels []string
	if options, ok := field.(form.HasOptions); ok {
		labels = options.SelectedLabels()
	}
	if !form.IsMulti(field.Value()) {
		return []*markup.Node{markup.Text(strings.Join(labels, ""))}, nil
	}
	nodes := make([]*markup.Node, 0, len(labels))
	for _, label := range labels {
		nodes = append(nodes, markup.Text(label))
	}
	return nodes, nil
}
