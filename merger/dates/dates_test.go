package dates

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/royalket/demo-file-merger/merger/models"
)

func TestParseString(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want time.Time
	}{
		{"slash month first", "03/15/2020", time.Date(2020, 3, 15, 0, 0, 0, 0, time.UTC)},
		{"hyphen month first", "03-15-2020", time.Date(2020, 3, 15, 0, 0, 0, 0, time.UTC)},
		{"iso", "2020-03-15", time.Date(2020, 3, 15, 0, 0, 0, 0, time.UTC)},
		{"slash day first when month impossible", "25/03/2020", time.Date(2020, 3, 25, 0, 0, 0, 0, time.UTC)},
		{"iso with time", "2020-03-15 13:45:00", time.Date(2020, 3, 15, 13, 45, 0, 0, time.UTC)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseString(tt.in)
			require.True(t, ok)
			assert.True(t, tt.want.Equal(got), "got %v", got)
		})
	}
}

// Ambiguous slash dates always parse month-first because of layout order.
// 05/01/2020 is May 1st, never January 5th.
func TestParseStringAmbiguousSlash(t *testing.T) {
	got, ok := ParseString("05/01/2020")
	require.True(t, ok)
	assert.Equal(t, time.Month(5), got.Month())
	assert.Equal(t, 1, got.Day())
}

func TestParseStringFallback(t *testing.T) {
	// Not in the literal layout list, handled by the permissive parser
	got, ok := ParseString("2020/03/15")
	require.True(t, ok)
	assert.Equal(t, 2020, got.Year())
	assert.Equal(t, time.March, got.Month())
}

func TestParseStringUnparseable(t *testing.T) {
	for _, in := range []string{"not a date", "pending"} {
		_, ok := ParseString(in)
		assert.False(t, ok, in)
	}
}

func TestParseMissing(t *testing.T) {
	_, ok := Parse(models.None)
	assert.False(t, ok)
}

func TestFormat(t *testing.T) {
	d := time.Date(2020, 3, 5, 0, 0, 0, 0, time.UTC)
	tests := []struct {
		spec string
		want string
	}{
		{FormatISO, "2020-03-05"},
		{FormatUS, "03/05/2020"},
		{FormatEU, "05/03/2020"},
		{"bogus-spec", "2020-03-05"},
	}
	for _, tt := range tests {
		t.Run(tt.spec, func(t *testing.T) {
			assert.Equal(t, tt.want, Format(d, tt.spec))
		})
	}
}

// Formatting a parsed date and re-parsing it under the same spec must
// yield the same calendar date.
func TestFormatRoundTrip(t *testing.T) {
	for _, spec := range []string{FormatISO, FormatUS, FormatEU} {
		t.Run(spec, func(t *testing.T) {
			orig, ok := ParseString("2019-12-31")
			require.True(t, ok)

			formatted := Format(orig, spec)
			reparsed, ok := ParseString(formatted)
			require.True(t, ok)
			if spec == FormatEU {
				// 31 cannot be a month, so the day-first layout catches it
				require.Equal(t, "31/12/2019", formatted)
			}
			assert.Equal(t, orig.Year(), reparsed.Year())
			assert.Equal(t, orig.Month(), reparsed.Month())
			assert.Equal(t, orig.Day(), reparsed.Day())
		})
	}
}

func TestFormatValue(t *testing.T) {
	tests := []struct {
		name string
		in   models.Scalar
		want string
	}{
		{"parseable", models.String("03/15/2020"), "2020-03-15"},
		{"unparseable passes through", models.String("TBD"), "TBD"},
		{"empty string", models.String(""), ""},
		{"missing", models.None, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatValue(tt.in, FormatISO))
		})
	}
}

func TestAgeInYears(t *testing.T) {
	// 10957 days between, 10957 / 365 = 30
	age, ok := AgeInYears(models.String("1990-01-01"), models.String("2020-01-01"))
	assert.True(t, ok)
	assert.Equal(t, 30, age)
}

func TestAgeInYearsUnresolved(t *testing.T) {
	tests := []struct {
		name    string
		dob     models.Scalar
		service models.Scalar
	}{
		{"service before dob", models.String("2020-01-01"), models.String("1990-01-01")},
		{"service one day before dob", models.String("2020-01-02"), models.String("2020-01-01")},
		{"missing dob", models.None, models.String("2020-01-01")},
		{"empty dob", models.String(""), models.String("2020-01-01")},
		{"missing service date", models.String("1990-01-01"), models.None},
		{"unparseable dob", models.String("unknown"), models.String("2020-01-01")},
		{"unparseable service date", models.String("1990-01-01"), models.String("unknown")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, ok := AgeInYears(tt.dob, tt.service)
			assert.False(t, ok)
		})
	}
}

func TestAgeInYearsMixedFormats(t *testing.T) {
	age, ok := AgeInYears(models.String("01/01/1990"), models.String("2020-06-30"))
	assert.True(t, ok)
	assert.Equal(t, 30, age)
}
