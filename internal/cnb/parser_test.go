package cnb

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

const sampleFeed = `15 Dec 2024 #242
Country|Currency|Amount|Code|Rate
Australia|dollar|1|AUD|14.821
EMU|euro|1|EUR|25.500
Japan|yen|100|JPY|15.361
`

func TestParse_WellFormedFeed(t *testing.T) {
	feed, err := Parse(sampleFeed)
	require.NoError(t, err)
	require.Equal(t, "2024-12-15", feed.Date)
	require.Len(t, feed.Rates, 3)

	// Row order follows the feed.
	require.Equal(t, "AUD", feed.Rates[0].CurrencyCode)
	require.Equal(t, "EUR", feed.Rates[1].CurrencyCode)
	require.Equal(t, "JPY", feed.Rates[2].CurrencyCode)

	require.Equal(t, "EMU", feed.Rates[1].Country)
	require.Equal(t, "euro", feed.Rates[1].CurrencyName)
	require.Equal(t, 1, feed.Rates[1].Amount)
	require.InDelta(t, 25.5, feed.Rates[1].Value, 1e-9)

	require.Equal(t, "Japan", feed.Rates[2].Country)
	require.Equal(t, 100, feed.Rates[2].Amount)
	require.InDelta(t, 15.361, feed.Rates[2].Value, 1e-9)
}

func TestParse_AllMonthAbbreviations(t *testing.T) {
	cases := []struct {
		month string
		want  string
	}{
		{"Jan", "01"}, {"Feb", "02"}, {"Mar", "03"}, {"Apr", "04"},
		{"May", "05"}, {"Jun", "06"}, {"Jul", "07"}, {"Aug", "08"},
		{"Sep", "09"}, {"Oct", "10"}, {"Nov", "11"}, {"Dec", "12"},
	}

	for _, tc := range cases {
		t.Run(tc.month, func(t *testing.T) {
			text := fmt.Sprintf("15 %s 2024 #100\nCountry|Currency|Amount|Code|Rate\n", tc.month)
			feed, err := Parse(text)
			require.NoError(t, err)
			require.Equal(t, "2024-"+tc.want+"-15", feed.Date)
		})
	}
}

func TestParse_SingleDigitDayIsZeroPadded(t *testing.T) {
	feed, err := Parse("3 Jan 2025 #2\nCountry|Currency|Amount|Code|Rate\n")
	require.NoError(t, err)
	require.Equal(t, "2025-01-03", feed.Date)
}

func TestParse_CommaDecimalSeparator(t *testing.T) {
	commaFeed, err := Parse("15 Dec 2024 #242\nCountry|Currency|Amount|Code|Rate\nEMU|euro|1|EUR|23,456\n")
	require.NoError(t, err)

	dotFeed, err := Parse("15 Dec 2024 #242\nCountry|Currency|Amount|Code|Rate\nEMU|euro|1|EUR|23.456\n")
	require.NoError(t, err)

	require.Len(t, commaFeed.Rates, 1)
	require.Len(t, dotFeed.Rates, 1)
	require.Equal(t, dotFeed.Rates[0].Value, commaFeed.Rates[0].Value)
	require.InDelta(t, 23.456, commaFeed.Rates[0].Value, 1e-9)
}

func TestParse_MalformedLinesAreSkipped(t *testing.T) {
	text := `15 Dec 2024 #242
Country|Currency|Amount|Code|Rate
Australia|dollar|1|AUD|14.821
this line has no pipes at all
EMU|euro|1|EUR|25.500
`
	feed, err := Parse(text)
	require.NoError(t, err)
	require.Len(t, feed.Rates, 2)
	require.Equal(t, "AUD", feed.Rates[0].CurrencyCode)
	require.Equal(t, "EUR", feed.Rates[1].CurrencyCode)
}

func TestParse_NonNumericFieldsAreSkipped(t *testing.T) {
	cases := []struct {
		name string
		line string
	}{
		{name: "bad amount", line: "EMU|euro|one|EUR|25.500"},
		{name: "bad rate", line: "EMU|euro|1|EUR|not-a-number"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			text := "15 Dec 2024 #242\nCountry|Currency|Amount|Code|Rate\n" +
				"Australia|dollar|1|AUD|14.821\n" + tc.line + "\n"
			feed, err := Parse(text)
			require.NoError(t, err)
			require.Len(t, feed.Rates, 1)
			require.Equal(t, "AUD", feed.Rates[0].CurrencyCode)
		})
	}
}

func TestParse_BlankLinesAreIgnored(t *testing.T) {
	text := "15 Dec 2024 #242\nCountry|Currency|Amount|Code|Rate\n\nEMU|euro|1|EUR|25.500\n\n"
	feed, err := Parse(text)
	require.NoError(t, err)
	require.Len(t, feed.Rates, 1)
}

func TestParse_UnknownMonth(t *testing.T) {
	_, err := Parse("15 Zzz 2024 #242\nCountry|Currency|Amount|Code|Rate\n")
	require.Error(t, err)

	var parseErr *ParseError
	require.True(t, errors.As(err, &parseErr))
	require.Contains(t, parseErr.Error(), "Zzz")
}

func TestParse_HeaderWithoutDate(t *testing.T) {
	_, err := Parse("totally not a date line\nCountry|Currency|Amount|Code|Rate\n")
	require.Error(t, err)

	var parseErr *ParseError
	require.True(t, errors.As(err, &parseErr))
}

func TestParse_EmptyInput(t *testing.T) {
	_, err := Parse("")
	var parseErr *ParseError
	require.True(t, errors.As(err, &parseErr))
}

func TestParse_HeaderOnly(t *testing.T) {
	feed, err := Parse("15 Dec 2024 #242\nCountry|Currency|Amount|Code|Rate")
	require.NoError(t, err)
	require.Equal(t, "2024-12-15", feed.Date)
	require.Empty(t, feed.Rates)
}
