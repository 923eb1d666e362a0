// Package cnb understands the text format of the CNB daily exchange
// rate fixing (daily.txt).
package cnb

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"
)

// Feed is one parsed daily publication: the date the feed declares as
// its effective date plus the quotation rows in their original order.
type Feed struct {
	Date  string // YYYY-MM-DD
	Rates []RateLine
}

// RateLine is one quotation row of the daily feed.
type RateLine struct {
	Country      string
	CurrencyName string
	Amount       int
	CurrencyCode string
	Value        float64
}

// ParseError reports a feed whose header line could not be understood.
type ParseError struct {
	Line string
	Msg  string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("cnb feed: %s: %q", e.Msg, e.Line)
}

// First line looks like "15 Dec 2024 #242"; the sequence number is ignored.
var dateLineRe = regexp.MustCompile(`(\d{1,2})\s+(\w+)\s+(\d{4})`)

var months = map[string]string{
	"Jan": "01", "Feb": "02", "Mar": "03", "Apr": "04",
	"May": "05", "Jun": "06", "Jul": "07", "Aug": "08",
	"Sep": "09", "Oct": "10", "Nov": "11", "Dec": "12",
}

const fieldsPerLine = 5 // Country|Currency|Amount|Code|Rate

// Parse converts a daily.txt body into a Feed.
//
// The first two lines (publication date and column header) are always
// consumed. Data rows that do not split into exactly five fields are
// dropped silently: the feed occasionally carries trailing notes and
// losing a row beats losing the whole day. Rows whose amount or rate
// does not parse are dropped with a warning. A header that cannot be
// understood is a *ParseError — unlike body rows, the date line is
// structurally required.
func Parse(text string) (Feed, error) {
	lines := strings.Split(strings.TrimSpace(text), "\n")

	header := lines[0]
	m := dateLineRe.FindStringSubmatch(header)
	if m == nil {
		return Feed{}, &ParseError{Line: header, Msg: "failed to parse publication date"}
	}

	month, ok := months[m[2]]
	if !ok {
		return Feed{}, &ParseError{Line: header, Msg: fmt.Sprintf("unknown month %q", m[2])}
	}

	day := m[1]
	if len(day) == 1 {
		day = "0" + day
	}
	feed := Feed{Date: m[3] + "-" + month + "-" + day}

	if len(lines) <= 2 {
		return feed, nil
	}

	for _, line := range lines[2:] {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		parts := strings.Split(line, "|")
		if len(parts) != fieldsPerLine {
			continue
		}

		amount, amountErr := strconv.Atoi(strings.TrimSpace(parts[2]))
		// The feed has used both decimal conventions over time.
		value, valueErr := strconv.ParseFloat(strings.ReplaceAll(strings.TrimSpace(parts[4]), ",", "."), 64)
		if amountErr != nil || valueErr != nil {
			logrus.Warnf("Skipping invalid rate line: %q", line)
			continue
		}

		feed.Rates = append(feed.Rates, RateLine{
			Country:      strings.TrimSpace(parts[0]),
			CurrencyName: strings.TrimSpace(parts[1]),
			Amount:       amount,
			CurrencyCode: strings.TrimSpace(parts[3]),
			Value:        value,
		})
	}

	return feed, nil
}
