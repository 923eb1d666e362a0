package rate

import (
	"fmt"
	"math"
	"slices"
	"time"

	"github.com/Lednacek-Dev/converter/internal/domain"
)

// aggregateWeekly folds daily quotations into one synthetic record per
// week: the week's latest date, the mean rate rounded to 4 decimal
// places and the amount of the week's first row. Country and currency
// name are copied from the first record of the whole window — they are
// constant for a single currency. Weeks come out ascending.
func aggregateWeekly(rates []domain.Rate) []domain.Rate {
	groups := make(map[string][]domain.Rate)
	keys := make([]string, 0, len(rates)/5+1)
	for _, rt := range rates {
		key := weekKey(rt.Date)
		if _, ok := groups[key]; !ok {
			keys = append(keys, key)
		}
		groups[key] = append(groups[key], rt)
	}
	slices.Sort(keys)

	out := make([]domain.Rate, 0, len(keys))
	for _, key := range keys {
		group := groups[key]

		sum := 0.0
		last := group[0].Date
		for _, rt := range group {
			sum += rt.Value
			if rt.Date > last { // ISO dates sort lexicographically
				last = rt.Date
			}
		}

		out = append(out, domain.Rate{
			Date:         last,
			CurrencyCode: group[0].CurrencyCode,
			Country:      rates[0].Country,
			CurrencyName: rates[0].CurrencyName,
			Amount:       group[0].Amount,
			Value:        math.Round(sum/float64(len(group))*10000) / 10000,
		})
	}
	return out
}

// weekKey labels a date with its year and week number, weeks running
// Sunday through Saturday relative to the year's first day.
func weekKey(date string) string {
	d, err := time.Parse(dateLayout, date)
	if err != nil {
		return date
	}
	startWeekday := int(time.Date(d.Year(), time.January, 1, 0, 0, 0, 0, time.UTC).Weekday())
	week := (d.YearDay() + startWeekday + 6) / 7
	return fmt.Sprintf("%d-W%02d", d.Year(), week)
}
