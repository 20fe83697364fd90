package extract

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/smsledger/internal/scan"
)

var (
	// a/c XX1234 / A/c no.XX1234 / card ending with 9876 / Card XX1823
	accountRe = regexp.MustCompile(`(?i)\b(?:a/c|acct|account|card|ending)(?:\s+(?:no\.?|number|with|ending(?:\s+with)?))*[\s:.#-]*[x*]*\s*([0-9]{3,6})\b`)

	// 31-05-2023 / 16/02/25 / 05.04.2025
	numericDateRe = regexp.MustCompile(`\b([0-9]{1,2})[-/.]([0-9]{1,2})[-/.]([0-9]{4}|[0-9]{2})\b`)

	// 03-Apr-25 / 5 April 2025
	monthDateRe = regexp.MustCompile(`(?i)\b([0-9]{1,2})[-\s]?(jan|feb|mar|apr|may|jun|jul|aug|sep|oct|nov|dec)[a-z]*[-\s,]*([0-9]{4}|[0-9]{2})\b`)

	// April 5, 2025 / Apr 5 2025
	longDateRe = regexp.MustCompile(`(?i)\b(jan|feb|mar|apr|may|jun|jul|aug|sep|oct|nov|dec)[a-z]*\.?\s+([0-9]{1,2})(?:st|nd|rd|th)?,?\s+([0-9]{4})\b`)

	// 2023-07-15
	isoDateRe = regexp.MustCompile(`\b([0-9]{4})-([0-9]{2})-([0-9]{2})\b`)

	balanceRes = []*regexp.Regexp{
		// Available balance: Rs.12,345.67 / Avl Bal INR 500 / closing balance as of today is Rs.45,000
		regexp.MustCompile(`(?i)\b(?:avl|available|closing|current|clear|ledger|total)\.?\s*bal(?:ance)?\b(?:[^0-9]{0,30}?(?:\brs\.?|\binr|₹)\s*|\s*[:\-]\s*)([0-9][0-9,]*(?:\.[0-9]+)?)`),
		// A/c balance is INR 2,000
		regexp.MustCompile(`(?i)\b(?:a/c|account)\s+bal(?:ance)?\b(?:[^0-9]{0,30}?(?:\brs\.?|\binr|₹)\s*|\s*[:\-]\s*)([0-9][0-9,]*(?:\.[0-9]+)?)`),
		// Bal: Rs 1,000 / balance is INR 300
		regexp.MustCompile(`(?i)\bbal(?:ance)?\s*(?:is|:|-|of)?\s*(?:\brs\.?|\binr|₹)\s*([0-9][0-9,]*(?:\.[0-9]+)?)`),
		// Rs.45,000 is your available balance
		regexp.MustCompile(`(?i)(?:\brs\.?|\binr|₹)\s*([0-9][0-9,]*(?:\.[0-9]+)?)\s+(?:is\s+(?:your\s+)?)?(?:avl|available|closing|current)\.?\s*bal`),
	}
)

var months = map[string]time.Month{
	"jan": time.January, "feb": time.February, "mar": time.March, "apr": time.April,
	"may": time.May, "jun": time.June, "jul": time.July, "aug": time.August,
	"sep": time.September, "oct": time.October, "nov": time.November, "dec": time.December,
}

// Account returns the masked account reference: four digits become
// "xxxx1234", other lengths are returned as captured.
func Account(text string) string {
	m := accountRe.FindStringSubmatch(text)
	if m == nil {
		return ""
	}
	if len(m[1]) == 4 {
		return "xxxx" + m[1]
	}
	return m[1]
}

// Date returns the first valid calendar date in text, trying each format in
// turn. Invalid day/month combinations are skipped.
func Date(text string) *time.Time {
	for _, m := range numericDateRe.FindAllStringSubmatch(text, -1) {
		if d, ok := makeDate(m[3], atoi(m[2]), m[1]); ok {
			return &d
		}
	}
	for _, m := range monthDateRe.FindAllStringSubmatch(text, -1) {
		if d, ok := makeDate(m[3], int(months[strings.ToLower(m[2])]), m[1]); ok {
			return &d
		}
	}
	for _, m := range longDateRe.FindAllStringSubmatch(text, -1) {
		if d, ok := makeDate(m[3], int(months[strings.ToLower(m[1])]), m[2]); ok {
			return &d
		}
	}
	for _, m := range isoDateRe.FindAllStringSubmatch(text, -1) {
		if d, ok := makeDate(m[1], atoi(m[2]), m[3]); ok {
			return &d
		}
	}
	return nil
}

func makeDate(year string, month int, day string) (time.Time, bool) {
	y := atoi(year)
	if len(year) == 2 {
		if y > 50 {
			y += 1900
		} else {
			y += 2000
		}
	}
	dd := atoi(day)
	if month < 1 || month > 12 || dd < 1 {
		return time.Time{}, false
	}
	d := time.Date(y, time.Month(month), dd, 0, 0, 0, 0, time.UTC)
	if d.Day() != dd || int(d.Month()) != month {
		return time.Time{}, false
	}
	return d, true
}

func atoi(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return n
}

// Balance returns the account balance reported in text.
func Balance(text string) decimal.NullDecimal {
	for _, re := range balanceRes {
		m := re.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		if v, ok := scan.ParseAmount(m[1]); ok {
			return decimal.NewNullDecimal(v)
		}
	}
	return decimal.NullDecimal{}
}
