package models

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// ErrInvalidPrice is returned when rendered price text cannot be parsed
var ErrInvalidPrice = errors.New("invalid price text")

// Price is an amount in øre as rendered by the webshop
type Price int64

// ParsePrice parses Norwegian formatted currency text like "1.280,50 kr".
// Thousands dots are dropped and the decimal comma becomes a point.
func ParsePrice(text string) (Price, error) {
	s := strings.TrimSpace(text)
	s = strings.TrimSuffix(s, "kr")
	s = strings.TrimPrefix(s, "kr")
	s = strings.Map(func(r rune) rune {
		switch r {
		case ' ', '\u00a0', '\u202f', '\t', '\n', '.':
			return -1
		}
		return r
	}, s)
	if s == "" {
		return 0, fmt.Errorf("%w: %q", ErrInvalidPrice, text)
	}

	neg := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")
	whole, frac, hasFrac := strings.Cut(s, ",")
	if whole == "" || strings.Contains(frac, ",") {
		return 0, fmt.Errorf("%w: %q", ErrInvalidPrice, text)
	}
	kroner, err := strconv.ParseInt(whole, 10, 64)
	if err != nil || kroner < 0 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidPrice, text)
	}

	var ore int64
	if hasFrac {
		switch len(frac) {
		case 1:
			frac += "0"
		case 2:
		default:
			return 0, fmt.Errorf("%w: %q", ErrInvalidPrice, text)
		}
		ore, err = strconv.ParseInt(frac, 10, 64)
		if err != nil || ore < 0 {
			return 0, fmt.Errorf("%w: %q", ErrInvalidPrice, text)
		}
	}
	total := kroner*100 + ore
	if neg {
		total = -total
	}
	return Price(total), nil
}

// Thousands are grouped in threes by a dot or a non-breaking space. A plain
// space separates words, as in "Antall 10 400,00 kr".
var (
	decimalAmount = regexp.MustCompile(`-?(?:\d{1,3}(?:[.\x{00a0}\x{202f}]\d{3})+|\d+),\d{1,2}`)
	wholeAmount   = regexp.MustCompile(`-?(?:\d{1,3}(?:[.\x{00a0}\x{202f}]\d{3})+|\d+)`)
)

// ExtractPrice finds the first amount in a longer text such as "Totalt 400,00 kr"
func ExtractPrice(text string) (Price, error) {
	if m := decimalAmount.FindString(text); m != "" {
		return ParsePrice(m)
	}
	if m := wholeAmount.FindString(text); m != "" {
		return ParsePrice(m)
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidPrice, text)
}

// Kroner returns the price as a decimal number
func (p Price) Kroner() float64 {
	return float64(p) / 100
}

// Whole returns the kroner part, which is what the scenarios compare offers on
func (p Price) Whole() int64 {
	return int64(p) / 100
}

// String formats the price the way the webshop renders it
func (p Price) String() string {
	neg := p < 0
	if neg {
		p = -p
	}
	whole := strconv.FormatInt(p.Whole(), 10)

	var b strings.Builder
	for i, r := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(r)
	}
	ore := int64(p) % 100
	sign := ""
	if neg {
		sign = "-"
	}
	return fmt.Sprintf("%s%s,%02d kr", sign, b.String(), ore)
}
