// Package scoring turns category report inputs into raw and workload-adjusted scores.
//
// Scorers never fail: malformed list entries and zero divisors contribute nothing.
// Inputs are expected to pass validation before they get here.
package scoring

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

const (
	listSeparator = ";"
	zeroPairs     = "0"
)

// Round2 rounds half to even at two decimal places. Every stored score goes through it.
func Round2(v float64) float64 {
	return math.RoundToEven(v*100) / 100
}

// Multiply sums rate × v over a ";" separated list. Blank or unparsable entries count as 0.
func Multiply(rate float64, list string) float64 {
	var sum float64
	for _, raw := range strings.Split(list, listSeparator) {
		v, err := parseNumber(raw)
		if err != nil {
			continue
		}
		sum += rate * v
	}
	return sum
}

// MultiplyComplex sums c × V × K over a "V(K);V(K)" list. The literal "0" scores 0 without parsing.
func MultiplyComplex(c float64, pairs string) float64 {
	if pairs == zeroPairs {
		return 0
	}
	var sum float64
	for _, raw := range strings.Split(pairs, listSeparator) {
		v, k, err := parsePair(raw)
		if err != nil {
			continue
		}
		sum += c * v * k
	}
	return sum
}

// Divide sums rate / v over a ";" separated list; zero entries contribute 0.
func Divide(rate float64, list string) float64 {
	var sum float64
	for _, raw := range strings.Split(list, listSeparator) {
		v, err := parseNumber(raw)
		if err != nil || v == 0 {
			continue
		}
		sum += rate / v
	}
	return sum
}

// LoadRatio scores teaching load against the period's reference workload.
func LoadRatio(auditory, total, foreign, workload float64) float64 {
	if workload == 0 {
		return 0
	}
	return 600*(auditory/workload) + 250*((total-auditory)/workload) + 600*(foreign/workload)
}

// Lookup maps an enum value through a fixed rate table; unmapped keys score 0.
func Lookup[K comparable](table map[K]float64, key K) float64 {
	return table[key]
}

// Flag returns bonus when set.
func Flag(set bool, bonus float64) float64 {
	if set {
		return bonus
	}
	return 0
}

// PerShare divides v by the assignment share, scoring 0 for a zero share.
func PerShare(v, share float64) float64 {
	if share == 0 {
		return 0
	}
	return v / share
}

// ParseFloatList strictly parses a ";" separated list of non-negative numbers.
// An empty string is an empty list.
func ParseFloatList(list string) ([]float64, error) {
	if strings.TrimSpace(list) == "" {
		return nil, nil
	}
	parts := strings.Split(list, listSeparator)
	out := make([]float64, 0, len(parts))
	for _, raw := range parts {
		v, err := parseNumber(raw)
		if err != nil {
			return nil, err
		}
		if v < 0 {
			return nil, fmt.Errorf("negative value %q", raw)
		}
		out = append(out, v)
	}
	return out, nil
}

// ParseIntList strictly parses a ";" separated list of non-negative integers.
func ParseIntList(list string) ([]int, error) {
	if strings.TrimSpace(list) == "" {
		return nil, nil
	}
	parts := strings.Split(list, listSeparator)
	out := make([]int, 0, len(parts))
	for _, raw := range parts {
		v, err := strconv.Atoi(strings.TrimSpace(raw))
		if err != nil {
			return nil, fmt.Errorf("invalid integer %q", raw)
		}
		if v < 0 {
			return nil, fmt.Errorf("negative value %q", raw)
		}
		out = append(out, v)
	}
	return out, nil
}

// Pair is one value/weight entry of a weighted list.
type Pair struct {
	Value  float64
	Weight float64
}

// ParsePairs strictly parses a "V(K);V(K)" list. "0" and "" are empty lists.
func ParsePairs(pairs string) ([]Pair, error) {
	trimmed := strings.TrimSpace(pairs)
	if trimmed == "" || trimmed == zeroPairs {
		return nil, nil
	}
	parts := strings.Split(trimmed, listSeparator)
	out := make([]Pair, 0, len(parts))
	for _, raw := range parts {
		v, k, err := parsePair(raw)
		if err != nil {
			return nil, err
		}
		if v < 0 || k < 0 {
			return nil, fmt.Errorf("negative value in %q", raw)
		}
		out = append(out, Pair{Value: v, Weight: k})
	}
	return out, nil
}

var errBlank = errors.New("blank entry")

func parseNumber(raw string) (float64, error) {
	s := strings.TrimSpace(strings.ReplaceAll(raw, ",", "."))
	if s == "" {
		return 0, errBlank
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid number %q", raw)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("invalid number %q", raw)
	}
	return v, nil
}

func parsePair(raw string) (float64, float64, error) {
	s := strings.TrimSpace(raw)
	open := strings.Index(s, "(")
	if open <= 0 || !strings.HasSuffix(s, ")") || strings.Count(s, "(") != 1 || strings.Count(s, ")") != 1 {
		return 0, 0, fmt.Errorf("invalid pair %q", raw)
	}
	v, err := parseNumber(s[:open])
	if err != nil {
		return 0, 0, fmt.Errorf("invalid pair %q", raw)
	}
	k, err := parseNumber(s[open+1 : len(s)-1])
	if err != nil {
		return 0, 0, fmt.Errorf("invalid pair %q", raw)
	}
	return v, k, nil
}
