// Package stats computes descriptive statistics over a list of numbers.
package stats

import (
	"errors"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	ErrEmptyInput = errors.New("please enter numbers")
	ErrNoNumbers  = errors.New("no valid numbers")
)

// DisplayPlaces is the number of decimals shown for each statistic.
const DisplayPlaces = 4

// Result holds the statistics of one input list.
type Result struct {
	Count    int
	Sum      float64
	Mean     float64
	Median   float64
	Min      float64
	Max      float64
	StdDev   float64
	Variance float64
}

// Field is a named, display-formatted statistic.
type Field struct {
	Name  string
	Value string
}

// Compute parses a comma-separated list and computes its statistics.
// Tokens that are not numbers are skipped.
func Compute(raw string) (Result, error) {
	if strings.TrimSpace(raw) == "" {
		return Result{}, ErrEmptyInput
	}
	nums := Parse(raw)
	if len(nums) == 0 {
		return Result{}, ErrNoNumbers
	}
	sort.Float64s(nums)

	r := Result{
		Count: len(nums),
		Min:   nums[0],
		Max:   nums[len(nums)-1],
		// For even counts this is the upper of the two middle values.
		Median: nums[len(nums)/2],
	}
	for _, n := range nums {
		r.Sum += n
	}
	r.Mean = r.Sum / float64(r.Count)
	for _, n := range nums {
		r.Variance += (n - r.Mean) * (n - r.Mean)
	}
	r.Variance /= float64(r.Count)
	r.StdDev = math.Sqrt(r.Variance)
	return r, nil
}

// Parse splits raw on commas and returns the tokens that start with a number.
func Parse(raw string) []float64 {
	var nums []float64
	for _, tok := range strings.Split(raw, ",") {
		if f, ok := parseLeadingFloat(strings.TrimSpace(tok)); ok {
			nums = append(nums, f)
		}
	}
	return nums
}

// parseLeadingFloat parses the longest prefix of s that is a number,
// so "3kg" reads as 3.
func parseLeadingFloat(s string) (float64, bool) {
	for end := len(s); end > 0; end-- {
		f, err := strconv.ParseFloat(s[:end], 64)
		if err == nil && !math.IsNaN(f) && !math.IsInf(f, 0) {
			return f, true
		}
	}
	return 0, false
}

// Fields returns the statistics in display order, rounded to DisplayPlaces.
func (r Result) Fields() []Field {
	return []Field{
		{"Count", strconv.Itoa(r.Count)},
		{"Sum", fixed(r.Sum)},
		{"Mean", fixed(r.Mean)},
		{"Median", fixed(r.Median)},
		{"Min", fixed(r.Min)},
		{"Max", fixed(r.Max)},
		{"Std Dev", fixed(r.StdDev)},
		{"Variance", fixed(r.Variance)},
	}
}

func fixed(f float64) string {
	return decimal.NewFromFloat(f).StringFixed(DisplayPlaces)
}
