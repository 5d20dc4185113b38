// Package report computes the console's figures over reconciled record lists.
// Every function here is local and pure: no figure is ever fetched from the
// upstream service.
package report

import "github.com/shopspring/decimal"

// Sum adds value(r) over records
func Sum[T any](records []T, value func(T) decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, r := range records {
		total = total.Add(value(r))
	}
	return total
}

// CountBy counts records per key
func CountBy[T any, K comparable](records []T, key func(T) K) map[K]int {
	counts := make(map[K]int)
	for _, r := range records {
		counts[key(r)]++
	}
	return counts
}

// Filter returns the records keep accepts, in order. The result is never nil.
func Filter[T any](records []T, keep func(T) bool) []T {
	out := make([]T, 0, len(records))
	for _, r := range records {
		if keep(r) {
			out = append(out, r)
		}
	}
	return out
}
