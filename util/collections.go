package util

import (
	"cmp"
	"slices"
)

// Keys returns the keys of a map.
func Keys[K comparable, V any](m map[K]V) []K {
	keys := make([]K, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	return keys
}

// SortedKeys returns the keys of a map in ascending order.
func SortedKeys[K cmp.Ordered, V any](m map[K]V) []K {
	keys := Keys(m)
	slices.Sort(keys)
	return keys
}

// CountBy tallies slice elements by the key returned from fn.
func CountBy[T any, K comparable](slice []T, fn func(T) K) map[K]int {
	counts := make(map[K]int)
	for _, item := range slice {
		counts[fn(item)]++
	}
	return counts
}

// Coalesce returns the first non-zero value, or the zero value if all are zero.
func Coalesce[T comparable](values ...T) T {
	var zero T
	for _, v := range values {
		if v != zero {
			return v
		}
	}
	return zero
}
