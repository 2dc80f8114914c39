package collectionutils

// Associate transforms a slice of items into a map by applying the transform function to each item.
// The transform function returns a key-value pair for each item, which is then added to the resulting map.
func Associate[T any, K comparable, V any](items []T, transform func(T) (K, V)) map[K]V {
	m := make(map[K]V, len(items))
	for _, item := range items {
		k, v := transform(item)
		m[k] = v
	}

	return m
}

// ToSet returns the distinct items as a membership map.
func ToSet[K comparable](items []K) map[K]bool {
	return Associate(items, func(k K) (K, bool) { return k, true })
}

// Distinct keeps the first occurrence of every item, preserving order.
func Distinct[K comparable](items []K) []K {
	seen := make(map[K]bool, len(items))
	result := make([]K, 0, len(items))
	for _, item := range items {
		if seen[item] {
			continue
		}
		seen[item] = true
		result = append(result, item)
	}
	return result
}
