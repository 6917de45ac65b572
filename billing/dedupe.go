package billing

// Deduplicate removes repeated entries by key, keeping the first occurrence
// and preserving order. Backend listings are not guaranteed to be free of
// duplicate ids, so every list crosses through here before use.
func Deduplicate[T any, K comparable](items []T, key func(T) K) []T {
	seen := make(map[K]struct{}, len(items))
	out := make([]T, 0, len(items))
	for _, item := range items {
		k := key(item)
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, item)
	}
	return out
}
