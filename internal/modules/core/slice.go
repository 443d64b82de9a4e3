package core

// Map transforms every element of source with m, preserving order.
func Map[TSource any, TResult any](source []TSource, m func(TSource) TResult) []TResult {
	results := make([]TResult, len(source))
	for i, s := range source {
		results[i] = m(s)
	}
	return results
}
