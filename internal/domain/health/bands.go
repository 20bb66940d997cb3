package health

// band pairs an inclusive lower bound with the value that applies from it up
// to the next band. Tables are ordered by descending lower bound.
type band[T any] struct {
	min   float64
	value T
}

func lookup[T any](table []band[T], health float64, fallback T) T {
	for _, b := range table {
		if health >= b.min {
			return b.value
		}
	}
	return fallback
}
