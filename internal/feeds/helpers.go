package feeds

import "macau-pulse/internal/upstream"

// Local shorthands for the shared extract-with-fallback helpers; every
// adapter leans on these.

func pick(m map[string]any, fallback string, candidates ...string) string {
	return upstream.PickString(m, fallback, candidates...)
}

func pickFloat(m map[string]any, candidates ...string) (float64, bool) {
	return upstream.PickFloat(m, candidates...)
}

func pickInt(m map[string]any, candidates ...string) (int, bool) {
	return upstream.PickInt(m, candidates...)
}
