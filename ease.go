package dial

import (
	"fmt"
	"sort"
	"strings"

	"github.com/tanema/gween/ease"
)

// Interpolator maps a linear progress value in (0, 1] to an eased value.
type Interpolator func(t float64) float64

// EaseInterpolator adapts a gween easing function to an Interpolator. The
// easing runs over a unit range (begin 0, change 1, duration 1).
func EaseInterpolator(fn ease.TweenFunc) Interpolator {
	if fn == nil {
		return nil
	}
	return func(t float64) float64 {
		return float64(fn(float32(t), 0, 1, 1))
	}
}

var easings = map[string]ease.TweenFunc{
	"linear":       ease.Linear,
	"in-quad":      ease.InQuad,
	"out-quad":     ease.OutQuad,
	"in-out-quad":  ease.InOutQuad,
	"in-cubic":     ease.InCubic,
	"out-cubic":    ease.OutCubic,
	"in-out-cubic": ease.InOutCubic,
	"in-sine":      ease.InSine,
	"out-sine":     ease.OutSine,
	"in-out-sine":  ease.InOutSine,
	"in-expo":      ease.InExpo,
	"out-expo":     ease.OutExpo,
	"in-back":      ease.InBack,
	"out-back":     ease.OutBack,
	"out-bounce":   ease.OutBounce,
	"out-elastic":  ease.OutElastic,
}

// EaseByName looks up an easing function by its kebab-case name
// ("linear", "out-cubic", "out-back", ...). The empty name selects linear.
func EaseByName(name string) (ease.TweenFunc, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return ease.Linear, nil
	}
	fn, ok := easings[name]
	if !ok {
		return nil, fmt.Errorf("easing %q: %w", name, ErrInvalidArgument)
	}
	return fn, nil
}

// EaseNames returns the names accepted by EaseByName, sorted.
func EaseNames() []string {
	names := make([]string, 0, len(easings))
	for name := range easings {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
