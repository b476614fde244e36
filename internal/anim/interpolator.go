// Package anim drives ticker animations: it turns wall-clock time into an
// eased progress value in [0, 1].
package anim

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"
)

// ErrUnknownInterpolator indicates an interpolator name with no registered
// curve.
var ErrUnknownInterpolator = errors.New("unknown interpolator")

// Interpolator maps linear progress t in [0, 1] to eased progress. It must
// return 0 for t=0 and 1 for t=1.
type Interpolator func(t float64) float64

// Linear returns t unchanged.
func Linear(t float64) float64 {
	return t
}

// AccelerateDecelerate starts and ends slowly, fastest in the middle.
func AccelerateDecelerate(t float64) float64 {
	return math.Cos((t+1)*math.Pi)/2 + 0.5
}

// Decelerate starts fast and slows toward the end.
func Decelerate(t float64) float64 {
	return 1 - (1-t)*(1-t)
}

var interpolators = map[string]Interpolator{
	"linear":                Linear,
	"accelerate-decelerate": AccelerateDecelerate,
	"decelerate":            Decelerate,
}

// ParseInterpolator looks up an interpolator by name. Names are case
// insensitive and underscores may stand in for hyphens.
func ParseInterpolator(name string) (Interpolator, error) {
	key := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), "_", "-")
	if f, ok := interpolators[key]; ok {
		return f, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownInterpolator, name)
}

// InterpolatorNames returns the registered names in sorted order.
func InterpolatorNames() []string {
	names := make([]string, 0, len(interpolators))
	for name := range interpolators {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
