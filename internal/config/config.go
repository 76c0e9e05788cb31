// Package config resolves harness settings from the process environment.
//
// The environment can override the tolerance defaults that each validation
// family supplies, and can enable verbose diagnostics. Settings are resolved
// once at command entry and passed down explicitly; nothing below the CLI
// layer reads the environment.
package config

import (
	"os"
	"strconv"
	"strings"
)

// Environment variable names recognized by the harness.
const (
	// EnvRtol overrides the relative tolerance for all comparisons.
	EnvRtol = "VV_DSP_RTOL"

	// EnvAtol overrides the absolute tolerance for all comparisons.
	EnvAtol = "VV_DSP_ATOL"

	// EnvVerbose enables diagnostic output on comparison failures.
	EnvVerbose = "VV_DSP_VERBOSE"
)

// Settings holds the environment-derived harness configuration.
// The tolerance overrides are nil when the corresponding variable is
// absent or unparsable, in which case family defaults apply.
type Settings struct {
	Rtol    *float64
	Atol    *float64
	Verbose bool
}

// Load reads the harness settings from the environment.
func Load() Settings {
	return Settings{
		Rtol:    envFloatPtr(EnvRtol),
		Atol:    envFloatPtr(EnvAtol),
		Verbose: EnvBool(EnvVerbose, false),
	}
}

// Tolerances resolves the effective tolerance pair for a family given its
// call-site defaults. Environment overrides win when present.
func (s Settings) Tolerances(defRtol, defAtol float64) (rtol, atol float64) {
	rtol, atol = defRtol, defAtol
	if s.Rtol != nil {
		rtol = *s.Rtol
	}
	if s.Atol != nil {
		atol = *s.Atol
	}
	return rtol, atol
}

// EnvFloat returns the named variable parsed as a float, or def when the
// variable is absent or does not parse. It never fails.
func EnvFloat(name string, def float64) float64 {
	v, ok := os.LookupEnv(name)
	if !ok {
		return def
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
	if err != nil {
		return def
	}
	return f
}

// EnvBool returns the named variable parsed as a boolean, or def when the
// variable is absent. The tokens 1, true, yes and on (case-insensitive)
// are truthy; every other value is falsy.
func EnvBool(name string, def bool) bool {
	v, ok := os.LookupEnv(name)
	if !ok {
		return def
	}
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "1", "true", "yes", "on":
		return true
	}
	return false
}

func envFloatPtr(name string) *float64 {
	v, ok := os.LookupEnv(name)
	if !ok {
		return nil
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
	if err != nil {
		return nil
	}
	return &f
}
