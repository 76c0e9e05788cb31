package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

const (
	testDefaultRtol = 2e-4
	testDefaultAtol = 1e-4
	testOverride    = 5e-2
)

func TestEnvBool_TokenSet(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  bool
	}{
		{"one", "1", true},
		{"true_lower", "true", true},
		{"true_upper", "TRUE", true},
		{"yes", "yes", true},
		{"on", "On", true},
		{"zero", "0", false},
		{"false", "false", false},
		{"garbage", "definitely", false},
		{"empty", "", false},
		{"padded_true", "  true ", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(EnvVerbose, tt.value)
			assert.Equal(t, tt.want, EnvBool(EnvVerbose, false))
		})
	}
}

func TestEnvBool_AbsentUsesDefault(t *testing.T) {
	assert.True(t, EnvBool("VV_DSP_NO_SUCH_VAR", true))
	assert.False(t, EnvBool("VV_DSP_NO_SUCH_VAR", false))
}

func TestEnvFloat(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  float64
	}{
		{"plain", "0.25", 0.25},
		{"scientific", "3e-3", 3e-3},
		{"padded", " 1.5 ", 1.5},
		{"malformed", "not-a-number", testDefaultRtol},
		{"empty", "", testDefaultRtol},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(EnvRtol, tt.value)
			assert.Equal(t, tt.want, EnvFloat(EnvRtol, testDefaultRtol))
		})
	}
}

func TestSettings_Tolerances(t *testing.T) {
	t.Run("defaults_when_env_unset", func(t *testing.T) {
		s := Settings{}
		rtol, atol := s.Tolerances(testDefaultRtol, testDefaultAtol)
		assert.Equal(t, testDefaultRtol, rtol)
		assert.Equal(t, testDefaultAtol, atol)
	})

	t.Run("env_overrides_win", func(t *testing.T) {
		override := testOverride
		s := Settings{Rtol: &override}
		rtol, atol := s.Tolerances(testDefaultRtol, testDefaultAtol)
		assert.Equal(t, testOverride, rtol)
		assert.Equal(t, testDefaultAtol, atol)
	})
}

func TestLoad(t *testing.T) {
	t.Setenv(EnvRtol, "1e-2")
	t.Setenv(EnvAtol, "bogus")
	t.Setenv(EnvVerbose, "yes")

	s := Load()
	if assert.NotNil(t, s.Rtol) {
		assert.Equal(t, 1e-2, *s.Rtol)
	}
	assert.Nil(t, s.Atol, "unparsable override must fall back to family default")
	assert.True(t, s.Verbose)
}
