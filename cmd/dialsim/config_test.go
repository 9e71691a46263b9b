package main

import (
	"log/slog"
	"strings"
	"testing"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phanxgames/dial"
)

func TestLoadSimConfigDefaults(t *testing.T) {
	v := viper.New()
	setDefaults(v)

	c, err := loadSimConfig(v)
	require.NoError(t, err)
	assert.Equal(t, defaultSimConfig(), c)

	cfg, err := c.sessionConfig(slog.Default())
	require.NoError(t, err)
	assert.Equal(t, dial.AnchorTwoFinger, cfg.Detector.Mode)
	assert.Equal(t, 40, cfg.IntroFPS)
	assert.Equal(t, 250, cfg.IntroDurationMs)
	assert.Equal(t, 300, cfg.OutroDurationMs)
	assert.NotNil(t, cfg.IntroEase)
	assert.NotNil(t, cfg.OutroEase)
	assert.Nil(t, cfg.Clock)
}

func TestLoadSimConfigYAML(t *testing.T) {
	v := viper.New()
	setDefaults(v)
	v.SetConfigType("yaml")
	require.NoError(t, v.ReadConfig(strings.NewReader(`
anchor: single
intro-ms: 400
outro-ease: linear
full-invalidation: true
`)))

	c, err := loadSimConfig(v)
	require.NoError(t, err)
	assert.Equal(t, "single", c.Anchor)
	assert.Equal(t, 400, c.IntroMs)
	assert.Equal(t, defaultSimConfig().IntroFPS, c.IntroFPS)
	assert.True(t, c.FullInvalidation)

	cfg, err := c.sessionConfig(nil)
	require.NoError(t, err)
	assert.Equal(t, dial.AnchorSingle, cfg.Detector.Mode)
	assert.InDelta(t, 0.5, cfg.OutroEase(0.5), 1e-6)
}

func TestSessionConfigErrors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*simConfig)
	}{
		{"bad anchor", func(c *simConfig) { c.Anchor = "three-finger" }},
		{"bad intro ease", func(c *simConfig) { c.IntroEase = "wobble" }},
		{"bad outro ease", func(c *simConfig) { c.OutroEase = "wobble" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := defaultSimConfig()
			tt.mutate(&c)
			_, err := c.sessionConfig(nil)
			assert.ErrorIs(t, err, dial.ErrInvalidArgument)
		})
	}
}

func TestParseAnchor(t *testing.T) {
	for in, want := range map[string]dial.AnchorMode{
		"":           dial.AnchorTwoFinger,
		"two-finger": dial.AnchorTwoFinger,
		" Single ":   dial.AnchorSingle,
	} {
		got, err := parseAnchor(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
}

func TestSessionFlagsOverride(t *testing.T) {
	fs := pflag.NewFlagSet("dialsim", pflag.ContinueOnError)
	registerSessionFlags(fs)
	require.NoError(t, fs.Parse([]string{"--anchor=single", "--outro-ms=500", "--debug"}))

	v := viper.New()
	require.NoError(t, v.BindPFlags(fs))

	c, err := loadSimConfig(v)
	require.NoError(t, err)
	assert.Equal(t, "single", c.Anchor)
	assert.Equal(t, 500, c.OutroMs)
	assert.True(t, c.Debug)
	assert.Equal(t, defaultSimConfig().IntroEase, c.IntroEase)
}
