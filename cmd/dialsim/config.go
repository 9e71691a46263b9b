package main

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/viper"

	"github.com/phanxgames/dial"
)

// simConfig is the flat, viper-facing form of a dial.SessionConfig.
type simConfig struct {
	Anchor           string  `mapstructure:"anchor"`
	IntroFPS         int     `mapstructure:"intro-fps"`
	IntroMs          int     `mapstructure:"intro-ms"`
	IntroEase        string  `mapstructure:"intro-ease"`
	OutroFPS         int     `mapstructure:"outro-fps"`
	OutroMs          int     `mapstructure:"outro-ms"`
	OutroEase        string  `mapstructure:"outro-ease"`
	FullInvalidation bool    `mapstructure:"full-invalidation"`
	MarkerPad        float64 `mapstructure:"marker-pad"`
	Debug            bool    `mapstructure:"debug"`
}

func defaultSimConfig() simConfig {
	d := dial.DefaultSessionConfig()
	return simConfig{
		Anchor:    dial.AnchorTwoFinger.String(),
		IntroFPS:  d.IntroFPS,
		IntroMs:   d.IntroDurationMs,
		IntroEase: "out-back",
		OutroFPS:  d.OutroFPS,
		OutroMs:   d.OutroDurationMs,
		OutroEase: "in-quad",
		MarkerPad: d.MarkerPad,
	}
}

// setDefaults registers defaultSimConfig with v so Unmarshal works without
// bound flags.
func setDefaults(v *viper.Viper) {
	d := defaultSimConfig()
	v.SetDefault("anchor", d.Anchor)
	v.SetDefault("intro-fps", d.IntroFPS)
	v.SetDefault("intro-ms", d.IntroMs)
	v.SetDefault("intro-ease", d.IntroEase)
	v.SetDefault("outro-fps", d.OutroFPS)
	v.SetDefault("outro-ms", d.OutroMs)
	v.SetDefault("outro-ease", d.OutroEase)
	v.SetDefault("full-invalidation", d.FullInvalidation)
	v.SetDefault("marker-pad", d.MarkerPad)
	v.SetDefault("debug", d.Debug)
}

func loadSimConfig(v *viper.Viper) (simConfig, error) {
	var c simConfig
	if err := v.Unmarshal(&c); err != nil {
		return simConfig{}, fmt.Errorf("load config: %w", err)
	}
	return c, nil
}

func parseAnchor(s string) (dial.AnchorMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", dial.AnchorTwoFinger.String():
		return dial.AnchorTwoFinger, nil
	case dial.AnchorSingle.String():
		return dial.AnchorSingle, nil
	default:
		return 0, fmt.Errorf("anchor %q: %w", s, dial.ErrInvalidArgument)
	}
}

// sessionConfig converts c into a dial.SessionConfig. Clock is left nil so
// the session reads the system clock.
func (c simConfig) sessionConfig(logger *slog.Logger) (dial.SessionConfig, error) {
	mode, err := parseAnchor(c.Anchor)
	if err != nil {
		return dial.SessionConfig{}, err
	}
	intro, err := dial.EaseByName(c.IntroEase)
	if err != nil {
		return dial.SessionConfig{}, fmt.Errorf("intro: %w", err)
	}
	outro, err := dial.EaseByName(c.OutroEase)
	if err != nil {
		return dial.SessionConfig{}, fmt.Errorf("outro: %w", err)
	}
	return dial.SessionConfig{
		Detector:         dial.DetectorConfig{Mode: mode},
		IntroFPS:         c.IntroFPS,
		IntroDurationMs:  c.IntroMs,
		IntroEase:        dial.EaseInterpolator(intro),
		OutroFPS:         c.OutroFPS,
		OutroDurationMs:  c.OutroMs,
		OutroEase:        dial.EaseInterpolator(outro),
		FullInvalidation: c.FullInvalidation,
		MarkerPad:        c.MarkerPad,
		Logger:           logger,
		Debug:            c.Debug,
	}, nil
}

// newSession builds a session from the global viper settings.
func newSession(logger *slog.Logger, driver dial.Driver, mutate func(*dial.SessionConfig)) (*dial.Session, error) {
	c, err := loadSimConfig(viper.GetViper())
	if err != nil {
		return nil, err
	}
	cfg, err := c.sessionConfig(logger)
	if err != nil {
		return nil, err
	}
	if mutate != nil {
		mutate(&cfg)
	}
	return dial.NewSession(cfg, driver)
}

func easeNames() []string {
	return dial.EaseNames()
}
