package main

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umputun/whipcheck/pkg/config"
)

func TestApplyOverrides(t *testing.T) {
	base := config.Values{StartURL: "http://cfg/", Email: "cfg@example.com", Password: "cfg", DisplayName: "Cfg",
		Engine: "playwright", Headless: true, TimeoutMs: 5000, ReportFile: "cfg.yaml"}

	t.Run("empty opts keep config", func(t *testing.T) {
		cfg := &config.Config{Values: base}
		applyOverrides(cfg, opts{})
		assert.Equal(t, base, cfg.Values)
	})

	t.Run("flags win", func(t *testing.T) {
		cfg := &config.Config{Values: base}
		applyOverrides(cfg, opts{URL: "http://flag/", Email: "f@example.com", Password: "f", DisplayName: "Flag",
			Engine: "chromedp", Timeout: 1500 * time.Millisecond, Headed: true, Report: "out.yaml"})
		assert.Equal(t, "http://flag/", cfg.StartURL)
		assert.Equal(t, "f@example.com", cfg.Email)
		assert.Equal(t, "f", cfg.Password)
		assert.Equal(t, "Flag", cfg.DisplayName)
		assert.Equal(t, "chromedp", cfg.Engine)
		assert.Equal(t, 1500, cfg.TimeoutMs)
		assert.False(t, cfg.Headless)
		assert.Equal(t, "out.yaml", cfg.ReportFile)
	})
}

func TestDriverOptions(t *testing.T) {
	cfg := &config.Config{Values: config.Values{Headless: true, SlowMoMs: 250, TimeoutMs: 1500}}
	o := driverOptions(cfg)
	assert.True(t, o.Headless)
	assert.Equal(t, 250*time.Millisecond, o.SlowMo)
	assert.Equal(t, 1500*time.Millisecond, o.ActionTimeout)
	assert.NotNil(t, o.Log)

	cfg.TimeoutMs = 0
	assert.Equal(t, 5*time.Second, driverOptions(cfg).ActionTimeout, "unset timeout falls back to the poll default")
}

func TestListScenarios(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, listScenarios(&buf, ""))
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 9)
	assert.Contains(t, lines[0], " 1. not_logged_in/check_menus")
	assert.Contains(t, lines[8], " 9. logged_in/add_new_whipbird_then_delete_it")

	buf.Reset()
	require.NoError(t, listScenarios(&buf, "about"))
	assert.Equal(t, 1, strings.Count(buf.String(), "\n"))
	assert.Contains(t, buf.String(), "not_logged_in/click_about_menu")

	require.Error(t, listScenarios(&buf, "(["))
}
