package render

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const report = "# whipcheck report\n\n**1 passed, 1 failed, 0 skipped** in 3s\n\n" +
	"| # | scenario | status | time |\n|---|---|---|---|\n" +
	"| 1 | `not_logged_in/check_menus` | passed | 1.2s |\n" +
	"| 2 | `not_logged_in/click_about_menu` | failed | 1.5s |\n\n" +
	"## failures\n\n### not_logged_in/click_about_menu\n\n```\nheading: expected \"About this app\"\n```\n"

func TestMarkdown(t *testing.T) {
	t.Run("renders report", func(t *testing.T) {
		result, err := Markdown(report, Options{})
		require.NoError(t, err)
		assert.NotEqual(t, report, result)
		assert.Contains(t, result, "whipcheck report")
		assert.Contains(t, result, "not_logged_in/check_menus")
		assert.Contains(t, result, "failed")
		assert.Contains(t, result, "About this app")
		assert.NotContains(t, result, "|---|", "table separator is rendered, not printed")
	})

	t.Run("noColor returns plain content", func(t *testing.T) {
		result, err := Markdown(report, Options{NoColor: true, Width: 40})
		require.NoError(t, err)
		assert.Equal(t, report, result)
	})

	t.Run("empty content", func(t *testing.T) {
		result, err := Markdown("", Options{})
		require.NoError(t, err)
		assert.Empty(t, strings.TrimSpace(result))
	})

	t.Run("wraps to width", func(t *testing.T) {
		long := strings.Repeat("word ", 40)
		result, err := Markdown(long, Options{Width: 30})
		require.NoError(t, err)
		assert.Greater(t, strings.Count(strings.TrimSpace(result), "\n"), 3)
	})
}
