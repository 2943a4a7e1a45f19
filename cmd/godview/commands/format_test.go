package commands

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/perfhelf/FXview/internal/engine"
)

func TestParseSymbols(t *testing.T) {
	assert.Nil(t, parseSymbols(""))
	assert.Equal(t, []string{"AUD", "EUR", "XAU"}, parseSymbols(" aud, EUR,,xau "))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "abcdefg...", truncate("abcdefghijklmno", 10))
}

func TestFormatTime(t *testing.T) {
	assert.Equal(t, "-", formatTime(nil))
	ts := time.Date(2024, 6, 7, 22, 30, 0, 0, time.UTC)
	assert.Equal(t, "2024-06-07 22:30:00", formatTime(&ts))
}

func TestPrintRunSummary(t *testing.T) {
	var buf bytes.Buffer
	res := &engine.RunResult{
		Skipped: map[string]engine.SkipReason{
			"XAG": engine.SkipInsufficientBars,
			"BRL": engine.SkipMissingComponents,
		},
	}
	PrintRunSummary(&buf, res, map[string]error{"USDBRL=X": errors.New("no data")})

	out := buf.String()
	assert.Contains(t, out, "Snapshots : 0")
	assert.Contains(t, out, "Skipped   : 2")
	assert.Less(t, strings.Index(out, "BRL"), strings.Index(out, "XAG"))
	assert.Contains(t, out, "USDBRL=X")
}

func TestPrintTableHeader(t *testing.T) {
	var buf bytes.Buffer
	PrintTableHeader(&buf, []string{"A", "B"}, []int{3, 4})

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	assert.Equal(t, "A    B   ", lines[0])
	assert.Equal(t, strings.Repeat("─", 9), lines[1])
}
