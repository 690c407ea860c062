package logger

import (
	"bytes"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
)

func TestNewWithWriterFollowsGlobalLevel(t *testing.T) {
	prev := log.GetLevel()
	t.Cleanup(func() { log.SetLevel(prev) })

	log.SetLevel(log.WarnLevel)
	var buf bytes.Buffer
	l := NewWithWriter(&buf, "engine")

	l.Info("hidden")
	l.Warn("shown")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "shown")
	assert.Contains(t, out, "engine")
}

func TestParseFormatter(t *testing.T) {
	testCases := []struct {
		name        string
		expected    log.Formatter
		expectError bool
		description string
	}{
		{"", log.TextFormatter, false, "empty defaults to text"},
		{"text", log.TextFormatter, false, "text"},
		{" JSON ", log.JSONFormatter, false, "case and space insensitive"},
		{"logfmt", log.LogfmtFormatter, false, "logfmt"},
		{"xml", log.TextFormatter, true, "unknown format"},
	}

	for _, tc := range testCases {
		t.Run(tc.description, func(t *testing.T) {
			f, err := ParseFormatter(tc.name)
			if tc.expectError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tc.expected, f)
		})
	}
}

func TestSetFormatAppliesToNewLoggers(t *testing.T) {
	prevLevel := log.GetLevel()
	t.Cleanup(func() {
		log.SetLevel(prevLevel)
		_ = SetFormat("text")
	})
	log.SetLevel(log.InfoLevel)

	assert.Error(t, SetFormat("xml"))
	assert.NoError(t, SetFormat("json"))

	var buf bytes.Buffer
	NewWithWriter(&buf, "server").Info("ready", "requests", 3)

	out := buf.String()
	assert.Contains(t, out, `"msg":"ready"`)
	assert.Contains(t, out, "server")
	assert.Contains(t, out, `"requests":3`)
}
