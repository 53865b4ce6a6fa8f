package logger

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLogLevel(t *testing.T) {
	cases := map[string]LogLevel{
		"debug":   DEBUG,
		"INFO":    INFO,
		"Warning": WARN,
		"warn":    WARN,
		"ERROR":   ERROR,
		"fatal":   FATAL,
		"":        INFO,
		"verbose": INFO,
	}
	for in, want := range cases {
		assert.Equal(t, want, ParseLogLevel(in), "input %q", in)
	}
}

func TestLogger_FiltersBelowLevel(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, WARN)

	l.Debugf("debug %d", 1)
	l.Infof("info %d", 2)
	l.Warnf("warn %d", 3)
	l.Errorf("error %d", 4)

	out := buf.String()
	assert.NotContains(t, out, "debug 1")
	assert.NotContains(t, out, "info 2")
	assert.Contains(t, out, "[WARN] ")
	assert.Contains(t, out, "warn 3")
	assert.Contains(t, out, "[ERROR] ")
	assert.Contains(t, out, "error 4")
}

func TestLogger_SetLevel(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, ERROR)
	l.Infof("hidden")
	l.SetLevel(DEBUG)
	l.Debugf("shown")

	assert.Equal(t, DEBUG, l.GetLevel())
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
}

func TestLogger_FatalCallsExit(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, INFO)
	code := -1
	l.exit = func(c int) { code = c }

	l.Fatalf("boom")

	assert.Equal(t, 1, code)
	assert.Contains(t, buf.String(), "[FATAL] ")
}

func TestNewFileLogger_CreatesDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "api.log")

	l, err := NewFileLogger(path, INFO, DefaultRotation)
	require.NoError(t, err)
	l.Infof("written")

	assert.DirExists(t, filepath.Dir(path))
	assert.FileExists(t, path)
}
