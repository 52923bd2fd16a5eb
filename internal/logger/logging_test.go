package logger

import (
	"bytes"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
)

func TestNewWithConfig(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithConfig(&buf, "scan", log.InfoLevel, false, false, log.LogfmtFormatter)

	l.Debug("hidden")
	l.Info("matched", "word", "riddims")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "word=riddims")
}

func TestSetup(t *testing.T) {
	defer log.SetDefault(log.Default())

	Setup(false)
	assert.Equal(t, log.WarnLevel, log.GetLevel())

	Setup(true)
	assert.Equal(t, log.DebugLevel, log.GetLevel())
}
