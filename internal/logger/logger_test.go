package logger

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_ProductionLogsJSON(t *testing.T) {
	var buf bytes.Buffer
	log := newWithOutput("debug", "production", &buf)

	log.WithField("run_id", "abc").Info("reconcile finished")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	var entry map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[len(lines)-1]), &entry))
	assert.Equal(t, "reconcile finished", entry["msg"])
	assert.Equal(t, "abc", entry["run_id"])
	assert.Equal(t, logrus.DebugLevel, log.GetLevel())
}

func TestNew_InvalidLevelDefaultsToInfo(t *testing.T) {
	var buf bytes.Buffer
	log := newWithOutput("loud", "development", &buf)

	assert.Equal(t, logrus.InfoLevel, log.GetLevel())
	assert.IsType(t, &logrus.TextFormatter{}, log.Formatter)
	assert.Contains(t, buf.String(), "Invalid log level")
}
