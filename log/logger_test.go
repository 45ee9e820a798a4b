package log

import (
	"encoding/json"
	"io"
	"os"
	"strings"
	"testing"

	"github.com/pborman/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

// TestLogger verifies that a configured logger writes to the expected file
// with the expected fields attached.
func TestLogger(t *testing.T) {
	logFile, err := os.CreateTemp("", "*")
	assert.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, os.Remove(logFile.Name()))
	})

	base := logrus.New()
	base.SetFormatter(&logrus.JSONFormatter{})
	logger := Logger(base, logFile.Name(), "pipeline", "unit-test")

	msg := uuid.New()
	logger.Info(msg)

	data, err := io.ReadAll(logFile)
	assert.NoError(t, err)

	res := strings.Split(string(data), "\n")
	// msg + new line
	assert.Len(t, res, 2)
	var fields logrus.Fields
	assert.NoError(t, json.Unmarshal([]byte(res[0]), &fields))
	assert.Equal(t, "pipeline", fields["application"])
	assert.Equal(t, "unit-test", fields["environment"])
	assert.Equal(t, msg, fields["msg"])
}

func TestLoggerBadOutputFile(t *testing.T) {
	logger := Logger(logrus.New(), "/does/not/exist/log.ndjson", "api", "unit-test")
	// Falls back to stderr, still usable
	assert.NotNil(t, logger)
	logger.Info("still alive")
}
