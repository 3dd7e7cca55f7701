package logger

import (
	"bytes"
	"io"
	"os"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func reset(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	SetOutput(&buf)
	t.Cleanup(func() {
		SetVerbose(false)
		SetOutput(os.Stderr)
	})
	return &buf
}

func TestSetVerbose(t *testing.T) {
	reset(t)

	SetVerbose(false)
	assert.False(t, IsVerbose())

	SetVerbose(true)
	assert.True(t, IsVerbose())

	SetVerbose(false)
	assert.False(t, IsVerbose())
}

func TestLevels_WhenVerbose(t *testing.T) {
	tests := []struct {
		name string
		log  func(string, ...any)
		want string
	}{
		{"debug", Debug, "[DEBUG] built 3 edges\n"},
		{"info", Info, "[INFO] built 3 edges\n"},
		{"warn", Warn, "[WARN] built 3 edges\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := reset(t)
			SetVerbose(true)

			tt.log("built %d edges", 3)

			assert.Equal(t, tt.want, buf.String())
		})
	}
}

func TestLevels_WhenNotVerbose(t *testing.T) {
	buf := reset(t)
	SetVerbose(false)

	Debug("hidden")
	Info("hidden")
	Warn("hidden")
	Section("hidden")

	assert.Zero(t, buf.Len())
}

func TestSection(t *testing.T) {
	buf := reset(t)
	SetVerbose(true)

	Section("Geodesics")

	assert.Equal(t, "\n=== Geodesics ===\n", buf.String())
}

func TestL_StructuredFields(t *testing.T) {
	buf := reset(t)
	SetVerbose(true)

	L().Info("estimate finished", zap.Int("centroids", 4))

	assert.Contains(t, buf.String(), "[INFO] estimate finished")
	assert.Contains(t, buf.String(), `"centroids": 4`)
}

func TestConcurrentAccess(t *testing.T) {
	reset(t)
	SetOutput(io.Discard)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			SetVerbose(n%2 == 0)
			Debug("message %d", n)
			Section("section")
			_ = IsVerbose()
		}(i)
	}
	wg.Wait()
}
