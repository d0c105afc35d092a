package logsvc

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/trezcool/sims/core"
)

func TestConsoleLogger(t *testing.T) {
	tests := []struct {
		name     string
		debug    bool
		log      func(l *ConsoleLogger)
		contains []string
		empty    bool
	}{
		{
			name:     "info with error",
			log:      func(l *ConsoleLogger) { l.Info("student added", errors.New("boom")) },
			contains: []string{"INF", "student added", "boom"},
		},
		{
			name:     "warn with extra data",
			log:      func(l *ConsoleLogger) { l.Warn("add grade failed!", map[string]interface{}{"key": "S1-C1"}) },
			contains: []string{"WRN", "add grade failed!", "S1-C1"},
		},
		{
			name:  "debug dropped",
			log:   func(l *ConsoleLogger) { l.Debug("hidden") },
			empty: true,
		},
		{
			name:     "debug kept",
			debug:    true,
			log:      func(l *ConsoleLogger) { l.Debug("shown") },
			contains: []string{"DBG", "shown"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			l := NewLogger(&buf, &core.Config{Env: "TEST", Debug: tt.debug})
			tt.log(l)

			if tt.empty {
				assert.Empty(t, buf.String())
				return
			}
			for _, s := range tt.contains {
				assert.Contains(t, buf.String(), s)
			}
		})
	}
}

func TestRollbarLogger_WithoutToken(t *testing.T) {
	var buf bytes.Buffer
	conf := &core.Config{Env: "TEST"}
	l := NewRollbarLogger(NewLogger(&buf, conf), conf)
	defer l.Close()

	l.Info("course added")
	l.Error("delete student failed!", errors.New("disk full"))

	assert.Contains(t, buf.String(), "course added")
	assert.Contains(t, buf.String(), "disk full")
}
