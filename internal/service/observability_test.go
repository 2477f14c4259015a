package service

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogUseCaseObserver_WritesFields(t *testing.T) {
	var buf bytes.Buffer
	obs := NewLogUseCaseObserver(&buf)

	obs.ObserveUseCase(context.Background(), UseCaseEvent{
		Name:     "import-text",
		Duration: 12 * time.Millisecond,
		Success:  true,
		Fields:   map[string]any{"imported": 3},
	})

	out := buf.String()
	assert.Contains(t, out, "level=INFO")
	assert.Contains(t, out, "use_case=import-text")
	assert.Contains(t, out, "duration_ms=12")
	assert.Contains(t, out, "imported=3")
}

func TestLogUseCaseObserver_ErrorLevel(t *testing.T) {
	var buf bytes.Buffer
	NewLogUseCaseObserver(&buf).ObserveUseCase(context.Background(), UseCaseEvent{
		Name: "share-import",
		Err:  errors.New("invalid share code"),
	})

	assert.Contains(t, buf.String(), "level=ERROR")
	assert.Contains(t, buf.String(), `error="invalid share code"`)
}

func TestNewLogUseCaseObserver_NilWriter(t *testing.T) {
	assert.IsType(t, NoopUseCaseObserver{}, NewLogUseCaseObserver(nil))
}

func TestLogUseCaseObserver_FieldsSorted(t *testing.T) {
	var buf bytes.Buffer
	NewLogUseCaseObserver(&buf).ObserveUseCase(context.Background(), UseCaseEvent{
		Name:    "import-text",
		Success: true,
		Fields:  map[string]any{"skipped": 1, "imported": 3, "mode": "horizontal"},
	})

	out := buf.String()
	assert.Less(t, strings.Index(out, "imported=3"), strings.Index(out, "mode=horizontal"))
	assert.Less(t, strings.Index(out, "mode=horizontal"), strings.Index(out, "skipped=1"))
}

func TestTrackUseCase_ReportsFinalFieldsAndError(t *testing.T) {
	obs := &recordingObserver{}
	fields := map[string]any{"trip": "t1"}

	done := trackUseCase(context.Background(), obs, "share-import", fields)
	fields["days"] = 4
	done(ErrInvalidShareCode)

	require.Len(t, obs.events, 1)
	ev := obs.events[0]
	assert.Equal(t, "share-import", ev.Name)
	assert.False(t, ev.Success)
	assert.ErrorIs(t, ev.Err, ErrInvalidShareCode)
	assert.Equal(t, 4, ev.Fields["days"])
	assert.False(t, ev.StartedAt.IsZero())
}
