package activity

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHooksDropEventsWithoutVerb(t *testing.T) {
	capture := &CaptureHook{}
	require.NoError(t, Hooks{capture}.Notify(context.Background(), Event{ObjectType: "campaign_table"}))
	require.NoError(t, Hooks{capture}.Notify(context.Background(), Event{Verb: "   "}))
	assert.Empty(t, capture.Events)
}

func TestHooksDeliverTrimmedEvent(t *testing.T) {
	capture := &CaptureHook{}
	hooks := Hooks{nil, capture}

	err := hooks.Notify(context.Background(), Event{
		Verb:       "\ttable.status ",
		ObjectType: " campaign_table",
		ObjectID:   "campaigns ",
		Channel:    " dashboard ",
	})
	require.NoError(t, err)
	require.Len(t, capture.Events, 1)

	got := capture.Events[0]
	assert.Equal(t, "table.status", got.Verb)
	assert.Equal(t, "campaign_table", got.ObjectType)
	assert.Equal(t, "campaigns", got.ObjectID)
	assert.Equal(t, "dashboard", got.Channel)
	assert.False(t, got.OccurredAt.IsZero())
}

func TestNormalizeEventDetachesMetadata(t *testing.T) {
	exportedAt := time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)
	original := Event{
		Verb:       "export.started",
		Metadata:   map[string]any{"rows": 25},
		Recipients: []string{"ops@example.com"},
		OccurredAt: exportedAt,
	}

	normalized := NormalizeEvent(original)
	normalized.Metadata["rows"] = 0
	normalized.Recipients[0] = "finance@example.com"

	assert.Equal(t, 25, original.Metadata["rows"])
	assert.Equal(t, "ops@example.com", original.Recipients[0])
	assert.True(t, normalized.OccurredAt.Equal(exportedAt))
}

func TestNormalizeEventKeepsNilCollections(t *testing.T) {
	normalized := NormalizeEvent(Event{Verb: "theme.toggle"})
	assert.Nil(t, normalized.Metadata)
	assert.Nil(t, normalized.Recipients)
}
