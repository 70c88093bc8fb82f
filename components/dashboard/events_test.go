package dashboard

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeEvent(t *testing.T) {
	cases := []struct {
		name    string
		payload string
		want    Event
	}{
		{"tab.set", `{"tab":"analytics"}`, SetActiveTab{Tab: TabAnalytics}},
		{"theme.set", `{"theme":"DARK"}`, SetTheme{Theme: ThemeDark}},
		{"Theme.Toggle", ``, ToggleTheme{}},
		{"table.sort", `{"field":"start_date"}`, ToggleSortField{Field: "startDate"}},
		{"table.status", `{"filter":"paused"}`, SetStatusFilter{Filter: "paused"}},
		{"table.page", `{"page":2}`, SetPage{Page: 2}},
		{"table.search", `{"term":"ads"}`, SetSearchTerm{Term: "ads"}},
		{"toast.dismiss", `{"id":"toast-3"}`, DismissToast{ID: "toast-3"}},
		{"export.started", ``, ExportStarted{}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := DecodeEvent(EventEnvelope{Name: tc.name, Payload: json.RawMessage(tc.payload)})
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestDecodeEventRejectsInvalidInput(t *testing.T) {
	cases := []EventEnvelope{
		{Name: "tab.set", Payload: json.RawMessage(`{"tab":"billing"}`)},
		{Name: "theme.set", Payload: json.RawMessage(`{"theme":"sepia"}`)},
		{Name: "table.sort", Payload: json.RawMessage(`{"field":"revenue"}`)},
		{Name: "table.status", Payload: json.RawMessage(`{"filter":"archived"}`)},
		{Name: "table.page", Payload: json.RawMessage(`{"page":0}`)},
		{Name: "toast.push", Payload: json.RawMessage(`{"toast":{}}`)},
		{Name: "campaigns.replace"},
		{Name: "table.page", Payload: json.RawMessage(`{`)},
	}
	for _, env := range cases {
		_, err := DecodeEvent(env)
		assert.Error(t, err, env.Name)
	}
}

func TestDecodeEventErrorsMatchSentinel(t *testing.T) {
	_, err := DecodeEvent(EventEnvelope{Name: "billing.charge"})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidEvent)
	assert.Contains(t, err.Error(), `unknown event "billing.charge"`)
}
