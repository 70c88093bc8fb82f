package dashboard

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type collectingNotifications struct {
	sent []Notification
}

func (c *collectingNotifications) Publish(_ context.Context, n Notification) error {
	c.sent = append(c.sent, n)
	return nil
}

func TestNotificationsHookForwardsToastsWhenEnabled(t *testing.T) {
	client := &collectingNotifications{}
	ctrl := newTestController(false)
	ctrl.AddListener(&NotificationsHook{Client: client, Channel: "marketing"})

	_, err := ctrl.Dispatch(context.Background(), ToggleAutoRefresh{})
	require.NoError(t, err)
	assert.Empty(t, client.sent, "notifications are off by default")

	_, err = ctrl.Dispatch(context.Background(), ToggleNotifications{})
	require.NoError(t, err)
	_, err = ctrl.Dispatch(context.Background(), ExportStarted{})
	require.NoError(t, err)

	require.Len(t, client.sent, 2)
	assert.Equal(t, "Notifications enabled", client.sent[0].Toast.Message)
	assert.Equal(t, "marketing", client.sent[1].Channel)
	assert.Equal(t, "export.started", client.sent[1].Event)
	assert.Equal(t, ToastSuccess, client.sent[1].Toast.Type)
}

func TestNotificationsHookIgnoresChangesWithoutToast(t *testing.T) {
	client := &collectingNotifications{}
	hook := &NotificationsHook{Client: client}
	state := InitialState(nil, nil, ThemeLight)
	state.Notifications = true

	require.NoError(t, hook.StateChanged(context.Background(), StateChange{Event: "sidebar.toggle", State: state}))
	assert.Empty(t, client.sent)

	var nilHook *NotificationsHook
	assert.NoError(t, nilHook.StateChanged(context.Background(), StateChange{}))
}
