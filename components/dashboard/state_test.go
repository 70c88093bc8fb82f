package dashboard

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitialState(t *testing.T) {
	state := InitialState(sampleCampaigns(), nil, ThemeDark)
	assert.Equal(t, TabDashboard, state.ActiveTab)
	assert.True(t, state.Loading)
	assert.True(t, state.AutoRefresh)
	assert.False(t, state.Notifications)
	assert.Equal(t, ThemeDark, state.Theme)
	assert.Equal(t, DefaultTableControls(), state.Table)
	assert.Equal(t, "John Doe", state.Profile.Name)
	assert.Empty(t, state.Toasts)
}

func TestReduceDoesNotMutateInput(t *testing.T) {
	state := InitialState(sampleCampaigns(), GenerateChartData(), ThemeLight)
	before := state.Clone()

	next := Reduce(state, ReplaceCampaigns{Campaigns: []Campaign{{ID: "x"}}})
	next = Reduce(next, PushToast{Toast: Toast{Message: "hi"}})

	assert.Equal(t, before, state)
	assert.Len(t, next.Campaigns, 1)
	assert.Equal(t, before.Version+2, next.Version)
}

func TestReduceFilterChangesResetPage(t *testing.T) {
	state := InitialState(sampleCampaigns(), nil, ThemeLight)
	state = Reduce(state, SetPage{Page: 3})
	require.Equal(t, 3, state.Table.CurrentPage)

	state = Reduce(state, SetSearchTerm{Term: "google"})
	assert.Equal(t, 1, state.Table.CurrentPage)
	assert.Equal(t, "google", state.Table.SearchTerm)

	state = Reduce(state, SetPage{Page: 2})
	state = Reduce(state, SetStatusFilter{Filter: ""})
	assert.Equal(t, 1, state.Table.CurrentPage)
	assert.Equal(t, StatusAll, state.Table.StatusFilter)
}

func TestReduceSetPageClampsBelowOne(t *testing.T) {
	state := Reduce(InitialState(nil, nil, ThemeLight), SetPage{Page: -4})
	assert.Equal(t, 1, state.Table.CurrentPage)
}

func TestReduceToggles(t *testing.T) {
	state := InitialState(nil, nil, ThemeLight)

	state = Reduce(state, ToggleTheme{})
	assert.Equal(t, ThemeDark, state.Theme)
	state = Reduce(state, ToggleSidebar{})
	assert.True(t, state.SidebarCollapsed)

	state = Reduce(state, ToggleAutoRefresh{})
	assert.False(t, state.AutoRefresh)
	assert.Equal(t, "Auto refresh disabled", lastToast(t, state).Message)

	state = Reduce(state, ToggleNotifications{})
	assert.True(t, state.Notifications)
	assert.Equal(t, "Notifications enabled", lastToast(t, state).Message)

	state = Reduce(state, SetActiveTab{Tab: TabReports})
	assert.Equal(t, TabReports, state.ActiveTab)
	state = Reduce(state, SetActiveTab{Tab: "bogus"})
	assert.Equal(t, TabReports, state.ActiveTab)
}

func TestReduceLoadingFinishedToastsOnce(t *testing.T) {
	state := Reduce(InitialState(nil, nil, ThemeLight), LoadingFinished{})
	assert.False(t, state.Loading)
	require.Len(t, state.Toasts, 1)
	assert.Equal(t, ToastSuccess, state.Toasts[0].Type)

	state = Reduce(state, LoadingFinished{})
	assert.Len(t, state.Toasts, 1)
}

func TestReduceToastQueueIsBounded(t *testing.T) {
	state := InitialState(nil, nil, ThemeLight)
	for i := range MaxToasts + 3 {
		state = Reduce(state, PushToast{Toast: Toast{Message: fmt.Sprintf("t%d", i)}})
	}
	require.Len(t, state.Toasts, MaxToasts)
	assert.Equal(t, "t3", state.Toasts[0].Message)
	assert.Equal(t, fmt.Sprintf("t%d", MaxToasts+2), lastToast(t, state).Message)
	assert.Equal(t, ToastInfo, lastToast(t, state).Type)
}

func TestReduceDismissToast(t *testing.T) {
	state := Reduce(InitialState(nil, nil, ThemeLight), ExportStarted{})
	id := lastToast(t, state).ID
	assert.Equal(t, "Export started! Download will begin shortly.", lastToast(t, state).Message)

	state = Reduce(state, DismissToast{ID: id})
	assert.Empty(t, state.Toasts)
}

func TestReduceProfileAndPassword(t *testing.T) {
	profile := Profile{Name: "Ada", Email: "ada@example.com", Role: "Analyst"}
	state := Reduce(InitialState(nil, nil, ThemeLight), UpdateProfile{Profile: profile})
	assert.Equal(t, profile, state.Profile)
	assert.Equal(t, "Profile updated successfully!", lastToast(t, state).Message)

	state = Reduce(state, ChangePassword{})
	assert.Equal(t, "Password changed successfully!", lastToast(t, state).Message)
}

type unknownEvent struct{}

func (unknownEvent) EventName() string { return "unknown" }

func TestReduceUnknownEventKeepsVersion(t *testing.T) {
	state := InitialState(nil, nil, ThemeLight)
	next := Reduce(state, unknownEvent{})
	assert.Equal(t, state.Version, next.Version)
}

func TestLatestToast(t *testing.T) {
	prev := InitialState(nil, nil, ThemeLight)
	next := Reduce(prev, ChangePassword{})
	toast, ok := LatestToast(prev, next)
	require.True(t, ok)
	assert.Equal(t, "toast-1", toast.ID)

	_, ok = LatestToast(next, Reduce(next, ToggleSidebar{}))
	assert.False(t, ok)
}

func TestStatePageUsesTableControls(t *testing.T) {
	state := InitialState(sampleCampaigns(), nil, ThemeLight)
	state = Reduce(state, SetPage{Page: 3})
	assert.Len(t, state.Page().Rows, 5)
}

func lastToast(t *testing.T, state AppState) Toast {
	t.Helper()
	require.NotEmpty(t, state.Toasts)
	return state.Toasts[len(state.Toasts)-1]
}
