package dashboard

import (
	"fmt"
	"slices"
)

// Tab identifies one dashboard view.
type Tab string

const (
	TabDashboard   Tab = "dashboard"
	TabAnalytics   Tab = "analytics"
	TabCampaigns   Tab = "campaigns"
	TabReports     Tab = "reports"
	TabPerformance Tab = "performance"
	TabSettings    Tab = "settings"
)

// Tabs lists the dashboard views in navigation order.
func Tabs() []Tab {
	return []Tab{TabDashboard, TabAnalytics, TabCampaigns, TabReports, TabPerformance, TabSettings}
}

// Valid reports whether t is a known tab.
func (t Tab) Valid() bool {
	return slices.Contains(Tabs(), t)
}

// ToastType classifies a notification.
type ToastType string

const (
	ToastSuccess ToastType = "success"
	ToastError   ToastType = "error"
	ToastInfo    ToastType = "info"
	ToastWarning ToastType = "warning"
)

// MaxToasts bounds the toast queue; the oldest entries are dropped first.
const MaxToasts = 5

// Toast is a transient notification queued for display.
type Toast struct {
	ID      string    `json:"id"`
	Message string    `json:"message"`
	Type    ToastType `json:"type"`
}

// ProfileRoles lists the roles selectable in the profile settings.
func ProfileRoles() []string {
	return []string{"Marketing Manager", "Analytics Specialist", "Campaign Manager", "Data Analyst"}
}

// Profile holds the editable account settings.
type Profile struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// AppState is the complete dashboard state. Values are replaced, never
// mutated in place, by Reduce.
type AppState struct {
	ActiveTab        Tab               `json:"activeTab"`
	SidebarCollapsed bool              `json:"sidebarCollapsed"`
	Theme            Theme             `json:"theme"`
	Loading          bool              `json:"loading"`
	AutoRefresh      bool              `json:"autoRefresh"`
	Notifications    bool              `json:"notifications"`
	Profile          Profile           `json:"profile"`
	Campaigns        []Campaign        `json:"campaigns"`
	ChartData        []TimeSeriesPoint `json:"chartData"`
	Table            TableControls     `json:"table"`
	Toasts           []Toast           `json:"toasts"`
	Version          uint64            `json:"version"`
}

// InitialState is the state at application start: loading, auto refresh on,
// notifications off.
func InitialState(campaigns []Campaign, chart []TimeSeriesPoint, theme Theme) AppState {
	return AppState{
		ActiveTab:   TabDashboard,
		Theme:       theme,
		Loading:     true,
		AutoRefresh: true,
		Profile: Profile{
			Name:  "John Doe",
			Email: "john.doe@company.com",
			Role:  "Marketing Manager",
		},
		Campaigns: slices.Clone(campaigns),
		ChartData: slices.Clone(chart),
		Table:     DefaultTableControls(),
		Toasts:    []Toast{},
	}
}

// Clone returns a deep copy of the slices held by the state.
func (s AppState) Clone() AppState {
	s.Campaigns = slices.Clone(s.Campaigns)
	s.ChartData = slices.Clone(s.ChartData)
	s.Toasts = slices.Clone(s.Toasts)
	return s
}

// Page computes the visible campaign table page for the current controls.
func (s AppState) Page() TablePage {
	return ComputeVisible(s.Campaigns, s.Table)
}

// Reduce applies event to state and returns the next state. It is pure: the
// input is never modified and toast ids derive from the state version.
func Reduce(state AppState, event Event) AppState {
	next := state.Clone()
	next.Version++
	toast := func(kind ToastType, msg string) {
		next.Toasts = pushToast(next.Toasts, Toast{
			ID:      fmt.Sprintf("toast-%d", next.Version),
			Message: msg,
			Type:    kind,
		})
	}

	switch e := event.(type) {
	case SetActiveTab:
		if e.Tab.Valid() {
			next.ActiveTab = e.Tab
		}
	case ToggleSidebar:
		next.SidebarCollapsed = !next.SidebarCollapsed
	case ToggleTheme:
		next.Theme = next.Theme.Toggle()
	case SetTheme:
		next.Theme = e.Theme.Normalize()
	case LoadingFinished:
		if next.Loading {
			next.Loading = false
			toast(ToastSuccess, "Dashboard loaded successfully!")
		}
	case ReplaceCampaigns:
		next.Campaigns = slices.Clone(e.Campaigns)
	case ReplaceChartData:
		next.ChartData = slices.Clone(e.Points)
		if e.Announce {
			toast(ToastInfo, "Data updated in real-time")
		}
	case ToggleAutoRefresh:
		if next.AutoRefresh {
			toast(ToastInfo, "Auto refresh disabled")
		} else {
			toast(ToastInfo, "Auto refresh enabled")
		}
		next.AutoRefresh = !next.AutoRefresh
	case ToggleNotifications:
		if next.Notifications {
			toast(ToastInfo, "Notifications disabled")
		} else {
			toast(ToastInfo, "Notifications enabled")
		}
		next.Notifications = !next.Notifications
	case UpdateProfile:
		next.Profile = e.Profile
		toast(ToastSuccess, "Profile updated successfully!")
	case ChangePassword:
		toast(ToastSuccess, "Password changed successfully!")
	case PushToast:
		t := e.Toast
		if t.Type == "" {
			t.Type = ToastInfo
		}
		if t.ID == "" {
			t.ID = fmt.Sprintf("toast-%d", next.Version)
		}
		next.Toasts = pushToast(next.Toasts, t)
	case DismissToast:
		next.Toasts = slices.DeleteFunc(next.Toasts, func(t Toast) bool { return t.ID == e.ID })
	case SetSearchTerm:
		next.Table.SearchTerm = e.Term
		next.Table.CurrentPage = 1
	case SetStatusFilter:
		filter := e.Filter
		if filter == "" {
			filter = StatusAll
		}
		next.Table.StatusFilter = filter
		next.Table.CurrentPage = 1
	case ToggleSortField:
		next.Table = ToggleSort(next.Table, e.Field)
	case SetPage:
		next.Table.CurrentPage = max(e.Page, 1)
	case ExportStarted:
		toast(ToastSuccess, "Export started! Download will begin shortly.")
	default:
		next.Version--
	}
	return next
}

func pushToast(queue []Toast, t Toast) []Toast {
	queue = append(queue, t)
	if len(queue) > MaxToasts {
		queue = slices.Clone(queue[len(queue)-MaxToasts:])
	}
	return queue
}

// LatestToast returns the toast added by the transition from prev to next.
func LatestToast(prev, next AppState) (Toast, bool) {
	if len(next.Toasts) == 0 {
		return Toast{}, false
	}
	last := next.Toasts[len(next.Toasts)-1]
	for _, t := range prev.Toasts {
		if t.ID == last.ID {
			return Toast{}, false
		}
	}
	return last, true
}
