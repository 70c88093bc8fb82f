package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	gocommand "github.com/goliatone/go-command"

	"github.com/goliatone/go-campaign-dashboard/components/dashboard"
	"github.com/goliatone/go-campaign-dashboard/components/dashboard/commands"
	"github.com/goliatone/go-campaign-dashboard/components/dashboard/queries"
)

const maxEventBody = 64 << 10

// Pages renders a dashboard tab as HTML. *dashboard.Service satisfies it.
type Pages interface {
	RenderTab(ctx context.Context, viewer dashboard.ViewerContext, tab dashboard.Tab, out io.Writer) error
}

// Handlers exposes HTTP endpoints backed by shared commands and queries.
type Handlers struct {
	Pages     Pages
	Tab       gocommand.Querier[queries.TabInput, dashboard.TabView]
	State     gocommand.Querier[queries.StateInput, dashboard.AppState]
	Campaigns gocommand.Querier[dashboard.TableQuery, dashboard.TablePage]
	Dispatch  gocommand.Commander[commands.DispatchEventInput]
	Theme     gocommand.Commander[commands.SetThemeInput]
	Refresh   gocommand.Commander[commands.RefreshDataInput]
	Export    gocommand.Commander[commands.ExportCampaignsInput]
	Broadcast *dashboard.BroadcastHook
	Logger    *slog.Logger
}

// HandleDashboard renders the requested tab (?tab=) or the active one.
func (h *Handlers) HandleDashboard(w http.ResponseWriter, r *http.Request) {
	var buf bytes.Buffer
	tab := dashboard.Tab(r.URL.Query().Get("tab"))
	if err := h.Pages.RenderTab(r.Context(), viewerFromRequest(r), tab, &buf); err != nil {
		h.fail(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = buf.WriteTo(w)
}

// HandleTab returns the resolved tab view as JSON.
func (h *Handlers) HandleTab(w http.ResponseWriter, r *http.Request) {
	view, err := h.Tab.Query(r.Context(), queries.TabInput{
		Viewer: viewerFromRequest(r),
		Tab:    dashboard.Tab(r.URL.Query().Get("tab")),
	})
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (h *Handlers) HandleState(w http.ResponseWriter, r *http.Request) {
	state, err := h.State.Query(r.Context(), queries.StateInput{})
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, state)
}

// HandleCampaigns returns one campaign table page for the query parameters.
func (h *Handlers) HandleCampaigns(w http.ResponseWriter, r *http.Request) {
	query, err := dashboard.ParseTableQuery(r.URL.Query())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	page, err := h.Campaigns.Query(r.Context(), query)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, page)
}

// HandleExport streams the full campaign dataset as a CSV attachment.
func (h *Handlers) HandleExport(w http.ResponseWriter, r *http.Request) {
	var buf bytes.Buffer
	if err := h.Export.Execute(actorContext(r), commands.ExportCampaignsInput{Writer: &buf}); err != nil {
		h.fail(w, r, err)
		return
	}
	w.Header().Set("Content-Type", dashboard.ExportContentType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+dashboard.ExportFileName+`"`)
	_, _ = buf.WriteTo(w)
}

// HandleEvent dispatches a named event and responds with the new state.
func (h *Handlers) HandleEvent(w http.ResponseWriter, r *http.Request) {
	var env dashboard.EventEnvelope
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxEventBody)).Decode(&env); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := h.Dispatch.Execute(actorContext(r), commands.DispatchEventInput{Envelope: env}); err != nil {
		h.fail(w, r, err)
		return
	}
	h.HandleState(w, r)
}

func (h *Handlers) HandleTheme(w http.ResponseWriter, r *http.Request) {
	var payload commands.SetThemeInput
	if r.ContentLength != 0 {
		if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxEventBody)).Decode(&payload); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
	}
	if err := h.Theme.Execute(actorContext(r), payload); err != nil {
		h.fail(w, r, err)
		return
	}
	h.HandleState(w, r)
}

func (h *Handlers) HandleRefresh(w http.ResponseWriter, r *http.Request) {
	if err := h.Refresh.Execute(r.Context(), commands.RefreshDataInput{}); err != nil {
		h.fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusAccepted)
}

func (h *Handlers) HandleStream(w http.ResponseWriter, r *http.Request) {
	if h.Broadcast == nil {
		http.Error(w, "stream unavailable", http.StatusNotFound)
		return
	}
	h.Broadcast.ServeSSE(w, r)
}

func (h *Handlers) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	if h.Broadcast == nil {
		http.Error(w, "stream unavailable", http.StatusNotFound)
		return
	}
	h.Broadcast.ServeWebSocket(w, r)
}

func (h *Handlers) fail(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		h.logger().ErrorContext(r.Context(), "dashboard request failed",
			slog.String("path", r.URL.Path),
			slog.Any("error", err),
		)
	}
	http.Error(w, err.Error(), status)
}

func (h *Handlers) logger() *slog.Logger {
	if h.Logger != nil {
		return h.Logger
	}
	return slog.Default()
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, dashboard.ErrUnknownTab):
		return http.StatusNotFound
	case errors.Is(err, dashboard.ErrInvalidEvent),
		errors.Is(err, dashboard.ErrInvalidQuery),
		errors.Is(err, dashboard.ErrInvalidTheme):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

// actorContext attributes commands to the requesting viewer.
func actorContext(r *http.Request) context.Context {
	return dashboard.WithViewerActivity(r.Context(), viewerFromRequest(r))
}

// viewerFromRequest resolves the viewer from the request headers; ?locale=
// overrides Accept-Language.
func viewerFromRequest(r *http.Request) dashboard.ViewerContext {
	return dashboard.ViewerFromHeaders(r.Header.Get, r.URL.Query().Get("locale"))
}
