package queries

import (
	"context"
	"errors"

	gocommand "github.com/goliatone/go-command"
	dashboard "github.com/goliatone/go-campaign-dashboard/components/dashboard"
)

var errMissingState = errors.New("queries: state source is required")

// StateInput is the (empty) request for a state snapshot.
type StateInput struct{}

// StateQuery returns a copy of the current dashboard state.
type StateQuery struct {
	source dashboard.StateSource
}

// NewStateQuery builds the query.
func NewStateQuery(source dashboard.StateSource) *StateQuery {
	return &StateQuery{source: source}
}

var _ gocommand.Querier[StateInput, dashboard.AppState] = (*StateQuery)(nil)

// Query returns the snapshot.
func (q *StateQuery) Query(_ context.Context, _ StateInput) (dashboard.AppState, error) {
	if q.source == nil {
		return dashboard.AppState{}, errMissingState
	}
	return q.source.Snapshot(), nil
}
