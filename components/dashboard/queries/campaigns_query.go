package queries

import (
	"context"

	gocommand "github.com/goliatone/go-command"
	dashboard "github.com/goliatone/go-campaign-dashboard/components/dashboard"
)

type tableValidator interface {
	ValidateTableQuery(q dashboard.TableQuery) (dashboard.TableControls, error)
}

// CampaignPageQuery computes a campaign table page. A zero TableQuery uses
// the controls held in the state; anything else is validated and applied
// without touching the state.
type CampaignPageQuery struct {
	source    dashboard.StateSource
	validator tableValidator
}

// NewCampaignPageQuery builds the query. A nil validator uses the JSON schema
// validator.
func NewCampaignPageQuery(source dashboard.StateSource, validator tableValidator) *CampaignPageQuery {
	if validator == nil {
		validator = dashboard.NewJSONSchemaValidator()
	}
	return &CampaignPageQuery{source: source, validator: validator}
}

var _ gocommand.Querier[dashboard.TableQuery, dashboard.TablePage] = (*CampaignPageQuery)(nil)

// Query filters, sorts and paginates the campaigns of the current snapshot.
// Validation failures match dashboard.ErrInvalidQuery.
func (q *CampaignPageQuery) Query(_ context.Context, input dashboard.TableQuery) (dashboard.TablePage, error) {
	if q.source == nil {
		return dashboard.TablePage{}, errMissingState
	}
	state := q.source.Snapshot()
	if input == (dashboard.TableQuery{}) {
		return state.Page(), nil
	}
	controls, err := q.validator.ValidateTableQuery(input)
	if err != nil {
		return dashboard.TablePage{}, err
	}
	return dashboard.ComputeVisible(state.Campaigns, controls), nil
}
