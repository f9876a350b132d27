// Package trips assembles raw trip documents into Trip aggregates. It applies
// the legacy field mappings, rejects documents missing required top-level
// fields and isolates failures in optional sections so they never reject a trip.
package trips

import (
	"strings"

	"github.com/NomadCrew/nomad-itinerary/errors"
	"github.com/NomadCrew/nomad-itinerary/internal/document"
	"github.com/NomadCrew/nomad-itinerary/internal/itinerary"
	"github.com/NomadCrew/nomad-itinerary/logger"
	"github.com/NomadCrew/nomad-itinerary/types"
	"go.uber.org/zap"
)

// Result is the outcome of assembling one document.
type Result struct {
	DocumentID  string                `json:"documentId"`
	State       State                 `json:"state"`
	Trip        *types.Trip           `json:"trip,omitempty"`
	Diagnostics []document.Diagnostic `json:"diagnostics,omitempty"`
}

// Rejection identifies a document dropped from a batch.
type Rejection struct {
	Index      int    `json:"index"`
	DocumentID string `json:"documentId,omitempty"`
	Err        error  `json:"-"`
}

// BatchResult holds the valid trips of a batch, in input order, and the
// documents that were rejected.
type BatchResult struct {
	Results    []*Result
	Rejections []Rejection
}

// Trips returns the assembled trips in input order.
func (b *BatchResult) Trips() []*types.Trip {
	out := make([]*types.Trip, 0, len(b.Results))
	for _, r := range b.Results {
		out = append(out, r.Trip)
	}
	return out
}

// Assembler is stateless apart from its logger and metrics and is safe for
// concurrent use.
type Assembler struct {
	log     *zap.SugaredLogger
	metrics *AssemblerMetrics
}

func NewAssembler() *Assembler {
	return &Assembler{
		log:     logger.GetLogger().Named("trip_assembler"),
		metrics: getAssemblerMetrics(),
	}
}

// Assemble turns one raw document into a trip. A rejected document returns
// a Result in StateRejected together with a REJECTED *errors.AppError naming
// the failed field.
func (a *Assembler) Assemble(doc document.Fragment) (*Result, error) {
	var diag document.Diagnostics
	res := &Result{State: StateUnparsed}
	res.DocumentID, _ = document.NewReader(doc, "").String("id", "")

	trip, err := parseTrip(itinerary.NewScope(&diag, ""), doc)
	res.Diagnostics = diag.Items()
	if err != nil {
		res.State = StateRejected
		rejected := errors.Rejected(res.DocumentID, err)
		a.metrics.observe(res.State, res.Diagnostics)
		a.log.Warnw("Trip document rejected",
			"documentID", res.DocumentID,
			"field", rejected.Field,
			"error", err)
		return res, rejected
	}

	res.Trip = trip
	res.State = StateValidWithoutRecommendation
	if trip.HasRecommendation() {
		res.State = StateValidWithRecommendation
	}
	a.metrics.observe(res.State, res.Diagnostics)

	for _, d := range res.Diagnostics {
		a.log.Debugw("Recovered from document problem",
			"documentID", res.DocumentID,
			"kind", d.Kind,
			"path", d.Path,
			"error", d.Err)
	}
	return res, nil
}

// AssembleBatch assembles every document. A rejected document is recorded and
// skipped; it never aborts the batch.
func (a *Assembler) AssembleBatch(docs []document.Fragment) *BatchResult {
	batch := &BatchResult{Results: make([]*Result, 0, len(docs))}
	for i, doc := range docs {
		res, err := a.Assemble(doc)
		if err != nil {
			batch.Rejections = append(batch.Rejections, Rejection{
				Index:      i,
				DocumentID: res.DocumentID,
				Err:        err,
			})
			continue
		}
		batch.Results = append(batch.Results, res)
	}
	if len(batch.Rejections) > 0 {
		a.log.Infow("Batch assembled with rejections",
			"documents", len(docs),
			"valid", len(batch.Results),
			"rejected", len(batch.Rejections))
	}
	return batch
}

// parseTrip reads the top-level fields. Any error returned here rejects the
// document; optional sections report into the scope instead.
func parseTrip(s itinerary.Scope, doc document.Fragment) (*types.Trip, error) {
	r := s.Reader(doc)
	t := &types.Trip{}
	var err error

	if t.ID, err = r.RequiredString("id"); err != nil {
		return nil, err
	}
	if t.OwnerID, err = r.RequiredFirstString("ownerId", "userId"); err != nil {
		return nil, err
	}
	if t.Destinations, err = parseDestinations(r); err != nil {
		return nil, err
	}
	if t.StartDate, err = r.RequiredTime("startDate"); err != nil {
		return nil, err
	}
	if t.EndDate, err = r.RequiredTime("endDate"); err != nil {
		return nil, err
	}
	if t.CreatedAt, err = r.RequiredTime("createdAt"); err != nil {
		return nil, err
	}

	diag := s.Diagnostics()
	if t.UpdatedAt, err = r.OptionalTime("updatedAt"); err != nil {
		diag.Record(document.KindDroppedSection, r.At("updatedAt"), err)
	}
	if t.IsDateFlexible, err = r.FirstBool(false, "isDateFlexible", "flexibleDates"); err != nil {
		diag.Record(document.KindDroppedSection, r.At("isDateFlexible"), err)
	}
	t.Status = itinerary.ResolveEnum(s, r, types.ResolveTripStatus, "status")

	if r.Has("preferences") {
		if prefs := itinerary.ParseOptional(s, r, ParseTripPreferences, "preferences"); prefs != nil {
			t.Preferences = *prefs
		}
	} else if prefs, err := ParseTripPreferences(s, doc); err == nil {
		// older documents keep preference fields at the top level
		t.Preferences = prefs
	} else {
		diag.Record(document.KindDroppedSection, r.At("preferences"), err)
	}

	t.Recommendation = itinerary.ParseOptional(s.WithCreatedAt(t.CreatedAt), r, itinerary.ParseRecommendation, "recommendation")
	return t, nil
}

// parseDestinations prefers the "destinations" list and falls back to the
// legacy "destination" string. Blank names are dropped; at least one must remain.
func parseDestinations(r document.Reader) ([]string, error) {
	var typeErr error
	for _, key := range []string{"destinations", "destination"} {
		names, err := r.Strings(key)
		if err != nil {
			if typeErr == nil {
				typeErr = err
			}
			continue
		}
		kept := make([]string, 0, len(names))
		for _, n := range names {
			if n = strings.TrimSpace(n); n != "" {
				kept = append(kept, n)
			}
		}
		if len(kept) > 0 {
			return kept, nil
		}
	}
	if typeErr != nil {
		return nil, typeErr
	}
	return nil, errors.MissingField(r.At("destinations"))
}

// ParseTripPreferences reads the optional planning inputs.
func ParseTripPreferences(s itinerary.Scope, frag document.Fragment) (types.TripPreferences, error) {
	r := s.Reader(frag)
	var p types.TripPreferences
	var errs [5]error

	p.Budget, errs[0] = r.String("budget", "")
	p.TravelStyle, errs[1] = r.String("travelStyle", "")
	p.GroupSize, errs[2] = r.OptionalInt("groupSize")
	p.Interests, errs[3] = r.Strings("interests")
	p.SpecialRequests, errs[4] = r.String("specialRequests", "")
	for _, err := range errs {
		if err != nil {
			return types.TripPreferences{}, err
		}
	}
	if r.Has("flightClass") {
		class := itinerary.ResolveEnum(s, r, types.ResolveFlightClass, "flightClass")
		p.FlightClass = &class
	}
	return p, nil
}
