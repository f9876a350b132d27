package main

import (
	"errors"
	"sort"

	apperrors "github.com/NomadCrew/nomad-itinerary/errors"
	"github.com/NomadCrew/nomad-itinerary/internal/costs"
	"github.com/NomadCrew/nomad-itinerary/internal/document"
	"github.com/NomadCrew/nomad-itinerary/internal/trips"
)

// Report summarizes one batch run.
type Report struct {
	Documents  int               `json:"documents" yaml:"documents"`
	Valid      int               `json:"valid" yaml:"valid"`
	Rejected   int               `json:"rejected" yaml:"rejected"`
	Trips      []TripReport      `json:"trips,omitempty" yaml:"trips,omitempty"`
	Rejections []RejectionReport `json:"rejections,omitempty" yaml:"rejections,omitempty"`
}

type TripReport struct {
	ID           string             `json:"id" yaml:"id"`
	OwnerID      string             `json:"ownerId" yaml:"owner_id"`
	State        trips.State        `json:"state" yaml:"state"`
	Status       string             `json:"status" yaml:"status"`
	Destinations []string           `json:"destinations" yaml:"destinations"`
	Diagnostics  []DiagnosticReport `json:"diagnostics,omitempty" yaml:"diagnostics,omitempty"`
	Costs        *CostReport        `json:"costs,omitempty" yaml:"costs,omitempty"`
}

type DiagnosticReport struct {
	Kind  string `json:"kind" yaml:"kind"`
	Path  string `json:"path" yaml:"path"`
	Error string `json:"error" yaml:"error"`
}

type CostReport struct {
	GrandTotal   string           `json:"grandTotal" yaml:"grand_total"`
	Display      string           `json:"display" yaml:"display"`
	ShortDisplay string           `json:"shortDisplay" yaml:"short_display"`
	Groups       []GroupReport    `json:"groups" yaml:"groups"`
	Points       map[string]int64 `json:"points,omitempty" yaml:"points,omitempty"`
}

type GroupReport struct {
	Category       costs.Category `json:"category" yaml:"category"`
	Lines          []string       `json:"lines" yaml:"lines"`
	CashTotal      string         `json:"cashTotal" yaml:"cash_total"`
	CashEquivalent string         `json:"cashEquivalent" yaml:"cash_equivalent"`
}

type RejectionReport struct {
	Index      int    `json:"index" yaml:"index"`
	DocumentID string `json:"documentId,omitempty" yaml:"document_id,omitempty"`
	Field      string `json:"field,omitempty" yaml:"field,omitempty"`
	Error      string `json:"error" yaml:"error"`
}

// buildReport indexes rejections by their position in the input, so elements
// that never reached the assembler sit alongside the rejected documents.
func buildReport(in *input, batch *trips.BatchResult) Report {
	rep := Report{
		Documents: in.total,
		Valid:     len(batch.Results),
		Rejected:  len(batch.Rejections) + len(in.malformed),
	}

	for _, res := range batch.Results {
		t := res.Trip
		tr := TripReport{
			ID:           t.ID,
			OwnerID:      t.OwnerID,
			State:        res.State,
			Status:       t.Status.String(),
			Destinations: t.Destinations,
		}
		for _, d := range res.Diagnostics {
			tr.Diagnostics = append(tr.Diagnostics, DiagnosticReport{
				Kind:  string(d.Kind),
				Path:  d.Path,
				Error: errString(d.Err),
			})
		}
		if rollup, ok := costs.RollupTrip(t); ok {
			tr.Costs = costReport(rollup)
		}
		rep.Trips = append(rep.Trips, tr)
	}

	for _, rej := range batch.Rejections {
		rr := RejectionReport{
			Index:      in.positions[rej.Index],
			DocumentID: rej.DocumentID,
			Error:      errString(rej.Err),
		}
		var appErr *apperrors.AppError
		if errors.As(rej.Err, &appErr) {
			rr.Field = appErr.Field
		}
		rep.Rejections = append(rep.Rejections, rr)
	}
	for _, i := range in.malformed {
		rep.Rejections = append(rep.Rejections, RejectionReport{
			Index: i,
			Error: document.ErrNotObject.Error(),
		})
	}
	sort.Slice(rep.Rejections, func(a, b int) bool {
		return rep.Rejections[a].Index < rep.Rejections[b].Index
	})
	return rep
}

func costReport(r *costs.Rollup) *CostReport {
	total := r.GrandTotalCost()
	cr := &CostReport{
		GrandTotal:   r.GrandTotal.StringFixed(2),
		Display:      total.DisplayText(),
		ShortDisplay: total.ShortDisplayText(),
		Groups:       make([]GroupReport, 0, len(r.Groups)),
		Points:       r.Points,
	}
	for _, g := range r.Groups {
		gr := GroupReport{
			Category:       g.Category,
			Lines:          make([]string, 0, len(g.Lines)),
			CashTotal:      g.CashTotal.StringFixed(2),
			CashEquivalent: g.CashEquivalent.StringFixed(2),
		}
		for _, l := range g.Lines {
			gr.Lines = append(gr.Lines, l.Label+": "+l.Cost.DisplayText())
		}
		cr.Groups = append(cr.Groups, gr)
	}
	return cr
}

func errString(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
