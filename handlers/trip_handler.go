package handlers

import (
	"net/http"

	"github.com/NomadCrew/nomad-itinerary/internal/costs"
	"github.com/NomadCrew/nomad-itinerary/internal/document"
	"github.com/NomadCrew/nomad-itinerary/internal/service"
	"github.com/NomadCrew/nomad-itinerary/internal/trips"
	"github.com/gin-gonic/gin"
)

// TripHandler serves normalized trips and their cost rollups.
type TripHandler struct {
	tripService service.TripService
}

// NewTripHandler creates a new TripHandler.
func NewTripHandler(tripService service.TripService) *TripHandler {
	return &TripHandler{tripService: tripService}
}

// TripCostsResponse is the body of GET /v1/trips/:id/costs.
type TripCostsResponse struct {
	TripID       string           `json:"tripId"`
	Status       string           `json:"status"`
	Groups       []costs.Group    `json:"groups,omitempty"`
	GrandTotal   string           `json:"grandTotal,omitempty"`
	Display      string           `json:"display,omitempty"`
	ShortDisplay string           `json:"shortDisplay,omitempty"`
	Points       map[string]int64 `json:"points,omitempty"`
}

// OwnerTripsResponse is the body of GET /v1/owners/:ownerId/trips.
type OwnerTripsResponse struct {
	Trips    []document.Fragment `json:"trips"`
	Rejected int                 `json:"rejected"`
}

// GetTripHandler godoc
// @Summary Get a normalized trip
// @Tags trips
// @Produce json
// @Param id path string true "Trip ID"
// @Success 200 {object} map[string]interface{} "Trip in the current document shape"
// @Failure 404 {object} middleware.ErrorResponse "Trip not found"
// @Failure 422 {object} middleware.ErrorResponse "Stored document rejected"
// @Router /v1/trips/{id} [get]
func (h *TripHandler) GetTripHandler(c *gin.Context) {
	trip, err := h.tripService.GetTrip(c.Request.Context(), c.Param("id"))
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, trips.EncodeTrip(trip))
}

// GetTripCostsHandler godoc
// @Summary Roll up trip costs
// @Description Groups the detailed itinerary's costs by category. Trips without a
// @Description detailed itinerary report status "preparing".
// @Tags trips
// @Produce json
// @Param id path string true "Trip ID"
// @Success 200 {object} TripCostsResponse
// @Failure 404 {object} middleware.ErrorResponse "Trip not found"
// @Router /v1/trips/{id}/costs [get]
func (h *TripHandler) GetTripCostsHandler(c *gin.Context) {
	tc, err := h.tripService.GetTripCosts(c.Request.Context(), c.Param("id"))
	if err != nil {
		_ = c.Error(err)
		return
	}

	if tc.Preparing {
		c.JSON(http.StatusOK, TripCostsResponse{TripID: tc.TripID, Status: "preparing"})
		return
	}

	total := tc.Rollup.GrandTotalCost()
	c.JSON(http.StatusOK, TripCostsResponse{
		TripID:       tc.TripID,
		Status:       "ready",
		Groups:       tc.Rollup.Groups,
		GrandTotal:   tc.Rollup.GrandTotal.StringFixed(2),
		Display:      total.DisplayText(),
		ShortDisplay: total.ShortDisplayText(),
		Points:       tc.Rollup.Points,
	})
}

// ListOwnerTripsHandler godoc
// @Summary List an owner's trips
// @Description Documents that cannot be assembled are left out and counted in "rejected".
// @Tags trips
// @Produce json
// @Param ownerId path string true "Owner ID"
// @Success 200 {object} OwnerTripsResponse
// @Router /v1/owners/{ownerId}/trips [get]
func (h *TripHandler) ListOwnerTripsHandler(c *gin.Context) {
	out, err := h.tripService.ListOwnerTrips(c.Request.Context(), c.Param("ownerId"))
	if err != nil {
		_ = c.Error(err)
		return
	}

	resp := OwnerTripsResponse{
		Trips:    make([]document.Fragment, 0, len(out.Trips)),
		Rejected: out.Rejected,
	}
	for _, t := range out.Trips {
		resp.Trips = append(resp.Trips, trips.EncodeTrip(t))
	}
	c.JSON(http.StatusOK, resp)
}
