package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"trips/internal/domain"
	"trips/internal/service"
)

// TripHandler handles HTTP requests for trips.
type TripHandler struct {
	tripService *service.TripService
}

// NewTripHandler creates a new TripHandler.
func NewTripHandler(tripService *service.TripService) *TripHandler {
	return &TripHandler{tripService: tripService}
}

// TripResponse is the HTTP projection of a stored trip.
type TripResponse struct {
	TripID         string   `json:"trip_id"`
	RiderID        string   `json:"rider_id"`
	DriverID       string   `json:"driver_id,omitempty"`
	PickupLocation string   `json:"pickup_location"`
	DropLocation   string   `json:"drop_location"`
	Status         string   `json:"status"`
	Fare           *float64 `json:"fare,omitempty"`
	Distance       *float64 `json:"distance,omitempty"`
	CreatedAt      string   `json:"created_at"`
	UpdatedAt      string   `json:"updated_at"`
}

func toTripResponse(trip *domain.Trip) TripResponse {
	return TripResponse{
		TripID:         trip.ID,
		RiderID:        trip.RiderID,
		DriverID:       trip.DriverID,
		PickupLocation: trip.PickupLocation,
		DropLocation:   trip.DropLocation,
		Status:         string(trip.Status),
		Fare:           trip.Fare,
		Distance:       trip.Distance,
		CreatedAt:      trip.CreatedAt.Format(time.RFC3339),
		UpdatedAt:      trip.UpdatedAt.Format(time.RFC3339),
	}
}

// CreateTripRequest is the body for POST /v1/trips.
type CreateTripRequest struct {
	RiderID string `json:"rider_id"`
	Pickup  string `json:"pickup"`
	Drop    string `json:"drop"`
}

// CreateTripResponse is the response for POST /v1/trips.
type CreateTripResponse struct {
	TripID   string `json:"trip_id"`
	Status   string `json:"status"`
	DriverID string `json:"driver_id,omitempty"`
	Message  string `json:"message"`
}

// CreateTrip handles POST /v1/trips
func (h *TripHandler) CreateTrip(c *gin.Context) {
	var req CreateTripRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	result, err := h.tripService.CreateTrip(c.Request.Context(), service.CreateTripRequest{
		RiderID:        req.RiderID,
		PickupLocation: req.Pickup,
		DropLocation:   req.Drop,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	message := "no driver accepted yet, trip remains requested"
	if result.Assigned {
		message = "driver assigned"
	}

	respondJSON(c, http.StatusCreated, CreateTripResponse{
		TripID:   result.Trip.ID,
		Status:   string(result.Trip.Status),
		DriverID: result.Trip.DriverID,
		Message:  message,
	})
}

// CompleteTripRequest is the body for PUT /v1/trips/:id/complete.
type CompleteTripRequest struct {
	Distance *float64 `json:"distance"`
}

// CompleteTripResponse is the response for PUT /v1/trips/:id/complete.
type CompleteTripResponse struct {
	TripID        string  `json:"trip_id"`
	Status        string  `json:"status"`
	Fare          float64 `json:"fare"`
	Distance      float64 `json:"distance"`
	PaymentStatus string  `json:"payment_status"`
	Message       string  `json:"message"`
}

// CompleteTrip handles PUT /v1/trips/:id/complete
func (h *TripHandler) CompleteTrip(c *gin.Context) {
	var req CompleteTripRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	result, err := h.tripService.CompleteTrip(c.Request.Context(), service.CompleteTripRequest{
		TripID:   c.Param("id"),
		Distance: req.Distance,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	message := "trip completed"
	if result.PaymentStatus != domain.PaymentStatusSuccess {
		message = "trip ended but payment failed"
	}

	respondJSON(c, http.StatusOK, CompleteTripResponse{
		TripID:        result.Trip.ID,
		Status:        string(result.Trip.Status),
		Fare:          *result.Trip.Fare,
		Distance:      *result.Trip.Distance,
		PaymentStatus: string(result.PaymentStatus),
		Message:       message,
	})
}

// CancelTripResponse is the response for the cancel endpoints.
type CancelTripResponse struct {
	TripID  string `json:"trip_id"`
	Status  string `json:"status"`
	Message string `json:"message"`
}

// CancelTrip handles PUT and GET /v1/trips/:id/cancel
func (h *TripHandler) CancelTrip(c *gin.Context) {
	trip, err := h.tripService.CancelTrip(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, CancelTripResponse{
		TripID:  trip.ID,
		Status:  string(trip.Status),
		Message: "trip cancelled",
	})
}

// GetTrip handles GET /v1/trips/:id
func (h *TripHandler) GetTrip(c *gin.Context) {
	trip, err := h.tripService.GetTrip(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, toTripResponse(trip))
}

// GetAll handles GET /v1/trips
func (h *TripHandler) GetAll(c *gin.Context) {
	trips, err := h.tripService.GetAllTrips(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	response := make([]TripResponse, 0, len(trips))
	for _, trip := range trips {
		response = append(response, toTripResponse(trip))
	}

	c.JSON(http.StatusOK, response)
}
