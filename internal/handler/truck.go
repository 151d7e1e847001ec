package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"haulhub/internal/domain"
	"haulhub/internal/service"
)

// TruckHandler handles HTTP requests for fleet trucks.
type TruckHandler struct {
	truckService *service.TruckService
}

// NewTruckHandler creates a new TruckHandler.
func NewTruckHandler(truckService *service.TruckService) *TruckHandler {
	return &TruckHandler{truckService: truckService}
}

// TruckRequest is the HTTP request body for creating or updating a truck.
type TruckRequest struct {
	Make         string  `json:"make"`
	Model        string  `json:"model"`
	Year         int     `json:"year"`
	LicensePlate string  `json:"license_plate"`
	Capacity     float64 `json:"capacity"`
	FuelType     string  `json:"fuel_type"`
	Status       string  `json:"status,omitempty"`
	DriverID     *int64  `json:"driver_id,omitempty"`
}

// TruckResponse is the HTTP shape of a fleet truck.
type TruckResponse struct {
	ID           int64   `json:"id"`
	Make         string  `json:"make"`
	Model        string  `json:"model"`
	Year         int     `json:"year"`
	LicensePlate string  `json:"license_plate"`
	Capacity     float64 `json:"capacity"`
	FuelType     string  `json:"fuel_type"`
	Status       string  `json:"status"`
	DriverID     *int64  `json:"driver_id,omitempty"`
	CreatedAt    string  `json:"created_at"`
	UpdatedAt    string  `json:"updated_at"`
}

func toTruckResponse(truck *domain.Truck) TruckResponse {
	return TruckResponse{
		ID:           truck.ID,
		Make:         truck.Make,
		Model:        truck.Model,
		Year:         truck.Year,
		LicensePlate: truck.LicensePlate,
		Capacity:     truck.Capacity,
		FuelType:     truck.FuelType,
		Status:       string(truck.Status),
		DriverID:     truck.DriverID,
		CreatedAt:    truck.CreatedAt.Format(time.RFC3339),
		UpdatedAt:    truck.UpdatedAt.Format(time.RFC3339),
	}
}

func toServiceTruckRequest(req TruckRequest) service.CreateTruckRequest {
	return service.CreateTruckRequest{
		Make:         req.Make,
		Model:        req.Model,
		Year:         req.Year,
		LicensePlate: req.LicensePlate,
		Capacity:     req.Capacity,
		FuelType:     req.FuelType,
		Status:       domain.TruckStatus(req.Status),
		DriverID:     req.DriverID,
	}
}

// List handles GET /api/v1/trucks
func (h *TruckHandler) List(c *gin.Context) {
	trucks, err := h.truckService.GetAllTrucks(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	response := make([]TruckResponse, 0, len(trucks))
	for _, truck := range trucks {
		response = append(response, toTruckResponse(truck))
	}

	respondData(c, http.StatusOK, gin.H{"trucks": response})
}

// Create handles POST /api/v1/trucks
func (h *TruckHandler) Create(c *gin.Context) {
	var req TruckRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}

	truck, err := h.truckService.CreateTruck(c.Request.Context(), toServiceTruckRequest(req))
	if err != nil {
		respondError(c, err)
		return
	}

	respondData(c, http.StatusCreated, gin.H{"truck": toTruckResponse(truck)})
}

// Get handles GET /api/v1/trucks/:id
func (h *TruckHandler) Get(c *gin.Context) {
	truckID, err := parseID(c.Param("id"))
	if err != nil {
		respondError(c, service.ErrInvalidTruckID)
		return
	}

	truck, err := h.truckService.GetTruck(c.Request.Context(), truckID)
	if err != nil {
		respondError(c, err)
		return
	}

	respondData(c, http.StatusOK, gin.H{"truck": toTruckResponse(truck)})
}

// Update handles PUT /api/v1/trucks/:id
func (h *TruckHandler) Update(c *gin.Context) {
	truckID, err := parseID(c.Param("id"))
	if err != nil {
		respondError(c, service.ErrInvalidTruckID)
		return
	}

	var req TruckRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}

	truck, err := h.truckService.UpdateTruck(c.Request.Context(), truckID, toServiceTruckRequest(req))
	if err != nil {
		respondError(c, err)
		return
	}

	respondData(c, http.StatusOK, gin.H{"truck": toTruckResponse(truck)})
}

// Delete handles DELETE /api/v1/trucks/:id
func (h *TruckHandler) Delete(c *gin.Context) {
	truckID, err := parseID(c.Param("id"))
	if err != nil {
		respondError(c, service.ErrInvalidTruckID)
		return
	}

	if err := h.truckService.DeleteTruck(c.Request.Context(), truckID); err != nil {
		respondError(c, err)
		return
	}

	respondMessage(c, http.StatusOK, "truck deleted")
}
