package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"haulhub/internal/domain"
	"haulhub/internal/middleware"
	"haulhub/internal/repository"
	"haulhub/internal/service"
)

var errDateRequired = errors.New("pickup and delivery dates are required")

// HaulHandler handles HTTP requests for hauls.
type HaulHandler struct {
	haulService *service.HaulService
}

// NewHaulHandler creates a new HaulHandler.
func NewHaulHandler(haulService *service.HaulService) *HaulHandler {
	return &HaulHandler{haulService: haulService}
}

// LegRequest is one end of a haul in the HTTP request body.
type LegRequest struct {
	Address      string      `json:"address"`
	City         string      `json:"city"`
	State        string      `json:"state"`
	Zip          string      `json:"zip"`
	Date         string      `json:"date"`
	ContactName  string      `json:"contact_name"`
	ContactPhone string      `json:"contact_phone"`
	Instructions string      `json:"instructions,omitempty"`
	Coordinates  *[2]float64 `json:"coordinates,omitempty"`
}

// LoadRequest describes the cargo in the HTTP request body.
type LoadRequest struct {
	Type                string   `json:"type"`
	Description         string   `json:"description"`
	Weight              *float64 `json:"weight,omitempty"`
	Volume              *float64 `json:"volume,omitempty"`
	Hazardous           bool     `json:"hazardous"`
	SpecialRequirements string   `json:"special_requirements,omitempty"`
}

// PricingRequest carries the optional pricing block of a haul request.
type PricingRequest struct {
	QuotedPrice   *float64 `json:"quoted_price,omitempty"`
	FinalPrice    *float64 `json:"final_price,omitempty"`
	FuelCost      *float64 `json:"fuel_cost,omitempty"`
	PaymentStatus string   `json:"payment_status,omitempty"`
	PaymentMethod string   `json:"payment_method,omitempty"`
}

// CreateHaulRequest is the HTTP request body for creating or updating a haul.
type CreateHaulRequest struct {
	HaulType          string          `json:"haul_type"`
	Pickup            LegRequest      `json:"pickup"`
	Delivery          LegRequest      `json:"delivery"`
	Load              LoadRequest     `json:"load"`
	Pricing           *PricingRequest `json:"pricing,omitempty"`
	DistanceMiles     *float64        `json:"distance_miles,omitempty"`
	EstimatedDuration *float64        `json:"estimated_duration_hours,omitempty"`
	TruckID           *int64          `json:"truck_id,omitempty"`
	Notes             string          `json:"notes,omitempty"`
	Status            string          `json:"status,omitempty"` // ignored; hauls always enter pending
}

// AssignHaulRequest is the HTTP request body for assigning a driver.
type AssignHaulRequest struct {
	DriverID int64 `json:"driver_id"`
}

// HaulResponse is the flat HTTP shape of a haul, mirroring what the
// dashboard stores and re-submits.
type HaulResponse struct {
	ID                   int64    `json:"id"`
	HaulType             string   `json:"haul_type"`
	PickupAddress        string   `json:"pickup_address"`
	PickupCity           string   `json:"pickup_city"`
	PickupState          string   `json:"pickup_state"`
	PickupZip            string   `json:"pickup_zip"`
	PickupDate           string   `json:"pickup_date"`
	PickupContactName    string   `json:"pickup_contact_name"`
	PickupContactPhone   string   `json:"pickup_contact_phone"`
	PickupInstructions   string   `json:"pickup_instructions,omitempty"`
	PickupLatitude       *float64 `json:"pickup_latitude,omitempty"`
	PickupLongitude      *float64 `json:"pickup_longitude,omitempty"`
	DeliveryAddress      string   `json:"delivery_address"`
	DeliveryCity         string   `json:"delivery_city"`
	DeliveryState        string   `json:"delivery_state"`
	DeliveryZip          string   `json:"delivery_zip"`
	DeliveryDate         string   `json:"delivery_date"`
	DeliveryContactName  string   `json:"delivery_contact_name"`
	DeliveryContactPhone string   `json:"delivery_contact_phone"`
	DeliveryInstructions string   `json:"delivery_instructions,omitempty"`
	DeliveryLatitude     *float64 `json:"delivery_latitude,omitempty"`
	DeliveryLongitude    *float64 `json:"delivery_longitude,omitempty"`
	LoadType             string   `json:"load_type"`
	LoadDescription      string   `json:"load_description"`
	LoadWeight           *float64 `json:"load_weight,omitempty"`
	LoadVolume           *float64 `json:"load_volume,omitempty"`
	LoadHazardous        bool     `json:"load_hazardous"`
	SpecialRequirements  string   `json:"special_requirements,omitempty"`
	DistanceMiles        *float64 `json:"distance_miles,omitempty"`
	EstimatedDuration    *float64 `json:"estimated_duration_hours,omitempty"`
	QuotedPrice          *float64 `json:"quoted_price,omitempty"`
	FinalPrice           *float64 `json:"final_price,omitempty"`
	FuelCost             *float64 `json:"fuel_cost,omitempty"`
	PaymentStatus        string   `json:"payment_status"`
	PaymentMethod        string   `json:"payment_method,omitempty"`
	Status               string   `json:"status"`
	Notes                string   `json:"notes,omitempty"`
	UserID               int64    `json:"user_id"`
	TruckID              *int64   `json:"truck_id,omitempty"`
	DriverID             *int64   `json:"driver_id,omitempty"`
	CreatedAt            string   `json:"created_at"`
	UpdatedAt            string   `json:"updated_at"`
}

func toHaulResponse(haul *domain.Haul) HaulResponse {
	return HaulResponse{
		ID:                   haul.ID,
		HaulType:             string(haul.HaulType),
		PickupAddress:        haul.Pickup.Address,
		PickupCity:           haul.Pickup.City,
		PickupState:          haul.Pickup.State,
		PickupZip:            haul.Pickup.Zip,
		PickupDate:           haul.Pickup.Date.Format(time.RFC3339),
		PickupContactName:    haul.Pickup.ContactName,
		PickupContactPhone:   haul.Pickup.ContactPhone,
		PickupInstructions:   haul.Pickup.Instructions,
		PickupLatitude:       haul.Pickup.Latitude,
		PickupLongitude:      haul.Pickup.Longitude,
		DeliveryAddress:      haul.Delivery.Address,
		DeliveryCity:         haul.Delivery.City,
		DeliveryState:        haul.Delivery.State,
		DeliveryZip:          haul.Delivery.Zip,
		DeliveryDate:         haul.Delivery.Date.Format(time.RFC3339),
		DeliveryContactName:  haul.Delivery.ContactName,
		DeliveryContactPhone: haul.Delivery.ContactPhone,
		DeliveryInstructions: haul.Delivery.Instructions,
		DeliveryLatitude:     haul.Delivery.Latitude,
		DeliveryLongitude:    haul.Delivery.Longitude,
		LoadType:             haul.Load.Type,
		LoadDescription:      haul.Load.Description,
		LoadWeight:           haul.Load.Weight,
		LoadVolume:           haul.Load.Volume,
		LoadHazardous:        haul.Load.Hazardous,
		SpecialRequirements:  haul.Load.SpecialRequirements,
		DistanceMiles:        haul.DistanceMiles,
		EstimatedDuration:    haul.EstimatedDuration,
		QuotedPrice:          haul.QuotedPrice,
		FinalPrice:           haul.FinalPrice,
		FuelCost:             haul.FuelCost,
		PaymentStatus:        string(haul.PaymentStatus),
		PaymentMethod:        haul.PaymentMethod,
		Status:               string(haul.Status),
		Notes:                haul.Notes,
		UserID:               haul.UserID,
		TruckID:              haul.TruckID,
		DriverID:             haul.DriverID,
		CreatedAt:            haul.CreatedAt.Format(time.RFC3339),
		UpdatedAt:            haul.UpdatedAt.Format(time.RFC3339),
	}
}

// List handles GET /api/v1/hauls
func (h *HaulHandler) List(c *gin.Context) {
	claims, ok := middleware.ClaimsFromContext(c)
	if !ok {
		respondError(c, service.ErrAccessDenied)
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "10"))

	hauls, total, err := h.haulService.ListHauls(c.Request.Context(), repository.ListHaulsParams{
		Filter:  repository.HaulFilter(c.Query("filter")),
		UserID:  claims.UserID,
		Page:    page,
		PerPage: perPage,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	response := make([]HaulResponse, 0, len(hauls))
	for _, haul := range hauls {
		response = append(response, toHaulResponse(haul))
	}

	respondData(c, http.StatusOK, gin.H{"hauls": response, "total": total})
}

// Create handles POST /api/v1/hauls
func (h *HaulHandler) Create(c *gin.Context) {
	claims, ok := middleware.ClaimsFromContext(c)
	if !ok {
		respondError(c, service.ErrAccessDenied)
		return
	}

	var req CreateHaulRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}

	serviceReq, err := toServiceHaulRequest(req)
	if err != nil {
		respondBadRequest(c, err.Error())
		return
	}
	serviceReq.UserID = claims.UserID

	haul, err := h.haulService.CreateHaul(c.Request.Context(), serviceReq)
	if err != nil {
		respondError(c, err)
		return
	}

	respondData(c, http.StatusCreated, gin.H{"haul": toHaulResponse(haul)})
}

// Get handles GET /api/v1/hauls/:id
func (h *HaulHandler) Get(c *gin.Context) {
	haulID, err := parseID(c.Param("id"))
	if err != nil {
		respondError(c, service.ErrInvalidHaulID)
		return
	}

	haul, err := h.haulService.GetHaul(c.Request.Context(), haulID)
	if err != nil {
		respondError(c, err)
		return
	}

	respondData(c, http.StatusOK, gin.H{"haul": toHaulResponse(haul)})
}

// GetStatus handles GET /api/v1/hauls/:id/status. Served from the Redis
// snapshot when fresh; dispatch boards poll this.
func (h *HaulHandler) GetStatus(c *gin.Context) {
	haulID, err := parseID(c.Param("id"))
	if err != nil {
		respondError(c, service.ErrInvalidHaulID)
		return
	}

	snapshot, err := h.haulService.GetHaulStatus(c.Request.Context(), haulID)
	if err != nil {
		respondError(c, err)
		return
	}

	respondData(c, http.StatusOK, snapshot)
}

// Update handles PUT /api/v1/hauls/:id
func (h *HaulHandler) Update(c *gin.Context) {
	haulID, err := parseID(c.Param("id"))
	if err != nil {
		respondError(c, service.ErrInvalidHaulID)
		return
	}

	var req CreateHaulRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}

	serviceReq, err := toServiceHaulRequest(req)
	if err != nil {
		respondBadRequest(c, err.Error())
		return
	}

	haul, err := h.haulService.UpdateHaul(c.Request.Context(), haulID, serviceReq)
	if err != nil {
		respondError(c, err)
		return
	}

	respondData(c, http.StatusOK, gin.H{"haul": toHaulResponse(haul)})
}

// Delete handles DELETE /api/v1/hauls/:id
func (h *HaulHandler) Delete(c *gin.Context) {
	haulID, err := parseID(c.Param("id"))
	if err != nil {
		respondError(c, service.ErrInvalidHaulID)
		return
	}

	if err := h.haulService.DeleteHaul(c.Request.Context(), haulID); err != nil {
		respondError(c, err)
		return
	}

	respondMessage(c, http.StatusOK, "haul deleted")
}

// Assign handles POST /api/v1/hauls/:id/assign
func (h *HaulHandler) Assign(c *gin.Context) {
	haulID, err := parseID(c.Param("id"))
	if err != nil {
		respondError(c, service.ErrInvalidHaulID)
		return
	}

	var req AssignHaulRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}

	haul, err := h.haulService.Assign(c.Request.Context(), haulID, req.DriverID)
	if err != nil {
		respondError(c, err)
		return
	}

	respondData(c, http.StatusOK, gin.H{"haul": toHaulResponse(haul)})
}

// Start handles POST /api/v1/hauls/:id/start
func (h *HaulHandler) Start(c *gin.Context) {
	h.transition(c, h.haulService.Start)
}

// Complete handles POST /api/v1/hauls/:id/complete
func (h *HaulHandler) Complete(c *gin.Context) {
	h.transition(c, h.haulService.Complete)
}

// Cancel handles POST /api/v1/hauls/:id/cancel
func (h *HaulHandler) Cancel(c *gin.Context) {
	h.transition(c, h.haulService.Cancel)
}

func (h *HaulHandler) transition(c *gin.Context, apply func(ctx context.Context, haulID int64) (*domain.Haul, error)) {
	haulID, err := parseID(c.Param("id"))
	if err != nil {
		respondError(c, service.ErrInvalidHaulID)
		return
	}

	haul, err := apply(c.Request.Context(), haulID)
	if err != nil {
		respondError(c, err)
		return
	}

	respondData(c, http.StatusOK, gin.H{"haul": toHaulResponse(haul)})
}

func parseID(raw string) (int64, error) {
	return strconv.ParseInt(raw, 10, 64)
}

// toServiceHaulRequest converts the HTTP payload into a service request,
// parsing dates and flattening coordinates.
func toServiceHaulRequest(req CreateHaulRequest) (service.CreateHaulRequest, error) {
	pickup, err := toLeg(req.Pickup)
	if err != nil {
		return service.CreateHaulRequest{}, err
	}
	delivery, err := toLeg(req.Delivery)
	if err != nil {
		return service.CreateHaulRequest{}, err
	}

	out := service.CreateHaulRequest{
		HaulType: domain.HaulType(req.HaulType),
		Pickup:   pickup,
		Delivery: delivery,
		Load: domain.Load{
			Type:                req.Load.Type,
			Description:         req.Load.Description,
			Weight:              req.Load.Weight,
			Volume:              req.Load.Volume,
			Hazardous:           req.Load.Hazardous,
			SpecialRequirements: req.Load.SpecialRequirements,
		},
		DistanceMiles:     req.DistanceMiles,
		EstimatedDuration: req.EstimatedDuration,
		TruckID:           req.TruckID,
		Notes:             req.Notes,
	}

	if req.Pricing != nil {
		out.QuotedPrice = req.Pricing.QuotedPrice
		out.FinalPrice = req.Pricing.FinalPrice
		out.FuelCost = req.Pricing.FuelCost
		out.PaymentStatus = domain.PaymentStatus(req.Pricing.PaymentStatus)
		out.PaymentMethod = req.Pricing.PaymentMethod
	}

	return out, nil
}

func toLeg(req LegRequest) (domain.Leg, error) {
	date, err := parseDate(req.Date)
	if err != nil {
		return domain.Leg{}, err
	}

	leg := domain.Leg{
		Address:      req.Address,
		City:         req.City,
		State:        req.State,
		Zip:          req.Zip,
		Date:         date,
		ContactName:  req.ContactName,
		ContactPhone: req.ContactPhone,
		Instructions: req.Instructions,
	}

	if req.Coordinates != nil {
		lat, lng := req.Coordinates[0], req.Coordinates[1]
		leg.Latitude = &lat
		leg.Longitude = &lng
	}

	return leg, nil
}

// parseDate accepts both RFC3339 timestamps and plain dates, which is
// what the date pickers in the dashboard send.
func parseDate(raw string) (time.Time, error) {
	if raw == "" {
		return time.Time{}, errDateRequired
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", raw)
}
