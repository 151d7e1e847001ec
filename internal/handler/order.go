package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"haulhub/internal/domain"
	"haulhub/internal/pricing"
	"haulhub/internal/service"
)

// OrderHandler handles HTTP requests for material orders and the
// pricing catalog.
type OrderHandler struct {
	orderService *service.OrderService
}

// NewOrderHandler creates a new OrderHandler.
func NewOrderHandler(orderService *service.OrderService) *OrderHandler {
	return &OrderHandler{orderService: orderService}
}

// QuoteRequest is the HTTP request body for a price preview.
type QuoteRequest struct {
	MaterialID  string  `json:"material_id"`
	TruckTypeID string  `json:"truck_type_id"`
	Quantity    int     `json:"quantity"`
	DistanceKm  float64 `json:"distance_km"`
}

// CustomerRequest carries the customer block of an order request.
type CustomerRequest struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Email   string `json:"email,omitempty"`
	Address string `json:"address,omitempty"`
}

// CreateOrderRequest is the HTTP request body for placing an order.
type CreateOrderRequest struct {
	MaterialID  string          `json:"material_id"`
	TruckTypeID string          `json:"truck_type_id"`
	Quantity    int             `json:"quantity"`
	DistanceKm  float64         `json:"distance_km"`
	Customer    CustomerRequest `json:"customer"`
}

// UpdateOrderStatusRequest is the HTTP request body for advancing an order.
type UpdateOrderStatusRequest struct {
	Status string `json:"status"`
}

// MaterialResponse is the HTTP shape of a catalog material.
type MaterialResponse struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	PricePerTrip int    `json:"price_per_trip"`
	Unit         string `json:"unit"`
}

// TruckTypeResponse is the HTTP shape of a pricing truck class.
type TruckTypeResponse struct {
	ID              string  `json:"id"`
	Name            string  `json:"name"`
	Capacity        string  `json:"capacity"`
	PriceMultiplier float64 `json:"price_multiplier"`
}

func toMaterialResponse(material domain.Material) MaterialResponse {
	return MaterialResponse{
		ID:           material.ID,
		Name:         material.Name,
		PricePerTrip: material.PricePerTrip,
		Unit:         material.Unit,
	}
}

func toTruckTypeResponse(truck domain.TruckType) TruckTypeResponse {
	return TruckTypeResponse{
		ID:              truck.ID,
		Name:            truck.Name,
		Capacity:        truck.Capacity,
		PriceMultiplier: truck.PriceMultiplier,
	}
}

// OrderResponse is the HTTP shape of an order.
type OrderResponse struct {
	ID         string            `json:"id"`
	Material   MaterialResponse  `json:"material"`
	Truck      TruckTypeResponse `json:"truck"`
	Quantity   int               `json:"quantity"`
	DistanceKm float64           `json:"distance_km"`
	Customer   CustomerRequest   `json:"customer"`
	TotalPrice int               `json:"total_price"`
	Status     string            `json:"status"`
	CreatedAt  string            `json:"created_at"`
}

func toOrderResponse(order *domain.Order) OrderResponse {
	return OrderResponse{
		ID:         order.ID,
		Material:   toMaterialResponse(order.Material),
		Truck:      toTruckTypeResponse(order.Truck),
		Quantity:   order.Quantity,
		DistanceKm: order.DistanceKm,
		Customer: CustomerRequest{
			Name:    order.Customer.Name,
			Phone:   order.Customer.Phone,
			Email:   order.Customer.Email,
			Address: order.Customer.Address,
		},
		TotalPrice: order.TotalPrice,
		Status:     string(order.Status),
		CreatedAt:  order.CreatedAt.Format(time.RFC3339),
	}
}

// Quote handles POST /api/v1/orders/quote. Pure price preview; nothing
// is persisted.
func (h *OrderHandler) Quote(c *gin.Context) {
	var req QuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}

	total, err := h.orderService.Quote(service.QuoteRequest{
		MaterialID:  req.MaterialID,
		TruckTypeID: req.TruckTypeID,
		Quantity:    req.Quantity,
		DistanceKm:  req.DistanceKm,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	respondData(c, http.StatusOK, gin.H{"total_price": total})
}

// Create handles POST /api/v1/orders
func (h *OrderHandler) Create(c *gin.Context) {
	var req CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}

	order, err := h.orderService.CreateOrder(c.Request.Context(), service.CreateOrderRequest{
		MaterialID:  req.MaterialID,
		TruckTypeID: req.TruckTypeID,
		Quantity:    req.Quantity,
		DistanceKm:  req.DistanceKm,
		Customer: domain.CustomerInfo{
			Name:    req.Customer.Name,
			Phone:   req.Customer.Phone,
			Email:   req.Customer.Email,
			Address: req.Customer.Address,
		},
	})
	if err != nil {
		respondError(c, err)
		return
	}

	respondData(c, http.StatusCreated, gin.H{"order": toOrderResponse(order)})
}

// List handles GET /api/v1/orders
func (h *OrderHandler) List(c *gin.Context) {
	orders, err := h.orderService.GetAllOrders(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	response := make([]OrderResponse, 0, len(orders))
	for _, order := range orders {
		response = append(response, toOrderResponse(order))
	}

	respondData(c, http.StatusOK, gin.H{"orders": response})
}

// Get handles GET /api/v1/orders/:id
func (h *OrderHandler) Get(c *gin.Context) {
	order, err := h.orderService.GetOrder(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	respondData(c, http.StatusOK, gin.H{"order": toOrderResponse(order)})
}

// UpdateStatus handles PATCH /api/v1/orders/:id/status
func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	var req UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}

	order, err := h.orderService.UpdateOrderStatus(c.Request.Context(), c.Param("id"), domain.OrderStatus(req.Status))
	if err != nil {
		respondError(c, err)
		return
	}

	respondData(c, http.StatusOK, gin.H{"order": toOrderResponse(order)})
}

// Materials handles GET /api/v1/materials
func (h *OrderHandler) Materials(c *gin.Context) {
	materials := pricing.Materials()
	response := make([]MaterialResponse, 0, len(materials))
	for _, material := range materials {
		response = append(response, toMaterialResponse(material))
	}
	respondData(c, http.StatusOK, gin.H{"materials": response})
}

// TruckTypes handles GET /api/v1/truck-types
func (h *OrderHandler) TruckTypes(c *gin.Context) {
	truckTypes := pricing.TruckTypes()
	response := make([]TruckTypeResponse, 0, len(truckTypes))
	for _, truck := range truckTypes {
		response = append(response, toTruckTypeResponse(truck))
	}
	respondData(c, http.StatusOK, gin.H{"truck_types": response})
}
