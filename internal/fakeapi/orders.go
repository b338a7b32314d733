package fakeapi

import (
	"math"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/Apurer/go-water-storefront/internal/clients/http/storefront"
	sharederrors "github.com/Apurer/go-water-storefront/internal/shared/errors"
)

// Orders returns the stored orders of the account registered under email, newest first.
func (s *Server) Orders(email string) []storefront.Order {
	s.mu.Lock()
	defer s.mu.Unlock()
	userID := s.byEmail[strings.ToLower(strings.TrimSpace(email))]
	return append([]storefront.Order(nil), s.orders[userID]...)
}

// createOrder prices the order server-side. A repeated Idempotency-Key from the same account
// replays the first response instead of creating a second order.
func (s *Server) createOrder(c *gin.Context) {
	var req storefront.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.responder.Respond(c, sharederrors.ErrBadRequest.WithDetail(err.Error()))
		return
	}
	userID := currentUserID(c)
	key := strings.TrimSpace(c.GetHeader("Idempotency-Key"))

	s.mu.Lock()
	defer s.mu.Unlock()
	if key != "" {
		if prior, ok := s.placements[userID+"/"+key]; ok {
			c.JSON(http.StatusOK, prior)
			return
		}
	}
	order, problem, ok := s.priceOrder(userID, req)
	if !ok {
		s.responder.Respond(c, problem)
		return
	}
	resp := storefront.CreateOrderResponse{Order: order}
	if order.PaymentMethod == "card" {
		resp.ClientSecret = "pi_" + strings.ReplaceAll(order.ID, "-", "") + "_secret_fake"
	}
	s.orders[userID] = append([]storefront.Order{order}, s.orders[userID]...)
	if key != "" {
		s.placements[userID+"/"+key] = resp
	}
	c.JSON(http.StatusCreated, resp)
}

func (s *Server) priceOrder(userID string, req storefront.CreateOrderRequest) (storefront.Order, sharederrors.ProblemDetail, bool) {
	if len(req.Items) == 0 {
		return storefront.Order{}, sharederrors.ErrValidation.WithField("items", "at least one item is required").WithDetail("Order has no items"), false
	}
	if strings.TrimSpace(req.Address) == "" {
		return storefront.Order{}, sharederrors.ErrValidation.WithField("address", "is required").WithDetail("Delivery address is required"), false
	}
	method := strings.ToLower(strings.TrimSpace(req.PaymentMethod))
	if method == "" {
		method = "cod"
	}
	if method != "cod" && method != "card" {
		return storefront.Order{}, sharederrors.ErrValidation.WithField("paymentMethod", "must be cod or card").WithDetail("Unsupported payment method"), false
	}
	now := s.now().UTC()
	order := storefront.Order{
		ID:            uuid.NewString(),
		Customer:      userID,
		Status:        "placed",
		Address:       strings.TrimSpace(req.Address),
		Notes:         req.Notes,
		PaymentMethod: method,
		PaymentStatus: "pending",
		CreatedAt:     &now,
	}
	var total float64
	for _, line := range req.Items {
		product, ok := s.product(line.Product)
		if !ok || !product.Active {
			return storefront.Order{}, sharederrors.NewNotFoundProblem("product", line.Product), false
		}
		if line.Quantity < 1 {
			return storefront.Order{}, sharederrors.ErrValidation.WithField("quantity", "must be at least 1").WithDetailf("Invalid quantity for %s", product.Name), false
		}
		order.Items = append(order.Items, storefront.OrderItem{
			Product:   storefront.OrderProduct{ID: product.ID, Name: product.Name},
			Quantity:  line.Quantity,
			UnitPrice: product.Price,
		})
		total += product.Price * float64(line.Quantity)
	}
	order.TotalAmount = math.Round(total*100) / 100
	return order, sharederrors.ProblemDetail{}, true
}

func (s *Server) listOrders(c *gin.Context) {
	s.mu.Lock()
	orders := append([]storefront.Order{}, s.orders[currentUserID(c)]...)
	s.mu.Unlock()
	c.JSON(http.StatusOK, orders)
}

// SeedOrder places an order for the account registered under email without going through HTTP.
func (s *Server) SeedOrder(email string, req storefront.CreateOrderRequest) (storefront.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	userID, ok := s.byEmail[strings.ToLower(strings.TrimSpace(email))]
	if !ok {
		return storefront.Order{}, sharederrors.NewNotFoundProblem("account", email)
	}
	order, problem, ok := s.priceOrder(userID, req)
	if !ok {
		return storefront.Order{}, problem
	}
	s.orders[userID] = append([]storefront.Order{order}, s.orders[userID]...)
	return order, nil
}
