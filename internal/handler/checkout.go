package handler

import (
	"net/http"

	"shopcart-api/internal/middleware"
	"shopcart-api/internal/service"
	"shopcart-api/pkg/apierror"
	"shopcart-api/pkg/response"
)

// CheckoutHandler handles the checkout endpoint.
type CheckoutHandler struct {
	checkout *service.CheckoutService
}

// NewCheckoutHandler creates a new checkout handler.
func NewCheckoutHandler(checkout *service.CheckoutService) *CheckoutHandler {
	return &CheckoutHandler{checkout: checkout}
}

// CheckoutResponse represents the response for a successful checkout.
type CheckoutResponse struct {
	Message   string `json:"message"`
	TotalCost string `json:"total_cost"`
}

// Checkout handles POST /cart/checkout
func (h *CheckoutHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r.Context())
	if user == nil {
		response.Error(w, apierror.Unauthorized(""))
		return
	}

	result, err := h.checkout.Checkout(r.Context(), user.Username)
	if err != nil {
		response.Error(w, err)
		return
	}

	response.OK(w, CheckoutResponse{
		Message:   "Checkout successful!",
		TotalCost: result.FormattedTotal(),
	})
}
