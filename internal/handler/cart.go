package handler

import (
	"encoding/json"
	"fmt"
	"net/http"

	"shopcart-api/internal/middleware"
	"shopcart-api/internal/service"
	"shopcart-api/pkg/apierror"
	"shopcart-api/pkg/response"

	"github.com/go-chi/chi/v5"
)

// CartHandler handles cart HTTP requests for the authenticated user.
type CartHandler struct {
	carts *service.CartService
}

// NewCartHandler creates a new cart handler.
func NewCartHandler(carts *service.CartService) *CartHandler {
	return &CartHandler{carts: carts}
}

// CartItemRequest represents the request body for add and update calls.
type CartItemRequest struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

// Add handles POST /cart/add
func (h *CartHandler) Add(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r.Context())
	if user == nil {
		response.Error(w, apierror.Unauthorized(""))
		return
	}

	var req CartItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, apierror.BadRequest("invalid request body"))
		return
	}
	defer r.Body.Close()

	product, err := h.carts.Add(r.Context(), user.Username, req.ProductID, req.Quantity)
	if err != nil {
		response.Error(w, err)
		return
	}

	response.Message(w, http.StatusOK,
		fmt.Sprintf("Added %d of product %s to cart.", req.Quantity, product.Name))
}

// Get handles GET /cart
func (h *CartHandler) Get(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r.Context())
	if user == nil {
		response.Error(w, apierror.Unauthorized(""))
		return
	}

	cart, err := h.carts.Get(r.Context(), user.Username)
	if err != nil {
		response.Error(w, err)
		return
	}

	response.OK(w, cart)
}

// UpdateQuantity handles PUT /cart
func (h *CartHandler) UpdateQuantity(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r.Context())
	if user == nil {
		response.Error(w, apierror.Unauthorized(""))
		return
	}

	var req CartItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, apierror.BadRequest("invalid request body"))
		return
	}
	defer r.Body.Close()

	product, err := h.carts.SetQuantity(r.Context(), user.Username, req.ProductID, req.Quantity)
	if err != nil {
		response.Error(w, err)
		return
	}

	response.Message(w, http.StatusOK,
		fmt.Sprintf("Updated quantity for product %s to %d.", product.Name, req.Quantity))
}

// Remove handles DELETE /cart/{product_id}
func (h *CartHandler) Remove(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r.Context())
	if user == nil {
		response.Error(w, apierror.Unauthorized(""))
		return
	}

	productID := chi.URLParam(r, "product_id")

	if err := h.carts.Remove(r.Context(), user.Username, productID); err != nil {
		response.Error(w, err)
		return
	}

	response.Message(w, http.StatusOK,
		fmt.Sprintf("Product %s removed from cart.", productID))
}

// Clear handles DELETE /cart
func (h *CartHandler) Clear(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r.Context())
	if user == nil {
		response.Error(w, apierror.Unauthorized(""))
		return
	}

	if err := h.carts.Clear(r.Context(), user.Username); err != nil {
		response.Error(w, err)
		return
	}

	response.Message(w, http.StatusOK, "Cart cleared successfully.")
}
