package handler

import (
	"encoding/json"
	"net/http"

	"shopcart-api/internal/service"
	"shopcart-api/pkg/apierror"
	"shopcart-api/pkg/response"

	"github.com/go-chi/chi/v5"
)

// ProductHandler handles catalog HTTP requests. Reads are public;
// mutations sit behind the admin middleware.
type ProductHandler struct {
	catalog *service.CatalogService
}

// NewProductHandler creates a new product handler.
func NewProductHandler(catalog *service.CatalogService) *ProductHandler {
	return &ProductHandler{catalog: catalog}
}

// List handles GET /products
func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	products, err := h.catalog.List(r.Context())
	if err != nil {
		response.Error(w, err)
		return
	}

	response.OK(w, products)
}

// Get handles GET /products/{product_id}
func (h *ProductHandler) Get(w http.ResponseWriter, r *http.Request) {
	productID := chi.URLParam(r, "product_id")

	product, err := h.catalog.Get(r.Context(), productID)
	if err != nil {
		response.Error(w, err)
		return
	}

	response.OK(w, product)
}

// Create handles POST /admin/products
func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	var in service.ProductInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		response.Error(w, apierror.BadRequest("invalid request body"))
		return
	}
	defer r.Body.Close()

	product, err := h.catalog.Create(r.Context(), in)
	if err != nil {
		response.Error(w, err)
		return
	}

	response.Created(w, product)
}

// Update handles PUT /admin/products/{product_id}
func (h *ProductHandler) Update(w http.ResponseWriter, r *http.Request) {
	productID := chi.URLParam(r, "product_id")

	var in service.ProductInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		response.Error(w, apierror.BadRequest("invalid request body"))
		return
	}
	defer r.Body.Close()

	product, err := h.catalog.Update(r.Context(), productID, in)
	if err != nil {
		response.Error(w, err)
		return
	}

	response.OK(w, product)
}

// Delete handles DELETE /admin/products/{product_id}
func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request) {
	productID := chi.URLParam(r, "product_id")

	if err := h.catalog.Delete(r.Context(), productID); err != nil {
		response.Error(w, err)
		return
	}

	response.NoContent(w)
}
