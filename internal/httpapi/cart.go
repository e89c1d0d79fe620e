package httpapi

import (
	"net/http"

	"herbanusa-be/internal/cart"
	"herbanusa-be/internal/transport"
	"herbanusa-be/internal/utils"

	"github.com/go-chi/chi/v5"
)

func (h *Handler) GetCart(w http.ResponseWriter, r *http.Request) {
	summary, err := h.carts.GetCart(r.Context(), transport.SessionIDFrom(r))
	if err != nil {
		writeError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, summary)
}

type addToCartRequest struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

// AddToCart adds quantity units (default 1) of a product.
func (h *Handler) AddToCart(w http.ResponseWriter, r *http.Request) {
	var req addToCartRequest
	if err := decode(r, &req); err != nil {
		utils.WriteJSONError(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if req.Quantity == 0 {
		req.Quantity = 1
	}

	summary, err := h.carts.AddToCart(r.Context(), cart.AddToCartParams{
		SessionID: transport.SessionIDFrom(r),
		ProductID: req.ProductID,
		Quantity:  req.Quantity,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, summary)
}

type updateQuantityRequest struct {
	Quantity *int `json:"quantity"`
}

func (h *Handler) UpdateCartItem(w http.ResponseWriter, r *http.Request) {
	var req updateQuantityRequest
	if err := decode(r, &req); err != nil || req.Quantity == nil {
		utils.WriteJSONError(w, "quantity is required", http.StatusBadRequest)
		return
	}

	summary, err := h.carts.UpdateQuantity(r.Context(), cart.UpdateQuantityParams{
		SessionID: transport.SessionIDFrom(r),
		ProductID: chi.URLParam(r, "productId"),
		Quantity:  *req.Quantity,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, summary)
}

func (h *Handler) RemoveCartItem(w http.ResponseWriter, r *http.Request) {
	summary, err := h.carts.RemoveFromCart(r.Context(), transport.SessionIDFrom(r), chi.URLParam(r, "productId"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, summary)
}
