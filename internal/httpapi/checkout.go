package httpapi

import (
	"errors"
	"net/http"

	"herbanusa-be/internal/checkout"
	"herbanusa-be/internal/transport"
	"herbanusa-be/internal/utils"
)

// BeginCheckout starts (or resumes) checkout for the session's cart.
func (h *Handler) BeginCheckout(w http.ResponseWriter, r *http.Request) {
	sid := transport.SessionIDFrom(r)
	s, err := h.checkouts.Begin(r.Context(), sid, h.carts.Cart(sid))
	if err != nil {
		writeError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, s.View())
}

func (h *Handler) GetCheckout(w http.ResponseWriter, r *http.Request) {
	s, err := h.checkouts.Get(transport.SessionIDFrom(r))
	if err != nil {
		writeError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, s.View())
}

func (h *Handler) DiscardCheckout(w http.ResponseWriter, r *http.Request) {
	if !h.checkouts.Discard(transport.SessionIDFrom(r)) {
		writeError(w, r, checkout.ErrSessionNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type checkoutOptions struct {
	Shipping []checkout.ShippingOption `json:"shipping"`
	Payment  []checkout.PaymentOption  `json:"payment"`
}

func (h *Handler) CheckoutOptions(w http.ResponseWriter, r *http.Request) {
	utils.WriteJSON(w, http.StatusOK, checkoutOptions{
		Shipping: checkout.ShippingOptions(),
		Payment:  checkout.PaymentOptions(),
	})
}

func (h *Handler) SetAddress(w http.ResponseWriter, r *http.Request) {
	var addr checkout.Address
	if err := decode(r, &addr); err != nil {
		utils.WriteJSONError(w, "invalid request body", http.StatusBadRequest)
		return
	}
	h.updateSession(w, r, func(s *checkout.Session) (checkout.View, error) {
		return s.SetAddress(addr)
	})
}

type shippingRequest struct {
	Tier checkout.Tier `json:"tier"`
}

func (h *Handler) SelectShipping(w http.ResponseWriter, r *http.Request) {
	var req shippingRequest
	if err := decode(r, &req); err != nil {
		utils.WriteJSONError(w, "invalid request body", http.StatusBadRequest)
		return
	}
	h.updateSession(w, r, func(s *checkout.Session) (checkout.View, error) {
		return s.SelectShipping(req.Tier)
	})
}

type paymentRequest struct {
	Method checkout.PaymentMethod `json:"method"`
}

func (h *Handler) SelectPayment(w http.ResponseWriter, r *http.Request) {
	var req paymentRequest
	if err := decode(r, &req); err != nil {
		utils.WriteJSONError(w, "invalid request body", http.StatusBadRequest)
		return
	}
	h.updateSession(w, r, func(s *checkout.Session) (checkout.View, error) {
		return s.SelectPayment(req.Method)
	})
}

// NextStage advances checkout. Leaving payment blocks for the processing
// delay and answers with the success view.
func (h *Handler) NextStage(w http.ResponseWriter, r *http.Request) {
	h.updateSession(w, r, func(s *checkout.Session) (checkout.View, error) {
		return s.Next(r.Context())
	})
}

type backResponse struct {
	checkout.View
	Abandoned bool `json:"abandoned"`
}

func (h *Handler) PreviousStage(w http.ResponseWriter, r *http.Request) {
	v, abandoned, err := h.checkouts.Back(r.Context(), transport.SessionIDFrom(r))
	if err != nil {
		writeError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, backResponse{View: v, Abandoned: abandoned})
}

type validationResponse struct {
	errorResponse
	Checkout checkout.View `json:"checkout"`
}

func (h *Handler) updateSession(w http.ResponseWriter, r *http.Request, fn func(*checkout.Session) (checkout.View, error)) {
	s, err := h.checkouts.Get(transport.SessionIDFrom(r))
	if err != nil {
		writeError(w, r, err)
		return
	}

	v, err := fn(s)
	if err != nil {
		var verr *checkout.ValidationError
		if errors.As(err, &verr) {
			utils.WriteJSON(w, http.StatusUnprocessableEntity, validationResponse{
				errorResponse: errorResponse{Error: verr.Message(), Fields: verr.Fields},
				Checkout:      v,
			})
			return
		}
		writeError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, v)
}
