package httpapi

import (
	"errors"
	"io"
	"net/http"
	"slices"
	"strings"

	"herbanusa-be/internal/order"
	"herbanusa-be/internal/product"
	"herbanusa-be/internal/utils"

	"github.com/go-chi/chi/v5"
)

// orderResponse adds the badge text. Closed orders show no action buttons.
type orderResponse struct {
	*order.Order
	StatusLabel string `json:"statusLabel"`
	Closed      bool   `json:"closed"`
}

func toOrderResponse(o *order.Order) orderResponse {
	return orderResponse{Order: o, StatusLabel: o.Status.Label(), Closed: o.Status.IsTerminal()}
}

func toOrderResponses(orders []*order.Order) []orderResponse {
	out := make([]orderResponse, len(orders))
	for i, o := range orders {
		out[i] = toOrderResponse(o)
	}
	return out
}

func parseStatuses(raw string) ([]order.Status, error) {
	if raw == "" {
		return nil, nil
	}
	var out []order.Status
	for _, part := range strings.Split(raw, ",") {
		st, err := order.ParseStatus(part)
		if err != nil {
			return nil, err
		}
		if !slices.Contains(out, st) {
			out = append(out, st)
		}
	}
	return out, nil
}

func (h *Handler) Dashboard(w http.ResponseWriter, r *http.Request) {
	d, err := h.orders.Dashboard(r.Context(), utils.ViewerFrom(r.Context()).SellerID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, d)
}

// FarmerOrders lists orders containing the farmer's products. status is an
// optional comma separated filter.
func (h *Handler) FarmerOrders(w http.ResponseWriter, r *http.Request) {
	statuses, err := parseStatuses(r.URL.Query().Get("status"))
	if err != nil {
		writeError(w, r, err)
		return
	}

	orders, err := h.orders.ListForFarmer(r.Context(), utils.ViewerFrom(r.Context()).SellerID, statuses...)
	if err != nil {
		writeError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, toOrderResponses(orders))
}

func (h *Handler) ProcessingOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.orders.Processing(r.Context(), utils.ViewerFrom(r.Context()).SellerID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, toOrderResponses(orders))
}

// OrdersByStatus serves trusted services; it is not scoped to a seller.
func (h *Handler) OrdersByStatus(w http.ResponseWriter, r *http.Request) {
	st, err := order.ParseStatus(r.URL.Query().Get("status"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	orders, err := h.orders.ListByStatus(r.Context(), st)
	if err != nil {
		writeError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, toOrderResponses(orders))
}

type advanceRequest struct {
	Status order.Status `json:"status"`
}

// AdvanceOrder moves one of the farmer's orders to the requested status, or
// to the next one when the body names none.
func (h *Handler) AdvanceOrder(w http.ResponseWriter, r *http.Request) {
	var req advanceRequest
	if err := decode(r, &req); err != nil && !errors.Is(err, io.EOF) {
		utils.WriteJSONError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	o, ok := h.ownedOrder(w, r)
	if !ok {
		return
	}

	target := req.Status
	if target == "" {
		next, ok := o.Status.Next()
		if !ok {
			writeError(w, r, &order.TransitionError{OrderID: o.ID, From: o.Status, To: o.Status})
			return
		}
		target = next
	} else if !target.Valid() {
		writeError(w, r, order.ErrInvalidStatus)
		return
	}

	updated, err := h.orders.Advance(r.Context(), o.ID, target)
	if err != nil {
		writeError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, toOrderResponse(updated))
}

func (h *Handler) RejectOrder(w http.ResponseWriter, r *http.Request) {
	o, ok := h.ownedOrder(w, r)
	if !ok {
		return
	}

	updated, err := h.orders.Reject(r.Context(), o.ID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, toOrderResponse(updated))
}

func (h *Handler) ownedOrder(w http.ResponseWriter, r *http.Request) (*order.Order, bool) {
	o, err := h.orders.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, err)
		return nil, false
	}
	if !o.HasSeller(utils.ViewerFrom(r.Context()).SellerID) {
		writeError(w, r, order.ErrNotOwner)
		return nil, false
	}
	return o, true
}

func (h *Handler) FarmerProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.products.List(r.Context(), product.Filter{
		SellerID: utils.ViewerFrom(r.Context()).SellerID,
		Sort:     product.SortNewest,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	if products == nil {
		products = []*product.Product{}
	}
	utils.WriteJSON(w, http.StatusOK, products)
}

type productRequest struct {
	Name        string           `json:"name"`
	Price       *int64           `json:"price"`
	Stock       *int             `json:"stock"`
	Description string           `json:"description"`
	ImageURL    string           `json:"imageUrl"`
	Category    product.Category `json:"category"`
}

func (p productRequest) input() product.Input {
	return product.Input{
		Name:        p.Name,
		Price:       p.Price,
		Stock:       p.Stock,
		Description: p.Description,
		ImageURL:    p.ImageURL,
		Category:    p.Category,
	}
}

func (h *Handler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var req productRequest
	if err := decode(r, &req); err != nil {
		utils.WriteJSONError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	v := utils.ViewerFrom(r.Context())
	p, err := h.products.Create(r.Context(), product.Seller{ID: v.SellerID, Name: v.Name}, req.input())
	if err != nil {
		writeError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusCreated, p)
}

func (h *Handler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	var req productRequest
	if err := decode(r, &req); err != nil {
		utils.WriteJSONError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	p, err := h.products.Update(r.Context(), utils.ViewerFrom(r.Context()).SellerID, chi.URLParam(r, "id"), req.input())
	if err != nil {
		writeError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, p)
}

func (h *Handler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	if err := h.products.Delete(r.Context(), utils.ViewerFrom(r.Context()).SellerID, chi.URLParam(r, "id")); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
