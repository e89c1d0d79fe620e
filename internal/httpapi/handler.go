package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"herbanusa-be/internal/cart"
	"herbanusa-be/internal/checkout"
	"herbanusa-be/internal/logger"
	"herbanusa-be/internal/metrics"
	"herbanusa-be/internal/notify"
	"herbanusa-be/internal/order"
	"herbanusa-be/internal/product"
	"herbanusa-be/internal/transport"
	"herbanusa-be/internal/utils"

	"go.uber.org/zap"
)

type Handler struct {
	products  product.Service
	carts     cart.Service
	checkouts *checkout.Manager
	orders    order.Service
	feed      *notify.Feed
}

func NewHandler(products product.Service, carts cart.Service, checkouts *checkout.Manager, orders order.Service, feed *notify.Feed) *Handler {
	return &Handler{
		products:  products,
		carts:     carts,
		checkouts: checkouts,
		orders:    orders,
		feed:      feed,
	}
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	utils.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) Metrics(w http.ResponseWriter, r *http.Request) {
	utils.WriteJSON(w, http.StatusOK, metrics.Snapshot())
}

// Notifications returns recent toasts, oldest first. Customers see their own
// session's events; farmers see events touching their products.
func (h *Handler) Notifications(w http.ResponseWriter, r *http.Request) {
	limit := 20
	if s := r.URL.Query().Get("limit"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 1 {
			utils.WriteJSONError(w, "invalid limit", http.StatusBadRequest)
			return
		}
		limit = n
	}

	if h.feed == nil {
		utils.WriteJSON(w, http.StatusOK, []notify.Event{})
		return
	}

	switch r.URL.Query().Get("audience") {
	case "", "customer":
		sid := transport.SessionIDFrom(r)
		utils.WriteJSON(w, http.StatusOK, nonNil(h.feed.Recent(notify.CustomerAudience(sid), limit)))
	case notify.FarmerAudience:
		v := utils.ViewerFrom(r.Context())
		if !v.IsFarmer() {
			utils.WriteJSONError(w, "forbidden", http.StatusForbidden)
			return
		}
		out := []notify.Event{}
		for _, ev := range h.feed.Recent(notify.FarmerAudience, 0) {
			if containsSeller(ev.SellerIDs, v.SellerID) {
				out = append(out, ev)
			}
		}
		if len(out) > limit {
			out = out[len(out)-limit:]
		}
		utils.WriteJSON(w, http.StatusOK, out)
	default:
		utils.WriteJSONError(w, "unknown audience", http.StatusBadRequest)
	}
}

func containsSeller(ids []string, sellerID string) bool {
	for _, id := range ids {
		if id == sellerID {
			return true
		}
	}
	return false
}

func nonNil(events []notify.Event) []notify.Event {
	if events == nil {
		return []notify.Event{}
	}
	return events
}

func decode(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

type errorResponse struct {
	Error  string   `json:"error"`
	Fields []string `json:"fields,omitempty"`
}

// writeError maps domain errors onto status codes. Anything unrecognised is
// logged and reported as 500.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	var verr *checkout.ValidationError
	if errors.As(err, &verr) {
		utils.WriteJSON(w, http.StatusUnprocessableEntity, errorResponse{Error: verr.Message(), Fields: verr.Fields})
		return
	}
	if product.IsValidation(err) {
		utils.WriteJSON(w, http.StatusUnprocessableEntity, errorResponse{Error: err.Error()})
		return
	}

	code := statusFor(err)
	if code == http.StatusInternalServerError {
		logger.FromCtx(r.Context()).Error("request failed",
			zap.String("path", r.URL.Path),
			zap.Error(err),
		)
		utils.WriteJSONError(w, "internal server error", code)
		return
	}
	utils.WriteJSONError(w, err.Error(), code)
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, product.ErrProductNotFound),
		errors.Is(err, cart.ErrCartItemNotFound),
		errors.Is(err, checkout.ErrSessionNotFound),
		errors.Is(err, order.ErrOrderNotFound):
		return http.StatusNotFound

	case errors.Is(err, order.ErrInvalidTransition),
		errors.Is(err, order.ErrStatusConflict),
		errors.Is(err, checkout.ErrEmptyCart),
		errors.Is(err, checkout.ErrWrongStage),
		errors.Is(err, checkout.ErrCompleted),
		errors.Is(err, cart.ErrOutOfStock):
		return http.StatusConflict

	case errors.Is(err, product.ErrNotOwner),
		errors.Is(err, order.ErrNotOwner):
		return http.StatusForbidden

	case errors.Is(err, cart.ErrInvalidQuantity),
		errors.Is(err, cart.ErrSessionRequired),
		errors.Is(err, cart.ErrProductIDRequired),
		errors.Is(err, checkout.ErrSessionRequired),
		errors.Is(err, checkout.ErrInvalidTier),
		errors.Is(err, checkout.ErrInvalidPayment),
		errors.Is(err, order.ErrInvalidStatus),
		errors.Is(err, product.ErrSellerRequired):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
