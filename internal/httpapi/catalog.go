package httpapi

import (
	"net/http"

	"herbanusa-be/internal/product"
	"herbanusa-be/internal/utils"

	"github.com/go-chi/chi/v5"
)

type productList struct {
	Title    string             `json:"title"`
	Count    int                `json:"count"`
	Products []*product.Product `json:"products"`
}

func (h *Handler) ListProducts(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	minPrice, err := utils.ParseInt64Ptr(q.Get("minPrice"))
	if err != nil {
		utils.WriteJSONError(w, "invalid minPrice", http.StatusBadRequest)
		return
	}
	maxPrice, err := utils.ParseInt64Ptr(q.Get("maxPrice"))
	if err != nil {
		utils.WriteJSONError(w, "invalid maxPrice", http.StatusBadRequest)
		return
	}

	filter := product.Filter{
		Category: product.Category(q.Get("category")),
		MinPrice: minPrice,
		MaxPrice: maxPrice,
		Location: q.Get("location"),
		Sort:     product.SortOrder(q.Get("sort")),
	}

	products, err := h.products.List(r.Context(), filter)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if products == nil {
		products = []*product.Product{}
	}

	category := filter.Category
	if category == "" {
		category = product.CategoryAll
	}
	utils.WriteJSON(w, http.StatusOK, productList{
		Title:    category.DisplayName(),
		Count:    len(products),
		Products: products,
	})
}

func (h *Handler) GetProduct(w http.ResponseWriter, r *http.Request) {
	p, err := h.products.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, p)
}

type categoryResponse struct {
	ID   product.Category `json:"id"`
	Name string           `json:"name"`
}

func (h *Handler) ListCategories(w http.ResponseWriter, r *http.Request) {
	out := make([]categoryResponse, 0, len(product.Categories)+1)
	out = append(out, categoryResponse{ID: product.CategoryAll, Name: product.CategoryAll.DisplayName()})
	for _, c := range product.Categories {
		out = append(out, categoryResponse{ID: c, Name: c.DisplayName()})
	}
	utils.WriteJSON(w, http.StatusOK, out)
}
