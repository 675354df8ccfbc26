package handlers

import (
	"net/http"

	"github.com/sobirin-dev/hendshake/internal/domain"
)

type categoryResponse struct {
	Value string `json:"value"`
	Name  string `json:"name"`
}

// Categories lists the fixed category set in display order.
func Categories() http.HandlerFunc {
	cats := domain.Categories()
	body := make([]categoryResponse, 0, len(cats))
	for _, c := range cats {
		body = append(body, categoryResponse{Value: string(c), Name: c.DisplayName()})
	}

	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, body)
	}
}
