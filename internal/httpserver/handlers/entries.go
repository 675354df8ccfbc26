package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/sobirin-dev/hendshake/internal/domain"
	"github.com/sobirin-dev/hendshake/internal/entrystore"
	"github.com/sobirin-dev/hendshake/internal/httpserver/deps"
	"github.com/sobirin-dev/hendshake/internal/logger"
	"github.com/sobirin-dev/hendshake/internal/metrics"
)

const maxBodyBytes = 64 << 10

type listEntriesResponse struct {
	Count   int            `json:"count"`
	Entries []domain.Entry `json:"entries"`
}

type countResponse struct {
	Count int `json:"count"`
}

type removeResponse struct {
	Removed bool `json:"removed"`
	Count   int  `json:"count"`
}

// priceText accepts "12.50" as well as 12.5 so clients may send either.
// The text is kept as written, numbers keep their literal form.
type priceText string

func (p *priceText) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	switch {
	case bytes.Equal(b, []byte("null")):
		*p = ""
		return nil
	case len(b) > 0 && b[0] == '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*p = priceText(s)
		return nil
	default:
		var n json.Number
		if err := json.Unmarshal(b, &n); err != nil {
			return fmt.Errorf("price must be a string or a number")
		}
		*p = priceText(n.String())
		return nil
	}
}

type createEntryRequest struct {
	Label           string    `json:"label"`
	Price           priceText `json:"price"`
	Category        string    `json:"category"`
	BookingRequired bool      `json:"bookingRequired"`
	Accessibility   *float64  `json:"accessibility"`
}

func (req createEntryRequest) draft() domain.Draft {
	return domain.Draft{
		Label:           req.Label,
		Price:           string(req.Price),
		Category:        domain.ParseCategory(req.Category),
		BookingRequired: req.BookingRequired,
		Accessibility:   req.Accessibility,
	}
}

// ListEntries returns every entry in insertion order.
func ListEntries(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		entries := d.Store.List()
		if entries == nil {
			entries = []domain.Entry{}
		}
		writeJSON(w, http.StatusOK, listEntriesResponse{
			Count:   len(entries),
			Entries: entries,
		})
	}
}

func CountEntries(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, countResponse{Count: d.Store.Count()})
	}
}

// CreateEntry validates the body and appends a new entry.
func CreateEntry(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

		var req createEntryRequest
		dec := json.NewDecoder(r.Body)
		if err := dec.Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid JSON body: "+err.Error())
			return
		}
		if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
			writeError(w, http.StatusBadRequest, "invalid JSON body: unexpected data after object")
			return
		}

		entry, err := d.Store.Add(r.Context(), req.draft())
		if err != nil {
			var verr *domain.ValidationError
			switch {
			case errors.As(err, &verr):
				metrics.RecordValidationFailure(err)
				writeJSON(w, http.StatusUnprocessableEntity, errorResponse{
					Error: verr.Error(),
					Field: verr.Field,
				})
			case errors.Is(err, entrystore.ErrClosed):
				writeError(w, http.StatusServiceUnavailable, err.Error())
			default:
				d.Logger.Error("create entry failed", logger.Error(err))
				writeError(w, http.StatusInternalServerError, "internal error")
			}
			return
		}

		writeJSON(w, http.StatusCreated, entry)
	}
}

// GetEntry returns the entry named by {id}, or 404.
func GetEntry(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := entryID(w, r)
		if !ok {
			return
		}

		entry, found := d.Store.Get(id)
		if !found {
			writeError(w, http.StatusNotFound, "entry not found")
			return
		}
		writeJSON(w, http.StatusOK, entry)
	}
}

// DeleteEntry removes the entry named by {id}. Unknown ids are not an error.
func DeleteEntry(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := entryID(w, r)
		if !ok {
			return
		}

		removed := d.Store.Remove(r.Context(), id)
		writeJSON(w, http.StatusOK, removeResponse{
			Removed: removed,
			Count:   d.Store.Count(),
		})
	}
}

func entryID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "id must be an integer")
		return 0, false
	}
	return id, true
}
