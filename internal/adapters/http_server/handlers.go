// internal/adapters/http_server/handlers.go
package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"dinebook/internal/app"
	"dinebook/internal/domain"
	"dinebook/internal/session"
)

type Handlers struct {
	R *app.Reservations
	B *app.BookingCoordinator
}

type problem struct {
	Type   string `json:"type"`
	Title  string `json:"title"`
	Status int    `json:"status"`
	Detail string `json:"detail,omitempty"`
}

func (s *Server) MountHandlers(h *Handlers, v *session.Verifier) {
	s.mux.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200); _, _ = w.Write([]byte("ok")) })
	s.mux.Group(func(r chi.Router) {
		r.Use(Auth(v))
		r.Get("/v1/reservations", h.listReservations)
		r.Post("/v1/reservations", h.bookReservation)
		r.Put("/v1/reservations/{id}", h.updateReservation)
		r.Delete("/v1/reservations/{id}", h.cancelReservation)
	})
}

func writeProblem(w http.ResponseWriter, status int, title, detail string) {
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(problem{Type: "about:blank", Title: title, Status: status, Detail: detail}); err != nil {
		log.Error().Err(err).Msg("write JSON problem response failed")
	}
}

// writeError maps the error taxonomy onto HTTP statuses. Local state never
// changed on any of these paths, so the client can simply retry by hand.
func writeError(w http.ResponseWriter, err error) {
	var (
		ve *domain.ValidationError
		ce *domain.ConflictError
		ge *domain.GatewayError
		ne *domain.NetworkError
		se *domain.ServerError
	)
	switch {
	case errors.As(err, &ve):
		writeProblem(w, http.StatusBadRequest, "Invalid Input", ve.Error())
	case errors.As(err, &ce):
		writeProblem(w, http.StatusConflict, "Conflict", ce.Error())
	case errors.As(err, &ge):
		writeProblem(w, http.StatusBadGateway, "Payment Gateway Error", ge.Message)
	case errors.As(err, &ne):
		writeProblem(w, http.StatusGatewayTimeout, "Upstream Unreachable", "the reservation service did not respond")
	case errors.As(err, &se):
		writeProblem(w, se.StatusCode, "Upstream Error", se.Message)
	default:
		writeProblem(w, http.StatusInternalServerError, "Internal Error", "unexpected error")
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("write JSON response failed")
	}
}

// ---- views ----

// reservationView is the UI-facing projection. CanEdit/CanCancel drive the
// affordances so controls are disabled for terminal records, not merely
// rejected on submit.
type reservationView struct {
	ID           string  `json:"id"`
	RestaurantID string  `json:"restaurantId"`
	Date         string  `json:"date"`
	Time         string  `json:"time"`
	PartySize    int     `json:"partySize"`
	TableType    string  `json:"tableType"`
	Amount       float64 `json:"amount"`
	Status       string  `json:"status"`
	CanEdit      bool    `json:"canEdit"`
	CanCancel    bool    `json:"canCancel"`
}

func viewOf(r domain.Reservation) reservationView {
	return reservationView{
		ID:           r.ID,
		RestaurantID: r.RestaurantRef,
		Date:         r.Date,
		Time:         r.Time,
		PartySize:    r.Party.Count,
		TableType:    string(r.Table),
		Amount:       r.Amount,
		Status:       string(r.Status),
		CanEdit:      domain.CanEdit(r),
		CanCancel:    domain.CanCancel(r),
	}
}

type bookingResponse struct {
	Reservation    reservationView `json:"reservation"`
	RedirectURL    string          `json:"redirectUrl,omitempty"`
	PaymentStarted bool            `json:"paymentStarted"`
	PaymentError   string          `json:"paymentError,omitempty"`
}

// ---- handlers ----

type bookRequest struct {
	RestaurantID string  `json:"restaurantId"`
	Date         string  `json:"date"`
	Time         string  `json:"time"`
	Guests       *int    `json:"guests"`
	PartySize    *int    `json:"partySize"`
	TableType    string  `json:"tableType"`
	Amount       float64 `json:"amount"`
}

func (h *Handlers) bookReservation(w http.ResponseWriter, r *http.Request) {
	ident, ok := identityFrom(r.Context())
	if !ok {
		writeProblem(w, http.StatusUnauthorized, "Unauthorized", "no session")
		return
	}

	var req bookRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid Body", "request body must be JSON")
		return
	}

	// booking forms carry the count under either name; guests wins
	count := 0
	if req.Guests != nil {
		count = *req.Guests
	} else if req.PartySize != nil {
		count = *req.PartySize
	}

	out, err := h.B.Submit(r.Context(), ident, app.BookingForm{
		RestaurantID: req.RestaurantID,
		Date:         req.Date,
		Time:         req.Time,
		PartySize:    count,
		TableType:    req.TableType,
		Amount:       req.Amount,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, bookingResponse{
		Reservation:    viewOf(out.Reservation),
		RedirectURL:    out.RedirectURL,
		PaymentStarted: out.PaymentStarted,
		PaymentError:   out.PaymentError,
	})
}

func (h *Handlers) listReservations(w http.ResponseWriter, r *http.Request) {
	ident, ok := identityFrom(r.Context())
	if !ok {
		writeProblem(w, http.StatusUnauthorized, "Unauthorized", "no session")
		return
	}

	scope := domain.ListScope{Identity: ident}
	if rid := r.URL.Query().Get("restaurant"); rid != "" {
		if ident.Role != domain.RoleManager && ident.Role != domain.RoleAdmin {
			writeProblem(w, http.StatusForbidden, "Forbidden", "restaurant scope requires a manager or admin session")
			return
		}
		scope.RestaurantID = rid
	}

	rs, err := h.R.List(r.Context(), scope)
	if err != nil {
		writeError(w, err)
		return
	}

	views := make([]reservationView, 0, len(rs))
	for _, res := range rs {
		views = append(views, viewOf(res))
	}
	writeJSON(w, http.StatusOK, map[string]any{"data": views})
}

type updateRequest struct {
	Date      *string `json:"date"`
	Time      *string `json:"time"`
	Guests    *int    `json:"guests"`
	PartySize *int    `json:"partySize"`
	TableType *string `json:"tableType"`
}

func (h *Handlers) updateReservation(w http.ResponseWriter, r *http.Request) {
	ident, ok := identityFrom(r.Context())
	if !ok {
		writeProblem(w, http.StatusUnauthorized, "Unauthorized", "no session")
		return
	}
	id := chi.URLParam(r, "id")

	var req updateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid Body", "request body must be JSON")
		return
	}

	fields := domain.UpdateFields{Date: req.Date, Time: req.Time}
	if req.Guests != nil {
		fields.PartySize = req.Guests
	} else if req.PartySize != nil {
		fields.PartySize = req.PartySize
	}
	if req.TableType != nil {
		t := domain.TableType(*req.TableType)
		fields.TableType = &t
	}

	res, err := h.R.Update(r.Context(), ident, id, fields)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, viewOf(res))
}

func (h *Handlers) cancelReservation(w http.ResponseWriter, r *http.Request) {
	ident, ok := identityFrom(r.Context())
	if !ok {
		writeProblem(w, http.StatusUnauthorized, "Unauthorized", "no session")
		return
	}
	if err := h.R.Cancel(r.Context(), ident, chi.URLParam(r, "id")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
