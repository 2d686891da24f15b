package http

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/camillapd/RoomReservationsAPI/internal/app"
	"github.com/camillapd/RoomReservationsAPI/internal/domain"
)

// ReservationBooker is the minimal interface needed by the collection
// endpoints (/reservations).
type ReservationBooker interface {
	CreateReservation(ctx context.Context, in app.CreateReservationInput) (app.ReservationDetail, error)
	ListReservations(ctx context.Context) ([]app.ReservationDetail, error)
}

// ReservationEditor is the minimal interface needed by the item endpoints
// (/reservations/{id}).
type ReservationEditor interface {
	GetReservation(ctx context.Context, id string) (app.ReservationDetail, error)
	UpdateReservation(ctx context.Context, in app.UpdateReservationInput) (app.ReservationDetail, error)
	DeleteReservation(ctx context.Context, id string) error
}

// HandleReservations returns an HTTP handler for listing and creating
// reservations.
func HandleReservations(svc ReservationBooker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			details, err := svc.ListReservations(r.Context())
			if err != nil {
				writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
				return
			}
			resp := make([]reservationResponse, 0, len(details))
			for _, d := range details {
				resp = append(resp, toReservationResponse(d))
			}
			w.Header().Set("Content-Type", "application/json")
			_ = json.NewEncoder(w).Encode(resp)
		case http.MethodPost:
			var req createReservationRequest
			dec := json.NewDecoder(r.Body)
			dec.DisallowUnknownFields()
			if err := dec.Decode(&req); err != nil {
				writeError(w, http.StatusBadRequest, codeInvalidRequestBody, "invalid request body")
				return
			}
			if req.RoomName == "" {
				writeError(w, http.StatusBadRequest, codeMissingField, "meeting room name cannot be blank")
				return
			}

			slot, ok := parseSlot(w, req.slotFields())
			if !ok {
				return
			}

			detail, err := svc.CreateReservation(r.Context(), app.CreateReservationInput{
				RoomName: req.RoomName,
				Date:     slot.date,
				Start:    slot.start,
				End:      slot.end,
			})
			if err != nil {
				writeReservationError(w, err)
				return
			}

			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusCreated)
			_ = json.NewEncoder(w).Encode(toReservationResponse(detail))
		default:
			writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
		}
	}
}

// HandleReservationByID returns an HTTP handler for fetching, rescheduling
// and deleting a single reservation.
func HandleReservationByID(svc ReservationEditor) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := parseReservationPath(r.URL.Path)
		if !ok {
			writeError(w, http.StatusNotFound, codeNotFound, "not found")
			return
		}

		switch r.Method {
		case http.MethodGet:
			detail, err := svc.GetReservation(r.Context(), id)
			if err != nil {
				writeReservationError(w, err)
				return
			}
			w.Header().Set("Content-Type", "application/json")
			_ = json.NewEncoder(w).Encode(toReservationResponse(detail))
		case http.MethodPut:
			var req updateReservationRequest
			dec := json.NewDecoder(r.Body)
			dec.DisallowUnknownFields()
			if err := dec.Decode(&req); err != nil {
				writeError(w, http.StatusBadRequest, codeInvalidRequestBody, "invalid request body")
				return
			}

			slot, ok := parseSlot(w, req.slotFields())
			if !ok {
				return
			}

			detail, err := svc.UpdateReservation(r.Context(), app.UpdateReservationInput{
				ID:    id,
				Date:  slot.date,
				Start: slot.start,
				End:   slot.end,
			})
			if err != nil {
				writeReservationError(w, err)
				return
			}
			w.Header().Set("Content-Type", "application/json")
			_ = json.NewEncoder(w).Encode(toReservationResponse(detail))
		case http.MethodDelete:
			if err := svc.DeleteReservation(r.Context(), id); err != nil {
				writeReservationError(w, err)
				return
			}
			w.WriteHeader(http.StatusNoContent)
		default:
			writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
		}
	}
}

func parseReservationPath(path string) (string, bool) {
	parts := strings.Split(strings.Trim(path, "/"), "/")
	if len(parts) != 2 || parts[0] != "reservations" || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}

func writeReservationError(w http.ResponseWriter, err error) {
	switch err {
	case domain.ErrInvalidTimeRange:
		writeError(w, http.StatusBadRequest, codeInvalidTimeRange, err.Error())
	case domain.ErrRoomNotFound:
		writeError(w, http.StatusNotFound, codeRoomNotFound, err.Error())
	case domain.ErrReservationNotFound:
		writeError(w, http.StatusNotFound, codeReservationNotFound, err.Error())
	case domain.ErrSlotTaken:
		writeError(w, http.StatusConflict, codeSlotTaken, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
	}
}

// slotFields carries the textual slot fields shared by create and update
// requests.
type slotFields struct {
	date  string
	start string
	end   string
}

// parsedSlot is the structured slot handed to the core: the service never
// sees unparsed text.
type parsedSlot struct {
	date  time.Time
	start domain.TimeOfDay
	end   domain.TimeOfDay
}

// parseSlot validates and parses the date and hour fields, writing the
// error response itself when a field is missing or malformed.
func parseSlot(w http.ResponseWriter, f slotFields) (parsedSlot, bool) {
	if f.date == "" || f.start == "" || f.end == "" {
		writeError(w, http.StatusBadRequest, codeMissingField,
			"reservation_date, start_hour and end_hour are required")
		return parsedSlot{}, false
	}

	date, err := parseDate("reservation_date", f.date)
	if err != nil {
		writeError(w, http.StatusBadRequest, codeInvalidDate, err.Error())
		return parsedSlot{}, false
	}
	start, err := parseHour("start_hour", f.start)
	if err != nil {
		writeError(w, http.StatusBadRequest, codeInvalidHour, err.Error())
		return parsedSlot{}, false
	}
	end, err := parseHour("end_hour", f.end)
	if err != nil {
		writeError(w, http.StatusBadRequest, codeInvalidHour, err.Error())
		return parsedSlot{}, false
	}

	return parsedSlot{date: date, start: start, end: end}, true
}

type createReservationRequest struct {
	RoomName        string `json:"room_name"`
	ReservationDate string `json:"reservation_date"`
	StartHour       string `json:"start_hour"`
	EndHour         string `json:"end_hour"`
}

func (r createReservationRequest) slotFields() slotFields {
	return slotFields{date: r.ReservationDate, start: r.StartHour, end: r.EndHour}
}

type updateReservationRequest struct {
	ReservationDate string `json:"reservation_date"`
	StartHour       string `json:"start_hour"`
	EndHour         string `json:"end_hour"`
}

func (r updateReservationRequest) slotFields() slotFields {
	return slotFields{date: r.ReservationDate, start: r.StartHour, end: r.EndHour}
}

// reservationResponse is the explicit field mapping from the reservation
// entity to the wire format; the room is rendered by name.
type reservationResponse struct {
	ID              string `json:"id"`
	RoomName        string `json:"room_name"`
	ReservationDate string `json:"reservation_date"`
	StartHour       string `json:"start_hour"`
	EndHour         string `json:"end_hour"`
}

func toReservationResponse(d app.ReservationDetail) reservationResponse {
	return reservationResponse{
		ID:              d.Reservation.ID,
		RoomName:        d.RoomName,
		ReservationDate: formatDate(d.Reservation.Date),
		StartHour:       d.Reservation.Start.String(),
		EndHour:         d.Reservation.End.String(),
	}
}
