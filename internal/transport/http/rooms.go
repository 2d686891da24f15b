package http

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/camillapd/RoomReservationsAPI/internal/app"
	"github.com/camillapd/RoomReservationsAPI/internal/domain"
)

// RoomCatalog is the minimal interface needed by the meeting-room endpoints.
type RoomCatalog interface {
	CreateRoom(ctx context.Context, in app.CreateRoomInput) (domain.Room, error)
	ListRooms(ctx context.Context) ([]domain.Room, error)
}

// HandleMeetingRooms returns an HTTP handler for listing and creating rooms.
func HandleMeetingRooms(svc RoomCatalog) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/meetingrooms" && r.URL.Path != "/meetingrooms/" {
			writeError(w, http.StatusNotFound, codeNotFound, "not found")
			return
		}

		switch r.Method {
		case http.MethodGet:
			rooms, err := svc.ListRooms(r.Context())
			if err != nil {
				writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
				return
			}
			resp := make([]roomResponse, 0, len(rooms))
			for _, room := range rooms {
				resp = append(resp, toRoomResponse(room))
			}
			w.Header().Set("Content-Type", "application/json")
			_ = json.NewEncoder(w).Encode(resp)
		case http.MethodPost:
			var req createRoomRequest
			dec := json.NewDecoder(r.Body)
			dec.DisallowUnknownFields()
			if err := dec.Decode(&req); err != nil {
				writeError(w, http.StatusBadRequest, codeInvalidRequestBody, "invalid request body")
				return
			}
			if req.Name == "" {
				writeError(w, http.StatusBadRequest, codeRoomNameRequired, "meeting room name cannot be blank")
				return
			}

			room, err := svc.CreateRoom(r.Context(), app.CreateRoomInput{Name: req.Name})
			if err != nil {
				switch err {
				case domain.ErrRoomNameRequired:
					writeError(w, http.StatusBadRequest, codeRoomNameRequired, err.Error())
				case domain.ErrRoomAlreadyExists:
					writeError(w, http.StatusConflict, codeRoomAlreadyExists, err.Error())
				default:
					writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
				}
				return
			}

			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusCreated)
			_ = json.NewEncoder(w).Encode(toRoomResponse(room))
		default:
			writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
		}
	}
}

type createRoomRequest struct {
	Name string `json:"name"`
}

type roomResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func toRoomResponse(room domain.Room) roomResponse {
	return roomResponse{
		ID:   room.ID,
		Name: room.Name,
	}
}
