package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/camillapd/RoomReservationsAPI/internal/app"
	"github.com/camillapd/RoomReservationsAPI/internal/domain"
)

func TestHandleMeetingRooms(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name           string
		method         string
		path           string
		body           string
		serviceErr     error
		expectedStatus int
		expectedSubstr string
	}{
		{
			name:           "create room",
			method:         http.MethodPost,
			path:           "/meetingrooms",
			body:           `{"name":"Sala 201"}`,
			expectedStatus: http.StatusCreated,
			expectedSubstr: `"name":"Sala 201"`,
		},
		{
			name:           "trailing slash is accepted",
			method:         http.MethodPost,
			path:           "/meetingrooms/",
			body:           `{"name":"Sala 201"}`,
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "invalid json",
			method:         http.MethodPost,
			path:           "/meetingrooms",
			body:           `{"name":`,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "blank name",
			method:         http.MethodPost,
			path:           "/meetingrooms",
			body:           `{"name":""}`,
			expectedStatus: http.StatusBadRequest,
			expectedSubstr: codeRoomNameRequired,
		},
		{
			name:           "duplicate name",
			method:         http.MethodPost,
			path:           "/meetingrooms",
			body:           `{"name":"Sala 201"}`,
			serviceErr:     domain.ErrRoomAlreadyExists,
			expectedStatus: http.StatusConflict,
			expectedSubstr: codeRoomAlreadyExists,
		},
		{
			name:           "list rooms",
			method:         http.MethodGet,
			path:           "/meetingrooms",
			expectedStatus: http.StatusOK,
			expectedSubstr: `"name":"Sala 201"`,
		},
		{
			name:           "unknown subpath",
			method:         http.MethodGet,
			path:           "/meetingrooms/extra",
			expectedStatus: http.StatusNotFound,
		},
		{
			name:           "method not allowed",
			method:         http.MethodDelete,
			path:           "/meetingrooms",
			expectedStatus: http.StatusMethodNotAllowed,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			svc := &stubRoomCatalog{
				room:      domain.Room{ID: "room-1", Name: "Sala 201"},
				rooms:     []domain.Room{{ID: "room-1", Name: "Sala 201"}},
				createErr: tc.serviceErr,
			}

			var body *strings.Reader
			if tc.body != "" {
				body = strings.NewReader(tc.body)
			} else {
				body = strings.NewReader("")
			}
			req := httptest.NewRequest(tc.method, tc.path, body)
			rec := httptest.NewRecorder()

			HandleMeetingRooms(svc).ServeHTTP(rec, req)

			if rec.Code != tc.expectedStatus {
				t.Fatalf("expected status %d, got %d (body %s)", tc.expectedStatus, rec.Code, rec.Body.String())
			}
			if tc.expectedSubstr != "" && !strings.Contains(rec.Body.String(), tc.expectedSubstr) {
				t.Fatalf("expected body to contain %q, got %s", tc.expectedSubstr, rec.Body.String())
			}
		})
	}
}

type stubRoomCatalog struct {
	room      domain.Room
	rooms     []domain.Room
	createErr error
	listErr   error
}

func (s *stubRoomCatalog) CreateRoom(_ context.Context, in app.CreateRoomInput) (domain.Room, error) {
	if s.createErr != nil {
		return domain.Room{}, s.createErr
	}
	room := s.room
	room.Name = in.Name
	return room, nil
}

func (s *stubRoomCatalog) ListRooms(_ context.Context) ([]domain.Room, error) {
	if s.listErr != nil {
		return nil, s.listErr
	}
	return s.rooms, nil
}
