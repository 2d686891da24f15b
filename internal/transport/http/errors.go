package http

import (
	"encoding/json"
	"net/http"
)

const (
	codeMethodNotAllowed    = "method_not_allowed"
	codeNotFound            = "not_found"
	codeInvalidRequestBody  = "invalid_request_body"
	codeMissingField        = "missing_required_field"
	codeInvalidDate         = "invalid_reservation_date"
	codeInvalidHour         = "invalid_hour"
	codeRoomNameRequired    = "room_name_required"
	codeRoomAlreadyExists   = "room_already_exists"
	codeRoomNotFound        = "room_not_found"
	codeReservationNotFound = "reservation_not_found"
	codeInvalidTimeRange    = "invalid_time_range"
	codeSlotTaken           = "slot_taken"
	codeForbidden           = "forbidden"
	codeInternalError       = "internal_error"
)

type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

func writeError(w http.ResponseWriter, status int, code, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	payload, err := json.Marshal(errorResponse{
		Error: msg,
		Code:  code,
	})
	if err != nil {
		_, _ = w.Write([]byte(`{"error":"internal error","code":"internal_error"}`))
		return
	}
	_, _ = w.Write(payload)
}
