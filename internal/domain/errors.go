package domain

import "errors"

var (
	ErrRoomNameRequired    = errors.New("room name required")
	ErrRoomAlreadyExists   = errors.New("room already exists")
	ErrRoomNotFound        = errors.New("meeting room does not exist")
	ErrReservationNotFound = errors.New("room reservation not found")
	ErrInvalidTimeRange    = errors.New("start hour must be earlier than end hour")
	ErrSlotTaken           = errors.New("time slot already reserved")
)
