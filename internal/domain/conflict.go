package domain

// FindConflict returns the first reservation among candidates whose interval
// overlaps the proposed half-open [start, end), or nil when the slot is free.
// A candidate whose ID equals excludeID is skipped, so an update never
// conflicts with its own prior slot. Touching endpoints are not a conflict:
// back-to-back reservations are allowed.
//
// Candidates are expected to be the reservations for a single room and date;
// the function itself does not inspect RoomID or Date.
func FindConflict(candidates []Reservation, start, end TimeOfDay, excludeID string) *Reservation {
	for i := range candidates {
		c := &candidates[i]
		if c.ID == excludeID {
			continue
		}
		if c.Start < end && start < c.End {
			return c
		}
	}
	return nil
}
