package domain

import "time"

// NextProjectID derives a project id from the current epoch second.
// When that id is not above every existing one it is bumped past the maximum,
// so ids stay unique and increase in creation order.
func NextProjectID(existing []Project, now time.Time) uint32 {
	id := uint32(now.Unix())
	for _, p := range existing {
		if p.ID >= id {
			id = p.ID + 1
		}
	}
	return id
}
