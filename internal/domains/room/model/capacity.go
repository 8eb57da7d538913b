package model

// Capacity helpers are pure functions over a room. Callers must have a room
// in hand; there is no meaningful answer for "no selection yet".

// ExtraBedEligible reports whether the room can host any extra beds at all.
func (r Room) ExtraBedEligible() bool {
	return r.MaxExtraBeds > 0
}

// ClampExtraBeds bounds a requested extra-bed count to [0, MaxExtraBeds].
func (r Room) ClampExtraBeds(requested int) int {
	if requested < 0 {
		return 0
	}

	if requested > r.MaxExtraBeds {
		return r.MaxExtraBeds
	}

	return requested
}

// CombinedCapacity is the most guests the room can host with every extra bed
// in place.
func (r Room) CombinedCapacity() int {
	return r.BaseCapacity + r.MaxExtraBeds
}
