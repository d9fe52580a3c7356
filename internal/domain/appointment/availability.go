package appointment

// Available reports whether candidate can be booked against the existing
// appointment set. Cancelled appointments free their slot and are excluded
// from the conflict universe; appointments on other dates never conflict.
//
// Pure function over its inputs: no mutation, no I/O. Safe to call on every
// edit of an interactive booking form.
func Available(candidate Slot, existing []*Appointment) bool {
	return FindConflict(candidate, existing) == nil
}

// FindConflict returns the first non-cancelled appointment whose slot
// overlaps candidate, or nil when the slot is free.
func FindConflict(candidate Slot, existing []*Appointment) *Appointment {
	for _, ap := range existing {
		if ap.IsCancelled() {
			continue
		}
		if candidate.Overlaps(ap.Slot()) {
			return ap
		}
	}
	return nil
}
