package domain

// Legal status transitions. Confirmation is only ever observed by re-reading
// the reservation after the payment provider reports out of band; a failed or
// abandoned checkout leaves the record pending, which is not a transition.
var transitions = map[Status]map[Status]bool{
	StatusPending:   {StatusConfirmed: true, StatusCancelled: true},
	StatusConfirmed: {StatusCancelled: true},
}

// CanTransition reports whether the state machine allows from -> to.
// Cancelled is terminal: nothing leaves it.
func CanTransition(from, to Status) bool { return transitions[from][to] }

// CanEdit reports whether date/time/party/table edits are allowed. Edits
// never change status and are only legal outside terminal states.
func CanEdit(r Reservation) bool {
	return r.Status == StatusPending || r.Status == StatusConfirmed
}

// CanCancel reports whether an explicit cancellation is allowed.
func CanCancel(r Reservation) bool {
	return r.Status == StatusPending || r.Status == StatusConfirmed
}
