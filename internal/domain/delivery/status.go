package delivery

// Status is the workflow state of a delivery note. The workflow is linear
// with one absorbing branch: rejection is only reachable from the early
// stages, everything after inspection must run to completion.
type Status string

const (
	StatusPendingReceive    Status = "pending_receive"
	StatusPendingInspection Status = "pending_inspection"
	StatusPendingArchive    Status = "pending_archive"
	StatusPendingWarehouse  Status = "pending_warehouse"
	StatusCompleted         Status = "completed"
	StatusRejected          Status = "rejected"
)

// transitions is the single source of truth for legal status changes.
// Guards below derive from it; nothing else in the codebase compares
// status values to decide what an actor may do.
var transitions = map[Status][]Status{
	StatusPendingReceive:    {StatusPendingInspection, StatusRejected},
	StatusPendingInspection: {StatusPendingArchive, StatusRejected},
	StatusPendingArchive:    {StatusPendingWarehouse},
	StatusPendingWarehouse:  {StatusCompleted},
	StatusCompleted:         {},
	StatusRejected:          {},
}

// Valid reports whether s is a known status value.
func (s Status) Valid() bool {
	_, ok := transitions[s]
	return ok
}

// CanTransition reports whether the workflow allows moving from s to next.
func (s Status) CanTransition(next Status) bool {
	for _, t := range transitions[s] {
		if t == next {
			return true
		}
	}
	return false
}

// CanReceive reports whether the receive action applies to the note.
func (n *Note) CanReceive() bool {
	return n.Status.CanTransition(StatusPendingInspection)
}

// CanInspect reports whether the inspection action applies to the note.
func (n *Note) CanInspect() bool {
	return n.Status.CanTransition(StatusPendingArchive)
}

// CanArchive reports whether the note may be archived. Archiving
// additionally requires the quality check to have passed.
func (n *Note) CanArchive() bool {
	return n.Status.CanTransition(StatusPendingWarehouse) && n.QualityPassed
}

// CanWarehouse reports whether the note may be put away to the warehouse.
func (n *Note) CanWarehouse() bool {
	return n.Status.CanTransition(StatusCompleted)
}

// CanReject reports whether the note may still be rejected.
func (n *Note) CanReject() bool {
	return n.Status.CanTransition(StatusRejected)
}
