package queue

type EventType string

const (
	EventAttendanceCheckedIn  EventType = "attendance.checked_in"
	EventAttendanceCheckedOut EventType = "attendance.checked_out"
	EventLeaveRequested       EventType = "leave.requested"
	EventLeaveApproved        EventType = "leave.approved"
	EventLeaveRejected        EventType = "leave.rejected"
	EventLeaveCancelled       EventType = "leave.cancelled"
	EventMemberAdded          EventType = "member.added"
	EventMemberRemoved        EventType = "member.removed"
)

var knownEvents = map[EventType]bool{
	EventAttendanceCheckedIn:  true,
	EventAttendanceCheckedOut: true,
	EventLeaveRequested:       true,
	EventLeaveApproved:        true,
	EventLeaveRejected:        true,
	EventLeaveCancelled:       true,
	EventMemberAdded:          true,
	EventMemberRemoved:        true,
}

func (t EventType) Valid() bool {
	return knownEvents[t]
}

// Event is a domain fact emitted by the API after its transaction commits.
// SubjectID is the id of the record the event is about (leave request,
// attendance record, or member user id).
type Event struct {
	Type           EventType
	OrganizationID int64
	ActorID        int64
	SubjectID      int64
	TraceID        string
	Attempt        int
}
