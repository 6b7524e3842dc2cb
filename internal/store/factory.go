package store

import (
	"peoplehub.app/api/core/db"
)

type Stores struct {
	q db.DBTX
}

func NewStores(q db.DBTX) *Stores {
	return &Stores{q: q}
}

func (s *Stores) Users() UserStore {
	return newUserStore(s.q)
}

func (s *Stores) Organizations() OrganizationStore {
	return newOrganizationStore(s.q)
}

func (s *Stores) Members() MemberStore {
	return newMemberStore(s.q)
}

func (s *Stores) Attendance() AttendanceStore {
	return newAttendanceStore(s.q)
}

func (s *Stores) Leaves() LeaveStore {
	return newLeaveStore(s.q)
}

func (s *Stores) Activity() ActivityStore {
	return newActivityStore(s.q)
}
