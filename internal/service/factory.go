package service

import (
	"time"

	"peoplehub.app/api/core/config"
	"peoplehub.app/api/internal/auth"
	"peoplehub.app/api/internal/queue"
	"peoplehub.app/api/internal/store"
)

type ServicesConfig struct {
	Stores        *store.Stores
	TxRunner      TxRunner
	Hasher        auth.PasswordHasher
	Tokens        auth.TokenIssuer
	EventProducer queue.Producer
	Attendance    config.AttendanceConfig
	Now           func() time.Time
}

type Services struct {
	stores     *store.Stores
	txRunner   TxRunner
	hasher     auth.PasswordHasher
	tokens     auth.TokenIssuer
	producer   queue.Producer
	attendance config.AttendanceConfig
	now        func() time.Time
}

func NewServices(cfg ServicesConfig) *Services {
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	return &Services{
		stores:     cfg.Stores,
		txRunner:   cfg.TxRunner,
		hasher:     cfg.Hasher,
		tokens:     cfg.Tokens,
		producer:   cfg.EventProducer,
		attendance: cfg.Attendance,
		now:        now,
	}
}

func (s *Services) Auth() AuthService {
	return NewAuthService(s.stores.Users(), s.hasher, s.tokens)
}

func (s *Services) Organizations() OrganizationService {
	return NewOrganizationService(
		s.txRunner,
		s.stores.Organizations(),
		s.stores.Members(),
		s.stores.Users(),
		s.producer,
	)
}

func (s *Services) Attendance() AttendanceService {
	return NewAttendanceService(
		s.stores.Organizations(),
		s.stores.Members(),
		s.stores.Attendance(),
		s.attendance,
		s.producer,
		s.now,
	)
}

func (s *Services) Leaves() LeaveService {
	return NewLeaveService(
		s.txRunner,
		s.stores.Organizations(),
		s.stores.Members(),
		s.stores.Leaves(),
		s.producer,
		s.now,
	)
}

func (s *Services) Activity() ActivityService {
	return NewActivityService(s.stores.Organizations(), s.stores.Members(), s.stores.Activity())
}
