package service_test

import (
	"context"
	"time"

	"peoplehub.app/api/internal/auth"
	"peoplehub.app/api/internal/model"
	"peoplehub.app/api/internal/queue"
	"peoplehub.app/api/internal/service"
	"peoplehub.app/api/internal/store"
)

type mockUserStore struct {
	getByIDFn        func(ctx context.Context, id int64) (*model.User, error)
	getByEmailFn     func(ctx context.Context, email string) (*model.User, error)
	createFn         func(ctx context.Context, user *model.User) error
	updatePasswordFn func(ctx context.Context, id int64, hash string) error
}

func (m *mockUserStore) GetByID(ctx context.Context, id int64) (*model.User, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return nil, store.ErrNotFound
}

func (m *mockUserStore) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	if m.getByEmailFn != nil {
		return m.getByEmailFn(ctx, email)
	}
	return nil, store.ErrNotFound
}

func (m *mockUserStore) Create(ctx context.Context, user *model.User) error {
	if m.createFn != nil {
		return m.createFn(ctx, user)
	}
	return nil
}

func (m *mockUserStore) UpdatePassword(ctx context.Context, id int64, hash string) error {
	if m.updatePasswordFn != nil {
		return m.updatePasswordFn(ctx, id, hash)
	}
	return nil
}

type mockOrganizationStore struct {
	getByIDFn      func(ctx context.Context, id int64) (*model.Organization, error)
	getBySlugFn    func(ctx context.Context, slug string) (*model.Organization, error)
	createFn       func(ctx context.Context, org *model.Organization) error
	updateFn       func(ctx context.Context, org *model.Organization) error
	deleteFn       func(ctx context.Context, id int64) error
	listByMemberFn func(ctx context.Context, userID int64) ([]model.Membership, error)
	createCalls    int
	deleteCalls    int
}

func (m *mockOrganizationStore) GetByID(ctx context.Context, id int64) (*model.Organization, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return &model.Organization{ID: id, Name: "Acme", Slug: "acme"}, nil
}

func (m *mockOrganizationStore) GetBySlug(ctx context.Context, slug string) (*model.Organization, error) {
	if m.getBySlugFn != nil {
		return m.getBySlugFn(ctx, slug)
	}
	return nil, store.ErrNotFound
}

func (m *mockOrganizationStore) Create(ctx context.Context, org *model.Organization) error {
	m.createCalls++
	if m.createFn != nil {
		return m.createFn(ctx, org)
	}
	return nil
}

func (m *mockOrganizationStore) Update(ctx context.Context, org *model.Organization) error {
	if m.updateFn != nil {
		return m.updateFn(ctx, org)
	}
	return nil
}

func (m *mockOrganizationStore) Delete(ctx context.Context, id int64) error {
	m.deleteCalls++
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return nil
}

func (m *mockOrganizationStore) ListByMember(ctx context.Context, userID int64) ([]model.Membership, error) {
	if m.listByMemberFn != nil {
		return m.listByMemberFn(ctx, userID)
	}
	return []model.Membership{}, nil
}

// mockMemberStore keeps members in a map keyed by user id; a single
// organization is enough for service tests.
type mockMemberStore struct {
	members     map[int64]*model.Member
	addFn       func(ctx context.Context, m *model.Member) error
	removeCalls []int64
}

func newMemberStore(members ...model.Member) *mockMemberStore {
	m := &mockMemberStore{members: map[int64]*model.Member{}}
	for i := range members {
		mem := members[i]
		m.members[mem.UserID] = &mem
	}
	return m
}

func (m *mockMemberStore) Get(_ context.Context, _, userID int64) (*model.Member, error) {
	mem, ok := m.members[userID]
	if !ok {
		return nil, store.ErrNotFound
	}
	cp := *mem
	return &cp, nil
}

func (m *mockMemberStore) Add(ctx context.Context, mem *model.Member) error {
	if m.addFn != nil {
		return m.addFn(ctx, mem)
	}
	if _, ok := m.members[mem.UserID]; ok {
		return store.ErrConflict
	}
	cp := *mem
	m.members[mem.UserID] = &cp
	return nil
}

func (m *mockMemberStore) Update(_ context.Context, mem *model.Member) error {
	if _, ok := m.members[mem.UserID]; !ok {
		return store.ErrNotFound
	}
	cp := *mem
	m.members[mem.UserID] = &cp
	return nil
}

func (m *mockMemberStore) Remove(_ context.Context, _, userID int64) error {
	if _, ok := m.members[userID]; !ok {
		return store.ErrNotFound
	}
	delete(m.members, userID)
	m.removeCalls = append(m.removeCalls, userID)
	return nil
}

func (m *mockMemberStore) List(_ context.Context, _ int64) ([]model.Member, error) {
	out := make([]model.Member, 0, len(m.members))
	for _, mem := range m.members {
		out = append(out, *mem)
	}
	return out, nil
}

type mockAttendanceStore struct {
	getByDayFn   func(ctx context.Context, orgID, userID int64, day time.Time) (*model.AttendanceRecord, error)
	createFn     func(ctx context.Context, rec *model.AttendanceRecord) error
	checkOutFn   func(ctx context.Context, rec *model.AttendanceRecord) error
	listByUserFn func(ctx context.Context, orgID, userID int64, from, to time.Time) ([]model.AttendanceRecord, error)
	listByDayFn  func(ctx context.Context, orgID int64, day time.Time, userID *int64) ([]model.AttendanceRecord, error)
	summarizeFn  func(ctx context.Context, orgID int64, from, to time.Time) ([]model.AttendanceSummary, error)
}

func (m *mockAttendanceStore) GetByDay(ctx context.Context, orgID, userID int64, day time.Time) (*model.AttendanceRecord, error) {
	if m.getByDayFn != nil {
		return m.getByDayFn(ctx, orgID, userID, day)
	}
	return nil, store.ErrNotFound
}

func (m *mockAttendanceStore) Create(ctx context.Context, rec *model.AttendanceRecord) error {
	if m.createFn != nil {
		return m.createFn(ctx, rec)
	}
	return nil
}

func (m *mockAttendanceStore) CheckOut(ctx context.Context, rec *model.AttendanceRecord) error {
	if m.checkOutFn != nil {
		return m.checkOutFn(ctx, rec)
	}
	return nil
}

func (m *mockAttendanceStore) ListByUser(ctx context.Context, orgID, userID int64, from, to time.Time) ([]model.AttendanceRecord, error) {
	if m.listByUserFn != nil {
		return m.listByUserFn(ctx, orgID, userID, from, to)
	}
	return []model.AttendanceRecord{}, nil
}

func (m *mockAttendanceStore) ListByDay(ctx context.Context, orgID int64, day time.Time, userID *int64) ([]model.AttendanceRecord, error) {
	if m.listByDayFn != nil {
		return m.listByDayFn(ctx, orgID, day, userID)
	}
	return []model.AttendanceRecord{}, nil
}

func (m *mockAttendanceStore) Summarize(ctx context.Context, orgID int64, from, to time.Time) ([]model.AttendanceSummary, error) {
	if m.summarizeFn != nil {
		return m.summarizeFn(ctx, orgID, from, to)
	}
	return []model.AttendanceSummary{}, nil
}

func (m *mockAttendanceStore) MarkOnLeave(_ context.Context, _, _, _ int64, days []time.Time, _ func() int64) (int, error) {
	return len(days), nil
}

func (m *mockAttendanceStore) ClearLeave(_ context.Context, _ int64) (int, error) {
	return 0, nil
}

type mockLeaveStore struct {
	getByIDFn      func(ctx context.Context, id int64) (*model.LeaveRequest, error)
	createFn       func(ctx context.Context, l *model.LeaveRequest) error
	updateStatusFn func(ctx context.Context, l *model.LeaveRequest, from ...model.LeaveStatus) error
	hasOverlapFn   func(ctx context.Context, orgID, userID int64, start, end time.Time) (bool, error)
	listFn         func(ctx context.Context, f store.LeaveFilter) ([]model.LeaveRequest, error)
	updateCalls    int
}

func (m *mockLeaveStore) GetByIDForUpdate(ctx context.Context, id int64) (*model.LeaveRequest, error) {
	return m.GetByID(ctx, id)
}

func (m *mockLeaveStore) GetByID(ctx context.Context, id int64) (*model.LeaveRequest, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return nil, store.ErrNotFound
}

func (m *mockLeaveStore) Create(ctx context.Context, l *model.LeaveRequest) error {
	if m.createFn != nil {
		return m.createFn(ctx, l)
	}
	return nil
}

func (m *mockLeaveStore) UpdateStatus(ctx context.Context, l *model.LeaveRequest, from ...model.LeaveStatus) error {
	m.updateCalls++
	if m.updateStatusFn != nil {
		return m.updateStatusFn(ctx, l, from...)
	}
	return nil
}

func (m *mockLeaveStore) HasOverlap(ctx context.Context, orgID, userID int64, start, end time.Time) (bool, error) {
	if m.hasOverlapFn != nil {
		return m.hasOverlapFn(ctx, orgID, userID, start, end)
	}
	return false, nil
}

func (m *mockLeaveStore) List(ctx context.Context, f store.LeaveFilter) ([]model.LeaveRequest, error) {
	if m.listFn != nil {
		return m.listFn(ctx, f)
	}
	return []model.LeaveRequest{}, nil
}

type mockActivityStore struct {
	listFn func(ctx context.Context, orgID int64, before *int64, limit int32) ([]model.Activity, error)
}

func (m *mockActivityStore) Append(_ context.Context, _ *model.Activity) (bool, error) {
	return true, nil
}

func (m *mockActivityStore) ListByOrganization(ctx context.Context, orgID int64, before *int64, limit int32) ([]model.Activity, error) {
	if m.listFn != nil {
		return m.listFn(ctx, orgID, before, limit)
	}
	return []model.Activity{}, nil
}

type mockStoreProvider struct {
	users      store.UserStore
	orgs       store.OrganizationStore
	members    store.MemberStore
	attendance store.AttendanceStore
	leaves     store.LeaveStore
	activity   store.ActivityStore
}

func (m *mockStoreProvider) Users() store.UserStore                 { return m.users }
func (m *mockStoreProvider) Organizations() store.OrganizationStore { return m.orgs }
func (m *mockStoreProvider) Members() store.MemberStore             { return m.members }
func (m *mockStoreProvider) Attendance() store.AttendanceStore      { return m.attendance }
func (m *mockStoreProvider) Leaves() store.LeaveStore               { return m.leaves }
func (m *mockStoreProvider) Activity() store.ActivityStore          { return m.activity }

type mockTxRunner struct {
	withTxFn func(ctx context.Context, fn func(stores service.StoreProvider) error) error
}

func (m *mockTxRunner) WithTx(ctx context.Context, fn func(stores service.StoreProvider) error) error {
	if m.withTxFn != nil {
		return m.withTxFn(ctx, fn)
	}
	return fn(&mockStoreProvider{})
}

// txOver runs every transaction directly against p.
func txOver(p *mockStoreProvider) *mockTxRunner {
	return &mockTxRunner{
		withTxFn: func(_ context.Context, fn func(stores service.StoreProvider) error) error {
			return fn(p)
		},
	}
}

type mockProducer struct {
	publishFn func(ctx context.Context, evt queue.Event) error
	events    []queue.Event
}

func (m *mockProducer) Publish(ctx context.Context, evt queue.Event) error {
	m.events = append(m.events, evt)
	if m.publishFn != nil {
		return m.publishFn(ctx, evt)
	}
	return nil
}

func (m *mockProducer) Close() error { return nil }

func (m *mockProducer) types() []queue.EventType {
	out := make([]queue.EventType, 0, len(m.events))
	for _, e := range m.events {
		out = append(out, e.Type)
	}
	return out
}

// plainHasher stores passwords as "hashed:<password>".
type plainHasher struct {
	hashErr error
}

func (h *plainHasher) Hash(password string) (string, error) {
	if h.hashErr != nil {
		return "", h.hashErr
	}
	return "hashed:" + password, nil
}

func (h *plainHasher) Compare(hash, password string) error {
	if hash != "hashed:"+password {
		return auth.ErrPasswordMismatch
	}
	return nil
}

type mockTokenIssuer struct {
	verifyFn func(raw string) (*auth.Claims, error)
	issued   []int64
}

func (m *mockTokenIssuer) Issue(userID int64, _ string) (auth.Token, error) {
	m.issued = append(m.issued, userID)
	return auth.Token{Value: "token", ExpiresAt: time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)}, nil
}

func (m *mockTokenIssuer) Verify(raw string) (*auth.Claims, error) {
	if m.verifyFn != nil {
		return m.verifyFn(raw)
	}
	return nil, auth.ErrInvalidToken
}

func strPtr(s string) *string { return &s }
