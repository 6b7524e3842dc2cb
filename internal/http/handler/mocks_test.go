package handler_test

import (
	"context"
	"time"

	"peoplehub.app/api/internal/auth"
	"peoplehub.app/api/internal/model"
	"peoplehub.app/api/internal/service"
)

type mockAuthService struct {
	registerFn       func(ctx context.Context, name, email, password string) (*model.User, auth.Token, error)
	loginFn          func(ctx context.Context, email, password string) (*model.User, auth.Token, error)
	changePasswordFn func(ctx context.Context, userID int64, current, next string) error
}

func (m *mockAuthService) Register(ctx context.Context, name, email, password string) (*model.User, auth.Token, error) {
	if m.registerFn != nil {
		return m.registerFn(ctx, name, email, password)
	}
	return nil, auth.Token{}, nil
}

func (m *mockAuthService) Login(ctx context.Context, email, password string) (*model.User, auth.Token, error) {
	if m.loginFn != nil {
		return m.loginFn(ctx, email, password)
	}
	return nil, auth.Token{}, nil
}

func (m *mockAuthService) Authenticate(_ context.Context, _ string) (*model.User, error) {
	return nil, service.ErrInvalidToken
}

func (m *mockAuthService) ChangePassword(ctx context.Context, userID int64, current, next string) error {
	if m.changePasswordFn != nil {
		return m.changePasswordFn(ctx, userID, current, next)
	}
	return nil
}

func (m *mockAuthService) IssueToken(_ context.Context, _ string) (*model.User, auth.Token, error) {
	return nil, auth.Token{}, nil
}

type mockOrganizationService struct {
	createFn       func(ctx context.Context, ownerID int64, name string, slug, description *string) (*model.Organization, error)
	listForUserFn  func(ctx context.Context, userID int64) ([]model.Membership, error)
	getFn          func(ctx context.Context, userID, orgID int64) (*model.Membership, error)
	updateFn       func(ctx context.Context, userID, orgID int64, name, description *string) (*model.Organization, error)
	deleteFn       func(ctx context.Context, userID, orgID int64) error
	listMembersFn  func(ctx context.Context, userID, orgID int64) ([]model.Member, error)
	addMemberFn    func(ctx context.Context, actorID, orgID int64, in service.AddMemberInput) (*model.Member, error)
	updateMemberFn func(ctx context.Context, actorID, orgID, targetID int64, in service.UpdateMemberInput) (*model.Member, error)
	removeMemberFn func(ctx context.Context, actorID, orgID, targetID int64) error
}

func (m *mockOrganizationService) Create(ctx context.Context, ownerID int64, name string, slug, description *string) (*model.Organization, error) {
	if m.createFn != nil {
		return m.createFn(ctx, ownerID, name, slug, description)
	}
	return nil, nil
}

func (m *mockOrganizationService) ListForUser(ctx context.Context, userID int64) ([]model.Membership, error) {
	if m.listForUserFn != nil {
		return m.listForUserFn(ctx, userID)
	}
	return nil, nil
}

func (m *mockOrganizationService) Get(ctx context.Context, userID, orgID int64) (*model.Membership, error) {
	if m.getFn != nil {
		return m.getFn(ctx, userID, orgID)
	}
	return nil, service.ErrOrganizationNotFound
}

func (m *mockOrganizationService) Update(ctx context.Context, userID, orgID int64, name, description *string) (*model.Organization, error) {
	if m.updateFn != nil {
		return m.updateFn(ctx, userID, orgID, name, description)
	}
	return nil, nil
}

func (m *mockOrganizationService) Delete(ctx context.Context, userID, orgID int64) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, userID, orgID)
	}
	return nil
}

func (m *mockOrganizationService) ListMembers(ctx context.Context, userID, orgID int64) ([]model.Member, error) {
	if m.listMembersFn != nil {
		return m.listMembersFn(ctx, userID, orgID)
	}
	return nil, nil
}

func (m *mockOrganizationService) AddMember(ctx context.Context, actorID, orgID int64, in service.AddMemberInput) (*model.Member, error) {
	if m.addMemberFn != nil {
		return m.addMemberFn(ctx, actorID, orgID, in)
	}
	return nil, nil
}

func (m *mockOrganizationService) UpdateMember(ctx context.Context, actorID, orgID, targetID int64, in service.UpdateMemberInput) (*model.Member, error) {
	if m.updateMemberFn != nil {
		return m.updateMemberFn(ctx, actorID, orgID, targetID, in)
	}
	return nil, nil
}

func (m *mockOrganizationService) RemoveMember(ctx context.Context, actorID, orgID, targetID int64) error {
	if m.removeMemberFn != nil {
		return m.removeMemberFn(ctx, actorID, orgID, targetID)
	}
	return nil
}

type mockAttendanceService struct {
	checkInFn    func(ctx context.Context, userID, orgID int64, note *string) (*model.AttendanceRecord, error)
	checkOutFn   func(ctx context.Context, userID, orgID int64, note *string) (*model.AttendanceRecord, error)
	listMineFn   func(ctx context.Context, userID, orgID int64, r service.DateRange) ([]model.AttendanceRecord, error)
	listForDayFn func(ctx context.Context, actorID, orgID int64, day *time.Time, userID *int64) ([]model.AttendanceRecord, error)
	summaryFn    func(ctx context.Context, actorID, orgID int64, r service.DateRange) ([]model.AttendanceSummary, error)
}

func (m *mockAttendanceService) CheckIn(ctx context.Context, userID, orgID int64, note *string) (*model.AttendanceRecord, error) {
	if m.checkInFn != nil {
		return m.checkInFn(ctx, userID, orgID, note)
	}
	return nil, nil
}

func (m *mockAttendanceService) CheckOut(ctx context.Context, userID, orgID int64, note *string) (*model.AttendanceRecord, error) {
	if m.checkOutFn != nil {
		return m.checkOutFn(ctx, userID, orgID, note)
	}
	return nil, nil
}

func (m *mockAttendanceService) ListMine(ctx context.Context, userID, orgID int64, r service.DateRange) ([]model.AttendanceRecord, error) {
	if m.listMineFn != nil {
		return m.listMineFn(ctx, userID, orgID, r)
	}
	return nil, nil
}

func (m *mockAttendanceService) ListForDay(ctx context.Context, actorID, orgID int64, day *time.Time, userID *int64) ([]model.AttendanceRecord, error) {
	if m.listForDayFn != nil {
		return m.listForDayFn(ctx, actorID, orgID, day, userID)
	}
	return nil, nil
}

func (m *mockAttendanceService) Summary(ctx context.Context, actorID, orgID int64, r service.DateRange) ([]model.AttendanceSummary, error) {
	if m.summaryFn != nil {
		return m.summaryFn(ctx, actorID, orgID, r)
	}
	return nil, nil
}

type mockLeaveService struct {
	createFn     func(ctx context.Context, userID int64, in service.CreateLeaveInput) (*model.LeaveRequest, error)
	listMineFn   func(ctx context.Context, userID, orgID int64, status *model.LeaveStatus) ([]model.LeaveRequest, error)
	listForOrgFn func(ctx context.Context, actorID, orgID int64, status *model.LeaveStatus, userID *int64) ([]model.LeaveRequest, error)
	getFn        func(ctx context.Context, actorID, leaveID int64) (*model.LeaveRequest, error)
	approveFn    func(ctx context.Context, actorID, leaveID int64, comment *string) (*model.LeaveRequest, error)
	rejectFn     func(ctx context.Context, actorID, leaveID int64, comment *string) (*model.LeaveRequest, error)
	cancelFn     func(ctx context.Context, actorID, leaveID int64, comment *string) (*model.LeaveRequest, error)
}

func (m *mockLeaveService) Create(ctx context.Context, userID int64, in service.CreateLeaveInput) (*model.LeaveRequest, error) {
	if m.createFn != nil {
		return m.createFn(ctx, userID, in)
	}
	return nil, nil
}

func (m *mockLeaveService) ListMine(ctx context.Context, userID, orgID int64, status *model.LeaveStatus) ([]model.LeaveRequest, error) {
	if m.listMineFn != nil {
		return m.listMineFn(ctx, userID, orgID, status)
	}
	return nil, nil
}

func (m *mockLeaveService) ListForOrg(ctx context.Context, actorID, orgID int64, status *model.LeaveStatus, userID *int64) ([]model.LeaveRequest, error) {
	if m.listForOrgFn != nil {
		return m.listForOrgFn(ctx, actorID, orgID, status, userID)
	}
	return nil, nil
}

func (m *mockLeaveService) Get(ctx context.Context, actorID, leaveID int64) (*model.LeaveRequest, error) {
	if m.getFn != nil {
		return m.getFn(ctx, actorID, leaveID)
	}
	return nil, service.ErrLeaveNotFound
}

func (m *mockLeaveService) Approve(ctx context.Context, actorID, leaveID int64, comment *string) (*model.LeaveRequest, error) {
	if m.approveFn != nil {
		return m.approveFn(ctx, actorID, leaveID, comment)
	}
	return nil, nil
}

func (m *mockLeaveService) Reject(ctx context.Context, actorID, leaveID int64, comment *string) (*model.LeaveRequest, error) {
	if m.rejectFn != nil {
		return m.rejectFn(ctx, actorID, leaveID, comment)
	}
	return nil, nil
}

func (m *mockLeaveService) Cancel(ctx context.Context, actorID, leaveID int64, comment *string) (*model.LeaveRequest, error) {
	if m.cancelFn != nil {
		return m.cancelFn(ctx, actorID, leaveID, comment)
	}
	return nil, nil
}

type mockActivityService struct {
	listFn func(ctx context.Context, actorID, orgID int64, before *int64, limit int) ([]model.Activity, error)
}

func (m *mockActivityService) List(ctx context.Context, actorID, orgID int64, before *int64, limit int) ([]model.Activity, error) {
	if m.listFn != nil {
		return m.listFn(ctx, actorID, orgID, before, limit)
	}
	return nil, nil
}
