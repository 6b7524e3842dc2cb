package service

import "errors"

var (
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidToken       = errors.New("invalid or expired token")
	ErrUserNotFound       = errors.New("user not found")
	ErrPasswordTooLong    = errors.New("password exceeds 72 bytes")
	ErrBlankName          = errors.New("name must not be blank")

	ErrOrganizationNotFound = errors.New("organization not found")
	ErrForbidden            = errors.New("insufficient permissions")
	ErrMemberNotFound       = errors.New("member not found")
	ErrAlreadyMember        = errors.New("user is already a member")
	ErrOwnerImmutable       = errors.New("the organization owner cannot be changed or removed")
	ErrInvalidRole          = errors.New("invalid role")
	ErrSlugTaken            = errors.New("organization slug is already taken")

	ErrAlreadyCheckedIn  = errors.New("already checked in today")
	ErrOnLeave           = errors.New("on leave today")
	ErrNotCheckedIn      = errors.New("no check-in found for today")
	ErrAlreadyCheckedOut = errors.New("already checked out today")
	ErrInvalidRange      = errors.New("invalid date range")

	ErrLeaveNotFound     = errors.New("leave request not found")
	ErrLeaveOverlap      = errors.New("leave overlaps an existing request")
	ErrSelfReview        = errors.New("cannot review your own leave request")
	ErrInvalidTransition = errors.New("leave request cannot move to that status")
	ErrInvalidLeaveType  = errors.New("invalid leave type")
	ErrBlankReason       = errors.New("reason must not be blank")
)
