package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"peoplehub.app/api/common/id"
	"peoplehub.app/api/internal/apperr"
	"peoplehub.app/api/internal/http/dto"
	"peoplehub.app/api/internal/http/middleware"
	"peoplehub.app/api/internal/model"
	"peoplehub.app/api/internal/service"
)

// serviceErrors maps service sentinels to what clients see.
var serviceErrors = []struct {
	target error
	err    *apperr.Error
}{
	{service.ErrEmailTaken, apperr.Conflict("email already registered").WithCode("email_taken")},
	{service.ErrInvalidCredentials, apperr.Unauthorized("invalid email or password").WithCode("invalid_credentials")},
	{service.ErrInvalidToken, apperr.Unauthorized("invalid or expired token")},
	{service.ErrPasswordTooLong, apperr.BadRequest("password must be at most 72 bytes")},
	{service.ErrUserNotFound, apperr.NotFound("user not found")},
	{service.ErrBlankName, apperr.BadRequest("name must not be blank")},

	{service.ErrOrganizationNotFound, apperr.NotFound("organization not found")},
	{service.ErrForbidden, apperr.Forbidden("you do not have permission to perform this action")},
	{service.ErrMemberNotFound, apperr.NotFound("member not found")},
	{service.ErrAlreadyMember, apperr.Conflict("user is already a member of this organization")},
	{service.ErrOwnerImmutable, apperr.Forbidden("the organization owner cannot be changed or removed")},
	{service.ErrInvalidRole, apperr.BadRequest("invalid role")},
	{service.ErrSlugTaken, apperr.Conflict("organization slug is already taken")},

	{service.ErrAlreadyCheckedIn, apperr.Conflict("already checked in today")},
	{service.ErrOnLeave, apperr.Conflict("you are on approved leave today")},
	{service.ErrNotCheckedIn, apperr.NotFound("no check-in found for today")},
	{service.ErrAlreadyCheckedOut, apperr.Conflict("already checked out today")},

	{service.ErrLeaveNotFound, apperr.NotFound("leave request not found")},
	{service.ErrLeaveOverlap, apperr.Conflict("leave overlaps an existing pending or approved request")},
	{service.ErrSelfReview, apperr.Forbidden("you cannot review your own leave request")},
	{service.ErrInvalidTransition, apperr.Conflict("leave request cannot move to that status")},
	{service.ErrInvalidLeaveType, apperr.BadRequest("invalid leave type")},
	{service.ErrBlankReason, apperr.BadRequest("reason must not be blank")},
}

// fail hands err to the error middleware, translating known service errors.
func fail(c *gin.Context, err error) {
	for _, se := range serviceErrors {
		if errors.Is(err, se.target) {
			_ = c.Error(apperr.Wrap(se.err.Status, se.err.Message, err).WithCode(se.err.Code))
			return
		}
	}
	if errors.Is(err, service.ErrInvalidRange) {
		_ = c.Error(apperr.Wrap(http.StatusBadRequest, err.Error(), err))
		return
	}
	_ = c.Error(err)
}

func bindJSON(c *gin.Context, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		_ = c.Error(err).SetType(gin.ErrorTypeBind)
		return false
	}
	return true
}

func bindQuery(c *gin.Context, req any) bool {
	if err := c.ShouldBindQuery(req); err != nil {
		_ = c.Error(err).SetType(gin.ErrorTypeBind)
		return false
	}
	return true
}

func pathID(c *gin.Context, name string) (int64, bool) {
	v, err := id.Parse(c.Param(name))
	if err != nil {
		_ = c.Error(apperr.BadRequest("invalid " + name))
		return 0, false
	}
	return v, true
}

// currentUser is only valid behind middleware.RequireAuth.
func currentUser(c *gin.Context) *model.User {
	return middleware.GetUser(c.Request.Context())
}

// parseDate reads an already validated YYYY-MM-DD value; empty means unset.
func parseDate(s string) *time.Time {
	if s == "" {
		return nil
	}
	t, err := time.Parse(dto.DateLayout, s)
	if err != nil {
		return nil
	}
	return &t
}

func parseLeaveStatus(s string) *model.LeaveStatus {
	if s == "" {
		return nil
	}
	status := model.LeaveStatus(s)
	return &status
}
