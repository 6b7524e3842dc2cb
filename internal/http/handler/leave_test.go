package handler_test

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"peoplehub.app/api/internal/http/handler"
	"peoplehub.app/api/internal/model"
	"peoplehub.app/api/internal/service"
)

var _ = Describe("LeaveHandler", func() {
	var (
		svc    *mockLeaveService
		router *gin.Engine
	)

	day := func(d int) time.Time { return time.Date(2026, 4, d, 0, 0, 0, 0, time.UTC) }

	validBody := map[string]string{
		"organization_id": "100",
		"type":            "annual",
		"start_date":      "2026-04-06",
		"end_date":        "2026-04-08",
		"reason":          "family trip",
	}

	BeforeEach(func() {
		svc = &mockLeaveService{}
		h := handler.NewLeaveHandler(svc)

		router = newRouter(testUser)
		router.POST("/api/v1/leave", h.Create)
		router.GET("/api/v1/leave/me", h.ListMine)
		router.GET("/api/v1/leave/:leave_id", h.Get)
		router.POST("/api/v1/leave/:leave_id/approve", h.Approve)
		router.POST("/api/v1/leave/:leave_id/reject", h.Reject)
		router.POST("/api/v1/leave/:leave_id/cancel", h.Cancel)
		router.GET("/api/v1/leave/org/:org_id", h.ListForOrg)
	})

	Describe("Create", func() {
		It("returns 201 with the pending request", func() {
			svc.createFn = func(_ context.Context, userID int64, in service.CreateLeaveInput) (*model.LeaveRequest, error) {
				Expect(userID).To(Equal(testUser.ID))
				Expect(in.Type).To(Equal(model.LeaveAnnual))
				Expect(in.StartDate).To(Equal(day(6)))
				Expect(in.EndDate).To(Equal(day(8)))
				return &model.LeaveRequest{
					ID: 9, OrganizationID: in.OrganizationID, UserID: userID, Type: in.Type,
					StartDate: in.StartDate, EndDate: in.EndDate, Days: 3,
					Reason: in.Reason, Status: model.LeavePending,
				}, nil
			}

			w := do(router, http.MethodPost, "/api/v1/leave", validBody)

			Expect(w.Code).To(Equal(http.StatusCreated))
			data := dataOf(w)
			Expect(data["id"]).To(Equal("9"))
			Expect(data["status"]).To(Equal("pending"))
			Expect(data["start_date"]).To(Equal("2026-04-06"))
			Expect(data["days"]).To(BeNumerically("==", 3))
		})

		It("returns 409 for overlapping requests", func() {
			svc.createFn = func(context.Context, int64, service.CreateLeaveInput) (*model.LeaveRequest, error) {
				return nil, service.ErrLeaveOverlap
			}

			w := do(router, http.MethodPost, "/api/v1/leave", validBody)

			Expect(w.Code).To(Equal(http.StatusConflict))
		})

		It("rejects unknown leave types", func() {
			body := map[string]string{}
			for k, v := range validBody {
				body[k] = v
			}
			body["type"] = "sabbatical"

			w := do(router, http.MethodPost, "/api/v1/leave", body)

			Expect(w.Code).To(Equal(http.StatusBadRequest))
			Expect(decode(w).Errors).To(HaveKey("type"))
		})
	})

	Describe("review", func() {
		It("returns 403 when approving one's own request", func() {
			svc.approveFn = func(context.Context, int64, int64, *string) (*model.LeaveRequest, error) {
				return nil, service.ErrSelfReview
			}

			w := do(router, http.MethodPost, "/api/v1/leave/9/approve", nil)

			Expect(w.Code).To(Equal(http.StatusForbidden))
			Expect(decode(w).Message).To(Equal("you cannot review your own leave request"))
		})

		It("returns 409 when the request is no longer pending", func() {
			svc.rejectFn = func(context.Context, int64, int64, *string) (*model.LeaveRequest, error) {
				return nil, service.ErrInvalidTransition
			}

			w := do(router, http.MethodPost, "/api/v1/leave/9/reject", map[string]string{"comment": "too late"})

			Expect(w.Code).To(Equal(http.StatusConflict))
		})

		It("forwards the optional comment", func() {
			svc.approveFn = func(_ context.Context, actorID, leaveID int64, comment *string) (*model.LeaveRequest, error) {
				Expect(actorID).To(Equal(testUser.ID))
				Expect(leaveID).To(Equal(int64(9)))
				Expect(*comment).To(Equal("enjoy"))
				return &model.LeaveRequest{ID: leaveID, StartDate: day(6), EndDate: day(8), Status: model.LeaveApproved, ReviewerID: &actorID, ReviewComment: comment}, nil
			}

			w := do(router, http.MethodPost, "/api/v1/leave/9/approve", map[string]string{"comment": "enjoy"})

			Expect(w.Code).To(Equal(http.StatusOK))
			data := dataOf(w)
			Expect(data["status"]).To(Equal("approved"))
			Expect(data["reviewer_id"]).To(Equal("4"))
		})

		It("returns 400 for malformed ids", func() {
			w := do(router, http.MethodPost, "/api/v1/leave/nope/cancel", nil)

			Expect(w.Code).To(Equal(http.StatusBadRequest))
			Expect(decode(w).Message).To(Equal("invalid leave_id"))
		})
	})

	Describe("Get", func() {
		It("returns 404 for hidden requests", func() {
			w := do(router, http.MethodGet, "/api/v1/leave/9", nil)

			Expect(w.Code).To(Equal(http.StatusNotFound))
		})
	})

	Describe("ListForOrg", func() {
		It("filters by status", func() {
			svc.listForOrgFn = func(_ context.Context, _, orgID int64, status *model.LeaveStatus, userID *int64) ([]model.LeaveRequest, error) {
				Expect(orgID).To(Equal(int64(100)))
				Expect(*status).To(Equal(model.LeavePending))
				Expect(userID).To(BeNil())
				return nil, nil
			}

			w := do(router, http.MethodGet, "/api/v1/leave/org/100?status=pending", nil)

			Expect(w.Code).To(Equal(http.StatusOK))
		})

		It("rejects unknown statuses", func() {
			w := do(router, http.MethodGet, "/api/v1/leave/org/100?status=archived", nil)

			Expect(w.Code).To(Equal(http.StatusBadRequest))
		})
	})
})
