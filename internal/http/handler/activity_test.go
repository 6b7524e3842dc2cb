package handler_test

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"peoplehub.app/api/internal/http/handler"
	"peoplehub.app/api/internal/model"
	"peoplehub.app/api/internal/service"
)

var _ = Describe("ActivityHandler", func() {
	var (
		svc    *mockActivityService
		router *gin.Engine
	)

	BeforeEach(func() {
		svc = &mockActivityService{}
		router = newRouter(testUser)
		router.GET("/api/v1/org/:org_id/activity", handler.NewActivityHandler(svc).List)
	})

	It("forwards paging and renders ids as strings", func() {
		svc.listFn = func(_ context.Context, actorID, orgID int64, before *int64, limit int) ([]model.Activity, error) {
			Expect(actorID).To(Equal(testUser.ID))
			Expect(orgID).To(Equal(int64(100)))
			Expect(before).NotTo(BeNil())
			Expect(*before).To(Equal(int64(900)))
			Expect(limit).To(Equal(20))
			return []model.Activity{{
				ID:        800,
				ActorID:   4,
				EventType: "leave.approved",
				SubjectID: 55,
				Payload:   json.RawMessage(`{"attempt":1}`),
			}}, nil
		}

		w := do(router, http.MethodGet, "/api/v1/org/100/activity?limit=20&before=900", nil)

		Expect(w.Code).To(Equal(http.StatusOK))
		var items []map[string]any
		Expect(json.Unmarshal(decode(w).Data, &items)).To(Succeed())
		Expect(items).To(HaveLen(1))
		Expect(items[0]["id"]).To(Equal("800"))
		Expect(items[0]["subject_id"]).To(Equal("55"))
		Expect(items[0]["event_type"]).To(Equal("leave.approved"))
	})

	It("rejects a limit above 200", func() {
		w := do(router, http.MethodGet, "/api/v1/org/100/activity?limit=500", nil)

		Expect(w.Code).To(Equal(http.StatusBadRequest))
		Expect(decode(w).Errors).To(HaveKey("limit"))
	})

	It("returns 403 for members below admin", func() {
		svc.listFn = func(context.Context, int64, int64, *int64, int) ([]model.Activity, error) {
			return nil, service.ErrForbidden
		}

		w := do(router, http.MethodGet, "/api/v1/org/100/activity", nil)

		Expect(w.Code).To(Equal(http.StatusForbidden))
	})
})
