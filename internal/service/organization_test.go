package service_test

import (
	"context"
	"errors"
	"fmt"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"peoplehub.app/api/internal/model"
	"peoplehub.app/api/internal/queue"
	"peoplehub.app/api/internal/service"
	"peoplehub.app/api/internal/store"
)

const (
	orgID      int64 = 100
	ownerID    int64 = 1
	adminID    int64 = 2
	managerID  int64 = 3
	employeeID int64 = 4
	outsiderID int64 = 99
)

func staff() *mockMemberStore {
	return newMemberStore(
		model.Member{OrganizationID: orgID, UserID: ownerID, Role: model.RoleOwner},
		model.Member{OrganizationID: orgID, UserID: adminID, Role: model.RoleAdmin},
		model.Member{OrganizationID: orgID, UserID: managerID, Role: model.RoleManager},
		model.Member{OrganizationID: orgID, UserID: employeeID, Role: model.RoleEmployee},
	)
}

var _ = Describe("OrganizationService", func() {
	var (
		svc      service.OrganizationService
		orgs     *mockOrganizationStore
		members  *mockMemberStore
		users    *mockUserStore
		producer *mockProducer
		ctx      context.Context
	)

	BeforeEach(func() {
		ctx = context.Background()
		orgs = &mockOrganizationStore{}
		members = staff()
		users = &mockUserStore{}
		producer = &mockProducer{}
		tx := txOver(&mockStoreProvider{orgs: orgs, members: members, users: users})
		svc = service.NewOrganizationService(tx, orgs, members, users, producer)
	})

	Describe("Create", func() {
		BeforeEach(func() {
			members = newMemberStore()
			tx := txOver(&mockStoreProvider{orgs: orgs, members: members, users: users})
			svc = service.NewOrganizationService(tx, orgs, members, users, producer)
		})

		It("creates the organization with the creator as owner", func() {
			org, err := svc.Create(ctx, 10, "Acme Corp", nil, strPtr("Widgets"))
			Expect(err).NotTo(HaveOccurred())
			Expect(org.Slug).To(Equal("acme-corp"))
			Expect(org.OwnerID).To(Equal(int64(10)))
			Expect(orgs.createCalls).To(Equal(1))

			owner, err := members.Get(ctx, org.ID, 10)
			Expect(err).NotTo(HaveOccurred())
			Expect(owner.Role).To(Equal(model.RoleOwner))
		})

		It("rejects a whitespace-only name", func() {
			_, err := svc.Create(ctx, 10, " \t ", nil, nil)
			Expect(err).To(MatchError(service.ErrBlankName))
			Expect(orgs.createCalls).To(BeZero())
		})

		It("retries with the next suffix when the slug is taken concurrently", func() {
			taken := map[string]bool{}
			orgs.getBySlugFn = func(_ context.Context, slug string) (*model.Organization, error) {
				if taken[slug] {
					return &model.Organization{Slug: slug}, nil
				}
				return nil, store.ErrNotFound
			}
			orgs.createFn = func(_ context.Context, org *model.Organization) error {
				if org.Slug == "acme" {
					taken["acme"] = true
					return fmt.Errorf("insert: %w", store.ErrConflict)
				}
				return nil
			}

			org, err := svc.Create(ctx, 10, "Acme", nil, nil)
			Expect(err).NotTo(HaveOccurred())
			Expect(org.Slug).To(Equal("acme-1"))
			Expect(orgs.createCalls).To(Equal(2))
		})

		It("gives up with a conflict when the slug keeps being taken", func() {
			orgs.createFn = func(context.Context, *model.Organization) error {
				return store.ErrConflict
			}

			_, err := svc.Create(ctx, 10, "Acme", nil, nil)
			Expect(err).To(MatchError(service.ErrSlugTaken))
			Expect(orgs.createCalls).To(Equal(3))
		})

		It("uses the provided slug", func() {
			orgs.getBySlugFn = func(_ context.Context, slug string) (*model.Organization, error) {
				Expect(slug).To(Equal("custom-slug"))
				return nil, store.ErrNotFound
			}

			org, err := svc.Create(ctx, 10, "Acme", strPtr("Custom Slug"), nil)
			Expect(err).NotTo(HaveOccurred())
			Expect(org.Slug).To(Equal("custom-slug"))
		})

		It("adds a numeric suffix when the slug is taken", func() {
			orgs.getBySlugFn = func(_ context.Context, slug string) (*model.Organization, error) {
				if slug == "acme" || slug == "acme-1" {
					return &model.Organization{}, nil
				}
				return nil, store.ErrNotFound
			}

			org, err := svc.Create(ctx, 10, "Acme", nil, nil)
			Expect(err).NotTo(HaveOccurred())
			Expect(org.Slug).To(Equal("acme-2"))
		})

		It("does not add the owner when the organization insert fails", func() {
			orgs.createFn = func(_ context.Context, _ *model.Organization) error {
				return errors.New("insert failed")
			}

			_, err := svc.Create(ctx, 10, "Acme", nil, nil)
			Expect(err).To(HaveOccurred())
			Expect(members.members).To(BeEmpty())
		})
	})

	Describe("Get", func() {
		It("returns the organization with the caller's role", func() {
			m, err := svc.Get(ctx, managerID, orgID)
			Expect(err).NotTo(HaveOccurred())
			Expect(m.Role).To(Equal(model.RoleManager))
			Expect(m.Organization.ID).To(Equal(orgID))
		})

		It("hides the organization from non-members", func() {
			_, err := svc.Get(ctx, outsiderID, orgID)
			Expect(err).To(MatchError(service.ErrOrganizationNotFound))
		})

		It("treats deleted organizations as missing", func() {
			orgs.getByIDFn = func(_ context.Context, _ int64) (*model.Organization, error) {
				return nil, store.ErrNotFound
			}

			_, err := svc.Get(ctx, ownerID, orgID)
			Expect(err).To(MatchError(service.ErrOrganizationNotFound))
		})
	})

	Describe("Update and Delete", func() {
		It("lets admins rename the organization", func() {
			org, err := svc.Update(ctx, adminID, orgID, strPtr(" Acme Ltd "), nil)
			Expect(err).NotTo(HaveOccurred())
			Expect(org.Name).To(Equal("Acme Ltd"))
		})

		It("forbids managers from updating", func() {
			_, err := svc.Update(ctx, managerID, orgID, strPtr("x"), nil)
			Expect(err).To(MatchError(service.ErrForbidden))
		})

		It("only lets the owner delete", func() {
			Expect(svc.Delete(ctx, adminID, orgID)).To(MatchError(service.ErrForbidden))
			Expect(svc.Delete(ctx, ownerID, orgID)).To(Succeed())
			Expect(orgs.deleteCalls).To(Equal(1))
		})
	})

	Describe("AddMember", func() {
		BeforeEach(func() {
			users.getByEmailFn = func(_ context.Context, email string) (*model.User, error) {
				if email == "new@example.com" {
					return &model.User{ID: 50, Name: "New", Email: email}, nil
				}
				if email == "manager@example.com" {
					return &model.User{ID: managerID, Email: email}, nil
				}
				return nil, store.ErrNotFound
			}
		})

		It("adds an existing user and publishes member.added", func() {
			m, err := svc.AddMember(ctx, adminID, orgID, service.AddMemberInput{
				Email: "New@Example.com",
				Role:  model.RoleEmployee,
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(m.UserID).To(Equal(int64(50)))
			Expect(m.UserEmail).To(Equal("new@example.com"))
			Expect(producer.types()).To(ConsistOf(queue.EventMemberAdded))
		})

		It("returns ErrUserNotFound for unknown emails", func() {
			_, err := svc.AddMember(ctx, adminID, orgID, service.AddMemberInput{Email: "ghost@example.com", Role: model.RoleEmployee})
			Expect(err).To(MatchError(service.ErrUserNotFound))
		})

		It("returns ErrAlreadyMember for existing members", func() {
			_, err := svc.AddMember(ctx, adminID, orgID, service.AddMemberInput{Email: "manager@example.com", Role: model.RoleEmployee})
			Expect(err).To(MatchError(service.ErrAlreadyMember))
		})

		It("only lets the owner grant admin", func() {
			in := service.AddMemberInput{Email: "new@example.com", Role: model.RoleAdmin}

			_, err := svc.AddMember(ctx, adminID, orgID, in)
			Expect(err).To(MatchError(service.ErrForbidden))

			_, err = svc.AddMember(ctx, ownerID, orgID, in)
			Expect(err).NotTo(HaveOccurred())
		})

		It("never grants owner", func() {
			_, err := svc.AddMember(ctx, ownerID, orgID, service.AddMemberInput{Email: "new@example.com", Role: model.RoleOwner})
			Expect(err).To(MatchError(service.ErrInvalidRole))
		})

		It("forbids managers from adding members", func() {
			_, err := svc.AddMember(ctx, managerID, orgID, service.AddMemberInput{Email: "new@example.com", Role: model.RoleEmployee})
			Expect(err).To(MatchError(service.ErrForbidden))
		})
	})

	Describe("UpdateMember", func() {
		It("promotes an employee to manager", func() {
			role := model.RoleManager
			m, err := svc.UpdateMember(ctx, adminID, orgID, employeeID, service.UpdateMemberInput{Role: &role, Department: strPtr("Ops")})
			Expect(err).NotTo(HaveOccurred())
			Expect(m.Role).To(Equal(model.RoleManager))
			Expect(*m.Department).To(Equal("Ops"))
		})

		It("refuses to change the owner's role", func() {
			role := model.RoleEmployee
			_, err := svc.UpdateMember(ctx, ownerID, orgID, ownerID, service.UpdateMemberInput{Role: &role})
			Expect(err).To(MatchError(service.ErrOwnerImmutable))
		})

		It("does not let one admin demote another", func() {
			members.members[5] = &model.Member{OrganizationID: orgID, UserID: 5, Role: model.RoleAdmin}
			role := model.RoleEmployee

			_, err := svc.UpdateMember(ctx, adminID, orgID, 5, service.UpdateMemberInput{Role: &role})
			Expect(err).To(MatchError(service.ErrForbidden))
		})

		It("returns ErrMemberNotFound for unknown members", func() {
			_, err := svc.UpdateMember(ctx, adminID, orgID, outsiderID, service.UpdateMemberInput{})
			Expect(err).To(MatchError(service.ErrMemberNotFound))
		})
	})

	Describe("RemoveMember", func() {
		It("lets admins remove employees", func() {
			Expect(svc.RemoveMember(ctx, adminID, orgID, employeeID)).To(Succeed())
			Expect(members.removeCalls).To(ConsistOf(employeeID))
			Expect(producer.types()).To(ConsistOf(queue.EventMemberRemoved))
		})

		It("lets members leave on their own", func() {
			Expect(svc.RemoveMember(ctx, employeeID, orgID, employeeID)).To(Succeed())
		})

		It("forbids employees from removing others", func() {
			Expect(svc.RemoveMember(ctx, employeeID, orgID, managerID)).To(MatchError(service.ErrForbidden))
		})

		It("never removes the owner", func() {
			Expect(svc.RemoveMember(ctx, ownerID, orgID, ownerID)).To(MatchError(service.ErrOwnerImmutable))
			Expect(svc.RemoveMember(ctx, adminID, orgID, ownerID)).To(MatchError(service.ErrOwnerImmutable))
		})
	})
})
