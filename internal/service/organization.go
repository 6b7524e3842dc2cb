package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"peoplehub.app/api/common"
	"peoplehub.app/api/common/id"
	"peoplehub.app/api/internal/model"
	"peoplehub.app/api/internal/queue"
	"peoplehub.app/api/internal/store"
)

type OrganizationService interface {
	Create(ctx context.Context, ownerID int64, name string, slug, description *string) (*model.Organization, error)
	ListForUser(ctx context.Context, userID int64) ([]model.Membership, error)
	Get(ctx context.Context, userID, orgID int64) (*model.Membership, error)
	Update(ctx context.Context, userID, orgID int64, name, description *string) (*model.Organization, error)
	Delete(ctx context.Context, userID, orgID int64) error

	ListMembers(ctx context.Context, userID, orgID int64) ([]model.Member, error)
	AddMember(ctx context.Context, actorID, orgID int64, in AddMemberInput) (*model.Member, error)
	UpdateMember(ctx context.Context, actorID, orgID, targetID int64, in UpdateMemberInput) (*model.Member, error)
	RemoveMember(ctx context.Context, actorID, orgID, targetID int64) error
}

type AddMemberInput struct {
	Email       string
	Role        model.Role
	Department  *string
	Designation *string
}

type UpdateMemberInput struct {
	Role        *model.Role
	Department  *string
	Designation *string
}

type organizationService struct {
	txRunner    TxRunner
	orgStore    store.OrganizationStore
	memberStore store.MemberStore
	userStore   store.UserStore
	events      eventPublisher
}

func NewOrganizationService(
	txRunner TxRunner,
	orgStore store.OrganizationStore,
	memberStore store.MemberStore,
	userStore store.UserStore,
	producer queue.Producer,
) OrganizationService {
	return &organizationService{
		txRunner:    txRunner,
		orgStore:    orgStore,
		memberStore: memberStore,
		userStore:   userStore,
		events:      eventPublisher{producer: producer},
	}
}

func (s *organizationService) Create(ctx context.Context, ownerID int64, name string, slug, description *string) (*model.Organization, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrBlankName
	}

	var org *model.Organization

	// A concurrent create can take the chosen slug between ensureSlug and the
	// insert. The failed insert aborts the transaction, so retry it whole.
	var err error
	for attempt := 1; attempt <= slugAttempts; attempt++ {
		err = s.txRunner.WithTx(ctx, func(stores StoreProvider) error {
			finalSlug, err := ensureSlug(ctx, stores.Organizations(), name, slug)
			if err != nil {
				return err
			}

			org = &model.Organization{
				ID:          id.New(),
				OwnerID:     ownerID,
				Name:        name,
				Slug:        finalSlug,
				Description: description,
			}
			if err := stores.Organizations().Create(ctx, org); err != nil {
				if errors.Is(err, store.ErrConflict) {
					return ErrSlugTaken
				}
				return fmt.Errorf("creating organization: %w", err)
			}

			owner := &model.Member{
				OrganizationID: org.ID,
				UserID:         ownerID,
				Role:           model.RoleOwner,
			}
			if err := stores.Members().Add(ctx, owner); err != nil {
				return fmt.Errorf("adding owner membership: %w", err)
			}
			return nil
		})
		if !errors.Is(err, ErrSlugTaken) {
			break
		}
		slog.WarnContext(ctx, "organization slug taken concurrently, retrying", "attempt", attempt)
	}
	if err != nil {
		return nil, err
	}

	slog.InfoContext(ctx, "organization created", "organization_id", org.ID, "slug", org.Slug)
	return org, nil
}

func (s *organizationService) ListForUser(ctx context.Context, userID int64) ([]model.Membership, error) {
	memberships, err := s.orgStore.ListByMember(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("listing organizations: %w", err)
	}
	return memberships, nil
}

func (s *organizationService) Get(ctx context.Context, userID, orgID int64) (*model.Membership, error) {
	member, err := requireRole(ctx, s.orgStore, s.memberStore, orgID, userID, model.RoleEmployee)
	if err != nil {
		return nil, err
	}

	org, err := s.orgStore.GetByID(ctx, orgID)
	if err != nil {
		return nil, s.orgError(err)
	}
	return &model.Membership{Organization: *org, Role: member.Role}, nil
}

func (s *organizationService) Update(ctx context.Context, userID, orgID int64, name, description *string) (*model.Organization, error) {
	if name != nil && strings.TrimSpace(*name) == "" {
		return nil, ErrBlankName
	}
	if _, err := requireRole(ctx, s.orgStore, s.memberStore, orgID, userID, model.RoleAdmin); err != nil {
		return nil, err
	}

	org, err := s.orgStore.GetByID(ctx, orgID)
	if err != nil {
		return nil, s.orgError(err)
	}

	if name != nil {
		org.Name = strings.TrimSpace(*name)
	}
	if description != nil {
		org.Description = description
	}

	if err := s.orgStore.Update(ctx, org); err != nil {
		return nil, s.orgError(err)
	}
	return org, nil
}

func (s *organizationService) Delete(ctx context.Context, userID, orgID int64) error {
	if _, err := requireRole(ctx, s.orgStore, s.memberStore, orgID, userID, model.RoleOwner); err != nil {
		return err
	}

	if err := s.orgStore.Delete(ctx, orgID); err != nil {
		return s.orgError(err)
	}

	slog.InfoContext(ctx, "organization deleted", "organization_id", orgID)
	return nil
}

func (s *organizationService) ListMembers(ctx context.Context, userID, orgID int64) ([]model.Member, error) {
	if _, err := requireRole(ctx, s.orgStore, s.memberStore, orgID, userID, model.RoleEmployee); err != nil {
		return nil, err
	}

	members, err := s.memberStore.List(ctx, orgID)
	if err != nil {
		return nil, fmt.Errorf("listing members: %w", err)
	}
	return members, nil
}

func (s *organizationService) AddMember(ctx context.Context, actorID, orgID int64, in AddMemberInput) (*model.Member, error) {
	actor, err := requireRole(ctx, s.orgStore, s.memberStore, orgID, actorID, model.RoleAdmin)
	if err != nil {
		return nil, err
	}

	if err := checkGrant(actor.Role, in.Role); err != nil {
		return nil, err
	}

	user, err := s.userStore.GetByEmail(ctx, NormalizeEmail(in.Email))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("loading user: %w", err)
	}

	member := &model.Member{
		OrganizationID: orgID,
		UserID:         user.ID,
		Role:           in.Role,
		Department:     in.Department,
		Designation:    in.Designation,
	}
	if err := s.memberStore.Add(ctx, member); err != nil {
		if errors.Is(err, store.ErrConflict) {
			return nil, ErrAlreadyMember
		}
		return nil, fmt.Errorf("adding member: %w", err)
	}
	member.UserName = user.Name
	member.UserEmail = user.Email

	s.events.publish(ctx, queue.Event{
		Type:           queue.EventMemberAdded,
		OrganizationID: orgID,
		ActorID:        actorID,
		SubjectID:      user.ID,
	})

	slog.InfoContext(ctx, "member added",
		"organization_id", orgID,
		"member_user_id", user.ID,
		"role", member.Role)
	return member, nil
}

func (s *organizationService) UpdateMember(ctx context.Context, actorID, orgID, targetID int64, in UpdateMemberInput) (*model.Member, error) {
	actor, err := requireRole(ctx, s.orgStore, s.memberStore, orgID, actorID, model.RoleAdmin)
	if err != nil {
		return nil, err
	}

	target, err := s.memberStore.Get(ctx, orgID, targetID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrMemberNotFound
		}
		return nil, fmt.Errorf("loading member: %w", err)
	}

	if target.Role == model.RoleAdmin && actor.Role != model.RoleOwner && target.UserID != actorID {
		return nil, ErrForbidden
	}

	if in.Role != nil && *in.Role != target.Role {
		if target.Role == model.RoleOwner {
			return nil, ErrOwnerImmutable
		}
		if err := checkGrant(actor.Role, *in.Role); err != nil {
			return nil, err
		}
		target.Role = *in.Role
	}
	if in.Department != nil {
		target.Department = in.Department
	}
	if in.Designation != nil {
		target.Designation = in.Designation
	}

	if err := s.memberStore.Update(ctx, target); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrMemberNotFound
		}
		return nil, fmt.Errorf("updating member: %w", err)
	}
	return target, nil
}

func (s *organizationService) RemoveMember(ctx context.Context, actorID, orgID, targetID int64) error {
	minRole := model.RoleAdmin
	if actorID == targetID {
		minRole = model.RoleEmployee
	}
	actor, err := requireRole(ctx, s.orgStore, s.memberStore, orgID, actorID, minRole)
	if err != nil {
		return err
	}

	target := actor
	if actorID != targetID {
		target, err = s.memberStore.Get(ctx, orgID, targetID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return ErrMemberNotFound
			}
			return fmt.Errorf("loading member: %w", err)
		}
		if target.Role == model.RoleAdmin && actor.Role != model.RoleOwner {
			return ErrForbidden
		}
	}

	if target.Role == model.RoleOwner {
		return ErrOwnerImmutable
	}

	if err := s.memberStore.Remove(ctx, orgID, targetID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrMemberNotFound
		}
		return fmt.Errorf("removing member: %w", err)
	}

	s.events.publish(ctx, queue.Event{
		Type:           queue.EventMemberRemoved,
		OrganizationID: orgID,
		ActorID:        actorID,
		SubjectID:      targetID,
	})
	return nil
}

func (s *organizationService) orgError(err error) error {
	if errors.Is(err, store.ErrNotFound) {
		return ErrOrganizationNotFound
	}
	return err
}

// checkGrant enforces who may hand out which role: nobody grants owner,
// and only the owner grants admin.
func checkGrant(actor, role model.Role) error {
	if !role.Valid() || role == model.RoleOwner {
		return ErrInvalidRole
	}
	if role == model.RoleAdmin && actor != model.RoleOwner {
		return ErrForbidden
	}
	return nil
}

const slugAttempts = 3

func ensureSlug(ctx context.Context, orgStore store.OrganizationStore, name string, slug *string) (string, error) {
	input := name
	if slug != nil && *slug != "" {
		input = *slug
	}

	base, err := common.Slugify(input, "org")
	if err != nil {
		return "", fmt.Errorf("generating slug: %w", err)
	}

	// Fast path
	if _, err := orgStore.GetBySlug(ctx, base); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return base, nil
		}
		return "", fmt.Errorf("checking slug availability: %w", err)
	}

	// Add numeric suffix until available
	for i := 1; i <= 20; i++ {
		candidate := fmt.Sprintf("%s-%d", base, i)
		_, err := orgStore.GetBySlug(ctx, candidate)
		if errors.Is(err, store.ErrNotFound) {
			return candidate, nil
		}
		if err != nil {
			return "", fmt.Errorf("checking slug availability: %w", err)
		}
	}

	return "", fmt.Errorf("unable to find available slug for %q", base)
}
