package service

import (
	"context"
	"fmt"

	"peoplehub.app/api/internal/model"
	"peoplehub.app/api/internal/store"
)

const (
	DefaultActivityLimit = 50
	MaxActivityLimit     = 200
)

type ActivityService interface {
	List(ctx context.Context, actorID, orgID int64, before *int64, limit int) ([]model.Activity, error)
}

type activityService struct {
	orgStore      store.OrganizationStore
	memberStore   store.MemberStore
	activityStore store.ActivityStore
}

func NewActivityService(orgStore store.OrganizationStore, memberStore store.MemberStore, activityStore store.ActivityStore) ActivityService {
	return &activityService{
		orgStore:      orgStore,
		memberStore:   memberStore,
		activityStore: activityStore,
	}
}

// List returns the newest entries first; before pages by activity id.
func (s *activityService) List(ctx context.Context, actorID, orgID int64, before *int64, limit int) ([]model.Activity, error) {
	if _, err := requireRole(ctx, s.orgStore, s.memberStore, orgID, actorID, model.RoleAdmin); err != nil {
		return nil, err
	}

	if limit <= 0 {
		limit = DefaultActivityLimit
	}
	if limit > MaxActivityLimit {
		limit = MaxActivityLimit
	}

	items, err := s.activityStore.ListByOrganization(ctx, orgID, before, int32(limit))
	if err != nil {
		return nil, fmt.Errorf("listing activity: %w", err)
	}
	return items, nil
}
