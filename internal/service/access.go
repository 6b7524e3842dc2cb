package service

import (
	"context"
	"errors"
	"fmt"

	"peoplehub.app/api/internal/model"
	"peoplehub.app/api/internal/store"
)

// requireRole loads userID's membership in orgID and checks it grants minRole.
// Non-members and deleted organizations both yield ErrOrganizationNotFound so
// callers cannot discover organizations they do not belong to.
func requireRole(ctx context.Context, orgs store.OrganizationStore, members store.MemberStore, orgID, userID int64, minRole model.Role) (*model.Member, error) {
	if _, err := orgs.GetByID(ctx, orgID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrOrganizationNotFound
		}
		return nil, fmt.Errorf("loading organization: %w", err)
	}

	member, err := members.Get(ctx, orgID, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrOrganizationNotFound
		}
		return nil, fmt.Errorf("loading membership: %w", err)
	}

	if !member.Role.AtLeast(minRole) {
		return nil, ErrForbidden
	}
	return member, nil
}
