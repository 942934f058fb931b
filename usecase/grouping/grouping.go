package grouping

import (
	"context"

	"go.uber.org/zap"

	"github.com/groupfit/backend/domain"
	"github.com/groupfit/backend/repository"
)

// UseCase owns the group-creation flow. The session cache only reads
// groupings; creating one and enrolling members happens here, and callers
// then ask the cache to refresh its grouping list.
type UseCase struct {
	groupings repository.GroupingRepository
	members   repository.MemberRepository
	logger    *zap.Logger
}

func New(groupings repository.GroupingRepository, members repository.MemberRepository, logger *zap.Logger) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{
		groupings: groupings,
		members:   members,
		logger:    logger,
	}
}

// CreateGroup creates a grouping and enrolls the creator plus the selected
// friends. Grouping and membership writes are separate store calls with no
// rollback: a failed enrollment leaves the grouping in place and is
// surfaced to the caller.
func (uc *UseCase) CreateGroup(ctx context.Context, userID, name, color string, friendIDs []string) (*domain.Grouping, error) {
	if userID == "" {
		return nil, domain.ErrNotAuthenticated
	}
	if name == "" {
		return nil, domain.NewError(domain.ErrCodeInvalid, "group name must not be empty")
	}
	if name == domain.PersonalGroupingName {
		return nil, domain.NewError(domain.ErrCodeInvalid, "group name is reserved")
	}

	created, err := uc.groupings.Create(ctx, &domain.Grouping{
		Name:         name,
		DefaultColor: color,
		CreatedBy:    userID,
	})
	if err != nil {
		return nil, domain.GatewayError("create grouping", err)
	}

	if err := uc.members.Add(ctx, &domain.Membership{
		UserID:     userID,
		GroupingID: created.ID,
		Role:       domain.RoleAdmin,
	}); err != nil {
		return nil, domain.GatewayError("enroll creator", err)
	}

	for _, friendID := range friendIDs {
		if friendID == userID {
			continue
		}
		if err := uc.members.Add(ctx, &domain.Membership{
			UserID:     friendID,
			GroupingID: created.ID,
			Role:       domain.RoleMember,
		}); err != nil {
			return nil, domain.GatewayError("enroll member", err)
		}
	}

	uc.logger.Info("group created",
		zap.String("grouping_id", created.ID),
		zap.Int("members", len(friendIDs)+1))
	return created, nil
}

// Rename changes a grouping's display name.
func (uc *UseCase) Rename(ctx context.Context, userID, groupingID, name string) error {
	if userID == "" {
		return domain.ErrNotAuthenticated
	}
	if name == "" || name == domain.PersonalGroupingName {
		return domain.NewError(domain.ErrCodeInvalid, "invalid group name")
	}
	if err := uc.groupings.Rename(ctx, groupingID, name); err != nil {
		return domain.GatewayError("rename grouping", err)
	}
	return nil
}

// AddMembers enrolls additional users into an existing grouping.
func (uc *UseCase) AddMembers(ctx context.Context, userID, groupingID string, memberIDs []string) error {
	if userID == "" {
		return domain.ErrNotAuthenticated
	}
	for _, id := range memberIDs {
		if err := uc.members.Add(ctx, &domain.Membership{
			UserID:     id,
			GroupingID: groupingID,
			Role:       domain.RoleMember,
		}); err != nil {
			return domain.GatewayError("enroll member", err)
		}
	}
	return nil
}
