package grouping

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/groupfit/backend/domain"
)

type fakeGroupingRepo struct {
	created   []domain.Grouping
	createErr error
	renamed   map[string]string
	renameErr error
}

func (f *fakeGroupingRepo) ListByIDs(ctx context.Context, ids []string) ([]domain.Grouping, error) {
	return nil, nil
}

func (f *fakeGroupingRepo) Create(ctx context.Context, grouping *domain.Grouping) (*domain.Grouping, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	created := *grouping
	created.ID = "g-new"
	f.created = append(f.created, created)
	return &created, nil
}

func (f *fakeGroupingRepo) Rename(ctx context.Context, id, name string) error {
	if f.renameErr != nil {
		return f.renameErr
	}
	if f.renamed == nil {
		f.renamed = map[string]string{}
	}
	f.renamed[id] = name
	return nil
}

type fakeMemberRepo struct {
	added  []domain.Membership
	addErr error
}

func (f *fakeMemberRepo) GroupingIDs(ctx context.Context, userID string) ([]string, error) {
	return nil, nil
}

func (f *fakeMemberRepo) ListByGrouping(ctx context.Context, groupingID string) ([]domain.Membership, error) {
	return nil, nil
}

func (f *fakeMemberRepo) Add(ctx context.Context, membership *domain.Membership) error {
	if f.addErr != nil {
		return f.addErr
	}
	f.added = append(f.added, *membership)
	return nil
}

func TestCreateGroupEnrollsCreatorAsAdmin(t *testing.T) {
	groupings := &fakeGroupingRepo{}
	members := &fakeMemberRepo{}
	uc := New(groupings, members, nil)

	created, err := uc.CreateGroup(context.Background(), "user-1", "Climbing crew", "#222", []string{"user-2", "user-3"})
	require.NoError(t, err)
	assert.Equal(t, "g-new", created.ID)
	assert.Equal(t, "user-1", created.CreatedBy)

	require.Len(t, members.added, 3)
	assert.Equal(t, domain.RoleAdmin, members.added[0].Role)
	assert.Equal(t, "user-1", members.added[0].UserID)
	assert.Equal(t, domain.RoleMember, members.added[1].Role)
	assert.Equal(t, domain.RoleMember, members.added[2].Role)
}

func TestCreateGroupSkipsCreatorInFriendList(t *testing.T) {
	groupings := &fakeGroupingRepo{}
	members := &fakeMemberRepo{}
	uc := New(groupings, members, nil)

	_, err := uc.CreateGroup(context.Background(), "user-1", "Crew", "", []string{"user-1", "user-2"})
	require.NoError(t, err)
	require.Len(t, members.added, 2, "creator must not be enrolled twice")
}

func TestCreateGroupValidation(t *testing.T) {
	tests := []struct {
		name      string
		userID    string
		groupName string
		wantErr   error
	}{
		{name: "unauthenticated", userID: "", groupName: "Crew", wantErr: domain.ErrNotAuthenticated},
		{name: "empty name", userID: "user-1", groupName: ""},
		{name: "reserved name", userID: "user-1", groupName: domain.PersonalGroupingName},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			groupings := &fakeGroupingRepo{}
			uc := New(groupings, &fakeMemberRepo{}, nil)

			_, err := uc.CreateGroup(context.Background(), tt.userID, tt.groupName, "", nil)
			require.Error(t, err)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.True(t, domain.IsDomainError(err, domain.ErrCodeInvalid))
			}
			assert.Empty(t, groupings.created, "invalid requests must not reach the store")
		})
	}
}

func TestCreateGroupEnrollmentFailureIsSurfaced(t *testing.T) {
	groupings := &fakeGroupingRepo{}
	members := &fakeMemberRepo{addErr: errors.New("connection refused")}
	uc := New(groupings, members, nil)

	_, err := uc.CreateGroup(context.Background(), "user-1", "Crew", "", nil)
	require.Error(t, err)
	assert.True(t, domain.IsDomainError(err, domain.ErrCodeGateway))
	assert.Len(t, groupings.created, 1, "the grouping write is not rolled back")
}

func TestRename(t *testing.T) {
	groupings := &fakeGroupingRepo{}
	uc := New(groupings, &fakeMemberRepo{}, nil)

	require.NoError(t, uc.Rename(context.Background(), "user-1", "g1", "New name"))
	assert.Equal(t, "New name", groupings.renamed["g1"])

	assert.Error(t, uc.Rename(context.Background(), "user-1", "g1", ""))
	assert.Error(t, uc.Rename(context.Background(), "user-1", "g1", domain.PersonalGroupingName))
}

func TestAddMembers(t *testing.T) {
	members := &fakeMemberRepo{}
	uc := New(&fakeGroupingRepo{}, members, nil)

	require.NoError(t, uc.AddMembers(context.Background(), "user-1", "g1", []string{"user-2", "user-3"}))
	require.Len(t, members.added, 2)
	for _, m := range members.added {
		assert.Equal(t, "g1", m.GroupingID)
		assert.Equal(t, domain.RoleMember, m.Role)
	}
}
