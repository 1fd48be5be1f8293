package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"connectrpc.com/connect"
	"github.com/splitstuff/splitstuff/internal/api"
	"github.com/splitstuff/splitstuff/internal/middleware"
	"github.com/splitstuff/splitstuff/internal/models"
	"github.com/splitstuff/splitstuff/internal/storage"
)

var _ api.GroupServiceHandler = (*GroupService)(nil)

// GroupService implements the Connect GroupService.
type GroupService struct {
	store storage.Store
}

// NewGroupService creates a new GroupService with the given storage backend.
func NewGroupService(store storage.Store) *GroupService {
	return &GroupService{store: store}
}

// CreateGroup creates a new group with the caller as its first member.
func (s *GroupService) CreateGroup(ctx context.Context, req *connect.Request[api.CreateGroupRequest]) (*connect.Response[api.CreateGroupResponse], error) {
	session, ok := middleware.SessionFrom(ctx)
	if !ok {
		return nil, connect.NewError(connect.CodeUnauthenticated, errNoSession)
	}

	slog.Info("CreateGroup request received",
		"name", req.Msg.Name,
		"members_count", len(req.Msg.Members),
		"profile_id", session.ProfileID,
	)

	name := strings.TrimSpace(req.Msg.Name)
	if name == "" {
		return nil, invalidArgument("group name is required")
	}

	creator, err := s.creatorMember(ctx, session.ProfileID, session.Email, req.Msg.CreatorName)
	if err != nil {
		return nil, err
	}

	group := &models.Group{
		Name:      name,
		CreatedBy: session.ProfileID,
		Members:   []models.Member{creator},
	}
	for _, m := range req.Msg.Members {
		displayName := strings.TrimSpace(m.DisplayName)
		if displayName == "" {
			return nil, invalidArgument("member display_name is required")
		}
		group.Members = append(group.Members, models.Member{
			DisplayName: displayName,
			UPIID:       strings.TrimSpace(m.UPIID),
		})
	}

	// Save to storage (generates IDs and CreatedAt)
	if err := s.store.CreateGroup(ctx, group); err != nil {
		slog.Error("CreateGroup failed", "error", err)
		return nil, storeError(err)
	}

	// Reload so display names reflect stored profiles.
	saved, err := s.store.GetGroup(ctx, group.ID)
	if err != nil {
		slog.Error("Failed to fetch created group", "group_id", group.ID, "error", err)
		return nil, storeError(err)
	}

	slog.Info("Group created", "group_id", saved.ID, "members", len(saved.Members))

	return connect.NewResponse(&api.CreateGroupResponse{Group: toAPIGroup(saved)}), nil
}

// creatorMember returns the caller's membership, creating their profile on
// first use. An existing profile keeps its display name.
func (s *GroupService) creatorMember(ctx context.Context, profileID, email, name string) (models.Member, error) {
	_, err := s.store.GetProfile(ctx, profileID)
	if err == nil {
		return models.Member{ProfileID: profileID}, nil
	}
	if !errors.Is(err, storage.ErrNotFound) {
		return models.Member{}, storeError(err)
	}

	name = strings.TrimSpace(name)
	if name == "" {
		name, _, _ = strings.Cut(email, "@")
	}
	if name == "" {
		return models.Member{}, invalidArgument("creator_name is required for a new profile")
	}
	return models.Member{ProfileID: profileID, DisplayName: name}, nil
}

// GetGroup retrieves a group by ID.
func (s *GroupService) GetGroup(ctx context.Context, req *connect.Request[api.GetGroupRequest]) (*connect.Response[api.GetGroupResponse], error) {
	slog.Info("GetGroup request received", "group_id", req.Msg.GroupID)

	group, _, err := memberGroup(ctx, s.store, req.Msg.GroupID)
	if err != nil {
		return nil, err
	}

	slog.Info("GetGroup successful", "group_id", group.ID, "name", group.Name)

	return connect.NewResponse(&api.GetGroupResponse{Group: toAPIGroup(group)}), nil
}

// ListGroups retrieves the caller's groups.
func (s *GroupService) ListGroups(ctx context.Context, req *connect.Request[api.ListGroupsRequest]) (*connect.Response[api.ListGroupsResponse], error) {
	caller, err := callerID(ctx)
	if err != nil {
		return nil, err
	}

	groups, err := s.store.ListGroupsForProfile(ctx, caller)
	if err != nil {
		slog.Error("ListGroups failed", "error", err)
		return nil, storeError(err)
	}

	out := make([]*api.Group, len(groups))
	for i, g := range groups {
		out[i] = toAPIGroup(g)
	}

	slog.Info("ListGroups successful", "count", len(groups))

	return connect.NewResponse(&api.ListGroupsResponse{Groups: out}), nil
}

// AddMember adds an existing profile or a new named member to a group.
func (s *GroupService) AddMember(ctx context.Context, req *connect.Request[api.AddMemberRequest]) (*connect.Response[api.AddMemberResponse], error) {
	slog.Info("AddMember request received",
		"group_id", req.Msg.GroupID,
		"profile_id", req.Msg.ProfileID,
		"display_name", req.Msg.DisplayName,
	)

	group, _, err := memberGroup(ctx, s.store, req.Msg.GroupID)
	if err != nil {
		return nil, err
	}

	member := &models.Member{}
	switch {
	case req.Msg.ProfileID != "":
		if _, err := s.store.GetProfile(ctx, req.Msg.ProfileID); err != nil {
			return nil, storeError(err)
		}
		member.ProfileID = req.Msg.ProfileID
	case strings.TrimSpace(req.Msg.DisplayName) != "":
		member.DisplayName = strings.TrimSpace(req.Msg.DisplayName)
		member.UPIID = strings.TrimSpace(req.Msg.UPIID)
	default:
		return nil, invalidArgument("profile_id or display_name is required")
	}

	if err := s.store.AddGroupMember(ctx, group.ID, member); err != nil {
		slog.Error("AddMember failed", "group_id", group.ID, "error", err)
		return nil, storeError(err)
	}

	updated, err := s.store.GetGroup(ctx, group.ID)
	if err != nil {
		return nil, storeError(err)
	}
	added, ok := updated.Member(member.ProfileID)
	if !ok {
		return nil, connect.NewError(connect.CodeInternal, errors.New("member missing after insert"))
	}

	slog.Info("Member added", "group_id", group.ID, "profile_id", added.ProfileID)

	out := toAPIMember(added)
	return connect.NewResponse(&api.AddMemberResponse{Member: &out}), nil
}
