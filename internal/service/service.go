// Package service implements the SplitStuff Connect services on top of a
// storage.Store. Every group-scoped call requires the caller to be a member
// of the group.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"

	"connectrpc.com/connect"
	"github.com/splitstuff/splitstuff/internal/api"
	"github.com/splitstuff/splitstuff/internal/middleware"
	"github.com/splitstuff/splitstuff/internal/models"
	"github.com/splitstuff/splitstuff/internal/storage"
)

var (
	errNotMember = errors.New("caller is not a member of this group")
	errNoSession = errors.New("no session on request")
)

// callerID returns the authenticated profile ID or an Unauthenticated error.
func callerID(ctx context.Context) (string, error) {
	session, ok := middleware.SessionFrom(ctx)
	if !ok {
		return "", connect.NewError(connect.CodeUnauthenticated, errNoSession)
	}
	return session.ProfileID, nil
}

// storeError maps a storage error onto a Connect error code.
func storeError(err error) error {
	if errors.Is(err, storage.ErrNotFound) {
		return connect.NewError(connect.CodeNotFound, err)
	}
	return connect.NewError(connect.CodeInternal, err)
}

func invalidArgument(format string, args ...any) error {
	return connect.NewError(connect.CodeInvalidArgument, fmt.Errorf(format, args...))
}

// memberGroup loads a group and checks that the caller belongs to it.
func memberGroup(ctx context.Context, store storage.Store, groupID string) (*models.Group, string, error) {
	caller, err := callerID(ctx)
	if err != nil {
		return nil, "", err
	}
	if groupID == "" {
		return nil, "", invalidArgument("group_id is required")
	}

	group, err := store.GetGroup(ctx, groupID)
	if err != nil {
		return nil, "", storeError(err)
	}
	if !group.HasMember(caller) {
		slog.Warn("Access denied", "group_id", groupID, "profile_id", caller)
		return nil, "", connect.NewError(connect.CodePermissionDenied, errNotMember)
	}
	return group, caller, nil
}

// recordGroup checks that the caller belongs to the group owning a record.
// Outsiders get the same NotFound as for an unknown ID.
func recordGroup(ctx context.Context, store storage.Store, groupID, kind, id string) error {
	_, _, err := memberGroup(ctx, store, groupID)
	if connect.CodeOf(err) == connect.CodePermissionDenied {
		return connect.NewError(connect.CodeNotFound, fmt.Errorf("%s %s: %w", kind, id, storage.ErrNotFound))
	}
	return err
}

// round2 rounds to minor units for responses.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func toAPIMember(m models.Member) api.Member {
	return api.Member{
		ProfileID:   m.ProfileID,
		DisplayName: m.DisplayName,
		UPIID:       m.UPIID,
	}
}

func toAPIGroup(g *models.Group) *api.Group {
	members := make([]api.Member, len(g.Members))
	for i, m := range g.Members {
		members[i] = toAPIMember(m)
	}
	return &api.Group{
		ID:        g.ID,
		Name:      g.Name,
		Members:   members,
		CreatedAt: g.CreatedAt,
	}
}

func toAPIExpense(e *models.Expense) *api.Expense {
	splits := make([]api.Split, len(e.Splits))
	for i, s := range e.Splits {
		splits[i] = api.Split{MemberID: s.MemberID, Share: s.Share}
	}
	return &api.Expense{
		ID:          e.ID,
		GroupID:     e.GroupID,
		Description: e.Description,
		Amount:      e.Amount,
		PaidBy:      e.PaidBy,
		Date:        e.Date.Format(dateLayout),
		Notes:       e.Notes,
		Splits:      splits,
		CreatedAt:   e.CreatedAt,
	}
}

func toAPISettlement(s *models.Settlement) *api.Settlement {
	return &api.Settlement{
		ID:           s.ID,
		GroupID:      s.GroupID,
		FromMemberID: s.FromMemberID,
		ToMemberID:   s.ToMemberID,
		Amount:       s.Amount,
		Status:       string(s.Status),
		Note:         s.Note,
		CreatedAt:    s.CreatedAt,
	}
}
