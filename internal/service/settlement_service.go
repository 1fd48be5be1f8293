package service

import (
	"context"
	"log/slog"
	"math"
	"strings"

	"connectrpc.com/connect"
	"github.com/splitstuff/splitstuff/internal/api"
	"github.com/splitstuff/splitstuff/internal/models"
	"github.com/splitstuff/splitstuff/internal/storage"
)

var _ api.SettlementServiceHandler = (*SettlementService)(nil)

// SettlementService implements the Connect SettlementService.
type SettlementService struct {
	store storage.Store
}

// NewSettlementService creates a new SettlementService with the given storage backend.
func NewSettlementService(store storage.Store) *SettlementService {
	return &SettlementService{store: store}
}

// RecordSettlement records a repayment between two members. It stays
// pending, and out of balances, until marked settled.
func (s *SettlementService) RecordSettlement(ctx context.Context, req *connect.Request[api.RecordSettlementRequest]) (*connect.Response[api.RecordSettlementResponse], error) {
	msg := req.Msg
	slog.Info("RecordSettlement request received",
		"group_id", msg.GroupID,
		"from", msg.FromMemberID,
		"to", msg.ToMemberID,
		"amount", msg.Amount,
	)

	group, caller, err := memberGroup(ctx, s.store, msg.GroupID)
	if err != nil {
		return nil, err
	}

	from := msg.FromMemberID
	if from == "" {
		from = caller
	}
	switch {
	case !group.HasMember(from):
		return nil, invalidArgument("from_member_id %q is not a member of the group", from)
	case !group.HasMember(msg.ToMemberID):
		return nil, invalidArgument("to_member_id %q is not a member of the group", msg.ToMemberID)
	case from == msg.ToMemberID:
		return nil, invalidArgument("cannot settle with yourself")
	case !(msg.Amount > 0) || math.IsInf(msg.Amount, 0):
		return nil, invalidArgument("amount must be positive")
	}

	status := models.SettlementPending
	if msg.Status != "" {
		status = models.SettlementStatus(msg.Status)
		if !status.Valid() {
			return nil, invalidArgument("unknown status %q", msg.Status)
		}
	}

	settlement := &models.Settlement{
		GroupID:      group.ID,
		FromMemberID: from,
		ToMemberID:   msg.ToMemberID,
		Amount:       msg.Amount,
		Status:       status,
		CreatedBy:    caller,
		Note:         strings.TrimSpace(msg.Note),
	}
	if err := s.store.CreateSettlement(ctx, settlement); err != nil {
		slog.Error("RecordSettlement failed", "group_id", group.ID, "error", err)
		return nil, storeError(err)
	}

	slog.Info("Settlement recorded", "settlement_id", settlement.ID, "status", settlement.Status)

	return connect.NewResponse(&api.RecordSettlementResponse{Settlement: toAPISettlement(settlement)}), nil
}

// MarkSettled confirms a pending settlement.
func (s *SettlementService) MarkSettled(ctx context.Context, req *connect.Request[api.MarkSettledRequest]) (*connect.Response[api.MarkSettledResponse], error) {
	slog.Info("MarkSettled request received", "settlement_id", req.Msg.SettlementID)

	settlement, err := s.loadSettlement(ctx, req.Msg.SettlementID)
	if err != nil {
		return nil, err
	}

	if settlement.Status != models.SettlementSettled {
		if err := s.store.UpdateSettlementStatus(ctx, settlement.ID, models.SettlementSettled); err != nil {
			slog.Error("MarkSettled failed", "settlement_id", settlement.ID, "error", err)
			return nil, storeError(err)
		}
		settlement.Status = models.SettlementSettled
	}

	slog.Info("Settlement marked settled", "settlement_id", settlement.ID)

	return connect.NewResponse(&api.MarkSettledResponse{Settlement: toAPISettlement(settlement)}), nil
}

// ListSettlements retrieves a group's settlements, newest first.
func (s *SettlementService) ListSettlements(ctx context.Context, req *connect.Request[api.ListSettlementsRequest]) (*connect.Response[api.ListSettlementsResponse], error) {
	slog.Info("ListSettlements request received", "group_id", req.Msg.GroupID)

	group, _, err := memberGroup(ctx, s.store, req.Msg.GroupID)
	if err != nil {
		return nil, err
	}

	settlements, err := s.store.ListSettlementsByGroup(ctx, group.ID)
	if err != nil {
		slog.Error("ListSettlements failed", "group_id", group.ID, "error", err)
		return nil, storeError(err)
	}

	out := make([]*api.Settlement, len(settlements))
	for i, st := range settlements {
		out[i] = toAPISettlement(st)
	}

	return connect.NewResponse(&api.ListSettlementsResponse{Settlements: out}), nil
}

// DeleteSettlement removes a settlement.
func (s *SettlementService) DeleteSettlement(ctx context.Context, req *connect.Request[api.DeleteSettlementRequest]) (*connect.Response[api.DeleteSettlementResponse], error) {
	slog.Info("DeleteSettlement request received", "settlement_id", req.Msg.SettlementID)

	settlement, err := s.loadSettlement(ctx, req.Msg.SettlementID)
	if err != nil {
		return nil, err
	}

	if err := s.store.DeleteSettlement(ctx, settlement.ID); err != nil {
		slog.Error("DeleteSettlement failed", "settlement_id", settlement.ID, "error", err)
		return nil, storeError(err)
	}

	slog.Info("Settlement deleted", "settlement_id", settlement.ID)

	return connect.NewResponse(&api.DeleteSettlementResponse{}), nil
}

// loadSettlement fetches a settlement the caller is allowed to touch.
func (s *SettlementService) loadSettlement(ctx context.Context, settlementID string) (*models.Settlement, error) {
	if _, err := callerID(ctx); err != nil {
		return nil, err
	}
	if settlementID == "" {
		return nil, invalidArgument("settlement_id is required")
	}

	settlement, err := s.store.GetSettlement(ctx, settlementID)
	if err != nil {
		return nil, storeError(err)
	}
	if err := recordGroup(ctx, s.store, settlement.GroupID, "settlement", settlement.ID); err != nil {
		return nil, err
	}
	return settlement, nil
}
