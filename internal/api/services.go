package api

import (
	"context"
	"net/http"

	"connectrpc.com/connect"
)

// Service names.
const (
	GroupServiceName      = "splitstuff.v1.GroupService"
	ExpenseServiceName    = "splitstuff.v1.ExpenseService"
	SettlementServiceName = "splitstuff.v1.SettlementService"
	LedgerServiceName     = "splitstuff.v1.LedgerService"
)

// Procedure paths.
const (
	GroupServiceCreateGroupProcedure = "/" + GroupServiceName + "/CreateGroup"
	GroupServiceGetGroupProcedure    = "/" + GroupServiceName + "/GetGroup"
	GroupServiceListGroupsProcedure  = "/" + GroupServiceName + "/ListGroups"
	GroupServiceAddMemberProcedure   = "/" + GroupServiceName + "/AddMember"

	ExpenseServiceCreateExpenseProcedure = "/" + ExpenseServiceName + "/CreateExpense"
	ExpenseServiceListExpensesProcedure  = "/" + ExpenseServiceName + "/ListExpenses"
	ExpenseServiceDeleteExpenseProcedure = "/" + ExpenseServiceName + "/DeleteExpense"

	SettlementServiceRecordSettlementProcedure = "/" + SettlementServiceName + "/RecordSettlement"
	SettlementServiceMarkSettledProcedure      = "/" + SettlementServiceName + "/MarkSettled"
	SettlementServiceListSettlementsProcedure  = "/" + SettlementServiceName + "/ListSettlements"
	SettlementServiceDeleteSettlementProcedure = "/" + SettlementServiceName + "/DeleteSettlement"

	LedgerServiceGetGroupBalancesProcedure = "/" + LedgerServiceName + "/GetGroupBalances"
	LedgerServiceGetMyTransfersProcedure   = "/" + LedgerServiceName + "/GetMyTransfers"
)

// GroupServiceHandler is implemented by the group service.
type GroupServiceHandler interface {
	CreateGroup(context.Context, *connect.Request[CreateGroupRequest]) (*connect.Response[CreateGroupResponse], error)
	GetGroup(context.Context, *connect.Request[GetGroupRequest]) (*connect.Response[GetGroupResponse], error)
	ListGroups(context.Context, *connect.Request[ListGroupsRequest]) (*connect.Response[ListGroupsResponse], error)
	AddMember(context.Context, *connect.Request[AddMemberRequest]) (*connect.Response[AddMemberResponse], error)
}

// NewGroupServiceHandler builds an HTTP handler for svc and returns the path to mount it on.
func NewGroupServiceHandler(svc GroupServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	return "/" + GroupServiceName + "/", serviceMux(
		unaryRoute(GroupServiceCreateGroupProcedure, svc.CreateGroup, opts),
		unaryRoute(GroupServiceGetGroupProcedure, svc.GetGroup, opts),
		unaryRoute(GroupServiceListGroupsProcedure, svc.ListGroups, opts),
		unaryRoute(GroupServiceAddMemberProcedure, svc.AddMember, opts),
	)
}

// GroupServiceClient calls GroupService over HTTP.
type GroupServiceClient struct {
	createGroup *connect.Client[CreateGroupRequest, CreateGroupResponse]
	getGroup    *connect.Client[GetGroupRequest, GetGroupResponse]
	listGroups  *connect.Client[ListGroupsRequest, ListGroupsResponse]
	addMember   *connect.Client[AddMemberRequest, AddMemberResponse]
}

// NewGroupServiceClient creates a client for the service hosted at baseURL.
func NewGroupServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) *GroupServiceClient {
	return &GroupServiceClient{
		createGroup: unaryClient[CreateGroupRequest, CreateGroupResponse](httpClient, baseURL, GroupServiceCreateGroupProcedure, opts),
		getGroup:    unaryClient[GetGroupRequest, GetGroupResponse](httpClient, baseURL, GroupServiceGetGroupProcedure, opts),
		listGroups:  unaryClient[ListGroupsRequest, ListGroupsResponse](httpClient, baseURL, GroupServiceListGroupsProcedure, opts),
		addMember:   unaryClient[AddMemberRequest, AddMemberResponse](httpClient, baseURL, GroupServiceAddMemberProcedure, opts),
	}
}

func (c *GroupServiceClient) CreateGroup(ctx context.Context, req *connect.Request[CreateGroupRequest]) (*connect.Response[CreateGroupResponse], error) {
	return c.createGroup.CallUnary(ctx, req)
}

func (c *GroupServiceClient) GetGroup(ctx context.Context, req *connect.Request[GetGroupRequest]) (*connect.Response[GetGroupResponse], error) {
	return c.getGroup.CallUnary(ctx, req)
}

func (c *GroupServiceClient) ListGroups(ctx context.Context, req *connect.Request[ListGroupsRequest]) (*connect.Response[ListGroupsResponse], error) {
	return c.listGroups.CallUnary(ctx, req)
}

func (c *GroupServiceClient) AddMember(ctx context.Context, req *connect.Request[AddMemberRequest]) (*connect.Response[AddMemberResponse], error) {
	return c.addMember.CallUnary(ctx, req)
}

// ExpenseServiceHandler is implemented by the expense service.
type ExpenseServiceHandler interface {
	CreateExpense(context.Context, *connect.Request[CreateExpenseRequest]) (*connect.Response[CreateExpenseResponse], error)
	ListExpenses(context.Context, *connect.Request[ListExpensesRequest]) (*connect.Response[ListExpensesResponse], error)
	DeleteExpense(context.Context, *connect.Request[DeleteExpenseRequest]) (*connect.Response[DeleteExpenseResponse], error)
}

// NewExpenseServiceHandler builds an HTTP handler for svc and returns the path to mount it on.
func NewExpenseServiceHandler(svc ExpenseServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	return "/" + ExpenseServiceName + "/", serviceMux(
		unaryRoute(ExpenseServiceCreateExpenseProcedure, svc.CreateExpense, opts),
		unaryRoute(ExpenseServiceListExpensesProcedure, svc.ListExpenses, opts),
		unaryRoute(ExpenseServiceDeleteExpenseProcedure, svc.DeleteExpense, opts),
	)
}

// ExpenseServiceClient calls ExpenseService over HTTP.
type ExpenseServiceClient struct {
	createExpense *connect.Client[CreateExpenseRequest, CreateExpenseResponse]
	listExpenses  *connect.Client[ListExpensesRequest, ListExpensesResponse]
	deleteExpense *connect.Client[DeleteExpenseRequest, DeleteExpenseResponse]
}

// NewExpenseServiceClient creates a client for the service hosted at baseURL.
func NewExpenseServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) *ExpenseServiceClient {
	return &ExpenseServiceClient{
		createExpense: unaryClient[CreateExpenseRequest, CreateExpenseResponse](httpClient, baseURL, ExpenseServiceCreateExpenseProcedure, opts),
		listExpenses:  unaryClient[ListExpensesRequest, ListExpensesResponse](httpClient, baseURL, ExpenseServiceListExpensesProcedure, opts),
		deleteExpense: unaryClient[DeleteExpenseRequest, DeleteExpenseResponse](httpClient, baseURL, ExpenseServiceDeleteExpenseProcedure, opts),
	}
}

func (c *ExpenseServiceClient) CreateExpense(ctx context.Context, req *connect.Request[CreateExpenseRequest]) (*connect.Response[CreateExpenseResponse], error) {
	return c.createExpense.CallUnary(ctx, req)
}

func (c *ExpenseServiceClient) ListExpenses(ctx context.Context, req *connect.Request[ListExpensesRequest]) (*connect.Response[ListExpensesResponse], error) {
	return c.listExpenses.CallUnary(ctx, req)
}

func (c *ExpenseServiceClient) DeleteExpense(ctx context.Context, req *connect.Request[DeleteExpenseRequest]) (*connect.Response[DeleteExpenseResponse], error) {
	return c.deleteExpense.CallUnary(ctx, req)
}

// SettlementServiceHandler is implemented by the settlement service.
type SettlementServiceHandler interface {
	RecordSettlement(context.Context, *connect.Request[RecordSettlementRequest]) (*connect.Response[RecordSettlementResponse], error)
	MarkSettled(context.Context, *connect.Request[MarkSettledRequest]) (*connect.Response[MarkSettledResponse], error)
	ListSettlements(context.Context, *connect.Request[ListSettlementsRequest]) (*connect.Response[ListSettlementsResponse], error)
	DeleteSettlement(context.Context, *connect.Request[DeleteSettlementRequest]) (*connect.Response[DeleteSettlementResponse], error)
}

// NewSettlementServiceHandler builds an HTTP handler for svc and returns the path to mount it on.
func NewSettlementServiceHandler(svc SettlementServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	return "/" + SettlementServiceName + "/", serviceMux(
		unaryRoute(SettlementServiceRecordSettlementProcedure, svc.RecordSettlement, opts),
		unaryRoute(SettlementServiceMarkSettledProcedure, svc.MarkSettled, opts),
		unaryRoute(SettlementServiceListSettlementsProcedure, svc.ListSettlements, opts),
		unaryRoute(SettlementServiceDeleteSettlementProcedure, svc.DeleteSettlement, opts),
	)
}

// SettlementServiceClient calls SettlementService over HTTP.
type SettlementServiceClient struct {
	recordSettlement *connect.Client[RecordSettlementRequest, RecordSettlementResponse]
	markSettled      *connect.Client[MarkSettledRequest, MarkSettledResponse]
	listSettlements  *connect.Client[ListSettlementsRequest, ListSettlementsResponse]
	deleteSettlement *connect.Client[DeleteSettlementRequest, DeleteSettlementResponse]
}

// NewSettlementServiceClient creates a client for the service hosted at baseURL.
func NewSettlementServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) *SettlementServiceClient {
	return &SettlementServiceClient{
		recordSettlement: unaryClient[RecordSettlementRequest, RecordSettlementResponse](httpClient, baseURL, SettlementServiceRecordSettlementProcedure, opts),
		markSettled:      unaryClient[MarkSettledRequest, MarkSettledResponse](httpClient, baseURL, SettlementServiceMarkSettledProcedure, opts),
		listSettlements:  unaryClient[ListSettlementsRequest, ListSettlementsResponse](httpClient, baseURL, SettlementServiceListSettlementsProcedure, opts),
		deleteSettlement: unaryClient[DeleteSettlementRequest, DeleteSettlementResponse](httpClient, baseURL, SettlementServiceDeleteSettlementProcedure, opts),
	}
}

func (c *SettlementServiceClient) RecordSettlement(ctx context.Context, req *connect.Request[RecordSettlementRequest]) (*connect.Response[RecordSettlementResponse], error) {
	return c.recordSettlement.CallUnary(ctx, req)
}

func (c *SettlementServiceClient) MarkSettled(ctx context.Context, req *connect.Request[MarkSettledRequest]) (*connect.Response[MarkSettledResponse], error) {
	return c.markSettled.CallUnary(ctx, req)
}

func (c *SettlementServiceClient) ListSettlements(ctx context.Context, req *connect.Request[ListSettlementsRequest]) (*connect.Response[ListSettlementsResponse], error) {
	return c.listSettlements.CallUnary(ctx, req)
}

func (c *SettlementServiceClient) DeleteSettlement(ctx context.Context, req *connect.Request[DeleteSettlementRequest]) (*connect.Response[DeleteSettlementResponse], error) {
	return c.deleteSettlement.CallUnary(ctx, req)
}

// LedgerServiceHandler is implemented by the ledger service.
type LedgerServiceHandler interface {
	GetGroupBalances(context.Context, *connect.Request[GetGroupBalancesRequest]) (*connect.Response[GetGroupBalancesResponse], error)
	GetMyTransfers(context.Context, *connect.Request[GetMyTransfersRequest]) (*connect.Response[GetMyTransfersResponse], error)
}

// NewLedgerServiceHandler builds an HTTP handler for svc and returns the path to mount it on.
func NewLedgerServiceHandler(svc LedgerServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	return "/" + LedgerServiceName + "/", serviceMux(
		unaryRoute(LedgerServiceGetGroupBalancesProcedure, svc.GetGroupBalances, opts),
		unaryRoute(LedgerServiceGetMyTransfersProcedure, svc.GetMyTransfers, opts),
	)
}

// LedgerServiceClient calls LedgerService over HTTP.
type LedgerServiceClient struct {
	getGroupBalances *connect.Client[GetGroupBalancesRequest, GetGroupBalancesResponse]
	getMyTransfers   *connect.Client[GetMyTransfersRequest, GetMyTransfersResponse]
}

// NewLedgerServiceClient creates a client for the service hosted at baseURL.
func NewLedgerServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) *LedgerServiceClient {
	return &LedgerServiceClient{
		getGroupBalances: unaryClient[GetGroupBalancesRequest, GetGroupBalancesResponse](httpClient, baseURL, LedgerServiceGetGroupBalancesProcedure, opts),
		getMyTransfers:   unaryClient[GetMyTransfersRequest, GetMyTransfersResponse](httpClient, baseURL, LedgerServiceGetMyTransfersProcedure, opts),
	}
}

func (c *LedgerServiceClient) GetGroupBalances(ctx context.Context, req *connect.Request[GetGroupBalancesRequest]) (*connect.Response[GetGroupBalancesResponse], error) {
	return c.getGroupBalances.CallUnary(ctx, req)
}

func (c *LedgerServiceClient) GetMyTransfers(ctx context.Context, req *connect.Request[GetMyTransfersRequest]) (*connect.Response[GetMyTransfersResponse], error) {
	return c.getMyTransfers.CallUnary(ctx, req)
}
