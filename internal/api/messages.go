package api

// Member is a group member as seen by clients.
type Member struct {
	ProfileID   string `json:"profile_id"`
	DisplayName string `json:"display_name"`
	UPIID       string `json:"upi_id,omitempty"`
}

// Group is a group and its members.
type Group struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	Members   []Member `json:"members"`
	CreatedAt int64    `json:"created_at"`
}

type NewMember struct {
	DisplayName string `json:"display_name"`
	UPIID       string `json:"upi_id,omitempty"`
}

// CreateGroupRequest creates a group. The caller always becomes the first member.
type CreateGroupRequest struct {
	Name        string      `json:"name"`
	CreatorName string      `json:"creator_name,omitempty"`
	Members     []NewMember `json:"members,omitempty"`
}

type CreateGroupResponse struct {
	Group *Group `json:"group"`
}

type GetGroupRequest struct {
	GroupID string `json:"group_id"`
}

type GetGroupResponse struct {
	Group *Group `json:"group"`
}

type ListGroupsRequest struct{}

type ListGroupsResponse struct {
	Groups []*Group `json:"groups"`
}

// AddMemberRequest adds a member. With ProfileID set, an existing profile
// joins; otherwise a new profile is created from DisplayName.
type AddMemberRequest struct {
	GroupID     string `json:"group_id"`
	ProfileID   string `json:"profile_id,omitempty"`
	DisplayName string `json:"display_name,omitempty"`
	UPIID       string `json:"upi_id,omitempty"`
}

type AddMemberResponse struct {
	Member *Member `json:"member"`
}

// Split types accepted by CreateExpense.
const (
	SplitEqual   = "equal"   // Values ignored; amount divided equally among listed members
	SplitExact   = "exact"   // Values are the shares
	SplitWeights = "weights" // Values are percentages or share counts
)

type SplitInput struct {
	MemberID string  `json:"member_id"`
	Value    float64 `json:"value,omitempty"`
}

// CreateExpenseRequest records an expense. Without splits, the amount is
// divided equally among all group members. PaidBy defaults to the caller.
type CreateExpenseRequest struct {
	GroupID     string       `json:"group_id"`
	Description string       `json:"description"`
	Amount      float64      `json:"amount"`
	PaidBy      string       `json:"paid_by,omitempty"`
	Date        string       `json:"date,omitempty"` // YYYY-MM-DD
	Notes       string       `json:"notes,omitempty"`
	SplitType   string       `json:"split_type,omitempty"`
	Splits      []SplitInput `json:"splits,omitempty"`
}

type Split struct {
	MemberID string  `json:"member_id"`
	Share    float64 `json:"share"`
}

type Expense struct {
	ID          string  `json:"id"`
	GroupID     string  `json:"group_id"`
	Description string  `json:"description"`
	Amount      float64 `json:"amount"`
	PaidBy      string  `json:"paid_by"`
	Date        string  `json:"date"`
	Notes       string  `json:"notes,omitempty"`
	Splits      []Split `json:"splits"`
	CreatedAt   int64   `json:"created_at"`
}

type CreateExpenseResponse struct {
	Expense *Expense `json:"expense"`
}

type ListExpensesRequest struct {
	GroupID string `json:"group_id"`
}

type ListExpensesResponse struct {
	Expenses []*Expense `json:"expenses"`
}

type DeleteExpenseRequest struct {
	ExpenseID string `json:"expense_id"`
}

type DeleteExpenseResponse struct{}

type Settlement struct {
	ID           string  `json:"id"`
	GroupID      string  `json:"group_id"`
	FromMemberID string  `json:"from_member_id"`
	ToMemberID   string  `json:"to_member_id"`
	Amount       float64 `json:"amount"`
	Status       string  `json:"status"`
	Note         string  `json:"note,omitempty"`
	CreatedAt    int64   `json:"created_at"`
}

// RecordSettlementRequest records a repayment. FromMemberID defaults to the
// caller and Status to "pending".
type RecordSettlementRequest struct {
	GroupID      string  `json:"group_id"`
	FromMemberID string  `json:"from_member_id,omitempty"`
	ToMemberID   string  `json:"to_member_id"`
	Amount       float64 `json:"amount"`
	Note         string  `json:"note,omitempty"`
	Status       string  `json:"status,omitempty"`
}

type RecordSettlementResponse struct {
	Settlement *Settlement `json:"settlement"`
}

type MarkSettledRequest struct {
	SettlementID string `json:"settlement_id"`
}

type MarkSettledResponse struct {
	Settlement *Settlement `json:"settlement"`
}

type ListSettlementsRequest struct {
	GroupID string `json:"group_id"`
}

type ListSettlementsResponse struct {
	Settlements []*Settlement `json:"settlements"`
}

type DeleteSettlementRequest struct {
	SettlementID string `json:"settlement_id"`
}

type DeleteSettlementResponse struct{}

// MemberBalance is one member's position in a group.
// NetBalance > 0: the group owes them. NetBalance < 0: they owe the group.
type MemberBalance struct {
	MemberID    string  `json:"member_id"`
	DisplayName string  `json:"display_name"`
	NetBalance  float64 `json:"net_balance"`
	TotalPaid   float64 `json:"total_paid"`
	TotalShare  float64 `json:"total_share"`
	SettledOut  float64 `json:"settled_out"`
	SettledIn   float64 `json:"settled_in"`
}

// Transfer is a suggested payment. PayLink is a UPI deep link when the
// receiver has a UPI ID.
type Transfer struct {
	From     string  `json:"from"`
	FromName string  `json:"from_name"`
	To       string  `json:"to"`
	ToName   string  `json:"to_name"`
	Amount   float64 `json:"amount"`
	PayLink  string  `json:"pay_link,omitempty"`
}

type GetGroupBalancesRequest struct {
	GroupID string `json:"group_id"`
}

type GetGroupBalancesResponse struct {
	Balances   []*MemberBalance `json:"balances"`
	Transfers  []*Transfer      `json:"transfers"`
	TotalSpent float64          `json:"total_spent"`
	Currency   string           `json:"currency"`
}

type GetMyTransfersRequest struct {
	GroupID string `json:"group_id"`
}

// GetMyTransfersResponse is the caller's slice of the group plan.
type GetMyTransfersResponse struct {
	NetBalance float64     `json:"net_balance"`
	ToPay      []*Transfer `json:"to_pay"`
	ToReceive  []*Transfer `json:"to_receive"`
	Currency   string      `json:"currency"`
}
