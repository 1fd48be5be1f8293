// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"errors"

	"github.com/splitstuff/splitstuff/internal/models"
)

// ErrNotFound is returned (wrapped) when a record does not exist.
var ErrNotFound = errors.New("not found")

// Store defines the data-access boundary. Implementations return fully typed
// records so callers never deal with loosely shaped join results.
// This abstraction allows swapping storage backends (SQLite, PostgreSQL)
// without changing the service layer.
type Store interface {
	// UpsertProfile creates the profile or updates its display name and UPI ID.
	// An empty ID is filled with a new UUID.
	UpsertProfile(ctx context.Context, profile *models.Profile) error

	// GetProfile retrieves a profile by ID.
	GetProfile(ctx context.Context, profileID string) (*models.Profile, error)

	// CreateGroup persists a new group together with its members.
	// Members without a ProfileID get a fresh profile.
	CreateGroup(ctx context.Context, group *models.Group) error

	// GetGroup retrieves a group and its members in join order.
	GetGroup(ctx context.Context, groupID string) (*models.Group, error)

	// ListGroupsForProfile retrieves every group the profile belongs to.
	ListGroupsForProfile(ctx context.Context, profileID string) ([]*models.Group, error)

	// AddGroupMember adds a member to a group, creating the profile when
	// member.ProfileID is empty. Adding an existing member is a no-op.
	AddGroupMember(ctx context.Context, groupID string, member *models.Member) error

	// CreateExpense persists an expense and its splits atomically.
	CreateExpense(ctx context.Context, expense *models.Expense) error

	// GetExpense retrieves an expense with its splits.
	GetExpense(ctx context.Context, expenseID string) (*models.Expense, error)

	// ListExpensesByGroup retrieves all expenses (with splits) for a group,
	// newest first.
	ListExpensesByGroup(ctx context.Context, groupID string) ([]*models.Expense, error)

	// DeleteExpense removes an expense; its splits go with it.
	DeleteExpense(ctx context.Context, expenseID string) error

	// CreateSettlement persists a new settlement.
	CreateSettlement(ctx context.Context, settlement *models.Settlement) error

	// GetSettlement retrieves a settlement by ID.
	GetSettlement(ctx context.Context, settlementID string) (*models.Settlement, error)

	// ListSettlementsByGroup retrieves all settlements for a group, newest first.
	ListSettlementsByGroup(ctx context.Context, groupID string) ([]*models.Settlement, error)

	// UpdateSettlementStatus changes the status of a settlement.
	UpdateSettlementStatus(ctx context.Context, settlementID string, status models.SettlementStatus) error

	// DeleteSettlement removes a settlement by ID.
	DeleteSettlement(ctx context.Context, settlementID string) error

	// Close releases any resources held by the store.
	Close() error
}
