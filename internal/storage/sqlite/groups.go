package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/splitstuff/splitstuff/internal/models"
)

// CreateGroup persists a new group and its members in one transaction.
func (s *SQLiteStore) CreateGroup(ctx context.Context, group *models.Group) error {
	if group.ID == "" {
		group.ID = uuid.New().String()
	}
	if group.CreatedAt == 0 {
		group.CreatedAt = time.Now().Unix()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		"INSERT INTO groups (id, name, created_by, created_at) VALUES (?, ?, ?, ?)",
		group.ID, group.Name, nullString(group.CreatedBy), group.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert group: %w", err)
	}

	for i := range group.Members {
		if err := insertMember(ctx, tx, group.ID, &group.Members[i], i); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// insertMember makes sure the member's profile exists and links it to the group.
func insertMember(ctx context.Context, tx *sql.Tx, groupID string, member *models.Member, position int) error {
	profile := &models.Profile{
		ID:          member.ProfileID,
		DisplayName: member.DisplayName,
		UPIID:       member.UPIID,
	}
	if member.ProfileID == "" || member.DisplayName != "" {
		if err := upsertProfile(ctx, tx, profile); err != nil {
			return err
		}
		member.ProfileID = profile.ID
	}
	if member.JoinedAt == 0 {
		member.JoinedAt = time.Now().Unix()
	}

	_, err := tx.ExecContext(ctx,
		`INSERT INTO group_members (group_id, profile_id, position, joined_at) VALUES (?, ?, ?, ?)
		 ON CONFLICT(group_id, profile_id) DO NOTHING`,
		groupID, member.ProfileID, position, member.JoinedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert group member: %w", err)
	}
	return nil
}

// GetGroup retrieves a group with its members.
func (s *SQLiteStore) GetGroup(ctx context.Context, groupID string) (*models.Group, error) {
	group := &models.Group{}
	var createdBy sql.NullString

	err := s.db.QueryRowContext(ctx,
		"SELECT id, name, created_by, created_at FROM groups WHERE id = ?",
		groupID,
	).Scan(&group.ID, &group.Name, &createdBy, &group.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, notFound("group", groupID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get group: %w", err)
	}
	group.CreatedBy = createdBy.String

	members, err := s.listMembers(ctx, groupID)
	if err != nil {
		return nil, err
	}
	group.Members = members
	return group, nil
}

func (s *SQLiteStore) listMembers(ctx context.Context, groupID string) ([]models.Member, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT p.id, p.display_name, p.upi_id, gm.joined_at
		 FROM group_members gm JOIN profiles p ON p.id = gm.profile_id
		 WHERE gm.group_id = ?
		 ORDER BY gm.position, gm.joined_at`,
		groupID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get group members: %w", err)
	}
	defer rows.Close()

	var members []models.Member
	for rows.Next() {
		var m models.Member
		var upi sql.NullString
		if err := rows.Scan(&m.ProfileID, &m.DisplayName, &upi, &m.JoinedAt); err != nil {
			return nil, fmt.Errorf("failed to scan group member: %w", err)
		}
		m.UPIID = upi.String
		members = append(members, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate group members: %w", err)
	}
	return members, nil
}

// ListGroupsForProfile retrieves the groups a profile belongs to, newest first.
func (s *SQLiteStore) ListGroupsForProfile(ctx context.Context, profileID string) ([]*models.Group, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT g.id FROM groups g JOIN group_members gm ON gm.group_id = g.id
		 WHERE gm.profile_id = ?
		 ORDER BY g.created_at DESC, g.id`,
		profileID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list groups: %w", err)
	}

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			rows.Close()
			return nil, fmt.Errorf("failed to scan group: %w", err)
		}
		ids = append(ids, id)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate groups: %w", err)
	}

	groups := make([]*models.Group, 0, len(ids))
	for _, id := range ids {
		group, err := s.GetGroup(ctx, id)
		if err != nil {
			return nil, err
		}
		groups = append(groups, group)
	}
	return groups, nil
}

// AddGroupMember appends a member to an existing group.
func (s *SQLiteStore) AddGroupMember(ctx context.Context, groupID string, member *models.Member) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var position int
	err = tx.QueryRowContext(ctx,
		"SELECT COALESCE(MAX(gm.position) + 1, 0) FROM groups g LEFT JOIN group_members gm ON gm.group_id = g.id WHERE g.id = ? GROUP BY g.id",
		groupID,
	).Scan(&position)
	if errors.Is(err, sql.ErrNoRows) {
		return notFound("group", groupID)
	}
	if err != nil {
		return fmt.Errorf("failed to check group: %w", err)
	}

	if err := insertMember(ctx, tx, groupID, member, position); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}
