package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/splitstuff/splitstuff/internal/models"
)

// execer is satisfied by both *pgxpool.Pool and pgx.Tx.
type execer interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// UpsertProfile creates the profile or refreshes its display name and UPI ID.
// An empty UPIID keeps the stored one.
func (s *Store) UpsertProfile(ctx context.Context, profile *models.Profile) error {
	return upsertProfile(ctx, s.pool, profile)
}

func upsertProfile(ctx context.Context, db execer, profile *models.Profile) error {
	if profile.ID == "" {
		profile.ID = uuid.New().String()
	}
	if profile.CreatedAt == 0 {
		profile.CreatedAt = time.Now().Unix()
	}
	_, err := db.Exec(ctx,
		`INSERT INTO profiles (id, display_name, upi_id, created_at) VALUES ($1, $2, $3, $4)
		 ON CONFLICT (id) DO UPDATE SET display_name = EXCLUDED.display_name,
		     upi_id = COALESCE(EXCLUDED.upi_id, profiles.upi_id)`,
		profile.ID, profile.DisplayName, optional(profile.UPIID), time.Unix(profile.CreatedAt, 0),
	)
	if err != nil {
		return fmt.Errorf("failed to upsert profile: %w", err)
	}
	return nil
}

// GetProfile retrieves a profile by ID.
func (s *Store) GetProfile(ctx context.Context, profileID string) (*models.Profile, error) {
	profile := &models.Profile{}
	var upi *string
	var createdAt time.Time

	err := s.pool.QueryRow(ctx,
		"SELECT id, display_name, upi_id, created_at FROM profiles WHERE id = $1", profileID,
	).Scan(&profile.ID, &profile.DisplayName, &upi, &createdAt)
	if isNoRows(err) {
		return nil, notFound("profile", profileID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}
	profile.UPIID = deref(upi)
	profile.CreatedAt = createdAt.Unix()
	return profile, nil
}

// CreateGroup persists a new group and its members in one transaction.
func (s *Store) CreateGroup(ctx context.Context, group *models.Group) error {
	if group.ID == "" {
		group.ID = uuid.New().String()
	}
	if group.CreatedAt == 0 {
		group.CreatedAt = time.Now().Unix()
	}

	return pgx.BeginFunc(ctx, s.pool, func(tx pgx.Tx) error {
		_, err := tx.Exec(ctx,
			"INSERT INTO groups (id, name, created_by, created_at) VALUES ($1, $2, $3, $4)",
			group.ID, group.Name, optional(group.CreatedBy), time.Unix(group.CreatedAt, 0),
		)
		if err != nil {
			return fmt.Errorf("failed to insert group: %w", err)
		}
		for i := range group.Members {
			if err := insertMember(ctx, tx, group.ID, &group.Members[i], i); err != nil {
				return err
			}
		}
		return nil
	})
}

func insertMember(ctx context.Context, tx pgx.Tx, groupID string, member *models.Member, position int) error {
	if member.ProfileID == "" || member.DisplayName != "" {
		profile := &models.Profile{ID: member.ProfileID, DisplayName: member.DisplayName, UPIID: member.UPIID}
		if err := upsertProfile(ctx, tx, profile); err != nil {
			return err
		}
		member.ProfileID = profile.ID
	}
	if member.JoinedAt == 0 {
		member.JoinedAt = time.Now().Unix()
	}
	_, err := tx.Exec(ctx,
		`INSERT INTO group_members (group_id, profile_id, position, joined_at) VALUES ($1, $2, $3, $4)
		 ON CONFLICT (group_id, profile_id) DO NOTHING`,
		groupID, member.ProfileID, position, time.Unix(member.JoinedAt, 0),
	)
	if err != nil {
		return fmt.Errorf("failed to insert group member: %w", err)
	}
	return nil
}

// GetGroup retrieves a group with its members.
func (s *Store) GetGroup(ctx context.Context, groupID string) (*models.Group, error) {
	group := &models.Group{}
	var createdBy *string
	var createdAt time.Time

	err := s.pool.QueryRow(ctx,
		"SELECT id, name, created_by, created_at FROM groups WHERE id = $1", groupID,
	).Scan(&group.ID, &group.Name, &createdBy, &createdAt)
	if isNoRows(err) {
		return nil, notFound("group", groupID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get group: %w", err)
	}
	group.CreatedBy = deref(createdBy)
	group.CreatedAt = createdAt.Unix()

	rows, err := s.pool.Query(ctx,
		`SELECT p.id, p.display_name, p.upi_id, gm.joined_at
		 FROM group_members gm JOIN profiles p ON p.id = gm.profile_id
		 WHERE gm.group_id = $1
		 ORDER BY gm.position, gm.joined_at`,
		groupID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get group members: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var m models.Member
		var upi *string
		var joinedAt time.Time
		if err := rows.Scan(&m.ProfileID, &m.DisplayName, &upi, &joinedAt); err != nil {
			return nil, fmt.Errorf("failed to scan group member: %w", err)
		}
		m.UPIID = deref(upi)
		m.JoinedAt = joinedAt.Unix()
		group.Members = append(group.Members, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate group members: %w", err)
	}
	return group, nil
}

// ListGroupsForProfile retrieves the groups a profile belongs to, newest first.
func (s *Store) ListGroupsForProfile(ctx context.Context, profileID string) ([]*models.Group, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT g.id FROM groups g JOIN group_members gm ON gm.group_id = g.id
		 WHERE gm.profile_id = $1
		 ORDER BY g.created_at DESC, g.id`,
		profileID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list groups: %w", err)
	}
	ids, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, fmt.Errorf("failed to scan groups: %w", err)
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
func (s *Store) AddGroupMember(ctx context.Context, groupID string, member *models.Member) error {
	return pgx.BeginFunc(ctx, s.pool, func(tx pgx.Tx) error {
		var position int
		err := tx.QueryRow(ctx,
			`SELECT COALESCE(MAX(gm.position) + 1, 0)
			 FROM groups g LEFT JOIN group_members gm ON gm.group_id = g.id
			 WHERE g.id = $1 GROUP BY g.id`,
			groupID,
		).Scan(&position)
		if isNoRows(err) {
			return notFound("group", groupID)
		}
		if err != nil {
			return fmt.Errorf("failed to check group: %w", err)
		}
		return insertMember(ctx, tx, groupID, member, position)
	})
}
