package directory

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/uptrace/bun"
	"golang.org/x/crypto/bcrypt"
)

// User is a managed directory entry. Group memberships live in their own
// table, mirroring how an LDAP tree separates people from groups.
type User struct {
	bun.BaseModel `bun:"table:users,alias:u"`

	ID           int64  `bun:"id,pk,autoincrement"`
	Username     string `bun:"username,notnull,unique"`
	PasswordHash string `bun:"password_hash,notnull"`
}

// GroupMember links a user to a directory group.
type GroupMember struct {
	bun.BaseModel `bun:"table:group_members,alias:gm"`

	ID        int64  `bun:"id,pk,autoincrement"`
	Username  string `bun:"username,notnull"`
	GroupName string `bun:"group_name,notnull"`
}

// DBDirectory is a Directory backed by SQLite or PostgreSQL through bun.
// Chosen when DIRECTORY_DSN is set; users are managed with the `folio
// users` subcommands.
type DBDirectory struct {
	db *bun.DB
}

// NewDBDirectory wraps an open bun handle.
func NewDBDirectory(db *bun.DB) *DBDirectory {
	return &DBDirectory{db: db}
}

// Init creates the directory tables if they do not exist yet.
func (d *DBDirectory) Init(ctx context.Context) error {
	if _, err := d.db.NewCreateTable().Model((*User)(nil)).IfNotExists().Exec(ctx); err != nil {
		return fmt.Errorf("create users table: %w", err)
	}
	if _, err := d.db.NewCreateTable().Model((*GroupMember)(nil)).IfNotExists().Exec(ctx); err != nil {
		return fmt.Errorf("create group_members table: %w", err)
	}
	return nil
}

// Authenticate verifies the password and loads the user's groups.
func (d *DBDirectory) Authenticate(ctx context.Context, username, password string) (Identity, error) {
	user := new(User)
	err := d.db.NewSelect().
		Model(user).
		Where("username = ?", username).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Identity{}, ErrBadCredentials
		}
		return Identity{}, fmt.Errorf("look up user %q: %w", username, err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return Identity{}, ErrBadCredentials
	}

	groups, err := d.groupsFor(ctx, username)
	if err != nil {
		return Identity{}, err
	}
	return Identity{Username: username, Groups: groups}, nil
}

// CreateUser inserts a user with a bcrypt-hashed password and its group
// memberships.
func (d *DBDirectory) CreateUser(ctx context.Context, username, password string, groups []string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	return d.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		user := &User{Username: username, PasswordHash: string(hash)}
		if _, err := tx.NewInsert().Model(user).Exec(ctx); err != nil {
			return fmt.Errorf("create user %q: %w", username, err)
		}
		for _, group := range groups {
			member := &GroupMember{Username: username, GroupName: group}
			if _, err := tx.NewInsert().Model(member).Exec(ctx); err != nil {
				return fmt.Errorf("add %q to group %q: %w", username, group, err)
			}
		}
		return nil
	})
}

// ListUsers returns all directory entries with their groups.
func (d *DBDirectory) ListUsers(ctx context.Context) ([]Identity, error) {
	var users []User
	if err := d.db.NewSelect().Model(&users).Order("username ASC").Scan(ctx); err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}

	out := make([]Identity, 0, len(users))
	for _, u := range users {
		groups, err := d.groupsFor(ctx, u.Username)
		if err != nil {
			return nil, err
		}
		out = append(out, Identity{Username: u.Username, Groups: groups})
	}
	return out, nil
}

func (d *DBDirectory) groupsFor(ctx context.Context, username string) ([]string, error) {
	var groups []string
	err := d.db.NewSelect().
		Model((*GroupMember)(nil)).
		Column("group_name").
		Where("username = ?", username).
		Order("group_name ASC").
		Scan(ctx, &groups)
	if err != nil {
		return nil, fmt.Errorf("load groups for %q: %w", username, err)
	}
	return groups, nil
}
