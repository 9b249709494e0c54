// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the User model.
//
// Functions:
//
//   - CreateUser(ctx, db, u) -> *domain.User, error
//     Validates and inserts a profile with a fresh UUID.
//
//   - ListUsers(ctx, db) -> []domain.User, error
//     Returns every profile without its password hash.
//
//   - GetUser(ctx, db, id) -> *domain.User, error
//     Fetches one profile by UUID; never selects the hash.
//
//   - GetUserByEmailWithPassword(ctx, db, email) -> *domain.User, error
//     The only read that loads password_hash. Used by sign-in.
//
//   - UpdateUser(ctx, db, id, patch) -> *domain.User, error
//     Updates the fields present in patch and returns the fresh profile.
//
//   - EnsureUser(ctx, db, id) -> *domain.User, error
//     Inserts a default profile under a fixed id unless one exists.
package repo

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/tbourn/go-cards-backend/internal/domain"
)

// userColumns is the default projection. password_hash is deliberately absent.
var userColumns = []string{"id", "name", "about", "avatar", "email", "created_at", "updated_at"}

// UserPatch lists the profile fields an update may touch. Nil means
// "leave unchanged".
type UserPatch struct {
	Name   *string
	About  *string
	Avatar *string
}

// empty reports whether the patch touches nothing.
func (p UserPatch) empty() bool {
	return p.Name == nil && p.About == nil && p.Avatar == nil
}

// CreateUser validates u against the model schema and inserts it. ID and
// timestamps are assigned here. A taken email yields FailureDuplicateKey.
func CreateUser(ctx context.Context, db *gorm.DB, u *domain.User) (*domain.User, error) {
	const op = "users.create"

	now := time.Now().UTC()
	u.ID = uuid.NewString()
	u.CreatedAt = now
	u.UpdatedAt = now
	if u.Email != nil {
		e := strings.ToLower(strings.TrimSpace(*u.Email))
		u.Email = &e
	}
	if err := validateStruct(op, u); err != nil {
		return nil, err
	}
	if err := db.WithContext(ctx).Create(u).Error; err != nil {
		return nil, classify(op, err)
	}

	out := *u
	out.PasswordHash = ""
	return &out, nil
}

// ListUsers returns all profiles ordered by creation time.
func ListUsers(ctx context.Context, db *gorm.DB) ([]domain.User, error) {
	out := []domain.User{}
	err := db.WithContext(ctx).
		Select(userColumns).
		Order("created_at asc, id asc").
		Find(&out).Error
	if err != nil {
		return nil, classify("users.list", err)
	}
	return out, nil
}

// GetUser fetches a profile by id. A non-UUID id is FailureMalformedID; a
// missing row is FailureNotFound.
func GetUser(ctx context.Context, db *gorm.DB, id string) (*domain.User, error) {
	const op = "users.get"

	key, err := parseID(op, "id", id)
	if err != nil {
		return nil, err
	}
	var u domain.User
	err = db.WithContext(ctx).
		Select(userColumns).
		Where("id = ?", key).
		First(&u).Error
	if err != nil {
		return nil, classify(op, err)
	}
	return &u, nil
}

// GetUserByEmailWithPassword loads a profile including its password hash.
// The email is matched case-insensitively through normalization.
func GetUserByEmailWithPassword(ctx context.Context, db *gorm.DB, email string) (*domain.User, error) {
	var u domain.User
	err := db.WithContext(ctx).
		Where("email = ?", strings.ToLower(strings.TrimSpace(email))).
		First(&u).Error
	if err != nil {
		return nil, classify("users.getByEmail", err)
	}
	return &u, nil
}

// UpdateUser applies patch to the profile identified by id. Only present
// fields are validated and written. If no row matches it returns
// FailureNotFound.
func UpdateUser(ctx context.Context, db *gorm.DB, id string, patch UserPatch) (*domain.User, error) {
	const op = "users.update"

	key, err := parseID(op, "id", id)
	if err != nil {
		return nil, err
	}
	if patch.empty() {
		return GetUser(ctx, db, key)
	}

	var (
		probe  domain.User
		fields []string
		values = map[string]any{}
	)
	if patch.Name != nil {
		probe.Name = *patch.Name
		fields = append(fields, "Name")
		values["name"] = *patch.Name
	}
	if patch.About != nil {
		probe.About = *patch.About
		fields = append(fields, "About")
		values["about"] = *patch.About
	}
	if patch.Avatar != nil {
		probe.Avatar = *patch.Avatar
		fields = append(fields, "Avatar")
		values["avatar"] = *patch.Avatar
	}
	if err := validateFields(op, &probe, fields...); err != nil {
		return nil, err
	}
	values["updated_at"] = time.Now().UTC()

	res := db.WithContext(ctx).
		Model(&domain.User{}).
		Where("id = ?", key).
		Updates(values)
	if res.Error != nil {
		return nil, classify(op, res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, fail(op, FailureNotFound, "", ErrNotFound)
	}
	return GetUser(ctx, db, key)
}

// EnsureUser makes sure a profile with id exists, inserting one with the
// default name, about and avatar when missing. An existing row is left as is.
func EnsureUser(ctx context.Context, db *gorm.DB, id string) (*domain.User, error) {
	const op = "users.ensure"

	key, err := parseID(op, "id", id)
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	u := &domain.User{
		ID:        key,
		Name:      domain.DefaultUserName,
		About:     domain.DefaultUserAbout,
		Avatar:    domain.DefaultUserAvatar,
		CreatedAt: now,
		UpdatedAt: now,
	}
	err = db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "id"}}, DoNothing: true}).
		Create(u).Error
	if err != nil {
		return nil, classify(op, err)
	}
	return GetUser(ctx, db, key)
}
