package repo

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/tbourn/go-cards-backend/internal/domain"
)

func strp(s string) *string { return &s }

func newUser(name string) *domain.User {
	return &domain.User{
		Name:   name,
		About:  domain.DefaultUserAbout,
		Avatar: domain.DefaultUserAvatar,
	}
}

func TestCreateUser_AssignsIDAndHidesHash(t *testing.T) {
	db := newRepoDB(t)
	ctx := context.Background()

	u := newUser("Alice")
	u.Email = strp("  Alice@Example.COM ")
	u.PasswordHash = "$2a$10$hash"

	got, err := CreateUser(ctx, db, u)
	if err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	if _, err := uuid.Parse(got.ID); err != nil {
		t.Fatalf("expected uuid id, got %q", got.ID)
	}
	if got.PasswordHash != "" {
		t.Fatalf("hash must not be returned")
	}
	if got.Email == nil || *got.Email != "alice@example.com" {
		t.Fatalf("expected normalized email, got %v", got.Email)
	}

	// Stored hash is still there for sign-in.
	withHash, err := GetUserByEmailWithPassword(ctx, db, "ALICE@example.com")
	if err != nil {
		t.Fatalf("GetUserByEmailWithPassword: %v", err)
	}
	if withHash.PasswordHash != "$2a$10$hash" {
		t.Fatalf("expected stored hash, got %q", withHash.PasswordHash)
	}
}

func TestCreateUser_ValidationFailure(t *testing.T) {
	db := newRepoDB(t)

	for _, tc := range []struct {
		name  string
		mut   func(*domain.User)
		field string
	}{
		{"short name", func(u *domain.User) { u.Name = "A" }, "name"},
		{"long name", func(u *domain.User) { u.Name = strings.Repeat("a", 31) }, "name"},
		{"short about", func(u *domain.User) { u.About = "x" }, "about"},
		{"bad avatar", func(u *domain.User) { u.Avatar = "not a url" }, "avatar"},
		{"bad email", func(u *domain.User) { u.Email = strp("nope") }, "email"},
	} {
		t.Run(tc.name, func(t *testing.T) {
			u := newUser("Valid")
			tc.mut(u)
			_, err := CreateUser(context.Background(), db, u)
			f, ok := AsFailure(err)
			if !ok || f.Kind != FailureValidation {
				t.Fatalf("expected validation failure, got %v", err)
			}
			if f.Field != tc.field {
				t.Fatalf("field=%q want %q", f.Field, tc.field)
			}
		})
	}
}

func TestCreateUser_NameBoundsAccepted(t *testing.T) {
	db := newRepoDB(t)
	for _, n := range []string{"Ab", strings.Repeat("я", 30)} {
		if _, err := CreateUser(context.Background(), db, newUser(n)); err != nil {
			t.Fatalf("name %q rejected: %v", n, err)
		}
	}
}

func TestCreateUser_DuplicateEmail(t *testing.T) {
	db := newRepoDB(t)
	ctx := context.Background()

	a := newUser("Alice")
	a.Email = strp("dup@example.com")
	if _, err := CreateUser(ctx, db, a); err != nil {
		t.Fatalf("first create: %v", err)
	}
	b := newUser("Bob")
	b.Email = strp("DUP@example.com")
	_, err := CreateUser(ctx, db, b)
	f, ok := AsFailure(err)
	if !ok || f.Kind != FailureDuplicateKey {
		t.Fatalf("expected duplicate key, got %v", err)
	}
}

func TestGetUser_MalformedVsMissing(t *testing.T) {
	db := newRepoDB(t)
	ctx := context.Background()

	_, err := GetUser(ctx, db, "123")
	if f, ok := AsFailure(err); !ok || f.Kind != FailureMalformedID {
		t.Fatalf("expected malformed id, got %v", err)
	}

	_, err = GetUser(ctx, db, uuid.NewString())
	if f, ok := AsFailure(err); !ok || f.Kind != FailureNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestGetUserByEmailWithPassword_Missing(t *testing.T) {
	db := newRepoDB(t)
	_, err := GetUserByEmailWithPassword(context.Background(), db, "ghost@example.com")
	if f, ok := AsFailure(err); !ok || f.Kind != FailureNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestListUsers_NeverSelectsHash(t *testing.T) {
	db := newRepoDB(t)
	ctx := context.Background()

	empty, err := ListUsers(ctx, db)
	if err != nil || empty == nil || len(empty) != 0 {
		t.Fatalf("expected empty non-nil slice, got %v err=%v", empty, err)
	}

	for i, n := range []string{"Alice", "Bob"} {
		u := newUser(n)
		u.Email = strp(strings.ToLower(n) + "@example.com")
		u.PasswordHash = "secret-hash-" + string(rune('a'+i))
		if _, err := CreateUser(ctx, db, u); err != nil {
			t.Fatalf("CreateUser: %v", err)
		}
	}

	users, err := ListUsers(ctx, db)
	if err != nil {
		t.Fatalf("ListUsers: %v", err)
	}
	if len(users) != 2 {
		t.Fatalf("expected 2 users, got %d", len(users))
	}
	for _, u := range users {
		if u.PasswordHash != "" {
			t.Fatalf("hash selected for %s", u.Name)
		}
	}
}

func TestUpdateUser_PartialPatch(t *testing.T) {
	db := newRepoDB(t)
	ctx := context.Background()

	u, err := CreateUser(ctx, db, newUser("Alice"))
	if err != nil {
		t.Fatalf("CreateUser: %v", err)
	}

	got, err := UpdateUser(ctx, db, u.ID, UserPatch{About: strp("Diver")})
	if err != nil {
		t.Fatalf("UpdateUser: %v", err)
	}
	if got.Name != "Alice" || got.About != "Diver" || got.Avatar != domain.DefaultUserAvatar {
		t.Fatalf("unexpected profile after patch: %+v", got)
	}

	got, err = UpdateUser(ctx, db, u.ID, UserPatch{Avatar: strp("https://example.com/a.png")})
	if err != nil || got.Avatar != "https://example.com/a.png" || got.About != "Diver" {
		t.Fatalf("avatar patch: got=%+v err=%v", got, err)
	}

	// Empty patch is a read.
	got, err = UpdateUser(ctx, db, u.ID, UserPatch{})
	if err != nil || got.ID != u.ID {
		t.Fatalf("empty patch: got=%+v err=%v", got, err)
	}
}

func TestUpdateUser_Failures(t *testing.T) {
	db := newRepoDB(t)
	ctx := context.Background()

	u, err := CreateUser(ctx, db, newUser("Alice"))
	if err != nil {
		t.Fatalf("CreateUser: %v", err)
	}

	_, err = UpdateUser(ctx, db, u.ID, UserPatch{Name: strp("A")})
	if f, ok := AsFailure(err); !ok || f.Kind != FailureValidation || f.Field != "name" {
		t.Fatalf("expected name validation failure, got %v", err)
	}

	_, err = UpdateUser(ctx, db, uuid.NewString(), UserPatch{Name: strp("Bobby")})
	if f, ok := AsFailure(err); !ok || f.Kind != FailureNotFound {
		t.Fatalf("expected not found, got %v", err)
	}

	_, err = UpdateUser(ctx, db, "zzz", UserPatch{Name: strp("Bobby")})
	if f, ok := AsFailure(err); !ok || f.Kind != FailureMalformedID {
		t.Fatalf("expected malformed id, got %v", err)
	}

	// Rejected update leaves the row untouched.
	cur, err := GetUser(ctx, db, u.ID)
	if err != nil || cur.Name != "Alice" {
		t.Fatalf("row changed: %+v err=%v", cur, err)
	}
}

func TestEnsureUser_InsertsOnceAndKeepsEdits(t *testing.T) {
	db := newRepoDB(t)
	ctx := context.Background()
	id := uuid.NewString()

	u, err := EnsureUser(ctx, db, id)
	if err != nil {
		t.Fatalf("EnsureUser: %v", err)
	}
	if u.ID != id || u.Name != domain.DefaultUserName || u.Email != nil {
		t.Fatalf("unexpected seed %+v", u)
	}

	if _, err := UpdateUser(ctx, db, id, UserPatch{Name: strp("Edited")}); err != nil {
		t.Fatalf("UpdateUser: %v", err)
	}
	again, err := EnsureUser(ctx, db, id)
	if err != nil || again.Name != "Edited" {
		t.Fatalf("second EnsureUser must not overwrite: %+v err=%v", again, err)
	}

	if _, err := EnsureUser(ctx, db, "nope"); err == nil {
		t.Fatalf("expected malformed id failure")
	}
}
