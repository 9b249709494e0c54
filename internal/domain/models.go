// Package domain defines the persistence models for user profiles, cards and
// card likes. These types are mapped with GORM and carry the validation
// schema (validator tags) enforced by the repository layer before writes.
package domain

import "time"

// Profile defaults applied when a user is created without these fields.
const (
	DefaultUserName   = "Jacques-Yves Cousteau"
	DefaultUserAbout  = "Explorer"
	DefaultUserAvatar = "https://pictures.s3.yandex.net/resources/jacques-cousteau_1604399756.png"
)

// User is a public profile. Email is nullable so that profiles created in
// placeholder mode (no credentials) do not collide on the unique index.
//
// Fields:
//   - ID: UUID primary key (char(36)), generated at create.
//   - Name / About: display data, 2–30 and 2–200 runes.
//   - Avatar: absolute http(s) URL.
//   - Email: unique login identifier; lower-cased before persisting.
//   - PasswordHash: bcrypt hash. Never serialized and never selected by
//     default reads.
type User struct {
	ID           string    `json:"id"              gorm:"type:char(36);primaryKey"`
	Name         string    `json:"name"            gorm:"type:varchar(30);not null"  validate:"required,min=2,max=30"`
	About        string    `json:"about"           gorm:"type:varchar(200);not null" validate:"required,min=2,max=200"`
	Avatar       string    `json:"avatar"          gorm:"type:text;not null"         validate:"required,weburl"`
	Email        *string   `json:"email,omitempty" gorm:"type:varchar(254);uniqueIndex:ux_users_email" validate:"omitempty,email,max=254"`
	PasswordHash string    `json:"-"               gorm:"type:varchar(72);not null;default:''"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// TableName returns the database table name for User.
func (User) TableName() string { return "users" }

// Card is a named link owned by a user. Likes is the serialized like set;
// it is derived from LikeRows and never stored as a column.
type Card struct {
	ID        string    `json:"id"        gorm:"type:char(36);primaryKey"`
	Name      string    `json:"name"      gorm:"type:varchar(30);not null" validate:"required,min=2,max=30"`
	Link      string    `json:"link"      gorm:"type:text;not null"        validate:"required,weburl"`
	Owner     string    `json:"owner"     gorm:"type:char(36);not null;index:idx_cards_owner" validate:"required,uuid"`
	Likes     []string  `json:"likes"     gorm:"-"`
	CreatedAt time.Time `json:"createdAt" gorm:"index:idx_cards_created"`

	// OwnerUser ties Owner to an existing profile. Never loaded.
	OwnerUser *User `json:"-" validate:"-" gorm:"foreignKey:Owner;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`

	// LikeRows holds the set members, loaded via Preload. Deleting the card
	// deletes them.
	LikeRows []CardLike `json:"-" gorm:"foreignKey:CardID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

// TableName returns the database table name for Card.
func (Card) TableName() string { return "cards" }

// SyncLikes rebuilds Likes from LikeRows. The result is never nil so an
// unliked card serializes as "likes": [].
func (c *Card) SyncLikes() {
	out := make([]string, 0, len(c.LikeRows))
	for _, l := range c.LikeRows {
		out = append(out, l.UserID)
	}
	c.Likes = out
}

// CardLike is one member of a card's like set. The composite primary key
// (card_id, user_id) makes a duplicate like unrepresentable.
type CardLike struct {
	CardID    string    `gorm:"type:char(36);primaryKey"`
	UserID    string    `gorm:"type:char(36);primaryKey"`
	CreatedAt time.Time `gorm:"not null"`
}

// TableName returns the database table name for CardLike.
func (CardLike) TableName() string { return "card_likes" }
