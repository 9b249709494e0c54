package services

// Operation-specific client messages. They double as the keys of the
// localization catalog in the HTTP layer.
const (
	MsgUserCreateInvalid   = "invalid data when creating user"
	MsgUserUpdateInvalid   = "invalid data when updating profile"
	MsgAvatarUpdateInvalid = "invalid data when updating avatar"
	MsgUserNotFound        = "user not found"
	MsgUserIDNotFound      = "user with the given id not found"
	MsgUserInvalidID       = "invalid user id"
	MsgEmailTaken          = "user with this email already exists"
	MsgBadCredentials      = "incorrect email or password"

	MsgCardCreateInvalid = "invalid data when creating card"
	MsgCardDeleteInvalid = "invalid data when deleting card"
	MsgCardNotFound      = "card not found"
	MsgCardInvalidID     = "invalid card id"
)
