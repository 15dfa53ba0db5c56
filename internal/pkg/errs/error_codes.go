/*
Package errs provides the application error type and error code constants.

The codes identify specific business or system failures both inside the
server and in logs; clients only ever see the message and HTTP status.
*/
package errs

// 1xxx: General request handling errors
const (
	// ErrInvalidParams indicates that request parameter validation failed.
	ErrInvalidParams = 1001

	// ErrUnsupportedMediaType indicates an unsupported Content-Type header.
	ErrUnsupportedMediaType = 1002

	// ErrInvalidJSONFormat indicates a malformed JSON request body.
	ErrInvalidJSONFormat = 1003

	// ErrExtraContentInBody indicates trailing content after the JSON body.
	ErrExtraContentInBody = 1004

	// ErrRateLimitExceeded indicates the per-IP request limit was exceeded.
	ErrRateLimitExceeded = 1005
)

// 2xxx: Profile, friends and chat business errors
const (
	// ErrNicknameTaken indicates the requested nickname is already in use.
	ErrNicknameTaken = 2101

	// ErrNicknameInvalid indicates the nickname failed validation.
	ErrNicknameInvalid = 2102

	// ErrStatusTooLong indicates the profile status exceeds 500 characters.
	ErrStatusTooLong = 2103

	// ErrUserNotFound indicates the referenced account does not exist.
	ErrUserNotFound = 2201

	// ErrAlreadyFriends indicates a duplicate friend request.
	ErrAlreadyFriends = 2301

	// ErrNotFriends indicates a friend removal for a non-friend.
	ErrNotFriends = 2302

	// ErrSelfFriend indicates an attempt to befriend oneself.
	ErrSelfFriend = 2303

	// ErrChatNotFound indicates the chat does not exist or the requester is
	// not a participant.
	ErrChatNotFound = 2401

	// ErrChatNoParticipants indicates a chat creation without participants.
	ErrChatNoParticipants = 2402

	// ErrChatTypeInvalid indicates an unknown chat type.
	ErrChatTypeInvalid = 2403

	// ErrMessageEmpty indicates an empty chat message.
	ErrMessageEmpty = 2501

	// ErrMessageTooLong indicates the message exceeds the length limit.
	ErrMessageTooLong = 2502
)

// 3xxx: Authentication errors
const (
	// ErrEmailInvalid indicates the login failed email validation.
	ErrEmailInvalid = 3001

	// ErrEmailTaken indicates an account with this email already exists.
	ErrEmailTaken = 3002

	// ErrWeakPassword indicates the password failed the strength rules.
	ErrWeakPassword = 3003

	// ErrPasswordMismatch indicates password and confirmation differ.
	ErrPasswordMismatch = 3004

	// ErrInvalidCredentials indicates a failed login attempt.
	ErrInvalidCredentials = 3005

	// ErrUnauthorized indicates a missing, invalid or expired bearer token.
	ErrUnauthorized = 3006
)

// 5xxx: Internal system errors
const (
	// ErrUnknown represents an unclassified internal server error.
	ErrUnknown = 5000
)
