/*
Package errs provides the application error type and error code constants.

This file maps every error code to its user-facing message and HTTP status.
The Russian wording is load-bearing: the client matches "пароль", "email",
"логин" and "никнейм" substrings to decide which form field shows the error.
*/
package errs

import "net/http"

// registry stores the Error template for every application error code.
// A zero Status defaults to 400 Bad Request in New.
var registry = map[int]Error{
	// 1xxx: General request handling errors
	ErrInvalidParams:        {Code: ErrInvalidParams, Message: "Некорректные данные запроса"},
	ErrUnsupportedMediaType: {Code: ErrUnsupportedMediaType, Message: "Неподдерживаемый формат запроса", Status: http.StatusUnsupportedMediaType},
	ErrInvalidJSONFormat:    {Code: ErrInvalidJSONFormat, Message: "Неверный формат запроса"},
	ErrExtraContentInBody:   {Code: ErrExtraContentInBody, Message: "Запрос содержит лишние данные"},
	ErrRateLimitExceeded:    {Code: ErrRateLimitExceeded, Message: "Слишком много запросов. Попробуйте позже", Status: http.StatusTooManyRequests},

	// 2xxx: Profile, friends and chat business errors
	ErrNicknameTaken:      {Code: ErrNicknameTaken, Message: "Этот никнейм уже занят", Status: http.StatusConflict},
	ErrNicknameInvalid:    {Code: ErrNicknameInvalid, Message: "Ник может содержать только буквы и цифры"},
	ErrStatusTooLong:      {Code: ErrStatusTooLong, Message: "Статус должен содержать максимум 500 символов"},
	ErrUserNotFound:       {Code: ErrUserNotFound, Message: "Пользователь не найден", Status: http.StatusNotFound},
	ErrAlreadyFriends:     {Code: ErrAlreadyFriends, Message: "Этот пользователь уже у вас в друзьях", Status: http.StatusConflict},
	ErrNotFriends:         {Code: ErrNotFriends, Message: "Этого пользователя нет в вашем списке друзей", Status: http.StatusNotFound},
	ErrSelfFriend:         {Code: ErrSelfFriend, Message: "Нельзя добавить в друзья самого себя"},
	ErrChatNotFound:       {Code: ErrChatNotFound, Message: "Чат не найден", Status: http.StatusNotFound},
	ErrChatNoParticipants: {Code: ErrChatNoParticipants, Message: "Выберите хотя бы одного участника"},
	ErrChatTypeInvalid:    {Code: ErrChatTypeInvalid, Message: "Неверный тип чата"},
	ErrMessageEmpty:       {Code: ErrMessageEmpty, Message: "Сообщение не может быть пустым"},
	ErrMessageTooLong:     {Code: ErrMessageTooLong, Message: "Сообщение слишком длинное"},

	// 3xxx: Authentication errors
	ErrEmailInvalid:       {Code: ErrEmailInvalid, Message: "Введите корректный email"},
	ErrEmailTaken:         {Code: ErrEmailTaken, Message: "Пользователь с таким email уже существует", Status: http.StatusConflict},
	ErrWeakPassword:       {Code: ErrWeakPassword, Message: "Слишком простой пароль"},
	ErrPasswordMismatch:   {Code: ErrPasswordMismatch, Message: "Пароли не совпадают"},
	ErrInvalidCredentials: {Code: ErrInvalidCredentials, Message: "Неверный email или пароль", Status: http.StatusUnauthorized},
	ErrUnauthorized:       {Code: ErrUnauthorized, Message: "Требуется авторизация", Status: http.StatusUnauthorized},

	// 5xxx: Internal system errors
	ErrUnknown: {Code: ErrUnknown, Message: "Что-то пошло не так. Попробуйте снова", Status: http.StatusInternalServerError},
}
