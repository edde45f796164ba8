// Package i18n holds the client-facing message catalog and picks a language
// from the request's Accept-Language header.
package i18n

import (
	"net/http"

	"golang.org/x/text/language"
)

// Message keys.
const (
	InvalidInput       = "invalid_input"
	InvalidFile        = "invalid_file"
	InvalidPayload     = "invalid_payload"
	Unauthorized       = "unauthorized"
	Forbidden          = "forbidden"
	NotFound           = "not_found"
	LotNotFound        = "lot_not_found"
	ReviewNotFound     = "review_not_found"
	UserNotFound       = "user_not_found"
	AlreadyReviewed    = "already_reviewed"
	UserExists         = "user_exists"
	InvalidCredentials = "invalid_credentials"
	PayloadTooLarge    = "payload_too_large"
	Upstream           = "upstream"
	Internal           = "internal"
)

// supported is ordered by preference; the first entry is the fallback.
var supported = []language.Tag{language.English, language.Russian}

var matcher = language.NewMatcher(supported)

var catalog = map[language.Tag]map[string]string{
	language.English: {
		InvalidInput:       "invalid input",
		InvalidFile:        "invalid file format",
		InvalidPayload:     "invalid payload",
		Unauthorized:       "authentication required",
		Forbidden:          "access forbidden",
		NotFound:           "not found",
		LotNotFound:        "lot not found",
		ReviewNotFound:     "review not found",
		UserNotFound:       "user not found",
		AlreadyReviewed:    "you have already reviewed this lot",
		UserExists:         "user already exists",
		InvalidCredentials: "invalid credentials",
		PayloadTooLarge:    "payload too large",
		Upstream:           "a backing service failed, please try again",
		Internal:           "internal server error",
	},
	language.Russian: {
		InvalidInput:       "некорректные данные",
		InvalidFile:        "неверный формат файла",
		InvalidPayload:     "некорректный запрос",
		Unauthorized:       "требуется вход",
		Forbidden:          "доступ запрещён",
		NotFound:           "не найдено",
		LotNotFound:        "лот не найден",
		ReviewNotFound:     "отзыв не найден",
		UserNotFound:       "пользователь не найден",
		AlreadyReviewed:    "вы уже оставили отзыв на этот лот",
		UserExists:         "пользователь уже существует",
		InvalidCredentials: "неверный email или пароль",
		PayloadTooLarge:    "слишком большой запрос",
		Upstream:           "сервис временно недоступен, попробуйте ещё раз",
		Internal:           "внутренняя ошибка сервера",
	},
}

// Negotiate picks the best supported language for an Accept-Language value.
func Negotiate(acceptLanguage string) language.Tag {
	tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(tags) == 0 {
		return supported[0]
	}
	_, idx, _ := matcher.Match(tags...)
	return supported[idx]
}

// Message returns the text for key in lang, falling back to English and
// then to the key itself.
func Message(lang language.Tag, key string) string {
	if msg, ok := catalog[lang][key]; ok {
		return msg
	}
	if msg, ok := catalog[supported[0]][key]; ok {
		return msg
	}
	return key
}

// ForRequest localizes key for r.
func ForRequest(r *http.Request, key string) string {
	return Message(Negotiate(r.Header.Get("Accept-Language")), key)
}

// Known reports whether key is in the catalog.
func Known(key string) bool {
	_, ok := catalog[supported[0]][key]
	return ok
}
