// Package handlers – message localization
//
// Client messages are English strings that double as catalog keys. The
// Russian catalog carries the texts existing clients expect. The
// language is negotiated from Accept-Language; anything unmatched gets
// English.
package handlers

import (
	"github.com/gin-gonic/gin"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"

	"github.com/tbourn/go-cards-backend/internal/services"
)

// Route-level messages not owned by any service.
const (
	MsgRouteNotFound    = "route not found"
	MsgMethodNotAllowed = "method not allowed"
)

var supported = []language.Tag{language.English, language.Russian}

var matcher = language.NewMatcher(supported)

var ruMessages = map[string]string{
	services.MsgInvalidData:    "Переданы некорректные данные",
	services.MsgAuthRequired:   "Необходима авторизация",
	services.MsgNotFound:       "Запрашиваемый ресурс не найден",
	services.MsgAlreadyExists:  "Ресурс уже существует",
	services.MsgInternalServer: "Ошибка сервера",

	services.MsgUserCreateInvalid:   "Переданы некорректные данные при создании пользователя.",
	services.MsgUserUpdateInvalid:   "Переданы некорректные данные при обновлении профиля.",
	services.MsgAvatarUpdateInvalid: "Переданы некорректные данные при обновлении аватара.",
	services.MsgUserNotFound:        "Пользователь не найден.",
	services.MsgUserIDNotFound:      "Пользователь с указанным _id не найден.",
	services.MsgUserInvalidID:       "Передан некорректный _id пользователя.",
	services.MsgEmailTaken:          "Пользователь с таким email уже существует.",
	services.MsgBadCredentials:      "Неправильные почта или пароль.",

	services.MsgCardCreateInvalid: "Переданы некорректные данные при создании карточки",
	services.MsgCardDeleteInvalid: "Переданы некорректные данные при удалении карточки",
	services.MsgCardNotFound:      "Карточка не найдена",
	services.MsgCardInvalidID:     "Передан некорректный _id карточки",

	MsgRouteNotFound:    "Страница не найдена",
	MsgMethodNotAllowed: "Метод не поддерживается",
}

var printers = newPrinters()

func newPrinters() map[language.Tag]*message.Printer {
	b := catalog.NewBuilder(catalog.Fallback(language.English))
	for key, ru := range ruMessages {
		_ = b.SetString(language.Russian, key, ru)
		_ = b.SetString(language.English, key, key)
	}
	out := make(map[language.Tag]*message.Printer, len(supported))
	for _, tag := range supported {
		out[tag] = message.NewPrinter(tag, message.Catalog(b))
	}
	return out
}

// negotiate picks the supported language for an Accept-Language value.
func negotiate(acceptLanguage string) language.Tag {
	tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(tags) == 0 {
		return language.English
	}
	_, idx, conf := matcher.Match(tags...)
	if conf == language.No {
		return language.English
	}
	return supported[idx]
}

// localize translates key for the request's language. Unknown keys are
// returned unchanged.
func localize(c *gin.Context, key string) string {
	tag := language.English
	if c != nil && c.Request != nil {
		tag = negotiate(c.GetHeader("Accept-Language"))
	}
	if _, ok := ruMessages[key]; !ok {
		return key
	}
	return printers[tag].Sprintf(key)
}
