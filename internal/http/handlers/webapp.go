// Mini-app handler.
//
// GET /webapp serves the embedded single-page front-end. The page works both
// in an ordinary browser and inside Telegram's embedded browser (the bot
// sends a button that opens this URL as a Telegram WebApp). There is no build
// step: the page is plain HTML+JS talking to the same-origin API.
package handlers

import (
	_ "embed"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"golang.org/x/text/language"
)

//go:embed webapp.html
var webappHTML string

// webappLocales lists the UI languages the page ships strings for. Russian
// first: it is the original audience and the fallback for unknown locales.
var webappLocales = []language.Tag{
	language.Russian,
	language.English,
}

var webappMatcher = language.NewMatcher(webappLocales)

// Webapp godoc
// @ID          webapp
// @Summary     Mini-app page
// @Description Serves the embedded CRM single-page front-end. The UI language is negotiated from Accept-Language (ru/en, defaulting to ru).
// @Tags        Webapp
// @Produce     html
// @Success     200 {string} string "HTML page"
// @Router      /webapp [get]
func (h *Handlers) Webapp(c *gin.Context) {
	tags, _, _ := language.ParseAcceptLanguage(c.GetHeader("Accept-Language"))
	_, idx, _ := webappMatcher.Match(tags...)

	lang := "ru"
	if webappLocales[idx] == language.English {
		lang = "en"
	}

	page := strings.Replace(webappHTML, `lang="%LANG%"`, `lang="`+lang+`"`, 1)
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(page))
}
