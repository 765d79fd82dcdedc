package middleware

import (
	"github.com/gin-gonic/gin"

	"telcheck/internal/i18n"
)

// ContextKeyLocale is the gin context key of the negotiated locale.
const ContextKeyLocale = "locale"

// Locale negotiates the response language from ?lang= or Accept-Language
// and stores it in both the gin and the request context.
func Locale(defaultLocale string) gin.HandlerFunc {
	fallback := i18n.Normalize(defaultLocale)
	return func(c *gin.Context) {
		locale := fallback
		if lang := c.Query("lang"); lang != "" {
			locale = i18n.ParseAcceptLanguage(lang, fallback)
		} else if header := c.GetHeader("Accept-Language"); header != "" {
			locale = i18n.ParseAcceptLanguage(header, fallback)
		}

		c.Set(ContextKeyLocale, locale)
		c.Request = c.Request.WithContext(i18n.WithLocale(c.Request.Context(), locale))
		c.Header("Content-Language", locale)
		c.Next()
	}
}

// GetLocale returns the negotiated locale, or the i18n default.
func GetLocale(c *gin.Context) string {
	if l := c.GetString(ContextKeyLocale); l != "" {
		return l
	}
	return i18n.DefaultLocale
}
