package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

const (
	cartCookieName = "cartId"
	ageCookieName  = "age_verified"

	cartCookieMaxAge = 30 * 24 * 60 * 60
	ageCookieMaxAge  = 24 * 60 * 60
)

func cartIDFromCookie(c *gin.Context) string {
	id, err := c.Cookie(cartCookieName)
	if err != nil {
		return ""
	}
	return id
}

func setCartCookie(c *gin.Context, cartID string) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(cartCookieName, cartID, cartCookieMaxAge, "/", "", false, true)
}

func setAgeCookie(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(ageCookieName, "true", ageCookieMaxAge, "/", "", false, true)
}

func ageVerified(c *gin.Context) bool {
	v, err := c.Cookie(ageCookieName)
	return err == nil && v == "true"
}
