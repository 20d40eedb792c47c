package handlers

import (
	"encoding/base64"
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
)

const flashCookie = "comlab_flash"

// Flash levels.
const (
	FlashSuccess = "success"
	FlashError   = "error"
	FlashInfo    = "info"
)

// Flash is a one-shot message shown on the next page load.
type Flash struct {
	Level   string `json:"level"`
	Message string `json:"message"`
}

func setFlash(c *gin.Context, level, message string) {
	raw, err := json.Marshal(Flash{Level: level, Message: message})
	if err != nil {
		return
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(flashCookie, base64.RawURLEncoding.EncodeToString(raw), 300, "/", "", false, true)
}

// popFlash returns the pending flash, if any, and clears it.
func popFlash(c *gin.Context) *Flash {
	value, err := c.Cookie(flashCookie)
	if err != nil || value == "" {
		return nil
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(flashCookie, "", -1, "/", "", false, true)

	raw, err := base64.RawURLEncoding.DecodeString(value)
	if err != nil {
		return nil
	}
	var f Flash
	if err := json.Unmarshal(raw, &f); err != nil || f.Message == "" {
		return nil
	}
	return &f
}

func redirectWithFlash(c *gin.Context, location, level, message string) {
	setFlash(c, level, message)
	c.Redirect(http.StatusFound, location)
}
