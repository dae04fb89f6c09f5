// Package session wraps the cookie-backed browser session behind an explicit
// context value so handlers never reach into raw session keys.
package session

import (
	"encoding/gob"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

const (
	keyCode      = "code"
	keyUsername  = "username"
	keyDrink     = "drink"
	keyLikesUsed = "likes_used"
	keyAdmin     = "admin_logged_in"
)

func init() {
	gob.Register(Flash{})
}

// Context carries the visitor's redeemed-code identity and the admin flag for
// the lifetime of one browser session. It is never persisted server-side.
type Context struct {
	Code          string
	Username      string
	Drink         string
	LikesUsed     int
	AdminLoggedIn bool
}

// HasCode reports whether the visitor has redeemed a code in this session.
func (c Context) HasCode() bool {
	return c.Code != ""
}

func FromGin(ctx *gin.Context) Context {
	sess := sessions.Default(ctx)

	c := Context{}
	if v, ok := sess.Get(keyCode).(string); ok {
		c.Code = v
	}
	if v, ok := sess.Get(keyUsername).(string); ok {
		c.Username = v
	}
	if v, ok := sess.Get(keyDrink).(string); ok {
		c.Drink = v
	}
	if v, ok := sess.Get(keyLikesUsed).(int); ok {
		c.LikesUsed = v
	}
	if v, ok := sess.Get(keyAdmin).(bool); ok {
		c.AdminLoggedIn = v
	}

	return c
}

func (c Context) Save(ctx *gin.Context) error {
	sess := sessions.Default(ctx)

	sess.Set(keyCode, c.Code)
	sess.Set(keyUsername, c.Username)
	sess.Set(keyDrink, c.Drink)
	sess.Set(keyLikesUsed, c.LikesUsed)
	sess.Set(keyAdmin, c.AdminLoggedIn)

	return sess.Save()
}

// Flash is a one-shot notice surfaced on the next rendered page.
type Flash struct {
	Level string
	Text  string
}

func AddFlash(ctx *gin.Context, level, text string) error {
	sess := sessions.Default(ctx)
	sess.AddFlash(Flash{Level: level, Text: text})

	return sess.Save()
}

// Flashes drains and returns the pending flash messages.
func Flashes(ctx *gin.Context) []Flash {
	sess := sessions.Default(ctx)

	raw := sess.Flashes()
	if len(raw) > 0 {
		// Reading flashes removes them; the deletion has to be saved.
		_ = sess.Save()
	}

	flashes := make([]Flash, 0, len(raw))
	for _, f := range raw {
		if flash, ok := f.(Flash); ok {
			flashes = append(flashes, flash)
		}
	}

	return flashes
}
