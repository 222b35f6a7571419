package pages

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/expertgati/movers-web/pkg/token"
)

const (
	flashCookie = "gati_notice"
	flashMaxAge = 5 * 60
)

// Notice is a one-shot message shown after a redirect.
type Notice struct {
	Kind    string
	Message string
}

// Flash carries a Notice across a POST-redirect-GET in a signed cookie.
type Flash struct {
	signer *token.Signer
	secure bool
}

func NewFlash(signer *token.Signer, secure bool) *Flash {
	return &Flash{signer: signer, secure: secure}
}

func (f *Flash) Set(c *gin.Context, n Notice) error {
	tok, err := f.signer.Sign(token.Payload{Kind: n.Kind, Message: n.Message})
	if err != nil {
		return err
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(flashCookie, tok, flashMaxAge, "/", "", f.secure, true)
	return nil
}

// Pop returns the pending notice, if any, and clears the cookie. Tampered or expired
// cookies are dropped silently.
func (f *Flash) Pop(c *gin.Context) *Notice {
	raw, err := c.Cookie(flashCookie)
	if err != nil || raw == "" {
		return nil
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(flashCookie, "", -1, "/", "", f.secure, true)

	p, err := f.signer.Verify(raw)
	if err != nil {
		return nil
	}
	return &Notice{Kind: p.Kind, Message: p.Message}
}
