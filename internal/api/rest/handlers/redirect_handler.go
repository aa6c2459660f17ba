package handlers

import (
	"html/template"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/cswni/stripe-server/pkg/logger"
)

// redirectTemplate immediately navigates the browser to the configured
// deep link, with a manual fallback link.
var redirectTemplate = template.Must(template.New("redirect").Parse(`<!DOCTYPE html>
<html lang="en">
  <head>
    <meta charset="UTF-8">
    <title>Redirecting...</title>
    <meta http-equiv="refresh" content="0; url={{.DeepLink}}" />
  </head>
  <body>
    <p>If you are not redirected automatically, click <a href="{{.DeepLink}}">here</a>.</p>
    <script>
      window.location.href = {{.DeepLink}};
    </script>
  </body>
</html>
`))

// RedirectHandler serves the deep-link redirect page.
type RedirectHandler struct {
	deepLink string
	log      *logger.Logger
}

// NewRedirectHandler creates a new RedirectHandler for the given deep link.
func NewRedirectHandler(deepLink string, log *logger.Logger) *RedirectHandler {
	return &RedirectHandler{
		deepLink: deepLink,
		log:      log,
	}
}

// Redirect handles GET /redirect
func (h *RedirectHandler) Redirect(c *gin.Context) {
	c.Status(http.StatusOK)
	c.Header("Content-Type", "text/html; charset=utf-8")

	// The deep link comes from configuration, not request input; template.URL
	// keeps the custom scheme from being filtered out of the href.
	if err := redirectTemplate.Execute(c.Writer, gin.H{"DeepLink": template.URL(h.deepLink)}); err != nil {
		h.log.Errorw("Failed to render redirect page", "error", err)
	}
}
