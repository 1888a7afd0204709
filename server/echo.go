package server

import (
	"strings"

	"github.com/a-h/templ"
	"github.com/labstack/echo/v4"
)

// Mount routes the viewer's prefix on an Echo instance. A viewer without a
// logger logs through e.Logger.
//
//	e := echo.New()
//	server.Mount(e, v)
func Mount(e *echo.Echo, v *Viewer) {
	if v.logger == nil {
		v.logger = e.Logger
	}
	e.Any(v.prefix, echo.WrapHandler(v))
	e.Any(v.prefix+"/*", echo.WrapHandler(v))
}

// MountGroup routes the viewer on an Echo group so it shares the group's
// middleware. The viewer's base path must include the group prefix, since
// the viewer matches against the full request path:
//
//	g := e.Group("/app", authMiddleware)
//	v := server.New("compare", enc, server.WithPath("/app/_c/"))
//	server.MountGroup(g, "/app", v)
func MountGroup(g *echo.Group, groupPrefix string, v *Viewer) {
	rel := strings.TrimPrefix(v.prefix, groupPrefix)
	g.Any(rel, echo.WrapHandler(v))
	g.Any(rel+"/*", echo.WrapHandler(v))
}

// RenderEcho writes a templ component to the Echo response.
//
//	func handler(c echo.Context) error {
//	    return server.RenderEcho(c, server.Page("Compare", view))
//	}
func RenderEcho(c echo.Context, component templ.Component) error {
	c.Response().Header().Set("Content-Type", "text/html; charset=utf-8")
	return component.Render(c.Request().Context(), c.Response())
}
