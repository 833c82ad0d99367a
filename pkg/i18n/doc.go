/*
Package i18n translates user-facing strings.

Catalogs are gettext .po files embedded from po/<locale>.po. Message ids are
the English source text; a locale without a translation falls back to the id.
Request handlers install the negotiated language in the context with
[WithTag] (see [FromRequest]) and translate with [Tr] or [TrC]. Named
placeholders use text/template syntax:

	i18n.Tr(ctx, "Hello {{.Name}},", "Name", req.Name)
*/
package i18n
