// Package idstamp composes identity-document images from a raster template,
// a table of per-field layout rules and the values of one document.
//
// # Overview
//
// A [Compositor] owns three read-only collaborators that are built once per
// process: the [Template], a [text.FontCache] and a [field.Table]. Each call
// to [Compositor.Render] copies the template, stamps every field onto the
// copy and returns it. Renders share no mutable state and may run
// concurrently.
//
//	tmpl, err := idstamp.LoadTemplate("template.png")
//	if err != nil {
//	    return err
//	}
//	fonts := text.NewFontCache(&text.Resolver{Dirs: []string{"fonts"}})
//	c := idstamp.NewCompositor(tmpl, fonts, specs,
//	    idstamp.WithFallbackFamily("Arial"))
//
//	img, err := c.RenderMap(map[string]idstamp.Value{
//	    "surnames":    idstamp.Text("GONZALEZ"),
//	    "nationality": idstamp.Text("VENEZOLANA"),
//	    "photo":       idstamp.Image(portrait),
//	})
//
// # Placement
//
// Every field is anchored at its rectangle origin plus its offset, whatever
// its alignment and whatever the size of the rendered ink. Ink may overflow
// the nominal rectangle; rectangles are drawn only by [Overlay] as a visual
// aid.
//
// # Field kinds
//
//   - text: plain or faux-bold, letter-spaced or blurred per glyph,
//     stretched to a width, scaled per axis, or rotated for vertical slots
//   - date: a "DD/Mes/Mon/YYYY" value laid out token by token
//   - signature: a handwriting family chosen from a whitelist and auto-fitted
//     into its rectangle
//   - photo: an image resized to the rectangle
//   - barcode: Code 128, QR or PDF417
//   - mrz: a 44-character machine readable zone line
//
// # Errors
//
// Problems with a defined fallback are logged through [Logger] and the
// render continues. A field without a spec is skipped and the template is
// left untouched there. A font that cannot be resolved for a strict field
// aborts the render with a [*RenderError] naming the field.
package idstamp
