// Package text produces the shaped glyph runs that a display list records
// with DrawTextBlob.
//
// A Blob is an immutable run of positioned glyphs together with its
// conservative bounds. Blobs are shared by reference: recording one into
// a display list does not copy it, and two lists only compare equal on
// the same Blob pointer.
//
// Blobs come from a Shaper, which splits text into bidi runs with
// golang.org/x/text/unicode/bidi and shapes each run with the HarfBuzz
// port in github.com/go-text/typesetting:
//
//	shaper, err := text.NewShaper(goregular.TTF)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	blob, err := shaper.Shape("Hello, world", 16)
//
// Shaped blobs are cached by (size, text), so a UI that redraws the same
// labels every frame reuses the same Blob and keeps its display lists
// equal across frames.
package text
