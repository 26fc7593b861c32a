// Package render serializes composed documents to SVG and rasterizes them.
//
// # Vector output
//
// [ToVectorText] writes a document in a single canonical form: fixed element
// order (style, background, text), fixed attribute order, and numbers
// rounded to four decimals. The output is self-contained when the document
// embeds its font. [ParseVectorText] reads that form back, so
//
//	ToVectorText(ParseVectorText(ToVectorText(doc))) == ToVectorText(doc)
//
// # Raster output
//
// A [Rasterizer] converts vector text to PNG at an exact pixel size.
// [NativeRasterizer] draws with fogleman/gg using the embedded font and
// needs no external tools. [RSVGRasterizer] pipes the document through
// rsvg-convert. Either fails with a RasterizationError and never returns
// partial output.
package render
