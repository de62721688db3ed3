// Package converters contains the format converters that transform raw
// source documents into markdown renderings, plus the shared block
// model they render through.
//
// Each format lives in its own subpackage (pdf, epub) and implements
// driven.Converter. Converters extract an ordered sequence of Blocks
// (headings and paragraphs) and hand them to the renderers here:
//
//   - RenderStyle: flat, style-normalised markdown
//   - RenderHier: hierarchical outline markdown (feeds chunk curation)
//   - RenderTitles: heading list for titles.md
//
// Converters never write artifacts themselves; the conversion service
// commits their output transactionally.
package converters
