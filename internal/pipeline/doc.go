// Package pipeline implements the Markdown-to-styled-HTML conversion pipeline.
//
// Stages, in order:
//   - Preprocess: byte order mark removal and line ending normalization
//   - Parse: a line dispatcher with explicit Normal/InCode state and a flat
//     list context, producing []Block
//   - Renderer: one HTML fragment per block; text spans go through the
//     ordered InlineRenderer chain
//   - Assemble: container, window header and footer chrome
//
// Every element carries its theme style inline (style="..."), because the
// rich-text editors this output is pasted into drop <style> blocks and
// class attributes. Image resolution happens before parsing, in package
// images. Browser snapshots are handled by the root md2wx package.
package pipeline
