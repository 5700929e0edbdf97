// Package calc computes native (C) size, alignment and field offsets for
// contract types.
//
// # Layout Rules
//
//   - Scalars: size equals alignment (u8=1, s32=4, f64=8, char=4)
//   - Records: fields laid out sequentially with padding for alignment,
//     total size rounded up to the largest field alignment
//   - Anything else (strings, lists, variants) has no fixed native layout
//
// These are the rules a C compiler applies to a struct of the same fields,
// and the rules Go applies to the generated struct on 64-bit targets.
//
// This package is internal to the layout planner.
package calc
