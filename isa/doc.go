// Package isa implements the instruction decoder and assembler for the
// register-direct 8086 MOV family handled by dis86.
//
// An instruction is a single 16-bit word, assembled big-endian from the
// byte stream. The decoder extracts the operation, direction, width, mode
// and the two register selector fields, resolves the selectors against a
// per-width register table, and renders "mov dst, src".
//
// The register tables are keyed by raw field value: the reg field is used
// in its shifted form (bits 3-5) and the r/m field unshifted (bits 0-2), so
// a single table serves both selectors without the decoder branching on
// which field it is resolving.
//
// The assembler provides the inverse for building input images, supporting
// equates, raw words, and compile-time expression evaluation.
package isa
