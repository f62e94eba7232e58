// Package tree implements the configuration tree shared by every part of
// the kernel.
//
// A tree is a [Map] of section names to [Value]s. A Value is an explicit
// tagged union of null, scalar, list and nested map, so merge semantics are
// defined per kind pair and never depend on implicit coercion:
//
//   - map + map: merged key by key, recursively ([MergeMaps]);
//   - any other pair: the right-hand value replaces the left one, which
//     means lists are replaced wholesale, not concatenated.
//
// Use [FromAny] to convert data decoded from JSON, YAML, TOML or HCL and
// [Value.Interface] to convert back.
package tree
