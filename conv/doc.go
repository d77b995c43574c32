// Package conv provides a reflection-based converter for reference kinds:
// slices, maps and structs that carry no textual parse contract of their own.
// Unlike the coercion layers built on top of it, conversion here is
// conventional and failure surfaces as an error.
package conv
