// Package codegen turns a mapper declaration into Go source.
//
// Resolve checks the declaration against the loaded struct shapes and fixes
// the field assignments of every mapper. Generator renders the result with
// text/template and go/format, so output is deterministic and gofmt-clean.
//
// A generated mapper is a plain function that copies fields one by one; no
// reflection happens at run time.
package codegen
