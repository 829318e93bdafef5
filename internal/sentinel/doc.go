// Package sentinel defines Error, a string-backed error type for constant
// sentinel errors.
//
// Errors created with errors.New must live in package variables, which any
// importer can overwrite. An Error can be declared const instead, and still
// matches through wrapped chains with errors.Is because the type is
// comparable.
package sentinel
