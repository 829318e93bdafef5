// Package lsof builds lsof invocations that report the socket a process has
// bound, and decodes their field-formatted output.
//
// With -Ffn, lsof prints one field per line, each prefixed by its field
// letter. For a process with a single matching socket the report is:
//
//	p19730
//	f123
//	n*:41254
//
// The process id and file descriptor lines are validated for shape only; the
// port comes from the name line, which must bind the wildcard address.
package lsof
