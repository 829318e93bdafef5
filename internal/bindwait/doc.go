// Package bindwait discovers the port a child process has bound by polling
// lsof. Processes rarely report the port they picked, and reimplementing lsof
// would mean parsing most of /proc, so the Discoverer shells out until lsof
// reports a socket or the deadline passes.
package bindwait
