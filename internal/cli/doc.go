// Package cli is responsible for parsing command-line arguments, loading the
// optional build descriptor and handling process-level concerns like exit
// codes. It translates them into the application's internal configuration.
package cli
