package main

// Exit codes for the CLI
const (
	ExitSuccess        = 0
	ExitGeneralError   = 1
	ExitInvalidArgs    = 2
	ExitConfigError    = 3
	ExitNotFound       = 4
	ExitUnauthorized   = 5
	ExitAPIError       = 6
	ExitTransportError = 7
)
