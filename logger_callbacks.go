package torcrypto

// LoggerCallbacks lets a caller redirect facade diagnostics instead of
// having them written to the process log. Its onLog field is unexported,
// so only code inside this package can set the callback.
//
// Moved from: logger.go
type LoggerCallbacks struct {
	onLog func(level int, tag string, message string)
}
