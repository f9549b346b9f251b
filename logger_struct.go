package torcrypto

// Logger provides the facade's error-logging bridge (spec component J).
//
// Moved from: logger.go, matching the teacher's split of struct
// definition from behavior.
type Logger struct {
	callbacks *LoggerCallbacks
	logLevel  int
}
