package ui

// TestsFoundMsg is sent when test gathering has finished.
type TestsFoundMsg struct {
	Err      error
	Tests    []string
	Rejected int // reftests skipped
}
