package submit

// Package submit owns the submission state machine. A Controller admits one
// clip submission at a time, runs the validate, resolve, fetch and save steps
// in order and reports an explicit outcome for every exit path.
