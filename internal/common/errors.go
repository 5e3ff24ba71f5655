// Package common defines shared constants and sentinel errors used across
// the console. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Local validation errors. These are resolved by re-presenting the
	// input surface; nothing is sent to a collaborator when they occur.
	ErrMissingCredential = errors.New("missing credential")
	ErrInvalidFileType   = errors.New("invalid file type")
	ErrFileTooLarge      = errors.New("file too large")
	ErrIncompleteDraft   = errors.New("incomplete draft")

	// Collaborator request errors. The collaborator's own message, when
	// present, is wrapped alongside these so it can be surfaced verbatim.
	ErrAuthRequestFailed   = errors.New("authentication request failed")
	ErrUploadFailed        = errors.New("upload failed")
	ErrRecordRequestFailed = errors.New("record request failed")
	ErrDeleteRequestFailed = errors.New("delete request failed")
)
