package common

import "errors"

var (
	ErrInvalidContentsURL = errors.New("invalid repository contents URL")
	ErrUnexpectedStatus   = errors.New("unexpected HTTP status")
	ErrInvalidManifest    = errors.New("invalid manifest")
	ErrUnknownTab         = errors.New("unknown tab")
)
