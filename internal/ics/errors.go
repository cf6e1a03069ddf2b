package ics

import "errors"

// ErrExport wraps I/O failures while writing an export.
var ErrExport = errors.New("export calendar")

// ErrMalformed reports a document that cannot be read back.
var ErrMalformed = errors.New("malformed calendar")
