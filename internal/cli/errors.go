package cli

import "errors"

// Errors returned by command argument handling.
var (
	ErrNotFound    = errors.New("deliverable not found")
	ErrAmbiguousID = errors.New("ambiguous id")

	errIDRequired      = errors.New("id is required")
	errTitleRequired   = errors.New("title is required")
	errFileRequired    = errors.New("file is required")
	errNoChanges       = errors.New("nothing to change (use --title, --due or --in)")
	errDueConflict     = errors.New("--due and --in cannot be used together")
	errDueInPast       = errors.New("due time must be in the future")
	errInvalidDue      = errors.New("invalid due time")
	errInvalidDuration = errors.New("invalid duration")
	errEmptyDataDir    = errors.New("data-dir cannot be empty")
	errNoCommand       = errors.New("no command provided")
	errUnknownCommand  = errors.New("unknown command")
)
