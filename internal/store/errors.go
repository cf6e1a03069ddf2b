package store

import "errors"

// ErrLoad reports a blob that exists but could not be read or decoded. The
// store continues with an empty collection.
var ErrLoad = errors.New("load deliverables")

// ErrSave reports a failed write. The in-memory collection is kept.
var ErrSave = errors.New("save deliverables")
