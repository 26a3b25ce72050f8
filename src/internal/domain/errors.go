package domain

import "errors"

var ErrRecordNotFound = errors.New("Record not found")

// ErrShortRecord marks a flat-file line with fewer than nine fields.
// Loaders may skip such lines but must not decode them into empty records.
var ErrShortRecord = errors.New("short record")

// ErrCorruptRecord marks a line whose fields cannot be parsed, which
// aborts a load.
var ErrCorruptRecord = errors.New("corrupt record")
