package config

import "errors"

// ErrNilPointer is returned when a nil pointer is handed to Load.
var ErrNilPointer = errors.New("config: nil pointer")

// ErrParse is returned when the environment cannot be parsed into the
// target struct. The underlying parser error is joined for detail.
var ErrParse = errors.New("config: parse environment")
