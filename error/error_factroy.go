package error

import "errors"

var (
	InvalidArguments = errors.New("invalid arguments")
	CommandNotFound  = errors.New("command not found")
	RegionNotFound   = errors.New("region not found")
	NotScanServer    = errors.New("not a memscan server")
)
