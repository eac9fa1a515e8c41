package report

import "errors"

// Sentinel kinds for report errors.
var (
	ErrStoreOpen = errors.New("open results store failed")
	ErrQuery     = errors.New("report query failed")
	ErrRender    = errors.New("report rendering failed")
)
