package builder

import "errors"

// Sentinel kinds for builder errors.
var (
	ErrSubmissionsDirMissing = errors.New("submissions directory not found")
	ErrSupportDirMissing     = errors.New("support directory not found")
	ErrBuildFailed           = errors.New("image build failed")
	ErrStaging               = errors.New("staging support directory failed")
	ErrCleanup               = errors.New("removing staged directory failed")
)
