package errs

import "errors"

var (
	SubmissionNotFound = errors.New("submission not found")
	GradeOutOfRange    = errors.New("grade out of range")
	GraderNotFound     = errors.New("grader not found")
	AuthorNotFound     = errors.New("author not found")
)
