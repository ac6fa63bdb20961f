package content

import "errors"

// ErrPageNotFound reports that a page path resolved to no valid file.
// Callers treat it as an absence signal rather than a failure: the
// presentation layer renders a 404 from it, never a stack trace.
var ErrPageNotFound = errors.New("content: page not found")
