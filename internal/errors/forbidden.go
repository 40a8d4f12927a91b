package errors

import "net/http"

// ErrForbidden rejects a caller that lacks the required privilege. It is
// returned before any validation runs, so no partial state change can
// have happened.
var ErrForbidden = &Exception{
	Message:    "you do not have permission to perform this action",
	StatusCode: http.StatusForbidden,
}

// ErrLoginRequired rejects an anonymous caller on a page that requires
// an authenticated user.
var ErrLoginRequired = &Exception{
	Message:    "authentication required",
	StatusCode: http.StatusUnauthorized,
}

var ErrInvalidCredentials = &Exception{
	Message:    "invalid username or password",
	StatusCode: http.StatusUnauthorized,
}
