package errors

import "net/http"

var ErrAlreadyAssigned = &Exception{
	Message:    "worker is already assigned to this task",
	StatusCode: http.StatusConflict,
}
