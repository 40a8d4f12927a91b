package errors

import "net/http"

var ErrWorkerNotFound = &Exception{
	Message:    "worker not found",
	StatusCode: http.StatusNotFound,
}

var ErrTeamNotFound = &Exception{
	Message:    "team not found",
	StatusCode: http.StatusNotFound,
}

var ErrProjectNotFound = &Exception{
	Message:    "project not found",
	StatusCode: http.StatusNotFound,
}

var ErrTaskNotFound = &Exception{
	Message:    "task not found",
	StatusCode: http.StatusNotFound,
}

var ErrPositionNotFound = &Exception{
	Message:    "position not found",
	StatusCode: http.StatusNotFound,
}

var ErrTaskTypeNotFound = &Exception{
	Message:    "task type not found",
	StatusCode: http.StatusNotFound,
}
