package errors

import "net/http"

var ErrPermissionDenied = &Exception{
	Message:    "Permissão negada.",
	StatusCode: http.StatusForbidden,
}
