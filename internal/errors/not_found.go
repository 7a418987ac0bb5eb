package errors

import "net/http"

var ErrPickingNotFound = &Exception{
	Message:    "Separação não encontrada.",
	StatusCode: http.StatusNotFound,
}

var ErrVerificationNotFound = &Exception{
	Message:    "Conferência não encontrada.",
	StatusCode: http.StatusNotFound,
}

var ErrTrashItemNotFound = &Exception{
	Message:    "Item da lixeira não encontrado.",
	StatusCode: http.StatusNotFound,
}
