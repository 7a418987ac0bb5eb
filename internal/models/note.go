package model

import (
	"time"

	"quadro-expedicao.com/quadro-expedicao/internal/constants"
)

// Note is an append-only observation on a task. The list that holds it is
// owned by exactly one task row and serialized as JSON alongside it.
type Note struct {
	Text      string         `json:"texto"`
	Author    string         `json:"autor"`
	Role      constants.Role `json:"role,omitempty"`
	Timestamp time.Time      `json:"timestamp"`
}
