package visibility

import "errors"

var (
	ErrNotObserved  = errors.New("target not observed")
	ErrDisconnected = errors.New("observer disconnected")
	ErrRatio        = errors.New("intersection ratio out of range")
)
