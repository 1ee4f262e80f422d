package apperr

import "errors"

var (
	ErrNotFound   = errors.New("node not found")
	ErrAmbiguous  = errors.New("multiple files for node")
	ErrExists     = errors.New("already exists")
	ErrNotInRealm = errors.New("not within a realm")
)
