package linalg

import "errors"

var (
	errSingular        = errors.New("linalg: singular matrix")
	errUnderdetermined = errors.New("linalg: underdetermined system (m<n)")
)
