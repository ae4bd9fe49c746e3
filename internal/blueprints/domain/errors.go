package domain

import "errors"

var ErrNotFound = errors.New("blueprint not found")
