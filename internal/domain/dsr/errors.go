package dsr

import "errors"

var ErrInvalidRequestKind = errors.New("invalid request kind")
