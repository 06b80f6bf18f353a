package domain

import "errors"

var ErrStoreNotFound = errors.New("store not found")
