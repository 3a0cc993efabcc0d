package backup

import "errors"

var ErrMalformedBackup = errors.New("malformed backup")
