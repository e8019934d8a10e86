package grammar

import "errors"

// ErrCheckFailed indicates the grammar engine could not analyze the text.
var ErrCheckFailed = errors.New("grammar check failed")
