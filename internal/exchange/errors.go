package exchange

import (
	"errors"
	"fmt"
)

var errInvalidRate = errors.New("invalid_rate")

func errUnexpectedStatus(code int) error {
	return fmt.Errorf("unexpected_status_%d", code)
}
