package screen

import (
	"errors"
	"net/url"

	"github.com/abhisek/tango/internal/cardclient"
)

// LoadErrorText is the message shown when the card pool cannot be fetched.
func LoadErrorText(err error) string {
	var se *cardclient.StatusError
	var ue *url.Error
	if errors.As(err, &se) || errors.As(err, &ue) {
		return "could not reach the card service"
	}
	return "could not load cards"
}
