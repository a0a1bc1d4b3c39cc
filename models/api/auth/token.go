package authapimodels

import (
	"strings"

	"github.com/pkg/errors"
)

type TokenRequest struct {
	Sub    string   `json:"sub"`
	Name   string   `json:"name"`
	Groups []string `json:"groups"`
}

func (r TokenRequest) Validate() error {
	if len(strings.TrimSpace(r.Sub)) == 0 {
		return errors.New("sub must not be empty")
	}
	return nil
}

type JWTResponse struct {
	Token string `json:"token"`
}
