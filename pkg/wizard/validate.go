package wizard

import (
	"errors"
	"net/url"
	"regexp"
	"strings"

	"github.com/goliatone/go-portfolio/pkg/model"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+$`)

// validateURL accepts empty input or an absolute URL, the same rule a browser
// applies to <input type="url">.
func validateURL(value string) error {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}
	parsed, err := url.Parse(value)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return errors.New("enter an absolute URL such as https://example.com")
	}
	return nil
}

// validateEmail accepts empty input or local@domain.
func validateEmail(value string) error {
	value = strings.TrimSpace(value)
	if value == "" || emailPattern.MatchString(value) {
		return nil
	}
	return errors.New("enter an address such as name@example.com")
}

func validatorFor(kind model.LinkKind) func(string) error {
	switch kind {
	case model.LinkMailto:
		return validateEmail
	case model.LinkURL:
		return validateURL
	}
	return nil
}
