package services

import (
	"net/mail"
	"net/url"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/dmitrijs2005/gigbook/internal/common"
)

var hexColor = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

// checks collects the first failing field check.
type checks struct{ err error }

func (c *checks) fail(field, reason string) {
	if c.err == nil {
		c.err = common.Invalid(field, reason)
	}
}

func (c *checks) required(field, value string) {
	if strings.TrimSpace(value) == "" {
		c.fail(field, "required")
	}
}

func (c *checks) email(field, value string) {
	if value == "" {
		return
	}
	if _, err := mail.ParseAddress(value); err != nil {
		c.fail(field, "invalid email")
	}
}

func (c *checks) nonNegative(field string, v decimal.Decimal) {
	if v.IsNegative() {
		c.fail(field, "must not be negative")
	}
}

func (c *checks) httpURL(field, value string) {
	u, err := url.Parse(value)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		c.fail(field, "must be an http or https URL")
	}
}

func (c *checks) color(field, value string) {
	if !hexColor.MatchString(value) {
		c.fail(field, "must be #rrggbb")
	}
}
