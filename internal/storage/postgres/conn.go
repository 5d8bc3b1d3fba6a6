package postgres

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	pq "github.com/lib/pq"
)

var (
	ErrInvalidConnectionString = errors.New("invalid PostgreSQL connection string")
	ErrEmbeddedCredentials     = errors.New("connection string must not contain a password")
)

// connString is either a postgres:// URL or a key=value DSN. Keys are matched
// case-insensitively in both forms.
type connString struct {
	u     *url.URL
	pairs [][2]string
}

func isURL(s string) bool {
	return strings.HasPrefix(s, "postgres://") || strings.HasPrefix(s, "postgresql://")
}

func parseConnString(s string) (connString, error) {
	s = strings.TrimSpace(s)
	if isURL(s) {
		u, err := url.Parse(s)
		if err != nil {
			return connString{}, fmt.Errorf("%w: failed to parse connection URL: %v", ErrInvalidConnectionString, err)
		}
		return connString{u: u}, nil
	}
	var c connString
	for _, field := range strings.Fields(s) {
		k, v, ok := strings.Cut(field, "=")
		if !ok {
			continue
		}
		c.pairs = append(c.pairs, [2]string{strings.TrimSpace(k), v})
	}
	return c, nil
}

func (c connString) has(key string) bool {
	if c.u != nil {
		for k := range c.u.Query() {
			if strings.EqualFold(k, key) {
				return true
			}
		}
		return false
	}
	for _, kv := range c.pairs {
		if strings.EqualFold(kv[0], key) {
			return true
		}
	}
	return false
}

// withDefault sets key unless it is already present.
func (c connString) withDefault(key, value string) connString {
	if c.has(key) {
		return c
	}
	if c.u != nil {
		u := *c.u
		q := u.Query()
		q.Set(key, value)
		u.RawQuery = q.Encode()
		return connString{u: &u}
	}
	pairs := append([][2]string(nil), c.pairs...)
	return connString{pairs: append(pairs, [2]string{key, value})}
}

func (c connString) hasPassword() bool {
	if c.u != nil {
		_, set := c.u.User.Password()
		return set
	}
	return c.has("password")
}

func (c connString) String() string {
	if c.u != nil {
		return c.u.String()
	}
	fields := make([]string, len(c.pairs))
	for i, kv := range c.pairs {
		fields[i] = kv[0] + "=" + kv[1]
	}
	return strings.Join(fields, " ")
}

// ValidateConnString accepts a PostgreSQL URL or DSN without a password.
// Passwords belong in the keyring or CHOREWHEEL_DB_CONNECTION.
func ValidateConnString(s string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("%w: connection string cannot be empty", ErrInvalidConnectionString)
	}
	if _, err := pq.NewConnector(s); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConnectionString, err)
	}

	c, err := parseConnString(s)
	if err != nil {
		return err
	}
	if c.hasPassword() {
		return ErrEmbeddedCredentials
	}
	if c.u != nil && c.u.Host == "" && c.u.User == nil && strings.Trim(c.u.Path, "/") == "" {
		return fmt.Errorf("%w: connection URL is incomplete", ErrInvalidConnectionString)
	}
	return nil
}

// Redact masks the password in s, if any, for display.
func Redact(s string) string {
	c, err := parseConnString(s)
	if err != nil || !c.hasPassword() {
		return s
	}
	if c.u != nil {
		u := *c.u
		u.User = url.UserPassword(u.User.Username(), "****")
		return u.String()
	}
	for i, kv := range c.pairs {
		if strings.EqualFold(kv[0], "password") {
			c.pairs[i][1] = "****"
		}
	}
	return c.String()
}
