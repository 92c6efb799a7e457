package internal

import (
	"fmt"
	"net/textproto"
)

// Exchange sends command via textproto and returns text of reply, lines of
// multiline reply are joined by newline
func Exchange(c *textproto.Conn, expectedCode int, format string, args ...any) (string, error) {
	id, err := c.Cmd(format, args...)
	if err != nil {
		return "", err
	}
	c.StartResponse(id)
	defer c.EndResponse(id)
	code, msg, err := c.ReadResponse(expectedCode)
	if err != nil {
		return msg, fmt.Errorf("%q is answered with %d %s: %w", fmt.Sprintf(format, args...), code, msg, err)
	}
	return msg, nil
}

// DoCommand executes command via textproto and checks reply code
func DoCommand(c *textproto.Conn, expectedCode int, format string, args ...any) error {
	_, err := Exchange(c, expectedCode, format, args...)
	return err
}
