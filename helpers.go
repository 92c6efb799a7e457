package mocksmtpd

import (
	"strings"
)

// command is line received from client split into verb and its arguments
type command struct {
	line   string
	action string
	fields []string
}

// parseLine used to parse string into command
func parseLine(line string) (cmd command) {
	cmd.line = line
	cmd.fields = strings.Fields(line)
	if len(cmd.fields) > 0 {
		cmd.action = strings.ToUpper(cmd.fields[0])
	}
	return
}
