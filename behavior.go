package mocksmtpd

import (
	"errors"
	"fmt"
	"strings"
	"sync"
)

// ErrInvalidBehavior is returned by Behavior.Validate
var ErrInvalidBehavior = errors.New("invalid behavior")

// Command is SMTP command mock behavior can be attached to
type Command string

const (
	// CommandMailFrom matches MAIL FROM, input is sender address
	CommandMailFrom Command = "MAIL FROM"
	// CommandRcptTo matches RCPT TO, input is recipient address
	CommandRcptTo Command = "RCPT TO"
	// CommandData matches DATA, input is message body
	CommandData Command = "DATA"
)

// Operator defines how Condition is matched against command input
type Operator string

const (
	// OperatorMatchAll matches any input
	OperatorMatchAll Operator = "matchAll"
	// OperatorContains matches input containing Condition.MatchingValue
	OperatorContains Operator = "contains"
)

// Condition decides if Behavior is applied to command input
type Condition struct {
	Operator      Operator `json:"operator"`
	MatchingValue string   `json:"matchingValue,omitempty"`
}

// Matches returns true, if input satisfies condition
func (c Condition) Matches(input string) bool {
	switch c.Operator {
	case OperatorMatchAll:
		return true
	case OperatorContains:
		return strings.Contains(input, c.MatchingValue)
	default:
		return false
	}
}

// Response is reply mock server gives when Behavior is applied
type Response struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// Err converts response into value Recorder returns. 421 drops connection, other
// 4xx and 5xx codes reject command, everything else accepts it.
func (r Response) Err() error {
	switch {
	case r.Code == 421:
		return DropConnectionError{Code: r.Code, Message: r.Message}
	case r.Code >= 400:
		return ErrorSMTP{Code: r.Code, Message: r.Message}
	default:
		return nil
	}
}

// Behavior makes mock server answer command matching Condition with Response.
// If NumberOfAnswers is nil, behavior is applied any number of times, otherwise it is
// forgotten after being applied NumberOfAnswers times.
type Behavior struct {
	Command         Command   `json:"command"`
	Condition       Condition `json:"condition"`
	Response        Response  `json:"response"`
	NumberOfAnswers *int      `json:"numberOfAnswer,omitempty"`
}

// Validate checks if behavior can be applied by server
func (b Behavior) Validate() error {
	switch b.Command {
	case CommandMailFrom, CommandRcptTo, CommandData:
	default:
		return fmt.Errorf("%w: unknown command %q", ErrInvalidBehavior, b.Command)
	}
	switch b.Condition.Operator {
	case OperatorMatchAll:
	case OperatorContains:
		if b.Condition.MatchingValue == "" {
			return fmt.Errorf("%w: empty matching value for %s", ErrInvalidBehavior, OperatorContains)
		}
	default:
		return fmt.Errorf("%w: unknown operator %q", ErrInvalidBehavior, b.Condition.Operator)
	}
	if b.Response.Code < 200 || b.Response.Code > 599 {
		return fmt.Errorf("%w: response code %v is out of range", ErrInvalidBehavior, b.Response.Code)
	}
	if b.NumberOfAnswers != nil && *b.NumberOfAnswers <= 0 {
		return fmt.Errorf("%w: number of answers should be positive", ErrInvalidBehavior)
	}
	return nil
}

// Behaviors is storage of Behavior shared by all server transactions
type Behaviors struct {
	mu    sync.Mutex
	items []Behavior
}

// Set replaces all behaviors
func (b *Behaviors) Set(behaviors []Behavior) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.items = make([]Behavior, 0, len(behaviors))
	for i := range behaviors {
		item := behaviors[i]
		if item.NumberOfAnswers != nil {
			if *item.NumberOfAnswers <= 0 {
				continue
			}
			remaining := *item.NumberOfAnswers
			item.NumberOfAnswers = &remaining
		}
		b.items = append(b.items, item)
	}
}

// List returns copy of behaviors being active
func (b *Behaviors) List() []Behavior {
	b.mu.Lock()
	defer b.mu.Unlock()
	ret := make([]Behavior, len(b.items))
	for i := range b.items {
		ret[i] = b.items[i]
		if b.items[i].NumberOfAnswers != nil {
			remaining := *b.items[i].NumberOfAnswers
			ret[i].NumberOfAnswers = &remaining
		}
	}
	return ret
}

// Clear forgets all behaviors
func (b *Behaviors) Clear() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.items = nil
}

// Match finds first behavior for command matching input and consumes one of its answers
func (b *Behaviors) Match(command Command, input string) (response Response, found bool) {
	if b == nil {
		return Response{}, false
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	for i := range b.items {
		if b.items[i].Command != command || !b.items[i].Condition.Matches(input) {
			continue
		}
		response = b.items[i].Response
		if b.items[i].NumberOfAnswers != nil {
			*b.items[i].NumberOfAnswers--
			if *b.items[i].NumberOfAnswers <= 0 {
				b.items = append(b.items[:i], b.items[i+1:]...)
			}
		}
		return response, true
	}
	return Response{}, false
}

// behave returns error mock behavior prescribes for command, or nil
func (b *Behaviors) behave(command Command, input string) error {
	response, found := b.Match(command, input)
	if !found {
		return nil
	}
	return response.Err()
}
