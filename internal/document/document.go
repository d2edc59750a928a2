// Package document builds the deployment descriptor text and writes it to
// disk.
//
// Every document is a single <sailpoint> root element preceded by a fixed
// XML declaration and DOCTYPE. A Document moves through its states strictly
// in order:
//
//	Start -> HeaderWritten -> Processing -> FooterWritten -> Done
//
// Processing is entered on the first body line and may be skipped when the
// body is empty.
package document

import (
	"errors"
	"fmt"
	"runtime"
	"strings"
)

// Fixed lines of every deployment document.
const (
	XMLDeclaration = `<?xml version='1.0' encoding='UTF-8'?>`
	DocType        = `<!DOCTYPE sailpoint PUBLIC "sailpoint.dtd" "sailpoint.dtd">`
	RootOpen       = `<sailpoint>`
	RootClose      = `</sailpoint>`
)

// LineSeparator is the platform line separator, fixed at startup.
var LineSeparator = platformLineSeparator()

func platformLineSeparator() string {
	if runtime.GOOS == "windows" {
		return "\r\n"
	}
	return "\n"
}

// ErrInvalidState is returned when a Document operation is called out of order.
var ErrInvalidState = errors.New("invalid document state")

// State is the lifecycle position of a Document.
type State int

const (
	Start State = iota
	HeaderWritten
	Processing
	FooterWritten
	Done
)

func (s State) String() string {
	switch s {
	case Start:
		return "start"
	case HeaderWritten:
		return "header_written"
	case Processing:
		return "processing"
	case FooterWritten:
		return "footer_written"
	case Done:
		return "done"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Document accumulates the text of one deployment descriptor.
type Document struct {
	sep   string
	state State
	lines int
	body  strings.Builder
}

// NewWithSeparator returns an empty Document that terminates lines with sep.
func NewWithSeparator(sep string) *Document {
	return &Document{sep: sep}
}

// State returns the current lifecycle state.
func (d *Document) State() State { return d.state }

// Lines returns the number of body lines appended so far.
func (d *Document) Lines() int { return d.lines }

// WriteHeader writes the XML declaration, the DOCTYPE and the opening root tag.
func (d *Document) WriteHeader() error {
	if err := d.expect("write header", Start); err != nil {
		return err
	}
	d.body.WriteString(XMLDeclaration)
	d.body.WriteString(d.sep)
	d.body.WriteString(DocType)
	d.body.WriteString(d.sep)
	d.body.WriteString(RootOpen)
	d.body.WriteString(d.sep)
	d.state = HeaderWritten
	return nil
}

// AppendLine adds one body line terminated by the line separator.
func (d *Document) AppendLine(line string) error {
	if err := d.expect("append line", HeaderWritten, Processing); err != nil {
		return err
	}
	d.body.WriteString(line)
	d.body.WriteString(d.sep)
	d.lines++
	d.state = Processing
	return nil
}

// WriteFooter writes the closing root tag. No separator follows it.
func (d *Document) WriteFooter() error {
	if err := d.expect("write footer", HeaderWritten, Processing); err != nil {
		return err
	}
	d.body.WriteString(RootClose)
	d.state = FooterWritten
	return nil
}

// Finish marks the document as complete and returns its text.
func (d *Document) Finish() (string, error) {
	if err := d.expect("finish", FooterWritten); err != nil {
		return "", err
	}
	d.state = Done
	return d.body.String(), nil
}

func (d *Document) expect(op string, allowed ...State) error {
	for _, s := range allowed {
		if d.state == s {
			return nil
		}
	}
	return fmt.Errorf("%w: cannot %s in state %s", ErrInvalidState, op, d.state)
}
