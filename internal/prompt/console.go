package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
)

// Prompter shows a question and blocks until the operator answers.
type Prompter interface {
	Ask(text string) (string, error)
}

type Console struct {
	r *bufio.Reader
	w io.Writer
}

func NewConsole(r io.Reader, w io.Writer) *Console {
	return &Console{r: bufio.NewReader(r), w: w}
}

// Ask writes text without a newline and returns the next input line
// without its line terminator. A final line without a newline is accepted.
func (c *Console) Ask(text string) (string, error) {
	if _, err := io.WriteString(c.w, text); err != nil {
		return "", fmt.Errorf("write prompt: %w", err)
	}
	line, err := c.r.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && line != "" {
			return strings.TrimRight(line, "\r\n"), nil
		}
		return "", fmt.Errorf("read answer: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}
