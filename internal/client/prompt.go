package client

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/atinyakov/feather/internal/models"
)

// PromptAnswer shows q on out and reads a single line answer from in.
// The trailing newline is dropped; other whitespace is kept since answers
// are compared exactly.
func PromptAnswer(in io.Reader, out io.Writer, q models.Question) (string, error) {
	fmt.Fprintf(out, "Question #%d: %s\nAnswer: ", q.Index, q.Text)

	scanner := bufio.NewScanner(in)
	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return "", fmt.Errorf("read answer: %w", err)
		}
		return "", errors.New("no answer given")
	}
	return strings.TrimSuffix(scanner.Text(), "\r"), nil
}
