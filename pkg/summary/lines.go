package summary

import (
	"bufio"
	"io"
	"strings"
)

// scanLines reads lines from an io.Reader and calls fn for each.
// A trailing carriage return is dropped so CRLF logs behave like LF logs.
func scanLines(r io.Reader, fn func(string)) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		fn(strings.TrimSuffix(scanner.Text(), "\r"))
	}
	return scanner.Err()
}
