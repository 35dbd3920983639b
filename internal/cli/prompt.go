package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
)

const maxAttempts = 3

var errTooManyAttempts = errors.New("too many invalid attempts")

type lineResult struct {
	line string
	err  error
}

// lineReader reads input on its own goroutine so a blocked read never hides
// context cancellation from the menu.
type lineReader struct {
	lines chan lineResult
	done  chan struct{}
}

func newLineReader(in io.Reader) *lineReader {
	r := &lineReader{
		lines: make(chan lineResult),
		done:  make(chan struct{}),
	}
	go r.pump(bufio.NewReader(in))
	return r
}

func (r *lineReader) pump(reader *bufio.Reader) {
	defer close(r.lines)
	for {
		line, err := readLine(reader)
		select {
		case r.lines <- lineResult{line: line, err: err}:
		case <-r.done:
			return
		}
		if err != nil {
			return
		}
	}
}

// Close stops the pump once it is between reads.
func (r *lineReader) Close() {
	close(r.done)
}

func (r *lineReader) ReadLine(ctx context.Context) (string, error) {
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case res, ok := <-r.lines:
		if !ok {
			return "", io.EOF
		}
		return res.line, res.err
	}
}

// readLine returns one line without its terminator. A final line without a
// newline is returned before io.EOF is reported.
func readLine(reader *bufio.Reader) (string, error) {
	line, err := reader.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && line != "" {
			return strings.TrimRight(line, "\r\n"), nil
		}
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func promptLine(ctx context.Context, reader *lineReader, out io.Writer, prompt string) (string, error) {
	fmt.Fprint(out, prompt)
	return reader.ReadLine(ctx)
}

func promptID(ctx context.Context, reader *lineReader, out io.Writer, prompt string) (int64, error) {
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		line, err := promptLine(ctx, reader, out, prompt)
		if err != nil {
			return 0, err
		}

		value, convErr := strconv.ParseInt(strings.TrimSpace(line), 10, 64)
		if convErr == nil {
			return value, nil
		}

		if attempt < maxAttempts {
			fmt.Fprintln(out, "Invalid input. Please enter a number.")
		}
	}
	return 0, errTooManyAttempts
}

// promptOptionalPrice returns nil for a blank answer. Infinities and NaN are
// rejected like any other unparsable price.
func promptOptionalPrice(ctx context.Context, reader *lineReader, out io.Writer, prompt string) (*float64, error) {
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		line, err := promptLine(ctx, reader, out, prompt)
		if err != nil {
			return nil, err
		}

		answer := strings.TrimPrefix(strings.TrimSpace(line), "$")
		if answer == "" {
			return nil, nil
		}
		value, convErr := strconv.ParseFloat(answer, 64)
		if convErr == nil && !math.IsInf(value, 0) && !math.IsNaN(value) {
			return &value, nil
		}

		if attempt < maxAttempts {
			fmt.Fprintln(out, "Invalid input. Please enter a price such as 19.99.")
		}
	}
	return nil, errTooManyAttempts
}

func formatPrice(price *float64) string {
	if price == nil {
		return "N/A"
	}
	return fmt.Sprintf("$%.2f", *price)
}

func formatDate(date *string) string {
	if date == nil || *date == "" {
		return "N/A"
	}
	return *date
}
