package input

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// ErrInterrupted is returned when the user presses Ctrl+C in raw mode
var ErrInterrupted = errors.New("input: interrupted")

// LineReader reads terminal commands. On an interactive terminal arrow
// keys return immediately as "arrow_up" etc.; piped input is read line by
// line.
type LineReader struct {
	in     io.Reader
	echo   io.Writer
	fd     int
	raw    bool
	reader *bufio.Reader
}

// NewLineReader reads from stdin, using raw mode when it is a terminal
func NewLineReader() *LineReader {
	fd := int(os.Stdin.Fd())
	return &LineReader{in: os.Stdin, echo: os.Stdout, fd: fd, raw: term.IsTerminal(fd)}
}

// NewScriptReader reads newline-separated commands from r
func NewScriptReader(r io.Reader) *LineReader {
	return &LineReader{in: r, echo: io.Discard, fd: -1}
}

// Next returns the next trimmed command line. io.EOF ends the input.
func (l *LineReader) Next() (string, error) {
	if l.raw {
		return l.nextRaw()
	}
	if l.reader == nil {
		l.reader = bufio.NewReader(l.in)
	}
	line, err := l.reader.ReadString('\n')
	if err != nil && (err != io.EOF || line == "") {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

func (l *LineReader) readByte() (byte, error) {
	buf := make([]byte, 1)
	_, err := l.in.Read(buf)
	return buf[0], err
}

// arrowKey reads the rest of an escape sequence after ESC. It returns the
// arrow code, or "" for any other sequence.
func (l *LineReader) arrowKey() string {
	b2, err := l.readByte()
	if err != nil || (b2 != '[' && b2 != 'O') {
		return ""
	}
	b3, err := l.readByte()
	if err != nil {
		return ""
	}
	switch b3 {
	case 'A':
		return "arrow_up"
	case 'B':
		return "arrow_down"
	case 'C':
		return "arrow_right"
	case 'D':
		return "arrow_left"
	}
	return ""
}

func (l *LineReader) nextRaw() (string, error) {
	oldState, err := term.MakeRaw(l.fd)
	if err != nil {
		return "", fmt.Errorf("cannot set terminal to raw mode: %w", err)
	}
	defer term.Restore(l.fd, oldState)

	var line []byte
	for {
		b, err := l.readByte()
		if err != nil {
			return "", err
		}
		switch {
		case b == 3:
			fmt.Fprint(l.echo, "\r\n")
			return "", ErrInterrupted
		case b == 0x1b:
			code := l.arrowKey()
			if code != "" && len(line) == 0 {
				fmt.Fprint(l.echo, "\r\n")
				return code, nil
			}
		case b == 127 || b == 8:
			if len(line) > 0 {
				line = line[:len(line)-1]
				fmt.Fprint(l.echo, "\b \b")
			}
		case b == '\n' || b == '\r':
			fmt.Fprint(l.echo, "\r\n")
			return strings.TrimSpace(string(line)), nil
		case b >= 32 && b < 127:
			line = append(line, b)
			fmt.Fprint(l.echo, string(b))
		}
	}
}
