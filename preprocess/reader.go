package preprocess

import (
	"bufio"
	"io"
	"strings"
)

// Reader yields logical lines from a source unit. Each returned line has
// `//` and `/* ... */` comments removed, trailing control characters
// stripped, and exactly one trailing newline appended so that downstream
// line and column accounting stays stable.
//
// The sequence is lazy, finite and non-restartable; ReadLine reports io.EOF
// once the underlying stream is exhausted.
type Reader struct {
	br *bufio.Reader
}

// NewReader creates a Reader for the given source stream.
func NewReader(r io.Reader) *Reader {
	return &Reader{br: bufio.NewReader(r)}
}

// ReadLine returns the next logical line, always newline-terminated.
func (r *Reader) ReadLine() (string, error) {
	raw, err := r.br.ReadString('\n')
	if raw == "" {
		if err == nil {
			err = io.EOF
		}
		return "", err
	}
	if err != nil && err != io.EOF {
		return "", err
	}
	line := strings.TrimRight(raw, "\n\r\x00")
	return stripComments(line) + "\n", nil
}

// stripComments removes `//` comments to end of line and `/* ... */`
// comments within the line. A block comment left unterminated at the end of
// the line is removed up to the line boundary; removal never crosses the
// newline the Reader itself appends.
func stripComments(line string) string {
	var b strings.Builder
	for i := 0; i < len(line); {
		if line[i] == '/' && i+1 < len(line) {
			switch line[i+1] {
			case '/':
				return b.String()
			case '*':
				end := strings.Index(line[i+2:], "*/")
				if end < 0 {
					return b.String()
				}
				i += 2 + end + 2
				continue
			}
		}
		b.WriteByte(line[i])
		i++
	}
	return b.String()
}
