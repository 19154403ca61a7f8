package csvio

// sanitize.go cleans invalid UTF-8 on the fly so a file exported with a
// legacy encoding still parses instead of producing garbled findings.
// Memory stays bounded by the read buffer regardless of file size.

import (
	"io"
	"unicode/utf8"
)

// sanitizingReader wraps an io.Reader and replaces invalid UTF-8 bytes with
// '?'. A multi-byte sequence split across reads is held back until the next
// read completes it.
type sanitizingReader struct {
	reader  io.Reader
	pending []byte
}

func newSanitizingReader(r io.Reader) *sanitizingReader {
	return &sanitizingReader{reader: r, pending: make([]byte, 0, utf8.UTFMax)}
}

func (s *sanitizingReader) Read(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}

	offset := 0
	if len(s.pending) > 0 {
		offset = copy(p, s.pending)
		s.pending = s.pending[:0]
	}

	n, err := s.reader.Read(p[offset:])
	n += offset
	if n == 0 {
		return 0, err
	}

	// Fast path: most CSV data is plain ASCII.
	if allASCII(p[:n]) {
		return n, err
	}

	return s.sanitize(p[:n], err == io.EOF), err
}

func allASCII(data []byte) bool {
	for _, b := range data {
		if b >= 0x80 {
			return false
		}
	}
	return true
}

// sanitize rewrites data in place, replacing each invalid byte with '?'.
// It returns the number of bytes to hand to the caller; when atEOF is false
// an incomplete trailing sequence is saved for the next read instead of
// being misreported as invalid.
func (s *sanitizingReader) sanitize(data []byte, atEOF bool) int {
	if utf8.Valid(data) {
		if !atEOF {
			if trailing := incompleteTrailing(data); trailing > 0 {
				s.pending = append(s.pending, data[len(data)-trailing:]...)
				return len(data) - trailing
			}
		}
		return len(data)
	}

	write := 0
	for read := 0; read < len(data); {
		r, size := utf8.DecodeRune(data[read:])

		if !atEOF && read+size >= len(data) && incompleteRune(data[read:]) {
			s.pending = append(s.pending, data[read:]...)
			return write
		}

		if r == utf8.RuneError && size == 1 {
			// '?' keeps the output the same length as the input, which an
			// in-place rewrite requires.
			data[write] = '?'
			write++
			read++
		} else {
			copy(data[write:], data[read:read+size])
			write += size
			read += size
		}
	}

	return write
}

// incompleteTrailing returns how many bytes at the end of data form the
// start of a multi-byte sequence that has not finished yet.
func incompleteTrailing(data []byte) int {
	for i := 1; i <= 3 && i <= len(data); i++ {
		b := data[len(data)-i]
		if b >= 0xC0 {
			if i < seqLen(b) {
				return i
			}
			return 0
		}
		if b&0xC0 != 0x80 {
			return 0
		}
	}
	return 0
}

// seqLen returns the expected byte length of a UTF-8 sequence whose first
// byte is b, or 0 for a continuation byte.
func seqLen(b byte) int {
	switch {
	case b < 0x80:
		return 1
	case b < 0xC0:
		return 0
	case b < 0xE0:
		return 2
	case b < 0xF0:
		return 3
	default:
		return 4
	}
}

func incompleteRune(data []byte) bool {
	if len(data) == 0 {
		return false
	}
	return seqLen(data[0]) > len(data)
}
