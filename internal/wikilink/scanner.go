// Package wikilink extracts [[Target]]-style link occurrences from a byte
// stream without materializing the stream in memory.
package wikilink

import (
	"bufio"
	"bytes"
	"io"
	"strings"
	"unicode/utf8"
)

const defaultBufferSize = 64 * 1024

// asciiSpace is the cutset trimmed from link targets. Only ASCII whitespace
// is folded; Unicode normalization belongs to the caller.
const asciiSpace = " \t\n\f\r"

// Link is a single wikilink occurrence: the byte offset of its opening "[["
// in the stream and the normalized target name.
type Link struct {
	Offset int64
	Target string
}

// Scanner walks a stream strictly forward and yields link occurrences in
// ascending offset order. A Scanner is single-use: once Next has returned
// io.EOF the scan is over, and a fresh Scanner on a fresh reader is needed
// to scan again.
//
// Malformed markup never produces an error. An unterminated tag, or a link
// body that is not valid UTF-8, simply ends the sequence.
type Scanner struct {
	r    *bufio.Reader
	pos  int64 // bytes consumed from the underlying reader
	done bool
}

// NewScanner returns a Scanner over r with the default internal buffer.
func NewScanner(r io.Reader) *Scanner {
	return NewScannerSize(r, defaultBufferSize)
}

// NewScannerSize returns a Scanner with an internal buffer of at least size
// bytes. The buffer size never affects which links are found, only how the
// stream is chunked internally.
func NewScannerSize(r io.Reader, size int) *Scanner {
	return &Scanner{r: bufio.NewReaderSize(r, size)}
}

// Next returns the next link occurrence, or io.EOF when the stream holds no
// more links. Occurrences whose normalized target is empty (pure aliases or
// heading anchors such as [[#Section]]) are skipped, not returned.
func (s *Scanner) Next() (Link, error) {
	for !s.done {
		offset, err := s.seekOpeningTag()
		if err != nil {
			break
		}
		body, err := s.readBody()
		if err != nil {
			break
		}
		target, ok := normalize(body)
		if !ok {
			// Undecodable body: give up on this stream.
			break
		}
		if target == "" {
			// Internal reference, keep looking after the closing tag.
			continue
		}
		return Link{Offset: offset, Target: target}, nil
	}
	s.done = true
	return Link{}, io.EOF
}

// All drains a fresh scan of r and returns every occurrence.
func All(r io.Reader) []Link {
	s := NewScanner(r)
	var out []Link
	for {
		ln, err := s.Next()
		if err != nil {
			return out
		}
		out = append(out, ln)
	}
}

// seekOpeningTag consumes the stream up to and including the next pair of
// adjacent '[' bytes and returns the offset of the first of the two.
//
// The adjacency test is carried in prevBracket across buffer refills, so a
// pair that straddles two reads of the underlying stream is still found.
func (s *Scanner) seekOpeningTag() (int64, error) {
	prevBracket := false
	for {
		window, err := s.buffered()
		if len(window) == 0 {
			if err == nil {
				err = io.ErrUnexpectedEOF
			}
			return 0, err
		}
		i := bytes.IndexByte(window, '[')
		if i < 0 {
			s.discard(len(window))
			prevBracket = false
			continue
		}
		if prevBracket && i == 0 {
			s.discard(1)
			return s.pos - 2, nil
		}
		s.discard(i + 1)
		prevBracket = true
	}
}

// readBody accumulates the link body up to a pair of adjacent ']' bytes.
// A lone ']' is ordinary content. Reaching end of stream first is an error:
// the occurrence is abandoned.
func (s *Scanner) readBody() ([]byte, error) {
	var body []byte
	for {
		chunk, err := s.r.ReadBytes(']')
		s.pos += int64(len(chunk))
		if err != nil {
			if err == io.EOF {
				err = io.ErrUnexpectedEOF
			}
			return nil, err
		}
		body = append(body, chunk...) // includes the ']'
		next, err := s.r.ReadByte()
		if err != nil {
			return nil, io.ErrUnexpectedEOF
		}
		s.pos++
		if next == ']' {
			return body[:len(body)-1], nil
		}
		body = append(body, next)
	}
}

// buffered returns the bytes currently buffered without consuming them,
// filling from the underlying reader when the buffer is empty.
func (s *Scanner) buffered() ([]byte, error) {
	if n := s.r.Buffered(); n > 0 {
		return s.r.Peek(n)
	}
	if _, err := s.r.Peek(1); err != nil {
		return nil, err
	}
	return s.r.Peek(s.r.Buffered())
}

func (s *Scanner) discard(n int) {
	d, _ := s.r.Discard(n)
	s.pos += int64(d)
}

// normalize truncates the body at the first '|' (display alias) or '#'
// (heading anchor) and trims ASCII whitespace. ok is false when the body is
// not valid UTF-8.
func normalize(body []byte) (target string, ok bool) {
	if !utf8.Valid(body) {
		return "", false
	}
	if i := bytes.IndexAny(body, "|#"); i >= 0 {
		body = body[:i]
	}
	return strings.Trim(string(body), asciiSpace), true
}
