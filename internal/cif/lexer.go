package cif

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/robert-malhotra/go-cbf/internal/mime"
)

type tokenKind int

const (
	tokEOF tokenKind = iota
	tokData
	tokSave // text is the frame name, empty closes the frame
	tokLoop
	tokTag
	tokValue
)

func (k tokenKind) String() string {
	switch k {
	case tokEOF:
		return "end of input"
	case tokData:
		return "data block header"
	case tokSave:
		return "save frame header"
	case tokLoop:
		return "loop_"
	case tokTag:
		return "tag"
	default:
		return "value"
	}
}

type token struct {
	kind  tokenKind
	text  string
	value Value
	line  int
}

type lexer struct {
	data   []byte
	pos    int
	line   int
	verify bool
}

func newLexer(data []byte, verify bool) *lexer {
	return &lexer{data: data, line: 1, verify: verify}
}

func (l *lexer) errorf(line int, format string, args ...any) error {
	return &SyntaxError{Line: line, Msg: fmt.Sprintf(format, args...)}
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\r' || c == '\n'
}

func (l *lexer) atLineStart() bool {
	return l.pos == 0 || l.data[l.pos-1] == '\n'
}

// advance moves forward n bytes, counting newlines.
func (l *lexer) advance(n int) {
	l.line += bytes.Count(l.data[l.pos:l.pos+n], []byte{'\n'})
	l.pos += n
}

func (l *lexer) skipSpace() {
	for l.pos < len(l.data) {
		c := l.data[l.pos]
		switch {
		case c == '#':
			i := bytes.IndexByte(l.data[l.pos:], '\n')
			if i < 0 {
				l.pos = len(l.data)
				return
			}
			l.pos += i
		case isSpace(c):
			l.advance(1)
		default:
			return
		}
	}
}

func (l *lexer) next() (token, error) {
	l.skipSpace()
	line := l.line
	if l.pos >= len(l.data) {
		return token{kind: tokEOF, line: line}, nil
	}

	c := l.data[l.pos]
	switch {
	case c == ';' && l.atLineStart():
		v, err := l.textField()
		return token{kind: tokValue, value: v, line: line}, err
	case c == '\'' || c == '"':
		v, err := l.quoted(c)
		return token{kind: tokValue, value: v, line: line}, err
	}

	word := l.word()
	lower := strings.ToLower(word)
	switch {
	case strings.HasPrefix(lower, "data_"):
		if len(word) == 5 {
			return token{}, l.errorf(line, "data block without a name")
		}
		return token{kind: tokData, text: word[5:], line: line}, nil
	case strings.HasPrefix(lower, "save_"):
		return token{kind: tokSave, text: word[5:], line: line}, nil
	case lower == "loop_":
		return token{kind: tokLoop, line: line}, nil
	case lower == "global_" || lower == "stop_":
		return token{}, l.errorf(line, "reserved word %q", word)
	case word[0] == '_':
		return token{kind: tokTag, text: word, line: line}, nil
	case word == "." || word == "?":
		return token{kind: tokValue, value: Value{Kind: KindNull, Text: word}, line: line}, nil
	}
	return token{kind: tokValue, value: Value{Kind: KindWord, Text: word}, line: line}, nil
}

func (l *lexer) word() string {
	start := l.pos
	for l.pos < len(l.data) && !isSpace(l.data[l.pos]) {
		l.pos++
	}
	return string(l.data[start:l.pos])
}

// quoted reads a string delimited by q. The closing quote must be followed
// by whitespace or end of input, so embedded quotes are allowed.
func (l *lexer) quoted(q byte) (Value, error) {
	start := l.pos + 1
	for i := start; i < len(l.data); i++ {
		c := l.data[i]
		if c == '\n' || c == '\r' {
			break
		}
		if c == q && (i+1 == len(l.data) || isSpace(l.data[i+1])) {
			v := Value{Kind: KindSingle, Text: string(l.data[start:i])}
			if q == '"' {
				v.Kind = KindDouble
			}
			l.pos = i + 1
			return v, nil
		}
	}
	return Value{}, l.errorf(l.line, "unterminated quoted string")
}

// textField reads a semicolon-delimited field starting at l.pos.
func (l *lexer) textField() (Value, error) {
	line := l.line
	rest := l.data[l.pos+1:]

	if eol := bytes.IndexByte(rest, '\n'); eol >= 0 &&
		len(bytes.TrimSpace(rest[:eol])) == 0 &&
		bytes.HasPrefix(rest[eol+1:], []byte(mime.Boundary)) {
		l.advance(1 + eol + 1)
		return l.binarySection(line)
	}

	end := bytes.Index(rest, []byte("\n;"))
	if end < 0 {
		return Value{}, l.errorf(line, "unterminated text field")
	}
	text := bytes.TrimSuffix(rest[:end], []byte{'\r'})
	l.advance(1 + end + 2)
	return Value{Kind: KindText, Text: string(text)}, nil
}

// readLine returns the line at l.pos without its terminator and moves past it.
func (l *lexer) readLine() (string, bool) {
	i := bytes.IndexByte(l.data[l.pos:], '\n')
	if i < 0 {
		return "", false
	}
	s := string(bytes.TrimSuffix(l.data[l.pos:l.pos+i], []byte{'\r'}))
	l.advance(i + 1)
	return s, true
}

// binarySection reads a MIME binary section. l.pos is at the boundary line.
func (l *lexer) binarySection(line int) (Value, error) {
	l.readLine()

	var lines []string
	for {
		s, ok := l.readLine()
		if !ok {
			return Value{}, l.errorf(line, "unterminated binary section header")
		}
		if strings.TrimSpace(s) == "" {
			break
		}
		lines = append(lines, s)
	}
	h, err := mime.Parse(lines)
	if err != nil {
		return Value{}, &SyntaxError{Line: line, Msg: "binary section header", Err: err}
	}

	var payload []byte
	switch h.TransferEncoding {
	case mime.EncodingBinary:
		i := bytes.Index(l.data[l.pos:], mime.Marker)
		if i < 0 {
			return Value{}, l.errorf(line, "binary section without start marker")
		}
		l.advance(i + len(mime.Marker))
		if h.Size > len(l.data)-l.pos {
			return Value{}, l.errorf(line, "binary section truncated: need %d bytes, have %d", h.Size, len(l.data)-l.pos)
		}
		payload = bytes.Clone(l.data[l.pos : l.pos+h.Size])
		// Payload bytes do not count as lines.
		l.pos += h.Size
		t := bytes.Index(l.data[l.pos:], []byte(mime.Terminator))
		if t < 0 {
			return Value{}, l.errorf(line, "unterminated binary section")
		}
		l.advance(t + len(mime.Terminator))
	case mime.EncodingBase64:
		t := bytes.Index(l.data[l.pos:], []byte(mime.Terminator))
		if t < 0 {
			return Value{}, l.errorf(line, "unterminated binary section")
		}
		body := bytes.Join(bytes.Fields(l.data[l.pos:l.pos+t]), nil)
		decoded := make([]byte, base64.StdEncoding.DecodedLen(len(body)))
		n, err := base64.StdEncoding.Decode(decoded, body)
		if err != nil {
			return Value{}, &SyntaxError{Line: line, Msg: "base64 payload", Err: err}
		}
		decoded = decoded[:n]
		if h.Size > 0 {
			if n < h.Size {
				return Value{}, l.errorf(line, "base64 payload has %d bytes, header declares %d", n, h.Size)
			}
			decoded = decoded[:h.Size]
		}
		payload = decoded
		l.advance(t + len(mime.Terminator))
	default:
		return Value{}, l.errorf(line, "unsupported transfer encoding %q", h.TransferEncoding)
	}

	if l.verify {
		if err := h.VerifyDigest(payload); err != nil {
			return Value{}, &SyntaxError{Line: line, Msg: fmt.Sprintf("binary section %d", h.ID), Err: err}
		}
	}

	// The closing semicolon starts the next non-blank line.
	for l.pos < len(l.data) && isSpace(l.data[l.pos]) {
		l.advance(1)
	}
	if l.pos >= len(l.data) || l.data[l.pos] != ';' || !l.atLineStart() {
		return Value{}, l.errorf(l.line, "binary section not closed by ';'")
	}
	l.pos++

	return Value{Kind: KindBinary, Binary: &Binary{Header: h, Payload: payload}}, nil
}
