/*
Copyright © 2019 the ncstructure authors.
This file is part of ncstructure.

ncstructure is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

ncstructure is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with ncstructure.  If not, see <http://www.gnu.org/licenses/>.
*/

package cdl

import (
	"bufio"
	"io"
	"strings"
)

// maxLineLength is the longest physical line the lexer accepts.
const maxLineLength = 1 << 24

// Lexer turns CDL text into logical lines. Comments are removed, blank
// lines dropped, physical lines joined until one ends in ';', '{' or ':'
// (the terminator itself is dropped) and the result split again on any
// remaining ';'. Comment markers and semicolons inside double-quoted
// strings are left alone.
//
// Lexing stops for good at a line starting with "data:".
// A Lexer reads its input once and cannot be restarted.
type Lexer struct {
	s       *bufio.Scanner
	joined  []string
	pending []string
	line    string
	done    bool
}

// NewLexer returns a Lexer reading from r.
func NewLexer(r io.Reader) *Lexer {
	s := bufio.NewScanner(r)
	s.Buffer(make([]byte, 0, 64*1024), maxLineLength)
	return &Lexer{s: s}
}

// Next advances to the next logical line, which is then available
// through Line. It returns false at the end of the input or on a read
// error, which is reported by Err.
func (l *Lexer) Next() bool {
	for {
		for len(l.pending) > 0 {
			line := l.pending[0]
			l.pending = l.pending[1:]
			if strings.TrimSpace(line) != "" {
				l.line = line
				return true
			}
		}
		if l.done {
			return false
		}
		l.readLogical()
	}
}

// Line returns the current logical line.
func (l *Lexer) Line() string { return l.line }

// Err returns the first read error, if any.
func (l *Lexer) Err() error { return l.s.Err() }

// readLogical reads physical lines until a logical line is complete
// and queues its ';'-separated parts.
func (l *Lexer) readLogical() {
	for l.s.Scan() {
		raw := l.s.Text()
		if strings.HasPrefix(strings.TrimLeft(raw, " \t"), "data:") {
			break
		}
		line := strings.TrimRight(stripComment(strings.TrimRight(raw, " \t\r")), " \t\r")
		if line == "" {
			continue
		}
		last := line[len(line)-1]
		if last != ';' && last != '{' && last != ':' {
			l.joined = append(l.joined, line)
			continue
		}
		l.joined = append(l.joined, line[:len(line)-1])
		l.pending = splitUnquoted(strings.Join(l.joined, " "), ';')
		l.joined = l.joined[:0]
		return
	}
	l.done = true
	if rest := strings.TrimSpace(strings.Join(l.joined, " ")); rest != "" && rest != "}" {
		l.pending = []string{rest}
	}
	l.joined = nil
}

// stripComment removes a trailing // comment that is not inside a
// double-quoted string. Backslash escapes inside strings are skipped.
func stripComment(line string) string {
	quoted := false
	for i := 0; i < len(line); i++ {
		switch {
		case quoted && line[i] == '\\':
			i++
		case line[i] == '"':
			quoted = !quoted
		case !quoted && line[i] == '/' && i+1 < len(line) && line[i+1] == '/':
			return line[:i]
		}
	}
	return line
}

// splitUnquoted splits s at every sep that is not inside a
// double-quoted string.
func splitUnquoted(s string, sep byte) []string {
	var o []string
	quoted := false
	start := 0
	for i := 0; i < len(s); i++ {
		switch {
		case quoted && s[i] == '\\':
			i++
		case s[i] == '"':
			quoted = !quoted
		case !quoted && s[i] == sep:
			o = append(o, s[start:i])
			start = i + 1
		}
	}
	return append(o, s[start:])
}
