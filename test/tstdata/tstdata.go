// Package tstdata reads textual descriptions of command line tests.
//
// A file holds a sequence of tests, each starting with =TITLE=.
// Definitions are either written on a single line
//
//	=PARAMS=-f fp -p in.pcap
//
// or as a block of lines ending at the next definition or at =END=.
// Lines of a block keep their trailing newline.
package tstdata

import (
	"bytes"
	"errors"
	"fmt"
	"log"
	"os"
	"path"
	"strconv"
	"strings"
)

type Descr struct {
	Title       string
	Params      string
	Child       string // stdout of java
	ChildStderr string
	ChildExit   int
	Output      string
	Warning     string // expected stderr if run was successful
	Error       string
	Echo        bool // java prints its arguments
	NoEOL       bool // remove last newline from Child
	NoLaunch    bool // java must not be started
	Todo        bool
}

// State
// Textblocks holds key/value pairs defined by
// =VAR= name
// ...text lines ...
// =END=
// found during parsing
type state struct {
	src        []byte
	rest       []byte
	textblocks map[string]string
}

func GetFiles(dataDir string) []string {
	files, err := os.ReadDir(dataDir)
	if err != nil {
		log.Fatal(err)
	}
	var names []string
	for _, f := range files {
		name := f.Name()
		if strings.HasSuffix(name, ".t") {
			names = append(names, path.Join(dataDir, name))
		}
	}
	return names
}

// ParseFile parses the named file as a list of test descriptions.
func ParseFile(file string) ([]*Descr, error) {
	data, err := os.ReadFile(file)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

// Parse parses data as a list of test descriptions.
func Parse(data []byte) ([]*Descr, error) {
	s := new(state)
	s.src = data
	s.rest = data
	s.textblocks = make(map[string]string)
	return s.parse()
}

func (s *state) currentLine() int {
	return 1 + bytes.Count(s.src[0:len(s.src)-len(s.rest)], []byte("\n"))
}

func (s *state) parse() ([]*Descr, error) {
	var result []*Descr
	var d *Descr
	var seen map[string]bool
	add := func() error {
		if d == nil {
			return errors.New("missing =TITLE= in first test")
		}
		if d.Params == "" {
			return fmt.Errorf("missing =PARAMS= in test with =TITLE=%s", d.Title)
		}
		if d.Output == "" && d.Error == "" {
			return fmt.Errorf(
				"missing =OUTPUT|ERROR= in test with =TITLE=%s", d.Title)
		}
		if d.Error != "" && d.Warning != "" {
			return fmt.Errorf(
				"must not define =ERROR= together with =WARNING="+
					" in test with =TITLE=%s", d.Title)
		}
		if d.NoEOL {
			d.Child = strings.TrimSuffix(d.Child, "\n")
		}
		result = append(result, d)
		return nil
	}
	for {
		name, err := s.readDef()
		if err != nil {
			return nil, err
		}
		switch name {
		case "": // EOF
			if d == nil && result == nil {
				return nil, nil
			}
			err := add()
			return result, err
		case "TITLE": // Next entry.
			if d != nil {
				if err := add(); err != nil {
					return nil, err
				}
			}
			text, err := s.readText()
			if err != nil {
				return nil, err
			}
			d = new(Descr)
			d.Title = text
			seen = make(map[string]bool)
		case "VAR":
			if err := s.varDef(); err != nil {
				return nil, err
			}
		default:
			if d == nil {
				return nil, errors.New("expected =TITLE=")
			}
			if seen[name] {
				return nil, fmt.Errorf(
					"found multiple =%s= in test with =TITLE=%s", name, d.Title)
			}
			seen[name] = true
			switch name {
			case "ECHO":
				d.Echo = true
				continue
			case "NOEOL":
				d.NoEOL = true
				continue
			case "NO_LAUNCH":
				d.NoLaunch = true
				continue
			case "TODO":
				d.Todo = true
				continue
			}
			text, err := s.readText()
			if err != nil {
				return nil, err
			}
			switch name {
			case "PARAMS":
				d.Params = text
			case "CHILD":
				d.Child = text
			case "CHILD_STDERR":
				d.ChildStderr = text
			case "CHILD_EXIT":
				d.ChildExit, err = strconv.Atoi(text)
				if err != nil {
					return nil, fmt.Errorf(
						"invalid =CHILD_EXIT= in test with =TITLE=%s: %v",
						d.Title, err)
				}
			case "OUTPUT":
				d.Output = text
			case "WARNING":
				d.Warning = text
			case "ERROR":
				d.Error = text
			default:
				return nil, fmt.Errorf(
					"unexpected =%s= in test with =TITLE=%s", name, d.Title)
			}
		}
	}
}

func (s *state) readDef() (string, error) {
	var line string
	for {
		// Skip empty lines and comments
		idx := bytes.IndexByte(s.rest, byte('\n'))
		if idx == -1 {
			line = string(s.rest)
		} else {
			line = string(s.rest[:idx])
		}
		line = strings.TrimSpace(line)
		if line == "" || line[0] == '#' {
			if idx == -1 {
				s.rest = s.rest[len(s.rest):]
				// Found EOF.
				return "", nil
			}
			s.rest = s.rest[idx+1:]
			continue
		}
		break
	}
	name := s.checkDef(line)
	if name == "" {
		nr := s.currentLine()
		return "", fmt.Errorf("expected token '=...=' at line %d: %s", nr, line)
	}
	// Skip leading white space and "=NAME=".
	s.rest = bytes.TrimLeft(s.rest, " \t")
	s.rest = s.rest[len(name)+2:]
	return name, nil
}

func (s *state) checkDef(line string) string {
	if line == "" || line[0] != '=' {
		return ""
	}
	idx := strings.Index(line[1:], "=")
	if idx == -1 {
		return ""
	}
	name := line[1 : idx+1]
	if isName(name) {
		return name
	}
	return ""
}

func (s *state) varDef() error {
	name, err := s.readVarName()
	if err != nil {
		return err
	}
	text, err := s.readText()
	if err != nil {
		return err
	}
	text = strings.TrimSuffix(text, "\n")
	s.textblocks[name] = text
	return nil
}

func (s *state) readVarName() (string, error) {
	line := s.getLine()
	s.rest = s.rest[len(strings.TrimSuffix(line, "\n")):] // keep trailing newline
	name := strings.TrimSpace(line)
	if !isName(name) {
		return "", errors.New("invalid name after =VAR=: " + name)
	}
	return name, nil
}

func isName(n string) bool {
	if n == "" {
		return false
	}
	for _, ch := range n {
		if !(isLetter(ch) || isDecimal(ch)) {
			return false
		}
	}
	return true
}

func lower(ch rune) rune     { return ('a' - 'A') | ch }
func isDecimal(ch rune) bool { return '0' <= ch && ch <= '9' }

func isLetter(ch rune) bool {
	return 'a' <= lower(ch) && lower(ch) <= 'z' || ch == '_'
}

func (s *state) readText() (string, error) {
	// Check for single line
	line := s.getLine()
	s.rest = s.rest[len(line):]
	line = strings.TrimSpace(line)
	if line != "" {
		return s.doVarSubst(line), nil
	}
	// Read multiple lines up to start of next definition
	text := s.rest
	size := 0
	for {
		line := s.getLine()
		if line == "" {
			// EOF
			return s.doVarSubst(string(text[:size])), nil
		}
		if name := s.checkDef(strings.TrimSpace(line)); name != "" {
			if name == "END" {
				s.rest = bytes.TrimLeft(s.rest, " \t")
				s.rest = s.rest[len("=END="):]
			}
			return s.doVarSubst(string(text[:size])), nil
		}
		s.rest = s.rest[len(line):]
		size += len(line)
	}
}

// Substitute occurrences of ${name} with corresponding value.
func (s *state) doVarSubst(text string) string {
	for name, val := range s.textblocks {
		text = strings.ReplaceAll(text, "${"+name+"}", val)
	}
	return text
}

// getLine returns the next line including its newline.
func (s *state) getLine() string {
	idx := bytes.IndexByte(s.rest, byte('\n'))
	if idx == -1 {
		return string(s.rest)
	}
	return string(s.rest[:idx+1])
}
