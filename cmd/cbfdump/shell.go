package main

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/peterh/liner"

	"github.com/robert-malhotra/go-cbf/cbf"
	"github.com/robert-malhotra/go-cbf/internal/config"
)

var shellCommands = []string{
	"rewind", "next", "count", "name", "pos", "find", "select",
	"findrow", "tag", "type", "value", "get", "params", "snapshot",
	"help", "quit",
}

var levelWords = []string{"datablock", "saveframe", "category", "column", "row", "blockitem"}

const shellHelp = `Commands:
  rewind <level>          position <level> before its first entry
  next <level>            advance <level>
  count <level>           number of entries in scope
  name <level>            name under the cursor
  pos <level>             cursor position
  find <level> <name>     move <level> to the entry called <name>
  select <level> <i>      move <level> to index <i>
  findrow <value>         first row whose current column equals <value>
  tag <category.column>   position category and column by tag
  type                    kind of the current value
  value                   text of the current value
  get                     current value, arrays included
  params                  array parameters of the current value
  snapshot                current category as JSON
  help                    this text
  quit                    leave the shell
Levels: datablock (block), saveframe, category, column, row, blockitem
`

type shell struct {
	h   *cbf.Handle
	cfg config.Config
	out io.Writer
}

// runShell reads commands until quit or end of input. A terminal gets line
// editing and history; anything else is read line by line.
func runShell(h *cbf.Handle, cfg config.Config, in io.Reader, out io.Writer) error {
	s := &shell{h: h, cfg: cfg, out: out}
	if f, ok := in.(*os.File); ok && f == os.Stdin {
		return s.interactive()
	}

	sc := bufio.NewScanner(in)
	for sc.Scan() {
		if s.exec(sc.Text()) {
			return nil
		}
	}
	return sc.Err()
}

func (s *shell) interactive() error {
	l := liner.NewLiner()
	defer l.Close()

	l.SetCtrlCAborts(true)
	l.SetCompleter(complete)

	if s.cfg.HistoryFile != "" {
		if f, err := os.Open(s.cfg.HistoryFile); err == nil {
			l.ReadHistory(f)
			f.Close()
		}
		defer s.saveHistory(l)
	}

	fmt.Fprintln(s.out, "Type 'help' for available commands.")
	for {
		line, err := l.Prompt("cbf> ")
		if err != nil {
			if errors.Is(err, liner.ErrPromptAborted) || errors.Is(err, io.EOF) {
				return nil
			}
			return fmt.Errorf("reading input: %w", err)
		}
		if strings.TrimSpace(line) != "" {
			l.AppendHistory(line)
		}
		if s.exec(line) {
			return nil
		}
	}
}

func (s *shell) saveHistory(l *liner.State) {
	f, err := os.Create(s.cfg.HistoryFile)
	if err != nil {
		return
	}
	defer f.Close()
	l.WriteHistory(f)
}

// complete offers command names, then level names.
func complete(line string) []string {
	words, head, prefix := shellCommands, "", line
	if i := strings.LastIndex(line, " "); i >= 0 {
		words, head, prefix = levelWords, line[:i+1], line[i+1:]
	}
	var out []string
	for _, w := range words {
		if strings.HasPrefix(w, prefix) {
			out = append(out, head+w)
		}
	}
	return out
}

// exec runs one command line and reports whether the shell should exit.
func (s *shell) exec(line string) bool {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return false
	}
	cmd, args := strings.ToLower(fields[0]), fields[1:]

	var err error
	switch cmd {
	case "quit", "exit", "q":
		return true
	case "help", "?":
		fmt.Fprint(s.out, shellHelp)
	case "rewind", "next", "count", "name", "pos":
		err = s.levelCommand(cmd, args)
	case "find":
		err = s.find(args)
	case "select":
		err = s.selectIndex(args)
	case "findrow":
		if len(args) != 1 {
			err = errors.New("usage: findrow <value>")
			break
		}
		if err = s.h.FindRow(args[0]); err == nil {
			var row int
			if row, err = s.h.RowNumber(); err == nil {
				s.printf("row %d\n", row)
			}
		}
	case "tag":
		if len(args) != 1 {
			err = errors.New("usage: tag <category.column>")
			break
		}
		if err = s.h.FindTag(args[0]); err == nil {
			s.printf("ok\n")
		}
	case "type":
		var k cbf.ValueKind
		if k, err = s.h.TypeOfValue(); err == nil {
			s.printf("%s\n", kindName(k))
		}
	case "value":
		var text string
		if text, err = s.h.Value(); err == nil {
			s.printf("%q\n", text)
		}
	case "get":
		err = s.get()
	case "params":
		var p cbf.ArrayParameters
		if p, err = s.h.ArrayParameters(); err == nil {
			s.printf("%s\n", formatParams(p))
			s.printf("branch=%s shape=%v\n", p.Branch(), p.Shape)
		}
	case "snapshot":
		err = s.snapshot()
	default:
		err = fmt.Errorf("unknown command %q (try help)", cmd)
	}
	if err != nil {
		s.printf("error: %v\n", err)
	}
	return false
}

func (s *shell) printf(format string, args ...any) {
	fmt.Fprintf(s.out, format, args...)
}

func (s *shell) levelCommand(cmd string, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: %s <level>", cmd)
	}
	l, err := cbf.ParseLevel(args[0])
	if err != nil {
		return err
	}
	switch cmd {
	case "rewind":
		if err := s.h.Rewind(l); err != nil {
			return err
		}
		s.printf("ok\n")
	case "next":
		if l == cbf.LevelBlockItem {
			kind, err := s.h.NextBlockItem()
			if err != nil {
				return err
			}
			s.printf("%s\n", kind)
			return nil
		}
		if err := s.h.Next(l); err != nil {
			return err
		}
		s.printf("ok\n")
	case "count":
		n, err := s.h.Count(l)
		if err != nil {
			return err
		}
		s.printf("%d\n", n)
	case "name":
		name, err := s.h.Name(l)
		if err != nil {
			return err
		}
		s.printf("%s\n", name)
	case "pos":
		i, err := s.h.Position(l)
		if err != nil {
			return err
		}
		s.printf("%d\n", i)
	}
	return nil
}

func (s *shell) find(args []string) error {
	if len(args) != 2 {
		return errors.New("usage: find <level> <name>")
	}
	l, err := cbf.ParseLevel(args[0])
	if err != nil {
		return err
	}
	if err := s.h.Find(l, args[1]); err != nil {
		return err
	}
	s.printf("ok\n")
	return nil
}

func (s *shell) selectIndex(args []string) error {
	if len(args) != 2 {
		return errors.New("usage: select <level> <index>")
	}
	l, err := cbf.ParseLevel(args[0])
	if err != nil {
		return err
	}
	i, err := strconv.Atoi(args[1])
	if err != nil {
		return fmt.Errorf("bad index %q", args[1])
	}
	if l == cbf.LevelBlockItem {
		kind, err := s.h.SelectBlockItem(i)
		if err != nil {
			return err
		}
		s.printf("%s\n", kind)
		return nil
	}
	if err := s.h.Select(l, i); err != nil {
		return err
	}
	s.printf("ok\n")
	return nil
}

func (s *shell) get() error {
	v, kind, err := s.h.Get()
	if err != nil {
		return err
	}
	switch v := v.(type) {
	case nil:
		s.printf("<absent>\n")
	case cbf.Array:
		limit := s.cfg.Preview
		if s.cfg.Arrays == config.ArraysFull {
			limit = v.Len()
		}
		s.printf("%s shape=%v %s\n", v.DType(), v.Shape(), preview(v, limit))
	default:
		s.printf("%q:%s\n", v, kindName(kind))
	}
	return nil
}

func (s *shell) snapshot() error {
	c, err := s.h.CurrentCategory()
	if err != nil {
		return err
	}
	enc := json.NewEncoder(s.out)
	enc.SetIndent("", "  ")
	return enc.Encode(c)
}
