package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/idilsaglam/taskflow/internal/model"
	"github.com/idilsaglam/taskflow/internal/ui"
)

// Exit codes for single-shot mode (0 ok, 1 error or not found, 2 usage).
const (
	ExitOK    = 0
	ExitError = 1
	ExitUsage = 2
)

const prompt = "> "

var (
	addFlags  = map[string]bool{"-d": true, "-p": true, "-t": true}
	editFlags = map[string]bool{"-t": true, "-d": true, "-p": true, "-D": true}
)

// TaskStore is what the shell needs from storage.
type TaskStore interface {
	Add(title, description string, priority int, deadline string) model.Task
	List() []model.Task
	MarkDone(id int, done bool) bool
	Remove(id int) bool
	Edit(id int, title, description string, priority int, deadline string) bool
}

// Options tune the shell from the entry point.
type Options struct {
	// Browse opens the interactive browser. Nil disables the command.
	Browse func() error
}

// Shell reads command lines and runs them against a TaskStore.
type Shell struct {
	store TaskStore
	out   *ui.Printer
	opt   Options
}

func New(store TaskStore, out *ui.Printer, opt Options) *Shell {
	return &Shell{store: store, out: out, opt: opt}
}

// Run reads commands from in until EOF or exit. It always returns ExitOK.
// Input lines have no length limit.
func (s *Shell) Run(in io.Reader) int {
	r := bufio.NewReader(in)
	for {
		s.out.Printf("\n%s", prompt)
		raw, err := r.ReadString('\n')
		if line := strings.TrimSpace(raw); line != "" {
			if _, quit := s.exec(Tokenize(line)); quit {
				break
			}
		}
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			s.out.Fail(fmt.Sprintf("Could not read input: %v", err))
			break
		}
	}
	s.out.Println()
	s.out.Println("Goodbye!")
	return ExitOK
}

// RunArgs executes process arguments as one command line and returns its exit code.
func (s *Shell) RunArgs(args []string) int {
	code, _ := s.exec(TokensFromArgs(args))
	return code
}

// exec dispatches one tokenized command line.
func (s *Shell) exec(tokens []Token) (code int, quit bool) {
	if len(tokens) == 0 {
		return ExitOK, false
	}
	cmd, a := tokens[0].Text, tokens[1:]

	switch cmd {
	case "help", "-h", "--help":
		PrintHelp(s.out.Writer())
		return ExitOK, false

	case "exit", "quit":
		return ExitOK, true

	case "list", "ls":
		return s.doList(), false

	case "add":
		return s.doAdd(a), false

	case "done", "undone":
		id, ok := parseID(a)
		if !ok {
			s.out.Fail("Usage: " + cmd + " <id>")
			return ExitUsage, false
		}
		return s.doMark(id, cmd == "done"), false

	case "remove", "rm":
		id, ok := parseID(a)
		if !ok {
			s.out.Fail("Usage: remove <id>")
			return ExitUsage, false
		}
		return s.doRemove(id), false

	case "edit":
		id, ok := parseID(a)
		if !ok {
			s.out.Fail("Usage: edit <id> [-t title] [-d description] [-p priority] [-D deadline]")
			return ExitUsage, false
		}
		return s.doEdit(id, a[1:]), false

	case "browse":
		return s.doBrowse(), false
	}

	s.out.Fail("Unknown command. Type 'help' for commands.")
	return ExitUsage, false
}

func PrintHelp(w io.Writer) {
	fmt.Fprint(w, `taskflow - simple CLI task manager

Commands:
  add <title> [-d description] [-p priority] [-t deadline]          Add a task
  list                                                              List all tasks
  done <id>                                                         Mark task done
  undone <id>                                                       Mark task not done
  remove <id>                                                       Remove a task
  edit <id> [-t title] [-d description] [-p priority] [-D deadline] Edit fields
  browse                                                            Interactive list
  help                                                              Show this message
  exit                                                              Exit

Examples:
  add "Buy groceries" -d "milk, eggs" -p 2 -t 2025-12-01
  list
  done 3
`)
}

// -------------- command impls ----------------

func (s *Shell) doList() int {
	tasks := s.store.List()
	if len(tasks) == 0 {
		s.out.Println("No tasks.")
		return ExitOK
	}
	th := s.out.Theme()
	s.out.Println(th.Title.Render("ID | P | Done | Title (deadline)"))
	s.out.Println(th.Muted.Render(strings.Repeat("-", 43)))

	done := 0
	for _, t := range tasks {
		mark := " "
		if t.Done {
			mark = "x"
			done++
		}
		s.out.Printf("%d | %d | %s | %s (%s)\n", t.ID, t.Priority, mark, t.Title, t.Deadline)
		if t.Description != "" {
			s.out.Println("    " + t.Description)
		}
	}
	s.out.Hint(ui.ProgressBar(done, len(tasks), 20))
	return ExitOK
}

func (s *Shell) doAdd(args []Token) int {
	lead, flags := splitFlags(args, addFlags)
	title := strings.TrimSpace(strings.Join(lead, " "))
	if title == "" {
		s.out.Fail("Title required. Usage: add <title> [-d description] [-p priority] [-t deadline]")
		return ExitUsage
	}

	description := strings.TrimSpace(strings.Join(flags["-d"], " "))
	priority := 0
	if v := flags["-p"]; len(v) > 0 {
		if n, err := strconv.Atoi(v[0]); err == nil {
			priority = n
		}
	}
	deadline := ""
	if v := flags["-t"]; len(v) > 0 {
		deadline = strings.TrimSpace(v[0])
	}

	t := s.store.Add(title, description, priority, deadline)
	s.out.OK(fmt.Sprintf("Added task ID %d", t.ID))
	return ExitOK
}

func (s *Shell) doMark(id int, done bool) int {
	if !s.store.MarkDone(id, done) {
		return s.notFound(id)
	}
	if done {
		s.out.OK(fmt.Sprintf("Task %d marked done.", id))
	} else {
		s.out.OK(fmt.Sprintf("Task %d marked not done.", id))
	}
	return ExitOK
}

func (s *Shell) doRemove(id int) int {
	if !s.store.Remove(id) {
		return s.notFound(id)
	}
	s.out.OK(fmt.Sprintf("Removed task %d", id))
	return ExitOK
}

func (s *Shell) doEdit(id int, args []Token) int {
	_, flags := splitFlags(args, editFlags)
	value := func(flag string) string {
		return strings.TrimSpace(strings.Join(flags[flag], " "))
	}

	// negative means "leave unchanged"
	priority := -1
	if v := flags["-p"]; len(v) > 0 {
		if n, err := strconv.Atoi(v[0]); err == nil {
			priority = n
		} else {
			s.out.Hint("ignoring priority " + strconv.Quote(v[0]) + ": not a number")
		}
	}

	if !s.store.Edit(id, value("-t"), value("-d"), priority, value("-D")) {
		return s.notFound(id)
	}
	s.out.OK(fmt.Sprintf("Edited task %d", id))
	return ExitOK
}

func (s *Shell) doBrowse() int {
	if s.opt.Browse == nil {
		s.out.Fail("browse: not available here")
		return ExitUsage
	}
	if err := s.opt.Browse(); err != nil {
		s.out.Fail("browse: " + err.Error())
		return ExitError
	}
	return ExitOK
}

func (s *Shell) notFound(id int) int {
	s.out.Fail(fmt.Sprintf("Task %d not found.", id))
	return ExitError
}

func parseID(args []Token) (int, bool) {
	if len(args) == 0 {
		return 0, false
	}
	id, err := strconv.Atoi(args[0].Text)
	return id, err == nil
}
