package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"
	"go.framing.dev/pkg"
)

const (
	historyFile = ".framing_history"
	promptMain  = "framing> "
	helpText    = `Every line is appended to the buffer as an insert edit.
  :show    print the buffer
  :reset   empty the buffer
  :quit    exit
`
)

func runREPL() int {
	fmt.Println("Ctrl+C to cancel input, Ctrl+D to exit. Type :help for commands.")

	home, _ := os.UserHomeDir()
	histPath := filepath.Join(home, historyFile)

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	if f, err := os.Open(histPath); err == nil {
		_, _ = ln.ReadHistory(f)
		_ = f.Close()
	}

	session := framing.NewSession()
	var buffer strings.Builder

	for {
		line, err := ln.Prompt(promptMain)
		if retryPrompt(err) {
			continue
		}

		if err != nil {
			if !errors.Is(err, io.EOF) {
				fmt.Fprintln(os.Stderr, err)
			}
			fmt.Println()
			break
		}

		if strings.HasPrefix(strings.TrimSpace(line), ":") {
			if handleCommand(strings.TrimSpace(line), session, &buffer) {
				break
			}

			continue
		}

		if strings.TrimSpace(line) == "" {
			continue
		}

		ln.AppendHistory(line)

		if buffer.Len() > 0 {
			buffer.WriteByte('\n')
		}
		buffer.WriteString(line)

		report, err := session.Insert(buffer.String())
		if err != nil {
			// The buffer is kept; a later line may complete it.
			printError(buffer.String(), err)
			continue
		}

		if report.Found() {
			printMatch(report.Snapshot, report.Match)
		}
	}

	if f, err := os.Create(histPath); err == nil {
		_, _ = ln.WriteHistory(f)
		_ = f.Close()
	}

	return 0
}

// retryPrompt reports whether reading may continue after err. Ctrl+C only
// drops the current line; EOF and terminal failures end the session.
func retryPrompt(err error) bool {
	return errors.Is(err, liner.ErrPromptAborted)
}

func handleCommand(cmd string, session *framing.Session, buffer *strings.Builder) (exit bool) {
	switch cmd {
	case ":quit", ":exit":
		return true
	case ":reset":
		buffer.Reset()
		session.Reset()
		fmt.Println("buffer reset.")
	case ":show":
		fmt.Println(buffer.String())
	case ":help":
		fmt.Print(helpText)
	default:
		fmt.Println("unknown command. Type :help for help.")
	}

	return false
}
