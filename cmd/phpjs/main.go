package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/peterh/liner"

	phpjs "github.com/Abdelaziz1586/php-js"
)

const (
	appName     = "phpjs"
	historyFile = ".phpjs_history"
	promptMain  = "==> "
)

var banner = fmt.Sprintf("PHP-JS %s REPL\nCtrl+C cancels input, Ctrl+D exits. Type :quit to exit.", phpjs.Version)

func red(s string) string  { return "\x1b[31m" + s + "\x1b[0m" }
func blue(s string) string { return "\x1b[94m" + s + "\x1b[0m" }

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	switch cmd := os.Args[1]; cmd {
	case "run":
		os.Exit(cmdRun(os.Args[2:]))
	case "repl":
		os.Exit(cmdRepl())
	case "version":
		fmt.Println(phpjs.Version)
	case "-h", "--help", "help":
		usage()
	default:
		fmt.Fprintf(os.Stderr, "%s: unknown command %q\n", appName, cmd)
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Printf(`PHP-JS %s

Usage:
  %s run <file.pjs>    Run a script and print its output.
  %s repl              Start the interactive REPL.
  %s version           Print the version.

`, phpjs.Version, appName, appName, appName)
}

// -----------------------------------------------------------------------------
// run
// -----------------------------------------------------------------------------

func cmdRun(args []string) int {
	if len(args) != 1 {
		fmt.Fprintf(os.Stderr, "usage: %s run <file.pjs>\n", appName)
		return 2
	}

	src, err := os.ReadFile(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: cannot read %s: %v\n", appName, args[0], err)
		return 1
	}

	stmts, perrs := phpjs.Parse(string(src))
	for _, pe := range perrs {
		fmt.Fprintln(os.Stderr, red(phpjs.WrapErrorWithSource(pe, string(src)).Error()))
	}

	ip := phpjs.NewInterpreter()
	out := ip.Interpret(stmts)
	if out != "" {
		fmt.Println(out)
	}
	if len(perrs) > 0 {
		return 1
	}
	return 0
}

// -----------------------------------------------------------------------------
// repl
// -----------------------------------------------------------------------------

func cmdRepl() int {
	fmt.Println(banner)

	home, _ := os.UserHomeDir()
	histPath := filepath.Join(home, historyFile)

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	defer func() {
		if f, err := os.Create(histPath); err == nil {
			_, _ = ln.WriteHistory(f)
			_ = f.Close()
		}
	}()

	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, os.Interrupt, syscall.SIGTERM, syscall.SIGHUP)
	defer signal.Stop(sigc)
	go func() {
		<-sigc
		ln.Close()
		os.Exit(130)
	}()

	if f, err := os.Open(histPath); err == nil {
		_, _ = ln.ReadHistory(f)
		_ = f.Close()
	}

	ip := phpjs.NewInterpreter()

	for {
		code, err := ln.Prompt(promptMain)
		if errors.Is(err, io.EOF) {
			fmt.Println()
			return 0
		}
		if err != nil {
			continue
		}
		if strings.TrimSpace(code) == "" {
			continue
		}
		if strings.TrimSpace(strings.ToLower(code)) == ":quit" {
			return 0
		}

		stmts, perrs := phpjs.Parse(code)
		if len(perrs) > 0 {
			fmt.Fprintln(os.Stderr, red(phpjs.WrapErrorWithSource(perrs[0], code).Error()))
			continue
		}
		if out := ip.Interpret(stmts); out != "" {
			fmt.Println(blue(out))
		}
		ln.AppendHistory(code)
	}
}
