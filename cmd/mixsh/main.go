package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/chzyer/readline"
	"github.com/robertkrimen/isatty"
	"github.com/vilterp/mixins/pkg/log"
	"github.com/vilterp/mixins/pkg/monkey"
	"go.uber.org/zap"
)

var (
	historyFile = flag.String("history", "/tmp/.mixsh-history", "file to keep shell history in")
	verbose     = flag.Bool("v", false, "log patch and merge activity to stderr")
)

func main() {
	flag.Parse()

	if *verbose {
		logger, err := zap.NewDevelopment()
		if err != nil {
			fmt.Println("couldn't set up logging:", err)
			os.Exit(1)
		}
		defer logger.Sync()
		log.SetLogger(logger)
	}

	isInputTty := isatty.Check(os.Stdin.Fd())
	if isInputTty {
		fmt.Println("mixin shell")
		fmt.Println(`\h for help`)
	}

	prompt := ""
	if isInputTty {
		prompt = "mixsh> "
	}
	l, err := readline.NewEx(&readline.Config{
		Prompt:            prompt,
		HistoryFile:       *historyFile,
		InterruptPrompt:   "^C",
		EOFPrompt:         "bye!",
		HistorySearchFold: true,
	})
	if err != nil {
		panic(err)
	}
	defer l.Close()

	sess := newSession(monkey.Default, os.Stdout)
	for {
		line, readlineErr := l.Readline()
		if readlineErr != nil {
			return
		}
		if err := sess.exec(line); err != nil {
			fmt.Println("error:", err)
		}
	}
}
