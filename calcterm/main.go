// Command calcterm is the terminal version of the scientific calculator.
// It shares the settings and history of scicalc when pointed at the same
// data directory.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	"github.com/chzyer/readline"

	"github.com/fjl/gio-scicalc/internal/calc"
	"github.com/fjl/gio-scicalc/internal/calcstore"
	"github.com/fjl/gio-scicalc/internal/config"
	"github.com/fjl/gio-scicalc/internal/engine"
	"github.com/fjl/gio-scicalc/internal/history"
)

const prompt = "> "

var (
	configFile = flag.String("config", "", "configuration file (YAML)")
	dataDir    = flag.String("datadir", "", "data directory")
	verbose    = flag.Bool("v", false, "log to stderr")
)

func main() {
	flag.Usage = func() {
		fmt.Fprintln(os.Stderr, "usage: calcterm [<options>]")
		flag.PrintDefaults()
	}
	flag.Parse()
	log.SetPrefix("calcterm: ")
	if !*verbose {
		log.SetOutput(io.Discard)
	}

	cfg, err := config.Load(*configFile)
	if err != nil {
		fatal(err)
	}
	if *dataDir != "" {
		cfg.DataDir = *dataDir
	}
	if err := run(&cfg); err != nil {
		fatal(err)
	}
}

func fatal(err error) {
	fmt.Fprintln(os.Stderr, "calcterm:", err)
	os.Exit(1)
}

func run(cfg *config.Config) error {
	datadir := cfg.DataDir
	if datadir == "" {
		dir, err := os.UserConfigDir()
		if err != nil {
			return err
		}
		datadir = filepath.Join(dir, "scicalc")
	}
	store, err := calcstore.Open(datadir)
	if err != nil {
		return err
	}
	defer store.Close()

	hist := history.NewLog(store, store.LoadHistory())
	t := &term{
		sess: calc.NewSession(engine.New(engine.Degree), hist,
			calc.WithPrefs(store),
			calc.WithSound(store.Sound()),
		),
		asker: cfg.Client(),
	}

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          prompt,
		HistoryFile:     filepath.Join(datadir, "calcterm.history"),
		AutoComplete:    completer(),
		InterruptPrompt: "^C",
		EOFPrompt:       ":quit",
	})
	if err != nil {
		return err
	}
	defer rl.Close()
	t.out = rl.Stdout()

	fmt.Fprintln(t.out, "Type :help for help.")
	for {
		line, err := rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			if len(line) == 0 {
				return nil
			}
			continue
		} else if err == io.EOF {
			return nil
		} else if err != nil {
			return err
		}
		if !t.exec(line) {
			return nil
		}
	}
}

func completer() *readline.PrefixCompleter {
	items := []readline.PrefixCompleterInterface{
		readline.PcItem(":deg"),
		readline.PcItem(":rad"),
		readline.PcItem(":inv"),
		readline.PcItem(":ans"),
		readline.PcItem(":back"),
		readline.PcItem(":clear"),
		readline.PcItem(":sound"),
		readline.PcItem(":history"),
		readline.PcItem(":load"),
		readline.PcItem(":clear-history"),
		readline.PcItem(":stats"),
		readline.PcItem(":ask"),
		readline.PcItem(":explain"),
		readline.PcItem(":help"),
		readline.PcItem(":quit"),
	}
	for _, f := range calc.Functions {
		items = append(items, readline.PcItem(f.Text))
	}
	return readline.NewPrefixCompleter(items...)
}
