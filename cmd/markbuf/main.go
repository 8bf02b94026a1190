// Package main runs Lua scripts against an in-memory editor and prints
// the resulting buffer content.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	lua "github.com/yuin/gopher-lua"

	"github.com/markbuf/markbuf/buffer"
	"github.com/markbuf/markbuf/config"
	"github.com/markbuf/markbuf/luahost"
	"github.com/markbuf/markbuf/mark"
	"github.com/markbuf/markbuf/membuf"
)

var version = "dev"

func main() {
	os.Exit(run())
}

func run() int {
	var (
		configPath  string
		showVersion bool
	)

	flag.StringVar(&configPath, "config", "", "Path to configuration file")
	flag.StringVar(&configPath, "c", "", "Path to configuration file (shorthand)")
	flag.BoolVar(&showVersion, "version", false, "Show version information")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "markbuf - scriptable text buffer host\n\n")
		fmt.Fprintf(os.Stderr, "Usage: markbuf [options] script.lua...\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	if showVersion {
		fmt.Printf("markbuf %s\n", version)
		return 0
	}

	if flag.NArg() == 0 {
		flag.Usage()
		return 1
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	log, err := cfg.Log.NewLogger(os.Stderr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	slog.SetDefault(log)

	reaper := mark.NewReaper(cfg.Reaper.Options(log)...)
	defer reaper.Close()

	ed := membuf.NewEditor(membuf.WithLogger(log))
	host := luahost.New(ed, luahost.WithLogger(log), luahost.WithReaper(reaper))

	L := lua.NewState()
	defer L.Close()
	host.Register(L)

	for _, script := range flag.Args() {
		log.Debug("running script", "script", script)
		if err := L.DoFile(script); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %s: %v\n", script, err)
			return 1
		}
	}

	if err := printCurrentBuffer(ed); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func printCurrentBuffer(ed *membuf.Editor) error {
	ctx := context.Background()

	h, err := ed.CurrentBuffer(ctx)
	if err != nil {
		return err
	}

	l, err := h.Read(ctx)
	if err != nil {
		return err
	}
	defer l.Release()

	content, err := buffer.Content(l)
	if err != nil {
		return err
	}
	fmt.Println(content)
	return nil
}
