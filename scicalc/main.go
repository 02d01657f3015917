// Command scicalc is a scientific calculator with history, statistics and an
// optional language model assistant.
package main

import (
	"flag"
	"log"
	"os"
	"path/filepath"

	"gioui.org/app"
	"gioui.org/io/system"
	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/op/paint"

	"github.com/fjl/gio-scicalc/internal/assist"
	"github.com/fjl/gio-scicalc/internal/calc"
	"github.com/fjl/gio-scicalc/internal/calcstore"
	"github.com/fjl/gio-scicalc/internal/config"
	"github.com/fjl/gio-scicalc/internal/engine"
	"github.com/fjl/gio-scicalc/internal/history"
)

var (
	configFile = flag.String("config", "", "configuration file (YAML)")
	dataDir    = flag.String("datadir", "", "data directory")
)

func main() {
	flag.Parse()
	cfg, err := config.Load(*configFile)
	if err != nil {
		log.Fatal(err)
	}
	if *dataDir != "" {
		cfg.DataDir = *dataDir
	}

	go func() {
		var (
			theme    = newCalcTheme()
			title    = app.Title("SciCalc")
			size     = app.Size(theme.Size.DesignWidth, theme.Size.DesignHeight)
			statusBg = app.StatusColor(theme.Color.Background)
			navBg    = app.NavigationColor(theme.Color.Background)
			portrait = app.PortraitOrientation.Option()
			window   = app.NewWindow(title, size, statusBg, navBg, portrait)
		)
		window.Option(app.MinSize(theme.Size.DesignWidth, theme.Size.MinHeight))

		if err := loop(window, theme, &cfg); err != nil {
			log.Fatal(err)
		}
		os.Exit(0)
	}()
	app.Main()
}

// loop is the main loop of the app.
func loop(w *app.Window, theme *calcTheme, cfg *config.Config) error {
	datadir := cfg.DataDir
	if datadir == "" {
		dir, err := app.DataDir()
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

	asst := assist.New(cfg.Client())
	defer asst.Close()

	var (
		hist = history.NewLog(store, store.LoadHistory())
		sess = calc.NewSession(engine.New(engine.Degree), hist,
			calc.WithPrefs(store),
			calc.WithSound(store.Sound()),
			calc.WithRedraw(w.Invalidate),
		)
		ui  = newCalcUI(theme, sess, asst)
		ops op.Ops
	)
	for {
		select {
		case r := <-asst.Replies():
			if asst.Accept(r) {
				ui.handleReply(r)
				w.Invalidate()
			} else {
				log.Printf("dropping superseded %v reply #%d", r.Kind, r.Seq)
			}
		case e := <-w.Events():
			switch e := e.(type) {
			case system.StageEvent:
				if e.Stage == system.StagePaused {
					store.Persist()
				}
			case system.DestroyEvent:
				return e.Err
			case system.FrameEvent:
				gtx := layout.NewContext(&ops, e)
				paint.Fill(gtx.Ops, theme.Color.Background)
				ui.Layout(gtx)
				e.Frame(gtx.Ops)
			}
		}
	}
}
