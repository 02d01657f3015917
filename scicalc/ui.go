package main

import (
	"image"
	"image/color"
	"strings"

	"gioui.org/io/clipboard"
	"gioui.org/io/key"
	"gioui.org/layout"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"gioui.org/text"
	"gioui.org/unit"
	"gioui.org/widget"
	"gioui.org/widget/material"

	"github.com/fjl/gio-scicalc/internal/assist"
	"github.com/fjl/gio-scicalc/internal/calc"
	. "github.com/fjl/gio-scicalc/internal/cd"
)

const keypadCols = 5

// panel is the view shown below the display.
type panel int

const (
	panelKeypad panel = iota
	panelHistory
	panelStats
	panelAsk
	panelExplain
)

// calcUI is the user interface of the calculator.
type calcUI struct {
	sess   *calc.Session
	asst   *assist.Assistant
	theme  *calcTheme
	keys   [][]*keyButton
	panel  panel
	radius unit.Dp

	// Toolbar.
	angle   widget.Clickable
	inverse widget.Clickable
	sound   widget.Clickable
	hist    widget.Clickable
	stats   widget.Clickable
	ask     widget.Clickable
	explain widget.Clickable

	histPanel    historyPanel
	statsPanel   statsPanel
	askPanel     askPanel
	explainPanel explainPanel
}

// keyButton is a keypad button.
type keyButton struct {
	caption string
	fn      *calc.Func // function keys are relabeled in inverse mode
	action  calc.Action
	color   color.NRGBA
	click   widget.Clickable
}

func newCalcUI(th *calcTheme, sess *calc.Session, asst *assist.Assistant) *calcUI {
	ui := &calcUI{sess: sess, asst: asst, theme: th}
	ui.histPanel.init()
	ui.statsPanel.init()
	ui.askPanel.init()
	ui.explainPanel.init()

	var row []*keyButton
	for i := range calc.Functions {
		f := &calc.Functions[i]
		row = append(row, &keyButton{fn: f, action: f.Action(), color: th.Color.Function})
		if len(row) == keypadCols {
			ui.keys = append(ui.keys, row)
			row = nil
		}
	}
	if row != nil {
		ui.keys = append(ui.keys, row)
	}

	var (
		digit = func(d string) *keyButton {
			return &keyButton{caption: d, action: calc.AppendToken{Kind: calc.Number, Text: d}, color: th.Color.Digit}
		}
		op = func(o string) *keyButton {
			a, _ := calc.KeyAction(o)
			return &keyButton{caption: calc.Display(" " + o + " "), action: a, color: th.Color.Operator}
		}
		paren = func(p string) *keyButton {
			return &keyButton{caption: p, action: calc.AppendToken{Kind: calc.Operator, Text: p}, color: th.Color.Special}
		}
		constant = func(caption, tok string) *keyButton {
			return &keyButton{caption: caption, action: calc.AppendToken{Kind: calc.Constant, Text: tok}, color: th.Color.Special}
		}
		special = func(caption string, a calc.Action) *keyButton {
			return &keyButton{caption: caption, action: a, color: th.Color.Special}
		}
	)
	ui.keys = append(ui.keys,
		[]*keyButton{paren("("), paren(")"), constant("π", "pi"), constant("e", "e"), special("AC", calc.Clear{})},
		[]*keyButton{digit("7"), digit("8"), digit("9"), op("/"), special("⌫", calc.Backspace{})},
		[]*keyButton{digit("4"), digit("5"), digit("6"), op("*"), op("%")},
		[]*keyButton{digit("1"), digit("2"), digit("3"), op("-"), op("^")},
		[]*keyButton{digit("0"), digit("."), special("Ans", calc.InsertAnswer{}), op("+"), {caption: "=", action: calc.Commit{}, color: th.Color.Equals}},
	)
	return ui
}

// Layout draws the UI.
func (ui *calcUI) Layout(gtx C) D {
	// Adapt design for screen size.
	scaleFactor := float32(gtx.Constraints.Max.X) / float32(gtx.Dp(ui.theme.Size.DesignWidth))
	ui.radius = ui.theme.Size.CornerRadius * unit.Dp(scaleFactor)

	ui.update()
	if ui.panel == panelKeypad {
		ui.layoutInput(gtx)
	}

	inset := ui.theme.Pad.Main
	return inset.Layout(gtx, func(gtx C) D {
		return layout.Flex{Axis: layout.Vertical}.Layout(gtx,
			layout.Rigid(func(gtx C) D {
				return inset.Layout(gtx, ui.layoutToolbar)
			}),
			layout.Flexed(20, func(gtx C) D {
				return inset.Layout(gtx, ui.layoutDisplay)
			}),
			layout.Flexed(70, func(gtx C) D {
				return inset.Layout(gtx, ui.layoutPanel)
			}),
		)
	})
}

// update processes clicks of the previous frame.
func (ui *calcUI) update() {
	switch {
	case ui.angle.Clicked():
		ui.sess.Dispatch(calc.ToggleAngle{})
	case ui.inverse.Clicked():
		ui.sess.Dispatch(calc.ToggleInverse{})
	case ui.sound.Clicked():
		ui.sess.Dispatch(calc.ToggleSound{})
	case ui.hist.Clicked():
		ui.toggle(panelHistory)
	case ui.stats.Clicked():
		ui.toggle(panelStats)
	case ui.ask.Clicked():
		ui.toggle(panelAsk)
		if ui.panel == panelAsk {
			ui.askPanel.open()
		}
	case ui.explain.Clicked():
		if ui.sess.Explainable() {
			ui.explainPanel.start(ui.asst, ui.sess.ExplainQuery())
			ui.panel = panelExplain
		}
	}

	if ui.panel != panelKeypad {
		return
	}
	for _, row := range ui.keys {
		for _, k := range row {
			if k.click.Clicked() {
				ui.sess.Dispatch(k.action)
			}
		}
	}
}

// toggle shows p, or the keypad if p is already shown.
func (ui *calcUI) toggle(p panel) {
	if ui.panel == p {
		ui.panel = panelKeypad
	} else {
		ui.panel = p
	}
}

// handleReply applies an accepted assistant reply.
func (ui *calcUI) handleReply(r assist.Reply) {
	switch r.Kind {
	case assist.Translate:
		if strings.HasPrefix(r.Text, assist.ErrorPrefix) {
			ui.askPanel.setStatus(r.Text, true)
			return
		}
		ui.sess.Dispatch(calc.ApplyTranslation{Problem: r.Input, Text: r.Text})
		ui.askPanel.setStatus("", false)
		if ui.panel == panelAsk {
			ui.panel = panelKeypad
		}
	case assist.Explain:
		ui.explainPanel.text = assist.PlainText(r.Text)
	}
}

func (ui *calcUI) layoutToolbar(gtx C) D {
	th := ui.theme
	sound := "♪ off"
	if ui.sess.Sound() {
		sound = "♪ on"
	}
	tool := func(click *widget.Clickable, caption string, active bool) layout.FlexChild {
		return layout.Flexed(1, func(gtx C) D {
			return layout.Inset{Right: unit.Dp(2), Left: unit.Dp(2)}.Layout(gtx, func(gtx C) D {
				b := th.ToolButton(click, caption, active)
				return b.Layout(gtx)
			})
		})
	}
	return layout.Flex{Axis: layout.Horizontal}.Layout(gtx,
		tool(&ui.angle, ui.sess.AngleLabel(), false),
		tool(&ui.inverse, "INV", ui.sess.Inverse()),
		tool(&ui.sound, sound, false),
		tool(&ui.hist, "History", ui.panel == panelHistory),
		tool(&ui.stats, "Stats", ui.panel == panelStats),
		tool(&ui.ask, "Ask ✨", ui.panel == panelAsk),
		layout.Flexed(1, func(gtx C) D {
			b := th.ToolButton(&ui.explain, "Explain", ui.panel == panelExplain)
			show := ui.sess.Explainable() || ui.panel == panelExplain
			if !show {
				gtx = gtx.Disabled()
			}
			return layout.Inset{Left: unit.Dp(2)}.Layout(gtx, func(gtx C) D {
				return showIf(show, gtx, b.Layout)
			})
		}),
	)
}

func (ui *calcUI) layoutDisplay(gtx C) D {
	rect := image.Rectangle{Max: gtx.Constraints.Max}
	rr := clip.UniformRRect(rect, gtx.Dp(ui.radius))
	paint.FillShape(gtx.Ops, ui.theme.Color.Display, rr.Op(gtx.Ops))

	inset := ui.theme.Pad.Main
	return inset.Layout(gtx, func(gtx C) D {
		return layout.Flex{Axis: layout.Vertical}.Layout(gtx,
			layout.Rigid(func(gtx C) D {
				l := material.Label(ui.theme.Theme, ui.theme.Size.LabelText, ui.sess.DisplayLabel())
				l.Color = ui.theme.Color.Label
				l.Alignment = text.End
				l.MaxLines = 1
				gtx.Constraints.Min.X = gtx.Constraints.Max.X
				return l.Layout(gtx)
			}),
			layout.Flexed(1, ui.layoutResultText),
		)
	})
}

func (ui *calcUI) layoutResultText(gtx C) D {
	// Scale font based on height.
	fontSizePx := float32(gtx.Constraints.Max.Y) / 1.3
	fontSizeSp := unit.Sp(fontSizePx / gtx.Metric.PxPerSp)

	l := material.Label(ui.theme.Theme, fontSizeSp, ui.sess.DisplayExpression())
	l.Color = ui.theme.Color.Result
	l.MaxLines = 1
	return shrinkToFit(gtx, l.Layout)
}

func (ui *calcUI) layoutPanel(gtx C) D {
	switch ui.panel {
	case panelHistory:
		return ui.histPanel.layout(gtx, ui)
	case panelStats:
		return ui.statsPanel.layout(gtx, ui)
	case panelAsk:
		return ui.askPanel.layout(gtx, ui)
	case panelExplain:
		return ui.explainPanel.layout(gtx, ui)
	default:
		return ui.layoutKeypad(gtx)
	}
}

func (ui *calcUI) layoutKeypad(gtx C) D {
	g := grid{
		rows:    len(ui.keys),
		cols:    keypadCols,
		spacing: gtx.Dp(ui.theme.Size.Spacing),
	}
	return g.layout(gtx, func(row, col int, gtx C) D {
		if col >= len(ui.keys[row]) {
			return D{}
		}
		k := ui.keys[row][col]
		caption := k.caption
		if k.fn != nil {
			caption = ui.sess.FunctionLabel(*k.fn)
		}
		b := ui.theme.KeyButton(gtx, &k.click, caption, k.color, ui.radius)
		return b.Layout(gtx)
	})
}

// layoutInput registers the global key handler.
func (ui *calcUI) layoutInput(gtx C) {
	input := key.InputOp{
		Tag:  ui,
		Hint: key.HintNumeric,
		Keys: "Short-[C,V]|(Shift)-[0,1,2,3,4,5,6,7,8,9,.,+,-,*,/,%,^,(,),=,⌤,⏎,⌫,⌦,⎋]",
	}
	input.Add(gtx.Ops)

	// Request keyboard focus. This is required to make the Return key work.
	key.FocusOp{Tag: ui}.Add(gtx.Ops)

	for _, ev := range gtx.Queue.Events(ui) {
		switch ev := ev.(type) {
		case key.Event:
			if ev.State == key.Release {
				continue
			}
			switch {
			case isCopy(ev):
				op := clipboard.WriteOp{Text: ui.sess.Expression()}
				op.Add(gtx.Ops)
			case isPaste(ev):
				op := clipboard.ReadOp{Tag: ui}
				op.Add(gtx.Ops)
			default:
				if a, ok := calc.KeyAction(ev.Name); ok {
					ui.sess.Dispatch(a)
				}
			}

		case clipboard.Event:
			ui.sess.Dispatch(calc.Paste{Text: ev.Text})
		}
	}
}

func isCopy(e key.Event) bool {
	return e.Name == "C" && e.Modifiers.Contain(key.ModShortcut)
}

func isPaste(e key.Event) bool {
	return e.Name == "V" && e.Modifiers.Contain(key.ModShortcut)
}
