package main

import (
	"errors"
	"strings"

	"gioui.org/io/key"
	"gioui.org/layout"
	"gioui.org/unit"
	"gioui.org/widget"
	"gioui.org/widget/material"

	"github.com/fjl/gio-scicalc/internal/assist"
	"github.com/fjl/gio-scicalc/internal/calc"
	. "github.com/fjl/gio-scicalc/internal/cd"
	"github.com/fjl/gio-scicalc/internal/stats"
)

var space = layout.Spacer{Height: unit.Dp(8)}

// layoutPanel draws a panel with a title and a close button above body.
func layoutPanel(gtx C, th *calcTheme, title string, close *widget.Clickable, body layout.Widget) D {
	return th.fill(gtx, th.Color.Panel, func(gtx C) D {
		gtx.Constraints.Min = gtx.Constraints.Max
		return th.Pad.Panel.Layout(gtx, func(gtx C) D {
			return layout.Flex{Axis: layout.Vertical}.Layout(gtx,
				layout.Rigid(func(gtx C) D {
					return layout.Flex{Alignment: layout.Middle, Spacing: layout.SpaceBetween}.Layout(gtx,
						layout.Rigid(th.Title(title).Layout),
						layout.Rigid(func(gtx C) D {
							b := th.PanelButton(close, "✕")
							return b.Layout(gtx)
						}),
					)
				}),
				layout.Rigid(space.Layout),
				layout.Flexed(1, body),
			)
		})
	})
}

// historyPanel lists past calculations, newest first.
type historyPanel struct {
	list   layout.List
	clicks []widget.Clickable
	clear  widget.Clickable
	close  widget.Clickable
}

func (p *historyPanel) init() {
	p.list.Axis = layout.Vertical
}

func (p *historyPanel) layout(gtx C, ui *calcUI) D {
	th := ui.theme
	entries := ui.sess.History().Recent()
	if len(p.clicks) < len(entries) {
		p.clicks = append(p.clicks, make([]widget.Clickable, len(entries)-len(p.clicks))...)
	}

	// Process clicks.
	if p.close.Clicked() {
		ui.panel = panelKeypad
	}
	if p.clear.Clicked() {
		ui.sess.Dispatch(calc.ClearHistory{})
		entries = nil
	}
	for i := range entries {
		if p.clicks[i].Clicked() {
			ui.sess.Dispatch(calc.LoadEntry{Entry: entries[i]})
			ui.panel = panelKeypad
		}
	}

	return layoutPanel(gtx, th, "History", &p.close, func(gtx C) D {
		if len(entries) == 0 {
			return th.StatusLabel("No history yet").Layout(gtx)
		}
		return layout.Flex{Axis: layout.Vertical}.Layout(gtx,
			layout.Flexed(1, func(gtx C) D {
				return p.list.Layout(gtx, len(entries), func(gtx C, i int) D {
					e := entries[i]
					return layout.Inset{Bottom: unit.Dp(4)}.Layout(gtx, func(gtx C) D {
						return material.Clickable(gtx, &p.clicks[i], func(gtx C) D {
							return th.fill(gtx, th.Color.Entry, func(gtx C) D {
								gtx.Constraints.Min.X = gtx.Constraints.Max.X
								return th.Pad.Entry.Layout(gtx, func(gtx C) D {
									return layout.Flex{Axis: layout.Vertical}.Layout(gtx,
										layout.Rigid(th.PanelLabel(calc.Display(e.Expression)).Layout),
										layout.Rigid(th.StatusLabel(e.Timestamp).Layout),
									)
								})
							})
						})
					})
				})
			}),
			layout.Rigid(space.Layout),
			layout.Rigid(func(gtx C) D {
				b := th.PanelButton(&p.clear, "Clear History")
				return b.Layout(gtx)
			}),
		)
	})
}

// statsPanel computes statistics of a number list.
type statsPanel struct {
	input     widget.Editor
	calculate widget.Clickable
	close     widget.Clickable
	result    []stats.Field
	err       string
}

func (p *statsPanel) init() {
	p.input = widget.Editor{SingleLine: true, Submit: true, InputHint: key.HintNumeric}
}

func (p *statsPanel) compute() {
	r, err := stats.Compute(p.input.Text())
	switch {
	case errors.Is(err, stats.ErrEmptyInput):
		p.result, p.err = nil, "Please enter numbers"
	case err != nil:
		p.result, p.err = nil, "Invalid input"
	default:
		p.result, p.err = r.Fields(), ""
	}
}

func (p *statsPanel) layout(gtx C, ui *calcUI) D {
	th := ui.theme
	for _, e := range p.input.Events() {
		if _, ok := e.(widget.SubmitEvent); ok {
			p.compute()
		}
	}
	if p.calculate.Clicked() {
		p.compute()
	}
	if p.close.Clicked() {
		ui.panel = panelKeypad
	}

	return layoutPanel(gtx, th, "Statistics", &p.close, func(gtx C) D {
		children := []layout.FlexChild{
			layout.Rigid(func(gtx C) D {
				return th.Entry(gtx, &p.input, "Numbers, separated by commas")
			}),
			layout.Rigid(space.Layout),
			layout.Rigid(func(gtx C) D {
				b := th.PanelButton(&p.calculate, "Calculate")
				return b.Layout(gtx)
			}),
			layout.Rigid(space.Layout),
		}
		if p.err != "" {
			children = append(children, layout.Rigid(th.ErrorLabel(p.err).Layout))
		}
		for _, f := range p.result {
			f := f
			children = append(children, layout.Rigid(func(gtx C) D {
				return layout.Flex{Spacing: layout.SpaceBetween}.Layout(gtx,
					layout.Rigid(th.PanelLabel(f.Name+":").Layout),
					layout.Rigid(th.PanelLabel(f.Value).Layout),
				)
			}))
		}
		return layout.Flex{Axis: layout.Vertical}.Layout(gtx, children...)
	})
}

// askPanel turns a word problem into an expression.
type askPanel struct {
	input   widget.Editor
	submit  widget.Clickable
	close   widget.Clickable
	status  string
	failed  bool
	pending bool
}

func (p *askPanel) init() {
	p.input = widget.Editor{Submit: true}
}

func (p *askPanel) open() {
	p.input.Focus()
}

func (p *askPanel) setStatus(s string, failed bool) {
	p.status, p.failed, p.pending = s, failed, false
}

func (p *askPanel) send(asst *assist.Assistant) {
	problem := strings.TrimSpace(p.input.Text())
	if problem == "" {
		p.setStatus("Please enter a problem.", true)
		return
	}
	asst.Translate(problem)
	p.status, p.failed, p.pending = "Generating expression... ✨", false, true
}

func (p *askPanel) layout(gtx C, ui *calcUI) D {
	th := ui.theme
	busy := ui.asst.Pending(assist.Translate)
	for _, e := range p.input.Events() {
		if _, ok := e.(widget.SubmitEvent); ok && !busy {
			p.send(ui.asst)
		}
	}
	if p.submit.Clicked() && !busy {
		p.send(ui.asst)
	}
	if p.close.Clicked() {
		ui.panel = panelKeypad
	}

	return layoutPanel(gtx, th, "Solve a word problem", &p.close, func(gtx C) D {
		return layout.Flex{Axis: layout.Vertical}.Layout(gtx,
			layout.Rigid(func(gtx C) D {
				return th.Entry(gtx, &p.input, "e.g. What is 15% of 240?")
			}),
			layout.Rigid(space.Layout),
			layout.Rigid(func(gtx C) D {
				if p.pending || ui.asst.Pending(assist.Translate) {
					gtx = gtx.Disabled()
				}
				b := th.PanelButton(&p.submit, "Generate Expression")
				return b.Layout(gtx)
			}),
			layout.Rigid(space.Layout),
			layout.Rigid(func(gtx C) D {
				if p.failed {
					return th.ErrorLabel(p.status).Layout(gtx)
				}
				return th.StatusLabel(p.status).Layout(gtx)
			}),
		)
	})
}

// explainPanel shows the explanation of the last calculation.
type explainPanel struct {
	list  layout.List
	close widget.Clickable
	query string
	text  string
}

func (p *explainPanel) init() {
	p.list.Axis = layout.Vertical
}

func (p *explainPanel) start(asst *assist.Assistant, query string) {
	p.query = query
	p.text = "Loading explanation... ✨"
	asst.Explain(query)
}

func (p *explainPanel) layout(gtx C, ui *calcUI) D {
	th := ui.theme
	if p.close.Clicked() {
		ui.panel = panelKeypad
	}
	return layoutPanel(gtx, th, "Explanation", &p.close, func(gtx C) D {
		return p.list.Layout(gtx, 2, func(gtx C, i int) D {
			if i == 0 {
				return layout.Inset{Bottom: unit.Dp(8)}.Layout(gtx, th.StatusLabel(calc.Display(p.query)).Layout)
			}
			return th.PanelLabel(p.text).Layout(gtx)
		})
	})
}
