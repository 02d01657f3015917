package main

import (
	"image"
	"image/color"

	"gioui.org/font/gofont"
	"gioui.org/layout"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"gioui.org/text"
	"gioui.org/unit"
	"gioui.org/widget"
	"gioui.org/widget/material"

	. "github.com/fjl/gio-scicalc/internal/cd"
)

// calcTheme defines the calculator style.
type calcTheme struct {
	*material.Theme

	Color struct {
		Background  color.NRGBA
		Display     color.NRGBA
		Result      color.NRGBA
		Label       color.NRGBA
		Digit       color.NRGBA
		Operator    color.NRGBA
		Function    color.NRGBA
		Special     color.NRGBA
		Equals      color.NRGBA
		Active      color.NRGBA
		Tool        color.NRGBA
		Panel       color.NRGBA
		PanelText   color.NRGBA
		Entry       color.NRGBA
		StatusText  color.NRGBA
		Error       color.NRGBA
		ButtonLabel color.NRGBA
	}
	Size struct {
		DesignWidth  unit.Dp
		DesignHeight unit.Dp
		MinHeight    unit.Dp
		CornerRadius unit.Dp
		Spacing      unit.Dp
		LabelText    unit.Sp
		ToolText     unit.Sp
		PanelText    unit.Sp
		StatusText   unit.Sp
	}
	Pad struct {
		Main   layout.Inset
		Panel  layout.Inset
		Entry  layout.Inset
		Button layout.Inset
	}
}

func newCalcTheme() *calcTheme {
	th := &calcTheme{Theme: material.NewTheme()}
	th.Shaper = text.NewShaper(text.WithCollection(gofont.Collection()))

	// Colors.
	th.Color.Background = color.NRGBA{50, 50, 50, 255}
	th.Color.Display = color.NRGBA{35, 35, 35, 255}
	th.Color.Result = color.NRGBA{255, 255, 255, 255}
	th.Color.Label = color.NRGBA{160, 160, 160, 255}
	th.Color.Digit = color.NRGBA{90, 90, 90, 255}
	th.Color.Operator = color.NRGBA{122, 90, 90, 255}
	th.Color.Function = color.NRGBA{70, 82, 100, 255}
	th.Color.Special = color.NRGBA{70, 70, 70, 255}
	th.Color.Equals = color.NRGBA{160, 90, 90, 255}
	th.Color.Active = color.NRGBA{93, 150, 175, 255}
	th.Color.Tool = color.NRGBA{60, 60, 60, 255}
	th.Color.Panel = color.NRGBA{245, 245, 245, 255}
	th.Color.PanelText = color.NRGBA{50, 50, 50, 255}
	th.Color.Entry = color.NRGBA{230, 230, 230, 255}
	th.Color.StatusText = color.NRGBA{119, 119, 119, 255}
	th.Color.Error = color.NRGBA{220, 70, 70, 255}
	th.Color.ButtonLabel = color.NRGBA{255, 255, 255, 255}

	th.Palette.Bg = th.Color.Panel
	th.Palette.Fg = th.Color.PanelText
	th.Palette.ContrastBg = th.Color.Function
	th.Palette.ContrastFg = th.Color.ButtonLabel

	// Sizes.
	th.Size.DesignWidth = 330
	th.Size.DesignHeight = 560
	th.Size.MinHeight = 420
	th.Size.CornerRadius = 3.5
	th.Size.Spacing = 6
	th.Size.LabelText = 16
	th.Size.ToolText = 13
	th.Size.PanelText = 15
	th.Size.StatusText = 13

	// Padding.
	th.Pad.Main = layout.UniformInset(th.Size.Spacing)
	th.Pad.Panel = layout.UniformInset(unit.Dp(10))
	th.Pad.Entry = layout.Inset{
		Top:    unit.Dp(6),
		Bottom: unit.Dp(6),
		Left:   unit.Dp(8),
		Right:  unit.Dp(8),
	}
	th.Pad.Button = layout.Inset{
		Top:    unit.Dp(6),
		Bottom: unit.Dp(6),
		Left:   unit.Dp(10),
		Right:  unit.Dp(10),
	}
	return th
}

// KeyButton makes a keypad button. The text size follows the button height.
func (th *calcTheme) KeyButton(gtx C, click *widget.Clickable, caption string, bg color.NRGBA, radius unit.Dp) material.ButtonStyle {
	textSizePx := float32(gtx.Constraints.Max.Y) / 2.4
	b := material.Button(th.Theme, click, caption)
	b.Background = bg
	b.Color = th.Color.ButtonLabel
	b.Inset = layout.Inset{}
	b.TextSize = unit.Sp(textSizePx / gtx.Metric.PxPerSp)
	b.CornerRadius = radius
	return b
}

// ToolButton makes a toolbar button, highlighted when active.
func (th *calcTheme) ToolButton(click *widget.Clickable, caption string, active bool) material.ButtonStyle {
	b := material.Button(th.Theme, click, caption)
	b.Background = th.Color.Tool
	if active {
		b.Background = th.Color.Active
	}
	b.Color = th.Color.ButtonLabel
	b.TextSize = th.Size.ToolText
	b.CornerRadius = th.Size.CornerRadius
	b.Inset = layout.UniformInset(unit.Dp(6))
	return b
}

// PanelButton makes a button for the panels.
func (th *calcTheme) PanelButton(click *widget.Clickable, caption string) material.ButtonStyle {
	b := material.Button(th.Theme, click, caption)
	b.TextSize = th.Size.PanelText
	b.CornerRadius = th.Size.CornerRadius
	b.Inset = th.Pad.Button
	return b
}

// Title makes a panel title.
func (th *calcTheme) Title(txt string) material.LabelStyle {
	l := material.H6(th.Theme, txt)
	l.Color = th.Color.PanelText
	return l
}

// PanelLabel makes a label for panel text.
func (th *calcTheme) PanelLabel(txt string) material.LabelStyle {
	l := material.Label(th.Theme, th.Size.PanelText, txt)
	l.Color = th.Color.PanelText
	return l
}

// StatusLabel makes a label with status line style.
func (th *calcTheme) StatusLabel(txt string) material.LabelStyle {
	l := material.Label(th.Theme, th.Size.StatusText, txt)
	l.Color = th.Color.StatusText
	return l
}

// ErrorLabel makes a status label showing an error.
func (th *calcTheme) ErrorLabel(txt string) material.LabelStyle {
	l := th.StatusLabel(txt)
	l.Color = th.Color.Error
	return l
}

// Entry draws an editor on a rounded background.
func (th *calcTheme) Entry(gtx C, ed *widget.Editor, hint string) D {
	e := material.Editor(th.Theme, ed, hint)
	e.TextSize = th.Size.PanelText
	e.Color = th.Color.PanelText
	e.HintColor = th.Color.StatusText
	return th.fill(gtx, th.Color.Entry, func(gtx C) D {
		return th.Pad.Entry.Layout(gtx, e.Layout)
	})
}

// fill draws w over a rounded rectangle of the given color.
func (th *calcTheme) fill(gtx C, bg color.NRGBA, w layout.Widget) D {
	return layout.Stack{}.Layout(gtx,
		layout.Expanded(func(gtx C) D {
			rect := image.Rectangle{Max: gtx.Constraints.Min}
			rr := clip.UniformRRect(rect, gtx.Dp(th.Size.CornerRadius))
			paint.FillShape(gtx.Ops, bg, rr.Op(gtx.Ops))
			return D{Size: gtx.Constraints.Min}
		}),
		layout.Stacked(w),
	)
}
