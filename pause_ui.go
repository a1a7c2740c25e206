package main

import (
	"fmt"
	"image/color"

	"github.com/milk9111/hudcompass/common"
	"github.com/milk9111/hudcompass/config"
	"golang.org/x/image/font/basicfont"

	"github.com/ebitenui/ebitenui"
	imageui "github.com/ebitenui/ebitenui/image"
	"github.com/ebitenui/ebitenui/widget"
	ebtext "github.com/hajimehoshi/ebiten/v2/text/v2"
)

const scaleStep = 0.1

// NewPauseUI builds the pause menu with the compass preferences.
func NewPauseUI(g *Game) *ebitenui.UI {
	panelImg := imageui.NewNineSliceColor(color.NRGBA{R: 0x00, G: 0x00, B: 0x00, A: 200})
	btnImg := imageui.NewNineSliceColor(color.NRGBA{R: 0x33, G: 0x33, B: 0x33, A: 255})

	goFace := ebtext.NewGoXFace(basicfont.Face7x13)
	var face ebtext.Face = goFace

	white := color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	btnTextColor := &widget.ButtonTextColor{Idle: white}
	centered := widget.WidgetOpts.LayoutData(widget.RowLayoutData{Position: widget.RowLayoutPositionCenter})

	title := widget.NewText(
		widget.TextOpts.Text("Paused", &face, white),
		widget.TextOpts.WidgetOpts(centered),
	)
	scaleText := widget.NewText(
		widget.TextOpts.Text(scaleLabel(g.prefs.p), &face, white),
		widget.TextOpts.WidgetOpts(centered),
	)

	button := func(label string, onClick func(b *widget.Button)) *widget.Button {
		var b *widget.Button
		b = widget.NewButton(
			widget.ButtonOpts.Image(&widget.ButtonImage{Idle: btnImg, Pressed: btnImg}),
			widget.ButtonOpts.Text(label, &face, btnTextColor),
			widget.ButtonOpts.WidgetOpts(centered),
			widget.ButtonOpts.ClickedHandler(func(args *widget.ButtonClickedEventArgs) {
				onClick(b)
			}),
		)
		return b
	}

	resumeBtn := button("Resume", func(*widget.Button) {
		g.paused = false
	})
	invertBtn := button(invertLabel(g.prefs.p), func(b *widget.Button) {
		p := g.prefs.p
		p.InvertCompassRotation = !p.InvertCompassRotation
		g.setPreferences(p)
		b.Text().Label = invertLabel(p)
	})
	smallerBtn := button("Smaller", func(*widget.Button) {
		p := g.prefs.p
		p.CompassScale = common.Clamp(p.CompassScale-scaleStep, scaleStep, 4)
		g.setPreferences(p)
		scaleText.Label = scaleLabel(p)
	})
	largerBtn := button("Larger", func(*widget.Button) {
		p := g.prefs.p
		p.CompassScale = common.Clamp(p.CompassScale+scaleStep, scaleStep, 4)
		g.setPreferences(p)
		scaleText.Label = scaleLabel(p)
	})
	saveBtn := button("Save", func(*widget.Button) {
		g.savePreferences()
	})

	panel := widget.NewContainer(
		widget.ContainerOpts.BackgroundImage(panelImg),
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionVertical),
			widget.RowLayoutOpts.Spacing(10),
			widget.RowLayoutOpts.Padding(&widget.Insets{Top: 20, Bottom: 20, Left: 30, Right: 30}),
		)),
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.MinSize(common.BaseWidth/2, common.BaseHeight/2),
			widget.WidgetOpts.LayoutData(widget.AnchorLayoutData{HorizontalPosition: widget.AnchorLayoutPositionCenter, VerticalPosition: widget.AnchorLayoutPositionCenter}),
		),
	)
	panel.AddChild(title)
	panel.AddChild(resumeBtn)
	panel.AddChild(invertBtn)
	panel.AddChild(scaleText)
	panel.AddChild(smallerBtn)
	panel.AddChild(largerBtn)
	panel.AddChild(saveBtn)

	root := widget.NewContainer(
		widget.ContainerOpts.Layout(widget.NewAnchorLayout()),
	)
	root.AddChild(panel)

	return &ebitenui.UI{Container: root}
}

func invertLabel(p config.Preferences) string {
	if p.InvertCompassRotation {
		return "Invert rotation: on"
	}
	return "Invert rotation: off"
}

func scaleLabel(p config.Preferences) string {
	return fmt.Sprintf("Compass scale: %.1f", p.CompassScale)
}
