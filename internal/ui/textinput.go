package ui

import (
	"image/color"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

const MAX_HISTORY = 20

type TextInput struct {
	Text     string
	IsActive bool
	X, Y     int
	Width    int
	Height   int
	OnSubmit func(string)

	history []string
	cursor  int // index into history while browsing, len(history) when not
}

func NewTextInput(x, y, width, height int, onSubmit func(string)) *TextInput {
	return &TextInput{
		Text:     "",
		IsActive: false,
		X:        x,
		Y:        y,
		Width:    width,
		Height:   height,
		OnSubmit: onSubmit,
	}
}

func (ti *TextInput) Update() {
	if !ti.IsActive {
		return
	}

	ti.Text += strings.ToUpper(string(ebiten.AppendInputChars(nil)))

	if inpututil.IsKeyJustPressed(ebiten.KeyBackspace) {
		if len(ti.Text) > 0 {
			ti.Text = ti.Text[:len(ti.Text)-1]
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyArrowUp) {
		ti.Recall(-1)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyArrowDown) {
		ti.Recall(1)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		ti.Text = ""
		ti.IsActive = false
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyEnter) {
		ti.Submit()
	}
}

// Submit hands the current line to OnSubmit and records it in the history.
func (ti *TextInput) Submit() {
	line := strings.TrimSpace(ti.Text)
	if line != "" {
		ti.history = append(ti.history, line)
		if len(ti.history) > MAX_HISTORY {
			ti.history = ti.history[len(ti.history)-MAX_HISTORY:]
		}
		if ti.OnSubmit != nil {
			ti.OnSubmit(line)
		}
	}
	ti.cursor = len(ti.history)
	ti.Text = ""
	ti.IsActive = false
}

// Recall steps through previously submitted lines; -1 is older.
func (ti *TextInput) Recall(step int) {
	if len(ti.history) == 0 {
		return
	}
	ti.cursor = max(0, min(len(ti.history), ti.cursor+step))
	if ti.cursor == len(ti.history) {
		ti.Text = ""
		return
	}
	ti.Text = ti.history[ti.cursor]
}

func (ti *TextInput) History() []string {
	return ti.history
}

func (ti *TextInput) Draw(screen *ebiten.Image) {
	x, y, width, height := float32(ti.X), float32(ti.Y), float32(ti.Width), float32(ti.Height)

	bgColor := color.RGBA{50, 50, 50, 255}
	if ti.IsActive {
		bgColor = color.RGBA{80, 80, 80, 255}
	}
	vector.DrawFilledRect(screen, x, y, width, height, bgColor, false)
	vector.StrokeRect(screen, x, y, width, height, 1, color.White, false)

	displayTxt := ti.Text
	if ti.IsActive {
		displayTxt += "_" // Cursor
	} else if displayTxt == "" {
		displayTxt = "Click to enter a command"
	}

	ebitenutil.DebugPrintAt(screen, displayTxt, ti.X+5, ti.Y+(ti.Height-16)/2)
}

// IsClicked checks if the mouse click is within the text input bounds
func (ti *TextInput) IsClicked(mouseX, mouseY int) bool {
	return mouseX >= ti.X && mouseX <= ti.X+ti.Width &&
		mouseY >= ti.Y && mouseY <= ti.Y+ti.Height
}
