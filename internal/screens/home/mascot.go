package home

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/knowduel/internal/ui/theme"
)

// MascotVariant selects the mascot art, driven by the last result.
type MascotVariant int

const (
	MascotIdle        MascotVariant = iota // no game finished yet, or a draw
	MascotCelebrating                      // the player won
	MascotAlert                            // the computer won
)

const mascotIdle = `┌─────┐
│ ◉ ◉ │
│  ▽  │
│ ?!? │
└─────┘`

const mascotCelebrating = `┌─────┐
│ ★ ★ │
│  ▿  │
│ ?!? │
└─╥═╥─┘
  ╚═╝`

const mascotAlert = `┌─────┐
│ ◉ ◉ │ !
│  △  │
│ ?!? │
└─────┘`

// RenderMascot returns the coloured mascot art for v.
func RenderMascot(v MascotVariant) string {
	art, fg := mascotIdle, theme.Primary
	switch v {
	case MascotCelebrating:
		art, fg = mascotCelebrating, theme.ArcadeYellow
	case MascotAlert:
		art, fg = mascotAlert, theme.Accent
	}
	return lipgloss.NewStyle().Foreground(fg).Render(art)
}
