package welcome

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/knowduel/internal/ui/theme"
)

const bannerArt = `
 ██╗  ██╗███╗   ██╗ ██████╗ ██╗    ██╗██████╗ ██╗   ██╗███████╗██╗
 ██║ ██╔╝████╗  ██║██╔═══██╗██║    ██║██╔══██╗██║   ██║██╔════╝██║
 █████╔╝ ██╔██╗ ██║██║   ██║██║ █╗ ██║██║  ██║██║   ██║█████╗  ██║
 ██╔═██╗ ██║╚██╗██║██║   ██║██║███╗██║██║  ██║██║   ██║██╔══╝  ██║
 ██║  ██╗██║ ╚████║╚██████╔╝╚███╔███╔╝██████╔╝╚██████╔╝███████╗███████╗
 ╚═╝  ╚═╝╚═╝  ╚═══╝ ╚═════╝  ╚══╝╚══╝ ╚═════╝  ╚═════╝ ╚══════╝╚══════╝`

const bannerCompact = "K N O W D U E L"

// bannerMinWidth is the narrowest terminal that fits the block letters.
const bannerMinWidth = 74

// RenderBanner returns the title banner, falling back to spaced letters
// on narrow terminals.
func RenderBanner(width int) string {
	style := lipgloss.NewStyle().
		Foreground(theme.ArcadeYellow).
		Bold(true)

	if width < bannerMinWidth {
		return style.Render(bannerCompact)
	}
	return style.Render(bannerArt)
}
