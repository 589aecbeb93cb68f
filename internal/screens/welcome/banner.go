package welcome

import (
	"charm.land/lipgloss/v2"

	"github.com/stinglish/stinglish/internal/ui/theme"
)

const bannerArt = `
 ███████╗████████╗██╗███╗   ██╗ ██████╗ ██╗     ██╗███████╗██╗  ██╗
 ██╔════╝╚══██╔══╝██║████╗  ██║██╔════╝ ██║     ██║██╔════╝██║  ██║
 ███████╗   ██║   ██║██╔██╗ ██║██║  ███╗██║     ██║███████╗███████║
 ╚════██║   ██║   ██║██║╚██╗██║██║   ██║██║     ██║╚════██║██╔══██║
 ███████║   ██║   ██║██║ ╚████║╚██████╔╝███████╗██║███████║██║  ██║
 ╚══════╝   ╚═╝   ╚═╝╚═╝  ╚═══╝ ╚═════╝ ╚══════╝╚═╝╚══════╝╚═╝  ╚═╝`

const bannerCompact = "S T I N G L I S H"

// bannerMinWidth is the narrowest terminal the full banner fits in.
const bannerMinWidth = 70

// RenderBanner returns the STINGLISH banner styled in the primary color,
// or a spaced-out wordmark on narrow terminals.
func RenderBanner(width int) string {
	style := lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true)

	if width < bannerMinWidth {
		return style.Render(bannerCompact)
	}
	return style.Render(bannerArt)
}
