package ui

import "image/color"

var (
	colWhite     = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
	colBlack     = color.NRGBA{R: 0, G: 0, B: 0, A: 255}
	colGray      = color.NRGBA{R: 100, G: 100, B: 100, A: 255}
	colLightGray = color.NRGBA{R: 200, G: 200, B: 200, A: 255}
	colDirBlue   = color.NRGBA{R: 0, G: 0, B: 128, A: 255}
	colSelected  = color.NRGBA{R: 200, G: 220, B: 255, A: 255}
	colCursor    = color.NRGBA{R: 66, G: 133, B: 244, A: 255}
	colSidebar   = color.NRGBA{R: 245, G: 245, B: 245, A: 255}
	colDisabled  = color.NRGBA{R: 150, G: 150, B: 150, A: 255}
	colAccent    = color.NRGBA{R: 66, G: 133, B: 244, A: 255}
	colDanger    = color.NRGBA{R: 220, G: 53, B: 69, A: 255}
	colDriveIcon = color.NRGBA{R: 96, G: 125, B: 139, A: 255}
	colTileBg    = color.NRGBA{R: 235, G: 235, B: 235, A: 255}
	colFolderBg  = color.NRGBA{R: 255, G: 213, B: 79, A: 255}
	colFooterBg  = color.NRGBA{R: 250, G: 250, B: 250, A: 255}
)
