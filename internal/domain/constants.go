package domain

// Цвета сообщений и служебных символов
const (
	ColorWhite       uint32 = 0xFFFFFF
	ColorRed         uint32 = 0xFF0000
	ColorDarkRed     uint32 = 0xBF0000
	ColorOrange      uint32 = 0xFF7F00
	ColorYellow      uint32 = 0xFFFF00
	ColorGreen       uint32 = 0x00FF00
	ColorLightCyan   uint32 = 0x73FFFF
	ColorLightViolet uint32 = 0xB973FF
)

// Символы
const (
	SymbolPlayer  = '@'
	SymbolCorpse  = '%'
	SymbolStairs  = '>'
	SymbolSpawner = '.'
)
