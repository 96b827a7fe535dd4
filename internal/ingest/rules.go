package ingest

import (
	"strings"

	"github.com/MattStellino/JnRGamesWebsite-sub000/internal/domain"
)

// Rule maps item names containing any of the substrings to Result.
type Rule struct {
	Contains []string
	Result   string
}

// Rules is evaluated in order; the first rule with a matching substring wins.
type Rules []Rule

// Match compares case-insensitively and returns fallback when nothing matches.
func (rs Rules) Match(name, fallback string) string {
	n := strings.ToLower(name)
	for _, r := range rs {
		for _, sub := range r.Contains {
			if strings.Contains(n, sub) {
				return r.Result
			}
		}
	}
	return fallback
}

const (
	FallbackConsole  = "Other"
	FallbackHandheld = "Handheld Device"
)

var ConsoleTypeRules = Rules{
	{[]string{"ps2", "ps3", "ps4", "ps5", "playstation"}, domain.ConsoleTypePlayStation},
	{[]string{"xbox"}, domain.ConsoleTypeXbox},
	{[]string{"nintendo", "wii"}, domain.ConsoleTypeNintendo},
}

// ConsoleNameRules: longer names sit above their prefixes ("snes" before
// "nes", "xbox one" before "xbox").
var ConsoleNameRules = Rules{
	{[]string{"ps5", "playstation 5"}, "PlayStation 5"},
	{[]string{"ps4", "playstation 4"}, "PlayStation 4"},
	{[]string{"ps3", "playstation 3"}, "PlayStation 3"},
	{[]string{"ps2", "playstation 2"}, "PlayStation 2"},
	{[]string{"ps1", "psone", "ps one", "playstation"}, "PlayStation"},
	{[]string{"xbox series x"}, "Xbox Series X"},
	{[]string{"xbox series s"}, "Xbox Series S"},
	{[]string{"xbox one"}, "Xbox One"},
	{[]string{"xbox 360"}, "Xbox 360"},
	{[]string{"xbox"}, "Xbox"},
	{[]string{"switch oled"}, "Nintendo Switch OLED"},
	{[]string{"switch"}, "Nintendo Switch"},
	{[]string{"wii u"}, "Wii U"},
	{[]string{"wii"}, "Wii"},
	{[]string{"gamecube", "game cube"}, "GameCube"},
	{[]string{"nintendo 64", "n64"}, "Nintendo 64"},
	{[]string{"super nintendo", "snes"}, "Super Nintendo"},
	{[]string{"genesis"}, "Sega Genesis"},
	{[]string{"dreamcast"}, "Sega Dreamcast"},
	{[]string{"saturn"}, "Sega Saturn"},
	{[]string{"nintendo entertainment system", "nes"}, "NES"},
}

// ControllerConsoleRules names the console a controller or accessory is for.
var ControllerConsoleRules = append(Rules{
	{[]string{"joy-con", "joycon", "pro controller"}, "Nintendo Switch"},
	{[]string{"dualsense"}, "PlayStation 5"},
	{[]string{"dualshock 4"}, "PlayStation 4"},
	{[]string{"dualshock 3", "sixaxis"}, "PlayStation 3"},
	{[]string{"wiimote", "nunchuk"}, "Wii"},
}, ConsoleNameRules...)

var HandheldNameRules = Rules{
	{[]string{"game boy advance sp", "gba sp"}, "Game Boy Advance SP"},
	{[]string{"game boy advance", "gba"}, "Game Boy Advance"},
	{[]string{"game boy color", "gbc"}, "Game Boy Color"},
	{[]string{"game boy pocket"}, "Game Boy Pocket"},
	{[]string{"game boy"}, "Game Boy"},
	{[]string{"new nintendo 3ds xl", "new 3ds xl"}, "New Nintendo 3DS XL"},
	{[]string{"new nintendo 2ds xl", "new 2ds xl", "2ds xl"}, "New Nintendo 2DS XL"},
	{[]string{"3ds xl"}, "Nintendo 3DS XL"},
	{[]string{"2ds"}, "Nintendo 2DS"},
	{[]string{"3ds"}, "Nintendo 3DS"},
	{[]string{"ds lite"}, "Nintendo DS Lite"},
	{[]string{"dsi xl"}, "Nintendo DSi XL"},
	{[]string{"dsi"}, "Nintendo DSi"},
	{[]string{"nintendo ds"}, "Nintendo DS"},
	{[]string{"switch lite"}, "Nintendo Switch Lite"},
	{[]string{"psp"}, "PSP"},
	{[]string{"vita"}, "PS Vita"},
	{[]string{"game gear"}, "Sega Game Gear"},
	{[]string{"steam deck"}, "Steam Deck"},
}

var ControllerCategoryRules = Rules{
	{[]string{"controller", "remote", "joy-con"}, domain.CategoryControllers},
}

// SheetKind identifies one of the three replacer price sheets.
type SheetKind string

const (
	SheetConsoles    SheetKind = "consoles"
	SheetControllers SheetKind = "controllers"
	SheetHandhelds   SheetKind = "handhelds"
)

// Taxonomy is the inferred placement of a price sheet row.
type Taxonomy struct {
	ConsoleType string
	Console     string
	Category    string
}

func Classify(kind SheetKind, name string) Taxonomy {
	switch kind {
	case SheetHandhelds:
		return Taxonomy{
			ConsoleType: domain.ConsoleTypeOther,
			Console:     HandheldNameRules.Match(name, FallbackHandheld),
			Category:    domain.CategoryHandhelds,
		}
	case SheetControllers:
		return Taxonomy{
			ConsoleType: ConsoleTypeRules.Match(name, domain.ConsoleTypeOther),
			Console:     ControllerConsoleRules.Match(name, FallbackConsole),
			Category:    ControllerCategoryRules.Match(name, domain.CategoryAccessories),
		}
	default:
		return Taxonomy{
			ConsoleType: ConsoleTypeRules.Match(name, domain.ConsoleTypeOther),
			Console:     ConsoleNameRules.Match(name, FallbackConsole),
			Category:    domain.CategoryConsoles,
		}
	}
}
