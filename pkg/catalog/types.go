package catalog

import (
	"fmt"
	"strings"
)

// Chapter identifies an area of the game. The numeric value is part of every
// item and location identity, so it must never be renumbered.
type Chapter int

const (
	Prologue        Chapter = 0
	ForsakenCity    Chapter = 1
	OldSite         Chapter = 2
	CelestialResort Chapter = 3
	GoldenRidge     Chapter = 4
	MirrorTemple    Chapter = 5
	Reflection      Chapter = 6
	TheSummit       Chapter = 7
	Epilogue        Chapter = 8
	Core            Chapter = 9
	Farewell        Chapter = 10
	NotApplicable   Chapter = 19
)

var chapterKeys = map[Chapter]string{
	Prologue:        "prologue",
	ForsakenCity:    "forsaken_city",
	OldSite:         "old_site",
	CelestialResort: "celestial_resort",
	GoldenRidge:     "golden_ridge",
	MirrorTemple:    "mirror_temple",
	Reflection:      "reflection",
	TheSummit:       "the_summit",
	Epilogue:        "epilogue",
	Core:            "core",
	Farewell:        "farewell",
	NotApplicable:   "not_applicable",
}

// String returns the snake_case key used in catalog files.
func (c Chapter) String() string {
	if key, ok := chapterKeys[c]; ok {
		return key
	}
	return fmt.Sprintf("chapter_%d", int(c))
}

// ParseChapter resolves a catalog key such as "the_summit".
func ParseChapter(key string) (Chapter, error) {
	key = strings.ToLower(strings.TrimSpace(key))
	for c, k := range chapterKeys {
		if k == key {
			return c, nil
		}
	}
	return 0, fmt.Errorf("unknown chapter %q", key)
}

// Side is one of the three remixes of a chapter.
type Side int

const (
	SideA Side = 0
	SideB Side = 1
	SideC Side = 2
)

// Sides lists every side in ascending difficulty.
var Sides = []Side{SideA, SideB, SideC}

func (s Side) String() string {
	switch s {
	case SideA:
		return "A"
	case SideB:
		return "B"
	case SideC:
		return "C"
	default:
		return fmt.Sprintf("Side(%d)", int(s))
	}
}

// ParseSide accepts "a", "B", "c-side" and similar spellings.
func ParseSide(s string) (Side, error) {
	switch strings.TrimSuffix(strings.ToLower(strings.TrimSpace(s)), "-side") {
	case "a":
		return SideA, nil
	case "b":
		return SideB, nil
	case "c":
		return SideC, nil
	}
	return 0, fmt.Errorf("unknown side %q", s)
}

// Level is a playable (chapter, side) pair.
type Level struct {
	Chapter Chapter `json:"chapter" yaml:"chapter"`
	Side    Side    `json:"side" yaml:"side"`
}

func (l Level) String() string {
	return fmt.Sprintf("%s/%s", l.Chapter, l.Side)
}

// ItemKind tags what an item is. Values are part of the identity hash.
type ItemKind int

const (
	Cassette   ItemKind = 1
	Completion ItemKind = 2
	Gemheart   ItemKind = 3
	Strawberry ItemKind = 4
)

// Kinds lists every item kind in the order entries are emitted within a level.
var Kinds = []ItemKind{Cassette, Completion, Gemheart, Strawberry}

func (k ItemKind) String() string {
	switch k {
	case Cassette:
		return "cassette"
	case Completion:
		return "completion"
	case Gemheart:
		return "gemheart"
	case Strawberry:
		return "strawberry"
	default:
		return fmt.Sprintf("ItemKind(%d)", int(k))
	}
}

// DisplayName is the in-game name used when building item and location names.
func (k ItemKind) DisplayName() string {
	switch k {
	case Cassette:
		return "Cassette"
	case Completion:
		return "Completion"
	case Gemheart:
		return "Crystal Heart"
	case Strawberry:
		return StrawberryName
	default:
		return k.String()
	}
}

const (
	offsetBase    = 8000000
	offsetKind    = 20000
	offsetChapter = 1000
	offsetSide    = 100

	// MaxOffset bounds the per-level index so it cannot spill into the side digit.
	MaxOffset = offsetSide - 1
)

// StrawberryName is the single item name shared by every strawberry.
const StrawberryName = "Strawberry"

// StrawberryID is the identity shared by every strawberry item.
var StrawberryID = Hash(Strawberry, NotApplicable, SideA, 0)

// Hash computes the stable identity of a catalog entry.
func Hash(kind ItemKind, chapter Chapter, side Side, offset int) int64 {
	return offsetBase +
		offsetKind*int64(kind) +
		offsetChapter*int64(chapter) +
		offsetSide*int64(side) +
		int64(offset)
}

// Entry is one obtainable spot in the catalog: an item paired with the
// location it is found at.
type Entry struct {
	Kind         ItemKind
	Level        Level
	Offset       int
	ItemName     string
	LocationName string
	// ID identifies the location. Items share it except for strawberries.
	ID int64
}

// ItemID returns the identity of the item found at this entry.
func (e Entry) ItemID() int64 {
	if e.Kind == Strawberry {
		return StrawberryID
	}
	return e.ID
}
