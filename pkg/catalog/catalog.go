// Package catalog holds the static content table: which chapters exist, their
// order, and which items and locations belong to each side.
package catalog

import (
	_ "embed"
	"fmt"
	"os"
	"strings"
	"sync"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

//go:embed data/celeste.yaml
var defaultCatalog []byte

// Raw YAML structures for unmarshaling.

type rawFile struct {
	Game  string    `yaml:"game"`
	Areas []rawArea `yaml:"areas"`
}

type rawArea struct {
	Chapter string `yaml:"chapter"`
	Title   string `yaml:"title"`
	Sides   struct {
		A *rawSide `yaml:"a"`
		B *rawSide `yaml:"b"`
		C *rawSide `yaml:"c"`
	} `yaml:"sides"`
}

type rawSide struct {
	Cassette   int `yaml:"cassette"`
	Completion int `yaml:"completion"`
	Gemheart   int `yaml:"gemheart"`
	Strawberry int `yaml:"strawberry"`
	HeartGate  int `yaml:"heart_gate"`
}

func (s *rawSide) count(kind ItemKind) int {
	switch kind {
	case Cassette:
		return s.Cassette
	case Completion:
		return s.Completion
	case Gemheart:
		return s.Gemheart
	case Strawberry:
		return s.Strawberry
	}
	return 0
}

// Area is a chapter together with its populated sides.
type Area struct {
	Chapter Chapter
	Title   string
	Sides   []Side
}

// Catalog is the immutable, validated content table.
type Catalog struct {
	game       string
	areas      []Area
	order      map[Chapter]int
	entries    []Entry
	byLevel    map[Level][]Entry
	heartGates map[Level]int
	itemNames  map[Level]map[ItemKind]string

	itemNameToID     map[string]int64
	locationNameToID map[string]int64
}

var (
	defaultOnce sync.Once
	defaultCat  *Catalog
	defaultErr  error
)

// Default returns the embedded catalog, parsed once.
func Default() (*Catalog, error) {
	defaultOnce.Do(func() {
		defaultCat, defaultErr = Parse(defaultCatalog)
	})
	return defaultCat, defaultErr
}

// LoadFile parses a catalog YAML file.
func LoadFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return Parse(data)
}

// Parse parses and validates catalog YAML bytes.
func Parse(data []byte) (*Catalog, error) {
	var raw rawFile
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("yaml parse: %w", err)
	}
	if len(raw.Areas) == 0 {
		return nil, fmt.Errorf("catalog must define at least one area")
	}

	c := &Catalog{
		game:             raw.Game,
		order:            make(map[Chapter]int),
		byLevel:          make(map[Level][]Entry),
		heartGates:       make(map[Level]int),
		itemNames:        make(map[Level]map[ItemKind]string),
		itemNameToID:     make(map[string]int64),
		locationNameToID: make(map[string]int64),
	}

	titler := cases.Title(language.English)
	for i, ra := range raw.Areas {
		chapter, err := ParseChapter(ra.Chapter)
		if err != nil {
			return nil, fmt.Errorf("area %d: %w", i, err)
		}
		if chapter == NotApplicable {
			return nil, fmt.Errorf("area %d: chapter %s is reserved", i, chapter)
		}
		if _, dup := c.order[chapter]; dup {
			return nil, fmt.Errorf("area %s: defined more than once", chapter)
		}
		c.order[chapter] = i

		title := ra.Title
		if title == "" {
			title = titler.String(strings.ReplaceAll(chapter.String(), "_", " "))
		}
		area := Area{Chapter: chapter, Title: title}

		for _, side := range Sides {
			rs := []*rawSide{ra.Sides.A, ra.Sides.B, ra.Sides.C}[side]
			if rs == nil {
				continue
			}
			level := Level{Chapter: chapter, Side: side}
			if err := c.addLevel(level, title, rs); err != nil {
				return nil, fmt.Errorf("area %s side %s: %w", chapter, side, err)
			}
			area.Sides = append(area.Sides, side)
		}
		if len(area.Sides) == 0 {
			return nil, fmt.Errorf("area %s: no sides populated", chapter)
		}
		c.areas = append(c.areas, area)
	}

	c.itemNameToID[StrawberryName] = StrawberryID

	if err := c.validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Catalog) addLevel(level Level, title string, rs *rawSide) error {
	region := regionName(level, title)
	c.itemNames[level] = make(map[ItemKind]string)
	if rs.HeartGate < 0 {
		return fmt.Errorf("heart_gate must not be negative")
	}
	if rs.HeartGate > 0 {
		c.heartGates[level] = rs.HeartGate
	}

	for _, kind := range Kinds {
		n := rs.count(kind)
		if n < 0 {
			return fmt.Errorf("%s count must not be negative", kind)
		}
		if kind != Strawberry && n > 1 {
			return fmt.Errorf("at most one %s per side", kind)
		}
		if n > MaxOffset+1 {
			return fmt.Errorf("%d %s entries exceed the per-side limit of %d", n, kind, MaxOffset+1)
		}

		for offset := 0; offset < n; offset++ {
			e := Entry{
				Kind:   kind,
				Level:  level,
				Offset: offset,
				ID:     Hash(kind, level.Chapter, level.Side, offset),
			}
			if kind == Strawberry {
				e.ItemName = StrawberryName
				e.LocationName = fmt.Sprintf("%s - %s %d", region, kind.DisplayName(), offset+1)
			} else {
				e.ItemName = fmt.Sprintf("%s (%s)", kind.DisplayName(), region)
				e.LocationName = fmt.Sprintf("%s - %s", region, kind.DisplayName())
				c.itemNames[level][kind] = e.ItemName
			}

			if _, dup := c.locationNameToID[e.LocationName]; dup {
				return fmt.Errorf("duplicate location name %q", e.LocationName)
			}
			c.locationNameToID[e.LocationName] = e.ID
			if kind != Strawberry {
				if _, dup := c.itemNameToID[e.ItemName]; dup {
					return fmt.Errorf("duplicate item name %q", e.ItemName)
				}
				c.itemNameToID[e.ItemName] = e.ID
			}

			c.entries = append(c.entries, e)
			c.byLevel[level] = append(c.byLevel[level], e)
		}
	}
	return nil
}

// validate checks the cross-level invariants the progression rules depend on.
func (c *Catalog) validate() error {
	seen := make(map[int64]string, len(c.entries))
	for _, e := range c.entries {
		if other, dup := seen[e.ID]; dup {
			return fmt.Errorf("identity %d shared by %q and %q", e.ID, other, e.LocationName)
		}
		seen[e.ID] = e.LocationName
		if e.ID == StrawberryID {
			return fmt.Errorf("location %q collides with the strawberry identity", e.LocationName)
		}
		if e.Kind != Strawberry && e.ItemName == StrawberryName {
			return fmt.Errorf("%s item at %s must not be named %q", e.Kind, e.Level, StrawberryName)
		}
	}

	for i, area := range c.areas {
		for _, side := range area.Sides {
			level := Level{Chapter: area.Chapter, Side: side}
			switch side {
			case SideA:
				if i == 0 {
					continue
				}
				prev := c.areas[i-1].Chapter
				if len(c.CompletionNames(prev)) == 0 {
					return fmt.Errorf("%s: previous area %s has no completion items", level, prev)
				}
			case SideB:
				if _, ok := c.ItemName(Cassette, Level{Chapter: area.Chapter, Side: SideA}); !ok {
					return fmt.Errorf("%s: no A-side cassette unlocks this side", level)
				}
			case SideC:
				for _, req := range []Side{SideA, SideB} {
					if _, ok := c.ItemName(Completion, Level{Chapter: area.Chapter, Side: req}); !ok {
						return fmt.Errorf("%s: missing %s-side completion required to unlock it", level, req)
					}
				}
			}
		}
	}
	return nil
}

func regionName(level Level, title string) string {
	return fmt.Sprintf("Chapter %d: %s %s-Side", int(level.Chapter), title, level.Side)
}

// Game returns the game name declared by the catalog.
func (c *Catalog) Game() string { return c.game }

// Areas returns the areas in catalog order.
func (c *Catalog) Areas() []Area {
	out := make([]Area, len(c.areas))
	copy(out, c.areas)
	return out
}

// Entries returns every entry in catalog order.
func (c *Catalog) Entries() []Entry {
	out := make([]Entry, len(c.entries))
	copy(out, c.entries)
	return out
}

// HasLevel reports whether the side is populated.
func (c *Catalog) HasLevel(level Level) bool {
	_, ok := c.itemNames[level]
	return ok
}

// Compare orders levels by catalog area position, then by side.
// Both levels must belong to the catalog.
func (c *Catalog) Compare(a, b Level) int {
	ia, ib := c.order[a.Chapter], c.order[b.Chapter]
	switch {
	case ia < ib:
		return -1
	case ia > ib:
		return 1
	case a.Side < b.Side:
		return -1
	case a.Side > b.Side:
		return 1
	}
	return 0
}

// IsFirst reports whether chapter is the first area in catalog order.
func (c *Catalog) IsFirst(chapter Chapter) bool {
	i, ok := c.order[chapter]
	return ok && i == 0
}

// Previous returns the area immediately before chapter. It never wraps: the
// first area has no predecessor.
func (c *Catalog) Previous(chapter Chapter) (Chapter, bool) {
	i, ok := c.order[chapter]
	if !ok || i == 0 {
		return 0, false
	}
	return c.areas[i-1].Chapter, true
}

// Levels returns every populated level up to and including goal, in order.
func (c *Catalog) Levels(goal Level) []Level {
	var out []Level
	for _, area := range c.areas {
		for _, side := range area.Sides {
			level := Level{Chapter: area.Chapter, Side: side}
			if c.Compare(level, goal) <= 0 {
				out = append(out, level)
			}
		}
	}
	return out
}

// EntriesUpTo returns the entries of every level up to and including goal.
func (c *Catalog) EntriesUpTo(goal Level) []Entry {
	var out []Entry
	for _, level := range c.Levels(goal) {
		out = append(out, c.byLevel[level]...)
	}
	return out
}

// LevelEntries returns the entries of a single level.
func (c *Catalog) LevelEntries(level Level) []Entry {
	return c.byLevel[level]
}

// ItemName returns the unique item name of a kind at a level. Strawberries
// always resolve to StrawberryName.
func (c *Catalog) ItemName(kind ItemKind, level Level) (string, bool) {
	if kind == Strawberry {
		return StrawberryName, true
	}
	names, ok := c.itemNames[level]
	if !ok {
		return "", false
	}
	name, ok := names[kind]
	return name, ok
}

// CompletionNames returns the completion item names for every populated side
// of chapter.
func (c *Catalog) CompletionNames(chapter Chapter) []string {
	var out []string
	for _, side := range Sides {
		if name, ok := c.ItemName(Completion, Level{Chapter: chapter, Side: side}); ok {
			out = append(out, name)
		}
	}
	return out
}

// RegionName returns the display name of a level.
func (c *Catalog) RegionName(level Level) string {
	i, ok := c.order[level.Chapter]
	if !ok {
		return regionName(level, level.Chapter.String())
	}
	return regionName(level, c.areas[i].Title)
}

// HeartGate returns the crystal heart count needed to check locations in level.
func (c *Catalog) HeartGate(level Level) (int, bool) {
	n, ok := c.heartGates[level]
	return n, ok
}

// ItemNameToID maps every item name in the whole catalog to its identity.
func (c *Catalog) ItemNameToID() map[string]int64 {
	out := make(map[string]int64, len(c.itemNameToID))
	for k, v := range c.itemNameToID {
		out[k] = v
	}
	return out
}

// LocationNameToID maps every location name in the whole catalog to its identity.
func (c *Catalog) LocationNameToID() map[string]int64 {
	out := make(map[string]int64, len(c.locationNameToID))
	for k, v := range c.locationNameToID {
		out[k] = v
	}
	return out
}
