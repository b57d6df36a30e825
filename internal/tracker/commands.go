package tracker

import (
	"fmt"
	"strconv"
	"strings"
)

// Result is the outcome of one tracker command. Copy, when set, is text the
// caller should place on the clipboard.
type Result struct {
	Text string
	Copy string
	Quit bool
}

const HelpText = `Commands:
• collect <item> [xN] - Add an item (alias: c, +)
• drop <item> - Remove one copy of an item (alias: d, -)
• status - Show reachable regions and checkable locations
• held - Show collected items
• find <text> - Search item names
• slot - Show slot data
• copy - Copy slot data to the clipboard
• help - Show this help
• quit - Exit`

// Exec runs one command line against the session.
func (s *Session) Exec(line string) (Result, error) {
	line = strings.TrimSpace(line)
	if line == "" {
		return Result{}, nil
	}

	verb, rest, _ := strings.Cut(line, " ")
	rest = strings.TrimSpace(rest)

	switch strings.ToLower(verb) {
	case "collect", "c", "+":
		item, n := splitCount(rest)
		name, err := s.Collect(item, n)
		if err != nil {
			return Result{}, err
		}
		text := fmt.Sprintf("Collected %s", name)
		if n > 1 {
			text += fmt.Sprintf(" x%d", n)
		}
		return Result{Text: text + "\n" + s.summary()}, nil

	case "drop", "d", "-":
		name, err := s.Drop(rest)
		if err != nil {
			return Result{}, err
		}
		return Result{Text: fmt.Sprintf("Dropped %s\n%s", name, s.summary())}, nil

	case "status", "s":
		return Result{Text: s.statusText()}, nil

	case "held", "h":
		return Result{Text: s.heldText()}, nil

	case "find", "f":
		return Result{Text: s.findText(rest)}, nil

	case "slot":
		data, err := s.SlotData()
		if err != nil {
			return Result{}, err
		}
		return Result{Text: string(data)}, nil

	case "copy":
		data, err := s.SlotData()
		if err != nil {
			return Result{}, err
		}
		return Result{Text: "Slot data copied to clipboard", Copy: string(data)}, nil

	case "help", "?":
		return Result{Text: HelpText}, nil

	case "quit", "exit", "q":
		return Result{Quit: true}, nil
	}
	return Result{}, fmt.Errorf("unknown command %q, type help for a list", verb)
}

// splitCount peels a trailing "xN" off an item argument.
func splitCount(arg string) (string, int) {
	i := strings.LastIndex(arg, " ")
	if i < 0 {
		return arg, 1
	}
	suffix := strings.ToLower(arg[i+1:])
	if !strings.HasPrefix(suffix, "x") {
		return arg, 1
	}
	n, err := strconv.Atoi(suffix[1:])
	if err != nil || n < 1 {
		return arg, 1
	}
	return strings.TrimSpace(arg[:i]), n
}

func (s *Session) summary() string {
	r := s.Report()
	text := fmt.Sprintf("%d regions reachable, %d/%d locations in logic", len(r.Reachable), len(r.Checkable), r.Locations)
	if r.Complete {
		text += "\nGoal complete!"
	}
	return text
}

func (s *Session) statusText() string {
	r := s.Report()
	var b strings.Builder
	fmt.Fprintf(&b, "Goal: %s\n\n", s.VictoryItem())
	b.WriteString("Reachable regions:\n")
	for _, name := range r.Reachable {
		fmt.Fprintf(&b, "• %s\n", name)
	}
	fmt.Fprintf(&b, "\nIn logic (%d/%d):\n", len(r.Checkable), r.Locations)
	for _, name := range r.Checkable {
		fmt.Fprintf(&b, "• %s\n", name)
	}
	if r.Complete {
		b.WriteString("\nGoal complete!\n")
	}
	return b.String()
}

func (s *Session) heldText() string {
	r := s.Report()
	if len(r.Held) == 0 {
		return "Nothing collected yet."
	}
	var b strings.Builder
	b.WriteString("Held:\n")
	for _, name := range s.state.Held(s.player) {
		fmt.Fprintf(&b, "• %s x%d\n", name, r.Held[name])
	}
	return b.String()
}

func (s *Session) findText(query string) string {
	q := normalise(query)
	var b strings.Builder
	for _, name := range s.names {
		if strings.Contains(normalise(name), q) {
			fmt.Fprintf(&b, "• %s\n", name)
		}
	}
	if b.Len() == 0 {
		return fmt.Sprintf("No items match %q.", query)
	}
	return b.String()
}
