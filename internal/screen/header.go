package screen

import (
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/jcorbin/noteforge/internal/notegen"
	"github.com/jcorbin/noteforge/notedown"
)

// Header describes the note shown above a rendered body.
type Header struct {
	Subject string
	Topic   string
	Level   notegen.Level
	Time    time.Time
}

// TimeLayout formats header timestamps.
const TimeLayout = "Jan 2, 2006 3:04 PM"

// Badge colours by level, as hex RGB.
var levelColors = map[notegen.Level]string{
	notegen.Beginner:     "#059669",
	notegen.Intermediate: "#D97706",
	notegen.Advanced:     "#E11D48",
}

const (
	unleveledColor = "#64748B"
	accentColor    = "#0EA5E9"
	headingColor   = "#0F172A"
	codeColor      = "#0369A1"
	codeBackground = "#F1F5F9"
	quoteColor     = "#94A3B8"
)

// LevelColor returns the badge colour of level.
func LevelColor(level notegen.Level) string {
	if c, ok := levelColors[level]; ok {
		return c
	}
	return unleveledColor
}

// Badge returns the badge label of the header level, or the empty string if
// it has none.
func (h Header) Badge() string {
	return strings.ToUpper(string(h.Level))
}

// Byline is the subject and level line above the topic.
func (h Header) Byline() string {
	if h.Level == "" {
		return h.Subject
	}
	return h.Subject + " • " + string(h.Level)
}

// Stamp formats the header time, or returns the empty string for a zero time.
func (h Header) Stamp() string {
	if h.Time.IsZero() {
		return ""
	}
	return "Generated " + h.Time.Format(TimeLayout)
}

// WordCount formats the number of words in markdown for a footer.
func WordCount(markdown string) string {
	n := notedown.Words(markdown)
	if n == 1 {
		return "1 word"
	}
	return humanize.Comma(int64(n)) + " words"
}
