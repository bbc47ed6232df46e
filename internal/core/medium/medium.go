// Package medium defines the closed set of immersion media and their display categories
package medium

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
)

// Medium is the kind of content consumed
type Medium string

// Known media in display order
const (
	Listening   Medium = "Listening"
	Watchtime   Medium = "Watchtime"
	YouTube     Medium = "YouTube"
	Anime       Medium = "Anime"
	Readtime    Medium = "Readtime"
	VisualNovel Medium = "Visual Novel"
	Manga       Medium = "Manga"
)

// All lists every medium in display order
var All = []Medium{Listening, Watchtime, YouTube, Anime, Readtime, VisualNovel, Manga}

// Category groups media for charting
type Category string

// Categories
const (
	Watch  Category = "watch"
	Listen Category = "listen"
	Read   Category = "read"
)

// Categories lists the chart categories in series order
var Categories = []Category{Watch, Listen, Read}

// categoryOf is the fixed medium -> category table
var categoryOf = map[Medium]Category{
	Listening:   Listen,
	Watchtime:   Watch,
	YouTube:     Watch,
	Anime:       Watch,
	Readtime:    Read,
	VisualNovel: Read,
	Manga:       Read,
}

// byFolded resolves case folded names, built once from All
var byFolded = func() map[string]Medium {
	out := make(map[string]Medium, len(All))
	for _, m := range All {
		out[fold(string(m))] = m
	}
	return out
}()

// Parse resolves a medium name case insensitively ("visual   novel" -> Visual Novel)
func Parse(name string) (Medium, error) {
	if m, ok := byFolded[fold(name)]; ok {
		return m, nil
	}
	return "", fmt.Errorf("medium: unknown medium %q", name)
}

// fold builds a fresh Caser per call since a Caser must not be shared between goroutines
func fold(s string) string {
	return strings.Join(strings.Fields(cases.Fold().String(s)), " ")
}

// Valid reports whether m is one of All
func (m Medium) Valid() bool {
	_, ok := categoryOf[m]
	return ok
}

// Category returns the chart category for m, empty for unknown media
func (m Medium) Category() Category { return categoryOf[m] }

// AllowsEpisodes reports whether m may be logged with the episode grammar
func (m Medium) AllowsEpisodes() bool { return m == Anime }

// Unit is the display unit used in profile breakdowns
func (m Medium) Unit() string {
	if m.AllowsEpisodes() {
		return "Episodes"
	}
	return "Minutes"
}

// Order is the display position of m; unknown media sort last
func (m Medium) Order() int {
	for i, x := range All {
		if x == m {
			return i
		}
	}
	return len(All)
}

// Names returns the string forms of All, handy for validator oneof tags and docs
func Names() []string {
	out := make([]string, len(All))
	for i, m := range All {
		out[i] = string(m)
	}
	return out
}
