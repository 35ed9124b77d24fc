// Package series recovers an ordered, validated page sequence from the
// filename convention used by images saved from the RedNote web client.
//
// A conventional filename looks like:
//
//	一个很笨但能成功写出SSCI的小tips_2_博士小导师_来自小红书网页版.jpg
//
// i.e. <title>_<page>_<author>_<suffix>.<ext>, where the suffix is a fixed
// marker identifying the source platform. Files sharing the same title,
// author and extension form one series; the page number orders them.
package series

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// SourceSuffix is the fixed marker the RedNote web client appends to
// saved image filenames.
const SourceSuffix = "来自小红书网页版"

// Title and author are non-greedy so they bind the minimal span before the
// first separator that still yields a valid parse; both may themselves
// contain underscores.
var filenamePattern = regexp.MustCompile(`^(.+?)_(\d+)_(.+?)_来自小红书网页版\.(.+)$`)

// ParsedFilename holds the components recovered from a conventional
// filename. Extension is lowercased and carries no leading dot.
type ParsedFilename struct {
	Title  string
	Page   int
	Author string
	Ext    string
}

// Key identifies a series: two files belong to the same series exactly
// when their keys are equal.
type Key struct {
	Title  string
	Author string
	Ext    string
}

// Key returns the series key for the parsed filename.
func (p ParsedFilename) Key() Key {
	return Key{Title: p.Title, Author: p.Author, Ext: p.Ext}
}

// Filename rebuilds the conventional filename for the parsed components.
// Parse(p.Filename()) returns p for any components that do not contain
// the segment separator.
func (p ParsedFilename) Filename() string {
	return fmt.Sprintf("%s_%d_%s_%s.%s", p.Title, p.Page, p.Author, SourceSuffix, p.Ext)
}

// Parse matches filename against the naming convention. The second return
// value is false when the name does not follow the convention or the page
// segment does not parse as a base-10 integer.
func Parse(filename string) (ParsedFilename, bool) {
	m := filenamePattern.FindStringSubmatch(filename)
	if m == nil {
		return ParsedFilename{}, false
	}
	page, err := strconv.Atoi(m[2])
	if err != nil {
		// Digits only, so this is an overflow.
		return ParsedFilename{}, false
	}
	return ParsedFilename{
		Title:  m[1],
		Page:   page,
		Author: m[3],
		Ext:    strings.ToLower(m[4]),
	}, true
}
