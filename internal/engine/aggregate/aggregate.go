// Package aggregate collapses repeated records and groups diagnostics by
// key. Output order is always first-occurrence order of the key, never
// resorted by count — stability keeps CI logs diffable and tests
// deterministic.
package aggregate

import (
	"regexp"
	"strings"

	"github.com/sahilmgandhi/rtk/internal/engine/parse"
)

// Counted is a record annotated with how many times it occurred.
type Counted struct {
	Record parse.Record
	Count  int
}

// Group is an ordered slice of records sharing a derived key.
type Group struct {
	Key     string
	Records []parse.Record
}

var ansiRe = regexp.MustCompile(`\x1b\[[0-9;]*[A-Za-z]`)

// NormalizeMessage strips ANSI escapes and collapses whitespace runs.
// This is the equality basis for deduplication.
func NormalizeMessage(s string) string {
	s = ansiRe.ReplaceAllString(s, "")
	return strings.Join(strings.Fields(s), " ")
}

// Dedupe collapses records whose kind and normalized message are equal.
// Location is deliberately excluded from the key so the same log line at
// different timestamps or positions collapses; the first-seen record (and
// therefore its location) is the one retained for display.
func Dedupe(records []parse.Record) []Counted {
	var out []Counted
	index := make(map[string]int)

	for _, rec := range records {
		key := string(rec.Kind) + "\x00" + NormalizeMessage(rec.Message)
		if i, ok := index[key]; ok {
			out[i].Count++
			continue
		}
		index[key] = len(out)
		out = append(out, Counted{Record: rec, Count: 1})
	}
	return out
}

// GroupByFile groups records by file in first-appearance order. Records
// without a location fall into the "" group. Within a group, records keep
// emission order.
func GroupByFile(records []parse.Record) []Group {
	return groupBy(records, func(rec parse.Record) string {
		if rec.Loc == nil {
			return ""
		}
		return rec.Loc.File
	})
}

// GroupByFileCode groups by (file, code), first-appearance order.
func GroupByFileCode(records []parse.Record) []Group {
	return groupBy(records, func(rec parse.Record) string {
		file := ""
		if rec.Loc != nil {
			file = rec.Loc.File
		}
		if rec.Code == "" {
			return file
		}
		return file + " " + rec.Code
	})
}

func groupBy(records []parse.Record, key func(parse.Record) string) []Group {
	var out []Group
	index := make(map[string]int)

	for _, rec := range records {
		k := key(rec)
		if i, ok := index[k]; ok {
			out[i].Records = append(out[i].Records, rec)
			continue
		}
		index[k] = len(out)
		out = append(out, Group{Key: k, Records: []parse.Record{rec}})
	}
	return out
}
