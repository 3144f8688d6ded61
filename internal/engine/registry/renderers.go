package registry

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/sahilmgandhi/rtk/internal/engine/parse"
)

// gitStatusRenderer condenses porcelain status records into a branch line
// plus per-bucket counts with a few example files each.
func gitStatusRenderer() parse.Renderer {
	return func(records []parse.Record, exitCode int) string {
		var b strings.Builder
		var staged, modified, untracked, conflicts []string

		for _, rec := range records {
			if rec.Kind == parse.KindSummary {
				fmt.Fprintf(&b, "📌 %s\n", rec.Message)
				continue
			}
			if len(rec.Code) < 2 || rec.Loc == nil {
				continue
			}
			file := rec.Loc.File
			if rec.Code == "??" {
				untracked = append(untracked, file)
				continue
			}
			switch rec.Code[0] {
			case 'M', 'A', 'D', 'R', 'C':
				staged = append(staged, file)
			case 'U':
				conflicts = append(conflicts, file)
			}
			switch rec.Code[1] {
			case 'M', 'D':
				modified = append(modified, file)
			}
		}

		writeBucket(&b, "✅ staged", staged, 5)
		writeBucket(&b, "📝 modified", modified, 5)
		writeBucket(&b, "❓ untracked", untracked, 3)
		writeBucket(&b, "⚠ conflicts", conflicts, 5)

		if b.Len() == 0 {
			return "clean working tree"
		}
		return strings.TrimRight(b.String(), "\n")
	}
}

func writeBucket(b *strings.Builder, label string, files []string, show int) {
	if len(files) == 0 {
		return
	}
	fmt.Fprintf(b, "%s: %d\n", label, len(files))
	for i, f := range files {
		if i == show {
			fmt.Fprintf(b, "   ... +%d more\n", len(files)-show)
			break
		}
		fmt.Fprintf(b, "   %s\n", f)
	}
}

var lsTotalRe = regexp.MustCompile(`^total \d+$`)

// lsRenderer prints directory entries verbatim, dropping the "total N"
// header line that long-format ls prepends.
func lsRenderer() parse.Renderer {
	return func(records []parse.Record, exitCode int) string {
		var b strings.Builder
		for _, rec := range records {
			if lsTotalRe.MatchString(rec.Message) {
				continue
			}
			b.WriteString(rec.Message)
			b.WriteByte('\n')
		}
		if b.Len() == 0 {
			return parse.NoOutputSentinel
		}
		return strings.TrimRight(b.String(), "\n")
	}
}

// diffRenderer prints condensed diff records: file markers, hunk headers,
// and changed lines, bounded at maxLines.
func diffRenderer(maxLines int) parse.Renderer {
	return func(records []parse.Record, exitCode int) string {
		var b strings.Builder
		written := 0
		for _, rec := range records {
			if maxLines > 0 && written == maxLines {
				b.WriteString("... (more changes truncated)\n")
				break
			}
			switch {
			case strings.HasPrefix(rec.Raw, "diff --git"):
				fmt.Fprintf(&b, "📄 %s\n", rec.Message)
			case strings.HasPrefix(rec.Raw, "@@"):
				fmt.Fprintf(&b, "  @@ %s @@\n", strings.TrimSpace(rec.Message))
			default:
				fmt.Fprintf(&b, "  %s\n", rec.Message)
			}
			written++
		}
		if b.Len() == 0 {
			return "no changes"
		}
		return strings.TrimRight(b.String(), "\n")
	}
}
