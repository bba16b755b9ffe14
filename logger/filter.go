package logger

import (
	"sort"
	"strings"

	"github.com/ecsfmt/ecslog/core"
)

// directive is one parsed filter entry: records whose target starts
// with Target pass at Level and above.
type directive struct {
	target string
	level  core.Level
}

// Filter decides which records reach the formatter, in the style of
// env_logger directives: a comma-separated list of "level" and
// "target=level" entries. A bare target with no level enables it fully.
//
//	error                 everything at ERROR
//	info,db=trace         INFO by default, TRACE for targets under db
//	warn,db=debug,db/tx   WARN default, DEBUG under db, TRACE under db/tx
//
// The longest matching target prefix wins. The zero Filter passes
// everything; Build installs ParseFilter("error") when no filter was
// configured.
type Filter struct {
	defaultLevel core.Level
	directives   []directive
	min          core.Level
}

// ParseFilter parses a directive string. Unparseable entries are
// ignored rather than failing, so a typo in an environment variable
// degrades filtering instead of breaking process startup.
func ParseFilter(spec string) Filter {
	f := Filter{defaultLevel: core.ErrorLevel}

	for _, entry := range strings.Split(spec, ",") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}

		if target, levelName, ok := strings.Cut(entry, "="); ok {
			target = strings.TrimSpace(target)
			if target == "" {
				continue
			}
			level := core.TraceLevel
			if strings.TrimSpace(levelName) != "" {
				parsed, err := core.ParseLevel(levelName)
				if err != nil {
					continue
				}
				level = parsed
			}
			f.directives = append(f.directives, directive{target: target, level: level})
			continue
		}

		if level, err := core.ParseLevel(entry); err == nil {
			f.defaultLevel = level
		} else {
			// A bare name that is not a level is a target enabled fully.
			f.directives = append(f.directives, directive{target: entry, level: core.TraceLevel})
		}
	}

	// Longest prefix first, so the first match below is the winner.
	sort.SliceStable(f.directives, func(i, j int) bool {
		return len(f.directives[i].target) > len(f.directives[j].target)
	})

	f.min = f.defaultLevel
	for _, d := range f.directives {
		if d.level < f.min {
			f.min = d.level
		}
	}

	return f
}

// Enabled reports whether a record at the given level and target passes
// the filter.
func (f Filter) Enabled(level core.Level, target string) bool {
	for _, d := range f.directives {
		if strings.HasPrefix(target, d.target) {
			return level >= d.level
		}
	}
	return level >= f.defaultLevel
}

// MinLevel returns the lowest level any directive admits. Records below
// it can be rejected before caller capture.
func (f Filter) MinLevel() core.Level {
	return f.min
}
