package transcript

import (
	"sort"
	"strings"
)

// SearchOptions controls keyword time-range search.
type SearchOptions struct {
	// BridgeDistance is the maximum number of non-matching words allowed
	// between two matching words before a run is split in two. With the
	// default of 1, short connectors ("the", "a") between two keyword hits
	// do not break the run.
	BridgeDistance int
	// ContextWords is how many neighboring words to pull into the matched
	// text on each side of a run. Growth stops early at a sentence boundary.
	ContextWords int
}

// DefaultSearchOptions returns the documented search defaults.
func DefaultSearchOptions() SearchOptions {
	return SearchOptions{BridgeDistance: 1, ContextWords: 5}
}

// FindTimeRanges searches the ordered word sequence for the given keywords
// and returns merged, non-overlapping time ranges ordered by start time.
// Matching is case-insensitive and substring-based: a keyword that happens
// to occur inside an unrelated word ("art" inside "start") will match; that
// is the documented behavior, not a defect. Empty words or keywords yield
// an empty result.
func FindTimeRanges(words []Word, keywords []string) []TimeRange {
	return FindTimeRangesOpts(words, keywords, DefaultSearchOptions())
}

// FindTimeRangesOpts is FindTimeRanges with explicit options. Output is
// deterministic for identical inputs and options.
func FindTimeRangesOpts(words []Word, keywords []string, opts SearchOptions) []TimeRange {
	normalized := normalizeKeywords(keywords)
	if len(words) == 0 || len(normalized) == 0 {
		return []TimeRange{}
	}
	if opts.BridgeDistance < 0 {
		opts.BridgeDistance = 0
	}
	if opts.ContextWords < 0 {
		opts.ContextWords = 0
	}

	runs := findRuns(words, normalized, opts.BridgeDistance)
	windows := make([]window, len(runs))
	for i, r := range runs {
		windows[i] = growContext(words, r, opts.ContextWords)
	}

	return mergeWindows(words, windows)
}

// normalizeKeywords lowercases, drops empties and duplicates, and sorts so
// the output never depends on the caller's keyword order.
func normalizeKeywords(keywords []string) []string {
	seen := make(map[string]bool, len(keywords))
	out := make([]string, 0, len(keywords))
	for _, kw := range keywords {
		kw = strings.ToLower(strings.TrimSpace(kw))
		if kw == "" || seen[kw] {
			continue
		}
		seen[kw] = true
		out = append(out, kw)
	}
	sort.Strings(out)
	return out
}

// run is a maximal stretch of matching words, bridged across at most
// bridgeDistance non-matching words.
type run struct {
	first    int
	last     int
	keywords []string
}

// window is a run grown to include neighboring context words.
type window struct {
	first    int
	last     int
	keywords []string
}

func findRuns(words []Word, keywords []string, bridgeDistance int) []run {
	var runs []run
	var current *run

	for i, w := range words {
		matched := matchKeywords(w.Text, keywords)
		if len(matched) == 0 {
			continue
		}
		if current != nil && i-current.last-1 <= bridgeDistance {
			current.last = i
			current.keywords = mergeKeywords(current.keywords, matched)
			continue
		}
		if current != nil {
			runs = append(runs, *current)
		}
		current = &run{first: i, last: i, keywords: matched}
	}
	if current != nil {
		runs = append(runs, *current)
	}
	return runs
}

func matchKeywords(text string, keywords []string) []string {
	lower := strings.ToLower(text)
	var matched []string
	for _, kw := range keywords {
		if strings.Contains(lower, kw) {
			matched = append(matched, kw)
		}
	}
	return matched
}

// mergeKeywords unions two sorted keyword lists, keeping the result sorted.
func mergeKeywords(a, b []string) []string {
	out := make([]string, 0, len(a)+len(b))
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		switch {
		case a[i] < b[j]:
			out = append(out, a[i])
			i++
		case a[i] > b[j]:
			out = append(out, b[j])
			j++
		default:
			out = append(out, a[i])
			i++
			j++
		}
	}
	out = append(out, a[i:]...)
	out = append(out, b[j:]...)
	return out
}

// growContext widens a run by up to contextWords on each side, stopping
// early at a sentence boundary so the matched text stays legible.
func growContext(words []Word, r run, contextWords int) window {
	first := r.first
	for n := 0; n < contextWords && first > 0; n++ {
		// The previous word closing a sentence means first already sits at
		// a sentence start.
		if endsSentence(words[first-1].Text) {
			break
		}
		first--
	}

	last := r.last
	for n := 0; n < contextWords && last < len(words)-1; n++ {
		if endsSentence(words[last].Text) {
			break
		}
		last++
	}

	return window{first: first, last: last, keywords: r.keywords}
}

func endsSentence(text string) bool {
	trimmed := strings.TrimRight(text, `"')]`)
	return strings.HasSuffix(trimmed, ".") ||
		strings.HasSuffix(trimmed, "!") ||
		strings.HasSuffix(trimmed, "?")
}

// mergeWindows collapses windows that overlap in time into single ranges
// and materializes the TimeRange values, ordered by start time. Windows
// arrive ordered by their first word index.
func mergeWindows(words []Word, windows []window) []TimeRange {
	merged := make([]window, 0, len(windows))
	for _, w := range windows {
		if n := len(merged); n > 0 && words[w.first].Start < words[merged[n-1].last].End {
			prev := &merged[n-1]
			if w.first < prev.first {
				prev.first = w.first
			}
			if w.last > prev.last {
				prev.last = w.last
			}
			prev.keywords = mergeKeywords(prev.keywords, w.keywords)
			continue
		}
		merged = append(merged, w)
	}

	ranges := make([]TimeRange, 0, len(merged))
	for _, w := range merged {
		ranges = append(ranges, TimeRange{
			Start:       words[w.first].Start,
			End:         words[w.last].End,
			MatchedText: joinText(words, w.first, w.last),
			Keywords:    w.keywords,
		})
	}
	return ranges
}

func joinText(words []Word, first, last int) string {
	texts := make([]string, 0, last-first+1)
	for i := first; i <= last; i++ {
		texts = append(texts, words[i].Text)
	}
	return strings.Join(texts, " ")
}
