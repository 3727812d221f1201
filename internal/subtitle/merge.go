package subtitle

import (
	"fmt"
	"sort"
	"strings"
)

// AlignmentError reports an index mismatch between an original set and its
// translation. It always indicates that the translator dropped or
// duplicated a segment and must never be swallowed.
type AlignmentError struct {
	MissingFromTranslated []int
	MissingFromOriginal   []int
}

func (e *AlignmentError) Error() string {
	return fmt.Sprintf(
		"bilingual merge: index sets differ (missing from translated: %v, missing from original: %v)",
		e.MissingFromTranslated, e.MissingFromOriginal,
	)
}

// MergeBilingual combines an original set with its translation into a set
// whose cues carry the original text on the first line and the translated
// text on the second. Multi-line cue text is flattened with " / " so each
// cue stays two lines tall. Timings come from the original set untouched.
func MergeBilingual(original, translated Set) (Set, error) {
	byIndex := make(map[int]Segment, len(translated))
	for _, seg := range translated {
		byIndex[seg.Index] = seg
	}

	var missingFromTranslated []int
	merged := make(Set, 0, len(original))
	for _, orig := range original {
		trans, ok := byIndex[orig.Index]
		if !ok {
			missingFromTranslated = append(missingFromTranslated, orig.Index)
			continue
		}
		delete(byIndex, orig.Index)
		merged = append(merged, Segment{
			Index: orig.Index,
			Start: orig.Start,
			End:   orig.End,
			Text:  flattenLines(orig.Text) + "\n" + flattenLines(trans.Text),
		})
	}

	if len(missingFromTranslated) > 0 || len(byIndex) > 0 {
		extra := make([]int, 0, len(byIndex))
		for index := range byIndex {
			extra = append(extra, index)
		}
		sort.Ints(extra)
		return nil, &AlignmentError{
			MissingFromTranslated: missingFromTranslated,
			MissingFromOriginal:   extra,
		}
	}
	return merged, nil
}

func flattenLines(text string) string {
	return strings.ReplaceAll(text, "\n", " / ")
}
