package subtitle

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// FormatError reports a malformed SRT block. It is fatal for the file being
// parsed; empty-text blocks are not format errors and are dropped instead.
type FormatError struct {
	Block  int
	Detail string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("srt parse: block %d: %s", e.Block, e.Detail)
}

// ParseStats reports non-fatal findings from a parse pass.
type ParseStats struct {
	DroppedEmpty int
}

// Parse decodes SRT text into a Set. Blocks are separated by blank lines;
// each block carries an index line, a timing line, and one or more text
// lines. Blocks whose text is empty after trimming are dropped and counted
// in ParseStats so the caller can log them.
func Parse(raw []byte) (Set, ParseStats, error) {
	var stats ParseStats

	content := strings.ReplaceAll(string(raw), "\r\n", "\n")
	content = strings.TrimPrefix(content, "\ufeff")
	content = strings.TrimSpace(content)
	if content == "" {
		return Set{}, stats, nil
	}

	var set Set
	blockNum := 0
	for _, block := range strings.Split(content, "\n\n") {
		block = strings.TrimSpace(block)
		if block == "" {
			continue
		}
		blockNum++

		lines := strings.Split(block, "\n")
		if len(lines) < 2 {
			return nil, stats, &FormatError{Block: blockNum, Detail: "missing timing line"}
		}

		index, err := strconv.Atoi(strings.TrimSpace(lines[0]))
		if err != nil {
			return nil, stats, &FormatError{Block: blockNum, Detail: fmt.Sprintf("index %q is not an integer", strings.TrimSpace(lines[0]))}
		}

		start, end, err := parseTimingLine(lines[1])
		if err != nil {
			return nil, stats, &FormatError{Block: blockNum, Detail: err.Error()}
		}

		text := strings.TrimSpace(strings.Join(lines[2:], "\n"))
		if text == "" {
			stats.DroppedEmpty++
			continue
		}

		set = append(set, Segment{Index: index, Start: start, End: end, Text: text})
	}

	if set == nil {
		set = Set{}
	}
	return set, stats, nil
}

// Serialize encodes a Set as SRT text. Segments are renumbered from 1
// regardless of their stored indices, blocks are joined with exactly one
// blank line, and the output ends with a newline. Identical sets always
// produce byte-identical output.
func Serialize(set Set) []byte {
	var b strings.Builder
	for i, seg := range set {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(strconv.Itoa(i + 1))
		b.WriteString("\n")
		b.WriteString(FormatTimestamp(seg.Start))
		b.WriteString(" --> ")
		b.WriteString(FormatTimestamp(seg.End))
		b.WriteString("\n")
		b.WriteString(seg.Text)
		b.WriteString("\n")
	}
	return []byte(b.String())
}

func parseTimingLine(line string) (time.Duration, time.Duration, error) {
	parts := strings.Split(line, "-->")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("invalid timing line %q", strings.TrimSpace(line))
	}
	start, err := ParseTimestamp(parts[0])
	if err != nil {
		return 0, 0, err
	}
	end, err := ParseTimestamp(parts[1])
	if err != nil {
		return 0, 0, err
	}
	return start, end, nil
}

// ParseTimestamp decodes an SRT timestamp of the form HH:MM:SS,mmm. A period
// separator is tolerated since some tools emit it in place of the comma.
func ParseTimestamp(value string) (time.Duration, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0, fmt.Errorf("empty timestamp")
	}
	value = strings.ReplaceAll(value, ".", ",")
	timeParts := strings.Split(value, ",")
	if len(timeParts) != 2 {
		return 0, fmt.Errorf("invalid timestamp %q", value)
	}
	hms := strings.Split(timeParts[0], ":")
	if len(hms) != 3 {
		return 0, fmt.Errorf("invalid timestamp %q", value)
	}
	hours, errH := strconv.Atoi(hms[0])
	minutes, errM := strconv.Atoi(hms[1])
	seconds, errS := strconv.Atoi(hms[2])
	millis, errMS := strconv.Atoi(timeParts[1])
	if errH != nil || errM != nil || errS != nil || errMS != nil {
		return 0, fmt.Errorf("invalid timestamp %q", value)
	}
	return time.Duration(hours)*time.Hour +
		time.Duration(minutes)*time.Minute +
		time.Duration(seconds)*time.Second +
		time.Duration(millis)*time.Millisecond, nil
}

// FormatTimestamp encodes a duration as a zero-padded SRT timestamp with
// millisecond precision.
func FormatTimestamp(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	hours := d / time.Hour
	d -= hours * time.Hour
	minutes := d / time.Minute
	d -= minutes * time.Minute
	seconds := d / time.Second
	d -= seconds * time.Second
	millis := d / time.Millisecond
	return fmt.Sprintf("%02d:%02d:%02d,%03d", hours, minutes, seconds, millis)
}
