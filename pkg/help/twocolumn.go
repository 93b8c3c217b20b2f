package help

import (
	"strings"
	"unicode/utf8"
)

type row struct {
	label  string
	value  string
	paired bool
}

// TwoColumnList aligns values behind labels.
type TwoColumnList struct {
	rows []row
}

// AddRow adds a line that takes part in column alignment.
func (l *TwoColumnList) AddRow(label, value string) {
	l.rows = append(l.rows, row{label: label, value: value, paired: true})
}

// AddHeading adds an unpadded "heading:" line, preceded by a blank line
// unless it is the first row.
func (l *TwoColumnList) AddHeading(heading string) {
	if len(l.rows) > 0 {
		l.rows = append(l.rows, row{})
	}
	l.rows = append(l.rows, row{label: heading + ":"})
}

// Len returns the number of rows, separators included.
func (l *TwoColumnList) Len() int { return len(l.rows) }

// String renders every row on its own line. Paired labels are padded to the
// widest paired label plus three spaces.
func (l *TwoColumnList) String() string {
	width := 0
	for _, r := range l.rows {
		if n := utf8.RuneCountInString(r.label); r.paired && n > width {
			width = n
		}
	}

	var sb strings.Builder
	for _, r := range l.rows {
		sb.WriteString(r.label)
		if r.paired {
			sb.WriteString(strings.Repeat(" ", width-utf8.RuneCountInString(r.label)+3))
			sb.WriteString(r.value)
		}
		sb.WriteString("\n")
	}
	return sb.String()
}
