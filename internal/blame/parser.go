package blame

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// UncommittedAuthor is the sentinel author git reports for lines that only
// exist in the working tree.
const UncommittedAuthor = "Not Committed Yet"

// Annotation describes who last changed one source line and when.
type Annotation struct {
	LineIndex  int    // 0-based position in the annotated file
	Author     string
	AuthorMail string
	AuthorTime int64  // unix seconds; 0 means uncommitted or unknown
	DateLabel  string // yy/mm/dd, empty when AuthorTime is 0
	Bucket     int    // age bucket in [1, N]; 0 means colorless
	Content    string // the source line itself
}

// Committed reports whether the line is attributed to a real commit.
func (a Annotation) Committed() bool {
	return a.AuthorTime > 0
}

// Label renders the sidebar text for the annotation.
func (a Annotation) Label() string {
	if !a.Committed() {
		return a.Author
	}
	if a.AuthorMail != "" {
		return fmt.Sprintf("%s <%s> %s", a.Author, a.AuthorMail, a.DateLabel)
	}
	return fmt.Sprintf("%s %s", a.Author, a.DateLabel)
}

// headerBlock accumulates the metadata lines preceding one source line.
type headerBlock struct {
	author     string
	authorMail string
	authorTime int64
	hasAuthor  bool
	hasTime    bool
	dirty      bool
}

func (b *headerBlock) complete() bool { return b.hasAuthor && b.hasTime }

// Parse turns the raw output of `git blame --line-porcelain` into one
// annotation per source line, in file order. Each tab-prefixed content line
// closes the header block accumulated before it. A block missing author or
// author-time still emits a placeholder annotation so the result stays 1:1
// with the annotated file.
func Parse(lines []string) []Annotation {
	var (
		annotations []Annotation
		block       headerBlock
	)

	emit := func(content string) {
		a := Annotation{
			LineIndex: len(annotations),
			Content:   content,
		}
		if block.complete() {
			a.Author = block.author
			a.AuthorMail = block.authorMail
			a.AuthorTime = block.authorTime
		}
		// Working-tree lines carry the sentinel author; treat them as
		// timeless so they never participate in the age gradient.
		if a.Author == UncommittedAuthor {
			a.AuthorTime = 0
			a.AuthorMail = ""
		}
		if a.AuthorTime > 0 {
			a.DateLabel = time.Unix(a.AuthorTime, 0).UTC().Format("06/01/02")
		}
		annotations = append(annotations, a)
		block = headerBlock{}
	}

	for _, line := range lines {
		switch {
		case strings.HasPrefix(line, "\t"):
			emit(strings.TrimPrefix(line, "\t"))
		case strings.HasPrefix(line, "author "):
			block.author = strings.TrimPrefix(line, "author ")
			block.hasAuthor = true
			block.dirty = true
		case strings.HasPrefix(line, "author-mail "):
			mail := strings.TrimPrefix(line, "author-mail ")
			block.authorMail = strings.Trim(mail, "<>")
			block.dirty = true
		case strings.HasPrefix(line, "author-time "):
			if t, err := strconv.ParseInt(strings.TrimPrefix(line, "author-time "), 10, 64); err == nil && t >= 0 {
				block.authorTime = t
				block.hasTime = true
			}
			block.dirty = true
		default:
			if line != "" {
				block.dirty = true
			}
		}
	}

	// A truncated trailing block still stands for a line of the file.
	if block.dirty {
		emit("")
	}

	return annotations
}
