package diff

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
)

const (
	contextLines    = 3
	maxDiffLines    = 2000
	truncateMessage = "... (diff truncated, exceeds 2,000 lines) ..."
)

type lineOp struct {
	kind diffmatchpatch.Operation
	text string
}

// GenerateUnifiedDiff returns a unified diff between the on-disk content and the
// freshly generated content. Identical inputs produce an empty string.
func GenerateUnifiedDiff(current, generated []byte, currentLabel, generatedLabel string) string {
	if bytes.Equal(current, generated) {
		return ""
	}

	ops := lineDiff(string(current), string(generated))

	var buf bytes.Buffer
	fmt.Fprintf(&buf, "--- %s\n", currentLabel)
	fmt.Fprintf(&buf, "+++ %s\n", generatedLabel)

	for _, h := range buildHunks(ops) {
		fmt.Fprintf(&buf, "@@ -%d,%d +%d,%d @@\n", h.oldStart, h.oldLen, h.newStart, h.newLen)
		for _, op := range ops[h.from:h.to] {
			switch op.kind {
			case diffmatchpatch.DiffEqual:
				buf.WriteString(" ")
			case diffmatchpatch.DiffDelete:
				buf.WriteString("-")
			case diffmatchpatch.DiffInsert:
				buf.WriteString("+")
			}
			buf.WriteString(op.text)
			buf.WriteString("\n")
		}
	}

	result := buf.String()
	lines := strings.Split(result, "\n")
	if len(lines) > maxDiffLines {
		return strings.Join(lines[:maxDiffLines], "\n") + "\n" + truncateMessage + "\n"
	}
	return result
}

func lineDiff(a, b string) []lineOp {
	dmp := diffmatchpatch.New()
	charsA, charsB, lineArray := dmp.DiffLinesToChars(a, b)
	diffs := dmp.DiffMain(charsA, charsB, false)
	diffs = dmp.DiffCharsToLines(diffs, lineArray)

	var ops []lineOp
	for _, d := range diffs {
		text := strings.TrimSuffix(d.Text, "\n")
		if d.Text == "" {
			continue
		}
		for _, line := range strings.Split(text, "\n") {
			ops = append(ops, lineOp{kind: d.Type, text: line})
		}
	}
	return ops
}

type hunk struct {
	from, to         int
	oldStart, oldLen int
	newStart, newLen int
}

// buildHunks groups changed lines with up to contextLines of surrounding context.
func buildHunks(ops []lineOp) []hunk {
	var hunks []hunk

	i := 0
	for i < len(ops) {
		if ops[i].kind == diffmatchpatch.DiffEqual {
			i++
			continue
		}

		from := max(i-contextLines, 0)
		if len(hunks) > 0 && from < hunks[len(hunks)-1].to {
			from = hunks[len(hunks)-1].to
		}

		to := i
		equalRun := 0
		for to < len(ops) {
			if ops[to].kind == diffmatchpatch.DiffEqual {
				equalRun++
			} else {
				equalRun = 0
			}
			to++
			if equalRun > 2*contextLines {
				break
			}
		}
		trailing := min(equalRun, contextLines)
		to = to - equalRun + trailing
		if to > len(ops) {
			to = len(ops)
		}

		h := hunk{from: from, to: to}
		h.oldStart, h.newStart = positions(ops, from)
		for _, op := range ops[from:to] {
			switch op.kind {
			case diffmatchpatch.DiffEqual:
				h.oldLen++
				h.newLen++
			case diffmatchpatch.DiffDelete:
				h.oldLen++
			case diffmatchpatch.DiffInsert:
				h.newLen++
			}
		}

		if len(hunks) > 0 && hunks[len(hunks)-1].to == from {
			prev := &hunks[len(hunks)-1]
			prev.to = to
			prev.oldLen += h.oldLen
			prev.newLen += h.newLen
		} else {
			hunks = append(hunks, h)
		}
		i = to
	}

	return hunks
}

// positions returns the 1-based old and new line numbers at ops[idx].
func positions(ops []lineOp, idx int) (int, int) {
	oldLine, newLine := 1, 1
	for _, op := range ops[:idx] {
		switch op.kind {
		case diffmatchpatch.DiffEqual:
			oldLine++
			newLine++
		case diffmatchpatch.DiffDelete:
			oldLine++
		case diffmatchpatch.DiffInsert:
			newLine++
		}
	}
	return oldLine, newLine
}
