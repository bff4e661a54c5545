package editor

// ContextWindows returns up to window characters of text on each side of the
// span, clamped to the document edges. The windows are sent to the model as
// read-only guardrails; the engine never modifies them.
func ContextWindows(doc string, span Span, window int) (left, right string) {
	if window < 0 {
		window = 0
	}
	lo := span.Start - window
	if lo < 0 {
		lo = 0
	}
	hi := span.End + window
	if hi > len(doc) {
		hi = len(doc)
	}
	return doc[lo:span.Start], doc[span.End:hi]
}

// Splice replaces the span with the rewritten excerpt, producing a new
// document string. Pure character-level replacement with no knowledge of
// markdown structure.
func Splice(doc string, span Span, replacement string) string {
	return doc[:span.Start] + replacement + doc[span.End:]
}
