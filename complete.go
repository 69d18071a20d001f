package ferricalc

// IdentAtEnd returns the identifier ending at the end of input, if any.
// Hosts use it to pick the completion prefix under the cursor before
// calling Env.Search.
func IdentAtEnd(input string) (string, bool) {
	start, ok := IdentRange(input, len(input))
	if !ok {
		return "", false
	}
	return input[start:], true
}

// IdentRange scans backward from the byte offset end for an identifier
// ending there: the longest run of alphanumeric bytes whose first byte is
// alphabetic. It returns the identifier's start offset; ok is false when
// no identifier ends at end.
func IdentRange(input string, end int) (start int, ok bool) {
	for i := end - 1; i >= 0; i-- {
		c := input[i]
		if isAlpha(c) {
			start, ok = i, true
		}
		if !isAlphaNumeric(c) {
			break
		}
	}
	return start, ok
}
