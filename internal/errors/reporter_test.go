package errors

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"dialogscript/internal/diag"
)

func TestFormatErrorIncludesLocationAndMessage(t *testing.T) {
	r := NewReporter("story.dlg", "Hello\n  <<if>>\n")
	err := diag.New(diag.UnexpectedToken, 2, 3, "unexpected END_COMMAND")

	out := r.FormatError(err)

	assert.Contains(t, out, "error[UnexpectedToken]: unexpected END_COMMAND")
	assert.Contains(t, out, "story.dlg:2:3")
	assert.Contains(t, out, "<<if>>")
}

func TestFormatErrorRendersExpectedList(t *testing.T) {
	r := NewReporter("story.dlg", "<<set $x>>\n")
	err := &diag.Error{
		Kind:     diag.UnexpectedToken,
		Line:     1,
		Column:   9,
		Message:  "unexpected >>",
		Expected: []string{"=", "+=", "-="},
	}

	out := r.FormatError(err)
	assert.Contains(t, out, "expected one of: =, +=, -=")
}
