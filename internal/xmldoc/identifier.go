package xmldoc

import (
	"fmt"
	"strings"

	"github.com/jcdickinson/clrdoc/internal/model"
)

var braceReplacer = strings.NewReplacer("{", "<", "}", ">")

// ParseIdentifier splits a documentation identifier of the form "K:rest" into
// its member kind and canonical identifier. Curly-brace generic markers in
// rest are translated to angle brackets.
func ParseIdentifier(s string) (model.MemberKind, string, error) {
	if s == "" {
		return 0, "", fmt.Errorf("%w: member identifier is empty", model.ErrInvalidArgument)
	}
	if len(s) < 3 || s[1] != ':' {
		return 0, "", fmt.Errorf("%w: member identifier %q is not of the form K:name", model.ErrFormat, s)
	}
	kind, ok := model.MemberKindFromCode(s[0])
	if !ok {
		return 0, "", fmt.Errorf("%w: %q is not a recognised member kind in %q", model.ErrInvalidOperation, s[0], s)
	}
	return kind, braceReplacer.Replace(s[2:]), nil
}
