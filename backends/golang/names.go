package golang

import (
	"strings"
	"unicode"

	"github.com/wippyai/structbind/errors"
)

// exportedName maps a C identifier to an exported Go identifier:
// task_struct -> TaskStruct, RED -> RED, _0 -> X0.
func exportedName(s string) string {
	var sb strings.Builder
	upper := true
	for _, r := range s {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			upper = true
			continue
		}
		if upper {
			r = unicode.ToUpper(r)
			upper = false
		}
		sb.WriteRune(r)
	}
	name := sb.String()
	if name == "" || !unicode.IsUpper([]rune(name)[0]) {
		name = "X" + name
	}
	return name
}

// internalName maps a representation name to an unexported identifier:
// btf_type_12 -> btfType12.
func internalName(rep string) string {
	name := exportedName(rep)
	return strings.ToLower(name[:1]) + name[1:]
}

// scope records identifiers and the source names they were derived from.
type scope map[string]string

func (s scope) declare(ident, from string) error {
	if prev, dup := s[ident]; dup {
		return errors.DuplicateName(errors.PhaseEmit, ident, prev, from)
	}
	s[ident] = from
	return nil
}
