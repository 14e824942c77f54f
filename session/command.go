package session

import "strings"

// Launch is the exact argv an assistant session is started with: program,
// static arguments, and an optional trailing one-shot prompt. Equality on
// Launch is the reuse-matching key, so it is immutable once built.
type Launch struct {
	argv []string
}

// BuildLaunch assembles a Launch from a program, its static arguments and an
// optional prompt. The prompt is appended as exactly one trailing argument
// iff it is non-empty.
func BuildLaunch(program string, args []string, prompt string) Launch {
	argv := make([]string, 0, len(args)+2)
	argv = append(argv, program)
	argv = append(argv, args...)
	if prompt != "" {
		argv = append(argv, prompt)
	}
	return Launch{argv: argv}
}

// LaunchFromArgv wraps an existing argv, copying it.
func LaunchFromArgv(argv []string) Launch {
	if len(argv) == 0 {
		return Launch{}
	}
	cp := make([]string, len(argv))
	copy(cp, argv)
	return Launch{argv: cp}
}

// IsZero reports whether the Launch is empty.
func (l Launch) IsZero() bool {
	return len(l.argv) == 0
}

// Program returns the program element of the argv.
func (l Launch) Program() string {
	if len(l.argv) == 0 {
		return ""
	}
	return l.argv[0]
}

// Argv returns a copy of the full argv.
func (l Launch) Argv() []string {
	cp := make([]string, len(l.argv))
	copy(cp, l.argv)
	return cp
}

// Equal reports element-wise string equality of the two argvs.
func (l Launch) Equal(other Launch) bool {
	if len(l.argv) != len(other.argv) {
		return false
	}
	for i := range l.argv {
		if l.argv[i] != other.argv[i] {
			return false
		}
	}
	return true
}

// String renders the argv as a single shell command, quoting arguments that
// need it. Used when spawning through a shell and for display.
func (l Launch) String() string {
	parts := make([]string, len(l.argv))
	for i, arg := range l.argv {
		parts[i] = shellQuote(arg)
	}
	return strings.Join(parts, " ")
}

func shellQuote(s string) string {
	if s == "" {
		return "''"
	}
	if !strings.ContainsAny(s, " \t\n'\"\\$`!*?[]{}();<>|&~#") {
		return s
	}
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}

// ParseCommand splits a shell-rendered command string back into a Launch.
// It understands the quoting String produces; it is not a full shell parser.
func ParseCommand(s string) Launch {
	var argv []string
	var cur strings.Builder
	inSingle, inDouble, escaped, started := false, false, false, false

	flush := func() {
		if started {
			argv = append(argv, cur.String())
			cur.Reset()
			started = false
		}
	}

	for _, r := range s {
		switch {
		case escaped:
			cur.WriteRune(r)
			started = true
			escaped = false
		case r == '\\' && !inSingle:
			escaped = true
			started = true
		case r == '\'' && !inDouble:
			inSingle = !inSingle
			started = true
		case r == '"' && !inSingle:
			inDouble = !inDouble
			started = true
		case (r == ' ' || r == '\t' || r == '\n') && !inSingle && !inDouble:
			flush()
		default:
			cur.WriteRune(r)
			started = true
		}
	}
	flush()

	return Launch{argv: argv}
}
