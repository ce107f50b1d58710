package compiler

// Arguments is a compiled argument vector split at the entry point
type Arguments struct {
	JVM       []string
	MainClass string
	Game      []string
}

// Argv returns the flattened vector: runtime flags, entry point, program flags
func (a Arguments) Argv() []string {
	out := make([]string, 0, len(a.JVM)+1+len(a.Game))
	out = append(out, a.JVM...)
	if a.MainClass != "" {
		out = append(out, a.MainClass)
	}
	return append(out, a.Game...)
}

// Clone returns a deep copy
func (a Arguments) Clone() Arguments {
	return Arguments{
		JVM:       append([]string(nil), a.JVM...),
		MainClass: a.MainClass,
		Game:      append([]string(nil), a.Game...),
	}
}
