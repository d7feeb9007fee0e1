package binfile

// CompatMode selects how the central directory's ZIP64 extras and archive
// comment are written. The source tool made this a compile-time switch;
// here it is a runtime value so both modes are reachable from one test
// binary.
type CompatMode int

const (
	// EngineCompatibleMode writes central-directory ZIP64 extras carrying
	// only the offset, and an empty archive comment. The navigation
	// engine this format targets is known to choke on richer extras and
	// on a non-empty comment, so this is the default.
	EngineCompatibleMode CompatMode = iota
	// StrictMode restates both sizes and the offset in every ZIP64 extra
	// and writes a non-empty archive comment. More standards-compliant,
	// at the cost of engine compatibility.
	StrictMode
)

// Strict reports whether m is StrictMode.
func (m CompatMode) Strict() bool { return m == StrictMode }
