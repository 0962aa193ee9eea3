package doxygen

// AllowedFiles lists the public C headers whose members are documented.
// Struct compounds are collected regardless of this list.
var AllowedFiles = []string{
	"Context.h",
	"Device.h",
	"Error.h",
	"Filter.h",
	"Frame.h",
	"ObTypes.h",
	"Pipeline.h",
	"Property.h",
	"RecordPlayback.h",
	"Sensor.h",
	"StreamProfile.h",
	"Version.h",
}

// ExcludedFunctions lists deprecated functions that are collected but never
// rendered into the reference page.
var ExcludedFunctions = []string{
	"ob_frame_width",
	"ob_frame_height",
	"ob_delete_frame_set",
	"ob_stream_profile_fps",
	"ob_stream_profile_width",
	"ob_stream_profile_height",
}

// NameSet is a set of symbol or file names.
type NameSet map[string]bool

// NewNameSet builds a set from names.
func NewNameSet(names ...string) NameSet {
	set := make(NameSet, len(names))
	for _, name := range names {
		set[name] = true
	}
	return set
}

// Contains reports whether name is in the set. A nil set contains nothing.
func (s NameSet) Contains(name string) bool {
	return s[name]
}

// AllowedFileSet returns AllowedFiles as a set.
func AllowedFileSet() NameSet {
	return NewNameSet(AllowedFiles...)
}

// ExcludedFunctionSet returns ExcludedFunctions as a set.
func ExcludedFunctionSet() NameSet {
	return NewNameSet(ExcludedFunctions...)
}
