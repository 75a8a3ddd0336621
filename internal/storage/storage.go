package storage

// BackgroundResolver maps a background name from a script to a playable
// clip on local disk. ok is false when no asset file exists, in which
// case the assembler substitutes a solid-color background.
type BackgroundResolver interface {
	BackgroundClip(name string) (path string, ok bool)
}
