package dashboard

// KeyCode identifies a key the router understands.
type KeyCode int

const (
	KeyRune KeyCode = iota
	KeyEnter
	KeyEsc
	KeyBackspace
	KeyUp
	KeyDown
	KeyTab
	KeyShiftTab
	KeyCtrlC
)

// Key is a single key press. Rune is only meaningful when Code is KeyRune.
type Key struct {
	Code KeyCode
	Rune rune
}

// RuneKey returns the key press of a printable character.
func RuneKey(r rune) Key {
	return Key{Code: KeyRune, Rune: r}
}

// CodeKey returns the key press of a non-printable key.
func CodeKey(code KeyCode) Key {
	return Key{Code: code}
}

func (k Key) is(r rune) bool {
	return k.Code == KeyRune && k.Rune == r
}
