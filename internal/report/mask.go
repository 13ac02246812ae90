package report

const (
	maskMinLen    = 20
	maskHeadRunes = 10
	maskTailRunes = 4
)

// MaskSecret redacts the middle of a credential, keeping enough of both ends
// to recognize which key was used. Short values are returned unchanged since
// truncating them would leave nothing recognizable.
func MaskSecret(value string) string {
	runes := []rune(value)
	if len(runes) <= maskMinLen {
		return value
	}
	return string(runes[:maskHeadRunes]) + "..." + string(runes[len(runes)-maskTailRunes:])
}
