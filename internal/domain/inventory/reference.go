package inventory

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Ancho del consecutivo en las referencias.
const (
	MovementReferenceWidth = 6
	ProductReferenceWidth  = 4
	DefaultProductPrefix   = "GEN" // productos sin categoría
)

var movementPrefixes = map[string]string{
	"in":       "APP",
	"out":      "VT",
	"transfer": "TRF",
}

// Reference referencia descompuesta: PREFIJO-AÑO-NÚMERO.
type Reference struct {
	Prefix string
	Year   int
	Number int64
}

// MovementPrefix devuelve el prefijo de referencia del tipo de movimiento.
func MovementPrefix(movementType string) (string, bool) {
	p, ok := movementPrefixes[movementType]
	return p, ok
}

// FormatReference arma la referencia {PREFIJO}-{AÑO}-{NÚMERO con ceros a la izquierda}.
func FormatReference(prefix string, year int, number int64, width int) string {
	return fmt.Sprintf("%s-%04d-%0*d", prefix, year, width, number)
}

// ParseReference descompone una referencia generada por FormatReference.
func ParseReference(ref string) (Reference, error) {
	last := strings.LastIndex(ref, "-")
	if last <= 0 || last == len(ref)-1 {
		return Reference{}, fmt.Errorf("referencia inválida: %q", ref)
	}
	number, err := strconv.ParseInt(ref[last+1:], 10, 64)
	if err != nil || number < 0 {
		return Reference{}, fmt.Errorf("referencia inválida: %q", ref)
	}
	head := ref[:last]
	mid := strings.LastIndex(head, "-")
	if mid <= 0 {
		return Reference{}, fmt.Errorf("referencia inválida: %q", ref)
	}
	year, err := strconv.Atoi(head[mid+1:])
	if err != nil {
		return Reference{}, fmt.Errorf("referencia inválida: %q", ref)
	}
	return Reference{Prefix: head[:mid], Year: year, Number: number}, nil
}

// NormalizeCategoryCode quita tildes, pasa a mayúsculas y deja solo letras y dígitos.
// "Épices" -> "EPICES". Un código vacío produce DefaultProductPrefix.
func NormalizeCategoryCode(code string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	plain, _, err := transform.String(t, strings.TrimSpace(code))
	if err != nil {
		plain = code
	}
	upper := cases.Upper(language.Und).String(plain)
	var b strings.Builder
	for _, r := range upper {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	if b.Len() == 0 {
		return DefaultProductPrefix
	}
	return b.String()
}
