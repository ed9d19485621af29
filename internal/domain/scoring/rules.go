package scoring

// Rule es un par (predicado, resultado) dentro de una cadena de reglas ordenada.
type Rule[I, O any] struct {
	Name string
	When func(I) bool
	Then func(I) O
}

// LastMatch evalúa todas las reglas en orden; cada regla que aplica sobrescribe
// el resultado anterior, de modo que gana la última coincidencia.
// Devuelve fallback si ninguna aplica.
func LastMatch[I, O any](rules []Rule[I, O], in I, fallback O) O {
	out := fallback
	for _, r := range rules {
		if r.When(in) {
			out = r.Then(in)
		}
	}
	return out
}
