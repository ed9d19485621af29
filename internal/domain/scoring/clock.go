package scoring

import "time"

// Clock abstrae la fecha actual para que las derivaciones sean deterministas en tests.
type Clock interface {
	Now() time.Time
}

// SystemClock usa el reloj del sistema.
type SystemClock struct{}

// Now implementa Clock.
func (SystemClock) Now() time.Time { return time.Now() }

// FixedClock devuelve siempre el mismo instante.
type FixedClock time.Time

// Now implementa Clock.
func (c FixedClock) Now() time.Time { return time.Time(c) }
