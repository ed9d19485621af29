package repository

import "time"

// Scope restringe las lecturas a los registros asignados a ciertos usuarios.
// Unrestricted (admin) ignora UserIDs.
type Scope struct {
	Unrestricted bool
	UserIDs      []string
}

// Allows indica si userID cae dentro del alcance.
func (s Scope) Allows(userID string) bool {
	if s.Unrestricted {
		return true
	}
	for _, id := range s.UserIDs {
		if id == userID {
			return true
		}
	}
	return false
}

// DateRange rango cerrado de fechas; un extremo cero queda abierto.
type DateRange struct {
	From time.Time
	To   time.Time
}

// ListOptions paginación y orden comunes a los listados.
// SortBy ya viene validado contra la lista blanca del recurso.
type ListOptions struct {
	Page     int
	Limit    int
	SortBy   string
	SortDesc bool
}

// Offset desplazamiento de la página actual.
func (o ListOptions) Offset() int {
	if o.Page < 1 {
		return 0
	}
	return (o.Page - 1) * o.Limit
}
