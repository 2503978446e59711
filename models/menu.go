package models

const (
	CategoryDrink   = "bebida"
	CategoryDessert = "postre"
)

// Size is a named price variant of a menu item ("Simple", "Doble", ...).
type Size struct {
	Name  string  `json:"name" yaml:"name" validate:"required"`
	Price float64 `json:"price" yaml:"price" validate:"gte=0"`
}

type MenuItem struct {
	ID          string  `json:"id" yaml:"id"`
	Name        string  `json:"name" yaml:"name" validate:"required"`
	Description string  `json:"description" yaml:"description"`
	Price       float64 `json:"price" yaml:"price" validate:"gte=0"`
	Category    string  `json:"category" yaml:"category" validate:"oneof=bebida postre"`
	Image       string  `json:"image" yaml:"image"`
	Sizes       []Size  `json:"sizes,omitempty" yaml:"sizes,omitempty" validate:"omitempty,dive"`
	Featured    bool    `json:"featured,omitempty" yaml:"featured,omitempty"`
	Badge       string  `json:"badge,omitempty" yaml:"badge,omitempty"`
}

// HasSizes reports whether size prices should be used instead of Price.
func (m MenuItem) HasSizes() bool {
	return len(m.Sizes) > 0
}

// FindSize returns the size with the given name, if any.
func (m MenuItem) FindSize(name string) (Size, bool) {
	for _, s := range m.Sizes {
		if s.Name == name {
			return s, true
		}
	}
	return Size{}, false
}

// CategoryLabel returns the display label used in order messages.
func CategoryLabel(category string) string {
	if category == CategoryDrink {
		return "Bebida"
	}
	return "Postre"
}
