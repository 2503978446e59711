package models

type Social struct {
	Instagram string `json:"instagram" yaml:"instagram"`
	Facebook  string `json:"facebook" yaml:"facebook"`
}

type Info struct {
	Name     string `json:"name" yaml:"name" validate:"required"`
	Slogan   string `json:"slogan" yaml:"slogan"`
	Phone    string `json:"phone" yaml:"phone"`
	WhatsApp string `json:"whatsapp" yaml:"whatsapp" validate:"omitempty,numeric"`
	Address  string `json:"address" yaml:"address"`
	Hours    string `json:"hours" yaml:"hours"`
	Email    string `json:"email" yaml:"email" validate:"omitempty,email"`
	Social   Social `json:"social" yaml:"social"`
}

type Testimonial struct {
	ID     string `json:"id" yaml:"id"`
	Name   string `json:"name" yaml:"name" validate:"required"`
	Text   string `json:"text" yaml:"text" validate:"required"`
	Rating int    `json:"rating" yaml:"rating" validate:"min=1,max=5"`
}

type GalleryImage struct {
	ID  string `json:"id" yaml:"id"`
	URL string `json:"url" yaml:"url" validate:"required"`
	Alt string `json:"alt" yaml:"alt"`
}

// CafeData is the whole content document. It is always read and written
// as one unit.
type CafeData struct {
	Info         Info           `json:"info" yaml:"info"`
	Menu         []MenuItem     `json:"menu" yaml:"menu" validate:"dive"`
	Testimonials []Testimonial  `json:"testimonials" yaml:"testimonials" validate:"dive"`
	Gallery      []GalleryImage `json:"gallery" yaml:"gallery" validate:"dive"`
}

// Clone returns a deep copy so callers can mutate it freely.
func (d *CafeData) Clone() *CafeData {
	if d == nil {
		return nil
	}
	c := &CafeData{Info: d.Info}
	if d.Menu != nil {
		c.Menu = make([]MenuItem, len(d.Menu))
		for i, item := range d.Menu {
			if item.Sizes != nil {
				item.Sizes = append([]Size(nil), item.Sizes...)
			}
			c.Menu[i] = item
		}
	}
	if d.Testimonials != nil {
		c.Testimonials = append([]Testimonial(nil), d.Testimonials...)
	}
	if d.Gallery != nil {
		c.Gallery = append([]GalleryImage(nil), d.Gallery...)
	}
	return c
}

// DefaultCafeData is the document served until an admin saves one.
func DefaultCafeData() *CafeData {
	return &CafeData{
		Info: Info{
			Name:     "Café Aroma",
			Slogan:   "Donde cada taza cuenta una historia",
			Phone:    "+51927564707",
			WhatsApp: "927564707",
			Address:  "Calle Principal 123, Centro",
			Hours:    "Lun-Dom: 7:00 AM - 10:00 PM",
			Email:    "hola@cafearoma.com",
			Social: Social{
				Instagram: "@cafearoma",
				Facebook:  "CafeAromaOficial",
			},
		},
		Menu: []MenuItem{
			{
				ID:          "1",
				Name:        "Espresso Signature",
				Description: "Nuestro blend exclusivo con notas de chocolate y caramelo",
				Price:       4.5,
				Category:    CategoryDrink,
				Image:       "/espresso-coffee-cup.png",
				Sizes: []Size{
					{Name: "Simple", Price: 4.5},
					{Name: "Doble", Price: 6.0},
				},
				Featured: true,
				Badge:    "Especialidad",
			},
			{
				ID:          "2",
				Name:        "Cappuccino Artesanal",
				Description: "Espresso perfecto con espuma de leche cremosa y arte latte",
				Price:       5.5,
				Category:    CategoryDrink,
				Image:       "/cappuccino-latte-art.png",
				Sizes: []Size{
					{Name: "Regular", Price: 5.5},
					{Name: "Grande", Price: 7.0},
				},
				Featured: true,
			},
			{
				ID:          "3",
				Name:        "Cheesecake de Frutos Rojos",
				Description: "Cremoso cheesecake con salsa de frutos rojos frescos",
				Price:       6.5,
				Category:    CategoryDessert,
				Image:       "/berry-cheesecake-slice.png",
				Featured:    true,
				Badge:       "Favorito",
			},
		},
		Testimonials: []Testimonial{
			{ID: "1", Name: "María González", Text: "El mejor café de la ciudad. El ambiente es acogedor y el servicio excepcional.", Rating: 5},
			{ID: "2", Name: "Carlos Ruiz", Text: "Los postres son increíbles y el café tiene un sabor único. Totalmente recomendado.", Rating: 5},
			{ID: "3", Name: "Ana López", Text: "Mi lugar favorito para trabajar y disfrutar de un buen café. Ambiente perfecto.", Rating: 5},
		},
		Gallery: []GalleryImage{
			{ID: "1", URL: "/cozy-cafe-interior.png", Alt: "Interior acogedor del café"},
			{ID: "2", URL: "/coffee-beans-roasting.png", Alt: "Granos de café tostándose"},
			{ID: "3", URL: "/barista-making-coffee.png", Alt: "Barista preparando café"},
		},
	}
}
