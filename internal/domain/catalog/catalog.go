package catalog

import (
	"errors"
	"time"
)

var ErrServiceNotFound = errors.New("service not found in catalog")

// Service is a bookable catalog entry. The catalog is static reference
// data: appointments copy DurationMin and PriceCents at creation time, so
// later catalog edits never alter historical bookings.
type Service struct {
	ID          string
	Name        string
	DurationMin int
	PriceCents  int
}

func (s Service) Duration() time.Duration {
	return time.Duration(s.DurationMin) * time.Minute
}

type Catalog struct {
	byID    map[string]Service
	ordered []Service
}

func New(services []Service) *Catalog {
	c := &Catalog{byID: make(map[string]Service, len(services))}
	for _, s := range services {
		if _, dup := c.byID[s.ID]; dup {
			continue
		}
		c.byID[s.ID] = s
		c.ordered = append(c.ordered, s)
	}
	return c
}

// Default returns the salon's standard service list.
func Default() *Catalog {
	return New([]Service{
		{ID: "manicure", Name: "Manicure", DurationMin: 30, PriceCents: 2500},
		{ID: "pedicure", Name: "Pedicure", DurationMin: 45, PriceCents: 3000},
		{ID: "facial", Name: "Facial Cleansing", DurationMin: 60, PriceCents: 5000},
		{ID: "massage", Name: "Relaxing Massage", DurationMin: 60, PriceCents: 4000},
		{ID: "waxing", Name: "Waxing", DurationMin: 30, PriceCents: 3500},
		{ID: "makeup", Name: "Makeup", DurationMin: 45, PriceCents: 4500},
	})
}

func (c *Catalog) Resolve(id string) (Service, error) {
	s, ok := c.byID[id]
	if !ok {
		return Service{}, ErrServiceNotFound
	}
	return s, nil
}

func (c *Catalog) List() []Service {
	out := make([]Service, len(c.ordered))
	copy(out, c.ordered)
	return out
}
