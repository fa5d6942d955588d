package helpers

import (
	"math"
	"strings"

	"github.com/ishanbagra18/artfolio-server/models"
)

// PortfolioCompletion reports how much of a portfolio is filled in, 0..100.
func PortfolioCompletion(p *models.Portfolio) int {
	if p == nil {
		return 0
	}
	b := p.BasicDetails
	checks := []bool{
		filled(b.FullName),
		filled(b.Bio),
		filled(b.ProfileImage),
		filled(b.Location),
		filled(b.Email) || filled(b.Phone),
		filled(p.Specialization.Primary) || len(p.Specialization.Skills) > 0,
		len(p.Experience) > 0,
		len(p.Artworks) > 0,
		len(p.Awards) > 0,
		len(p.Projects) > 0,
	}

	done := 0
	for _, ok := range checks {
		if ok {
			done++
		}
	}
	return int(math.Round(float64(done) * 100 / float64(len(checks))))
}

func filled(s string) bool {
	return strings.TrimSpace(s) != ""
}
