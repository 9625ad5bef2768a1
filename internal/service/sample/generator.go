package sample

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"time"

	"SRPulse/internal/domain/models"
	"SRPulse/pkg/util"
)

var issuers = []string{
	"BNP Paribas", "Societe Generale", "Credit Agricole", "LCL", "Credit Mutuel",
	"Banque Populaire", "Caisse d'Epargne", "HSBC France", "Deutsche Bank France",
	"ING Belgique", "KBC Bank", "Belfius Bank", "Argenta Bank", "AXA Bank",
}

var productNames = []string{
	"Obligation Indexee Actions Europeennes", "Note Structuree CAC 40",
	"Certificat de Performance", "Warrant Call CAC 40", "Note a Coupon Variable",
	"Obligation a Taux Revisable", "Certificat de Depot", "Note a Capital Garanti",
	"Warrant Put Euro Stoxx 50", "Obligation Indexee Matieres Premieres",
}

var underlyings = []string{
	"CAC 40", "Euro Stoxx 50", "S&P 500", "Actions Europeennes", "Matieres Premieres",
	"Taux d'Interet", "Devises", "Actions Asiatiques", "Actions Emergentes",
}

var ratings = []string{"AAA", "AA", "A", "BBB", "BB", "B", "CCC", ""}

var productTypes = []models.ProductType{
	models.TypeBond, models.TypeNote, models.TypeCertificate, models.TypeWarrant,
	models.TypeOption, models.TypeFuture, models.TypeSwap, models.TypeOther,
}

// Generator produces synthetic raw records shaped like the upstream feed,
// for demos and local runs without API access. Seeded generators are
// deterministic, which the tests rely on.
type Generator struct {
	count    int
	from, to time.Time
	rng      *rand.Rand
}

type Option func(*Generator)

func WithDateRange(from, to time.Time) Option {
	return func(g *Generator) { g.from, g.to = from, to }
}

func WithSeed(seed int64) Option {
	return func(g *Generator) { g.rng = rand.New(rand.NewSource(seed)) }
}

func New(count int, opts ...Option) *Generator {
	g := &Generator{
		count: count,
		from:  time.Date(2024, 8, 15, 0, 0, 0, 0, time.UTC),
		to:    time.Date(2025, 8, 15, 0, 0, 0, 0, time.UTC),
		rng:   rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Collect implements repository.RecordSource.
func (g *Generator) Collect(_ context.Context) ([]models.RawRecord, error) {
	records := make([]models.RawRecord, 0, g.count)
	for i := 0; i < g.count; i++ {
		records = append(records, g.record(i))
	}
	return records, nil
}

func (g *Generator) record(i int) models.RawRecord {
	days := int(g.to.Sub(g.from).Hours() / 24)
	if days < 1 {
		days = 1
	}
	issueDate := g.from.AddDate(0, 0, g.rng.Intn(days))
	maturityDate := issueDate.AddDate(0, 0, 365+g.rng.Intn(3285)) // 1..10 years

	// EUR-weighted currency mix, like the real feed
	currency := models.CurrencyEUR
	if g.rng.Float64() >= 0.8 {
		if g.rng.Intn(2) == 0 {
			currency = models.CurrencyUSD
		} else {
			currency = models.CurrencyGBP
		}
	}

	country := models.CountryFR
	if g.rng.Intn(2) == 1 {
		country = models.CountryBE
	}

	nominal := float64(1000 + g.rng.Intn(99001))
	coupon := math.Round(g.rng.Float64()*800) / 100 // 0..8%, 2 decimals

	rec := models.RawRecord{
		"id":            fmt.Sprintf("SRP_%06d", i+1),
		"name":          productNames[g.rng.Intn(len(productNames))],
		"issuer":        issuers[g.rng.Intn(len(issuers))],
		"country":       string(country),
		"currency":      string(currency),
		"issue_date":    util.FormatDate(issueDate),
		"maturity_date": util.FormatDate(maturityDate),
		"nominal_value": nominal,
		"coupon_rate":   coupon,
		"type":          string(productTypes[g.rng.Intn(len(productTypes))]),
		"underlying":    underlyings[g.rng.Intn(len(underlyings))],
		"risk":          fmt.Sprintf("%d", 1+g.rng.Intn(5)),
		"isin":          fmt.Sprintf("FR%012d", g.rng.Int63n(1_000_000_000_000)),
	}
	if r := ratings[g.rng.Intn(len(ratings))]; r != "" {
		rec["rating"] = r
	}
	return rec
}
