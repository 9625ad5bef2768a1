package usecase

import (
	"sort"

	"SRPulse/internal/domain/models"
	"SRPulse/pkg/util"
)

const DefaultTopIssuers = 10

// Analyzer computes the descriptive statistics over a product collection.
// Analyze is a pure function of its input: it never mutates the products and
// an empty collection yields a zero-filled result, never an error.
type Analyzer struct {
	topN int
}

type AnalyzerOption func(*Analyzer)

// WithTopIssuers caps the issuer ranking at n entries.
func WithTopIssuers(n int) AnalyzerOption {
	return func(a *Analyzer) {
		if n > 0 {
			a.topN = n
		}
	}
}

func NewAnalyzer(opts ...AnalyzerOption) *Analyzer {
	a := &Analyzer{topN: DefaultTopIssuers}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

type groupAcc struct {
	count int
	value float64
}

func (g groupAcc) stat() models.GroupStat {
	s := models.GroupStat{Count: g.count, TotalValue: g.value}
	if g.count > 0 {
		s.AverageValue = g.value / float64(g.count)
	}
	return s
}

// Analyze builds an AnalysisResult in a single pass over the collection.
// Breakdowns contain only categories actually present in the input.
func (a *Analyzer) Analyze(products []models.Product) *models.AnalysisResult {
	res := &models.AnalysisResult{
		TotalProducts: len(products),
		ByCountry:     make(map[models.Country]models.GroupStat),
		ByCurrency:    make(map[models.Currency]models.GroupStat),
		ByProductType: make(map[models.ProductType]models.GroupStat),
		ByRiskLevel:   make(map[models.RiskLevel]models.GroupStat),
		TopIssuers:    []models.IssuerStat{},
		MonthlyTrend:  []models.MonthBucket{},
	}

	byCountry := make(map[models.Country]groupAcc)
	byCurrency := make(map[models.Currency]groupAcc)
	byType := make(map[models.ProductType]groupAcc)
	byRisk := make(map[models.RiskLevel]groupAcc)
	byIssuer := make(map[string]groupAcc)
	byMonth := make(map[string]groupAcc)

	for i := range products {
		p := &products[i]
		res.TotalValue += p.NominalValue

		acc := byCountry[p.Country]
		acc.count++
		acc.value += p.NominalValue
		byCountry[p.Country] = acc

		acc = byCurrency[p.Currency]
		acc.count++
		acc.value += p.NominalValue
		byCurrency[p.Currency] = acc

		acc = byType[p.ProductType]
		acc.count++
		acc.value += p.NominalValue
		byType[p.ProductType] = acc

		acc = byRisk[p.RiskLevel]
		acc.count++
		acc.value += p.NominalValue
		byRisk[p.RiskLevel] = acc

		acc = byIssuer[p.Issuer]
		acc.count++
		acc.value += p.NominalValue
		byIssuer[p.Issuer] = acc

		acc = byMonth[p.IssueMonth()]
		acc.count++
		acc.value += p.NominalValue
		byMonth[p.IssueMonth()] = acc
	}

	if res.TotalProducts > 0 {
		res.AverageValue = res.TotalValue / float64(res.TotalProducts)
	}

	for k, v := range byCountry {
		res.ByCountry[k] = v.stat()
	}
	for k, v := range byCurrency {
		res.ByCurrency[k] = v.stat()
	}
	for k, v := range byType {
		res.ByProductType[k] = v.stat()
	}
	for k, v := range byRisk {
		res.ByRiskLevel[k] = v.stat()
	}

	res.TopIssuers = a.rankIssuers(byIssuer)
	res.MonthlyTrend = monthlyTrend(byMonth)
	return res
}

// rankIssuers orders issuers by total value desc, then count desc, then name
// asc so equal inputs always produce the same ranking, and truncates to topN.
func (a *Analyzer) rankIssuers(byIssuer map[string]groupAcc) []models.IssuerStat {
	ranked := make([]models.IssuerStat, 0, len(byIssuer))
	for issuer, acc := range byIssuer {
		s := models.IssuerStat{Issuer: issuer, Count: acc.count, TotalValue: acc.value}
		if acc.count > 0 {
			s.AverageValue = acc.value / float64(acc.count)
		}
		ranked = append(ranked, s)
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].TotalValue != ranked[j].TotalValue {
			return ranked[i].TotalValue > ranked[j].TotalValue
		}
		if ranked[i].Count != ranked[j].Count {
			return ranked[i].Count > ranked[j].Count
		}
		return ranked[i].Issuer < ranked[j].Issuer
	})
	if len(ranked) > a.topN {
		ranked = ranked[:a.topN]
	}
	return ranked
}

// monthlyTrend sorts buckets chronologically ascending. Only months present in
// the input appear; gaps are not synthesized.
func monthlyTrend(byMonth map[string]groupAcc) []models.MonthBucket {
	trend := make([]models.MonthBucket, 0, len(byMonth))
	for month, acc := range byMonth {
		b := models.MonthBucket{Month: month, Count: acc.count, TotalValue: acc.value}
		if acc.count > 0 {
			b.AverageValue = acc.value / float64(acc.count)
		}
		trend = append(trend, b)
	}
	// "YYYY-MM" keys sort chronologically as strings
	sort.Slice(trend, func(i, j int) bool { return trend[i].Month < trend[j].Month })
	return trend
}

// Summarize builds the lightweight collection overview.
func (a *Analyzer) Summarize(products []models.Product) models.CollectionSummary {
	s := models.CollectionSummary{
		TotalCount:   len(products),
		Countries:    []string{},
		Currencies:   []string{},
		ProductTypes: []string{},
		RiskLevels:   []string{},
	}
	if len(products) == 0 {
		return s
	}

	countries := make(map[string]struct{})
	currencies := make(map[string]struct{})
	types := make(map[string]struct{})
	risks := make(map[string]struct{})
	minDate, maxDate := products[0].IssueDate, products[0].IssueDate

	for i := range products {
		p := &products[i]
		countries[string(p.Country)] = struct{}{}
		currencies[string(p.Currency)] = struct{}{}
		types[string(p.ProductType)] = struct{}{}
		risks[p.RiskLevel.String()] = struct{}{}
		s.TotalValue += p.NominalValue
		if p.IssueDate.Before(minDate) {
			minDate = p.IssueDate
		}
		if p.IssueDate.After(maxDate) {
			maxDate = p.IssueDate
		}
	}

	s.AverageValue = s.TotalValue / float64(len(products))
	s.DateStart = util.FormatDate(minDate)
	s.DateEnd = util.FormatDate(maxDate)
	s.Countries = sortedKeys(countries)
	s.Currencies = sortedKeys(currencies)
	s.ProductTypes = sortedKeys(types)
	s.RiskLevels = sortedKeys(risks)
	return s
}

func sortedKeys(set map[string]struct{}) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
