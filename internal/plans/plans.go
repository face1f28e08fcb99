// Package plans holds the static subscription plan catalog: which store
// product grants how many credits for how long. The catalog is built once at
// startup and handed to the services that need it; a product id that is not
// in the catalog grants nothing (one-time SKUs, retired products), which is
// not an error.
package plans

type Plan struct {
	ProductID      string `json:"product_id"`
	CreditsGranted int    `json:"credits_granted"`
	DurationDays   int    `json:"duration_days"`
}

type Catalog struct {
	byProduct map[string]Plan
}

func NewCatalog(plans ...Plan) Catalog {
	m := make(map[string]Plan, len(plans))
	for _, p := range plans {
		m[p.ProductID] = p
	}
	return Catalog{byProduct: m}
}

func (c Catalog) Lookup(productID string) (Plan, bool) {
	p, ok := c.byProduct[productID]
	return p, ok
}

func (c Catalog) All() []Plan {
	out := make([]Plan, 0, len(c.byProduct))
	for _, p := range c.byProduct {
		out = append(out, p)
	}
	return out
}

// Default returns the production catalog for the Toonify Pro subscriptions.
func Default() Catalog {
	return NewCatalog(
		Plan{ProductID: "toonify_pro_weekly", CreditsGranted: 50, DurationDays: 7},
		Plan{ProductID: "toonify_pro_monthly", CreditsGranted: 200, DurationDays: 30},
		Plan{ProductID: "toonify_pro_yearly", CreditsGranted: 1000, DurationDays: 365},
	)
}
