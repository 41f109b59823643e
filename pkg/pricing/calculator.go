package pricing

import "strings"

// Quote is the calculator's answer for one package and user count.
type Quote struct {
	Package       Package  `json:"package"`
	Users         int      `json:"users"`
	Result        Result   `json:"result"`
	Variant       *Variant `json:"variant,omitempty"`
	UsingFallback bool     `json:"usingFallback"`
}

// CalculatorOption configures a Calculator.
type CalculatorOption func(*Calculator)

// WithRule overrides DefaultRule.
func WithRule(rule Rule) CalculatorOption {
	return func(c *Calculator) {
		c.rule = rule
	}
}

// WithFallback marks the catalog as fallback data, typically because the
// live source failed before the calculator was built.
func WithFallback(fallback bool) CalculatorOption {
	return func(c *Calculator) {
		c.usingFallback = c.usingFallback || fallback
	}
}

// Calculator prices packages from a single catalog.
type Calculator struct {
	catalog       Catalog
	rule          Rule
	usingFallback bool
}

// NewCalculator binds catalog. An empty catalog is replaced by the fallback
// catalog built for the calculator's rule, and every quote is flagged
// accordingly.
func NewCalculator(catalog Catalog, options ...CalculatorOption) *Calculator {
	c := &Calculator{catalog: catalog, rule: DefaultRule()}
	for _, opt := range options {
		if opt != nil {
			opt(c)
		}
	}
	if catalog.Len() == 0 {
		c.catalog = FallbackCatalogFor(c.rule)
		c.usingFallback = true
	}
	return c
}

// Catalog returns the catalog in use.
func (c *Calculator) Catalog() Catalog {
	return c.catalog
}

// Rule returns the active pricing rule.
func (c *Calculator) Rule() Rule {
	return c.rule
}

// UsingFallback reports whether the calculator runs on fallback data.
func (c *Calculator) UsingFallback() bool {
	return c.usingFallback
}

// Packages lists packages in presentation order.
func (c *Calculator) Packages() []Package {
	return c.catalog.Sorted()
}

// DefaultPackage is the cheapest package, the initial selection in a picker.
func (c *Calculator) DefaultPackage() (Package, error) {
	sorted := c.catalog.Sorted()
	if len(sorted) == 0 {
		return Package{}, Error{Kind: KindPackageNotFound, Message: "catalog is empty"}
	}
	return sorted[0], nil
}

// Quote prices users seats of packageID. An empty id selects
// DefaultPackage. The matching variant is attached when one exists; a missing
// variant does not fail the quote, use Variant for strict lookups.
func (c *Calculator) Quote(packageID string, users int) (Quote, error) {
	pkg, err := c.resolvePackage(packageID)
	if err != nil {
		return Quote{}, err
	}

	result, err := ComputeTotal(pkg, users, c.rule)
	if err != nil {
		return Quote{}, err
	}

	quote := Quote{
		Package:       pkg,
		Users:         users,
		Result:        result,
		UsingFallback: c.usingFallback,
	}
	if variant, err := FindVariant(pkg, users, c.rule.threshold()); err == nil {
		quote.Variant = &variant
	}
	return quote, nil
}

// Variant returns the SKU for packageID and users, reporting
// ErrVariantNotFound or ErrCustomVariantNotFound when the catalog has none.
func (c *Calculator) Variant(packageID string, users int) (Variant, error) {
	pkg, err := c.resolvePackage(packageID)
	if err != nil {
		return Variant{}, err
	}
	return FindVariant(pkg, users, c.rule.threshold())
}

func (c *Calculator) resolvePackage(packageID string) (Package, error) {
	if strings.TrimSpace(packageID) == "" {
		return c.DefaultPackage()
	}
	return c.catalog.Package(packageID)
}
