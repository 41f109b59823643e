package pricing

const (
	// DefaultPerUserPrice is the seat price added per user.
	DefaultPerUserPrice = Money(100 * 100)
	// DefaultCustomQuoteThreshold is the last user count priced linearly.
	DefaultCustomQuoteThreshold = 50
)

// Option is one storefront option pair attached to a variant, for example
// {Name: "Users", Value: "10"}.
type Option struct {
	Name  string `json:"name" yaml:"name"`
	Value string `json:"value" yaml:"value"`
}

// Variant is a purchasable SKU of a package.
type Variant struct {
	ID      string   `json:"id" yaml:"id"`
	Title   string   `json:"title,omitempty" yaml:"title"`
	Price   Money    `json:"price" yaml:"price"`
	Options []Option `json:"options,omitempty" yaml:"options"`
}

// Package is a priced product in the catalog.
type Package struct {
	ID          string    `json:"id" yaml:"id"`
	Handle      string    `json:"handle,omitempty" yaml:"handle"`
	Name        string    `json:"name" yaml:"name"`
	Description string    `json:"description,omitempty" yaml:"description"`
	Features    []string  `json:"features,omitempty" yaml:"features"`
	BasePrice   Money     `json:"basePrice" yaml:"base_price"`
	Variants    []Variant `json:"variants,omitempty" yaml:"variants"`
}

// Rule is the per-integration pricing policy. Some product pages charge per
// seat, others treat the package price as a flat fee; the choice is explicit
// here rather than hard-coded.
type Rule struct {
	PerUserPrice         Money `json:"perUserPrice" yaml:"per_user_price"`
	CustomQuoteThreshold int   `json:"customQuoteThreshold" yaml:"custom_quote_threshold"`
	ApplyPerUserPricing  bool  `json:"applyPerUserPricing" yaml:"apply_per_user_pricing"`
}

// DefaultRule charges DefaultPerUserPrice per seat up to the default
// threshold.
func DefaultRule() Rule {
	return Rule{
		PerUserPrice:         DefaultPerUserPrice,
		CustomQuoteThreshold: DefaultCustomQuoteThreshold,
		ApplyPerUserPricing:  true,
	}
}

// FlatRule treats the package price as a flat fee.
func FlatRule() Rule {
	rule := DefaultRule()
	rule.ApplyPerUserPricing = false
	return rule
}

func (r Rule) threshold() int {
	if r.CustomQuoteThreshold <= 0 {
		return DefaultCustomQuoteThreshold
	}
	return r.CustomQuoteThreshold
}

// ResultKind tags a Result.
type ResultKind string

const (
	ResultAmount      ResultKind = "amount"
	ResultCustomQuote ResultKind = "customQuote"
)

// Result is either a priced amount or a request for a custom quote.
type Result struct {
	Kind   ResultKind `json:"kind"`
	Amount Money      `json:"amount,omitempty"`
}

// IsCustomQuote reports whether the result asks for a custom quote.
func (r Result) IsCustomQuote() bool {
	return r.Kind == ResultCustomQuote
}

// ComputeTotal prices users seats of pkg under rule. Counts above the rule's
// threshold yield a custom quote regardless of price.
func ComputeTotal(pkg Package, users int, rule Rule) (Result, error) {
	if users < 1 {
		return Result{}, Error{Kind: KindInvalidUserCount, PackageID: pkg.ID, Message: "user count must be at least 1"}
	}
	if users > rule.threshold() {
		return Result{Kind: ResultCustomQuote}, nil
	}
	return Result{Kind: ResultAmount, Amount: rule.variantPrice(pkg.BasePrice, users)}, nil
}

func (r Rule) variantPrice(base Money, users int) Money {
	if r.ApplyPerUserPricing {
		return base + r.PerUserPrice*Money(users)
	}
	return base
}
