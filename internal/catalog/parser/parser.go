// Package parser decodes storefront product exports into pricing catalogs.
//
// Two shapes are accepted: a flat document with a top-level "products" list,
// and the GraphQL connection envelope returned by storefront APIs
// ({"data":{"products":{"edges":[{"node":{...}}]}}}).
package parser

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-lumio/pkg/catalog"
	"github.com/goliatone/go-lumio/pkg/pricing"
)

// Parser implements catalog.Parser.
type Parser struct {
	format      catalog.Format
	usersOption string
}

var _ catalog.Parser = (*Parser)(nil)

// New constructs a Parser from pre-resolved options.
func New(options catalog.ParserOptions) catalog.Parser {
	return &Parser{
		format:      options.Format,
		usersOption: strings.TrimSpace(options.UsersOption),
	}
}

// Parse decodes doc. Structural problems are reported as
// pricing.ErrCatalogFormatInvalid.
func (p *Parser) Parse(ctx context.Context, doc catalog.Document) (pricing.Catalog, error) {
	if err := ctx.Err(); err != nil {
		return pricing.Catalog{}, err
	}

	format := p.format
	if format == "" {
		format = doc.Format()
	}

	var raw rawDocument
	var err error
	switch format {
	case catalog.FormatJSON:
		err = json.Unmarshal(doc.Raw(), &raw)
	case catalog.FormatYAML:
		err = yaml.Unmarshal(doc.Raw(), &raw)
	default:
		err = fmt.Errorf("unsupported format %q", format)
	}
	if err != nil {
		return pricing.Catalog{}, invalid(doc, err.Error())
	}

	products := raw.Products
	if raw.Data != nil {
		for _, edge := range raw.Data.Products.Edges {
			products = append(products, edge.Node.flatten())
		}
	}

	out := pricing.Catalog{Packages: make([]pricing.Package, 0, len(products))}
	seen := make(map[string]struct{}, len(products))
	for i, product := range products {
		pkg, err := p.convertProduct(product)
		if err != nil {
			return pricing.Catalog{}, invalid(doc, fmt.Sprintf("product %d: %v", i, err))
		}
		if _, dup := seen[pkg.ID]; dup {
			return pricing.Catalog{}, invalid(doc, fmt.Sprintf("product %d: duplicate id %q", i, pkg.ID))
		}
		seen[pkg.ID] = struct{}{}
		out.Packages = append(out.Packages, pkg)
	}
	return out, nil
}

func (p *Parser) convertProduct(product rawProduct) (pricing.Package, error) {
	id := strings.TrimSpace(product.ID)
	handle := strings.TrimSpace(product.Handle)
	if id == "" {
		id = handle
	}
	if id == "" {
		return pricing.Package{}, fmt.Errorf("id or handle is required")
	}
	name := strings.TrimSpace(product.Title)
	if name == "" {
		return pricing.Package{}, fmt.Errorf("title is required")
	}

	pkg := pricing.Package{
		ID:          id,
		Handle:      handle,
		Name:        name,
		Description: strings.TrimSpace(product.Description),
		Features:    product.Features,
	}

	for j, variant := range product.Variants {
		converted, err := p.convertVariant(variant)
		if err != nil {
			return pricing.Package{}, fmt.Errorf("variant %d: %w", j, err)
		}
		pkg.Variants = append(pkg.Variants, converted)
	}

	base, err := basePrice(product, pkg.Variants)
	if err != nil {
		return pricing.Package{}, err
	}
	pkg.BasePrice = base
	return pkg, nil
}

func (p *Parser) convertVariant(variant rawVariant) (pricing.Variant, error) {
	id := strings.TrimSpace(variant.ID)
	if id == "" {
		return pricing.Variant{}, fmt.Errorf("id is required")
	}
	out := pricing.Variant{ID: id, Title: strings.TrimSpace(variant.Title)}

	if amount := variant.price(); amount != "" {
		price, err := pricing.ParseMoney(amount)
		if err != nil {
			return pricing.Variant{}, err
		}
		out.Price = price
	}

	for _, option := range variant.SelectedOptions {
		if p.usersOption != "" && !strings.EqualFold(strings.TrimSpace(option.Name), p.usersOption) {
			continue
		}
		out.Options = append(out.Options, pricing.Option{
			Name:  strings.TrimSpace(option.Name),
			Value: strings.TrimSpace(option.Value),
		})
	}
	return out, nil
}

// basePrice prefers the explicit product price, then the price range
// minimum, then the cheapest priced variant.
func basePrice(product rawProduct, variants []pricing.Variant) (pricing.Money, error) {
	switch {
	case strings.TrimSpace(product.Price.String()) != "":
		return pricing.ParseMoney(product.Price.String())
	case product.PriceRange != nil && strings.TrimSpace(product.PriceRange.MinVariantPrice.Amount.String()) != "":
		return pricing.ParseMoney(product.PriceRange.MinVariantPrice.Amount.String())
	}

	var (
		min   pricing.Money
		found bool
	)
	for _, variant := range variants {
		if variant.Price <= 0 {
			continue
		}
		if !found || variant.Price < min {
			min, found = variant.Price, true
		}
	}
	if !found {
		return 0, fmt.Errorf("price is required")
	}
	return min, nil
}

func invalid(doc catalog.Document, msg string) error {
	return pricing.Error{
		Kind:    pricing.KindCatalogFormatInvalid,
		Message: fmt.Sprintf("catalog format invalid in %s: %s", doc.Location(), msg),
	}
}
