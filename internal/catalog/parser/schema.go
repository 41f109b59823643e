package parser

import (
	"encoding/json"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

type rawDocument struct {
	Products []rawProduct `json:"products" yaml:"products"`
	Data     *rawData     `json:"data,omitempty" yaml:"data"`
}

type rawData struct {
	Products struct {
		Edges []struct {
			Node rawGraphProduct `json:"node" yaml:"node"`
		} `json:"edges" yaml:"edges"`
	} `json:"products" yaml:"products"`
}

type rawProduct struct {
	ID          string       `json:"id" yaml:"id"`
	Handle      string       `json:"handle" yaml:"handle"`
	Title       string       `json:"title" yaml:"title"`
	Description string       `json:"description" yaml:"description"`
	Features    []string     `json:"features" yaml:"features"`
	Price       amount       `json:"price" yaml:"price"`
	PriceRange  *rawRange    `json:"priceRange" yaml:"price_range"`
	Variants    []rawVariant `json:"variants" yaml:"variants"`
}

type rawRange struct {
	MinVariantPrice rawMoneyV2 `json:"minVariantPrice" yaml:"min_variant_price"`
}

type rawMoneyV2 struct {
	Amount       amount `json:"amount" yaml:"amount"`
	CurrencyCode string `json:"currencyCode" yaml:"currency_code"`
}

type rawVariant struct {
	ID              string      `json:"id" yaml:"id"`
	Title           string      `json:"title" yaml:"title"`
	Price           amount      `json:"price" yaml:"price"`
	PriceV2         *rawMoneyV2 `json:"priceV2" yaml:"price_v2"`
	SelectedOptions []rawOption `json:"selectedOptions" yaml:"selected_options"`
}

func (v rawVariant) price() string {
	if s := strings.TrimSpace(v.Price.String()); s != "" {
		return s
	}
	if v.PriceV2 != nil {
		return strings.TrimSpace(v.PriceV2.Amount.String())
	}
	return ""
}

type rawOption struct {
	Name  string `json:"name" yaml:"name"`
	Value string `json:"value" yaml:"value"`
}

type rawGraphProduct struct {
	ID          string    `json:"id" yaml:"id"`
	Handle      string    `json:"handle" yaml:"handle"`
	Title       string    `json:"title" yaml:"title"`
	Description string    `json:"description" yaml:"description"`
	PriceRange  *rawRange `json:"priceRange" yaml:"price_range"`
	Variants    struct {
		Edges []struct {
			Node rawVariant `json:"node" yaml:"node"`
		} `json:"edges" yaml:"edges"`
	} `json:"variants" yaml:"variants"`
}

func (g rawGraphProduct) flatten() rawProduct {
	out := rawProduct{
		ID:          g.ID,
		Handle:      g.Handle,
		Title:       g.Title,
		Description: g.Description,
		PriceRange:  g.PriceRange,
	}
	for _, edge := range g.Variants.Edges {
		out.Variants = append(out.Variants, edge.Node)
	}
	return out
}

// amount accepts prices encoded as strings, numbers or MoneyV2 objects.
type amount string

func (a amount) String() string {
	return string(a)
}

func (a *amount) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*a = amount(s)
		return nil
	}
	var money struct {
		Amount json.RawMessage `json:"amount"`
	}
	if err := json.Unmarshal(data, &money); err == nil && len(money.Amount) > 0 {
		return a.UnmarshalJSON(money.Amount)
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*a = amount(n.String())
	return nil
}

func (a *amount) UnmarshalYAML(node *yaml.Node) error {
	if node.Tag == "!!null" {
		*a = ""
		return nil
	}
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: price must be a scalar", node.Line)
	}
	*a = amount(node.Value)
	return nil
}
