package lumio

import (
	internalLoader "github.com/goliatone/go-lumio/internal/catalog/loader"
	internalParser "github.com/goliatone/go-lumio/internal/catalog/parser"
	"github.com/goliatone/go-lumio/pkg/catalog"
)

// NewCatalogLoader constructs a catalog loader using the internal
// implementation while keeping the concrete type hidden from consumers.
func NewCatalogLoader(options ...catalog.LoaderOption) catalog.Loader {
	cfg := catalog.NewLoaderOptions(options...)
	return internalLoader.New(cfg)
}

// NewCatalogParser constructs a catalog parser backed by the internal
// implementation.
func NewCatalogParser(options ...catalog.ParserOption) catalog.Parser {
	cfg := catalog.NewParserOptions(options...)
	return internalParser.New(cfg)
}

// NewCatalogProvider wires the default loader and parser around source. A nil
// source always resolves to the fallback catalog.
func NewCatalogProvider(source catalog.Source, loaderOptions []catalog.LoaderOption, options ...catalog.ProviderOption) *catalog.Provider {
	return catalog.NewProvider(NewCatalogLoader(loaderOptions...), NewCatalogParser(), source, options...)
}
