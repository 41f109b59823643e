package pricing

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	corepricing "github.com/goliatone/go-lumio/pkg/pricing"
)

type HTTPError interface {
	error
	StatusCode() int
}

type StatusError struct {
	Code int
	Kind string
	Err  error
}

func (e StatusError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return http.StatusText(e.Code)
}

func (e StatusError) Unwrap() error { return e.Err }

func (e StatusError) StatusCode() int {
	if e.Code <= 0 {
		return http.StatusInternalServerError
	}
	return e.Code
}

type errorBody struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

type errorResponse struct {
	Error errorBody `json:"error"`
}

type packageView struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	Features    []string `json:"features,omitempty"`
	BasePrice   string   `json:"basePrice"`
	Display     string   `json:"display"`
}

type packagesResponse struct {
	Data          []packageView `json:"data"`
	Default       string        `json:"default,omitempty"`
	UsingFallback bool          `json:"usingFallback"`
}

type quoteRequest struct {
	Package string `json:"package"`
	Users   int    `json:"users"`
}

type quoteResponse struct {
	Package       string `json:"package"`
	Users         int    `json:"users"`
	Kind          string `json:"kind"`
	Amount        string `json:"amount,omitempty"`
	Display       string `json:"display"`
	VariantID     string `json:"variantId,omitempty"`
	UsingFallback bool   `json:"usingFallback"`
}

type variantResponse struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	Price   string `json:"price,omitempty"`
	Package string `json:"package"`
}

// Custom quotes render this label instead of an amount.
const customQuoteLabel = "Contact us"

type handler struct {
	opts Options
}

// Handler builds a net/http handler with default options plus any overrides.
// Routes are resolved relative to the handler root.
func Handler(fns ...OptionFn) http.Handler {
	return HandlerWithOptions(NewOptions(fns...))
}

// HandlerWithOptions serves every pricing route from a single handler.
func HandlerWithOptions(opts Options) http.Handler {
	opts = NewOptions(func(o *Options) { *o = opts })
	mux := http.NewServeMux()
	h := &handler{opts: opts}
	mux.Handle(opts.PackagesPath, h.guarded(h.packages))
	mux.Handle(opts.QuotePath, h.guarded(h.quote))
	mux.Handle(opts.VariantPath, h.guarded(h.variant))
	return mux
}

func (h *handler) guarded(next func(http.ResponseWriter, *http.Request) error) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if h.opts.Guard != nil {
			if err := h.opts.Guard(r); err != nil {
				writeGuardError(w, err)
				return
			}
		}
		if err := next(w, r); err != nil {
			h.writeError(w, r, err)
		}
	})
}

func (h *handler) packages(w http.ResponseWriter, r *http.Request) error {
	if err := allowMethods(w, r, http.MethodGet, http.MethodHead); err != nil {
		return err
	}
	calc := h.opts.Calculator(r.Context())

	packages := calc.Packages()
	views := make([]packageView, 0, len(packages))
	for _, pkg := range packages {
		views = append(views, packageView{
			ID:          pkg.ID,
			Name:        pkg.Name,
			Description: pkg.Description,
			Features:    pkg.Features,
			BasePrice:   pkg.BasePrice.String(),
			Display:     pkg.BasePrice.Display(),
		})
	}
	resp := packagesResponse{Data: views, UsingFallback: calc.UsingFallback()}
	if def, err := calc.DefaultPackage(); err == nil {
		resp.Default = def.ID
	}
	return writeJSON(w, r, http.StatusOK, resp)
}

func (h *handler) quote(w http.ResponseWriter, r *http.Request) error {
	if err := allowMethods(w, r, http.MethodPost); err != nil {
		return err
	}
	var req quoteRequest
	if err := h.decode(r, SchemaQuoteRequest, &req); err != nil {
		return err
	}

	calc := h.opts.Calculator(r.Context())
	quote, err := calc.Quote(req.Package, req.Users)
	if err != nil {
		return err
	}

	resp := quoteResponse{
		Package:       quote.Package.ID,
		Users:         quote.Users,
		Kind:          string(quote.Result.Kind),
		UsingFallback: quote.UsingFallback,
		Display:       customQuoteLabel,
	}
	if !quote.Result.IsCustomQuote() {
		resp.Amount = quote.Result.Amount.String()
		resp.Display = quote.Result.Amount.Display()
	}
	if quote.Variant != nil {
		resp.VariantID = quote.Variant.ID
	}
	return writeJSON(w, r, http.StatusOK, resp)
}

func (h *handler) variant(w http.ResponseWriter, r *http.Request) error {
	if err := allowMethods(w, r, http.MethodGet, http.MethodHead); err != nil {
		return err
	}
	query := r.URL.Query()
	users, err := strconv.Atoi(strings.TrimSpace(query.Get(h.opts.UsersParam)))
	if err != nil {
		return StatusError{
			Code: http.StatusBadRequest,
			Kind: "bad_request",
			Err:  fmt.Errorf("%s must be an integer", h.opts.UsersParam),
		}
	}

	calc := h.opts.Calculator(r.Context())
	packageID := query.Get(h.opts.PackageParam)
	variant, err := calc.Variant(packageID, users)
	if err != nil {
		return err
	}

	resp := variantResponse{ID: variant.ID, Title: variant.Title, Package: packageID}
	if variant.Price > 0 {
		resp.Price = variant.Price.String()
	}
	return writeJSON(w, r, http.StatusOK, resp)
}

func (h *handler) decode(r *http.Request, schema string, dst any) error {
	body, err := io.ReadAll(io.LimitReader(r.Body, h.opts.MaxBodyBytes+1))
	if err != nil {
		return StatusError{Code: http.StatusBadRequest, Kind: "bad_request", Err: err}
	}
	if int64(len(body)) > h.opts.MaxBodyBytes {
		return StatusError{Code: http.StatusRequestEntityTooLarge, Kind: "bad_request", Err: errors.New("request body too large")}
	}
	if h.opts.Validator != nil {
		var payload any
		if err := json.Unmarshal(body, &payload); err != nil {
			return StatusError{Code: http.StatusBadRequest, Kind: "bad_request", Err: fmt.Errorf("invalid JSON: %w", err)}
		}
		if err := h.opts.Validator.ValidateRequest(schema, payload); err != nil {
			return StatusError{Code: http.StatusUnprocessableEntity, Kind: "invalid_request", Err: err}
		}
	}
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return StatusError{Code: http.StatusBadRequest, Kind: "bad_request", Err: fmt.Errorf("invalid JSON: %w", err)}
	}
	return nil
}

func (h *handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	code, kind := classify(err)
	if code >= http.StatusInternalServerError {
		h.opts.Logger.Error().Err(err).Str("path", r.URL.Path).Msg("pricing request failed")
	}
	_ = writeJSON(w, r, code, errorResponse{Error: errorBody{Kind: kind, Message: err.Error()}})
}

func classify(err error) (int, string) {
	var status StatusError
	if errors.As(err, &status) {
		kind := status.Kind
		if kind == "" {
			kind = "error"
		}
		return status.StatusCode(), kind
	}
	kind, ok := corepricing.KindOf(err)
	if !ok {
		return http.StatusInternalServerError, "internal"
	}
	switch kind {
	case corepricing.KindPackageNotFound, corepricing.KindVariantNotFound, corepricing.KindCustomVariantNotFound:
		return http.StatusNotFound, string(kind)
	case corepricing.KindInvalidUserCount:
		return http.StatusUnprocessableEntity, string(kind)
	case corepricing.KindCatalogFormatInvalid:
		return http.StatusBadGateway, string(kind)
	}
	return http.StatusInternalServerError, "internal"
}

func allowMethods(w http.ResponseWriter, r *http.Request, methods ...string) error {
	for _, method := range methods {
		if r.Method == method {
			return nil
		}
	}
	w.Header().Set("Allow", strings.Join(methods, ", "))
	return StatusError{Code: http.StatusMethodNotAllowed, Kind: "method_not_allowed"}
}

func writeJSON(w http.ResponseWriter, r *http.Request, code int, payload any) error {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	if r.Method == http.MethodHead {
		return nil
	}
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(true)
	return enc.Encode(payload)
}

func writeGuardError(w http.ResponseWriter, err error) {
	code := http.StatusForbidden
	var httpErr HTTPError
	if errors.As(err, &httpErr) && httpErr != nil {
		code = httpErr.StatusCode()
		if code <= 0 {
			code = http.StatusForbidden
		}
	}
	http.Error(w, http.StatusText(code), code)
}
