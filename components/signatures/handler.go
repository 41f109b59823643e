package signatures

import (
	"bytes"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strconv"
	"strings"

	"github.com/goliatone/go-lumio/pkg/directory"
	"github.com/goliatone/go-lumio/pkg/model"
	"github.com/goliatone/go-lumio/pkg/orchestrator"
	"github.com/goliatone/go-lumio/pkg/render"
	rendertemplate "github.com/goliatone/go-lumio/pkg/render/template"
	"github.com/goliatone/go-lumio/pkg/render/template/gotemplate"
	"github.com/goliatone/go-lumio/pkg/renderers/email"
)

//go:embed templates/preview.tmpl
var templatesFS embed.FS

const previewTemplate = "templates/preview.tmpl"

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

type variantView struct {
	ID          string   `json:"id"`
	Layout      string   `json:"layout"`
	Description string   `json:"description"`
	Elements    []string `json:"elements"`
	Disclaimer  bool     `json:"disclaimer"`
	Default     bool     `json:"default,omitempty"`
}

type variantsResponse struct {
	Data []variantView `json:"data"`
}

type renderRequest struct {
	model.Signature

	Renderer string `json:"renderer,omitempty"`
	Locale   string `json:"locale,omitempty"`
}

// documentWrapper is implemented by renderers that can wrap a fragment in a
// standalone page for downloads.
type documentWrapper interface {
	WrapDocument(title string, fragment []byte) ([]byte, error)
}

type handler struct {
	opts  Options
	pages rendertemplate.TemplateRenderer
}

// Handler builds a net/http handler with default options plus any overrides.
func Handler(fns ...OptionFn) (http.Handler, error) {
	return HandlerWithOptions(NewOptions(fns...))
}

// HandlerWithOptions serves every signature route from a single handler.
func HandlerWithOptions(opts Options) (http.Handler, error) {
	opts = NewOptions(func(o *Options) { *o = opts })
	pages, err := gotemplate.New(
		gotemplate.WithFS(templatesFS),
		gotemplate.WithGlobals(map[string]any{"product": "Lumio"}),
	)
	if err != nil {
		return nil, fmt.Errorf("signatures: configure preview templates: %w", err)
	}

	h := &handler{opts: opts, pages: pages}
	mux := http.NewServeMux()
	mux.Handle(opts.VariantsPath, h.guarded(h.variants))
	mux.Handle(opts.RenderPath, h.guarded(h.render))
	mux.Handle(opts.PreviewPath, h.guarded(h.preview))
	return mux, nil
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

func (h *handler) variants(w http.ResponseWriter, r *http.Request) error {
	if err := allowMethods(w, r, http.MethodGet, http.MethodHead); err != nil {
		return err
	}
	ids := model.AllTemplateIDs()
	views := make([]variantView, 0, len(ids))
	for _, id := range ids {
		layout, _ := email.LayoutFor(id)
		elements := make([]string, 0, len(layout.Elements))
		for _, element := range layout.Elements {
			elements = append(elements, string(element))
		}
		views = append(views, variantView{
			ID:          id.String(),
			Layout:      layout.Name,
			Description: layout.Description,
			Elements:    elements,
			Disclaimer:  layout.Disclaimer,
			Default:     id == model.DefaultTemplateID,
		})
	}
	return writeJSON(w, r, http.StatusOK, variantsResponse{Data: views})
}

func (h *handler) render(w http.ResponseWriter, r *http.Request) error {
	if err := allowMethods(w, r, http.MethodPost); err != nil {
		return err
	}
	req := renderRequest{Signature: model.Signature{Show: model.AllShown()}}
	if err := h.decode(r, SchemaRenderRequest, &req); err != nil {
		return err
	}

	result, err := h.opts.Orchestrator.Render(r.Context(), orchestrator.Request{
		Signature: req.Signature,
		Renderer:  req.Renderer,
		Locale:    req.Locale,
	})
	if err != nil {
		return err
	}

	body := result.Body
	if download, _ := strconv.ParseBool(r.URL.Query().Get(h.opts.DownloadParam)); download {
		ext := "txt"
		if wrapper, ok := h.wrapperFor(result.Renderer); ok {
			body, err = wrapper.WrapDocument(req.Employee.DisplayName()+" signature", body)
			if err != nil {
				return err
			}
			ext = "html"
		}
		filename := slugify(req.Employee.DisplayName()) + "-signature." + ext
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	}

	w.Header().Set("Content-Type", result.ContentType)
	w.Header().Set("X-Lumio-Variant", result.Variant.String())
	if result.VariantFellBack {
		w.Header().Set("X-Lumio-Variant-Fallback", "true")
	}
	w.WriteHeader(http.StatusOK)
	_, err = w.Write(body)
	return err
}

func (h *handler) preview(w http.ResponseWriter, r *http.Request) error {
	if err := allowMethods(w, r, http.MethodGet, http.MethodHead); err != nil {
		return err
	}
	if h.opts.Directory == nil {
		return StatusError{Code: http.StatusNotFound, Kind: "not_found", Err: errors.New("preview directory is not configured")}
	}

	query := r.URL.Query()
	employeeID := strings.TrimSpace(query.Get(h.opts.EmployeeParam))
	if employeeID == "" {
		if ids := h.opts.Directory.EmployeeIDs(); len(ids) > 0 {
			employeeID = ids[0]
		}
	}
	sig, err := h.opts.Directory.Signature(employeeID, model.TemplateID(query.Get(h.opts.VariantParam)))
	if err != nil {
		return err
	}

	result, err := h.opts.Orchestrator.Render(r.Context(), orchestrator.Request{Signature: sig, Renderer: email.Name})
	if err != nil {
		return err
	}

	var mounted, teardown bytes.Buffer
	if err := h.opts.Widgets.MountAll(&mounted); err != nil {
		h.opts.Logger.Warn().Err(err).Msg("preview widgets failed to mount")
		mounted.Reset()
	}
	if err := h.opts.Widgets.UnmountAll(&teardown); err != nil {
		h.opts.Logger.Warn().Err(err).Msg("preview widgets failed to render teardown")
		teardown.Reset()
	}

	ids := model.AllTemplateIDs()
	variants := make([]map[string]any, 0, len(ids))
	for _, id := range ids {
		variants = append(variants, map[string]any{"id": id.String(), "selected": id == result.Variant})
	}

	page, err := h.pages.RenderTemplate(previewTemplate, map[string]any{
		"name":            sig.Employee.DisplayName(),
		"company":         sig.Company.Name,
		"employee":        employeeID,
		"employeeParam":   h.opts.EmployeeParam,
		"variantParam":    h.opts.VariantParam,
		"variant":         result.Variant.String(),
		"fellBack":        result.VariantFellBack,
		"variants":        variants,
		"signature":       string(result.Body),
		"widgets":         mounted.String(),
		"widgetsTeardown": teardown.String(),
	})
	if err != nil {
		return fmt.Errorf("signatures: render preview: %w", err)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if r.Method == http.MethodHead {
		return nil
	}
	_, err = io.WriteString(w, page)
	return err
}

func (h *handler) wrapperFor(name string) (documentWrapper, bool) {
	renderer, err := h.opts.Orchestrator.Registry().Get(name)
	if err != nil {
		return nil, false
	}
	wrapper, ok := renderer.(documentWrapper)
	return wrapper, ok
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
	if err := json.Unmarshal(body, dst); err != nil {
		return StatusError{Code: http.StatusBadRequest, Kind: "bad_request", Err: fmt.Errorf("invalid JSON: %w", err)}
	}
	return nil
}

func (h *handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	code, kind := classify(err)
	if code >= http.StatusInternalServerError {
		h.opts.Logger.Error().Err(err).Str("path", r.URL.Path).Msg("signature request failed")
	}
	_ = writeJSON(w, r, code, errorResponse{Error: errorBody{Kind: kind, Message: err.Error()}})
}

func classify(err error) (int, string) {
	var status StatusError
	switch {
	case errors.As(err, &status):
		kind := status.Kind
		if kind == "" {
			kind = "error"
		}
		return status.StatusCode(), kind
	case errors.Is(err, directory.ErrEmployeeNotFound):
		return http.StatusNotFound, "employee_not_found"
	case errors.Is(err, render.ErrRendererNotFound):
		return http.StatusBadRequest, "renderer_not_found"
	}
	return http.StatusInternalServerError, "internal"
}

var slugPattern = regexp.MustCompile(`[^a-z0-9]+`)

func slugify(name string) string {
	slug := strings.Trim(slugPattern.ReplaceAllString(strings.ToLower(name), "-"), "-")
	if slug == "" {
		return "email"
	}
	return slug
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
