package email

import (
	"regexp"
	"strings"

	"github.com/goliatone/go-lumio/pkg/blocks"
	"github.com/goliatone/go-lumio/pkg/model"
	"github.com/goliatone/go-lumio/pkg/render"
)

const (
	DefaultPrimaryColor   = "#333333"
	DefaultSecondaryColor = "#666666"
	DefaultIconBaseURL    = "https://cdn.lumio.email/icons/v1"
)

// Colors are the resolved brand colors for a render.
type Colors struct {
	Primary   string
	Secondary string
}

// colorPattern accepts hex colors, bare CSS color keywords and numeric
// rgb()/hsl() forms. Anything else could break out of the inline style
// attribute.
var colorPattern = regexp.MustCompile(`^(#[0-9a-fA-F]{3,8}|[a-zA-Z]{3,20}|(?:rgba?|hsla?)\(\s*[0-9.]+(?:deg|%)?(?:\s*[,/]?\s*[0-9.]+%?){2,3}\s*\))$`)

// ResolveColors picks the company colors first, then the palette, then the
// built-in defaults. Values that are not plain colors are skipped.
func ResolveColors(company model.Company, palette render.Palette) Colors {
	return Colors{
		Primary:   firstColor(company.PrimaryColor, palette.Primary, DefaultPrimaryColor),
		Secondary: firstColor(company.SecondaryColor, palette.Secondary, DefaultSecondaryColor),
	}
}

func firstColor(values ...string) string {
	for _, value := range values {
		if trimmed := strings.TrimSpace(value); colorPattern.MatchString(trimmed) {
			return trimmed
		}
	}
	return ""
}

var profileLabels = map[model.SocialNetwork]string{
	model.NetworkLinkedIn: "LinkedIn",
	model.NetworkTwitter:  "Twitter",
}

// buildView assembles the template context for a single signature.
func buildView(sig model.Signature, layout Layout, variant model.TemplateID, opts render.RenderOptions, iconBase string) map[string]any {
	b := blocks.Compose(sig, layout.Honors())
	colors := ResolveColors(sig.Company, opts.Palette)

	base := strings.TrimRight(firstNonEmpty(opts.IconBaseURL, iconBase, DefaultIconBaseURL), "/")
	ext := ".png"
	if layout.AnimatedIcons {
		ext = ".gif"
	}
	social := make([]map[string]any, 0, len(b.Social))
	for _, entry := range b.Social {
		social = append(social, map[string]any{
			"network": string(entry.Network),
			"url":     entry.URL,
			"icon":    base + "/" + string(entry.Network) + ext,
		})
	}
	profiles := make([]map[string]any, 0, len(b.Profiles))
	for _, entry := range b.Profiles {
		profiles = append(profiles, map[string]any{
			"network": string(entry.Network),
			"url":     entry.URL,
			"label":   profileLabels[entry.Network],
		})
	}

	disclaimer := ""
	if layout.Disclaimer {
		disclaimer = b.Disclaimer
	}

	return map[string]any{
		"layout":      layout.Name,
		"variant":     variant.String(),
		"name":        b.Name,
		"firstName":   b.FirstName,
		"companyName": b.CompanyName,
		"position":    b.Position,
		"department":  b.Department,
		"avatar":      b.Avatar,
		"phone":       b.Phone,
		"mobile":      b.Mobile,
		"fax":         b.Fax,
		"email":       b.Email,
		"website":     b.Website,
		"address":     b.Address,
		"meetingLink": b.MeetingLink,
		"logo":        b.Logo,
		"banner":      b.Banner,
		"slogan":      b.Slogan,
		"tagline":     b.Tagline,
		"disclaimer":  disclaimer,
		"hasContact":  b.HasContact(),
		"social":      social,
		"profiles":    profiles,
		"labels":      render.Labels(opts),
		"colors": map[string]any{
			"primary":   colors.Primary,
			"secondary": colors.Secondary,
		},
	}
}

func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if trimmed := strings.TrimSpace(value); trimmed != "" {
			return trimmed
		}
	}
	return ""
}
