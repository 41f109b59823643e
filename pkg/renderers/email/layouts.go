package email

import (
	"fmt"
	"io/fs"

	"github.com/goliatone/go-lumio/pkg/blocks"
	"github.com/goliatone/go-lumio/pkg/model"
)

// Layout is one signature layout algorithm. Several template identifiers may
// share a layout.
type Layout struct {
	Name        string
	Template    string
	Description string
	// Elements lists the toggles the layout honors. Toggles outside this list
	// never produce output for the layout, whatever their value.
	Elements []model.Element
	// Disclaimer reports whether the layout renders the company disclaimer.
	Disclaimer bool
	// AnimatedIcons switches social icons to their animated GIF versions.
	AnimatedIcons bool
}

// Honors returns the layout's support set for block composition.
func (l Layout) Honors() blocks.Honors {
	return blocks.HonorOnly(l.Elements...)
}

const layoutPrefix = "templates/layouts/"

var (
	layoutClassic = Layout{
		Name:        "classic",
		Template:    layoutPrefix + "classic.tmpl",
		Description: "Accent border with stacked contact rows, logo and banner below.",
		Elements:    model.Elements(),
	}
	layoutAnimated = Layout{
		Name:        "animated",
		Template:    layoutPrefix + "animated.tmpl",
		Description: "Animated avatar beside the details with an animated banner.",
		Elements: []model.Element{
			model.ElementAvatar, model.ElementPosition, model.ElementPhone,
			model.ElementMobile, model.ElementEmail, model.ElementWebsite,
			model.ElementSocialIcons, model.ElementLogo, model.ElementMeetingLink,
			model.ElementBanner, model.ElementTagline,
		},
		AnimatedIcons: true,
	}
	layoutPhotoLeft = Layout{
		Name:        "photo-left",
		Template:    layoutPrefix + "photo_left.tmpl",
		Description: "Photo on the left, contact details split in two columns.",
		Elements: []model.Element{
			model.ElementAvatar, model.ElementPosition, model.ElementPhone,
			model.ElementMobile, model.ElementFax, model.ElementEmail,
			model.ElementWebsite, model.ElementAddress, model.ElementSocialIcons,
			model.ElementLogo,
		},
	}
	layoutCentered = Layout{
		Name:        "centered",
		Template:    layoutPrefix + "centered.tmpl",
		Description: "Photo on top, single centered column.",
		Elements: []model.Element{
			model.ElementAvatar, model.ElementPosition, model.ElementPhone,
			model.ElementEmail, model.ElementWebsite, model.ElementSocialIcons,
			model.ElementMeetingLink, model.ElementTagline,
		},
	}
	layoutLogoLeft = Layout{
		Name:        "logo-left",
		Template:    layoutPrefix + "logo_left.tmpl",
		Description: "Company logo on the left, divider, details on the right.",
		Elements: []model.Element{
			model.ElementPosition, model.ElementPhone, model.ElementMobile,
			model.ElementEmail, model.ElementWebsite, model.ElementAddress,
			model.ElementSocialIcons, model.ElementLogo, model.ElementBanner,
		},
	}
	layoutCompact = Layout{
		Name:        "compact",
		Template:    layoutPrefix + "compact.tmpl",
		Description: "Compact text block with an inline contact line and disclaimer.",
		Elements: []model.Element{
			model.ElementPosition, model.ElementPhone, model.ElementEmail,
			model.ElementWebsite, model.ElementTagline,
		},
		Disclaimer: true,
	}
	layoutHeaderBar = Layout{
		Name:        "header-bar",
		Template:    layoutPrefix + "header_bar.tmpl",
		Description: "Brand colored header bar, banner first, details below.",
		Elements: []model.Element{
			model.ElementAvatar, model.ElementPosition, model.ElementPhone,
			model.ElementMobile, model.ElementEmail, model.ElementWebsite,
			model.ElementAddress, model.ElementSocialIcons, model.ElementLogo,
			model.ElementBanner, model.ElementMeetingLink,
		},
	}
	layoutPhotoRight = Layout{
		Name:        "photo-right",
		Template:    layoutPrefix + "photo_right.tmpl",
		Description: "Two contact columns, photo on the right, disclaimer footer.",
		Elements: []model.Element{
			model.ElementAvatar, model.ElementPosition, model.ElementPhone,
			model.ElementMobile, model.ElementFax, model.ElementEmail,
			model.ElementWebsite, model.ElementAddress, model.ElementSocialIcons,
			model.ElementLogo, model.ElementMeetingLink, model.ElementTagline,
		},
		Disclaimer: true,
	}
)

// DefaultLayout backs the standard and minimal variants and any unknown
// identifier.
var DefaultLayout = layoutClassic

var layoutsByTemplate = map[model.TemplateID]Layout{
	model.TemplateStandard: layoutClassic,
	model.TemplateMinimal:  layoutClassic,
	model.TemplateAnimated: layoutAnimated,
	model.Template1:        layoutPhotoLeft,
	model.Template2:        layoutCentered,
	model.Template3:        layoutLogoLeft,
	model.Template4:        layoutCompact,
	model.Template5:        layoutHeaderBar,
	model.Template6:        layoutPhotoRight,
}

// LayoutFor returns the layout for id. Unknown identifiers resolve to
// DefaultLayout; the boolean reports whether id was recognised.
func LayoutFor(id model.TemplateID) (Layout, bool) {
	layout, ok := layoutsByTemplate[id]
	if !ok {
		return DefaultLayout, false
	}
	return layout, true
}

// checkLayouts verifies every template identifier has a layout and, when
// files is non-nil, that the layout template exists in the bundle.
func checkLayouts(files fs.FS) error {
	for _, id := range model.AllTemplateIDs() {
		layout, ok := layoutsByTemplate[id]
		if !ok {
			return fmt.Errorf("email renderer: template %q has no layout", id)
		}
		if files == nil {
			continue
		}
		if _, err := fs.Stat(files, layout.Template); err != nil {
			return fmt.Errorf("email renderer: layout %q template %q: %w", layout.Name, layout.Template, err)
		}
	}
	if len(layoutsByTemplate) != len(model.AllTemplateIDs()) {
		return fmt.Errorf("email renderer: layout table has %d entries for %d templates", len(layoutsByTemplate), len(model.AllTemplateIDs()))
	}
	return nil
}
