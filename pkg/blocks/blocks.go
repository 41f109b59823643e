// Package blocks decides which optional signature blocks are present for a
// render. A block is present only when its toggle is on, the layout honors the
// toggle, and the underlying field is non-empty; renderers then lay out
// whatever blocks survive without re-checking those rules.
package blocks

import (
	"strings"

	"github.com/goliatone/go-lumio/pkg/model"
	"github.com/goliatone/go-lumio/pkg/sanitize"
)

// Honors reports whether a layout supports an element at all.
type Honors func(model.Element) bool

// HonorAll supports every element.
func HonorAll(model.Element) bool { return true }

// HonorOnly supports exactly the listed elements.
func HonorOnly(elements ...model.Element) Honors {
	set := make(map[model.Element]struct{}, len(elements))
	for _, element := range elements {
		set[element] = struct{}{}
	}
	return func(element model.Element) bool {
		_, ok := set[element]
		return ok
	}
}

// Social is a single social link.
type Social struct {
	Network model.SocialNetwork `json:"network"`
	URL     string              `json:"url"`
}

// Blocks is the resolved content of a signature. Empty strings mean "omit".
type Blocks struct {
	Name        string `json:"name"`
	FirstName   string `json:"firstName,omitempty"`
	CompanyName string `json:"companyName,omitempty"`

	Position   string `json:"position,omitempty"`
	Department string `json:"department,omitempty"`
	Avatar     string `json:"avatar,omitempty"`

	Phone   string `json:"phone,omitempty"`
	Mobile  string `json:"mobile,omitempty"`
	Fax     string `json:"fax,omitempty"`
	Email   string `json:"email,omitempty"`
	Website string `json:"website,omitempty"`
	Address string `json:"address,omitempty"`

	MeetingLink string `json:"meetingLink,omitempty"`
	Logo        string `json:"logo,omitempty"`
	Banner      string `json:"banner,omitempty"`
	Slogan      string `json:"slogan,omitempty"`

	// Tagline and Disclaimer hold sanitized markup.
	Tagline    string `json:"tagline,omitempty"`
	Disclaimer string `json:"disclaimer,omitempty"`

	// Social holds the company icon row. Profiles holds the employee's own
	// links, which never join the icon row.
	Social   []Social `json:"-"`
	Profiles []Social `json:"-"`
}

// Compose resolves the blocks for sig under the supplied layout support set.
// A nil honors function supports every element. Compose never mutates sig.
func Compose(sig model.Signature, honors Honors) Blocks {
	if honors == nil {
		honors = HonorAll
	}
	employee, company, show := sig.Employee, sig.Company, sig.Show

	pick := func(element model.Element, value string) string {
		value = strings.TrimSpace(value)
		if value == "" || !show.Enabled(element) || !honors(element) {
			return ""
		}
		return value
	}

	out := Blocks{
		Name:        employee.DisplayName(),
		FirstName:   strings.TrimSpace(employee.FirstName),
		CompanyName: strings.TrimSpace(company.Name),
	}

	out.Position = pick(model.ElementPosition, employee.Position)
	if out.Position != "" {
		out.Department = strings.TrimSpace(employee.Department)
	}
	out.Avatar = pick(model.ElementAvatar, employee.Avatar)

	out.Phone = pick(model.ElementPhone, employee.Phone)
	out.Mobile = pick(model.ElementMobile, employee.Mobile)
	out.Fax = pick(model.ElementFax, employee.Fax)
	out.Email = pick(model.ElementEmail, employee.Email)
	out.Website = pick(model.ElementWebsite, company.Website)

	address := company.Address
	if strings.TrimSpace(address) == "" {
		address = employee.Location
	}
	out.Address = pick(model.ElementAddress, address)

	out.MeetingLink = model.LinkURL(pick(model.ElementMeetingLink, employee.MeetingLink))

	logo := company.Logo
	if strings.TrimSpace(logo) == "" {
		logo = company.Icon
	}
	out.Logo = pick(model.ElementLogo, logo)

	out.Banner = pick(model.ElementBanner, company.Banner)
	out.Slogan = pick(model.ElementBanner, company.Slogan)

	out.Tagline = sanitize.RichText(pick(model.ElementTagline, company.Tagline))
	out.Disclaimer = sanitize.RichText(company.Disclaimer)

	if show.ShowSocialIcons && honors(model.ElementSocialIcons) {
		out.Social = composeSocial(company)
		out.Profiles = composeProfiles(employee)
	}
	return out
}

// HasContact reports whether any contact row survived composition.
func (b Blocks) HasContact() bool {
	return b.Phone != "" || b.Mobile != "" || b.Fax != "" || b.Email != "" ||
		b.Website != "" || b.Address != ""
}

func composeSocial(company model.Company) []Social {
	links := company.SocialMedia.Links()
	if len(links) == 0 {
		return nil
	}
	out := make([]Social, 0, len(links))
	for _, link := range links {
		out = append(out, Social{Network: link.Network, URL: model.LinkURL(link.URL)})
	}
	return out
}

func composeProfiles(employee model.Employee) []Social {
	var out []Social
	if url := strings.TrimSpace(employee.LinkedIn); url != "" {
		out = append(out, Social{Network: model.NetworkLinkedIn, URL: model.LinkURL(url)})
	}
	if url := strings.TrimSpace(employee.Twitter); url != "" {
		out = append(out, Social{Network: model.NetworkTwitter, URL: model.LinkURL(url)})
	}
	return out
}
