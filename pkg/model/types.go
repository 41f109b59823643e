package model

import "strings"

// PlaceholderName is rendered when an employee record arrives without a name.
const PlaceholderName = "Unnamed"

// Employee carries the per-person data rendered into a signature.
type Employee struct {
	ID          string `json:"id,omitempty" yaml:"id"`
	Name        string `json:"name" yaml:"name"`
	FirstName   string `json:"firstName,omitempty" yaml:"first_name"`
	LastName    string `json:"lastName,omitempty" yaml:"last_name"`
	Position    string `json:"position,omitempty" yaml:"position"`
	Department  string `json:"department,omitempty" yaml:"department"`
	Email       string `json:"email,omitempty" yaml:"email"`
	Phone       string `json:"phone,omitempty" yaml:"phone"`
	Mobile      string `json:"mobile,omitempty" yaml:"mobile"`
	Fax         string `json:"fax,omitempty" yaml:"fax"`
	Avatar      string `json:"avatar,omitempty" yaml:"avatar"`
	MeetingLink string `json:"meetingLink,omitempty" yaml:"meeting_link"`
	LinkedIn    string `json:"linkedin,omitempty" yaml:"linkedin"`
	Twitter     string `json:"twitter,omitempty" yaml:"twitter"`
	Location    string `json:"location,omitempty" yaml:"location"`
}

// DisplayName returns the trimmed name, falling back to the first/last name
// split and finally to PlaceholderName.
func (e Employee) DisplayName() string {
	if name := strings.TrimSpace(e.Name); name != "" {
		return name
	}
	joined := strings.TrimSpace(strings.TrimSpace(e.FirstName) + " " + strings.TrimSpace(e.LastName))
	if joined != "" {
		return joined
	}
	return PlaceholderName
}

// SocialMedia bundles the company-level social profile links. Each network is
// independently optional.
type SocialMedia struct {
	Facebook  string `json:"facebook,omitempty" yaml:"facebook"`
	Twitter   string `json:"twitter,omitempty" yaml:"twitter"`
	LinkedIn  string `json:"linkedin,omitempty" yaml:"linkedin"`
	Instagram string `json:"instagram,omitempty" yaml:"instagram"`
	YouTube   string `json:"youtube,omitempty" yaml:"youtube"`
}

// SocialNetwork identifies a network in the fixed rendering order.
type SocialNetwork string

const (
	NetworkFacebook  SocialNetwork = "facebook"
	NetworkTwitter   SocialNetwork = "twitter"
	NetworkLinkedIn  SocialNetwork = "linkedin"
	NetworkInstagram SocialNetwork = "instagram"
	NetworkYouTube   SocialNetwork = "youtube"
)

// SocialLink pairs a network with its profile URL.
type SocialLink struct {
	Network SocialNetwork
	URL     string
}

// Links returns the configured networks in a stable order, skipping empty
// entries.
func (s SocialMedia) Links() []SocialLink {
	candidates := []SocialLink{
		{Network: NetworkFacebook, URL: s.Facebook},
		{Network: NetworkTwitter, URL: s.Twitter},
		{Network: NetworkLinkedIn, URL: s.LinkedIn},
		{Network: NetworkInstagram, URL: s.Instagram},
		{Network: NetworkYouTube, URL: s.YouTube},
	}
	out := make([]SocialLink, 0, len(candidates))
	for _, link := range candidates {
		link.URL = strings.TrimSpace(link.URL)
		if link.URL == "" {
			continue
		}
		out = append(out, link)
	}
	return out
}

// Company carries per-tenant branding. Colors must be hex values, CSS color
// keywords or numeric rgb()/hsl() values to be used in inline styles.
type Company struct {
	ID             string      `json:"id,omitempty" yaml:"id"`
	Name           string      `json:"name" yaml:"name"`
	PrimaryColor   string      `json:"primaryColor,omitempty" yaml:"primary_color"`
	SecondaryColor string      `json:"secondaryColor,omitempty" yaml:"secondary_color"`
	Logo           string      `json:"logo,omitempty" yaml:"logo"`
	Icon           string      `json:"icon,omitempty" yaml:"icon"`
	Website        string      `json:"website,omitempty" yaml:"website"`
	Address        string      `json:"address,omitempty" yaml:"address"`
	Slogan         string      `json:"slogan,omitempty" yaml:"slogan"`
	Banner         string      `json:"banner,omitempty" yaml:"banner"`
	Tagline        string      `json:"tagline,omitempty" yaml:"tagline"`
	Disclaimer     string      `json:"disclaimer,omitempty" yaml:"disclaimer"`
	SocialMedia    SocialMedia `json:"socialMedia,omitempty" yaml:"social_media"`

	// Palette optionally names a brand palette used to fill colors the
	// company leaves unset. PaletteVariant selects a palette variant.
	Palette        string `json:"palette,omitempty" yaml:"palette"`
	PaletteVariant string `json:"paletteVariant,omitempty" yaml:"palette_variant"`
}

// Signature groups the inputs for a single render call.
type Signature struct {
	Employee Employee     `json:"employee" yaml:"employee"`
	Company  Company      `json:"company" yaml:"company"`
	Variant  TemplateID   `json:"variant" yaml:"variant"`
	Show     ShowElements `json:"show" yaml:"show"`
}
