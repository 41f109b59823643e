package model

import (
	"encoding/json"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Element names an optional signature block controlled by a ShowElements
// toggle.
type Element string

const (
	ElementAvatar      Element = "avatar"
	ElementPosition    Element = "position"
	ElementPhone       Element = "phone"
	ElementMobile      Element = "mobile"
	ElementFax         Element = "fax"
	ElementEmail       Element = "email"
	ElementWebsite     Element = "website"
	ElementAddress     Element = "address"
	ElementSocialIcons Element = "social"
	ElementLogo        Element = "logo"
	ElementMeetingLink Element = "meeting"
	ElementBanner      Element = "banner"
	ElementTagline     Element = "tagline"
)

// Elements lists every toggleable block in display order.
func Elements() []Element {
	return []Element{
		ElementAvatar,
		ElementPosition,
		ElementPhone,
		ElementMobile,
		ElementFax,
		ElementEmail,
		ElementWebsite,
		ElementAddress,
		ElementSocialIcons,
		ElementLogo,
		ElementMeetingLink,
		ElementBanner,
		ElementTagline,
	}
}

// ShowElements is the per-render toggle set. Toggles are independent and any
// combination is valid. When decoded from JSON or YAML, toggles the payload
// omits default to true.
type ShowElements struct {
	ShowAvatar      bool `json:"showAvatar" yaml:"show_avatar"`
	ShowPosition    bool `json:"showPosition" yaml:"show_position"`
	ShowPhone       bool `json:"showPhone" yaml:"show_phone"`
	ShowMobile      bool `json:"showMobile" yaml:"show_mobile"`
	ShowFax         bool `json:"showFax" yaml:"show_fax"`
	ShowEmail       bool `json:"showEmail" yaml:"show_email"`
	ShowWebsite     bool `json:"showWebsite" yaml:"show_website"`
	ShowAddress     bool `json:"showAddress" yaml:"show_address"`
	ShowSocialIcons bool `json:"showSocialIcons" yaml:"show_social_icons"`
	ShowCompanyLogo bool `json:"showCompanyLogo" yaml:"show_company_logo"`
	ShowMeetingLink bool `json:"showMeetingLink" yaml:"show_meeting_link"`
	ShowBanner      bool `json:"showBanner" yaml:"show_banner"`
	ShowTagline     bool `json:"showTagline" yaml:"show_tagline"`
}

// AllShown returns a toggle set with every block enabled.
func AllShown() ShowElements {
	return ShowElements{
		ShowAvatar:      true,
		ShowPosition:    true,
		ShowPhone:       true,
		ShowMobile:      true,
		ShowFax:         true,
		ShowEmail:       true,
		ShowWebsite:     true,
		ShowAddress:     true,
		ShowSocialIcons: true,
		ShowCompanyLogo: true,
		ShowMeetingLink: true,
		ShowBanner:      true,
		ShowTagline:     true,
	}
}

// NoneShown returns a toggle set with every block disabled.
func NoneShown() ShowElements {
	return ShowElements{}
}

// Enabled reports the toggle for the supplied element. Unknown elements are
// reported as disabled.
func (s ShowElements) Enabled(element Element) bool {
	switch element {
	case ElementAvatar:
		return s.ShowAvatar
	case ElementPosition:
		return s.ShowPosition
	case ElementPhone:
		return s.ShowPhone
	case ElementMobile:
		return s.ShowMobile
	case ElementFax:
		return s.ShowFax
	case ElementEmail:
		return s.ShowEmail
	case ElementWebsite:
		return s.ShowWebsite
	case ElementAddress:
		return s.ShowAddress
	case ElementSocialIcons:
		return s.ShowSocialIcons
	case ElementLogo:
		return s.ShowCompanyLogo
	case ElementMeetingLink:
		return s.ShowMeetingLink
	case ElementBanner:
		return s.ShowBanner
	case ElementTagline:
		return s.ShowTagline
	default:
		return false
	}
}

// Set toggles the supplied element and reports whether the element is known.
func (s *ShowElements) Set(element Element, on bool) bool {
	if s == nil {
		return false
	}
	switch element {
	case ElementAvatar:
		s.ShowAvatar = on
	case ElementPosition:
		s.ShowPosition = on
	case ElementPhone:
		s.ShowPhone = on
	case ElementMobile:
		s.ShowMobile = on
	case ElementFax:
		s.ShowFax = on
	case ElementEmail:
		s.ShowEmail = on
	case ElementWebsite:
		s.ShowWebsite = on
	case ElementAddress:
		s.ShowAddress = on
	case ElementSocialIcons:
		s.ShowSocialIcons = on
	case ElementLogo:
		s.ShowCompanyLogo = on
	case ElementMeetingLink:
		s.ShowMeetingLink = on
	case ElementBanner:
		s.ShowBanner = on
	case ElementTagline:
		s.ShowTagline = on
	default:
		return false
	}
	return true
}

// ParseShowList builds a toggle set from a comma separated element list such
// as "avatar,phone,email". The keywords "all" and "none" are accepted.
func ParseShowList(raw string) (ShowElements, error) {
	trimmed := strings.TrimSpace(raw)
	switch strings.ToLower(trimmed) {
	case "", "none":
		return NoneShown(), nil
	case "all":
		return AllShown(), nil
	}

	var out ShowElements
	for _, part := range strings.Split(trimmed, ",") {
		name := strings.ToLower(strings.TrimSpace(part))
		if name == "" {
			continue
		}
		if !out.Set(Element(name), true) {
			return ShowElements{}, fmt.Errorf("model: unknown element %q", name)
		}
	}
	return out, nil
}

// UnmarshalJSON decodes a toggle set, treating omitted toggles as enabled.
func (s *ShowElements) UnmarshalJSON(data []byte) error {
	type plain ShowElements
	out := plain(AllShown())
	if err := json.Unmarshal(data, &out); err != nil {
		return err
	}
	*s = ShowElements(out)
	return nil
}

// UnmarshalYAML mirrors UnmarshalJSON for YAML documents.
func (s *ShowElements) UnmarshalYAML(node *yaml.Node) error {
	type plain ShowElements
	out := plain(AllShown())
	if err := node.Decode(&out); err != nil {
		return err
	}
	*s = ShowElements(out)
	return nil
}
