// Package site holds the site identity record and the icon set that page
// templates consume as global data.
package site

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

// validatorInstance is shared so struct information is cached once.
var validatorInstance = validator.New(validator.WithRequiredStructEnabled())

// Author identifies who publishes the site.
type Author struct {
	Name  string `json:"name" yaml:"name" toml:"name" validate:"required"`
	Email string `json:"email" yaml:"email" toml:"email" validate:"omitempty,email"`
	URL   string `json:"url" yaml:"url" toml:"url" validate:"omitempty,url"`
}

// Metadata is the static description of the organization behind the site.
type Metadata struct {
	Title        string   `json:"title" yaml:"title" toml:"title" validate:"required"`
	URL          string   `json:"url" yaml:"url" toml:"url" validate:"required,url"`
	Language     string   `json:"language" yaml:"language" toml:"language" validate:"required,bcp47_language_tag"`
	Description  string   `json:"description" yaml:"description" toml:"description"`
	Keywords     string   `json:"keywords" yaml:"keywords" toml:"keywords"`
	Logo         string   `json:"logo" yaml:"logo" toml:"logo"`
	BusinessType string   `json:"businessType" yaml:"businessType" toml:"businessType"`
	ContactEmail string   `json:"contactEmail" yaml:"contactEmail" toml:"contactEmail" validate:"omitempty,email"`
	ContactPhone string   `json:"contactPhone" yaml:"contactPhone" toml:"contactPhone"`
	Twitter      string   `json:"twitter" yaml:"twitter" toml:"twitter"`
	Languages    []string `json:"languages" yaml:"languages" toml:"languages" validate:"dive,bcp47_language_tag"`
	ServiceAreas []string `json:"serviceAreas" yaml:"serviceAreas" toml:"serviceAreas"`
	GMBLink      string   `json:"gmbLink" yaml:"gmbLink" toml:"gmbLink" validate:"omitempty,url"`
	Author       Author   `json:"author" yaml:"author" toml:"author" validate:"required"`
}

// DefaultMetadata returns the Other Dev site record.
func DefaultMetadata() Metadata {
	return Metadata{
		Title:        "Other Dev®",
		URL:          "https://otherdev.com",
		Language:     "en",
		Description:  "Creative software agency focused on accessible, engaging digital experiences. Web development, creative agency, digital experiences, graphic design, software development, technology solutions, search engine optimization.",
		Keywords:     "web development, creative agency, digital experiences, graphic design, software development, technology solutions, search engine optimization, seo",
		Logo:         "/images/icons/other-dev-logo.png",
		BusinessType: "LocalBusiness",
		ContactEmail: "hello@otherdev.com",
		ContactPhone: "+92315 6893331",
		Twitter:      "@otherdevistaken",
		Languages:    []string{"en", "de", "ur"},
		ServiceAreas: []string{"US", "Canada", "UK", "Australia", "Pakistan", "Germany"},
		GMBLink:      "https://g.page/17231828160667184010",
		Author: Author{
			Name:  "Other Dev®",
			Email: "hello@otherdev.com",
			URL:   "https://otherdev.com/",
		},
	}
}

// Validate checks required fields and the shape of URLs, emails and locale
// codes. The build never calls it implicitly.
func (m Metadata) Validate() error {
	return validatorInstance.Struct(m)
}

// Locales parses the supported language codes. Codes that do not parse are
// left out of the result and reported together in the error.
func (m Metadata) Locales() ([]language.Tag, error) {
	tags := make([]language.Tag, 0, len(m.Languages))
	var errs []error
	for _, code := range m.Languages {
		tag, err := language.Parse(code)
		if err != nil {
			errs = append(errs, fmt.Errorf("invalid locale %q: %w", code, err))
			continue
		}
		tags = append(tags, tag)
	}
	return tags, errors.Join(errs...)
}

// LocaleNames maps each supported language tag to its name in that language.
// Codes that do not parse are skipped.
func (m Metadata) LocaleNames() map[string]string {
	tags, _ := m.Locales()
	names := make(map[string]string, len(tags))
	for _, tag := range tags {
		names[tag.String()] = display.Self.Name(tag)
	}
	return names
}
