package seo

import (
	"net/url"
	"strings"

	"github.com/expertgati/movers-web/internal/platform/config"
)

// Brand holds the fixed business facts used wherever a page leaves a field blank.
type Brand struct {
	Name               string
	TitleSuffix        string
	DefaultDescription string
	DefaultImage       string
	BaseURL            string
	TwitterSite        string
	Telephone          string
	Email              string
	StreetAddress      string
	Locality           string
	Region             string
	PostalCode         string
	Country            string
	PriceRange         string
	AreaServed         []string
	SameAs             []string
}

// BrandFromConfig copies the site section of the configuration.
func BrandFromConfig(cfg config.SiteConfig) Brand {
	return Brand{
		Name:               cfg.Name,
		TitleSuffix:        firstNonBlank(cfg.TitleSuffix, cfg.Name),
		DefaultDescription: cfg.DefaultDescription,
		DefaultImage:       cfg.DefaultImage,
		BaseURL:            strings.TrimRight(cfg.BaseURL, "/"),
		TwitterSite:        cfg.TwitterSite,
		Telephone:          cfg.Telephone,
		Email:              cfg.Email,
		StreetAddress:      cfg.StreetAddress,
		Locality:           cfg.Locality,
		Region:             cfg.Region,
		PostalCode:         cfg.PostalCode,
		Country:            cfg.Country,
		PriceRange:         cfg.PriceRange,
		AreaServed:         append([]string(nil), cfg.AreaServed...),
		SameAs:             append([]string(nil), cfg.SameAs...),
	}
}

// Resolved is the effective metadata handed to templates. Every field except ExtraHeader and
// Keywords is non-empty for a configured Brand.
type Resolved struct {
	PageName           string
	Title              string
	Description        string
	Keywords           string
	Canonical          string
	Robots             string
	OGTitle            string
	OGDescription      string
	OGImage            string
	OGType             string
	OGURL              string
	SiteName           string
	TwitterCard        string
	TwitterTitle       string
	TwitterDescription string
	TwitterImage       string
	TwitterSite        string
	Schema             string
	ExtraHeader        string
}

// firstNonBlank evaluates a fallback chain: the first value that is not blank wins.
func firstNonBlank(chain ...string) string {
	for _, v := range chain {
		if s := strings.TrimSpace(v); s != "" {
			return s
		}
	}
	return ""
}

// EffectiveTitle is meta_title, else "<page_name> - <brand suffix>".
func EffectiveTitle(m PageMetadata, b Brand) string {
	return firstNonBlank(m.MetaTitle, m.PageName+" - "+b.TitleSuffix)
}

// EffectiveDescription is meta_description, else the brand description.
func EffectiveDescription(m PageMetadata, b Brand) string {
	return firstNonBlank(m.MetaDescription, b.DefaultDescription)
}

func EffectiveOGTitle(m PageMetadata, b Brand) string {
	return firstNonBlank(m.OGTitle, EffectiveTitle(m, b))
}

func EffectiveOGDescription(m PageMetadata, b Brand) string {
	return firstNonBlank(m.OGDescription, EffectiveDescription(m, b))
}

func EffectiveTwitterTitle(m PageMetadata, b Brand) string {
	return firstNonBlank(m.TwitterTitle, EffectiveTitle(m, b))
}

func EffectiveTwitterDescription(m PageMetadata, b Brand) string {
	return firstNonBlank(m.TwitterDescription, EffectiveDescription(m, b))
}

// EffectiveSchema is schema_json, else the serialised MovingCompany document for the brand.
func EffectiveSchema(m PageMetadata, b Brand) string {
	return firstNonBlank(m.SchemaJSON, JSON(DefaultSchema(b)))
}

// Resolve derives every effective value for m. path is the request path, used when no
// canonical URL was stored.
func Resolve(m PageMetadata, b Brand, path string) Resolved {
	canonical := firstNonBlank(m.CanonicalURL, absoluteURL(b.BaseURL, path))
	ogImage := absoluteURL(b.BaseURL, firstNonBlank(m.OGImageRef, b.DefaultImage))
	twitterImage := absoluteURL(b.BaseURL, firstNonBlank(m.TwitterImageRef, m.OGImageRef, b.DefaultImage))

	return Resolved{
		PageName:           m.PageName,
		Title:              EffectiveTitle(m, b),
		Description:        EffectiveDescription(m, b),
		Keywords:           strings.TrimSpace(m.MetaKeywords),
		Canonical:          canonical,
		Robots:             firstNonBlank(m.Robots, DefaultRobots),
		OGTitle:            EffectiveOGTitle(m, b),
		OGDescription:      EffectiveOGDescription(m, b),
		OGImage:            ogImage,
		OGType:             firstNonBlank(m.OGType, DefaultOGType),
		OGURL:              canonical,
		SiteName:           b.Name,
		TwitterCard:        firstNonBlank(m.TwitterCard, DefaultTwitterCard),
		TwitterTitle:       EffectiveTwitterTitle(m, b),
		TwitterDescription: EffectiveTwitterDescription(m, b),
		TwitterImage:       twitterImage,
		TwitterSite:        b.TwitterSite,
		Schema:             EffectiveSchema(m, b),
		ExtraHeader:        m.ExtraHeader,
	}
}

// absoluteURL joins ref onto base unless ref is already absolute. Empty refs stay empty.
func absoluteURL(base, ref string) string {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return ""
	}
	if u, err := url.Parse(ref); err == nil && u.Scheme != "" && u.Host != "" {
		return ref
	}
	if base == "" {
		return ref
	}
	return strings.TrimRight(base, "/") + "/" + strings.TrimLeft(ref, "/")
}
