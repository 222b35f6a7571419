package seo

import (
	"strings"
	"time"
)

const (
	DefaultOGType      = "website"
	DefaultTwitterCard = "summary_large_image"
	DefaultRobots      = "index, follow"
)

// PageMetadata is the SEO configuration of one logical page. Blank strings mean "not set";
// the resolver supplies the effective value.
type PageMetadata struct {
	ID uint `gorm:"primarykey" json:"id"`

	// PageName identifies the page, e.g. "Home". Unique and case-sensitive.
	PageName string `gorm:"uniqueIndex;not null;type:varchar(200)" json:"page_name"`

	MetaTitle       string `gorm:"type:varchar(255)" json:"meta_title"`
	MetaDescription string `gorm:"type:text" json:"meta_description"`
	MetaKeywords    string `gorm:"type:text" json:"meta_keywords"`
	CanonicalURL    string `gorm:"type:varchar(500)" json:"canonical_url"`

	OGTitle       string `gorm:"type:varchar(255)" json:"og_title"`
	OGDescription string `gorm:"type:text" json:"og_description"`
	OGImageRef    string `gorm:"type:varchar(500)" json:"og_image_ref"`
	OGType        string `gorm:"type:varchar(50);default:'website'" json:"og_type"`

	TwitterTitle       string `gorm:"type:varchar(255)" json:"twitter_title"`
	TwitterDescription string `gorm:"type:text" json:"twitter_description"`
	TwitterImageRef    string `gorm:"type:varchar(500)" json:"twitter_image_ref"`
	TwitterCard        string `gorm:"type:varchar(50);default:'summary_large_image'" json:"twitter_card"`

	// SchemaJSON is a raw JSON-LD document pasted by an operator.
	SchemaJSON string `gorm:"type:text" json:"schema_json"`
	// ExtraHeader is trusted markup (analytics tags, pixels) injected into <head>.
	ExtraHeader string `gorm:"type:text" json:"extra_header"`
	Robots      string `gorm:"type:varchar(100);default:'index, follow'" json:"robots"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (PageMetadata) TableName() string { return "page_metadata" }

// Bundle is the writable field set of a PageMetadata, used for lazy defaults, bulk seeding and
// operator updates.
type Bundle struct {
	PageName           string `yaml:"page_name" json:"page_name"`
	MetaTitle          string `yaml:"meta_title" json:"meta_title"`
	MetaDescription    string `yaml:"meta_description" json:"meta_description"`
	MetaKeywords       string `yaml:"meta_keywords" json:"meta_keywords"`
	CanonicalURL       string `yaml:"canonical_url" json:"canonical_url"`
	OGTitle            string `yaml:"og_title" json:"og_title"`
	OGDescription      string `yaml:"og_description" json:"og_description"`
	OGImageRef         string `yaml:"og_image_ref" json:"og_image_ref"`
	OGType             string `yaml:"og_type" json:"og_type"`
	TwitterTitle       string `yaml:"twitter_title" json:"twitter_title"`
	TwitterDescription string `yaml:"twitter_description" json:"twitter_description"`
	TwitterImageRef    string `yaml:"twitter_image_ref" json:"twitter_image_ref"`
	TwitterCard        string `yaml:"twitter_card" json:"twitter_card"`
	SchemaJSON         string `yaml:"schema_json" json:"schema_json"`
	ExtraHeader        string `yaml:"extra_header" json:"extra_header"`
	Robots             string `yaml:"robots" json:"robots"`
}

// applyTo overwrites every writable field of m with the bundle, filling column defaults.
func (b Bundle) applyTo(m *PageMetadata) {
	m.MetaTitle = strings.TrimSpace(b.MetaTitle)
	m.MetaDescription = strings.TrimSpace(b.MetaDescription)
	m.MetaKeywords = strings.TrimSpace(b.MetaKeywords)
	m.CanonicalURL = strings.TrimSpace(b.CanonicalURL)
	m.OGTitle = strings.TrimSpace(b.OGTitle)
	m.OGDescription = strings.TrimSpace(b.OGDescription)
	m.OGImageRef = strings.TrimSpace(b.OGImageRef)
	m.OGType = firstNonBlank(b.OGType, DefaultOGType)
	m.TwitterTitle = strings.TrimSpace(b.TwitterTitle)
	m.TwitterDescription = strings.TrimSpace(b.TwitterDescription)
	m.TwitterImageRef = strings.TrimSpace(b.TwitterImageRef)
	m.TwitterCard = firstNonBlank(b.TwitterCard, DefaultTwitterCard)
	m.SchemaJSON = strings.TrimSpace(b.SchemaJSON)
	m.ExtraHeader = b.ExtraHeader
	m.Robots = firstNonBlank(b.Robots, DefaultRobots)
}

// BundleOf returns the writable fields of m.
func BundleOf(m PageMetadata) Bundle {
	return Bundle{
		PageName:           m.PageName,
		MetaTitle:          m.MetaTitle,
		MetaDescription:    m.MetaDescription,
		MetaKeywords:       m.MetaKeywords,
		CanonicalURL:       m.CanonicalURL,
		OGTitle:            m.OGTitle,
		OGDescription:      m.OGDescription,
		OGImageRef:         m.OGImageRef,
		OGType:             m.OGType,
		TwitterTitle:       m.TwitterTitle,
		TwitterDescription: m.TwitterDescription,
		TwitterImageRef:    m.TwitterImageRef,
		TwitterCard:        m.TwitterCard,
		SchemaJSON:         m.SchemaJSON,
		ExtraHeader:        m.ExtraHeader,
		Robots:             m.Robots,
	}
}
