package seo

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func testBrand() Brand {
	return Brand{
		Name:               "Expert Gati Packers and Movers",
		TitleSuffix:        "Expert Gati Packers and Movers",
		DefaultDescription: "Safe and affordable relocation.",
		DefaultImage:       "/static/images/og-default.jpg",
		BaseURL:            "https://example.com",
		Telephone:          "+91-1",
		Locality:           "Pune",
		AreaServed:         []string{"Pune", "Mumbai"},
	}
}

func TestEffectiveTitleFallsBackToPageName(t *testing.T) {
	b := testBrand()

	require.Equal(t, "Rates - Expert Gati Packers and Movers", EffectiveTitle(PageMetadata{PageName: "Rates"}, b))
	require.Equal(t, "Rates - Expert Gati Packers and Movers", EffectiveTitle(PageMetadata{PageName: "Rates", MetaTitle: "   "}, b))
	require.Equal(t, "Custom", EffectiveTitle(PageMetadata{PageName: "Rates", MetaTitle: "Custom"}, b))
}

func TestSocialTitlesFollowChain(t *testing.T) {
	b := testBrand()

	m := PageMetadata{PageName: "Home", MetaTitle: "Meta"}
	require.Equal(t, "Meta", EffectiveOGTitle(m, b))
	require.Equal(t, "Meta", EffectiveTwitterTitle(m, b))

	m.OGTitle = "OG"
	m.TwitterTitle = "TW"
	require.Equal(t, "OG", EffectiveOGTitle(m, b))
	require.Equal(t, "TW", EffectiveTwitterTitle(m, b))
}

func TestDescriptionsFollowChain(t *testing.T) {
	b := testBrand()

	m := PageMetadata{PageName: "Home"}
	require.Equal(t, b.DefaultDescription, EffectiveDescription(m, b))
	require.Equal(t, b.DefaultDescription, EffectiveOGDescription(m, b))
	require.Equal(t, b.DefaultDescription, EffectiveTwitterDescription(m, b))

	m.MetaDescription = "Meta description"
	m.TwitterDescription = "Tweet"
	require.Equal(t, "Meta description", EffectiveOGDescription(m, b))
	require.Equal(t, "Tweet", EffectiveTwitterDescription(m, b))
}

func TestEffectiveSchemaDefaultsToMovingCompany(t *testing.T) {
	b := testBrand()

	var doc map[string]any
	require.NoError(t, json.Unmarshal([]byte(EffectiveSchema(PageMetadata{PageName: "Home"}, b)), &doc))
	require.Equal(t, "MovingCompany", doc["@type"])
	require.Equal(t, b.Name, doc["name"])
	require.Equal(t, "https://example.com/static/images/og-default.jpg", doc["image"])

	custom := `{"@type":"FAQPage"}`
	require.Equal(t, custom, EffectiveSchema(PageMetadata{PageName: "FAQs", SchemaJSON: custom}, b))
}

func TestResolveImagesAndCanonical(t *testing.T) {
	b := testBrand()

	r := Resolve(PageMetadata{PageName: "Contact"}, b, "/contact/")
	require.Equal(t, "https://example.com/contact/", r.Canonical)
	require.Equal(t, r.Canonical, r.OGURL)
	require.Equal(t, "https://example.com/static/images/og-default.jpg", r.OGImage)
	require.Equal(t, r.OGImage, r.TwitterImage)
	require.Equal(t, DefaultOGType, r.OGType)
	require.Equal(t, DefaultTwitterCard, r.TwitterCard)
	require.Equal(t, DefaultRobots, r.Robots)

	r = Resolve(PageMetadata{
		PageName:     "Contact",
		CanonicalURL: "https://other.example/contact",
		OGImageRef:   "media/og/contact.jpg",
	}, b, "/contact/")
	require.Equal(t, "https://other.example/contact", r.Canonical)
	require.Equal(t, "https://example.com/media/og/contact.jpg", r.OGImage)
	require.Equal(t, r.OGImage, r.TwitterImage)

	r = Resolve(PageMetadata{PageName: "Contact", TwitterImageRef: "https://cdn.example/tw.png"}, b, "/contact/")
	require.Equal(t, "https://cdn.example/tw.png", r.TwitterImage)
}

func TestResolveNeverLeavesTitleBlank(t *testing.T) {
	b := testBrand()
	for _, name := range PageNames {
		r := Resolve(PageMetadata{PageName: name}, b, "/")
		require.NotEmpty(t, strings.TrimSpace(r.Title), name)
		require.NotEmpty(t, r.OGTitle, name)
		require.NotEmpty(t, r.TwitterTitle, name)
		require.NotEmpty(t, r.Schema, name)
	}
}

func TestDefaultBundlesCoverEveryPage(t *testing.T) {
	bundles := DefaultBundles()
	require.Len(t, bundles, len(PageNames))
	for i, name := range PageNames {
		require.Equal(t, name, bundles[i].PageName)
		require.NotEmpty(t, bundles[i].MetaTitle)
	}

	require.Equal(t, Bundle{PageName: "Unknown"}, DefaultBundle("Unknown"))
}

func TestLoadBundles(t *testing.T) {
	doc := `
pages:
  - page_name: Home
    meta_title: Home title
    robots: noindex
  - page_name: Rates
`
	bundles, err := LoadBundles(strings.NewReader(doc))
	require.NoError(t, err)
	require.Len(t, bundles, 2)
	require.Equal(t, "Home title", bundles[0].MetaTitle)
	require.Equal(t, "noindex", bundles[0].Robots)

	_, err = LoadBundles(strings.NewReader("pages:\n  - meta_title: orphan\n"))
	require.ErrorIs(t, err, ErrInvalidPageName)

	_, err = LoadBundles(strings.NewReader("pages:\n  - page_name: Home\n    bogus: 1\n"))
	require.Error(t, err)
}
