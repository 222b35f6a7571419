package seo

import (
	"encoding/json"
)

// JSON marshals v to a compact JSON string. It returns an empty string on error.
func JSON(v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		return ""
	}
	return string(b)
}

// DefaultSchema returns the MovingCompany (a LocalBusiness subtype) document used when a page
// has no schema of its own.
func DefaultSchema(b Brand) map[string]any {
	m := map[string]any{
		"@context": "https://schema.org",
		"@type":    "MovingCompany",
		"name":     b.Name,
	}
	if b.BaseURL != "" {
		m["url"] = b.BaseURL + "/"
		m["@id"] = b.BaseURL + "/#organization"
	}
	if logo := absoluteURL(b.BaseURL, b.DefaultImage); logo != "" {
		m["image"] = logo
	}
	if b.DefaultDescription != "" {
		m["description"] = b.DefaultDescription
	}
	if b.Telephone != "" {
		m["telephone"] = b.Telephone
	}
	if b.Email != "" {
		m["email"] = b.Email
	}
	if b.PriceRange != "" {
		m["priceRange"] = b.PriceRange
	}
	if addr := postalAddress(b); addr != nil {
		m["address"] = addr
	}
	if len(b.AreaServed) > 0 {
		areas := make([]map[string]any, 0, len(b.AreaServed))
		for _, a := range b.AreaServed {
			areas = append(areas, map[string]any{"@type": "Place", "name": a})
		}
		m["areaServed"] = areas
	}
	if len(b.SameAs) > 0 {
		m["sameAs"] = b.SameAs
	}
	return m
}

func postalAddress(b Brand) map[string]any {
	if b.StreetAddress == "" && b.Locality == "" && b.Region == "" && b.PostalCode == "" && b.Country == "" {
		return nil
	}
	addr := map[string]any{"@type": "PostalAddress"}
	if b.StreetAddress != "" {
		addr["streetAddress"] = b.StreetAddress
	}
	if b.Locality != "" {
		addr["addressLocality"] = b.Locality
	}
	if b.Region != "" {
		addr["addressRegion"] = b.Region
	}
	if b.PostalCode != "" {
		addr["postalCode"] = b.PostalCode
	}
	if b.Country != "" {
		addr["addressCountry"] = b.Country
	}
	return addr
}

// BreadcrumbItem maps a name to an absolute URL.
type BreadcrumbItem struct {
	Name string
	Item string
}

// BreadcrumbList builds a schema.org BreadcrumbList.
func BreadcrumbList(items []BreadcrumbItem) map[string]any {
	el := make([]map[string]any, 0, len(items))
	for i, it := range items {
		el = append(el, map[string]any{
			"@type":    "ListItem",
			"position": i + 1,
			"name":     it.Name,
			"item":     it.Item,
		})
	}
	return map[string]any{
		"@context":        "https://schema.org",
		"@type":           "BreadcrumbList",
		"itemListElement": el,
	}
}

// Article returns a minimal BlogPosting payload.
func Article(headline, url, imageURL, publisher, datePublished, dateModified string) map[string]any {
	m := map[string]any{
		"@context": "https://schema.org",
		"@type":    "BlogPosting",
		"headline": headline,
	}
	if url != "" {
		m["url"] = url
		m["mainEntityOfPage"] = url
	}
	if imageURL != "" {
		m["image"] = imageURL
	}
	if publisher != "" {
		m["publisher"] = map[string]any{"@type": "Organization", "name": publisher}
	}
	if datePublished != "" {
		m["datePublished"] = datePublished
	}
	if dateModified != "" {
		m["dateModified"] = dateModified
	}
	return m
}
