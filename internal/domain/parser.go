// Package domain parses hostnames into their registrable parts and derives a
// display brand name for analyzed sites.
package domain

import (
	"fmt"
	"net/url"
	"strings"
	"unicode"

	"golang.org/x/net/publicsuffix"
)

// Info contains parsed domain information for an analyzed URL
type Info struct {
	// Hostname is the full lowercased hostname
	Hostname string `json:"hostname"`
	// Registrable is the eTLD+1 (e.g. example.co.uk)
	Registrable string `json:"registrable"`
	// TLD is the effective public suffix
	TLD string `json:"tld"`
	// SLD is the second-level label that identifies the brand
	SLD string `json:"sld"`
	// Subdomain is any prefix before the registrable domain
	Subdomain string `json:"subdomain,omitempty"`
}

// Parse extracts domain information from a URL or bare hostname
func Parse(input string) (*Info, error) {
	host := strings.ToLower(strings.TrimSpace(input))

	if strings.Contains(host, "://") {
		u, err := url.Parse(host)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidHost, err)
		}

		host = u.Hostname()
	}

	// Strip any port left over from a schemeless host:port input
	if idx := strings.LastIndex(host, ":"); idx != -1 {
		host = host[:idx]
	}

	if host == "" || !strings.Contains(host, ".") {
		return nil, ErrInvalidHost
	}

	registrable, err := publicsuffix.EffectiveTLDPlusOne(host)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidHost, err)
	}

	tld, _ := publicsuffix.PublicSuffix(host)
	sld := strings.TrimSuffix(registrable, "."+tld)

	subdomain := ""
	if host != registrable {
		subdomain = strings.TrimSuffix(host, "."+registrable)
	}

	return &Info{
		Hostname:    host,
		Registrable: registrable,
		TLD:         tld,
		SLD:         sld,
		Subdomain:   subdomain,
	}, nil
}

// BrandName derives a human-readable site name from a URL or hostname.
// "privacy.example-corp.com" becomes "Example Corp". Falls back to the raw
// input when the host cannot be parsed.
func BrandName(input string) string {
	info, err := Parse(input)
	if err != nil {
		return strings.TrimSpace(input)
	}

	words := strings.FieldsFunc(info.SLD, func(r rune) bool {
		return r == '-' || r == '_' || r == '.'
	})

	for i, w := range words {
		runes := []rune(w)
		if len(runes) > 0 {
			runes[0] = unicode.ToUpper(runes[0])
		}

		words[i] = string(runes)
	}

	return strings.Join(words, " ")
}
