// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import "strings"

// ContactLink is one contact channel shown on the contact page.
type ContactLink struct {
	Kind  string `json:"kind"`
	Label string `json:"label"`
	URL   string `json:"url"`
}

// Contact link kinds.
const (
	ContactInstagram = "instagram"
	ContactWhatsApp  = "whatsapp"
	ContactEmail     = "email"
)

// ContactLinks derives the contact channels from the site config.
func ContactLinks(c SiteConfig) []ContactLink {
	return []ContactLink{
		{
			Kind:  ContactInstagram,
			Label: c.InstagramHandle,
			URL:   "https://instagram.com/" + strings.Replace(c.InstagramHandle, "@", "", 1),
		},
		{
			Kind:  ContactWhatsApp,
			Label: c.WhatsappNumber,
			URL:   "https://wa.me/" + digitsOnly(c.WhatsappNumber),
		},
		{
			Kind:  ContactEmail,
			Label: c.ContactEmail,
			URL:   "mailto:" + c.ContactEmail,
		},
	}
}

func digitsOnly(s string) string {
	var sb strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			sb.WriteRune(r)
		}
	}
	return sb.String()
}
