// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import "testing"

func TestCategoryID(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "multi word",
			input:    "Social Media Posts",
			expected: "social-media-posts",
		},
		{
			name:     "single word",
			input:    "Logos",
			expected: "logos",
		},
		{
			name:     "leading trailing and repeated spaces are not trimmed",
			input:    "  A   B ",
			expected: "-a-b-",
		},
		{
			name:     "tabs and newlines collapse",
			input:    "Motion\t\nGraphics",
			expected: "motion-graphics",
		},
		{
			name:     "punctuation kept",
			input:    "UI/UX & Web",
			expected: "ui/ux-&-web",
		},
		{
			name:     "empty",
			input:    "",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CategoryID(tt.input); got != tt.expected {
				t.Errorf("CategoryID(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestCategoryID_Collision(t *testing.T) {
	// Names differing only in case and spacing collapse to one id.
	a := NewCategory("Brand Identity")
	b := NewCategory("brand  identity")
	if a.ID != b.ID {
		t.Errorf("expected ids to collide, got %q and %q", a.ID, b.ID)
	}
	if a.Name == b.Name {
		t.Error("names should stay distinct")
	}
}

func TestDefaults_AreCopies(t *testing.T) {
	projects := DefaultProjects()
	projects[0].Title = "changed"
	if DefaultProjects()[0].Title == "changed" {
		t.Error("DefaultProjects should return a fresh copy")
	}

	categories := DefaultCategories()
	categories[0].Name = "changed"
	if DefaultCategories()[0].Name == "changed" {
		t.Error("DefaultCategories should return a fresh copy")
	}
}

func TestDefaults_Content(t *testing.T) {
	if got := len(DefaultProjects()); got != 21 {
		t.Errorf("len(DefaultProjects()) = %d, want 21", got)
	}
	if got := len(DefaultCategories()); got != 5 {
		t.Errorf("len(DefaultCategories()) = %d, want 5", got)
	}

	seen := make(map[string]bool)
	for _, p := range DefaultProjects() {
		if seen[p.ID] {
			t.Errorf("duplicate default project id %q", p.ID)
		}
		seen[p.ID] = true
	}

	if DefaultSiteConfig().ContactEmail != "contact@shahgraphics.com" {
		t.Errorf("unexpected default contact email %q", DefaultSiteConfig().ContactEmail)
	}
}

func TestContactLinks(t *testing.T) {
	links := ContactLinks(SiteConfig{
		ContactEmail:    "hi@example.com",
		InstagramHandle: "@Studio",
		WhatsappNumber:  "+1 (234) 567-890",
	})

	want := map[string]string{
		ContactInstagram: "https://instagram.com/Studio",
		ContactWhatsApp:  "https://wa.me/1234567890",
		ContactEmail:     "mailto:hi@example.com",
	}
	if len(links) != len(want) {
		t.Fatalf("got %d links, want %d", len(links), len(want))
	}
	for _, l := range links {
		if l.URL != want[l.Kind] {
			t.Errorf("%s URL = %q, want %q", l.Kind, l.URL, want[l.Kind])
		}
	}
}
