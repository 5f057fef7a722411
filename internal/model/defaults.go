// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import "slices"

// Default datasets are served whenever the remote store is empty or unreachable,
// so the site never renders an empty catalog.

// DefaultSiteConfig returns the built-in site config.
func DefaultSiteConfig() SiteConfig {
	return SiteConfig{
		HeroHeadline:    "We Craft *Digital Experiences* That Matter.",
		HeroSubheadline: "Shah Graphics is a premium design studio specializing in brand identity, social media aesthetics, and high-impact visual communication.",
		ContactEmail:    "contact@shahgraphics.com",
		InstagramHandle: "@ShahGraphics",
		WhatsappNumber:  "+1 234 567 890",
	}
}

// DefaultCategories returns a fresh copy of the built-in categories.
func DefaultCategories() []Category {
	return slices.Clone(defaultCategories)
}

// DefaultProjects returns a fresh copy of the built-in projects.
func DefaultProjects() []Project {
	return slices.Clone(defaultProjects)
}

var defaultCategories = []Category{
	{ID: "thumbnails", Name: "Thumbnails"},
	{ID: "logos", Name: "Logos"},
	{ID: "social", Name: "Social Media Posts"},
	{ID: "posters", Name: "Posters"},
	{ID: "banners", Name: "Banners"},
}

var defaultProjects = []Project{
	{
		ID:          "t1",
		Title:       "Fun Fair Vlog",
		Category:    "Thumbnails",
		Description: "High-energy vlog thumbnail featuring bright colors and expressive emotions.",
		ImageURL:    "https://placehold.co/1280x720/18181b/ffffff?text=Fun+Fair+Vlog+Thumbnail",
		Date:        "2023-10-15",
	},
	{
		ID:          "t2",
		Title:       "Vaping vs Smoking",
		Category:    "Thumbnails",
		Description: "Comparative analysis thumbnail design with strong contrast.",
		ImageURL:    "https://placehold.co/1280x720/18181b/ffffff?text=Vaping+vs+Smoking",
		Date:        "2023-11-02",
	},
	{
		ID:          "t3",
		Title:       "The Real Myth",
		Category:    "Thumbnails",
		Description: "Dark, mysterious thumbnail design inspired by Squid Game aesthetics.",
		ImageURL:    "https://placehold.co/1280x720/18181b/ffffff?text=The+Real+Myth",
		Date:        "2023-11-10",
	},
	{
		ID:          "t4",
		Title:       "Truth Uncovered",
		Category:    "Thumbnails",
		Description: "Dramatic commentary thumbnail with glowing eyes effect.",
		ImageURL:    "https://placehold.co/1280x720/18181b/ffffff?text=Does+He+Lied?",
		Date:        "2023-11-20",
	},
	{
		ID:          "t5",
		Title:       "Financial Secrets",
		Category:    "Thumbnails",
		Description: "Finance niche thumbnail focusing on credit cards and wealth.",
		ImageURL:    "https://placehold.co/1280x720/18181b/ffffff?text=Financial+Secrets",
		Date:        "2023-12-05",
	},
	{
		ID:          "t6",
		Title:       "Million Dollar Lifestyle",
		Category:    "Thumbnails",
		Description: "MrBeast-style challenge thumbnail with high saturation and luxury elements.",
		ImageURL:    "https://placehold.co/1280x720/18181b/ffffff?text=Million+Dollar+Lifestyle",
		Date:        "2023-12-15",
	},
	{
		ID:          "t7",
		Title:       "Antarctica Mysteries",
		Category:    "Thumbnails",
		Description: "Documentary style thumbnail featuring frozen landscapes and pyramids.",
		ImageURL:    "https://placehold.co/1280x720/18181b/ffffff?text=Antarctica+Mysteries",
		Date:        "2024-01-05",
	},
	{
		ID:          "t8",
		Title:       "Athlete Secrets",
		Category:    "Thumbnails",
		Description: "Sports commentary thumbnail featuring Cristiano Ronaldo.",
		ImageURL:    "https://placehold.co/1280x720/18181b/ffffff?text=Ronaldo+Secret",
		Date:        "2024-01-12",
	},
	{
		ID:          "t9",
		Title:       "Rich vs Poor",
		Category:    "Thumbnails",
		Description: "Comparison style thumbnail utilizing face aging and conceptual contrast.",
		ImageURL:    "https://placehold.co/1280x720/18181b/ffffff?text=Rich+Vs+Poor",
		Date:        "2024-01-20",
	},
	{
		ID:          "t10",
		Title:       "Pakistan to Japan",
		Category:    "Thumbnails",
		Description: "Travel vlog thumbnail showcasing cultural transition and landmarks.",
		ImageURL:    "https://placehold.co/1280x720/18181b/ffffff?text=Pakistan+To+Japan",
		Date:        "2024-02-01",
	},
	{
		ID:          "t11",
		Title:       "Setup Makeover",
		Category:    "Thumbnails",
		Description: "Before and After tech setup transformation thumbnail.",
		ImageURL:    "https://placehold.co/1280x720/18181b/ffffff?text=Setup+Makeover",
		Date:        "2024-02-14",
	},
	{
		ID:          "l1",
		Title:       "Amber Almonds",
		Category:    "Logos",
		Description: "Organic and natural logo design for a premium dry fruit brand.",
		ImageURL:    "https://placehold.co/800x800/18181b/ffffff?text=Amber+Almonds",
		Date:        "2023-09-10",
	},
	{
		ID:          "l2",
		Title:       "Dyenix Fabrics",
		Category:    "Logos",
		Description: "Modern, geometric logo for a textile and fabric company.",
		ImageURL:    "https://placehold.co/800x800/18181b/ffffff?text=Dyenix+Fabrics",
		Date:        "2023-09-25",
	},
	{
		ID:          "l3",
		Title:       "Elect Power",
		Category:    "Logos",
		Description: "Industrial symbol logo combining gear mechanics and electrical energy.",
		ImageURL:    "https://placehold.co/800x800/18181b/ffffff?text=Elect+Power",
		Date:        "2023-10-05",
	},
	{
		ID:          "l4",
		Title:       "Cash Bridge",
		Category:    "Logos",
		Description: "Minimalist typography wordmark for a financial or design agency.",
		ImageURL:    "https://placehold.co/800x800/18181b/ffffff?text=Cash+Bridge",
		Date:        "2023-10-20",
	},
	{
		ID:          "p1",
		Title:       "Porsche 911 GT3 RS",
		Category:    "Posters",
		Description: "Automotive poster layout featuring the legendary 911 GT3 RS in a clean studio setting.",
		ImageURL:    "https://placehold.co/800x1000/18181b/ffffff?text=Porsche+911",
		Date:        "2023-12-10",
	},
	{
		ID:          "p2",
		Title:       "Anime Character Art",
		Category:    "Posters",
		Description: "Vibrant vector illustration character design.",
		ImageURL:    "https://placehold.co/800x1000/18181b/ffffff?text=Anime+Art",
		Date:        "2023-12-25",
	},
	{
		ID:          "p3",
		Title:       "Ford Mustang Legend",
		Category:    "Posters",
		Description: "Vintage style automotive poster celebrating the 1964 Mustang.",
		ImageURL:    "https://placehold.co/800x1000/18181b/ffffff?text=Ford+Mustang",
		Date:        "2024-01-15",
	},
	{
		ID:          "p4",
		Title:       "Tokyo Typography",
		Category:    "Posters",
		Description: "Bold typography poster featuring Japanese street aesthetics and color palettes.",
		ImageURL:    "https://placehold.co/800x1000/18181b/ffffff?text=Tokyo",
		Date:        "2024-02-10",
	},
	{
		ID:          "s1",
		Title:       "Delicious Burger Promo",
		Category:    "Social Media Posts",
		Description: "Appetizing food promotion design with 50% off offer.",
		ImageURL:    "https://placehold.co/1080x1080/18181b/ffffff?text=Delicious+Burger",
		Date:        "2023-11-15",
	},
	{
		ID:          "s2",
		Title:       "Grilled Burger Special",
		Category:    "Social Media Posts",
		Description: "Dark theme food social media post highlighting texture and taste.",
		ImageURL:    "https://placehold.co/1080x1080/18181b/ffffff?text=Grilled+Burger",
		Date:        "2023-11-28",
	},
}

