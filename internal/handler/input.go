// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/olegiv/folio-go/internal/model"
)

// validate is the validator instance for admin input.
var validate = validator.New(validator.WithRequiredStructEnabled())

// dateLayout is the ISO date format projects carry.
const dateLayout = "2006-01-02"

// projectInput is the body of project create and update requests.
type projectInput struct {
	Title       string `json:"title" validate:"required,max=200"`
	Category    string `json:"category" validate:"required,max=100"`
	Description string `json:"description" validate:"max=2000"`
	ImageURL    string `json:"imageUrl" validate:"required,url"`
	Date        string `json:"date" validate:"omitempty,datetime=2006-01-02"`
}

// project builds a project with the given id. An empty date becomes today.
func (in projectInput) project(id string, now time.Time) model.Project {
	date := in.Date
	if date == "" {
		date = now.Format(dateLayout)
	}
	return model.Project{
		ID:          id,
		Title:       in.Title,
		Category:    in.Category,
		Description: in.Description,
		ImageURL:    in.ImageURL,
		Date:        date,
	}
}

// categoryInput is the body of category create requests.
type categoryInput struct {
	Name string `json:"name" validate:"required,max=100"`
}

// siteConfigInput is the body of site config updates.
type siteConfigInput struct {
	HeroHeadline    string `json:"heroHeadline" validate:"required,max=300"`
	HeroSubheadline string `json:"heroSubheadline" validate:"max=500"`
	ContactEmail    string `json:"contactEmail" validate:"omitempty,email"`
	InstagramHandle string `json:"instagramHandle" validate:"max=100"`
	WhatsappNumber  string `json:"whatsappNumber" validate:"max=40"`
}

func (in siteConfigInput) siteConfig() model.SiteConfig {
	return model.SiteConfig(in)
}

// loginInput is the body of login requests.
type loginInput struct {
	Secret string `json:"secret"`
}

// validationMessage turns validator errors into one readable message.
func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		field := jsonFieldName(fe.Field())
		switch fe.Tag() {
		case "required":
			msgs = append(msgs, fmt.Sprintf("%s is required", field))
		case "max":
			msgs = append(msgs, fmt.Sprintf("%s must be at most %s characters", field, fe.Param()))
		case "url":
			msgs = append(msgs, fmt.Sprintf("%s must be a URL", field))
		case "email":
			msgs = append(msgs, fmt.Sprintf("%s must be an email address", field))
		case "datetime":
			msgs = append(msgs, fmt.Sprintf("%s must be a date (YYYY-MM-DD)", field))
		default:
			msgs = append(msgs, fmt.Sprintf("%s is invalid", field))
		}
	}
	return strings.Join(msgs, "; ")
}

// jsonFieldName converts a Go field name to its camelCase JSON name.
func jsonFieldName(field string) string {
	switch field {
	case "ImageURL":
		return "imageUrl"
	case "":
		return field
	}
	return strings.ToLower(field[:1]) + field[1:]
}
