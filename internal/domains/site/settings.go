// Package site serves the immutable storefront settings and contact details.
package site

import (
	"fmt"

	"github.com/caarlos0/env/v6"
)

// Settings is the site-wide copy shown on the landing and about pages.
type Settings struct {
	CompanyName        string `json:"company_name" env:"SITE_COMPANY_NAME" envDefault:"Cedric House Designs"`
	Tagline            string `json:"tagline" env:"SITE_TAGLINE" envDefault:"Crafting exceptional homes and dreams"`
	HeroTitle          string `json:"hero_title" env:"SITE_HERO_TITLE" envDefault:"Find Your Perfect House Plan"`
	HeroDescription    string `json:"hero_description" env:"SITE_HERO_DESCRIPTION" envDefault:"Discover thousands of professionally designed house plans. From modern minimalist to classic traditional styles."`
	AboutTitle         string `json:"about_title" env:"SITE_ABOUT_TITLE" envDefault:"About Cedric House Designs"`
	AboutDescription   string `json:"about_description" env:"SITE_ABOUT_DESCRIPTION" envDefault:"Crafting exceptional homes and dreams for over two decades."`
	WhoWeAreContent    string `json:"who_we_are_content" env:"SITE_WHO_WE_ARE" envDefault:"Cedric House Designs is a leading architectural firm..."`
	MissionStatement   string `json:"mission_statement" env:"SITE_MISSION_STATEMENT" envDefault:"To design and deliver exceptional residential homes..."`
	YearsExperience    string `json:"years_experience" env:"SITE_YEARS_EXPERIENCE" envDefault:"25+"`
	ProjectsCompleted  string `json:"projects_completed" env:"SITE_PROJECTS_COMPLETED" envDefault:"500+"`
	ClientSatisfaction string `json:"client_satisfaction" env:"SITE_CLIENT_SATISFACTION" envDefault:"98%"`
}

// ContactInformation is the business contact block.
type ContactInformation struct {
	PhoneNumber  string `json:"phone_number" env:"CONTACT_PHONE" envDefault:"+27 (0) 72 665 9790"`
	Email        string `json:"email" env:"CONTACT_EMAIL" envDefault:"info@cedrichouseplans.co.za"`
	SupportEmail string `json:"support_email" env:"CONTACT_SUPPORT_EMAIL" envDefault:"support@cedrichouseplans.co.za"`
	Address      string `json:"address" env:"CONTACT_ADDRESS" envDefault:"South Africa"`
	MondayFriday string `json:"monday_friday" env:"CONTACT_HOURS_WEEKDAYS" envDefault:"9:00 AM - 6:00 PM"`
	Saturday     string `json:"saturday" env:"CONTACT_HOURS_SATURDAY" envDefault:"10:00 AM - 4:00 PM"`
	Sunday       string `json:"sunday" env:"CONTACT_HOURS_SUNDAY" envDefault:"Closed"`
	FacebookURL  string `json:"facebook_url" env:"CONTACT_FACEBOOK_URL"`
	TwitterURL   string `json:"twitter_url" env:"CONTACT_TWITTER_URL"`
	InstagramURL string `json:"instagram_url" env:"CONTACT_INSTAGRAM_URL"`
}

// Content bundles everything the site endpoints serve.
type Content struct {
	Settings Settings
	Contact  ContactInformation
}

// Load reads site content from the environment, falling back to the built-in defaults.
func Load() (Content, error) {
	var c Content
	if err := env.Parse(&c.Settings); err != nil {
		return Content{}, fmt.Errorf("parse site settings: %w", err)
	}
	if err := env.Parse(&c.Contact); err != nil {
		return Content{}, fmt.Errorf("parse contact information: %w", err)
	}
	return c, nil
}
