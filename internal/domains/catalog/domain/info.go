package domain

// Link is a labelled URL on the about page.
type Link struct {
	Label string
	URL   string
}

// About combines the about page and the public contact settings.
type About struct {
	MissionStatement string
	VisionStatement  string
	SocialLinks      []Link
	UsefulLinks      []Link

	SiteName     string
	ContactPhone string
	ContactEmail string
	Address      string
}

// SiteSettings is the public contact block.
type SiteSettings struct {
	SiteName     string
	ContactPhone string
	ContactEmail string
	Address      string
}

// AboutPage is the editorial half of About.
type AboutPage struct {
	MissionStatement string
	VisionStatement  string
	SocialLinks      []Link
	UsefulLinks      []Link
}

// Merge combines the two halves fetched separately.
func Merge(page AboutPage, settings SiteSettings) About {
	return About{
		MissionStatement: page.MissionStatement,
		VisionStatement:  page.VisionStatement,
		SocialLinks:      page.SocialLinks,
		UsefulLinks:      page.UsefulLinks,
		SiteName:         settings.SiteName,
		ContactPhone:     settings.ContactPhone,
		ContactEmail:     settings.ContactEmail,
		Address:          settings.Address,
	}
}
