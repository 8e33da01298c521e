package layouts

// CalculateTitle handles the conditional logic for the page title.
func CalculateTitle(title, siteTitle string) string {
	if title != "" {
		return title + " - " + siteTitle
	}
	return siteTitle
}
