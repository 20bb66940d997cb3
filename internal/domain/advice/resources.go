package advice

// Resource categories returned by StaticResources.
const (
	CategoryHotlines   = "hotlines"
	CategoryApps       = "apps"
	CategoryWebsites   = "websites"
	CategoryTreatments = "treatments"
)

var staticResources = map[string][]string{
	CategoryHotlines: {
		"Taiwan Health Promotion Administration quitline: 0800-636363",
		"Outpatient smoking cessation service: 02-2382-0886",
	},
	CategoryApps: {
		"Quit Genius - cognitive behavioural therapy for quitting",
		"Smoke Free - track progress and money saved",
		"QuitNow! - community support and achievements",
	},
	CategoryWebsites: {
		"Health Promotion Administration cessation resources: https://www.hpa.gov.tw/Pages/List.aspx?nodeid=444",
		"WHO quitting guidance: https://www.who.int/tobacco/quitting/en/",
		"Taiwan Society of Tobacco Hazards Prevention: https://www.tsh.org.tw/",
	},
	CategoryTreatments: {
		"Nicotine replacement therapy (patches, gum)",
		"Prescription medication (varenicline or bupropion)",
		"Professional cessation counselling and cognitive behavioural therapy",
		"Acupuncture and hypnotherapy",
	},
}

// StaticResources returns hotline, app, website and treatment references.
// The result is a fresh copy and needs no network access.
func StaticResources() map[string][]string {
	out := make(map[string][]string, len(staticResources))
	for category, items := range staticResources {
		out[category] = append([]string(nil), items...)
	}
	return out
}
