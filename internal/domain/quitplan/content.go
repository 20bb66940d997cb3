package quitplan

var nicotineMg = map[NicotineLevel]float64{
	NicotineLow:    0.5,
	NicotineMedium: 1.0,
	NicotineHigh:   1.5,
}

var triggerStrategies = map[Trigger][]string{
	TriggerStress: {
		"Practice paced breathing: in for 4 seconds, hold for 4, out for 6",
		"Use a meditation app for 5-10 minutes a day",
		"Step away from the stressful setting for a 5 minute walk",
	},
	TriggerSocial: {
		"Tell friends in advance that you are quitting and ask for support",
		"Keep a non-alcoholic drink in hand",
		"Spend the time with people who do not smoke",
	},
	TriggerAfterMeals: {
		"Brush your teeth or rinse with mouthwash right after eating",
		"Change setting after meals, for example a walk or the dishes",
		"Keep fruit or sugar-free gum ready as an after-meal substitute",
	},
	TriggerBoredom: {
		"Install a phone game to redirect attention",
		"Prepare a list of short household tasks",
		"Pick up a new skill or hobby",
	},
	TriggerAlcohol: {
		"Cut back on drinking occasions for now",
		"Limit how much alcohol you drink",
		"Choose alcohol-free alternatives",
	},
	TriggerCoffee: {
		"Drink coffee somewhere else than usual",
		"Replace some of the coffee with tea",
		"Use a smaller cup so the break is shorter",
	},
	TriggerMorning: {
		"Change the order of your morning routine",
		"Make a healthy breakfast the morning reward",
		"Meditate or do light exercise after waking",
	},
	TriggerCraving: {
		"Use nicotine replacement such as a patch or gum",
		"Keep a craving log and note how long each craving lasts",
		"Prepare a list of 5 minute distractions",
	},
}

var trackingApps = []string{"QuitNow!", "Smoke Free", "Quitzilla", "EasyQuit"}

var diaryFields = []string{
	"cigarettes smoked each day",
	"craving intensity (1-10)",
	"situation that triggered the craving",
	"coping strategy that worked",
}

var patchDosage = map[NicotineLevel]NRTSuggestion{
	NicotineHigh: {
		Product: "nicotine patch (high dose)",
		Dosage:  "21mg/24h for 4 weeks, then 14mg/24h for 4 weeks, then 7mg/24h for 4 weeks",
	},
	NicotineMedium: {
		Product: "nicotine patch (medium dose)",
		Dosage:  "14mg/24h for 4 weeks, then 7mg/24h for 4 weeks",
	},
	NicotineLow: {
		Product: "nicotine patch (low dose)",
		Dosage:  "7mg/24h for 4-8 weeks",
	},
}

var commonNRT = []NRTSuggestion{
	{Product: "nicotine gum", Dosage: "use during strong cravings, no more than 20 pieces of 2mg a day"},
	{Product: "nicotine inhaler", Dosage: "helps smokers with a strong hand-to-mouth habit"},
}
