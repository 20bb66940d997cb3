package advice

const timelineNoteKey = "note"

const fallbackMotivation = "The advice service is unreachable right now, but it is never too late to quit: " +
	"every smoke-free day is an investment in your health."

// fallbackResponse is returned when the generator fails or is not configured.
func fallbackResponse(source Source) Response {
	return Response{
		HealthRisks:      []string{"Health risk analysis is temporarily unavailable, please try again later"},
		QuitStrategies:   []string{"Quit strategies are temporarily unavailable"},
		RecoveryTimeline: map[string]string{timelineNoteKey: "Recovery timeline could not be generated"},
		MedicalStats:     []string{"Medical statistics are unavailable"},
		Motivation:       fallbackMotivation,
		Source:           source,
	}
}

// unparsedResponse keeps the raw reply as motivation when it carried no
// structured advice.
func unparsedResponse(raw string) Response {
	return Response{
		HealthRisks:      []string{"Based on your smoking data..."},
		QuitStrategies:   []string{"Following medical guidance..."},
		RecoveryTimeline: map[string]string{timelineNoteKey: "A detailed timeline could not be generated"},
		MedicalStats:     []string{"Statistics are not available at the moment"},
		Motivation:       raw,
		Source:           SourceUnparsed,
	}
}

// fillGaps backs empty parsed fields with the unparsed placeholders.
func fillGaps(resp Response) Response {
	placeholder := unparsedResponse(fallbackMotivation)
	if len(resp.HealthRisks) == 0 {
		resp.HealthRisks = placeholder.HealthRisks
	}
	if len(resp.QuitStrategies) == 0 {
		resp.QuitStrategies = placeholder.QuitStrategies
	}
	if len(resp.RecoveryTimeline) == 0 {
		resp.RecoveryTimeline = placeholder.RecoveryTimeline
	}
	if len(resp.MedicalStats) == 0 {
		resp.MedicalStats = placeholder.MedicalStats
	}
	if resp.Motivation == "" {
		resp.Motivation = fallbackMotivation
	}
	return resp
}
