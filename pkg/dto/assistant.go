package dto

type SuggestTeamsRequest struct {
	Skills       []string `json:"skills,omitempty"`
	Passion      string   `json:"passion,omitempty"`
	Availability string   `json:"availability,omitempty"`
}

type TeamMatchResponse struct {
	TeamName   string `json:"team_name"`
	MatchScore int    `json:"match_score"`
	Rationale  string `json:"rationale"`
}

type MemberSuggestionResponse struct {
	SuggestedMembers []string `json:"suggested_members"`
	Rationale        string   `json:"rationale"`
}

type FAQRequest struct {
	Query string `json:"query"`
}

type FAQResponse struct {
	Answer string `json:"answer"`
}

type ModerateRequest struct {
	Message string `json:"message"`
}

type ModerateResponse struct {
	TranslatedText string `json:"translated_text"`
	IsProfane      bool   `json:"is_profane"`
}
