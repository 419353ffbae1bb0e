package assistant

import (
	"context"
	"math"
	"sort"
	"strings"
)

type TeamProfile struct {
	TeamName           string   `json:"teamName"`
	ProjectDescription string   `json:"projectDescription"`
	OpenRoles          []string `json:"openRoles"`
	RequiredSkills     []string `json:"requiredSkills"`
}

type SuggestTeamsInput struct {
	UserSkills       []string      `json:"userSkills"`
	UserPassion      string        `json:"userPassion"`
	UserAvailability string        `json:"userAvailability"`
	TeamProfiles     []TeamProfile `json:"teamProfiles"`
}

type TeamMatch struct {
	TeamName   string `json:"teamName"`
	MatchScore int    `json:"matchScore"`
	Rationale  string `json:"rationale"`
}

type Moderation struct {
	TranslatedText string `json:"translatedText"`
	IsProfane      bool   `json:"isProfane"`
}

type SuggestMembersInput struct {
	OpenRoles       []string `json:"openRoles"`
	RequiredSkills  []string `json:"requiredSkills"`
	TeamDescription string   `json:"teamDescription"`
}

type MemberSuggestion struct {
	SuggestedMembers []string `json:"suggestedMembers"`
	Rationale        string   `json:"rationale"`
}

type FAQAnswer struct {
	Answer string `json:"answer"`
}

// SuggestTeams ranks the given teams for a profile. Scores are clamped to 0..100 and the
// result is sorted best match first. Names the model invents are dropped.
func (c *Client) SuggestTeams(ctx context.Context, in SuggestTeamsInput) ([]TeamMatch, error) {
	if len(in.TeamProfiles) == 0 {
		return []TeamMatch{}, nil
	}

	var raw []struct {
		TeamName   string  `json:"teamName"`
		MatchScore float64 `json:"matchScore"`
		Rationale  string  `json:"rationale"`
	}
	if err := c.generate(ctx, promptSuggestTeams, in, &raw); err != nil {
		return nil, err
	}

	known := make(map[string]bool, len(in.TeamProfiles))
	for _, t := range in.TeamProfiles {
		known[t.TeamName] = true
	}

	matches := make([]TeamMatch, 0, len(raw))
	for _, m := range raw {
		if !known[m.TeamName] {
			continue
		}
		matches = append(matches, TeamMatch{
			TeamName:   m.TeamName,
			MatchScore: clampScore(m.MatchScore),
			Rationale:  strings.TrimSpace(m.Rationale),
		})
	}
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].MatchScore > matches[j].MatchScore
	})
	return matches, nil
}

func (c *Client) ModerateAndTranslate(ctx context.Context, message string) (*Moderation, error) {
	var out struct {
		TranslatedMessage string `json:"translatedMessage"`
		IsProfane         bool   `json:"isProfane"`
	}
	if err := c.generate(ctx, promptModerateTranslate, struct{ Message string }{message}, &out); err != nil {
		return nil, err
	}

	translated := strings.TrimSpace(out.TranslatedMessage)
	if translated == "" {
		translated = message
	}
	return &Moderation{TranslatedText: translated, IsProfane: out.IsProfane}, nil
}

func (c *Client) SuggestTeamMembers(ctx context.Context, in SuggestMembersInput) (*MemberSuggestion, error) {
	var out MemberSuggestion
	if err := c.generate(ctx, promptSuggestTeamMembers, in, &out); err != nil {
		return nil, err
	}
	if out.SuggestedMembers == nil {
		out.SuggestedMembers = []string{}
	}
	return &out, nil
}

func (c *Client) AnswerFAQ(ctx context.Context, query string) (*FAQAnswer, error) {
	var out FAQAnswer
	if err := c.generate(ctx, promptFAQ, struct{ Query string }{query}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func clampScore(score float64) int {
	if math.IsNaN(score) {
		return 0
	}
	return int(math.Round(math.Max(0, math.Min(100, score))))
}
