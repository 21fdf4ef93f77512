// internal/models/argument.go
package models

// ArgumentContent is the structured story document behind an argument
// file. Its shape is fixed and known in advance; every field defaults
// to the empty string so a freshly created argument serializes as a
// complete, zero-valued record.
type ArgumentContent struct {
	MainTheme         string               `json:"mainTheme"`
	ThemeDescription  string               `json:"themeDescription,omitempty"`
	SubThemes         []SubTheme           `json:"subThemes"`
	SelectedSubThemes []SubTheme           `json:"selectedSubThemes"`
	Characters        ArgumentCharacters   `json:"characters"`
	Narrative         NarrativeElements    `json:"narrativeElements"`
	Consolidated      ConsolidatedArgument `json:"consolidatedArgument"`
}

// SubTheme is one AI-suggested secondary theme card. Selection state
// lives on the card; the selected list on ArgumentContent is rebuilt on
// every toggle.
type SubTheme struct {
	ID            string `json:"id"`
	Title         string `json:"title"`
	Explanation   string `json:"explanation"`
	Justification string `json:"justification"`
	Suggestion    string `json:"suggestion"`
	Selected      bool   `json:"isSelected"`
}

// ArgumentCharacters pairs the two leads of the story.
type ArgumentCharacters struct {
	Protagonist CharacterProfile `json:"protagonist"`
	Antagonist  CharacterProfile `json:"antagonist"`
}

// CharacterRole names one side of the protagonist/antagonist pair.
type CharacterRole string

const (
	RoleProtagonist CharacterRole = "protagonist"
	RoleAntagonist  CharacterRole = "antagonist"
)

// CharacterProfile holds the six free-text traits the writer fills in
// plus the prose summary the AI generates from them.
type CharacterProfile struct {
	Psychological    string `json:"psicologico"`
	Strengths        string `json:"forcas"`
	Weaknesses       string `json:"fraquezas"`
	InnerMotivation  string `json:"motivacaoInterna"`
	OuterMotivation  string `json:"motivacaoExterna"`
	SocialMotivation string `json:"motivacaoSocial"`
	Summary          string `json:"summary"`
}

// NarrativeElements are the ten pillars of the story plus the generated
// connecting summary.
type NarrativeElements struct {
	Storyline        string `json:"storyline"`
	CoreConcept      string `json:"conceitoFundamental"`
	Themes           string `json:"temas"`
	PlotGoal         string `json:"objetivoTrama"`
	CharacterGoal    string `json:"objetivoPersonagem"`
	PlotTwist        string `json:"plotTwist"`
	NarrativeDevice  string `json:"recursoNarrativo"`
	KeyObjects       string `json:"objetosChave"`
	KeyPlaces        string `json:"lugaresImportantes"`
	DominantFeelings string `json:"sentimentosPredominantes"`
	Summary          string `json:"summary"`
}

// ConsolidatedArgument is the final AI-compiled document.
type ConsolidatedArgument struct {
	Storyline    string `json:"storyline"`
	Synopsis     string `json:"sinopse"`
	FullArgument string `json:"argumentoCompleto"`
}

// NewArgumentContent returns a zero-valued argument document.
func NewArgumentContent() *ArgumentContent {
	return &ArgumentContent{
		SubThemes:         []SubTheme{},
		SelectedSubThemes: []SubTheme{},
	}
}

// Clone returns a deep copy of the argument content.
func (a *ArgumentContent) Clone() *ArgumentContent {
	if a == nil {
		return nil
	}
	clone := *a
	clone.SubThemes = append([]SubTheme(nil), a.SubThemes...)
	clone.SelectedSubThemes = append([]SubTheme(nil), a.SelectedSubThemes...)
	return &clone
}

// Profile returns the profile for the given role. Unknown roles map to
// the protagonist so callers never dereference a nil profile.
func (c *ArgumentCharacters) Profile(role CharacterRole) *CharacterProfile {
	if role == RoleAntagonist {
		return &c.Antagonist
	}
	return &c.Protagonist
}
