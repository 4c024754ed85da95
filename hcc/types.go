package hcc

// PatientContext carries the optional patient information accompanying a
// note. KnownCodes is authoritative for what is already coded: a code listed
// here is treated as CURRENT even when the note text would suggest it fresh.
type PatientContext struct {
	KnownCodes []string `json:"knownCodes,omitempty"`
	Age        int      `json:"age,omitempty"`
	History    string   `json:"history,omitempty"`
}

// ClinicalNote is the immutable input to one pipeline run.
type ClinicalNote struct {
	Text    string         `json:"text"`
	Context PatientContext `json:"context"`
}

// Span marks a byte range in the normalized note text.
type Span struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// ExtractedCondition is one condition the extractor found in the note.
// Label is always a member of the closed condition vocabulary defined by the
// lexicon; Confidence is in [0,1].
type ExtractedCondition struct {
	Label      string   `json:"label"`
	Qualifiers []string `json:"qualifiers,omitempty"`
	Confidence float64  `json:"confidence"`
	Span       *Span    `json:"span,omitempty"`
	Evidence   string   `json:"evidence,omitempty"`
}

// DiagnosisCode is one catalog entry. Codes describing the same condition
// family share a ConditionLabel and are strictly ordered by SpecificityRank.
type DiagnosisCode struct {
	Code             string  `json:"code"`
	Description      string  `json:"description"`
	ConditionLabel   string  `json:"conditionLabel"`
	CategoryCode     string  `json:"categoryCode,omitempty"`
	CategoryDesc     string  `json:"categoryDesc,omitempty"`
	CategoryEligible bool    `json:"categoryEligible"`
	RelativeWeight   float64 `json:"relativeWeight"`
	SpecificityRank  int     `json:"specificityRank"`
}

// Role describes how a candidate relates to the patient's coded state.
type Role string

const (
	// RoleCurrent marks a code already present in the patient's known codes.
	RoleCurrent Role = "current"
	// RoleUpgrade marks a more specific replacement for a coded condition.
	RoleUpgrade Role = "upgrade"
	// RoleMissed marks an uncoded condition supported by the documentation.
	RoleMissed Role = "missed"
)

// CodeCandidate pairs a catalog code with the extracted condition that led
// to it. Candidates live only for the duration of one pipeline run.
type CodeCandidate struct {
	Code      DiagnosisCode
	Condition ExtractedCondition
	Role      Role
	// Current is the already-coded catalog entry this candidate would
	// replace. Only set for RoleUpgrade.
	Current *DiagnosisCode
}

// ScoredCandidate is a candidate annotated with its confidence score and
// annualized financial impact.
type ScoredCandidate struct {
	CodeCandidate
	Score  int
	Impact float64
}

// Recommendation is the externally visible output unit.
type Recommendation struct {
	Code         string   `json:"code"`
	Description  string   `json:"description"`
	CurrentCode  string   `json:"currentCode,omitempty"`
	Role         Role     `json:"role"`
	Score        int      `json:"score"`
	AnnualImpact float64  `json:"annualImpact"`
	Rationale    []string `json:"rationale"`
}
