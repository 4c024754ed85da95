package hcc

// DefaultCatalogEntries returns the built-in ICD-to-category mapping set so
// the CLI and tests work without an external catalog file. Weights are the
// community RAF values for the demo code set.
func DefaultCatalogEntries() []DiagnosisCode {
	return []DiagnosisCode{
		{Code: "E11.9", Description: "Type 2 diabetes mellitus without complications",
			ConditionLabel: "diabetes", CategoryCode: "HCC 38", CategoryDesc: "Diabetes without Complication",
			CategoryEligible: true, RelativeWeight: 0.104, SpecificityRank: 1},
		{Code: "E11.51", Description: "Type 2 diabetes mellitus with diabetic peripheral angiopathy without gangrene",
			ConditionLabel: "diabetes", CategoryCode: "HCC 37", CategoryDesc: "Diabetes with Chronic Complications",
			CategoryEligible: true, RelativeWeight: 0.302, SpecificityRank: 2},
		{Code: "E11.22", Description: "Type 2 diabetes mellitus with diabetic chronic kidney disease",
			ConditionLabel: "diabetes", CategoryCode: "HCC 37", CategoryDesc: "Diabetes with Chronic Complications",
			CategoryEligible: true, RelativeWeight: 0.302, SpecificityRank: 3},

		{Code: "N18.31", Description: "Chronic kidney disease, stage 3a",
			ConditionLabel: "chronic kidney disease", CategoryCode: "HCC 327", CategoryDesc: "Chronic Kidney Disease Stage 3",
			CategoryEligible: true, RelativeWeight: 0.237, SpecificityRank: 1},
		{Code: "N18.4", Description: "Chronic kidney disease, stage 4 (severe)",
			ConditionLabel: "chronic kidney disease", CategoryCode: "HCC 326", CategoryDesc: "Chronic Kidney Disease Stage 4",
			CategoryEligible: true, RelativeWeight: 0.421, SpecificityRank: 2},
		{Code: "N18.5", Description: "Chronic kidney disease, stage 5",
			ConditionLabel: "chronic kidney disease", CategoryCode: "HCC 325", CategoryDesc: "Chronic Kidney Disease Stage 5",
			CategoryEligible: true, RelativeWeight: 0.675, SpecificityRank: 3},

		{Code: "I50.9", Description: "Heart failure, unspecified",
			ConditionLabel: "heart failure", CategoryCode: "HCC 223", CategoryDesc: "Congestive Heart Failure",
			CategoryEligible: true, RelativeWeight: 0.323, SpecificityRank: 1},
		{Code: "I25.10", Description: "Atherosclerotic heart disease of native coronary artery without angina pectoris",
			ConditionLabel: "coronary artery disease", CategoryCode: "HCC 224", CategoryDesc: "Coronary Artery Disease",
			CategoryEligible: true, RelativeWeight: 0.195, SpecificityRank: 1},

		{Code: "F32.0", Description: "Major depressive disorder, single episode, mild",
			ConditionLabel: "depression",
			CategoryEligible: false, RelativeWeight: 0, SpecificityRank: 1},
		{Code: "F32.1", Description: "Major depressive disorder, single episode, moderate",
			ConditionLabel: "depression", CategoryCode: "HCC 155", CategoryDesc: "Major Depressive and Bipolar Disorders",
			CategoryEligible: true, RelativeWeight: 0.309, SpecificityRank: 2},

		{Code: "J44.1", Description: "Chronic obstructive pulmonary disease with acute exacerbation",
			ConditionLabel: "copd", CategoryCode: "HCC 287", CategoryDesc: "COPD",
			CategoryEligible: true, RelativeWeight: 0.328, SpecificityRank: 1},

		{Code: "Z94.0", Description: "Kidney transplant status",
			ConditionLabel: "kidney transplant", CategoryCode: "HCC 274", CategoryDesc: "Kidney Transplant Status",
			CategoryEligible: true, RelativeWeight: 0.525, SpecificityRank: 1},
	}
}

// DefaultLexiconEntries returns the built-in phrase patterns for the demo
// condition vocabulary. Multi-word phrases carry higher base confidence than
// bare keywords; entries without a condition label are qualifier patterns
// that modify the nearest preceding condition match.
func DefaultLexiconEntries() []LexiconEntry {
	return []LexiconEntry{
		// diabetes
		{Pattern: "type 2 diabetes mellitus", ConditionLabel: "diabetes", BaseConfidence: 0.95},
		{Pattern: "type 2 diabetes", ConditionLabel: "diabetes", BaseConfidence: 0.9},
		{Pattern: "diabetes mellitus", ConditionLabel: "diabetes", BaseConfidence: 0.9},
		{Pattern: "diabetes", ConditionLabel: "diabetes"},
		{Pattern: "diabetic", ConditionLabel: "diabetes"},
		{Pattern: "t2dm", ConditionLabel: "diabetes"},
		{Pattern: "diabetic nephropathy", ConditionLabel: "diabetes",
			QualifierTags: []string{"nephropathy"}, BaseConfidence: 0.9},

		// chronic kidney disease
		{Pattern: "chronic kidney disease", ConditionLabel: "chronic kidney disease",
			QualifierTags: []string{"chronic"}, BaseConfidence: 0.9},
		{Pattern: "kidney disease", ConditionLabel: "chronic kidney disease", BaseConfidence: 0.8},
		{Pattern: "ckd", ConditionLabel: "chronic kidney disease"},
		{Pattern: "nephropathy", ConditionLabel: "chronic kidney disease"},

		// heart
		{Pattern: "congestive heart failure", ConditionLabel: "heart failure", BaseConfidence: 0.95},
		{Pattern: "heart failure", ConditionLabel: "heart failure", BaseConfidence: 0.9},
		{Pattern: "chf", ConditionLabel: "heart failure"},
		{Pattern: "reduced ejection fraction", ConditionLabel: "heart failure",
			QualifierTags: []string{"reduced ejection fraction"}, BaseConfidence: 0.85},
		{Pattern: "coronary artery disease", ConditionLabel: "coronary artery disease", BaseConfidence: 0.9},
		{Pattern: "cad", ConditionLabel: "coronary artery disease"},

		// mental health
		{Pattern: "major depressive disorder", ConditionLabel: "depression", BaseConfidence: 0.95},
		{Pattern: "depression", ConditionLabel: "depression"},
		{Pattern: "depressive", ConditionLabel: "depression"},

		// respiratory
		{Pattern: "chronic obstructive pulmonary disease", ConditionLabel: "copd", BaseConfidence: 0.95},
		{Pattern: "copd", ConditionLabel: "copd"},

		// transplant status
		{Pattern: "kidney transplant", ConditionLabel: "kidney transplant", BaseConfidence: 0.9},
		{Pattern: "renal transplant", ConditionLabel: "kidney transplant", BaseConfidence: 0.9},

		// qualifier phrases
		{Pattern: "with chronic kidney disease", QualifierTags: []string{"nephropathy"}},
		{Pattern: "with proteinuria", QualifierTags: []string{"proteinuria"}},
		{Pattern: "proteinuria", QualifierTags: []string{"proteinuria"}},
		{Pattern: "declining egfr", QualifierTags: []string{"declining eGFR"}},
		{Pattern: "stage 3a", QualifierTags: []string{"stage 3"}},
		{Pattern: "stage 3", QualifierTags: []string{"stage 3"}},
		{Pattern: "stage 4", QualifierTags: []string{"stage 4"}},
		{Pattern: "stage 5", QualifierTags: []string{"stage 5"}},
		{Pattern: "chronic", QualifierTags: []string{"chronic"}},
		{Pattern: "uncontrolled", QualifierTags: []string{"uncontrolled"}},
		{Pattern: "acute exacerbation", QualifierTags: []string{"acute exacerbation"}},
		{Pattern: "on immunosuppressive therapy", QualifierTags: []string{"immunosuppressive therapy"}},
	}
}
