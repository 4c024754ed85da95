package hcc

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// The mapping table is an external read-only data source. These loaders pull
// it into memory once at startup; nothing here writes to the database.
//
// Expected tables:
//
//	diagnosis_codes(code, description, condition_label, category_code,
//	                category_desc, category_eligible, relative_weight,
//	                specificity_rank)
//	lexicon(pattern, condition_label, qualifier_tags, base_confidence)

// LoadCatalogDB reads diagnosis codes from a SQLite database file.
func LoadCatalogDB(path string) ([]DiagnosisCode, error) {
	db, err := openReadOnly(path)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	rows, err := db.Query(`SELECT code, description, condition_label,
		COALESCE(category_code, ''), COALESCE(category_desc, ''),
		category_eligible, relative_weight, specificity_rank
		FROM diagnosis_codes ORDER BY code`)
	if err != nil {
		return nil, fmt.Errorf("query diagnosis_codes: %w", err)
	}
	defer rows.Close()

	var out []DiagnosisCode
	for rows.Next() {
		var dc DiagnosisCode
		if err := rows.Scan(&dc.Code, &dc.Description, &dc.ConditionLabel,
			&dc.CategoryCode, &dc.CategoryDesc, &dc.CategoryEligible,
			&dc.RelativeWeight, &dc.SpecificityRank); err != nil {
			return nil, fmt.Errorf("scan diagnosis_codes: %w", err)
		}
		out = append(out, dc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read diagnosis_codes: %w", err)
	}
	return out, nil
}

// LoadLexiconDB reads lexicon entries from a SQLite database file.
func LoadLexiconDB(path string) ([]LexiconEntry, error) {
	db, err := openReadOnly(path)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	rows, err := db.Query(`SELECT pattern, COALESCE(condition_label, ''),
		COALESCE(qualifier_tags, ''), COALESCE(base_confidence, 0)
		FROM lexicon ORDER BY pattern`)
	if err != nil {
		return nil, fmt.Errorf("query lexicon: %w", err)
	}
	defer rows.Close()

	var out []LexiconEntry
	for rows.Next() {
		var entry LexiconEntry
		var tags string
		if err := rows.Scan(&entry.Pattern, &entry.ConditionLabel, &tags, &entry.BaseConfidence); err != nil {
			return nil, fmt.Errorf("scan lexicon: %w", err)
		}
		entry.QualifierTags = splitTags(tags)
		out = append(out, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read lexicon: %w", err)
	}
	return out, nil
}

func openReadOnly(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", "file:"+path+"?mode=ro")
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	return db, nil
}
