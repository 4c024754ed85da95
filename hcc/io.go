package hcc

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// Catalog CSV schema: code, description, conditionLabel, categoryCode,
// categoryDesc, categoryEligible, relativeWeight, specificityRank.
// Lexicon CSV schema: pattern, conditionLabel, qualifierTags (semicolon
// separated), baseConfidence. Both files carry a header row; columns are
// resolved by name so order does not matter.

// LoadCatalogCSV reads diagnosis codes from a CSV file.
func LoadCatalogCSV(path string) ([]DiagnosisCode, error) {
	rows, header, err := readCSV(path)
	if err != nil {
		return nil, err
	}
	required := []string{"code", "description", "conditionlabel", "categoryeligible", "relativeweight", "specificityrank"}
	if err := requireColumns(header, required); err != nil {
		return nil, fmt.Errorf("catalog %s: %w", path, err)
	}
	out := make([]DiagnosisCode, 0, len(rows))
	for i, row := range rows {
		eligible, err := strconv.ParseBool(field(row, header, "categoryeligible"))
		if err != nil {
			return nil, fmt.Errorf("catalog %s row %d: categoryEligible: %w", path, i+2, err)
		}
		weight, err := strconv.ParseFloat(field(row, header, "relativeweight"), 64)
		if err != nil {
			return nil, fmt.Errorf("catalog %s row %d: relativeWeight: %w", path, i+2, err)
		}
		rank, err := strconv.Atoi(field(row, header, "specificityrank"))
		if err != nil {
			return nil, fmt.Errorf("catalog %s row %d: specificityRank: %w", path, i+2, err)
		}
		out = append(out, DiagnosisCode{
			Code:             field(row, header, "code"),
			Description:      field(row, header, "description"),
			ConditionLabel:   strings.ToLower(field(row, header, "conditionlabel")),
			CategoryCode:     field(row, header, "categorycode"),
			CategoryDesc:     field(row, header, "categorydesc"),
			CategoryEligible: eligible,
			RelativeWeight:   weight,
			SpecificityRank:  rank,
		})
	}
	return out, nil
}

// LoadLexiconCSV reads lexicon entries from a CSV file.
func LoadLexiconCSV(path string) ([]LexiconEntry, error) {
	rows, header, err := readCSV(path)
	if err != nil {
		return nil, err
	}
	if err := requireColumns(header, []string{"pattern"}); err != nil {
		return nil, fmt.Errorf("lexicon %s: %w", path, err)
	}
	out := make([]LexiconEntry, 0, len(rows))
	for i, row := range rows {
		entry := LexiconEntry{
			Pattern:        field(row, header, "pattern"),
			ConditionLabel: strings.ToLower(field(row, header, "conditionlabel")),
			QualifierTags:  splitTags(field(row, header, "qualifiertags")),
		}
		if raw := field(row, header, "baseconfidence"); raw != "" {
			conf, err := strconv.ParseFloat(raw, 64)
			if err != nil {
				return nil, fmt.Errorf("lexicon %s row %d: baseConfidence: %w", path, i+2, err)
			}
			entry.BaseConfidence = conf
		}
		out = append(out, entry)
	}
	return out, nil
}

func readCSV(path string) ([][]string, map[string]int, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1
	head, err := reader.Read()
	if err != nil {
		if err == io.EOF {
			return nil, nil, fmt.Errorf("%s: empty file", path)
		}
		return nil, nil, fmt.Errorf("read %s header: %w", path, err)
	}
	header := make(map[string]int, len(head))
	for i, name := range head {
		header[strings.ToLower(strings.TrimSpace(name))] = i
	}
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("read %s: %w", path, err)
	}
	return rows, header, nil
}

func requireColumns(header map[string]int, names []string) error {
	for _, name := range names {
		if _, ok := header[name]; !ok {
			return fmt.Errorf("missing column %q", name)
		}
	}
	return nil
}

func field(row []string, header map[string]int, name string) string {
	idx, ok := header[name]
	if !ok || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

func splitTags(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ";")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
