package hcc

import (
	"database/sql"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadCatalogCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.csv")
	body := "code,description,conditionLabel,categoryCode,categoryDesc,categoryEligible,relativeWeight,specificityRank\n" +
		"E11.9,Type 2 diabetes mellitus without complications,Diabetes,HCC 38,Diabetes without Complication,true,0.104,1\n" +
		"F32.0,\"Major depressive disorder, single episode, mild\",depression,,,false,0,1\n"
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

	codes, err := LoadCatalogCSV(path)
	require.NoError(t, err)
	require.Len(t, codes, 2)

	assert.Equal(t, "E11.9", codes[0].Code)
	assert.Equal(t, "diabetes", codes[0].ConditionLabel, "condition labels are lowercased")
	assert.True(t, codes[0].CategoryEligible)
	assert.InDelta(t, 0.104, codes[0].RelativeWeight, 1e-9)
	assert.Equal(t, 1, codes[0].SpecificityRank)

	assert.False(t, codes[1].CategoryEligible)
	assert.Empty(t, codes[1].CategoryCode)
}

func TestLoadCatalogCSV_Errors(t *testing.T) {
	dir := t.TempDir()

	missing := filepath.Join(dir, "missing-col.csv")
	require.NoError(t, os.WriteFile(missing, []byte("code,description\nA,b\n"), 0o644))
	_, err := LoadCatalogCSV(missing)
	assert.ErrorContains(t, err, "missing column")

	badWeight := filepath.Join(dir, "bad-weight.csv")
	require.NoError(t, os.WriteFile(badWeight, []byte(
		"code,description,conditionLabel,categoryEligible,relativeWeight,specificityRank\nA,b,x,true,heavy,1\n"), 0o644))
	_, err = LoadCatalogCSV(badWeight)
	assert.ErrorContains(t, err, "relativeWeight")

	_, err = LoadCatalogCSV(filepath.Join(dir, "absent.csv"))
	assert.Error(t, err)
}

func TestLoadLexiconCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lexicon.csv")
	body := "pattern,conditionLabel,qualifierTags,baseConfidence\n" +
		"type 2 diabetes mellitus,diabetes,,0.95\n" +
		"with proteinuria,,proteinuria,\n" +
		"diabetic nephropathy,diabetes,nephropathy; kidney involvement,0.9\n"
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

	entries, err := LoadLexiconCSV(path)
	require.NoError(t, err)
	require.Len(t, entries, 3)

	assert.Equal(t, "type 2 diabetes mellitus", entries[0].Pattern)
	assert.InDelta(t, 0.95, entries[0].BaseConfidence, 1e-9)

	assert.Empty(t, entries[1].ConditionLabel)
	assert.Equal(t, []string{"proteinuria"}, entries[1].QualifierTags)

	assert.Equal(t, []string{"nephropathy", "kidney involvement"}, entries[2].QualifierTags)

	_, err = NewLexicon(entries)
	require.NoError(t, err, "loaded entries must compile")
}

func TestLoadCatalogDB(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mappings.db")
	seedTestDB(t, path)

	codes, err := LoadCatalogDB(path)
	require.NoError(t, err)
	require.Len(t, codes, 2)
	assert.Equal(t, "E11.22", codes[0].Code)
	assert.Equal(t, "HCC 37", codes[0].CategoryCode)
	assert.True(t, codes[0].CategoryEligible)
	assert.InDelta(t, 0.302, codes[0].RelativeWeight, 1e-9)

	entries, err := LoadLexiconDB(path)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "diabetic nephropathy", entries[0].Pattern)
	assert.Equal(t, []string{"nephropathy"}, entries[0].QualifierTags)
	assert.Empty(t, entries[1].ConditionLabel)
}

func seedTestDB(t *testing.T, path string) {
	t.Helper()
	db, err := sql.Open("sqlite", path)
	require.NoError(t, err)
	defer db.Close()

	_, err = db.Exec(`
		CREATE TABLE diagnosis_codes (
			code TEXT PRIMARY KEY,
			description TEXT NOT NULL,
			condition_label TEXT NOT NULL,
			category_code TEXT,
			category_desc TEXT,
			category_eligible BOOLEAN NOT NULL,
			relative_weight REAL NOT NULL,
			specificity_rank INTEGER NOT NULL
		);
		CREATE TABLE lexicon (
			pattern TEXT NOT NULL,
			condition_label TEXT,
			qualifier_tags TEXT,
			base_confidence REAL
		);
		INSERT INTO diagnosis_codes VALUES
			('E11.22', 'Type 2 diabetes mellitus with diabetic chronic kidney disease', 'diabetes', 'HCC 37', 'Diabetes with Chronic Complications', 1, 0.302, 3),
			('E11.9', 'Type 2 diabetes mellitus without complications', 'diabetes', 'HCC 38', 'Diabetes without Complication', 1, 0.104, 1);
		INSERT INTO lexicon VALUES
			('diabetic nephropathy', 'diabetes', 'nephropathy', 0.9),
			('with proteinuria', NULL, 'proteinuria', NULL);
	`)
	require.NoError(t, err)
}
