package profile

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLookup_MissingSegmentsYieldNil(t *testing.T) {
	p := Profile{
		"person": map[string]any{"name": "Jane Doe"},
		"skills": []any{"Go"},
	}

	assert.Equal(t, "Jane Doe", p.Lookup("person.name"))
	assert.Equal(t, "Go", p.Lookup("skills.0"))
	assert.Nil(t, p.Lookup("person.email"))
	assert.Nil(t, p.Lookup("skills.5"))
	assert.Nil(t, p.Lookup("skills.first"))
	assert.Nil(t, p.Lookup("person.name.first"))
	assert.Nil(t, p.Lookup("education.0.degree"))
	assert.Equal(t, "", p.String("education.0.degree"))
}

func TestString_FormatsNumbers(t *testing.T) {
	p := Profile{"years": 7}
	assert.Equal(t, "7", p.String("years"))
}

func TestWith_LeavesOriginalUntouched(t *testing.T) {
	original := Profile{
		"person": map[string]any{"name": "Jane Doe"},
		"skills": []any{"Go"},
	}

	withJob := original.With("job", "Acme - Backend Engineer")
	withJob["person"].(map[string]any)["name"] = "Changed"
	withJob["skills"].([]any)[0] = "Rust"

	assert.Equal(t, "Acme - Backend Engineer", withJob["job"])
	assert.NotContains(t, original, "job")
	assert.Equal(t, "Jane Doe", original.Lookup("person.name"))
	assert.Equal(t, "Go", original.Lookup("skills.0"))
}

func TestClone_NilProfile(t *testing.T) {
	var p Profile
	clone := p.Clone()
	assert.NotNil(t, clone)
	assert.Empty(t, clone)
}
