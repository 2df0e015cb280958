package research

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCategory(t *testing.T) {
	tests := []struct {
		reply string
		want  Category
	}{
		{"solution", CategorySolution},
		{"Competitor.", CategoryCompetitor},
		{"  TREND because it describes growth", CategoryTrend},
		{"product", CategoryTrend},
		{"", CategoryTrend},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ParseCategory(tt.reply), tt.reply)
	}
}

func TestFlexStringAcceptsLooseTypes(t *testing.T) {
	var team []TeamResource
	data := `[
		{"role": "Senior Developer", "number_of_people": 2, "required_skills": ["Go", "SQL"], "allocation": "Full-time for 6 months"},
		{"role": "QA", "number_of_people": "1-2", "required_skills": null}
	]`
	require.NoError(t, json.Unmarshal([]byte(data), &team))

	require.Len(t, team, 2)
	assert.Equal(t, "2", team[0].NumberOfPeople.String())
	assert.Equal(t, "Go, SQL", team[0].RequiredSkills.String())
	assert.Equal(t, "1-2", team[1].NumberOfPeople.String())
	assert.Equal(t, "", team[1].RequiredSkills.String())
}

func TestResourceEstimateNormalize(t *testing.T) {
	e := NewFailedEstimate("boom")
	data, err := json.Marshal(e)
	require.NoError(t, err)

	var m map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &m))
	for _, key := range []string{"team_resources", "timeline", "technical_infrastructure", "risks", "success_metrics"} {
		assert.Equal(t, []interface{}{}, m[key], key)
	}
}

func TestFlexStringInt(t *testing.T) {
	tests := map[FlexString]int{
		"85":     85,
		"85.6":   86,
		"72/100": 72,
		" 40 ":   40,
		"-3":     -3,
		"high":   0,
		"":       0,
	}
	for in, want := range tests {
		assert.Equal(t, want, in.Int(), string(in))
	}
}
