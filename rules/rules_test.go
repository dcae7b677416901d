package rules_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warp/schedule-engine/rules"
	"github.com/warp/schedule-engine/schedule"
)

func TestParse_FullDocument(t *testing.T) {
	rs, err := rules.Parse([]byte(`{
		"jurisdiction": "eu-working-time",
		"min_rest_hours": 12,
		"max_weekly_hours": 45,
		"working_days_per_week": 6,
		"full_week_hours": 38.5
	}`))

	require.NoError(t, err)
	assert.Equal(t, 12*60, rs.MinRestMinutes)
	assert.Equal(t, 45*60, rs.MaxWeeklyMinutes)
	assert.Equal(t, 6, rs.WorkingDaysPerWeek)
	assert.Equal(t, 38*60+30, rs.FullWeekHours.Minutes())
}

func TestParse_AbsentFieldsFallBackToDefaults(t *testing.T) {
	rs, err := rules.Parse([]byte(`{"min_rest_hours": 10}`))

	require.NoError(t, err)
	def := schedule.DefaultRules()
	assert.Equal(t, 10*60, rs.MinRestMinutes)
	assert.Equal(t, def.MaxWeeklyMinutes, rs.MaxWeeklyMinutes)
	assert.Equal(t, def.WorkingDaysPerWeek, rs.WorkingDaysPerWeek)
	assert.Equal(t, def.FullWeekHours, rs.FullWeekHours)
}

func TestParse_EmptyDocumentIsAllDefaults(t *testing.T) {
	rs, err := rules.Parse([]byte(`{}`))

	require.NoError(t, err)
	assert.Equal(t, schedule.DefaultRules(), rs)
}

func TestParse_RejectsMalformedJSON(t *testing.T) {
	_, err := rules.Parse([]byte(`{not json`))
	assert.Error(t, err)
}

func TestFromJSON_RejectsOutOfRangeValues(t *testing.T) {
	cases := []struct {
		name string
		doc  rules.RulesJSON
	}{
		{"rest above a day", rules.RulesJSON{MinRestHours: 25}},
		{"negative rest", rules.RulesJSON{MinRestHours: -1}},
		{"weekly above a week", rules.RulesJSON{MaxWeeklyHours: 200}},
		{"eight working days", rules.RulesJSON{WorkingDaysPerWeek: 8}},
		{"full week above a week", rules.RulesJSON{FullWeekHours: 169}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := rules.FromJSON(tc.doc)
			assert.Error(t, err)
		})
	}
}

func TestLoad_EmptyAndMissingPathsUseDefaults(t *testing.T) {
	rs, err := rules.Load("")
	require.NoError(t, err)
	assert.Equal(t, schedule.DefaultRules(), rs)

	rs, err = rules.Load(filepath.Join(t.TempDir(), "nope.json"))
	require.NoError(t, err)
	assert.Equal(t, schedule.DefaultRules(), rs)
}

func TestLoad_ReadsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rules.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"max_weekly_hours": 40}`), 0o644))

	rs, err := rules.Load(path)

	require.NoError(t, err)
	assert.Equal(t, 40*60, rs.MaxWeeklyMinutes)
}
