package roadmap

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/career-roadmap/internal/types"
)

var phaseTitles = []string{
	"Foundations",
	"Core Skills Development",
	"Practical Application",
	"Specialization",
	"Career Launch",
}

func dataAnalyst() types.Occupation {
	return types.Occupation{
		Name:   "Data Analyst",
		Skills: []string{"python", "sql", "data visualization", "pandas"},
		Tasks: []string{
			"Write SQL queries against the warehouse",
			"Build dashboards for stakeholders",
			"Clean datasets with pandas",
			"Present findings to leadership",
			"Automate reports with Python scripts",
			"Document data sources",
		},
	}
}

func titles(steps []types.RoadmapStep) []string {
	out := make([]string, len(steps))
	for i, s := range steps {
		out[i] = s.Title
	}
	return out
}

func TestSynthesize_FivePhasesInOrder(t *testing.T) {
	tests := []struct {
		name       string
		occupation types.Occupation
		skills     []string
	}{
		{"populated occupation", dataAnalyst(), []string{"python", "sql"}},
		{"empty occupation", types.Occupation{Name: "Mystery"}, nil},
		{"no matching skills", dataAnalyst(), []string{"welding"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, f := range types.Focuses {
				rm := New(WithSeed(1)).Synthesize(tt.occupation, tt.skills, f)
				assert.Equal(t, phaseTitles, titles(rm.Steps))
				assert.Equal(t, tt.occupation.Name, rm.PathTitle)
				assert.Equal(t, f, rm.Focus)
				assert.Equal(t, 0.8, rm.ConfidenceScore)
			}
		})
	}
}

func TestSynthesize_CoreSkills(t *testing.T) {
	rm := New(WithSeed(1)).Synthesize(dataAnalyst(), []string{"python", "sql"}, types.FocusTransition)
	core := rm.Steps[1]

	assert.Equal(t, "Master essential skills for Data Analyst", core.Objective)
	assert.Equal(t, []string{"python", "sql"}, core.Prerequisites)
	assert.Equal(t, 2, core.DurationMonths)
	require.Equal(t, []string{"Data Visualization Proficiency", "Pandas Proficiency"}, titles(core.Children))

	first := core.Children[0]
	assert.Equal(t, []string{"python", "sql"}, first.Prerequisites, "first sub-step inherits known skills")
	assert.Equal(t, []string{"Practice data visualization fundamentals", "Apply data visualization in small scenarios"}, first.Tasks)
	assert.Equal(t, []string{"Data Visualization Resources"}, first.Resources)

	second := core.Children[1]
	assert.Empty(t, second.Prerequisites)
	assert.NotNil(t, second.Prerequisites)
	assert.Equal(t, []string{"Clean datasets with pandas"}, second.Tasks)
}

func TestSynthesize_CoreSkillsTeachesVocabularyWhenNothingMissing(t *testing.T) {
	o := types.Occupation{Name: "Analyst", Skills: []string{"a", "b", "c", "d", "e", "f"}}
	rm := New().Synthesize(o, o.Skills, types.FocusTransition)
	core := rm.Steps[1]

	assert.Equal(t, []string{"A Proficiency", "B Proficiency", "C Proficiency", "D Proficiency"}, titles(core.Children))
	assert.Equal(t, 4, core.DurationMonths)
	assert.Equal(t, []string{"a", "b"}, core.Children[0].Prerequisites)
}

func TestSynthesize_Prerequisites(t *testing.T) {
	o := types.Occupation{Name: "Engineer", Skills: []string{"go", "sql", "k8s", "aws", "gcp"}}
	rm := New(WithSeed(7)).Synthesize(o, []string{"sql"}, types.FocusDepth)

	practical := rm.Steps[2]
	assert.Equal(t, []string{"sql"}, practical.Prerequisites)
	assert.Equal(t, []string{"sql", "go", "k8s"}, practical.Children[0].Prerequisites)
	assert.Equal(t, []string{"sql", "go", "k8s", "aws"}, practical.Children[1].Prerequisites)

	spec := rm.Steps[3]
	assert.Empty(t, spec.Prerequisites)
	assert.Equal(t, []string{"sql", "go", "k8s"}, spec.Children[0].Prerequisites)

	launch := rm.Steps[4]
	assert.Empty(t, launch.Prerequisites)
	assert.Equal(t, []string{"Tailor resume for Engineer", "Highlight key skills: go, k8s, aws"}, launch.Children[0].Tasks)
	assert.Equal(t, []string{"Identify top companies for Engineer", "Prepare for interviews"}, launch.Children[1].Tasks)
}

func TestSynthesize_EmptyOccupationPlaceholders(t *testing.T) {
	rm := New().Synthesize(types.Occupation{Name: "Mystery"}, []string{"python"}, types.FocusDepth)

	fundamentals := rm.Steps[0].Children[0]
	assert.Equal(t, []string{
		"Study fundamental concept 1", "Study fundamental concept 2", "Study fundamental concept 3",
		"Study fundamental concept 4", "Study fundamental concept 5",
	}, fundamentals.Tasks)

	core := rm.Steps[1]
	assert.Empty(t, core.Children)
	assert.Equal(t, 3, core.DurationMonths, "max(2, 0) plus the Depth month")

	capstone := rm.Steps[2].Children[1]
	require.Len(t, capstone.Tasks, 7)
	assert.Equal(t, "Define advanced project requirements", capstone.Tasks[0])
	assert.Equal(t, "Implement advanced feature 5", capstone.Tasks[6])

	assert.Equal(t, "Highlight key skills: ", rm.Steps[4].Children[0].Tasks[1])
}

func TestSynthesize_SamplingWithoutReplacement(t *testing.T) {
	o := dataAnalyst()
	rm := New(WithSeed(3)).Synthesize(o, nil, types.FocusDepth)

	project := rm.Steps[2].Children[0]
	require.Len(t, project.Tasks, 6)
	assert.Equal(t, []string{"Select a real-world problem to solve", "Plan the solution"}, project.Tasks[:2])
	sampled := project.Tasks[2:]
	assert.Subset(t, o.Tasks, sampled)
	assert.Len(t, unique(sampled), 4)

	// Fewer tasks than requested samples them all
	small := types.Occupation{Name: "Small", Tasks: []string{"only task"}}
	rm = New().Synthesize(small, nil, types.FocusDepth)
	assert.Equal(t, []string{"only task"}, rm.Steps[3].Children[0].Tasks)
}

func TestSynthesize_FocusIsolation(t *testing.T) {
	roadmaps := New(WithSeed(11)).SynthesizeAll(dataAnalyst(), []string{"python"})
	require.Len(t, roadmaps, 3)

	base := New(WithSeed(11)).Synthesize(dataAnalyst(), []string{"python"}, types.Focus("none"))
	adjusted := map[types.Focus]int{
		types.FocusDepth:      1,
		types.FocusFastEntry:  2,
		types.FocusTransition: 4,
	}

	for i, rm := range roadmaps {
		assert.Equal(t, types.Focuses[i], rm.Focus)
		for p := range rm.Steps {
			want := base.Steps[p].DurationMonths
			if p == adjusted[rm.Focus] {
				want++
			}
			assert.Equal(t, want, rm.Steps[p].DurationMonths, "%s phase %d", rm.Focus, p)
			assert.Equal(t, structure(base.Steps[p]), structure(rm.Steps[p]))
		}
	}
}

func TestSynthesize_SeedIsReproducible(t *testing.T) {
	a := New(WithSeed(42)).SynthesizeAll(dataAnalyst(), []string{"sql"})
	b := New(WithSeed(42)).SynthesizeAll(dataAnalyst(), []string{"sql"})
	assert.Equal(t, a, b)
}

func TestSynthesize_NotBeginner(t *testing.T) {
	rm := New(WithBeginner(false)).Synthesize(dataAnalyst(), nil, types.FocusDepth)
	assert.Equal(t, 0, rm.Steps[0].DurationMonths)
	assert.Empty(t, rm.Steps[0].Children)
	assert.Equal(t, phaseTitles, titles(rm.Steps))
}

func TestSynthesize_NoAliasing(t *testing.T) {
	o := dataAnalyst()
	rm := New().Synthesize(o, []string{"python"}, types.FocusDepth)
	rm.Steps[2].Children[0].Prerequisites[0] = "mutated"
	assert.Equal(t, "python", rm.Steps[2].Children[1].Prerequisites[0])
	assert.Equal(t, "python", rm.Steps[1].Prerequisites[0])
	assert.Equal(t, "python", o.Skills[0])
}

// structure renders titles, prerequisites and child shape, ignoring durations
// and sampled tasks.
func structure(s types.RoadmapStep) string {
	out := fmt.Sprintf("%s%v[", s.Title, s.Prerequisites)
	for _, c := range s.Children {
		out += structure(c)
	}
	return out + "]"
}

func unique(values []string) map[string]struct{} {
	m := make(map[string]struct{}, len(values))
	for _, v := range values {
		m[v] = struct{}{}
	}
	return m
}

func TestSynthesize_ExpandsAllPlaceholders(t *testing.T) {
	rm := New(WithSeed(3)).Synthesize(dataAnalyst(), []string{"python", "sql"}, types.FocusTransition)

	for i := range rm.Steps {
		rm.Steps[i].Walk(0, func(step *types.RoadmapStep, _ int) {
			fields := append([]string{step.Title, step.Objective}, step.Tasks...)
			fields = append(fields, step.Milestones...)
			fields = append(fields, step.Resources...)
			for _, f := range fields {
				assert.NotContains(t, f, "{", "step %q", step.Title)
			}
		})
	}

	branding := rm.Steps[4].Children[0]
	require.Equal(t, "Professional Branding", branding.Title)
	assert.Contains(t, branding.Tasks, "Tailor resume for Data Analyst")
	assert.Contains(t, branding.Tasks, "Highlight key skills: data visualization, pandas")
}
