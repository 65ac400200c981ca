// Package roadmap builds multi-phase career plans for a matched occupation.
package roadmap

import (
	"math/rand/v2"
	"slices"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/jonathan/career-roadmap/internal/types"
)

// Synthesizer builds roadmap trees from the static phase templates. Task
// sampling draws from its random source, so a Synthesizer is not safe for
// concurrent use; create one per request.
type Synthesizer struct {
	rng      *rand.Rand
	beginner bool
	caser    cases.Caser
}

// Option configures a Synthesizer
type Option func(*Synthesizer)

// WithSeed makes task sampling reproducible. Seed 0 keeps a random seed.
func WithSeed(seed uint64) Option {
	return func(s *Synthesizer) {
		if seed != 0 {
			s.rng = rand.New(rand.NewPCG(seed, seed))
		}
	}
}

// WithBeginner toggles beginner mode, which gives Foundations its month
// and sub-steps. Beginner mode is on by default.
func WithBeginner(beginner bool) Option {
	return func(s *Synthesizer) {
		s.beginner = beginner
	}
}

// New creates a Synthesizer.
func New(opts ...Option) *Synthesizer {
	s := &Synthesizer{
		rng:      rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
		beginner: true,
		caser:    cases.Title(language.English),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SynthesizeAll returns one roadmap per focus, in types.Focuses order.
func (s *Synthesizer) SynthesizeAll(occupation types.Occupation, skills []string) []types.Roadmap {
	roadmaps := make([]types.Roadmap, 0, len(types.Focuses))
	for _, f := range types.Focuses {
		roadmaps = append(roadmaps, s.Synthesize(occupation, skills, f))
	}
	return roadmaps
}

// Synthesize builds the five-phase roadmap for occupation. It never fails:
// missing skills or tasks degrade to empty lists or placeholder tasks.
func (s *Synthesizer) Synthesize(occupation types.Occupation, skills []string, focus types.Focus) types.Roadmap {
	p := s.newPlan(occupation, skills)

	steps := make([]types.RoadmapStep, 0, len(phases))
	for _, phase := range phases {
		steps = append(steps, p.buildPhase(phase))
	}

	if i, ok := focusPhase[focus]; ok {
		steps[i].DurationMonths += focusExtraMonths
	}

	return types.Roadmap{
		PathTitle:       occupation.Name,
		Focus:           focus,
		ConfidenceScore: confidenceScore,
		Steps:           steps,
	}
}

// plan carries the per-call derived skill lists.
type plan struct {
	s          *Synthesizer
	occupation types.Occupation
	known      []string
	missing    []string
	taught     []string
	replacer   *strings.Replacer
}

func (s *Synthesizer) newPlan(occupation types.Occupation, skills []string) *plan {
	have := make(map[string]struct{}, len(skills))
	for _, sk := range skills {
		have[strings.ToLower(sk)] = struct{}{}
	}

	p := &plan{s: s, occupation: occupation, known: []string{}, missing: []string{}}
	for _, sk := range occupation.Skills {
		sk = strings.ToLower(sk)
		if _, ok := have[sk]; ok {
			p.known = append(p.known, sk)
		} else {
			p.missing = append(p.missing, sk)
		}
	}

	if len(p.missing) > 0 {
		p.taught = head(p.missing, maxTaughtSkills)
	} else {
		p.taught = head(occupation.Skills, maxTaughtSkills)
	}

	p.replacer = strings.NewReplacer(
		"{career}", occupation.Name,
		"{top_skills}", strings.Join(head(p.taught, brandingSkills), ", "),
	)
	return p
}

func (p *plan) buildPhase(phase phaseTemplate) types.RoadmapStep {
	step := p.buildStep(phase.stepTemplate)

	switch {
	case phase.beginnerOnly && !p.s.beginner:
		step.DurationMonths = 0
	case phase.skillChildren:
		for i, sk := range p.taught {
			step.Children = append(step.Children, p.buildSkillStep(sk, i == 0))
		}
	default:
		for _, child := range phase.children {
			step.Children = append(step.Children, p.buildStep(child))
		}
	}

	if phase.monthsPerChild {
		step.DurationMonths = max(step.DurationMonths, len(step.Children))
	}
	return step
}

func (p *plan) buildStep(t stepTemplate) types.RoadmapStep {
	tasks := p.expandAll(t.tasks)
	if t.sample > 0 {
		tasks = append(tasks, p.s.sampleTasks(p.occupation.Tasks, t.sample, t.samplePrefix)...)
	}

	return types.RoadmapStep{
		Title:          p.replacer.Replace(t.title),
		Objective:      p.replacer.Replace(t.objective),
		DurationMonths: t.months,
		Prerequisites:  p.prerequisites(t.prereqs),
		Milestones:     p.expandAll(t.milestones),
		Resources:      p.expandAll(t.resources),
		Tasks:          tasks,
		Children:       []types.RoadmapStep{},
	}
}

func (p *plan) buildSkillStep(skill string, first bool) types.RoadmapStep {
	r := strings.NewReplacer("{skill}", skill, "{Skill}", p.s.caser.String(skill))
	expand := func(values []string) []string {
		out := make([]string, len(values))
		for i, v := range values {
			out[i] = r.Replace(v)
		}
		return out
	}

	tasks := relatedTasks(p.occupation.Tasks, skill, maxRelatedTasks)
	if len(tasks) == 0 {
		tasks = expand(practiceTasks)
	}

	prereqs := []string{}
	if first {
		prereqs = slices.Clone(head(p.known, firstChildPrereqs))
	}

	return types.RoadmapStep{
		Title:          r.Replace(skillTemplate.title),
		Objective:      r.Replace(skillTemplate.objective),
		DurationMonths: skillTemplate.months,
		Prerequisites:  prereqs,
		Milestones:     expand(skillTemplate.milestones),
		Resources:      expand(skillTemplate.resources),
		Tasks:          tasks,
		Children:       []types.RoadmapStep{},
	}
}

func (p *plan) prerequisites(rule prereqRule) []string {
	out := []string{}
	if rule.known {
		out = append(out, p.known...)
	}
	return append(out, head(p.missing, rule.missing)...)
}

func (p *plan) expandAll(values []string) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = p.replacer.Replace(v)
	}
	return out
}

// relatedTasks returns up to n tasks mentioning skill, case-insensitively.
func relatedTasks(tasks []string, skill string, n int) []string {
	needle := strings.ToLower(skill)
	out := []string{}
	for _, t := range tasks {
		if len(out) == n {
			break
		}
		if strings.Contains(strings.ToLower(t), needle) {
			out = append(out, t)
		}
	}
	return out
}

func head(values []string, n int) []string {
	if n < len(values) {
		return values[:n]
	}
	return values
}
