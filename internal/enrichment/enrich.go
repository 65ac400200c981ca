// Package enrichment fills in descriptions, education levels and tasks for a
// careers file. Output depends only on the input, so reruns are stable.
package enrichment

import (
	"crypto/sha256"
	"encoding/binary"
	"fmt"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/jonathan/career-roadmap/internal/types"
)

// Enrich returns a copy of occ with a description, recommended education
// levels (kept when already present) and a regenerated task list.
func Enrich(occ types.Occupation) types.Occupation {
	out := occ
	skills := cleanSkills(occ.Skills)

	out.Description = Describe(occ.Name, skills, occ.Description)
	if len(occ.Education) == 0 {
		out.Education = RecommendEducation(skills)
	} else {
		out.Education = append([]string(nil), occ.Education...)
	}
	out.Tasks = Tasks(occ.Name, skills, out.Education)
	return out
}

// RecommendEducation maps skill keywords to education levels.
func RecommendEducation(skills []string) []string {
	joined := strings.ToLower(strings.Join(skills, " "))
	for _, rule := range educationRules {
		for _, kw := range rule.keywords {
			if strings.Contains(joined, kw) {
				return append([]string(nil), rule.levels...)
			}
		}
	}
	return append([]string(nil), defaultEducation...)
}

// Describe keeps a non-blank existing description, otherwise writes one from
// the occupation's skills.
func Describe(career string, skills []string, existing string) string {
	if strings.TrimSpace(existing) != "" {
		return existing
	}
	primary := primarySkill(skills, career)
	if len(skills) > 0 {
		top := skills
		if len(top) > 4 {
			top = top[:4]
		}
		return fmt.Sprintf("%s typically involves working with %s and applying %s to deliver job outcomes.",
			capitalize(career), strings.Join(top, ", "), primary)
	}
	return fmt.Sprintf("%s focuses on %s and related skills to achieve role objectives.", capitalize(career), primary)
}

// Tasks picks templates for each education level by a hash of the career,
// appends general tasks and keeps at most maxTasks unique entries.
func Tasks(career string, skills, education []string) []string {
	primary := primarySkill(skills, career)
	replacer := strings.NewReplacer("{career}", career, "{skill}", primary)

	var candidates []string
	for _, level := range education {
		templates := taskTemplates[level]
		for i := 0; i < templatesPerLevel && i < len(templates); i++ {
			t := deterministicChoice(templates, career+level+strconv.Itoa(i))
			candidates = append(candidates, replacer.Replace(t))
		}
	}
	candidates = append(candidates,
		"Build a public portfolio showcasing projects related to "+career,
		"Connect with professionals in the field and request informational interviews",
		"Set short-term learning goals and review progress every month",
	)

	seen := make(map[string]struct{}, len(candidates))
	out := make([]string, 0, maxTasks)
	for _, t := range candidates {
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
		if len(out) >= maxTasks {
			break
		}
	}
	return out
}

func deterministicChoice(items []string, key string) string {
	if len(items) == 0 {
		return ""
	}
	sum := sha256.Sum256([]byte(key))
	idx := binary.LittleEndian.Uint32(sum[:4]) % uint32(len(items))
	return items[idx]
}

// primarySkill is the first skill of at most three words, else the first
// skill, else the first career word longer than two characters.
func primarySkill(skills []string, career string) string {
	if len(skills) == 0 {
		for _, tok := range strings.Fields(career) {
			if utf8.RuneCountInString(tok) > 2 {
				return strings.ToLower(tok)
			}
		}
		return "core skills"
	}
	for _, s := range skills {
		if len(strings.Fields(s)) <= 3 {
			return s
		}
	}
	return skills[0]
}

func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if size == 0 {
		return s
	}
	return string(unicode.ToUpper(r)) + strings.ToLower(s[size:])
}

func cleanSkills(skills []string) []string {
	out := make([]string, 0, len(skills))
	for _, s := range skills {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
