package ingestion

import (
	"os"
	"path/filepath"
	"strings"
)

// O*NET text release file names.
const (
	onetSkillsFile = "Skills.txt"
	onetTasksFile  = "Task Statements.txt"
)

// LoadONET reads skills and task statements from an O*NET text release.
// Either file may be absent. Occupations appear in first-seen order, skills
// are lower-cased and sorted, tasks keep file order without repeats.
func LoadONET(dir string) ([]Entry, error) {
	acc := newONETAccumulator()

	skillsPath := filepath.Join(dir, onetSkillsFile)
	if exists(skillsPath) {
		t, err := readTable(skillsPath, '\t')
		if err != nil {
			return nil, &Error{Source: skillsPath, Message: "failed to read skills", Cause: err}
		}
		occCol := t.orDefault(t.columnContaining("Occupation", "Title"), 0)
		skillCol := t.orDefault(t.columnContaining("Element Name", "Skill"), -1)
		for _, row := range t.rows {
			occ, skill := cell(row, occCol), strings.ToLower(cell(row, skillCol))
			if occ == "" || skill == "" {
				continue
			}
			acc.entry(occ).skills[skill] = struct{}{}
		}
	}

	tasksPath := filepath.Join(dir, onetTasksFile)
	if exists(tasksPath) {
		t, err := readTable(tasksPath, '\t')
		if err != nil {
			return nil, &Error{Source: tasksPath, Message: "failed to read task statements", Cause: err}
		}
		occCol := t.orDefault(t.columnContaining("Occupation", "Title"), 0)
		// "Task ID" precedes "Task" in the release layout.
		taskCol := t.column("Task")
		if taskCol < 0 {
			taskCol = t.orDefault(t.columnContaining("Task"), -1)
		}
		for _, row := range t.rows {
			occ, task := cell(row, occCol), cell(row, taskCol)
			if occ == "" || task == "" {
				continue
			}
			acc.entry(occ).addTask(task)
		}
	}

	return acc.entries(), nil
}

type onetOccupation struct {
	skills    map[string]struct{}
	tasks     []string
	seenTasks map[string]struct{}
}

func (o *onetOccupation) addTask(task string) {
	if _, ok := o.seenTasks[task]; ok {
		return
	}
	o.seenTasks[task] = struct{}{}
	o.tasks = append(o.tasks, task)
}

type onetAccumulator struct {
	order []string
	byOcc map[string]*onetOccupation
}

func newONETAccumulator() *onetAccumulator {
	return &onetAccumulator{byOcc: make(map[string]*onetOccupation)}
}

func (a *onetAccumulator) entry(name string) *onetOccupation {
	if o, ok := a.byOcc[name]; ok {
		return o
	}
	o := &onetOccupation{skills: make(map[string]struct{}), seenTasks: make(map[string]struct{})}
	a.byOcc[name] = o
	a.order = append(a.order, name)
	return o
}

func (a *onetAccumulator) entries() []Entry {
	out := make([]Entry, 0, len(a.order))
	for _, name := range a.order {
		o := a.byOcc[name]
		out = append(out, Entry{Name: name, Skills: sortedKeys(o.skills), Tasks: o.tasks})
	}
	return out
}

func exists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
