package roadmap

import "github.com/jonathan/career-roadmap/internal/types"

// prereqRule selects the skills a step lists as prerequisites.
type prereqRule struct {
	known   bool // every known skill
	missing int  // the first n missing skills
}

// stepTemplate describes one step of a plan tree. Its strings may reference
// {career}, {top_skills} (the first taught skills, comma separated), and in
// the per-skill template {skill} and {Skill} (title case).
type stepTemplate struct {
	title      string
	objective  string
	months     int
	prereqs    prereqRule
	milestones []string
	resources  []string
	tasks      []string

	// sample tasks drawn from the occupation, appended after tasks.
	// samplePrefix names the placeholders used when it has none.
	sample       int
	samplePrefix string
}

// phaseTemplate describes one top-level phase.
type phaseTemplate struct {
	stepTemplate
	children []stepTemplate

	// skillChildren generates one child per taught skill from skillTemplate.
	skillChildren bool
	// monthsPerChild raises months to at least the number of children.
	monthsPerChild bool
	// beginnerOnly phases have zero months and no children outside beginner mode.
	beginnerOnly bool
}

const (
	maxTaughtSkills   = 4
	maxRelatedTasks   = 3
	firstChildPrereqs = 2
	brandingSkills    = 3
	confidenceScore   = 0.8
	focusExtraMonths  = 1
)

// phases are the five top-level phases in output order.
var phases = []phaseTemplate{
	{
		stepTemplate: stepTemplate{
			title:      "Foundations",
			objective:  "Build essential groundwork for your career",
			months:     1,
			milestones: []string{"Complete foundation modules", "Set up workspace"},
			resources:  []string{"Standard Industry Tools"},
			tasks:      []string{"Set up your learning workspace", "Create a study schedule", "Join relevant online communities"},
		},
		beginnerOnly: true,
		children: []stepTemplate{
			{
				title:        "Industry Fundamentals",
				objective:    "Understand the core concepts of {career}",
				months:       1,
				milestones:   []string{"Complete introductory course", "Learn industry terminology", "Understand role responsibilities"},
				resources:    []string{"Online Courses", "Industry Glossaries", "Career Guides"},
				sample:       5,
				samplePrefix: "Study fundamental concept",
			},
			{
				title:      "Tools & Environment",
				objective:  "Set up your professional workspace",
				months:     1,
				milestones: []string{"Install necessary software", "Configure development/work environment", "Join professional communities"},
				resources:  []string{"Official Documentation", "Community Forums"},
				tasks:      []string{"Research standard tools for {career}", "Install primary software tools", "Create account on professional networks"},
			},
		},
	},
	{
		stepTemplate: stepTemplate{
			title:      "Core Skills Development",
			objective:  "Master essential skills for {career}",
			months:     2,
			prereqs:    prereqRule{known: true},
			milestones: []string{"Complete all core skill modules", "Pass skill assessments"},
			resources:  []string{"Online Learning Platforms"},
			tasks:      []string{"Create a skills tracking spreadsheet", "Set up practice projects", "Find a mentor"},
		},
		skillChildren:  true,
		monthsPerChild: true,
	},
	{
		stepTemplate: stepTemplate{
			title:      "Practical Application",
			objective:  "Gain hands-on experience through projects or simulations",
			prereqs:    prereqRule{known: true},
			milestones: []string{"Complete 2 major projects", "Build portfolio"},
			resources:  []string{"Portfolio Platform"},
			tasks:      []string{"Research industry standard projects", "Document process and outcomes"},
		},
		monthsPerChild: true,
		children: []stepTemplate{
			{
				title:        "Applied Practice Project",
				objective:    "Apply core skills in a realistic scenario",
				months:       2,
				prereqs:      prereqRule{known: true, missing: 2},
				milestones:   []string{"Design project scope", "Implement core features", "Document results"},
				resources:    []string{"Project Management Tools", "Documentation Tools"},
				tasks:        []string{"Select a real-world problem to solve", "Plan the solution"},
				sample:       4,
				samplePrefix: "Implement basic feature",
			},
			{
				title:        "Advanced Capstone",
				objective:    "Demonstrate comprehensive mastery",
				months:       2,
				prereqs:      prereqRule{known: true, missing: 3},
				milestones:   []string{"Complete complex project", "Peer review", "Final presentation"},
				resources:    []string{"Advanced Tools"},
				tasks:        []string{"Define advanced project requirements", "Plan the capstone milestones"},
				sample:       5,
				samplePrefix: "Implement advanced feature",
			},
		},
	},
	{
		stepTemplate: stepTemplate{
			title:      "Specialization",
			objective:  "Develop expertise in specific areas",
			months:     2,
			milestones: []string{"Choose specialization", "Achieve advanced competency"},
			resources:  []string{"Industry Certifications"},
			tasks:      []string{"Research trending specializations in {career}", "Select a niche"},
		},
		children: []stepTemplate{
			{
				title:        "Specialization Track",
				objective:    "Deep dive into a specific area",
				months:       2,
				prereqs:      prereqRule{known: true, missing: 2},
				milestones:   []string{"Complete specialization course", "Advanced certification", "Master advanced concepts"},
				resources:    []string{"Specialized Training"},
				sample:       4,
				samplePrefix: "Study advanced topic",
			},
		},
	},
	{
		stepTemplate: stepTemplate{
			title:      "Career Launch",
			objective:  "Land your first role in the field",
			milestones: []string{"Complete branding", "Secure job offer"},
			resources:  []string{"Job Search Platforms"},
			tasks:      []string{"Develop job search strategy", "Practice interview questions"},
		},
		monthsPerChild: true,
		children: []stepTemplate{
			{
				title:      "Professional Branding",
				objective:  "Create compelling professional presence",
				months:     1,
				milestones: []string{"Update resume", "Optimize professional profile", "Build portfolio"},
				resources:  []string{"LinkedIn", "Resume Builder"},
				tasks:      []string{"Tailor resume for {career}", "Highlight key skills: {top_skills}"},
			},
			{
				title:      "Job Search Strategy",
				objective:  "Execute systematic job search",
				months:     1,
				milestones: []string{"Apply to positions", "Network", "Interview prep"},
				resources:  []string{"Job Boards", "Networking Events"},
				tasks:      []string{"Identify top companies for {career}", "Prepare for interviews"},
			},
		},
	},
}

// skillTemplate is the Core Skills child built for each taught skill. Its
// tasks come from related occupation tasks, else practiceTasks.
var skillTemplate = stepTemplate{
	title:      "{Skill} Proficiency",
	objective:  "Develop proficiency in {skill}",
	months:     2,
	milestones: []string{"Complete {skill} course", "Demonstrate {skill} usage", "Pass {skill} quiz"},
	resources:  []string{"{Skill} Resources"},
}

var practiceTasks = []string{"Practice {skill} fundamentals", "Apply {skill} in small scenarios"}

// focusPhase maps each focus to the index of the phase that gains a month.
var focusPhase = map[types.Focus]int{
	types.FocusDepth:      1, // Core Skills Development
	types.FocusFastEntry:  2, // Practical Application
	types.FocusTransition: 4, // Career Launch
}
