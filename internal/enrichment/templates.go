package enrichment

// Education levels, lowest first.
const (
	HighSchool  = "high_school"
	Certificate = "certificate"
	Associate   = "associate"
	Bachelor    = "bachelor"
	Master      = "master"
	PhD         = "phd"
)

// maxTasks caps the regenerated task list.
const maxTasks = 8

// templatesPerLevel is how many templates each recommended level contributes.
const templatesPerLevel = 2

// taskTemplates are formatted with {career} and {skill}.
var taskTemplates = map[string][]string{
	HighSchool: {
		"Learn basic {skill} concepts using short online courses and tutorials",
		"Build 1-2 small, demonstrative projects relevant to {career}",
		"Document your learning in a simple portfolio or blog",
		"Apply for internships or assistant roles to gain hands-on experience",
	},
	Certificate: {
		"Complete a vocational certificate focused on {skill} or tools used in {career}",
		"Create a practical project that demonstrates applied {skill}",
		"Join local/online communities for practical advice and networking",
		"Prepare a clear CV and start applying to entry-level professional roles",
	},
	Associate: {
		"Finish an associate program with practical labs or apprenticeships",
		"Complete an internship and collect employer references",
		"Deliver a project showing applied {skill} in a real context",
		"Apply to technician or junior specialist roles directly related to {career}",
	},
	Bachelor: {
		"Graduate a bachelor’s degree or equivalent in a relevant discipline",
		"Lead a capstone or team project solving a realistic problem in {career}",
		"Intern or co-op with industry partners to build professional experience",
		"Publish or present your project work on a portfolio or site",
	},
	Master: {
		"Undertake advanced coursework or a master’s specialization relevant to {career}",
		"Lead complex applied projects or supervised research using {skill}",
		"Mentor junior peers and document advanced workflows",
		"Target specialist or leadership roles and craft a research/experience summary",
	},
	PhD: {
		"Conduct original research that advances knowledge related to {career}",
		"Publish findings and present at conferences or professional events",
		"Teach or supervise to develop academic leadership skills",
		"Lead multi-year projects or labs and pursue high-level roles in research or industry",
	},
}

// educationRule recommends levels when any keyword occurs in the joined skills.
type educationRule struct {
	keywords []string
	levels   []string
}

var educationRules = []educationRule{
	{keywords: []string{"research", "analysis", "algorithm", "machine", "scientific", "statistics"}, levels: []string{Bachelor, Master}},
	{keywords: []string{"teacher", "education", "instruct", "training"}, levels: []string{Bachelor, Certificate}},
	{keywords: []string{"weld", "machin", "operator", "repair", "maintenance", "assembly"}, levels: []string{Certificate, Associate}},
}

var defaultEducation = []string{Certificate, Bachelor}
