package parsing

import (
	"sort"

	"github.com/jonathan/ats-coach/internal/types"
)

// Professions is the read-only catalog of well-known professions.
var Professions = []types.ProfessionProfile{
	{
		Name: "software_engineer", DisplayName: "Software Engineer",
		Keywords:     []string{"software engineer", "software developer"},
		Technologies: []string{".net", "c#", "java", "python", "javascript", "react", "vue", "angular"},
		Description:  "Software development and system design",
	},
	{
		Name: "data_scientist", DisplayName: "Data Scientist",
		Keywords:     []string{"data scientist", "machine learning", "data analyst", "ml engineer"},
		Technologies: []string{"python", "r", "tensorflow", "pytorch", "pandas", "numpy", "scikit-learn"},
		Description:  "Data analysis and machine learning",
	},
	{
		Name: "devops_engineer", DisplayName: "DevOps Engineer",
		Keywords:     []string{"devops", "infrastructure", "cloud engineer", "site reliability", "platform engineer"},
		Technologies: []string{"docker", "kubernetes", "aws", "azure", "terraform", "jenkins", "git"},
		Description:  "Infrastructure and deployment automation",
	},
	{
		Name: "mobile_developer", DisplayName: "Mobile Developer",
		Keywords:     []string{"mobile developer", "ios developer", "android developer", "flutter", "react native"},
		Technologies: []string{"swift", "kotlin", "flutter", "react native", "xamarin", "ionic"},
		Description:  "Mobile application development",
	},
	{
		Name: "frontend_developer", DisplayName: "Frontend Developer",
		Keywords:     []string{"frontend", "front-end", "ui developer", "react developer", "vue developer"},
		Technologies: []string{"html", "css", "javascript", "react", "vue", "angular", "typescript"},
		Description:  "User interface development",
	},
	{
		Name: "backend_developer", DisplayName: "Backend Developer",
		Keywords:     []string{"backend", "back-end", "api developer", "server developer"},
		Technologies: []string{"node.js", ".net", "java", "python", "go", "rust", "postgresql", "mongodb"},
		Description:  "Server-side development",
	},
	{
		Name: "project_manager", DisplayName: "Project Manager",
		Keywords:     []string{"project manager", "scrum master", "program manager"},
		Technologies: []string{"jira", "confluence", "ms project", "agile", "scrum", "kanban"},
		Description:  "Project planning and delivery",
	},
	{
		Name: "business_analyst", DisplayName: "Business Analyst",
		Keywords:     []string{"business analyst", "system analyst", "requirements analyst"},
		Technologies: []string{"sql", "excel", "power bi", "tableau", "visio", "sharepoint"},
		Description:  "Business process analysis and optimization",
	},
	{
		Name: "product_manager", DisplayName: "Product Manager",
		Keywords:     []string{"product manager", "product owner"},
		Technologies: []string{"analytics", "a/b testing", "figma", "miro", "mixpanel", "amplitude"},
		Description:  "Product strategy and development",
	},
	{
		Name: "ui_ux_designer", DisplayName: "UI/UX Designer",
		Keywords:     []string{"ui designer", "ux designer", "product designer", "interaction designer"},
		Technologies: []string{"figma", "sketch", "adobe xd", "principle", "framer", "invision"},
		Description:  "User experience and interface design",
	},
	{
		Name: "graphic_designer", DisplayName: "Graphic Designer",
		Keywords:     []string{"graphic designer", "visual designer", "brand designer"},
		Technologies: []string{"photoshop", "illustrator", "indesign", "after effects", "figma"},
		Description:  "Visual design and brand identity",
	},
	{
		Name: "digital_marketer", DisplayName: "Digital Marketer",
		Keywords:     []string{"digital marketing", "marketing specialist", "growth hacker"},
		Technologies: []string{"google ads", "facebook ads", "google analytics", "hubspot", "mailchimp"},
		Description:  "Digital marketing strategy",
	},
	{
		Name: "sales_manager", DisplayName: "Sales Manager",
		Keywords:     []string{"sales manager", "account manager", "business development"},
		Technologies: []string{"crm", "salesforce", "hubspot", "pipedrive", "excel"},
		Description:  "Sales processes and customer relationships",
	},
	{
		Name: "financial_analyst", DisplayName: "Financial Analyst",
		Keywords:     []string{"financial analyst", "finance manager", "investment analyst"},
		Technologies: []string{"excel", "bloomberg", "sap", "quickbooks", "tableau", "power bi"},
		Description:  "Financial analysis and reporting",
	},
	{
		Name: "accountant", DisplayName: "Accountant",
		Keywords:     []string{"accountant", "bookkeeper", "certified public accountant"},
		Technologies: []string{"excel", "quickbooks", "sap", "logo", "eta", "nebim"},
		Description:  "Accounting and financial records",
	},
	{
		Name: "hr_specialist", DisplayName: "HR Specialist",
		Keywords:     []string{"hr specialist", "human resources", "recruiter", "talent acquisition"},
		Technologies: []string{"workday", "bamboohr", "linkedin recruiter", "applicant tracking"},
		Description:  "Human resources and talent management",
	},
	{
		Name: "consultant", DisplayName: "Consultant",
		Keywords:     []string{"consultant", "advisor", "specialist"},
		Technologies: []string{"excel", "powerpoint", "tableau", "sql"},
		Description:  "Expert advisory services",
	},
}

// ProfessionsByDisplayName returns the catalog sorted by display name.
func ProfessionsByDisplayName() []types.ProfessionProfile {
	out := make([]types.ProfessionProfile, len(Professions))
	copy(out, Professions)
	sort.Slice(out, func(i, j int) bool { return out[i].DisplayName < out[j].DisplayName })
	return out
}

// LookupProfession finds a catalog entry by key.
func LookupProfession(name string) (types.ProfessionProfile, bool) {
	key := NormalizeProfessionName(name)
	for _, p := range Professions {
		if p.Name == key {
			return p, true
		}
	}
	return types.ProfessionProfile{}, false
}
