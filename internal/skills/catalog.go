package skills

// Category groups related technologies in the skill catalog.
type Category struct {
	Name   string   `json:"name"`
	Skills []string `json:"skills"`
}

// OtherCategory collects skills the catalog does not know.
const OtherCategory = "other"

// Catalog is the read-only technology catalog, in display order.
var Catalog = []Category{
	{Name: "languages", Skills: []string{
		"C#", ".NET", "Java", "Python", "JavaScript", "TypeScript", "Go", "Rust",
		"PHP", "Ruby", "Swift", "Kotlin", "Dart", "C++", "C", "Scala", "R",
	}},
	{Name: "web", Skills: []string{
		"React", "Vue.js", "Angular", "Node.js", "Express.js", "Next.js", "Nuxt.js",
		"ASP.NET Core", "ASP.NET MVC", "Spring Boot", "Django", "Flask", "FastAPI",
		"HTML5", "CSS3", "SASS", "LESS", "Bootstrap", "Tailwind CSS",
	}},
	{Name: "mobile", Skills: []string{
		"Flutter", "React Native", "Xamarin", "Ionic",
		"Android Studio", "Xcode", "Firebase",
	}},
	{Name: "databases", Skills: []string{
		"SQL Server", "PostgreSQL", "MySQL", "MongoDB", "Redis", "ElasticSearch",
		"Oracle", "SQLite", "DynamoDB", "CosmosDB", "Neo4j", "Cassandra",
	}},
	{Name: "cloud", Skills: []string{
		"AWS", "Azure", "Google Cloud", "Docker", "Kubernetes", "Terraform",
		"Jenkins", "GitLab CI", "GitHub Actions", "Ansible", "Vagrant",
	}},
	{Name: "data_ai", Skills: []string{
		"TensorFlow", "PyTorch", "Pandas", "NumPy", "Scikit-learn", "Keras",
		"Apache Spark", "Hadoop", "Tableau", "Power BI", "Jupyter",
	}},
	{Name: "tools", Skills: []string{
		"Git", "Jira", "Confluence", "Figma", "Adobe Creative Suite",
		"Visual Studio", "VS Code", "IntelliJ IDEA", "Postman", "Swagger",
	}},
}

// categoryByKey maps a canonical key to the first category listing it.
var categoryByKey = buildCategoryIndex()

func buildCategoryIndex() map[string]string {
	index := make(map[string]string)
	for _, cat := range Catalog {
		for _, skill := range cat.Skills {
			key := Normalize(skill)
			if _, exists := index[key]; !exists {
				index[key] = cat.Name
			}
		}
	}
	return index
}

// CategoryOf returns the catalog category of a skill, or OtherCategory.
func CategoryOf(skill string) string {
	if name, ok := categoryByKey[Normalize(skill)]; ok {
		return name
	}
	return OtherCategory
}

// Categorize groups skills by catalog category, keeping input order within each group.
func Categorize(skills []string) map[string][]string {
	groups := make(map[string][]string)
	for _, skill := range skills {
		name := CategoryOf(skill)
		groups[name] = append(groups[name], skill)
	}
	return groups
}

// CatalogSize returns the number of catalog entries.
func CatalogSize() int {
	n := 0
	for _, cat := range Catalog {
		n += len(cat.Skills)
	}
	return n
}
