package taxonomy

// Bundled equivalence tables. Keys and values are normalized at load time,
// so mixed casing here is harmless. Synonyms score as near-equivalent;
// related skills carry the related discount.

var skillSynonyms = map[string][]string{
	"javascript":            {"js", "es6", "node.js", "nodejs"},
	"python":                {"py", "django", "flask", "fastapi"},
	"java":                  {"spring", "spring boot"},
	"c#":                    {"csharp", "dotnet", ".net", "asp.net"},
	"c++":                   {"cpp"},
	"typescript":            {"ts"},
	"react":                 {"reactjs"},
	"angular":               {"angularjs", "ng"},
	"vue":                   {"vuejs"},
	"node":                  {"nodejs", "node.js"},
	"sql":                   {"mysql", "postgresql", "postgres", "oracle", "mssql", "t-sql"},
	"nosql":                 {"mongodb", "cassandra", "redis", "dynamo", "elasticsearch"},
	"mongodb":               {"mongo"},
	"postgresql":            {"postgres", "psql"},
	"mysql":                 {"mariadb"},
	"aws":                   {"amazon web services"},
	"gcp":                   {"google cloud", "google cloud platform"},
	"azure":                 {"microsoft azure"},
	"docker":                {"containerization", "containers"},
	"kubernetes":            {"k8s"},
	"git":                   {"github", "gitlab", "bitbucket"},
	"ci/cd":                 {"continuous integration", "continuous deployment", "jenkins", "gitlab ci", "github actions"},
	"devops":                {"infrastructure as code", "iac"},
	"testing":               {"jest", "mocha", "pytest", "unittest", "jasmine"},
	"html":                  {"html5"},
	"css":                   {"scss", "sass", "less"},
	"rest":                  {"restful", "rest api"},
	"graphql":               {"gql"},
	"api":                   {"web api", "rest api"},
	"machine learning":      {"ml", "deep learning", "ai", "artificial intelligence"},
	"tensorflow":            {"tf"},
	"pytorch":               {"torch"},
	"data science":          {"data analysis", "analytics"},
	"scikit-learn":          {"sklearn"},
	"excel":                 {"spreadsheet"},
	"tableau":               {"data visualization"},
	"power bi":              {"powerbi", "business intelligence", "bi"},
	"agile":                 {"scrum", "kanban"},
	"linux":                 {"unix"},
	"windows":               {"windows server"},
	"macos":                 {"mac os", "osx"},
	"go":                    {"golang"},
	"ruby":                  {"rails", "ruby on rails"},
	"php":                   {"laravel", "symfony"},
	"r":                     {"r programming"},
	"salesforce":            {"sfdc"},
	"oracle":                {"oracle database"},
	"communication":         {"interpersonal", "soft skills", "presentation"},
	"leadership":            {"management", "team management"},
	"project management":    {"pm", "pmp"},
	"problem solving":       {"analytical thinking"},
	"attention to detail":   {"detail-oriented"},
	"time management":       {"deadline-driven"},
	"collaboration":         {"teamwork", "cooperation"},
	"aws s3":                {"s3"},
	"aws lambda":            {"lambda"},
	"aws rds":               {"rds"},
	"aws ec2":               {"ec2"},
	"microservices":         {"microservice architecture"},
	"rest api":              {"rest", "restful"},
	"messaging":             {"rabbitmq", "kafka", "activemq"},
	"rabbitmq":              {"amqp"},
	"redis":                 {"caching", "cache"},
	"memcached":             {"caching"},
	"elasticsearch":         {"search"},
	"neo4j":                 {"graph database"},
	"dynamodb":              {"nosql", "dynamo"},
	"html/css":              {"html", "css"},
	"javascript/typescript": {"js", "ts"},
}

var skillRelations = map[string][]string{
	"javascript":       {"typescript", "node.js", "react", "angular", "vue", "html", "css"},
	"python":           {"django", "flask", "fastapi", "data science", "machine learning"},
	"java":             {"spring", "spring boot", "microservices", "android"},
	"react":            {"javascript", "typescript", "html", "css", "webpack"},
	"angular":          {"typescript", "javascript", "html", "css", "rxjs"},
	"vue":              {"javascript", "typescript", "html", "css"},
	"node.js":          {"javascript", "typescript", "rest api", "express", "mongodb"},
	"aws":              {"devops", "docker", "kubernetes", "ci/cd", "terraform"},
	"docker":           {"kubernetes", "devops", "ci/cd"},
	"kubernetes":       {"docker", "devops", "microservices"},
	"machine learning": {"python", "data science", "tensorflow", "pytorch"},
	"data science":     {"python", "sql", "machine learning", "pandas", "numpy"},
	"devops":           {"docker", "kubernetes", "ci/cd", "aws", "linux"},
	"sql":              {"database", "nosql", "postgresql", "mysql"},
	"rest api":         {"api", "json", "http", "web services"},
	"microservices":    {"docker", "kubernetes", "api", "message queues"},
	"testing":          {"javascript", "python", "java", "ci/cd"},
	"git":              {"github", "gitlab", "version control"},
	"linux":            {"devops", "aws", "docker", "kubernetes"},
}
