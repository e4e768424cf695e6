package extract

// Vocabulary is the curated skill list postings are matched against. Synonyms
// are lowercase; keep them specific enough that substring matching stays
// honest (short tokens like "r" need a qualifier).
var Vocabulary = []Skill{
	// Languages
	{Name: "Python", Synonyms: []string{"python"}},
	{Name: "SQL", Synonyms: []string{"sql"}},
	{Name: "Java", Synonyms: []string{"java "}},
	{Name: "Scala", Synonyms: []string{"scala"}},
	{Name: "R", Synonyms: []string{"r programming", "rstudio", "r-studio"}},
	{Name: "JavaScript", Synonyms: []string{"javascript", "typescript", "node.js", "nodejs"}},
	{Name: "Go", Synonyms: []string{"golang", "go developer"}},

	// Cloud platforms
	{Name: "AWS", Synonyms: []string{"aws", "amazon web services", "s3", "ec2", "lambda", "redshift"}},
	{Name: "GCP", Synonyms: []string{"gcp", "google cloud", "bigquery"}},
	{Name: "Azure", Synonyms: []string{"azure"}},

	// Infrastructure
	{Name: "Docker", Synonyms: []string{"docker", "container"}},
	{Name: "Kubernetes", Synonyms: []string{"kubernetes", "k8s"}},
	{Name: "Terraform", Synonyms: []string{"terraform"}},
	{Name: "Linux", Synonyms: []string{"linux", "unix"}},
	{Name: "Git", Synonyms: []string{"git ", "github", "gitlab"}},
	{Name: "CI/CD", Synonyms: []string{"ci/cd", "continuous integration", "continuous delivery", "jenkins"}},

	// Data stack
	{Name: "Spark", Synonyms: []string{"spark", "pyspark"}},
	{Name: "Hadoop", Synonyms: []string{"hadoop"}},
	{Name: "Airflow", Synonyms: []string{"airflow"}},
	{Name: "dbt", Synonyms: []string{"dbt"}},
	{Name: "Kafka", Synonyms: []string{"kafka"}},
	{Name: "Snowflake", Synonyms: []string{"snowflake"}},
	{Name: "Databricks", Synonyms: []string{"databricks"}},
	{Name: "NoSQL", Synonyms: []string{"nosql", "dynamodb", "cassandra"}},
	{Name: "MongoDB", Synonyms: []string{"mongodb", "mongo"}},
	{Name: "Elasticsearch", Synonyms: []string{"elasticsearch", "elastic search", "opensearch"}},

	// ML
	{Name: "Machine Learning", Synonyms: []string{"machine learning", "ml engineer", "ml pipeline"}},
	{Name: "Deep Learning", Synonyms: []string{"deep learning", "neural network"}},
	{Name: "TensorFlow", Synonyms: []string{"tensorflow"}},
	{Name: "PyTorch", Synonyms: []string{"pytorch"}},
	{Name: "MLOps", Synonyms: []string{"mlops", "ml ops"}},

	// Practices
	{Name: "Agile", Synonyms: []string{"agile", "scrum"}},
	{Name: "REST API", Synonyms: []string{"rest api", "restful", "grpc", "graphql"}},
}
