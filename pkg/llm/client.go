package llm

type ArticleInput struct {
	FullName    string
	Pronouns    string
	Subject     string
	Story       string
	ArticleType string
}

type GeneratedArticle struct {
	Title         string
	Content       []string
	ModelUsed     string
	PromptVersion string
}

type Generator interface {
	Generate(input ArticleInput) (*GeneratedArticle, error)
	Revise(title string, content []string, notes string) (*GeneratedArticle, error)
}
