package domain

type Kind string

const (
	KindMarkdown Kind = "markdown"
	KindPDF      Kind = "pdf"
	KindExternal Kind = "external"
)

// ItemRef is the resolved location of a rated item inside the vault.
type ItemRef struct {
	ID     string
	Title  string
	PoolID string
	Path   string
}

type Page struct {
	Number int
	Text   string
}

// Document is a loaded preview: the frontmatter-stripped body of a note,
// or one page of text extracted from a PDF attachment.
type Document struct {
	ItemID     string
	Title      string
	Kind       Kind
	Body       string
	Page       int
	TotalPages int
	Path       string
}
