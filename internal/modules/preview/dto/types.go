package dto

type LoadInput struct {
	PoolID string
	ItemID string
	Mode   string
	Page   int
}

type DocumentOutput struct {
	ItemID     string
	Title      string
	Kind       string
	Page       int
	TotalPages int
	Content    string
	Path       string
}

type OpenExternalInput struct {
	PoolID string
	ItemID string
}

type OpenExternalOutput struct {
	ItemID string
	Target string
}
