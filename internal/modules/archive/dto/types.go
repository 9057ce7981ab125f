package dto

type EventInput struct {
	At    int64
	ItemA string
	ItemB string
	Score float64
}

type AppendInput struct {
	Pool  string
	Event EventInput
}

type EntryOutput struct {
	ID   string `json:"id"`
	Node string `json:"node"`
	At   int64  `json:"at"`
	Pool string `json:"pool"`
}

type StatsOutput struct {
	Pool       string         `json:"pool"`
	EntryCount int            `json:"entry_count"`
	Nodes      []string       `json:"nodes"`
	FirstAt    int64          `json:"first_at"`
	LastAt     int64          `json:"last_at"`
	Games      map[string]int `json:"games"`
}

type ExportInput struct {
	Pool string
	Path string
}

type ExportOutput struct {
	Pool       string `json:"pool"`
	Path       string `json:"path"`
	EntryCount int    `json:"entry_count"`
	Signed     bool   `json:"signed"`
}

type ImportInput struct {
	Path string
}

type ImportOutput struct {
	Pool     string `json:"pool"`
	Imported int    `json:"imported"`
	Skipped  int    `json:"skipped"`
}

type EventOutput struct {
	At    int64   `json:"t"`
	ItemA string  `json:"a"`
	ItemB string  `json:"b"`
	Score float64 `json:"s"`
}
