package dto

type RecordInput struct {
	PoolID string
	ItemA  string
	ItemB  string
	Score  float64
	At     int64
}

type RebuildInput struct {
	PoolID string
	Events []RecordInput
}

type RivalryOutput struct {
	PoolID string `json:"pool_id"`
	ItemA  string `json:"item_a"`
	ItemB  string `json:"item_b"`
	LabelA string `json:"label_a"`
	LabelB string `json:"label_b"`
	WinsA  int    `json:"wins_a"`
	WinsB  int    `json:"wins_b"`
	Draws  int    `json:"draws"`
	Total  int    `json:"total"`
	LastAt int64  `json:"last_at"`
}

type PathNodeOutput struct {
	ItemID string `json:"item_id"`
	Label  string `json:"label"`
}

type BeatPathOutput struct {
	PoolID string           `json:"pool_id"`
	FromID string           `json:"from_id"`
	ToID   string           `json:"to_id"`
	Found  bool             `json:"found"`
	Nodes  []PathNodeOutput `json:"nodes"`
}
