package dto

type PoolOutput struct {
	ID        string
	Name      string
	Folder    string
	Property  string
	ItemCount int
}

type ItemOutput struct {
	ID           string
	DisplayName  string
	Rating       float64
	GamesPlayed  int
	PoolID       string
	LastCompared string
}
