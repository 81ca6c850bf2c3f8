package model

type PhotoResponse struct {
	Status  int             `json:"status"`
	Message string          `json:"message"`
	Photo   *AssembledPhoto `json:"photo"`
	// Partial выставляется, когда запись альбома или пересортировка
	// завершились с ошибкой, а фотография уже записана
	Partial  bool     `json:"partial,omitempty"`
	Warnings []string `json:"warnings,omitempty"`
}

type AlbumResponse struct {
	Status int    `json:"status"`
	Album  *Album `json:"album"`
}

type TagResponse struct {
	Tag    string            `json:"tag"`
	Photos []*AssembledPhoto `json:"photos"`
}

type SetCoverRequest struct {
	PhotoID int64 `json:"photo_id"`
}
