package model

import "time"

// SizeVariant — один из вариантов размера фотографии.
// Ширина и высота отслеживаются только для полного размера.
type SizeVariant struct {
	URL    string `json:"url"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

type Sizes struct {
	Small  SizeVariant `json:"small"`
	Medium SizeVariant `json:"medium"`
	Full   SizeVariant `json:"full"`
}

// Photo — строка таблицы images. Колонки thumb_url/mid_url/image_url
// разложены по вариантам Sizes.
type Photo struct {
	ID          int64
	Date        time.Time
	Description string
	Hidden      bool
	Stream      bool
	Processing  bool
	Sizes       Sizes
}

// AlbumMembership — строка таблицы albums: привязка фотографии к альбому.
// На фотографию приходится не больше одной строки.
type AlbumMembership struct {
	PhotoID  int64  `json:"-"`
	Name     string `json:"name"`
	Position int    `json:"position"`
	Cover    bool   `json:"cover"`
}

// AssembledPhoto — фотография вместе с альбомом и тегами, форма ответа API.
// Никогда не сохраняется; Album == nil значит «без альбома».
type AssembledPhoto struct {
	ID          int64            `json:"id"`
	Hidden      bool             `json:"hidden"`
	OnFrontPage bool             `json:"isOnFrontPage"`
	Processing  bool             `json:"processing"`
	Date        time.Time        `json:"date"`
	Description string           `json:"description"`
	Sizes       Sizes            `json:"sizes"`
	Album       *AlbumMembership `json:"album"`
	Tags        []string         `json:"tags"`
}

type AlbumPhoto struct {
	ID           int64 `json:"id"`
	Hidden       bool  `json:"hidden"`
	IsAlbumCover bool  `json:"isAlbumCover"`
	OnFrontPage  bool  `json:"isOnFrontPage"`
	Position     int   `json:"position"`
	Sizes        Sizes `json:"sizes"`
}

type Album struct {
	Name   string       `json:"album"`
	Size   int          `json:"size"`
	Photos []AlbumPhoto `json:"photos"`
}

// StreamPhoto — элемент ленты главной страницы.
type StreamPhoto struct {
	ID          int64  `json:"id"`
	Album       string `json:"album"`
	OnFrontPage bool   `json:"isOnFrontPage"`
	Position    int    `json:"position"`
	Thumbnail   string `json:"thumbnail"`
}
