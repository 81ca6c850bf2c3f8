package shared

import "errors"

// Ошибки уровня хранилища и входных данных. Конкретные ошибки драйвера
// оборачиваются через %w и дополнительно не классифицируются.
var (
	// ErrInvalidInput — вызывающая сторона передала некорректный
	// идентификатор (например, пустое имя альбома)
	ErrInvalidInput = errors.New("invalid input")

	// ErrNotFound — запрос не вернул ни одной строки там, где ожидалась одна
	ErrNotFound = errors.New("not found")

	// ErrStorage — запись затронула не ровно одну строку либо
	// хранилище вернуло аномальный результат
	ErrStorage = errors.New("storage error")
)
