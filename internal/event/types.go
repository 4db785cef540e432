// internal/event/types.go
package event

const (
	RoundStarted       EventType = "round_started"        // Новый раунд, поверхность построена
	GuessScored        EventType = "guess_scored"         // Догадка оценена
	GameOver           EventType = "game_over"            // Три раунда сыграны
	GameRestarted      EventType = "game_restarted"       // Игра начата заново
	SurfaceBuildFailed EventType = "surface_build_failed" // Поверхность не построилась
	TextureResolved    EventType = "texture_resolved"     // Текстура загружена или заменена заглушкой
)

// All перечисляет все типы событий игры.
var All = []EventType{RoundStarted, GuessScored, GameOver, GameRestarted, SurfaceBuildFailed, TextureResolved}
