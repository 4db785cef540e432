package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/hjson/hjson-go"
)

// Settings - параметры запуска, которые можно переопределить файлом HJSON.
// Правила игры (число раундов, очки за раунд) здесь не настраиваются.
type Settings struct {
	Width      int     `json:"width"`
	Height     int     `json:"height"`
	Range      float64 `json:"range"`
	Resolution int     `json:"resolution"`
	Texture    string  `json:"texture"`
	Seed       int64   `json:"seed"`
	DiagAddr   string  `json:"diag-addr"`
	ShowDebug  bool    `json:"show-debug"`
}

// DefaultSettings возвращает значения по умолчанию.
func DefaultSettings() Settings {
	return Settings{
		Width:      ScreenWidth,
		Height:     ScreenHeight,
		Range:      DomainRange,
		Resolution: MeshResolution,
		Texture:    DefaultTextureURL,
		DiagAddr:   DefaultDiagAddr,
		ShowDebug:  true,
	}
}

// LoadSettings читает HJSON-файл поверх значений по умолчанию.
// Отсутствующий файл не ошибка: просто остаются дефолты.
func LoadSettings(path string) (Settings, error) {
	s := DefaultSettings()
	if path == "" {
		return s, nil
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return s, nil
	}
	if err != nil {
		return s, fmt.Errorf("failed to read settings file: %w", err)
	}
	return ParseSettings(data)
}

// ParseSettings разбирает HJSON. Сначала в map, затем через JSON в структуру,
// так HJSON-типы приводятся к полям структуры.
func ParseSettings(data []byte) (Settings, error) {
	s := DefaultSettings()
	var raw map[string]interface{}
	if err := hjson.Unmarshal(data, &raw); err != nil {
		return s, fmt.Errorf("failed to parse settings: %w", err)
	}
	buf, err := json.Marshal(raw)
	if err != nil {
		return s, fmt.Errorf("failed to re-encode settings: %w", err)
	}
	if err := json.Unmarshal(buf, &s); err != nil {
		return s, fmt.Errorf("failed to decode settings: %w", err)
	}
	return s, s.Validate()
}

// Validate проверяет значения, которые сломали бы построение поверхности.
func (s Settings) Validate() error {
	if s.Range <= 0 {
		return fmt.Errorf("range must be positive, got %v", s.Range)
	}
	if s.Resolution < 1 || s.Resolution > 255 {
		return fmt.Errorf("resolution must be in [1, 255], got %d", s.Resolution)
	}
	if s.Width < MinViewport || s.Height < MinViewport {
		return fmt.Errorf("window must be at least %dx%d, got %dx%d", MinViewport, MinViewport, s.Width, s.Height)
	}
	return nil
}
