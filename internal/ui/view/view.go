// Пакет view — модели представления и рендеринг страниц реестра.
//
// Обработчики собирают модель представления и отдают её Renderer.
// Базовая реализация сериализует модель в JSON; HTML-шаблоны
// подключаются отдельной реализацией Renderer без изменения обработчиков.
package view

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// Renderer отвечает за отдачу модели представления клиенту.
type Renderer interface {
	// Render пишет модель представления view с HTTP-статусом status.
	// name — имя страницы (registry, organization, login и т.п.).
	Render(w http.ResponseWriter, status int, name string, view any) error
}

// JSONRenderer — рендерер, сериализующий модели представления в JSON.
type JSONRenderer struct{}

// NewJSONRenderer создаёт JSON-рендерер.
func NewJSONRenderer() *JSONRenderer {
	return &JSONRenderer{}
}

// envelope — обёртка ответа с именем страницы.
type envelope struct {
	Page string `json:"page"`
	Data any    `json:"data"`
}

func (r *JSONRenderer) Render(w http.ResponseWriter, status int, name string, view any) error {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(envelope{Page: name, Data: view}); err != nil {
		return fmt.Errorf("сериализация страницы %s: %w", name, err)
	}
	return nil
}
