// Package subtoken реализует грамматику токена подписки и нормализацию
// устаревших текстовых кодировок списка подписок.
//
// Токен имеет вид: ServiceName "|" ISODate ["|" "OVERRIDE"].
// Список токенов может прийти как настоящий JSON-массив, либо как одна
// строка с разделителем ";", "," или "+", либо как текст в фигурных
// скобках (наследие старой базы). Все варианты приводятся к списку
// очищенных токенов; пустые элементы и литерал "null" отбрасываются.
package subtoken

import (
	"encoding/json"
	"strings"
)

// Token представляет одну разобранную запись подписки.
type Token struct {
	Service  string // название сервиса (часть до первого "|")
	RawDate  string // дата покупки в исходном текстовом виде, может быть пустой
	Override bool   // суффикс "OVERRIDE": подавляет блокировку по сроку
	Raw      string // исходный токен без изменений
}

// Parse разбирает токен подписки. Никогда не возвращает ошибку:
// отсутствующие части остаются пустыми (входные данные — полуструктурированный текст).
func Parse(raw string) Token {
	parts := strings.Split(raw, "|")
	tok := Token{Service: strings.TrimSpace(parts[0]), Raw: raw}
	if len(parts) > 1 {
		tok.RawDate = strings.TrimSpace(parts[1])
	}
	tok.Override = len(parts) > 2 && strings.TrimSpace(parts[2]) == "OVERRIDE"
	return tok
}

// Key возвращает ключ сервиса в нижнем регистре для сопоставления подстрок.
func (t Token) Key() string {
	return strings.ToLower(t.Service)
}

// ServiceKey приводит произвольное название сервиса к ключу сопоставления:
// берётся часть до первого "|", обрезаются пробелы, регистр понижается.
func ServiceKey(service string) string {
	return strings.ToLower(strings.TrimSpace(strings.Split(service, "|")[0]))
}

// NormalizeString нормализует список подписок, пришедший одной строкой.
// Порядок разделителей фиксирован: ";" имеет приоритет над ",", затем "+".
func NormalizeString(s string) []string {
	cleaned := strings.TrimSuffix(strings.TrimPrefix(s, "{"), "}")

	var list []string
	switch {
	case cleaned == "":
	case strings.Contains(cleaned, ";"):
		list = strings.Split(cleaned, ";")
	case strings.Contains(cleaned, ","):
		list = strings.Split(cleaned, ",")
	case strings.Contains(cleaned, "+"):
		list = strings.Split(cleaned, "+")
	default:
		list = []string{cleaned}
	}
	return NormalizeList(list)
}

// NormalizeList очищает готовый список токенов: обрезает пробелы и
// обрамляющие кавычки, отбрасывает пустые элементы и литерал "null".
func NormalizeList(items []string) []string {
	result := make([]string, 0, len(items))
	for _, item := range items {
		item = strings.TrimSpace(item)
		item = strings.TrimPrefix(item, `"`)
		item = strings.TrimSuffix(item, `"`)
		if item == "" || strings.EqualFold(item, "null") {
			continue
		}
		result = append(result, item)
	}
	return result
}

// FromRaw нормализует значение неизвестной формы: сначала пытается
// прочитать JSON-массив строк, иначе трактует значение как одну строку.
func FromRaw(raw string) []string {
	trimmed := strings.TrimSpace(raw)
	if strings.HasPrefix(trimmed, "[") {
		var items []string
		if err := json.Unmarshal([]byte(trimmed), &items); err == nil {
			return NormalizeList(items)
		}
	}
	return NormalizeString(trimmed)
}

// List — список токенов подписок, принимающий из JSON как массив строк,
// так и одну строку в любой из устаревших кодировок.
type List []string

// UnmarshalJSON реализует ослабленное чтение списка подписок.
func (l *List) UnmarshalJSON(data []byte) error {
	// null разбирается раньше ветки массива: json.Unmarshal принимает
	// null как пустой []string, и до этой проверки дело бы не дошло.
	if string(data) == "null" {
		*l = nil
		return nil
	}
	var items []string
	if err := json.Unmarshal(data, &items); err == nil {
		*l = NormalizeList(items)
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*l = NormalizeString(s)
		return nil
	}
	// Неожиданная форма не считается фатальной: список остаётся пустым.
	*l = nil
	return nil
}
