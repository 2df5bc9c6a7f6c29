package convert

import (
	"sort"
	"strings"
)

// flattenKeys возвращает dot-пути значений карты.
// Вложенная карта (не массив, не null) разворачивается в пути parent.child;
// массивы и примитивы завершают обход на своём ключе.
//
// Порядок ключей каждого уровня — лексикографический: Go map не сохраняет
// порядок вставки источника, поэтому сортировка — единственный способ получить
// детерминированный порядок колонок.
func flattenKeys(m map[string]any, prefix string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var paths []string
	for _, k := range keys {
		path := k
		if prefix != "" {
			path = prefix + "." + k
		}
		if nested, ok := m[k].(map[string]any); ok {
			paths = append(paths, flattenKeys(nested, path)...)
			continue
		}
		paths = append(paths, path)
	}
	return paths
}

// unionHeaders объединяет dot-пути всех строк в порядке первого появления,
// без дубликатов. Конфликт форм (в одной строке путь вложенный, в другой —
// скаляр) не разрешается: оба пути попадают в объединение, а разрешение
// значения, упёршееся в несовместимую форму, даёт пустое поле.
func unionHeaders(rows []map[string]any) []string {
	var headers []string
	seen := make(map[string]struct{})
	for _, row := range rows {
		for _, path := range flattenKeys(row, "") {
			if _, ok := seen[path]; ok {
				continue
			}
			seen[path] = struct{}{}
			headers = append(headers, path)
		}
	}
	return headers
}

// topLevelKeys возвращает собственные ключи объекта в лексикографическом порядке.
// Используется для одиночного объекта: заголовки не пред-расплющиваются,
// вложенность обрабатывается dot-path разрешением при сериализации.
func topLevelKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// lookupPath разрешает dot-путь по вложенным картам.
// Любой null или не-объект до исчерпания пути означает "значение отсутствует" —
// возвращается (nil, false), а не ошибка.
func lookupPath(m map[string]any, path string) (any, bool) {
	parts := strings.Split(path, ".")
	var cur any = m
	for _, part := range parts {
		node, ok := cur.(map[string]any)
		if !ok || node == nil {
			return nil, false
		}
		v, ok := node[part]
		if !ok {
			return nil, false
		}
		cur = v
	}
	return cur, true
}

// resolveField разрешает значение заголовка в строке таблицы.
// Сначала прямое совпадение ключа (колонки разобранного CSV могут содержать
// точку в имени), затем dot-path спуск по вложенным объектам.
func resolveField(row map[string]any, header string) any {
	if v, ok := row[header]; ok {
		return v
	}
	if v, ok := lookupPath(row, header); ok {
		return v
	}
	return nil
}
