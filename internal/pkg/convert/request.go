package convert

// Request описывает запрос на формирование файла-вложения.
//
// Два взаимоисключающих режима:
//   - прямой режим: FileType задаёт формат, данные сериализуются как есть;
//   - режим конвертации: From и To задают пару форматов, данные сначала
//     разбираются как From, затем сериализуются как To.
//
// Инвариант: задан либо FileType, либо пара From/To — никогда оба сразу.
// From и To присутствуют только вместе и обязаны различаться.
type Request struct {
	// Data — входные данные: строка или произвольное структурированное значение.
	Data any

	// FileName — имя итогового файла. Если содержит точку — используется как есть,
	// иначе добавляется расширение итогового формата. Пустое имя генерируется.
	FileName string

	// FileType — явный тег формата для прямого режима.
	FileType string

	// From — исходный формат для режима конвертации.
	From string

	// To — целевой формат для режима конвертации.
	To string

	// CSVHeaders — явный список заголовков CSV. Если задан, при разборе CSV
	// каждая строка (включая первую) становится строкой данных, а при
	// сериализации заголовки не выводятся из данных.
	CSVHeaders []string
}

// Validate проверяет комбинацию опций запроса.
// Правила проверяются по порядку, первое нарушение выигрывает:
//  1. одновременно FileType и From/To — ConfigurationError;
//  2. только один из From/To — ConfigurationError;
//  3. любой тег вне {json, csv, txt} — UnsupportedFormatError;
//  4. From == To — ConfigurationError.
func (r *Request) Validate() error {
	conversionMode := r.From != "" || r.To != ""

	if r.FileType != "" && conversionMode {
		return &ConfigurationError{Reason: "cannot use both direct-format and conversion modes"}
	}

	if conversionMode && (r.From == "" || r.To == "") {
		return &ConfigurationError{Reason: "source and target must be provided together"}
	}

	for _, tag := range []string{r.FileType, r.From, r.To} {
		if tag == "" {
			continue
		}
		if _, err := ParseFormat(tag); err != nil {
			return err
		}
	}

	if conversionMode && r.From == r.To {
		return &ConfigurationError{Reason: "cannot convert to the same format; use direct-format mode instead"}
	}

	return nil
}

// OutputFormat возвращает итоговый формат файла.
// Режим конвертации даёт To, прямой режим — FileType,
// при отсутствии обоих — txt по умолчанию.
func (r *Request) OutputFormat() Format {
	switch {
	case r.From != "" && r.To != "":
		return Format(r.To)
	case r.FileType != "":
		return Format(r.FileType)
	default:
		return FormatTXT
	}
}

// conversionMode сообщает задана ли пара From/To.
func (r *Request) conversionMode() bool {
	return r.From != "" && r.To != ""
}
