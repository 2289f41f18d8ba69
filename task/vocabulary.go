package task

var designerTaskTypes = []string{
	"Motion",
	"Статика",
	"Видео",
	"Карусель",
	"Другое",
}

var digitalTaskTypes = []string{
	"Таргетированная реклама",
	"Контекстная реклама",
	"Настройка пикселя",
	"Аналитика",
	"SEO",
	"Email-рассылка",
	"Лендинг",
	"A/B тест",
	"Отчёт",
	"Другое",
}

var adminTaskTypes = []string{
	"Закупка",
	"Оплата счёта",
	"Договор",
	"Документы",
	"Бухгалтерия",
	"Кадры",
	"Офис",
	"Техника",
	"Логистика",
	"Встреча",
	"Другое",
}

var managerTaskTypes = []string{
	"Пост",
	"Сторис",
	"Reels",
	"Съёмка",
	"Контент-план",
	"Копирайтинг",
	"Согласование",
	"Модерация",
	"Отчёт",
	"Встреча",
	"Другое",
}

var designerFormats = []string{"1:1", "4:5", "9:16", "16:9"}

// TaskTypesForRole returns the task-type vocabulary for an executor with the
// given role. The executor's role decides, never the author's.
func TaskTypesForRole(executorRole Role) []string {
	switch normalizeRole(executorRole) {
	case RoleDesigner:
		return append([]string(nil), designerTaskTypes...)
	case RoleDigital:
		return append([]string(nil), digitalTaskTypes...)
	case RoleAdmin, RoleAdministrator:
		return append([]string(nil), adminTaskTypes...)
	default:
		return append([]string(nil), managerTaskTypes...)
	}
}

// FormatsForRole returns the aspect-ratio formats offered for an executor with
// the given role. Only designers have formats.
func FormatsForRole(executorRole Role) []string {
	if normalizeRole(executorRole) != RoleDesigner {
		return nil
	}
	return append([]string(nil), designerFormats...)
}
