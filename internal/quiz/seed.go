package quiz

// SeedQuestions is the built-in battery used to initialize an empty
// database and to keep the test serving when storage is unavailable.
// Option values double as weights and are unique within each question.
func SeedQuestions() []Question {
	return []Question{
		{
			ID:       1,
			Text:     "Что вам интереснее всего делать за компьютером?",
			Category: "interests",
			Options: []Option{
				{Text: "Писать программы и алгоритмы", Category: CategoryCode, Value: 3},
				{Text: "Разбираться в таблицах и статистике", Category: CategoryData, Value: 2},
				{Text: "Рисовать интерфейсы и макеты", Category: CategoryDesign, Value: 1},
				{Text: "Искать уязвимости и защищать данные", Category: CategorySecurity, Value: 4},
			},
		},
		{
			ID:       2,
			Text:     "Какая задача кажется вам самой увлекательной?",
			Category: "interests",
			Options: []Option{
				{Text: "Автоматизировать развертывание сервиса", Category: CategoryDevOps, Value: 3},
				{Text: "Сделать мобильное приложение", Category: CategoryMobile, Value: 2},
				{Text: "Создать собственную игру", Category: CategoryGame, Value: 1},
				{Text: "Обучить нейросеть распознавать картинки", Category: CategoryAIML, Value: 4},
			},
		},
		{
			ID:       3,
			Text:     "Как вы предпочитаете решать сложную проблему?",
			Category: "thinking",
			Options: []Option{
				{Text: "Разбить на подзадачи и написать код", Category: CategoryCode, Value: 4},
				{Text: "Собрать данные и поискать закономерности", Category: CategoryData, Value: 3},
				{Text: "Нарисовать схему и обсудить с людьми", Category: CategoryDesign, Value: 2},
				{Text: "Проверить, где система может сломаться", Category: CategorySecurity, Value: 1},
			},
		},
		{
			ID:       4,
			Text:     "Что бы вы выбрали в качестве пет-проекта?",
			Category: "interests",
			Options: []Option{
				{Text: "Скрипт, который сам собирает и тестирует проект", Category: CategoryDevOps, Value: 4},
				{Text: "Приложение-трекер привычек для телефона", Category: CategoryMobile, Value: 3},
				{Text: "Платформер на игровом движке", Category: CategoryGame, Value: 2},
				{Text: "Бот, отвечающий на вопросы по документам", Category: CategoryAIML, Value: 1},
			},
		},
		{
			ID:       5,
			Text:     "Какой школьный предмет вам ближе?",
			Category: "background",
			Options: []Option{
				{Text: "Информатика", Category: CategoryCode, Value: 2},
				{Text: "Математика и статистика", Category: CategoryData, Value: 4},
				{Text: "Изобразительное искусство", Category: CategoryDesign, Value: 3},
				{Text: "Обществознание и право", Category: CategorySecurity, Value: 1},
			},
		},
		{
			ID:       6,
			Text:     "Что важнее всего в хорошем продукте?",
			Category: "values",
			Options: []Option{
				{Text: "Стабильная работа без простоев", Category: CategoryDevOps, Value: 2},
				{Text: "Удобство на любом устройстве", Category: CategoryMobile, Value: 4},
				{Text: "Увлекательность и вовлечение", Category: CategoryGame, Value: 3},
				{Text: "Умные рекомендации под пользователя", Category: CategoryAIML, Value: 1},
			},
		},
		{
			ID:       7,
			Text:     "Какую книгу вы взяли бы в дорогу?",
			Category: "interests",
			Options: []Option{
				{Text: "Про алгоритмы и структуры данных", Category: CategoryCode, Value: 1},
				{Text: "Про анализ данных на Python", Category: CategoryData, Value: 2},
				{Text: "Про психологию восприятия и дизайн", Category: CategoryDesign, Value: 4},
				{Text: "Про расследования киберпреступлений", Category: CategorySecurity, Value: 3},
			},
		},
		{
			ID:       8,
			Text:     "Чем бы вы занялись в команде стартапа?",
			Category: "role",
			Options: []Option{
				{Text: "Настроил бы серверы и мониторинг", Category: CategoryDevOps, Value: 1},
				{Text: "Собрал бы приложение под iOS и Android", Category: CategoryMobile, Value: 2},
				{Text: "Придумал бы игровые механики", Category: CategoryGame, Value: 4},
				{Text: "Строил бы модели прогнозирования", Category: CategoryAIML, Value: 3},
			},
		},
		{
			ID:       9,
			Text:     "Что вас больше мотивирует?",
			Category: "values",
			Options: []Option{
				{Text: "Элегантное техническое решение", Category: CategoryCode, Value: 3},
				{Text: "Найденная в данных неожиданная закономерность", Category: CategoryData, Value: 1},
				{Text: "Красивый и понятный интерфейс", Category: CategoryDesign, Value: 2},
				{Text: "Предотвращенная атака", Category: CategorySecurity, Value: 4},
			},
		},
		{
			ID:       10,
			Text:     "Какой рабочий день кажется вам идеальным?",
			Category: "role",
			Options: []Option{
				{Text: "Полдня чинить пайплайн, полдня улучшать инфраструктуру", Category: CategoryDevOps, Value: 3},
				{Text: "Выпустить обновление приложения в сторы", Category: CategoryMobile, Value: 1},
				{Text: "Тестировать новый уровень игры", Category: CategoryGame, Value: 2},
				{Text: "Экспериментировать с порогом качества модели", Category: CategoryAIML, Value: 4},
			},
		},
	}
}
